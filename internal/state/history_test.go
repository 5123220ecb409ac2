package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpad/internal/ink"
)

func TestHistoryDepth(t *testing.T) {
	h := NewHistory(3)
	lists := make([][]ink.Stroke, 5)
	for i := range lists {
		lists[i] = []ink.Stroke{stroke(string(rune('a' + i)))}
		h.Record("n", lists[i])
	}

	current := []ink.Stroke{}
	var restored [][]ink.Stroke
	for {
		prev, ok := h.Undo("n", current)
		if !ok {
			break
		}
		restored = append(restored, prev)
		current = prev
	}
	assert.Equal(t, [][]ink.Stroke{lists[4], lists[3], lists[2]}, restored)
	assert.False(t, h.CanUndo("n"))
	assert.True(t, h.CanRedo("n"))
}

func TestHistoryDefaultDepth(t *testing.T) {
	assert.Equal(t, DefaultHistoryDepth, NewHistory(0).depth)
}

func TestHistoryNotesAreIndependent(t *testing.T) {
	h := NewHistory(0)
	h.Record("a", []ink.Stroke{stroke("a1")})
	assert.True(t, h.CanUndo("a"))
	assert.False(t, h.CanUndo("b"))

	_, ok := h.Redo("a", nil)
	assert.False(t, ok)

	prev, ok := h.Undo("a", []ink.Stroke{stroke("a2")})
	require.True(t, ok)
	assert.Equal(t, "a1", prev[0].ID)

	next, ok := h.Redo("a", prev)
	require.True(t, ok)
	assert.Equal(t, "a2", next[0].ID)

	h.Forget("a")
	assert.False(t, h.CanUndo("a"))
	assert.False(t, h.CanRedo("a"))
}
