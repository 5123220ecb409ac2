package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureLifecycle(t *testing.T) {
	var c Capture
	assert.Equal(t, Idle, c.State())

	require.NoError(t, c.Engage("s1", 1, DefaultToolConfig(), Sample{X: 1, Y: 1, Pressure: Reported(1)}))
	assert.Equal(t, Capturing, c.State())

	added, err := c.Append(1, Sample{X: 2, Y: 2}, Sample{X: 3, Y: 3, Pressure: Reported(0.2)})
	require.NoError(t, err)
	assert.Equal(t, []Point{{2, 2, 0.5}, {3, 3, 0.2}}, added)

	s, ok, err := c.Release(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, []Point{{1, 1, 1}, {2, 2, 0.5}, {3, 3, 0.2}}, s.Points)
	assert.Equal(t, Idle, c.State())
	_, inProgress := c.InProgress()
	assert.False(t, inProgress)
}

func TestCaptureInvalidTransitions(t *testing.T) {
	var c Capture
	_, err := c.Append(1, Sample{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, _, err = c.Release(1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = c.Cancel()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, c.Engage("s1", 1, DefaultToolConfig(), Sample{}))
	assert.ErrorIs(t, c.Engage("s2", 1, DefaultToolConfig(), Sample{}), ErrInvalidTransition)

	_, err = c.Append(2, Sample{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, _, err = c.Release(2)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, Capturing, c.State())

	s, err := c.Cancel()
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, Idle, c.State())
}

func TestCaptureReleaseSinglePoint(t *testing.T) {
	var c Capture
	require.NoError(t, c.Engage("s1", 0, DefaultToolConfig(), Sample{X: 5, Y: 5}))
	s, ok, err := c.Release(0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, s.Points, 1)
}

func TestCaptureAppliesToolWidth(t *testing.T) {
	var c Capture
	cfg := ToolConfig{Tool: Eraser, Color: "#000", Width: 5, DrawingEnabled: true}
	require.NoError(t, c.Engage("s1", 0, cfg, Sample{}))
	s, _ := c.InProgress()
	assert.Equal(t, 30.0, s.Width)
	assert.Equal(t, Eraser, s.Tool)
}

func TestPointerEventSamples(t *testing.T) {
	ev := PointerEvent{X: 1, Y: 2}
	assert.Equal(t, []Sample{{X: 1, Y: 2}}, ev.samples())

	ev.Coalesced = []Sample{{X: 3}, {X: 4}}
	assert.Equal(t, ev.Coalesced, ev.samples())
}
