package state

import "inkpad/internal/ink"

// DefaultHistoryDepth is the number of undo points kept per note.
const DefaultHistoryDepth = 50

// History keeps bounded undo and redo stacks of stroke lists per note. Lists
// are never mutated after they are stored, so entries share memory with the
// notes they came from.
type History struct {
	depth int
	undo  map[string][][]ink.Stroke
	redo  map[string][][]ink.Stroke
}

func NewHistory(depth int) *History {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &History{
		depth: depth,
		undo:  make(map[string][][]ink.Stroke),
		redo:  make(map[string][][]ink.Stroke),
	}
}

// Record saves prev as an undo point for the note and drops its redo stack.
func (h *History) Record(noteID string, prev []ink.Stroke) {
	stack := append(h.undo[noteID], prev)
	if len(stack) > h.depth {
		stack = stack[len(stack)-h.depth:]
	}
	h.undo[noteID] = stack
	delete(h.redo, noteID)
}

// Undo returns the list to restore in place of current.
func (h *History) Undo(noteID string, current []ink.Stroke) ([]ink.Stroke, bool) {
	prev, ok := pop(h.undo, noteID)
	if !ok {
		return nil, false
	}
	h.redo[noteID] = append(h.redo[noteID], current)
	return prev, true
}

// Redo reverses the last Undo.
func (h *History) Redo(noteID string, current []ink.Stroke) ([]ink.Stroke, bool) {
	next, ok := pop(h.redo, noteID)
	if !ok {
		return nil, false
	}
	h.undo[noteID] = append(h.undo[noteID], current)
	return next, true
}

func (h *History) CanUndo(noteID string) bool { return len(h.undo[noteID]) > 0 }
func (h *History) CanRedo(noteID string) bool { return len(h.redo[noteID]) > 0 }

// Forget drops all history of a note.
func (h *History) Forget(noteID string) {
	delete(h.undo, noteID)
	delete(h.redo, noteID)
}

func pop(stacks map[string][][]ink.Stroke, noteID string) ([]ink.Stroke, bool) {
	stack := stacks[noteID]
	if len(stack) == 0 {
		return nil, false
	}
	top := stack[len(stack)-1]
	stack[len(stack)-1] = nil
	if len(stack) == 1 {
		delete(stacks, noteID)
	} else {
		stacks[noteID] = stack[:len(stack)-1]
	}
	return top, true
}
