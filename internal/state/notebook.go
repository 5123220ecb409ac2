// Package state holds the notebook: folders, notes and the stroke list each
// note owns on behalf of the ink engine.
package state

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkpad/internal/ink"
)

// Notebook is the in-memory set of folders and notes. It is safe for
// concurrent use.
type Notebook struct {
	mu      sync.RWMutex
	folders map[string]Folder
	order   []string // folder ids in creation order
	notes   map[string]*Note
	history *History
	clock   Clock

	now   func() time.Time
	newID func() string
}

// NewNotebook returns a notebook holding only the default folder.
func NewNotebook() *Notebook {
	nb := &Notebook{
		folders: make(map[string]Folder),
		notes:   make(map[string]*Note),
		history: NewHistory(DefaultHistoryDepth),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	nb.folders[DefaultFolderID] = Folder{ID: DefaultFolderID, Name: "Notes"}
	nb.order = []string{DefaultFolderID}
	return nb
}

// Folders returns all folders in creation order.
func (nb *Notebook) Folders() []Folder {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	folders := make([]Folder, 0, len(nb.order))
	for _, id := range nb.order {
		folders = append(folders, nb.folders[id])
	}
	return folders
}

func (nb *Notebook) CreateFolder(name string) (Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Folder{}, ErrEmptyName
	}
	nb.mu.Lock()
	defer nb.mu.Unlock()

	f := Folder{ID: nb.newID(), Name: name}
	nb.folders[f.ID] = f
	nb.order = append(nb.order, f.ID)
	logger().Debug("folder created", slog.String("component", "notebook"), slog.String("folder", f.ID))
	return f, nil
}

func (nb *Notebook) RenameFolder(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	nb.mu.Lock()
	defer nb.mu.Unlock()

	f, ok := nb.folders[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrFolderNotFound, id)
	}
	f.Name = name
	nb.folders[id] = f
	return nil
}

// DeleteFolder removes a folder and moves its notes to the default folder.
func (nb *Notebook) DeleteFolder(id string) error {
	if id == DefaultFolderID {
		return ErrDefaultFolder
	}
	nb.mu.Lock()
	defer nb.mu.Unlock()

	if _, ok := nb.folders[id]; !ok {
		return fmt.Errorf("%w: %s", ErrFolderNotFound, id)
	}
	moved := 0
	for _, n := range nb.notes {
		if n.FolderID == id {
			n.FolderID = DefaultFolderID
			nb.touch(n)
			moved++
		}
	}
	delete(nb.folders, id)
	for i, fid := range nb.order {
		if fid == id {
			nb.order = append(nb.order[:i:i], nb.order[i+1:]...)
			break
		}
	}
	logger().Info("folder deleted", slog.String("component", "notebook"),
		slog.String("folder", id), slog.Int("moved", moved))
	return nil
}

// CreateNote adds an empty note to a folder. An empty folder id means the
// default folder.
func (nb *Notebook) CreateNote(folderID, title string) (Note, error) {
	if folderID == "" {
		folderID = DefaultFolderID
	}
	nb.mu.Lock()
	defer nb.mu.Unlock()

	if _, ok := nb.folders[folderID]; !ok {
		return Note{}, fmt.Errorf("%w: %s", ErrFolderNotFound, folderID)
	}
	now := nb.now()
	n := &Note{
		ID:       nb.newID(),
		FolderID: folderID,
		Title:    strings.TrimSpace(title),
		Strokes:  []ink.Stroke{},
		Created:  now,
	}
	nb.touch(n)
	nb.notes[n.ID] = n
	logger().Debug("note created", slog.String("component", "notebook"), slog.String("note", n.ID))
	return *n, nil
}

// Note returns a copy of a note. The stroke list is shared and must not be
// modified.
func (nb *Notebook) Note(id string) (Note, error) {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	n, ok := nb.notes[id]
	if !ok {
		return Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return *n, nil
}

// Notes lists the notes of a folder, most recently changed first. An empty
// folder id lists every note.
func (nb *Notebook) Notes(folderID string) []Note {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	notes := make([]Note, 0, len(nb.notes))
	for _, n := range nb.notes {
		if folderID == "" || n.FolderID == folderID {
			notes = append(notes, *n)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Revision > notes[j].Revision
	})
	return notes
}

func (nb *Notebook) RenameNote(id, title string) error {
	return nb.update(id, func(n *Note) {
		n.Title = strings.TrimSpace(title)
	})
}

func (nb *Notebook) UpdateText(id, text string) error {
	return nb.update(id, func(n *Note) {
		n.Text = text
	})
}

// AppendText adds a paragraph to the end of the note text.
func (nb *Notebook) AppendText(id, text string) error {
	return nb.update(id, func(n *Note) {
		switch {
		case n.Text == "":
			n.Text = text
		case strings.HasSuffix(n.Text, "\n"):
			n.Text += "\n" + text
		default:
			n.Text += "\n\n" + text
		}
	})
}

// MoveNote puts a note into another folder.
func (nb *Notebook) MoveNote(id, folderID string) error {
	nb.mu.RLock()
	_, ok := nb.folders[folderID]
	nb.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrFolderNotFound, folderID)
	}
	return nb.update(id, func(n *Note) {
		n.FolderID = folderID
	})
}

func (nb *Notebook) DeleteNote(id string) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	if _, ok := nb.notes[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	delete(nb.notes, id)
	nb.history.Forget(id)
	logger().Debug("note deleted", slog.String("component", "notebook"), slog.String("note", id))
	return nil
}

// ReplaceStrokes stores list as the note's stroke list and records the
// previous list as an undo point. The notebook keeps list as given; callers
// must not modify it afterwards.
func (nb *Notebook) ReplaceStrokes(id string, list []ink.Stroke) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	n, ok := nb.notes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	if list == nil {
		list = []ink.Stroke{}
	}
	// clearing an empty note is not an undo step
	if len(list) == 0 && len(n.Strokes) == 0 {
		return nil
	}
	nb.history.Record(id, n.Strokes)
	n.Strokes = list
	nb.touch(n)
	logger().Debug("strokes replaced", slog.String("component", "notebook"),
		slog.String("note", id), slog.Int("strokes", len(list)), slog.Uint64("revision", n.Revision))
	return nil
}

// Undo restores the stroke list a note had before its last change.
func (nb *Notebook) Undo(id string) ([]ink.Stroke, error) {
	return nb.step(id, nb.history.Undo, ErrNothingToUndo)
}

// Redo reapplies the change that the last Undo reverted.
func (nb *Notebook) Redo(id string) ([]ink.Stroke, error) {
	return nb.step(id, nb.history.Redo, ErrNothingToRedo)
}

func (nb *Notebook) CanUndo(id string) bool {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return nb.history.CanUndo(id)
}

func (nb *Notebook) CanRedo(id string) bool {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return nb.history.CanRedo(id)
}

func (nb *Notebook) step(id string, move func(string, []ink.Stroke) ([]ink.Stroke, bool), empty error) ([]ink.Stroke, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	n, ok := nb.notes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	list, ok := move(id, n.Strokes)
	if !ok {
		return nil, empty
	}
	n.Strokes = list
	nb.touch(n)
	return list, nil
}

// Revision is the notebook clock: the revision of the latest change.
func (nb *Notebook) Revision() uint64 {
	return nb.clock.Now()
}

func (nb *Notebook) update(id string, fn func(*Note)) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	n, ok := nb.notes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	fn(n)
	nb.touch(n)
	return nil
}

// touch stamps a changed note. Callers hold the write lock.
func (nb *Notebook) touch(n *Note) {
	n.Revision = nb.clock.Tick()
	n.Updated = nb.now()
}
