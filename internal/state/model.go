package state

import (
	"errors"
	"time"

	"inkpad/internal/ink"
)

// DefaultFolderID is the folder that always exists and receives notes from
// deleted folders.
const DefaultFolderID = "default"

var (
	ErrFolderNotFound = errors.New("state: folder not found")
	ErrNoteNotFound   = errors.New("state: note not found")
	ErrEmptyName      = errors.New("state: name must not be empty")
	ErrDefaultFolder  = errors.New("state: the default folder cannot be deleted")
	ErrNothingToUndo  = errors.New("state: nothing to undo")
	ErrNothingToRedo  = errors.New("state: nothing to redo")
)

type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Note is a page of text with an ink layer. Strokes is replaced wholesale on
// every change and never edited in place.
type Note struct {
	ID       string       `json:"id"`
	FolderID string       `json:"folder_id"`
	Title    string       `json:"title"`
	Text     string       `json:"text"`
	Strokes  []ink.Stroke `json:"strokes"`
	Created  time.Time    `json:"created"`
	Updated  time.Time    `json:"updated"`
	Revision uint64       `json:"revision"`
}
