package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"inkpad/internal/ink"
)

// Snapshot is the serialized form of a notebook.
type Snapshot struct {
	Folders []Folder `json:"folders"`
	Notes   []Note   `json:"notes"`
}

// Save writes the notebook as indented JSON.
func (nb *Notebook) Save(w io.Writer) error {
	snap := Snapshot{Folders: nb.Folders(), Notes: nb.Notes("")}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode notebook: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write notebook: %w", err)
	}
	logger().Info("notebook saved", slog.String("component", "notebook"),
		slog.Int("folders", len(snap.Folders)), slog.Int("notes", len(snap.Notes)))
	return nil
}

// Load replaces the notebook contents with a snapshot read from r. Notes that
// point at unknown folders land in the default folder. Undo history is
// dropped.
func (nb *Notebook) Load(r io.Reader) error {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return fmt.Errorf("decode notebook: %w", err)
	}

	nb.mu.Lock()
	defer nb.mu.Unlock()

	nb.folders = map[string]Folder{DefaultFolderID: {ID: DefaultFolderID, Name: "Notes"}}
	nb.order = []string{DefaultFolderID}
	for _, f := range snap.Folders {
		if f.ID == "" {
			continue
		}
		if _, dup := nb.folders[f.ID]; !dup {
			nb.order = append(nb.order, f.ID)
		}
		nb.folders[f.ID] = f
	}

	nb.notes = make(map[string]*Note, len(snap.Notes))
	for i := range snap.Notes {
		n := snap.Notes[i]
		if n.ID == "" {
			continue
		}
		if _, ok := nb.folders[n.FolderID]; !ok {
			logger().Warn("note without folder moved to default", slog.String("component", "notebook"),
				slog.String("note", n.ID), slog.String("folder", n.FolderID))
			n.FolderID = DefaultFolderID
		}
		if n.Strokes == nil {
			n.Strokes = []ink.Stroke{}
		}
		nb.clock.Observe(n.Revision)
		nb.notes[n.ID] = &n
	}
	nb.history = NewHistory(nb.history.depth)
	logger().Info("notebook loaded", slog.String("component", "notebook"),
		slog.Int("folders", len(nb.order)), slog.Int("notes", len(nb.notes)))
	return nil
}

// SaveFile writes the notebook to path through a temporary file, so a failed
// write leaves the previous file intact.
func (nb *Notebook) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".notebook-*.json")
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := nb.Save(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// LoadFile reads a notebook saved with SaveFile. A missing file leaves the
// notebook untouched.
func (nb *Notebook) LoadFile(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open notebook: %w", err)
	}
	defer f.Close()
	return nb.Load(f)
}
