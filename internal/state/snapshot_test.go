package state

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpad/internal/ink"
)

func TestNotebookSaveLoad(t *testing.T) {
	nb := newTestNotebook(t)
	work, err := nb.CreateFolder("Work")
	require.NoError(t, err)
	n, err := nb.CreateNote(work.ID, "sketch")
	require.NoError(t, err)
	require.NoError(t, nb.UpdateText(n.ID, "text"))
	require.NoError(t, nb.ReplaceStrokes(n.ID, []ink.Stroke{stroke("s1")}))

	var buf bytes.Buffer
	require.NoError(t, nb.Save(&buf))

	loaded := NewNotebook()
	require.NoError(t, loaded.Load(&buf))
	assert.Equal(t, nb.Folders(), loaded.Folders())

	got, err := loaded.Note(n.ID)
	require.NoError(t, err)
	want, err := nb.Note(n.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Text, got.Text)
	assert.Equal(t, want.Strokes, got.Strokes)
	assert.True(t, want.Updated.Equal(got.Updated))
	assert.False(t, loaded.CanUndo(n.ID))

	// revisions keep increasing after a load
	require.NoError(t, loaded.UpdateText(n.ID, "more"))
	got, err = loaded.Note(n.ID)
	require.NoError(t, err)
	assert.Greater(t, got.Revision, want.Revision)
}

func TestNotebookLoadRepairsFolders(t *testing.T) {
	nb := NewNotebook()
	err := nb.Load(strings.NewReader(`{"folders":[],"notes":[{"id":"n1","folder_id":"gone","title":"orphan"}]}`))
	require.NoError(t, err)

	got, err := nb.Note("n1")
	require.NoError(t, err)
	assert.Equal(t, DefaultFolderID, got.FolderID)
	assert.NotNil(t, got.Strokes)
	assert.Len(t, nb.Folders(), 1)
}

func TestNotebookLoadRejectsGarbage(t *testing.T) {
	nb := NewNotebook()
	n, err := nb.CreateNote("", "keep")
	require.NoError(t, err)

	assert.Error(t, nb.Load(strings.NewReader("{not json")))
	_, err = nb.Note(n.ID)
	assert.NoError(t, err)
}

func TestNotebookSaveFileLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "notebook.json")

	nb := newTestNotebook(t)
	n, err := nb.CreateNote("", "on disk")
	require.NoError(t, err)
	require.NoError(t, nb.SaveFile(path))

	restored := NewNotebook()
	require.NoError(t, restored.LoadFile(path))
	got, err := restored.Note(n.ID)
	require.NoError(t, err)
	assert.Equal(t, "on disk", got.Title)
}

func TestNotebookLoadFileMissing(t *testing.T) {
	nb := NewNotebook()
	require.NoError(t, nb.LoadFile(filepath.Join(t.TempDir(), "absent.json")))
	assert.Len(t, nb.Folders(), 1)
}
