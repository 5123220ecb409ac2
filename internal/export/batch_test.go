package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpad/internal/state"
)

func TestRenderNoteFitsInk(t *testing.T) {
	img, err := RenderNote(testNote(), 1)
	require.NoError(t, err)

	// the highlighter reaches x=80 plus half its width and the padding
	b := img.Bounds()
	assert.Equal(t, 100, b.Dx())
	assert.NotZero(t, img.RGBAAt(20, 30).A)
	assert.Zero(t, img.RGBAAt(40, 30).A, "erased")
}

func TestRenderNoteWithoutInk(t *testing.T) {
	_, err := RenderNote(state.Note{ID: "empty"}, 1)
	assert.ErrorIs(t, err, ErrNoInk)
}

func TestExportNotebook(t *testing.T) {
	nb := state.NewNotebook()
	inked, err := nb.CreateNote("", "Shopping list")
	require.NoError(t, err)
	require.NoError(t, nb.ReplaceStrokes(inked.ID, testNote().Strokes))
	_, err = nb.CreateNote("", "")
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	count, err := Notebook(dir, nb, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	txt, _ := filepath.Glob(filepath.Join(dir, "*.txt"))
	assert.Len(t, txt, 2)
	pngs, _ := filepath.Glob(filepath.Join(dir, "Shopping-list-*.png"))
	require.Len(t, pngs, 1)
	pdfs, _ := filepath.Glob(filepath.Join(dir, "Shopping-list-*.pdf"))
	require.Len(t, pdfs, 1)
	data, err := os.ReadFile(pdfs[0])
	require.NoError(t, err)
	assert.Contains(t, string(data[:8]), "%PDF")
	untitled, _ := filepath.Glob(filepath.Join(dir, "untitled-*"))
	assert.Len(t, untitled, 1)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Q3-plan-abcdef12", fileName(state.Note{ID: "abcdef1234", Title: " Q3 plan/ "}))
	assert.Equal(t, "untitled-x", fileName(state.Note{ID: "x"}))
}
