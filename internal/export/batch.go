package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"inkpad/internal/ink"
	"inkpad/internal/state"
)

// ErrNoInk is returned when a note has nothing to render.
var ErrNoInk = errors.New("export: note has no ink")

// RenderNote replays the strokes of n on an offscreen surface just large
// enough to hold them.
func RenderNote(n state.Note, density float64) (*image.RGBA, error) {
	b, ok := ink.Bounds(n.Strokes, strokePadding)
	if !ok {
		return nil, ErrNoInk
	}
	w, h := b.Max()
	r := ink.NewRenderer()
	r.Resize(ink.Size{Width: w, Height: h}, density)
	r.FullRepaint(n.Strokes, nil)
	return r.Snapshot()
}

// Notebook writes every note of nb into dir as a text file, plus a PNG and a
// PDF for notes with ink. It returns the number of notes written.
func Notebook(dir string, nb *state.Notebook, density float64) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create directory: %w", err)
	}
	count := 0
	for _, n := range nb.Notes("") {
		base := filepath.Join(dir, fileName(n))
		if err := writeNote(base, n, density); err != nil {
			return count, fmt.Errorf("note %s: %w", n.ID, err)
		}
		count++
	}
	slog.Info("notebook exported", slog.String("component", "export"),
		slog.String("dir", dir), slog.Int("notes", count))
	return count, nil
}

func writeNote(base string, n state.Note, density float64) error {
	var txt bytes.Buffer
	if err := WriteText(&txt, n); err != nil {
		return err
	}
	if err := os.WriteFile(base+".txt", txt.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write text: %w", err)
	}

	img, err := RenderNote(n, density)
	if errors.Is(err, ErrNoInk) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := SavePNG(base+".png", img); err != nil {
		return err
	}
	var raster bytes.Buffer
	if err := WritePNG(&raster, img); err != nil {
		return err
	}
	var pdf bytes.Buffer
	if err := WritePDF(&pdf, n, raster.Bytes()); err != nil {
		return err
	}
	return os.WriteFile(base+".pdf", pdf.Bytes(), 0o644)
}

// fileName is the note title reduced to a safe file name, suffixed with the
// start of the note id so equal titles do not collide.
func fileName(n state.Note) string {
	title := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			return r
		case unicode.IsSpace(r):
			return '-'
		}
		return -1
	}, strings.TrimSpace(n.Title))
	if title == "" {
		title = "untitled"
	}
	id := n.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return title + "-" + id
}
