package export

import (
	"fmt"
	"io"
	"strings"

	"inkpad/internal/ink"
	"inkpad/internal/state"
)

// WriteText writes a plain text rendition of a note: title, body and a short
// summary of its ink.
func WriteText(w io.Writer, n state.Note) error {
	var b strings.Builder
	title := noteTitle(n)
	fmt.Fprintf(&b, "%s\n%s\n\n", title, strings.Repeat("=", len([]rune(title))))
	if text := strings.TrimSpace(n.Text); text != "" {
		fmt.Fprintf(&b, "%s\n\n", text)
	}
	fmt.Fprintf(&b, "Updated: %s\n", n.Updated.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Strokes: %d\n", len(n.Strokes))

	counts := make(map[ink.Tool]int)
	for _, s := range n.Strokes {
		counts[s.Tool]++
	}
	for _, t := range ink.Tools {
		if counts[t] > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", t, counts[t])
		}
	}
	if r, ok := ink.Bounds(n.Strokes, 0); ok {
		fmt.Fprintf(&b, "Ink area: (%.2f, %.2f) %.2f x %.2f\n", r.X, r.Y, r.Width, r.Height)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
