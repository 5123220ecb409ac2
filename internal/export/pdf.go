// Package export writes notes and ink snapshots to files.
package export

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"inkpad/internal/ink"
	"inkpad/internal/state"
)

const (
	titleSize = 18
	bodySize  = 11
	lineGap   = 6
	// strokePadding surrounds the ink when no canvas size is known.
	strokePadding = 10
)

func newDocument(n state.Note) (*gofpdf.Fpdf, func(string) string) {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle(noteTitle(n), true)
	p.SetCreator("inkpad", false)
	p.SetCreationDate(n.Created)
	p.SetModificationDate(n.Updated)
	p.AddPage()
	return p, p.UnicodeTranslatorFromDescriptor("")
}

// writeText puts the title and body at the top of the current page.
func writeText(p *gofpdf.Fpdf, tr func(string) string, n state.Note) {
	left, _, right, _ := p.GetMargins()
	pageW, _ := p.GetPageSize()
	w := pageW - left - right

	p.SetFont("Helvetica", "B", titleSize)
	p.MultiCell(w, 9, tr(noteTitle(n)), "", "L", false)
	if text := strings.TrimSpace(n.Text); text != "" {
		p.Ln(2)
		p.SetFont("Helvetica", "", bodySize)
		p.MultiCell(w, lineGap, tr(text), "", "L", false)
	}
	p.Ln(lineGap)
}

// WritePDF writes the note text followed by the ink raster, a PNG as
// returned by the ink engine, scaled to the page width.
func WritePDF(w io.Writer, n state.Note, raster []byte) error {
	p, tr := newDocument(n)
	writeText(p, tr, n)

	if len(raster) > 0 {
		name := "ink-" + n.ID
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		info := p.RegisterImageOptionsReader(name, opts, bytes.NewReader(raster))
		if err := p.Error(); err != nil {
			return fmt.Errorf("embed ink: %w", err)
		}
		x, y, iw, ih := fitImage(p, info)
		p.ImageOptions(name, x, y, iw, ih, false, opts, 0, "")
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// fitImage places an image below the text at full text width, moving to a
// new page or shrinking it when it does not fit.
func fitImage(p *gofpdf.Fpdf, info *gofpdf.ImageInfoType) (x, y, w, h float64) {
	left, top, right, bottom := p.GetMargins()
	pageW, pageH := p.GetPageSize()
	availW := pageW - left - right
	availH := pageH - top - bottom

	iw, ih := info.Extent()
	w, h = availW, ih*availW/iw
	if h > availH {
		w, h = w*availH/h, availH
	}
	y = p.GetY()
	if y+h > pageH-bottom {
		p.AddPage()
		y = top
	}
	return left, y, w, h
}

// WriteVectorPDF writes the note text followed by its strokes as PDF line
// segments. canvas is the size the strokes were drawn on; when it is empty the
// ink bounds are used. The page is white, so eraser strokes are drawn in
// white over earlier ink.
func WriteVectorPDF(w io.Writer, n state.Note, canvas ink.Size) error {
	p, tr := newDocument(n)
	writeText(p, tr, n)

	area := ink.Rect{Width: canvas.Width, Height: canvas.Height}
	if area.Empty() {
		b, ok := ink.Bounds(n.Strokes, strokePadding)
		if !ok {
			b = ink.Rect{Width: 1, Height: 1}
		}
		area = b
	}

	left, top, right, bottom := p.GetMargins()
	pageW, pageH := p.GetPageSize()
	scale := (pageW - left - right) / area.Width
	if maxH := pageH - top - bottom; area.Height*scale > maxH {
		scale = maxH / area.Height
	}
	originY := p.GetY()
	if originY+area.Height*scale > pageH-bottom {
		p.AddPage()
		originY = top
	}
	at := func(pt ink.Point) (float64, float64) {
		return left + (pt.X-area.X)*scale, originY + (pt.Y-area.Y)*scale
	}

	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")
	for _, s := range n.Strokes {
		if !s.Renderable() {
			continue
		}
		c, err := ink.ParseColor(s.Color)
		if err != nil {
			c.A = 255
		}
		if s.Tool.Erases() {
			p.SetDrawColor(255, 255, 255)
			p.SetAlpha(1, "Normal")
		} else {
			p.SetDrawColor(int(c.R), int(c.G), int(c.B))
			p.SetAlpha(math.Round(s.Tool.Opacity()*float64(c.A)/255*1000)/1000, "Normal")
		}
		base := s.BaseWidth() * scale
		for i := 1; i < len(s.Points); i++ {
			lw := base
			if s.Tool.PressureSensitive() {
				lw *= s.Points[i].WidthFactor()
			}
			p.SetLineWidth(lw)
			x1, y1 := at(s.Points[i-1])
			x2, y2 := at(s.Points[i])
			p.Line(x1, y1, x2, y2)
		}
	}
	p.SetAlpha(1, "Normal")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func noteTitle(n state.Note) string {
	if t := strings.TrimSpace(n.Title); t != "" {
		return t
	}
	return "Untitled"
}
