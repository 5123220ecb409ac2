package ink

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"math"

	"github.com/srwiley/rasterx"
)

const miterLimit = 4 << 6

// paintState is the compositing state applied to the next path. It goes back
// to defaultPaintState after every stroke so one tool never bleeds into the
// next.
type paintState struct {
	opacity float64
	op      compositeOp
}

var defaultPaintState = paintState{opacity: 1, op: sourceOver}

// Renderer owns the raster surface and paints strokes onto it.
type Renderer struct {
	surf    surface
	scanner *rasterx.ScannerGV
	stroker *rasterx.Stroker
	// mask collects eraser coverage before it is cut out of the surface.
	mask *image.Alpha

	state    paintState
	repaints int
}

// NewRenderer returns a renderer without a surface. Painting is a no-op until
// Resize gives it a non-empty size.
func NewRenderer() *Renderer {
	return &Renderer{state: defaultPaintState}
}

// Available reports whether the renderer has a surface to paint on.
func (r *Renderer) Available() bool {
	return r.surf.available()
}

// Size returns the container size and pixel density last passed to Resize.
func (r *Renderer) Size() (Size, float64) {
	return r.surf.size, r.surf.density
}

// PixelSize returns the surface dimensions in device pixels.
func (r *Renderer) PixelSize() image.Point {
	if !r.surf.available() {
		return image.Point{}
	}
	return r.surf.img.Rect.Size()
}

// Repaints counts completed full repaints.
func (r *Renderer) Repaints() int {
	return r.repaints
}

// Resize matches the surface to size at density. The surface is blank
// afterwards; callers follow up with FullRepaint.
func (r *Renderer) Resize(size Size, density float64) {
	r.surf.resize(size, density)
	if !r.surf.available() {
		r.scanner, r.stroker, r.mask = nil, nil, nil
		return
	}
	b := r.surf.img.Rect
	if r.mask == nil || r.mask.Rect != b {
		r.mask = image.NewAlpha(b)
		r.scanner = rasterx.NewScannerGV(b.Dx(), b.Dy(), r.surf.img, b)
		r.stroker = rasterx.NewStroker(b.Dx(), b.Dy(), r.scanner)
	}
	r.state = defaultPaintState
}

// FullRepaint clears the surface and paints strokes in order, then active
// when it is non-nil.
func (r *Renderer) FullRepaint(strokes []Stroke, active *Stroke) {
	if !r.surf.available() {
		return
	}
	r.surf.wipe()
	for i := range strokes {
		if r.surf.visible(strokes[i].Bounds()) {
			r.paintStroke(&strokes[i])
		}
	}
	if active != nil && r.surf.visible(active.Bounds()) {
		r.paintStroke(active)
	}
	r.repaints++
}

// PaintSegment paints only the segment of s that ends at point i, on top of
// whatever is already on the surface.
func (r *Renderer) PaintSegment(s *Stroke, i int) {
	if !r.surf.available() || i < 1 || i >= len(s.Points) {
		return
	}
	st := s.Tool.style()
	r.begin(st)
	defer r.end()

	seg := s.Points[i-1 : i+1]
	w := s.BaseWidth()
	if st.pressure {
		w *= seg[1].WidthFactor()
	}
	r.strokePath(seg, w, strokeColor(s))
}

func (r *Renderer) paintStroke(s *Stroke) {
	if !s.Renderable() {
		return
	}
	st := s.Tool.style()
	r.begin(st)
	defer r.end()

	w := s.BaseWidth()
	c := strokeColor(s)
	if st.pressure {
		// each segment takes the pressure of the point it ends at
		for i := 1; i < len(s.Points); i++ {
			r.strokePath(s.Points[i-1:i+1], w*s.Points[i].WidthFactor(), c)
		}
		return
	}
	r.strokePath(s.Points, w, c)
}

func (r *Renderer) begin(st toolStyle) {
	r.state = paintState{opacity: st.opacity, op: st.op}
}

func (r *Renderer) end() {
	r.state = defaultPaintState
}

// strokePath strokes pts as one path with round caps and joins under the
// current paint state.
func (r *Renderer) strokePath(pts []Point, width float64, c color.NRGBA) {
	dw := r.surf.deviceWidth(width)
	if dw < 1 {
		dw = 1
	}
	st := r.stroker
	st.Clear()
	st.SetStroke(dw, miterLimit, r.surf.lineCap, nil, rasterx.RoundGap, r.surf.lineJoin)
	st.Start(r.surf.device(pts[0]))
	for _, p := range pts[1:] {
		st.Line(r.surf.device(p))
	}
	st.Stop(false)

	switch r.state.op {
	case destinationOut:
		r.scanner.Dest = r.mask
		st.SetColor(color.Opaque)
		st.Draw()
		cutOut(r.surf.img, r.mask, r.surf.deviceBounds(pts, width))
	default:
		c.A = uint8(math.Round(float64(c.A) * r.state.opacity))
		r.scanner.Dest = r.surf.img
		st.SetColor(c)
		st.Draw()
	}
	st.Clear()
}

// cutOut removes mask coverage from dst inside bounds and zeroes the mask
// there again. dst holds premultiplied pixels, so every channel scales.
func cutOut(dst *image.RGBA, mask *image.Alpha, bounds image.Rectangle) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		mrow := mask.Pix[mask.PixOffset(bounds.Min.X, y):]
		drow := dst.Pix[dst.PixOffset(bounds.Min.X, y):]
		for x := 0; x < bounds.Dx(); x++ {
			m := uint32(mrow[x])
			if m == 0 {
				continue
			}
			keep := 255 - m
			px := drow[4*x : 4*x+4]
			for i := range px {
				px[i] = uint8((uint32(px[i])*keep + 127) / 255)
			}
			mrow[x] = 0
		}
	}
}

func strokeColor(s *Stroke) color.NRGBA {
	c, err := ParseColor(s.Color)
	if err != nil {
		Logger().Debug("painting unparseable color as black",
			slog.String("component", "render"), slog.String("stroke", s.ID), slog.Any("error", err))
		return color.NRGBA{A: 255}
	}
	return c
}

// Snapshot returns a copy of the surface.
func (r *Renderer) Snapshot() (*image.RGBA, error) {
	if !r.surf.available() {
		return nil, ErrSurfaceUnavailable
	}
	img := image.NewRGBA(r.surf.img.Rect)
	copy(img.Pix, r.surf.img.Pix)
	return img, nil
}

// SnapshotInto is Snapshot reusing dst when it matches the surface bounds.
func (r *Renderer) SnapshotInto(dst *image.RGBA) (*image.RGBA, error) {
	if !r.surf.available() {
		return nil, ErrSurfaceUnavailable
	}
	if dst == nil || dst.Rect != r.surf.img.Rect || dst.Stride != r.surf.img.Stride {
		return r.Snapshot()
	}
	copy(dst.Pix, r.surf.img.Pix)
	return dst, nil
}

// EncodePNG writes the surface as a PNG image.
func (r *Renderer) EncodePNG(w io.Writer) error {
	if !r.surf.available() {
		return ErrSurfaceUnavailable
	}
	return png.Encode(w, r.surf.img)
}
