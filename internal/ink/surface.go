package ink

import (
	"errors"
	"image"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var ErrSurfaceUnavailable = errors.New("ink: surface unavailable")

// Size is a container size in surface-local units.
type Size struct {
	Width, Height float64
}

// surface is the pixel buffer behind the renderer. Only the Renderer holds
// one; everything else asks the Renderer to paint or snapshot.
type surface struct {
	img     *image.RGBA
	size    Size
	density float64

	lineCap  rasterx.CapFunc
	lineJoin rasterx.JoinMode
}

func (s *surface) available() bool {
	return s.img != nil
}

// resize matches the pixel buffer to size at the given density and restores
// the drawing defaults. Pixel contents are not preserved.
func (s *surface) resize(size Size, density float64) {
	if density <= 0 || math.IsNaN(density) || math.IsInf(density, 0) {
		density = 1
	}
	s.size = size
	s.density = density
	s.lineCap = rasterx.RoundCap
	s.lineJoin = rasterx.Round

	pw := int(math.Round(size.Width * density))
	ph := int(math.Round(size.Height * density))
	if pw <= 0 || ph <= 0 {
		s.img = nil
		return
	}
	if s.img != nil && s.img.Rect.Dx() == pw && s.img.Rect.Dy() == ph {
		s.wipe()
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, pw, ph))
}

func (s *surface) wipe() {
	clear(s.img.Pix)
}

// device maps a surface-local point to device pixels.
func (s *surface) device(p Point) fixed.Point26_6 {
	return rasterx.ToFixedP(p.X*s.density, p.Y*s.density)
}

// deviceWidth maps a surface-local line width to device pixels.
func (s *surface) deviceWidth(w float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(w * s.density * 64))
}

// visible reports whether anything inside b, grown by the antialiasing
// margin, can land on the surface.
func (s *surface) visible(b Rect) bool {
	if b.Empty() {
		return false
	}
	pad := 2 / s.density
	grown := Rect{X: b.X - pad, Y: b.Y - pad, Width: b.Width + 2*pad, Height: b.Height + 2*pad}
	return grown.Overlaps(Rect{Width: s.size.Width, Height: s.size.Height})
}

// deviceBounds is the pixel rectangle touched by a line of width w through pts.
func (s *surface) deviceBounds(pts []Point, w float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	// half the line plus two pixels of antialiasing
	pad := w*s.density/2 + 2
	r := image.Rect(
		int(math.Floor(minX*s.density-pad)),
		int(math.Floor(minY*s.density-pad)),
		int(math.Ceil(maxX*s.density+pad)),
		int(math.Ceil(maxY*s.density+pad)),
	)
	return r.Intersect(s.img.Rect)
}
