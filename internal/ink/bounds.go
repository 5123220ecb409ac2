package ink

import "math"

// Rect is an axis-aligned area in surface-local units.
type Rect struct {
	X, Y, Width, Height float64
}

// Max returns the bottom-right corner.
func (r Rect) Max() (x, y float64) {
	return r.X + r.Width, r.Y + r.Height
}

// Empty reports whether r covers no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	rx, ry := r.Max()
	ox, oy := o.Max()
	minX, minY := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	return Rect{X: minX, Y: minY, Width: math.Max(rx, ox) - minX, Height: math.Max(ry, oy) - minY}
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	rx, ry := r.Max()
	ox, oy := o.Max()
	return !(rx <= o.X || ox <= r.X || ry <= o.Y || oy <= r.Y)
}

// Bounds is the area the stroke paints, including half its width on every
// side. Strokes that are not renderable have empty bounds.
func (s Stroke) Bounds() Rect {
	if !s.Renderable() {
		return Rect{}
	}
	minX, minY := s.Points[0].X, s.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range s.Points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	half := s.BaseWidth() / 2
	return Rect{X: minX - half, Y: minY - half, Width: maxX - minX + 2*half, Height: maxY - minY + 2*half}
}

// Bounds returns the union of the stroke bounds grown by padding on every
// side. It reports false when no stroke is renderable.
func Bounds(list []Stroke, padding float64) (Rect, bool) {
	var r Rect
	for _, s := range list {
		r = r.Union(s.Bounds())
	}
	if r.Empty() {
		return Rect{}, false
	}
	return Rect{X: r.X - padding, Y: r.Y - padding, Width: r.Width + 2*padding, Height: r.Height + 2*padding}, true
}
