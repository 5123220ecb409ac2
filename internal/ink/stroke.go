package ink

// MinStrokePoints is the smallest number of points a committed stroke has.
const MinStrokePoints = 2

// Stroke is one continuous gesture with the tool settings it was drawn with.
type Stroke struct {
	ID     string  `json:"id"`
	Tool   Tool    `json:"tool"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
	Points []Point `json:"points"`
}

// Renderable reports whether the stroke has enough points to paint.
func (s Stroke) Renderable() bool {
	return len(s.Points) >= MinStrokePoints
}

// BaseWidth is the width the stroke paints with before pressure. A stroke
// stored without a width uses its tool default.
func (s Stroke) BaseWidth() float64 {
	if s.Width <= 0 {
		return s.Tool.style().defaultWidth
	}
	return s.Width
}

// Clone returns a copy that shares no memory with s.
func (s Stroke) Clone() Stroke {
	c := s
	c.Points = append([]Point(nil), s.Points...)
	return c
}

// sameList reports whether a and b are the same committed list. Lists are
// replaced wholesale, never edited in place, so identity of the backing
// array is enough.
func sameList(a, b []Stroke) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// withStroke returns a new list holding list followed by s.
func withStroke(list []Stroke, s Stroke) []Stroke {
	next := make([]Stroke, len(list), len(list)+1)
	copy(next, list)
	return append(next, s)
}
