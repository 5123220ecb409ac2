package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrokeBounds(t *testing.T) {
	s := Stroke{Tool: Pen, Width: 4, Points: []Point{{10, 20, 1}, {30, 5, 1}, {15, 40, 1}}}
	assert.Equal(t, Rect{X: 8, Y: 3, Width: 24, Height: 39}, s.Bounds())

	assert.True(t, Stroke{Tool: Pen, Width: 4, Points: []Point{{1, 1, 1}}}.Bounds().Empty())
}

func TestBoundsUnion(t *testing.T) {
	list := []Stroke{
		{Tool: Pencil, Width: 2, Points: []Point{{0, 0, 0}, {10, 0, 0}}},
		{Tool: Eraser, Points: []Point{{50, 50, 0}, {50, 60, 0}}},
		{Tool: Pen, Width: 3, Points: []Point{{5, 5, 0}}},
	}
	r, ok := Bounds(list, 10)
	assert.True(t, ok)
	// the eraser has no width and takes the default of 30
	assert.Equal(t, Rect{X: -11, Y: -11, Width: 86, Height: 96}, r)

	_, ok = Bounds(list[2:], 10)
	assert.False(t, ok)
	_, ok = Bounds(nil, 0)
	assert.False(t, ok)
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	assert.True(t, a.Overlaps(Rect{X: 5, Y: 5, Width: 10, Height: 10}))
	assert.False(t, a.Overlaps(Rect{X: 10, Y: 0, Width: 5, Height: 5}))
	assert.False(t, a.Overlaps(Rect{X: 0, Y: 20, Width: 5, Height: 5}))
}
