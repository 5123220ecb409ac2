package ink

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/mazznoer/csscolorparser"
)

var ErrInvalidColor = errors.New("ink: invalid color")

// ParseColor understands CSS colors: hex in every length, rgb(), rgba(),
// hsl(), hwb() and the named colors. Out-of-range channels are clamped.
func ParseColor(s string) (color.NRGBA, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b, a := c.Clamp().RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
