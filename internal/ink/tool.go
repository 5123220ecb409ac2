package ink

import (
	"errors"
	"fmt"
)

// Tool selects how a stroke is sized and composited.
type Tool string

const (
	Pen         Tool = "pen"
	Pencil      Tool = "pencil"
	Highlighter Tool = "highlighter"
	Eraser      Tool = "eraser"
)

var (
	ErrUnknownTool  = errors.New("ink: unknown tool")
	ErrInvalidWidth = errors.New("ink: width must be greater than zero")
)

// Tools lists the recognized tools in toolbar order.
var Tools = []Tool{Pen, Pencil, Highlighter, Eraser}

type compositeOp uint8

const (
	sourceOver compositeOp = iota
	destinationOut
)

func (op compositeOp) String() string {
	if op == destinationOut {
		return "destination-out"
	}
	return "source-over"
}

type toolStyle struct {
	opacity  float64
	op       compositeOp
	pressure bool

	// defaultWidth replaces configured widths below minWidth, or every
	// configured width when fixed is set.
	defaultWidth float64
	minWidth     float64
	fixed        bool
}

var toolStyles = map[Tool]toolStyle{
	Pen:         {opacity: 1.0, op: sourceOver, pressure: true, defaultWidth: 3},
	Pencil:      {opacity: 0.8, op: sourceOver, defaultWidth: 2, fixed: true},
	Highlighter: {opacity: 0.3, op: sourceOver, defaultWidth: 20, minWidth: 20},
	Eraser:      {opacity: 1.0, op: destinationOut, defaultWidth: 30, minWidth: 30},
}

// ParseTool accepts exactly the names of the recognized tools.
func ParseTool(s string) (Tool, error) {
	t := Tool(s)
	if _, ok := toolStyles[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTool, s)
	}
	return t, nil
}

// Valid reports whether t is a recognized tool.
func (t Tool) Valid() bool {
	_, ok := toolStyles[t]
	return ok
}

// EffectiveWidth returns the width a new stroke of this tool receives when
// the toolbar is set to configured.
func (t Tool) EffectiveWidth(configured float64) float64 {
	st := t.style()
	switch {
	case st.fixed:
		return st.defaultWidth
	case configured <= 0 || configured < st.minWidth:
		return st.defaultWidth
	default:
		return configured
	}
}

// Opacity is the alpha applied to the stroke color.
func (t Tool) Opacity() float64 {
	return t.style().opacity
}

// Erases reports whether the tool removes pixels instead of painting.
func (t Tool) Erases() bool {
	return t.style().op == destinationOut
}

// PressureSensitive reports whether point pressure scales the width.
func (t Tool) PressureSensitive() bool {
	return t.style().pressure
}

// style falls back to the pen for strokes that arrived with an unknown tool.
func (t Tool) style() toolStyle {
	if st, ok := toolStyles[t]; ok {
		return st
	}
	return toolStyles[Pen]
}

// ToolConfig is the live toolbar state supplied by the host.
type ToolConfig struct {
	Tool           Tool
	Color          string
	Width          float64
	DrawingEnabled bool
}

// DefaultToolConfig is a black pen with drawing enabled.
func DefaultToolConfig() ToolConfig {
	return ToolConfig{
		Tool:           Pen,
		Color:          "#000000",
		Width:          3,
		DrawingEnabled: true,
	}
}

// Validate checks the tool, color and width.
func (c ToolConfig) Validate() error {
	if !c.Tool.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTool, c.Tool)
	}
	if _, err := ParseColor(c.Color); err != nil {
		return err
	}
	if c.Width <= 0 {
		return ErrInvalidWidth
	}
	return nil
}
