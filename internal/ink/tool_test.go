package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTool(t *testing.T) {
	for _, name := range []string{"pen", "pencil", "highlighter", "eraser"} {
		tool, err := ParseTool(name)
		require.NoError(t, err)
		assert.Equal(t, Tool(name), tool)
	}
	for _, name := range []string{"", "Pen", "marker", " pen"} {
		_, err := ParseTool(name)
		assert.ErrorIs(t, err, ErrUnknownTool, name)
	}
}

func TestEffectiveWidth(t *testing.T) {
	tests := []struct {
		tool       Tool
		configured float64
		want       float64
	}{
		{Pen, 3, 3},
		{Pen, 7.5, 7.5},
		{Pen, 0, 3},
		{Pencil, 3, 2},
		{Pencil, 40, 2},
		{Highlighter, 5, 20},
		{Highlighter, 20, 20},
		{Highlighter, 26, 26},
		{Eraser, 5, 30},
		{Eraser, 30, 30},
		{Eraser, 45, 45},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.tool.EffectiveWidth(tt.configured), "%s width %v", tt.tool, tt.configured)
	}
}

func TestToolStyles(t *testing.T) {
	assert.Equal(t, 1.0, Pen.style().opacity)
	assert.Equal(t, 0.8, Pencil.style().opacity)
	assert.Equal(t, 0.3, Highlighter.style().opacity)
	assert.Equal(t, destinationOut, Eraser.style().op)
	assert.True(t, Pen.style().pressure)
	assert.False(t, Pencil.style().pressure)
	assert.Equal(t, toolStyles[Pen], Tool("marker").style())
}

func TestToolConfigValidate(t *testing.T) {
	require.NoError(t, DefaultToolConfig().Validate())

	cfg := DefaultToolConfig()
	cfg.Tool = "marker"
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownTool)

	cfg = DefaultToolConfig()
	cfg.Color = "#12"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidColor)

	cfg = DefaultToolConfig()
	cfg.Width = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidWidth)
}
