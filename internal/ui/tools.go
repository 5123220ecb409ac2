package ui

import (
	"fmt"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"inkpad/internal/ink"
)

// palette holds the swatch colors offered in the toolbar.
var palette = []string{"#000000", "#e53935", "#43a047", "#1e88e5", "#fdd835", "#8e24aa"}

var toolNames = []string{string(ink.Pen), string(ink.Pencil), string(ink.Highlighter), string(ink.Eraser)}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    string
	OnTapped func(string)
}

func newColorSwatch(c string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	fill, err := ink.ParseColor(s.Color)
	if err != nil {
		fill = color.NRGBA{A: 255}
	}
	rect := canvas.NewRectangle(fill)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Toolbar edits the live tool configuration of an ink widget.
type Toolbar struct {
	board *InkWidget

	tool    *widget.Select
	width   *widget.Slider
	drawing *widget.Check
	undo    *widget.ToolbarAction
	redo    *widget.ToolbarAction
	actions *widget.Toolbar

	OnUndo func()
	OnRedo func()
}

func NewToolbar(board *InkWidget) *Toolbar {
	t := &Toolbar{board: board}
	cfg := board.Engine().Config()

	t.tool = widget.NewSelect(toolNames, func(name string) {
		if err := board.Engine().SetTool(name); err != nil {
			logger().Warn("tool not changed", slog.String("component", "ui"), slog.Any("error", err))
		}
	})
	t.tool.SetSelected(string(cfg.Tool))

	t.width = widget.NewSlider(1, 50)
	t.width.Step = 0.5
	t.width.SetValue(cfg.Width)
	t.width.OnChanged = func(v float64) {
		_ = board.Engine().SetWidth(v)
	}

	t.drawing = widget.NewCheck("Draw", board.Engine().SetDrawingEnabled)
	t.drawing.SetChecked(cfg.DrawingEnabled)

	t.undo = widget.NewToolbarAction(theme.ContentUndoIcon(), func() {
		if t.OnUndo != nil {
			t.OnUndo()
		}
	})
	t.redo = widget.NewToolbarAction(theme.ContentRedoIcon(), func() {
		if t.OnRedo != nil {
			t.OnRedo()
		}
	})
	t.actions = widget.NewToolbar(
		t.undo,
		t.redo,
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentClearIcon(), board.Clear),
	)
	return t
}

// SetHistory enables the undo and redo actions.
func (t *Toolbar) SetHistory(canUndo, canRedo bool) {
	enable := func(a *widget.ToolbarAction, on bool) {
		if on {
			a.Enable()
		} else {
			a.Disable()
		}
	}
	enable(t.undo, canUndo)
	enable(t.redo, canRedo)
}

// SelectColor changes the stroke color for the next stroke.
func (t *Toolbar) SelectColor(c string) {
	if err := t.board.Engine().SetColor(c); err != nil {
		logger().Warn("color not changed", slog.String("component", "ui"), slog.Any("error", err))
		return
	}
	if t.board.Engine().Config().Tool == ink.Eraser {
		t.tool.SetSelected(string(ink.Pen))
	}
}

func (t *Toolbar) Content() fyne.CanvasObject {
	swatches := container.NewHBox()
	for _, c := range palette {
		swatches.Add(newColorSwatch(c, t.SelectColor))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.width)
	widthLabel := widget.NewLabel(fmt.Sprintf("%.1f", t.width.Value))
	t.width.OnChangeEnded = func(v float64) {
		widthLabel.SetText(fmt.Sprintf("%.1f", v))
	}

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		t.tool,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		swatches,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		widthLabel,
		t.drawing,
		layout.NewSpacer(),
		t.actions,
	)
}
