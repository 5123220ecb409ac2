package ui

import (
	"image"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"inkpad/internal/ink"
)

var paperColor = color.NRGBA{R: 255, G: 255, B: 250, A: 255}

// InkWidget shows an ink engine surface and feeds it pointer input.
type InkWidget struct {
	widget.BaseWidget
	engine *ink.Engine

	// frame is the last surface snapshot handed to the raster.
	frame *image.RGBA
	dirty bool

	// OnStrokes receives the replacement stroke list after a commit or clear.
	OnStrokes func([]ink.Stroke)
}

var _ fyne.Widget = (*InkWidget)(nil)
var _ fyne.Draggable = (*InkWidget)(nil)
var _ desktop.Mouseable = (*InkWidget)(nil)
var _ desktop.Hoverable = (*InkWidget)(nil)
var _ mobile.Touchable = (*InkWidget)(nil)

func NewInkWidget(cfg ink.ToolConfig) *InkWidget {
	w := &InkWidget{engine: ink.NewEngine(cfg), dirty: true}
	w.engine.OnPaint = func() {
		w.dirty = true
		w.Refresh()
	}
	w.engine.OnChange = func(list []ink.Stroke) {
		if w.OnStrokes != nil {
			w.OnStrokes(list)
		}
	}
	w.ExtendBaseWidget(w)
	return w
}

// Engine exposes the engine for tool changes and raster export.
func (w *InkWidget) Engine() *ink.Engine {
	return w.engine
}

// SetStrokes shows the strokes of another note or an undo step.
func (w *InkWidget) SetStrokes(list []ink.Stroke) {
	w.engine.SetStrokes(list)
}

// Clear asks the owner to empty the stroke list.
func (w *InkWidget) Clear() {
	w.engine.Clear()
}

func (w *InkWidget) pointer(kind ink.EventKind, dev ink.Device, pos fyne.Position) bool {
	return w.engine.HandlePointer(ink.PointerEvent{
		Kind:     kind,
		Device:   dev,
		X:        float64(pos.X),
		Y:        float64(pos.Y),
		Pressure: ink.Unreported,
	})
}

func (w *InkWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.pointer(ink.PointerDown, ink.Mouse, e.Position)
	}
}

func (w *InkWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.pointer(ink.PointerUp, ink.Mouse, e.Position)
	}
}

func (w *InkWidget) Dragged(e *fyne.DragEvent) {
	w.pointer(ink.PointerMove, ink.Mouse, e.Position)
}

// DragEnd commits the stroke if no mouse up reached the widget.
func (w *InkWidget) DragEnd() {
	w.pointer(ink.PointerUp, ink.Mouse, fyne.Position{})
}

func (w *InkWidget) MouseIn(*desktop.MouseEvent) {}

func (w *InkWidget) MouseMoved(*desktop.MouseEvent) {}

func (w *InkWidget) MouseOut() {
	w.pointer(ink.PointerLeave, ink.Mouse, fyne.Position{})
}

// Touch input is left to scrolling; the engine ignores it.
func (w *InkWidget) TouchDown(e *mobile.TouchEvent) {
	w.pointer(ink.PointerDown, ink.Touch, e.Position)
}

func (w *InkWidget) TouchUp(e *mobile.TouchEvent) {
	w.pointer(ink.PointerUp, ink.Touch, e.Position)
}

func (w *InkWidget) TouchCancel(e *mobile.TouchEvent) {
	w.pointer(ink.PointerCancel, ink.Touch, e.Position)
}

// scale is the pixel density of the canvas showing the widget.
func (w *InkWidget) scale() float64 {
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(w); c != nil && c.Scale() > 0 {
			return float64(c.Scale())
		}
	}
	return 1
}

// frameImage is the raster generator. It only copies the surface after the
// engine painted, into the previous frame while the size holds.
func (w *InkWidget) frameImage(pw, ph int) image.Image {
	if w.dirty || w.frame == nil {
		img, err := w.engine.SnapshotInto(w.frame)
		if err != nil {
			return image.NewRGBA(image.Rect(0, 0, max(pw, 1), max(ph, 1)))
		}
		w.frame, w.dirty = img, false
	}
	return w.frame
}

func (w *InkWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(paperColor)
	raster := canvas.NewRaster(w.frameImage)
	return &inkRenderer{
		ink:    w,
		bg:     bg,
		raster: raster,
		objs:   []fyne.CanvasObject{container.NewStack(bg, raster)},
	}
}

type inkRenderer struct {
	ink    *InkWidget
	bg     *canvas.Rectangle
	raster *canvas.Raster
	objs   []fyne.CanvasObject
}

// Layout keeps the engine surface matched to the widget size at the canvas
// scale.
func (r *inkRenderer) Layout(size fyne.Size) {
	r.objs[0].Resize(size)
	scale := r.ink.scale()
	r.ink.engine.Resize(ink.Size{Width: float64(size.Width), Height: float64(size.Height)}, scale)
	logger().Debug("ink surface resized", slog.String("component", "ui"),
		slog.Float64("width", float64(size.Width)), slog.Float64("height", float64(size.Height)),
		slog.Float64("scale", scale))
}

func (r *inkRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *inkRenderer) Refresh() {
	r.raster.Refresh()
}

func (r *inkRenderer) Objects() []fyne.CanvasObject {
	return r.objs
}

func (r *inkRenderer) Destroy() {}
