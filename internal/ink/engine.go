// Package ink captures pointer input as vector strokes and paints them onto
// a raster surface.
//
// An Engine is driven from a single goroutine, normally the UI event loop.
// The host owns the committed stroke list: it hands the list in with
// SetStrokes and receives a full replacement through OnChange whenever a
// stroke is committed or the list is cleared. The engine never edits a list
// in place.
//
// Painting has two modes. A full repaint clears the surface and replays every
// committed stroke followed by the stroke being captured. While a stroke is
// being captured each new sample only paints the segment it adds.
package ink

import (
	"bytes"
	"image"
	"log/slog"

	"github.com/google/uuid"
)

// Engine ties the capture state machine, the committed stroke list and the
// renderer together.
type Engine struct {
	// OnChange receives the full replacement stroke list after a commit or a
	// Clear. The engine adopts the same list, so handing it back through
	// SetStrokes does not repaint.
	OnChange func([]Stroke)
	// OnPaint is called after anything changed on the surface.
	OnPaint func()

	cfg      ToolConfig
	capture  Capture
	renderer *Renderer
	strokes  []Stroke
	newID    func() string
}

// NewEngine returns an engine using cfg. An unrecognized tool falls back to
// the pen. The engine has no surface until the first Resize.
func NewEngine(cfg ToolConfig) *Engine {
	if !cfg.Tool.Valid() {
		Logger().Warn("unknown tool, using pen", slog.String("component", "ink"), slog.String("tool", string(cfg.Tool)))
		cfg.Tool = Pen
	}
	return &Engine{
		cfg:      cfg,
		renderer: NewRenderer(),
		newID:    uuid.NewString,
	}
}

// Config returns the active tool configuration.
func (e *Engine) Config() ToolConfig {
	return e.cfg
}

// SetTool selects the tool for the next stroke. An unrecognized name is
// rejected and the previous tool stays active.
func (e *Engine) SetTool(name string) error {
	t, err := ParseTool(name)
	if err != nil {
		Logger().Warn("tool change rejected", slog.String("component", "ink"),
			slog.String("tool", name), slog.String("keeping", string(e.cfg.Tool)))
		return err
	}
	e.cfg.Tool = t
	return nil
}

// SetColor sets the color for the next stroke. Unparseable colors are
// rejected and the previous color stays active.
func (e *Engine) SetColor(c string) error {
	if _, err := ParseColor(c); err != nil {
		return err
	}
	e.cfg.Color = c
	return nil
}

// SetWidth sets the configured width for the next stroke.
func (e *Engine) SetWidth(w float64) error {
	if w <= 0 {
		return ErrInvalidWidth
	}
	e.cfg.Width = w
	return nil
}

// SetDrawingEnabled gates all input. Disabling drawing while a stroke is
// being captured discards that stroke.
func (e *Engine) SetDrawingEnabled(enabled bool) {
	e.cfg.DrawingEnabled = enabled
	if !enabled && e.capture.State() == Capturing {
		e.cancel()
	}
}

// State returns the capture state.
func (e *Engine) State() CaptureState {
	return e.capture.State()
}

// InProgress returns a copy of the stroke being captured.
func (e *Engine) InProgress() (Stroke, bool) {
	s, ok := e.capture.InProgress()
	if !ok {
		return Stroke{}, false
	}
	return s.Clone(), true
}

// Strokes returns the committed stroke list. The list must not be modified.
func (e *Engine) Strokes() []Stroke {
	return e.strokes
}

// SetStrokes replaces the committed list with the owner's list. A different
// list triggers a full repaint.
func (e *Engine) SetStrokes(list []Stroke) {
	if sameList(list, e.strokes) {
		return
	}
	e.strokes = list
	e.repaint()
}

// Clear asks the owner to replace its list with an empty one. An empty list
// is left alone.
func (e *Engine) Clear() {
	if len(e.strokes) == 0 {
		return
	}
	e.strokes = []Stroke{}
	e.repaint()
	if e.OnChange != nil {
		e.OnChange(e.strokes)
	}
}

// HandlePointer feeds one pointer event to the engine and reports whether it
// took part in drawing. Touch input and input while drawing is disabled are
// never consumed.
func (e *Engine) HandlePointer(ev PointerEvent) bool {
	if !ev.Device.inks() || !e.cfg.DrawingEnabled {
		return false
	}
	switch ev.Kind {
	case PointerDown:
		return e.engage(ev)
	case PointerMove:
		return e.sample(ev)
	case PointerUp, PointerLeave:
		return e.release(ev)
	case PointerCancel:
		if e.capture.State() != Capturing {
			return false
		}
		e.cancel()
		return true
	}
	return false
}

func (e *Engine) engage(ev PointerEvent) bool {
	first := Sample{X: ev.X, Y: ev.Y, Pressure: ev.Pressure}
	if err := e.capture.Engage(e.newID(), ev.PointerID, e.cfg, first); err != nil {
		Logger().Debug("engage ignored", slog.String("component", "capture"), slog.Any("error", err))
		return false
	}
	Logger().Debug("stroke started", slog.String("component", "capture"),
		slog.String("tool", string(e.cfg.Tool)), slog.String("device", ev.Device.String()))
	return true
}

func (e *Engine) sample(ev PointerEvent) bool {
	added, err := e.capture.Append(ev.PointerID, ev.samples()...)
	if err != nil {
		return false
	}
	s, _ := e.capture.InProgress()
	if e.renderer.Available() {
		for i := len(s.Points) - len(added); i < len(s.Points); i++ {
			e.renderer.PaintSegment(&s, i)
		}
		e.painted()
	}
	return true
}

func (e *Engine) release(ev PointerEvent) bool {
	s, ok, err := e.capture.Release(ev.PointerID)
	if err != nil {
		return false
	}
	if !ok {
		Logger().Debug("stroke discarded", slog.String("component", "capture"),
			slog.String("stroke", s.ID), slog.Int("points", len(s.Points)))
		return true
	}
	e.strokes = withStroke(e.strokes, s)
	e.repaint()
	Logger().Debug("stroke committed", slog.String("component", "capture"),
		slog.String("stroke", s.ID), slog.Int("points", len(s.Points)), slog.Int("strokes", len(e.strokes)))
	if e.OnChange != nil {
		e.OnChange(e.strokes)
	}
	return true
}

func (e *Engine) cancel() {
	s, err := e.capture.Cancel()
	if err != nil {
		return
	}
	Logger().Debug("stroke cancelled", slog.String("component", "capture"), slog.String("stroke", s.ID))
	// segments already painted have to go
	if s.Renderable() {
		e.repaint()
	}
}

// Resize matches the surface to a container of the given size at density
// device pixels per unit and repaints. Resizing to the current size still
// repaints exactly once.
func (e *Engine) Resize(size Size, density float64) {
	e.renderer.Resize(size, density)
	e.repaint()
}

// Repaint forces a full repaint.
func (e *Engine) Repaint() {
	e.repaint()
}

func (e *Engine) repaint() {
	if !e.renderer.Available() {
		return
	}
	var active *Stroke
	if s, ok := e.capture.InProgress(); ok {
		active = &s
	}
	e.renderer.FullRepaint(e.strokes, active)
	e.painted()
}

func (e *Engine) painted() {
	if e.OnPaint != nil {
		e.OnPaint()
	}
}

// Repaints counts full repaints since the engine was created.
func (e *Engine) Repaints() int {
	return e.renderer.Repaints()
}

// PixelSize returns the surface size in device pixels, or zero without a
// surface.
func (e *Engine) PixelSize() image.Point {
	return e.renderer.PixelSize()
}

// Snapshot returns a copy of the surface.
func (e *Engine) Snapshot() (*image.RGBA, error) {
	return e.renderer.Snapshot()
}

// SnapshotInto copies the surface into dst when it has the surface size and
// returns dst. Otherwise it returns a new copy.
func (e *Engine) SnapshotInto(dst *image.RGBA) (*image.RGBA, error) {
	return e.renderer.SnapshotInto(dst)
}

// ExportRaster returns the surface encoded as PNG.
func (e *Engine) ExportRaster() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.renderer.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
