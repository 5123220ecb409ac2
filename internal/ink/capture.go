package ink

import (
	"errors"
	"fmt"
)

// Device is the class of hardware that produced a pointer event.
type Device uint8

const (
	Mouse Device = iota
	Stylus
	Touch
)

func (d Device) String() string {
	switch d {
	case Mouse:
		return "mouse"
	case Stylus:
		return "stylus"
	case Touch:
		return "touch"
	default:
		return fmt.Sprintf("device(%d)", uint8(d))
	}
}

// inks reports whether the device class may draw. Touch is left to the host
// for scrolling and navigation.
func (d Device) inks() bool {
	return d == Mouse || d == Stylus
}

// EventKind is the phase of a pointer event.
type EventKind uint8

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	PointerCancel
	PointerLeave
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	case PointerLeave:
		return "leave"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// PointerEvent is a raw input event from the host.
type PointerEvent struct {
	Kind      EventKind
	Device    Device
	PointerID int
	X, Y      float64
	Pressure  Pressure

	// Coalesced holds the high-frequency readings delivered with a move, in
	// arrival order. When empty the event position is the only sample.
	Coalesced []Sample
}

func (ev PointerEvent) samples() []Sample {
	if len(ev.Coalesced) > 0 {
		return ev.Coalesced
	}
	return []Sample{{X: ev.X, Y: ev.Y, Pressure: ev.Pressure}}
}

// CaptureState is the state of the pointer lifecycle.
type CaptureState uint8

const (
	Idle CaptureState = iota
	Capturing
)

func (s CaptureState) String() string {
	if s == Capturing {
		return "capturing"
	}
	return "idle"
}

var ErrInvalidTransition = errors.New("ink: invalid capture transition")

// Capture is the engage/sample/release state machine for a single stroke.
// Points are appended in arrival order and never reordered or deduplicated.
type Capture struct {
	state     CaptureState
	pointerID int
	stroke    Stroke
}

// State returns the current lifecycle state.
func (c *Capture) State() CaptureState {
	return c.state
}

// InProgress returns the stroke being captured, if any. The returned stroke
// shares its points with the capture and must not be modified.
func (c *Capture) InProgress() (Stroke, bool) {
	if c.state != Capturing {
		return Stroke{}, false
	}
	return c.stroke, true
}

// Engage starts a stroke at the first sample using the tool settings in cfg.
func (c *Capture) Engage(id string, pointerID int, cfg ToolConfig, first Sample) error {
	if c.state != Idle {
		return fmt.Errorf("%w: engage while %s", ErrInvalidTransition, c.state)
	}
	c.state = Capturing
	c.pointerID = pointerID
	c.stroke = Stroke{
		ID:     id,
		Tool:   cfg.Tool,
		Color:  cfg.Color,
		Width:  cfg.Tool.EffectiveWidth(cfg.Width),
		Points: []Point{first.point()},
	}
	return nil
}

// Append adds samples to the stroke and returns the points it added.
func (c *Capture) Append(pointerID int, samples ...Sample) ([]Point, error) {
	if c.state != Capturing {
		return nil, fmt.Errorf("%w: sample while %s", ErrInvalidTransition, c.state)
	}
	if pointerID != c.pointerID {
		return nil, fmt.Errorf("%w: sample from pointer %d while capturing pointer %d",
			ErrInvalidTransition, pointerID, c.pointerID)
	}
	start := len(c.stroke.Points)
	for _, s := range samples {
		c.stroke.Points = append(c.stroke.Points, s.point())
	}
	return c.stroke.Points[start:], nil
}

// Release ends the capture. It returns the finished stroke and whether it is
// long enough to commit.
func (c *Capture) Release(pointerID int) (Stroke, bool, error) {
	if c.state != Capturing {
		return Stroke{}, false, fmt.Errorf("%w: release while %s", ErrInvalidTransition, c.state)
	}
	if pointerID != c.pointerID {
		return Stroke{}, false, fmt.Errorf("%w: release from pointer %d while capturing pointer %d",
			ErrInvalidTransition, pointerID, c.pointerID)
	}
	s := c.stroke
	c.reset()
	return s, s.Renderable(), nil
}

// Cancel discards the stroke being captured and returns it.
func (c *Capture) Cancel() (Stroke, error) {
	if c.state != Capturing {
		return Stroke{}, fmt.Errorf("%w: cancel while %s", ErrInvalidTransition, c.state)
	}
	s := c.stroke
	c.reset()
	return s, nil
}

func (c *Capture) reset() {
	c.state = Idle
	c.pointerID = 0
	c.stroke = Stroke{}
}
