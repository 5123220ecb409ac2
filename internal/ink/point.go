package ink

// Pressure defaults for devices that do not report pressure.
const (
	// DefaultPressure is stored on captured points when the device is silent.
	DefaultPressure = 0.5
	// UnreportedPenFactor scales pen width for points that carry no pressure.
	UnreportedPenFactor = 1.0
)

// Point is a captured sample in surface-local units.
type Point struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressure float64 `json:"pressure"`
}

// WidthFactor is the pen width multiplier for p. A zero pressure means the
// point was recorded without a pressure reading.
func (p Point) WidthFactor() float64 {
	if p.Pressure <= 0 {
		return UnreportedPenFactor
	}
	return p.Pressure
}

// Pressure is an optional device pressure reading.
type Pressure struct {
	value    float64
	reported bool
}

// Unreported is the pressure of a device that has no pressure sensor.
var Unreported Pressure

// Reported returns a pressure reading of v.
func Reported(v float64) Pressure {
	return Pressure{value: v, reported: true}
}

// Resolve returns the reading clamped to [0,1], or def when unreported.
func (p Pressure) Resolve(def float64) float64 {
	if !p.reported {
		return def
	}
	return clamp01(p.value)
}

// Sample is one raw position reading from an input device.
type Sample struct {
	X, Y     float64
	Pressure Pressure
}

func (s Sample) point() Point {
	return Point{X: s.X, Y: s.Y, Pressure: s.Pressure.Resolve(DefaultPressure)}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
