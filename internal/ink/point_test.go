package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPressureResolve(t *testing.T) {
	tests := []struct {
		name string
		p    Pressure
		want float64
	}{
		{"unreported", Unreported, DefaultPressure},
		{"reported", Reported(0.8), 0.8},
		{"reported zero", Reported(0), 0},
		{"clamped high", Reported(1.7), 1},
		{"clamped low", Reported(-0.2), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.p.Resolve(DefaultPressure), 1e-9)
		})
	}
}

func TestSamplePoint(t *testing.T) {
	assert.Equal(t, Point{X: 1, Y: 2, Pressure: 0.5}, Sample{X: 1, Y: 2}.point())
	assert.Equal(t, Point{X: 1, Y: 2, Pressure: 0.25}, Sample{X: 1, Y: 2, Pressure: Reported(0.25)}.point())
}

func TestPointWidthFactor(t *testing.T) {
	assert.Equal(t, UnreportedPenFactor, Point{}.WidthFactor())
	assert.Equal(t, 0.5, Point{Pressure: 0.5}.WidthFactor())
	assert.Equal(t, 1.0, Point{Pressure: 1}.WidthFactor())
}
