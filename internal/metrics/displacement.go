package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// MeanDisplacement is the average field magnitude under the grains in the
// latest frame. It falls as the sand settles onto nodal lines.
type MeanDisplacement struct {
	name string
	last float64
}

func NewMeanDisplacement() *MeanDisplacement {
	return &MeanDisplacement{name: "mean_displacement"}
}

func (m *MeanDisplacement) Name() string { return m.name }

func (m *MeanDisplacement) Observe(f Frame) {
	if f.Field == nil {
		return
	}
	sum := 0.0
	n := sample(f.Positions, func(p r2.Vec) {
		sum += math.Abs(f.Field.Displacement(p))
	})
	if n == 0 {
		m.last = 0
		return
	}
	m.last = sum / float64(n)
}

func (m *MeanDisplacement) Value() float64 { return m.last }

func (m *MeanDisplacement) Reset() { m.last = 0 }

// NodalFraction is the share of grains within a fraction of the mean field
// magnitude, i.e. sitting on a nodal line.
type NodalFraction struct {
	name     string
	relative float64
	last     float64
}

func NewNodalFraction(relative float64) *NodalFraction {
	return &NodalFraction{name: "nodal_fraction", relative: relative}
}

func (m *NodalFraction) Name() string { return m.name }

func (m *NodalFraction) Observe(f Frame) {
	if f.Field == nil || len(f.Positions) == 0 {
		m.last = 0
		return
	}
	var values []float64
	sum := 0.0
	sample(f.Positions, func(p r2.Vec) {
		d := math.Abs(f.Field.Displacement(p))
		values = append(values, d)
		sum += d
	})
	cut := m.relative * sum / float64(len(values))
	quiet := 0
	for _, d := range values {
		if d <= cut {
			quiet++
		}
	}
	m.last = float64(quiet) / float64(len(values))
}

func (m *NodalFraction) Value() float64 { return m.last }

func (m *NodalFraction) Reset() { m.last = 0 }
