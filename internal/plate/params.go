package plate

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/chladni/internal/geom"
	"github.com/san-kum/chladni/internal/modal"
	"github.com/san-kum/chladni/internal/sand"
)

// Range is an inclusive bound for a tunable value.
type Range struct {
	Min, Max float64
}

func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Limits bound every numeric setter. Out-of-range writes are clamped.
var Limits = struct {
	Width, Height Range
	OuterRadius   Range
	PolygonScale  Range
	Frequency     Range
	Damping       Range
	TimeScale     Range
	StepScale     Range
}{
	Width:        Range{0.05, 1.0},
	Height:       Range{0.05, 1.0},
	OuterRadius:  Range{0.05, 0.5},
	PolygonScale: Range{0.05, 0.5},
	Frequency:    Range{20, 8000},
	Damping:      Range{0.001, 1},
	TimeScale:    Range{0, 10},
	StepScale:    Range{0, 1},
}

// Parameters is the full session state apart from the grain positions.
type Parameters struct {
	Shape        geom.Kind
	Width        float64
	Height       float64
	OuterRadius  float64
	InnerRadius  float64
	Polygon      string
	PolygonScale float64

	Material   modal.Material
	Frequency  float64
	Damping    float64
	Excitation r2.Vec

	Grains    int
	Policy    sand.Policy
	TimeScale float64
	StepScale float64
}

func DefaultParameters() Parameters {
	return Parameters{
		Shape:        geom.KindRectangle,
		Width:        0.32,
		Height:       0.32,
		OuterRadius:  0.16,
		InnerRadius:  0,
		Polygon:      "guitar",
		PolygonScale: 0.16,
		Material:     modal.DefaultMaterial,
		Frequency:    1000,
		Damping:      modal.DefaultDamping,
		Grains:       sand.DefaultTarget,
		Policy:       sand.PolicyClamp,
		TimeScale:    sand.DefaultTimeScale,
		StepScale:    sand.DefaultStepScale,
	}
}
