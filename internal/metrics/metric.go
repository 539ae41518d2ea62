// Package metrics observes the grain population after each simulation step.
package metrics

import "gonum.org/v1/gonum/spatial/r2"

// Sampler is the displacement field the grains settle in.
type Sampler interface {
	Displacement(p r2.Vec) float64
}

// Frame is what a metric sees after one step.
type Frame struct {
	Time      float64
	Positions []r2.Vec
	Target    int
	Field     Sampler
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// maxSamples bounds how many grains a metric queries per frame.
const maxSamples = 256

// sample calls fn on at most maxSamples evenly strided grains.
func sample(pts []r2.Vec, fn func(p r2.Vec)) int {
	if len(pts) == 0 {
		return 0
	}
	stride := (len(pts) + maxSamples - 1) / maxSamples
	n := 0
	for i := 0; i < len(pts); i += stride {
		fn(pts[i])
		n++
	}
	return n
}

// Defaults are the metrics the CLI and the TUI report.
func Defaults() []Metric {
	return []Metric{
		NewMeanDisplacement(),
		NewSurvival(),
		NewNodalFraction(0.05),
	}
}
