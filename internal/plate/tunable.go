package plate

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/chladni/internal/modal"
)

// GetParams returns every numeric parameter by name.
func (s *Simulator) GetParams() map[string]float64 {
	p := s.params
	return map[string]float64{
		"width":         p.Width,
		"height":        p.Height,
		"outer_radius":  p.OuterRadius,
		"inner_radius":  p.InnerRadius,
		"polygon_scale": p.PolygonScale,
		"frequency":     p.Frequency,
		"damping":       p.Damping,
		"dispersion":    p.Material.Dispersion,
		"excitation_x":  p.Excitation.X,
		"excitation_y":  p.Excitation.Y,
		"grains":        float64(p.Grains),
		"time_scale":    p.TimeScale,
		"step_scale":    p.StepScale,
	}
}

// SetParam writes one numeric parameter by name. Values are clamped to
// Limits like the typed setters.
func (s *Simulator) SetParam(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &ParamError{Name: name, Value: value, Wrapped: ErrInvalidValue}
	}
	switch name {
	case "width":
		s.SetWidth(value)
	case "height":
		s.SetHeight(value)
	case "outer_radius":
		s.SetOuterRadius(value)
	case "inner_radius":
		s.SetInnerRadius(value)
	case "polygon_scale":
		s.SetPolygonScale(value)
	case "frequency":
		s.SetFrequency(value)
	case "damping":
		s.SetDamping(value)
	case "dispersion":
		if value <= 0 {
			return &ParamError{Name: name, Value: value, Wrapped: ErrInvalidValue}
		}
		s.SetMaterial(modal.Material{Name: "custom", Dispersion: value})
	case "excitation_x":
		s.SetExcitation(r2.Vec{X: value, Y: s.params.Excitation.Y})
	case "excitation_y":
		s.SetExcitation(r2.Vec{X: s.params.Excitation.X, Y: value})
	case "grains":
		return s.SetGrainCount(int(math.Round(value)))
	case "time_scale":
		s.SetTimeScale(value)
	case "step_scale":
		s.SetStepScale(value)
	default:
		return &ParamError{Name: name, Value: value, Wrapped: ErrUnknownParam}
	}
	return nil
}
