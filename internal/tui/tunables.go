package tui

import "github.com/san-kum/chladni/internal/geom"

// tunable is one row of the parameter panel.
type tunable struct {
	name   string // plate.Simulator.SetParam key
	label  string
	format string
	step   float64
	shapes []geom.Kind // nil means every shape
}

var tunables = []tunable{
	{name: "frequency", label: "frequency", format: "%.1f Hz", step: 5},
	{name: "damping", label: "damping", format: "%.3f", step: 0.005},
	{name: "width", label: "width", format: "%.3f m", step: 0.01, shapes: []geom.Kind{geom.KindRectangle}},
	{name: "height", label: "height", format: "%.3f m", step: 0.01, shapes: []geom.Kind{geom.KindRectangle}},
	{name: "outer_radius", label: "outer r", format: "%.3f m", step: 0.005, shapes: []geom.Kind{geom.KindAnnulus}},
	{name: "inner_radius", label: "inner r", format: "%.3f m", step: 0.005, shapes: []geom.Kind{geom.KindAnnulus}},
	{name: "polygon_scale", label: "scale", format: "%.3f m", step: 0.005, shapes: []geom.Kind{geom.KindPolygon}},
	{name: "excitation_x", label: "drive x", format: "%+.3f m", step: 0.005},
	{name: "excitation_y", label: "drive y", format: "%+.3f m", step: 0.005},
	{name: "time_scale", label: "speed", format: "%.2fx", step: 0.25},
	{name: "step_scale", label: "step", format: "%.4f", step: 0.0005},
}

// visibleTunables lists the rows that apply to shape k.
func visibleTunables(k geom.Kind) []tunable {
	var out []tunable
	for _, t := range tunables {
		if t.shapes == nil {
			out = append(out, t)
			continue
		}
		for _, s := range t.shapes {
			if s == k {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
