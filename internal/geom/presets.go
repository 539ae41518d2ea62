package geom

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Unit-space outlines; each fits roughly inside [-1, 1] x [-1, 1].
var polygonPresets = map[string]func() []r2.Vec{
	"square": func() []r2.Vec {
		return []r2.Vec{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	},
	"hexagon": func() []r2.Vec { return regular(6, 1, math.Pi/6) },
	"star":    func() []r2.Vec { return star(5, 1, 0.45) },
	"guitar":  guitar,
}

// PolygonPreset returns a fresh copy of the named unit outline.
func PolygonPreset(name string) ([]r2.Vec, bool) {
	fn, ok := polygonPresets[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

func PolygonPresetNames() []string {
	names := make([]string, 0, len(polygonPresets))
	for name := range polygonPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func regular(n int, radius, phase float64) []r2.Vec {
	pts := make([]r2.Vec, n)
	for i := range pts {
		a := phase + 2*math.Pi*float64(i)/float64(n)
		pts[i] = r2.Vec{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return pts
}

func star(points int, outer, inner float64) []r2.Vec {
	pts := make([]r2.Vec, 2*points)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := math.Pi/2 + math.Pi*float64(i)/float64(points)
		pts[i] = r2.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return pts
}

// guitar is a two-bout body with a waist, lower bout at -y.
func guitar() []r2.Vec {
	const n = 96
	pts := make([]r2.Vec, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / n
		r := 0.72 + 0.28*math.Cos(2*a) + 0.1*math.Cos(a)
		pts[i] = r2.Vec{X: r * math.Sin(a), Y: -r * math.Cos(a)}
	}
	return pts
}
