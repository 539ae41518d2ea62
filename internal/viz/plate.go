package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/chladni/internal/geom"
)

// Projection maps plate coordinates (metres, origin at the centre, y up)
// onto canvas dots.
type Projection struct {
	Scale  float64 // dots per metre
	CX, CY float64
}

// Fit centres a width x height plate on c as large as it fits.
func Fit(c *Canvas, width, height float64) Projection {
	dw, dh := c.Dots()
	p := Projection{CX: float64(dw-1) / 2, CY: float64(dh-1) / 2}
	if width <= 0 || height <= 0 {
		return p
	}
	p.Scale = math.Min(float64(dw-1)/width, float64(dh-1)/height)
	return p
}

func (p Projection) Dot(v r2.Vec) (int, int) {
	return int(math.Round(p.CX + v.X*p.Scale)), int(math.Round(p.CY - v.Y*p.Scale))
}

// Point inverts Dot for the centre of dot (x, y).
func (p Projection) Point(x, y int) r2.Vec {
	if p.Scale == 0 {
		return r2.Vec{}
	}
	return r2.Vec{X: (float64(x) - p.CX) / p.Scale, Y: (p.CY - float64(y)) / p.Scale}
}

// DrawOutline strokes every closed loop of s.
func DrawOutline(c *Canvas, p Projection, s geom.Shape) {
	for _, loop := range s.Outline() {
		for i := range loop {
			x0, y0 := p.Dot(loop[i])
			x1, y1 := p.Dot(loop[(i+1)%len(loop)])
			c.DrawLine(x0, y0, x1, y1)
		}
	}
}

// DrawGrains sets one dot per grain.
func DrawGrains(c *Canvas, p Projection, grains []r2.Vec) {
	for _, g := range grains {
		c.Set(p.Dot(g))
	}
}

// DrawPlate clears c and draws s with its grains on top.
func DrawPlate(c *Canvas, s geom.Shape, grains []r2.Vec, outline bool) Projection {
	c.Clear()
	w, h := s.Bounds()
	p := Fit(c, w, h)
	if outline {
		DrawOutline(c, p, s)
	}
	DrawGrains(c, p, grains)
	return p
}

// Sampler is the displacement field a nodal map is drawn from.
type Sampler interface {
	Displacement(p r2.Vec) float64
}

// DrawNodal marks every dot inside s whose displacement is below frac of
// the largest displacement on the plate. It shows where sand would settle.
func DrawNodal(c *Canvas, s geom.Shape, f Sampler, frac float64) Projection {
	c.Clear()
	w, h := s.Bounds()
	p := Fit(c, w, h)
	dw, dh := c.Dots()

	values := make([]float64, dw*dh)
	peak := 0.0
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			pt := p.Point(x, y)
			if !s.Contains(pt) {
				values[y*dw+x] = math.Inf(1)
				continue
			}
			d := f.Displacement(pt)
			values[y*dw+x] = d
			peak = math.Max(peak, d)
		}
	}

	cut := frac * peak
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			if values[y*dw+x] <= cut {
				c.Set(x, y)
			}
		}
	}
	return p
}
