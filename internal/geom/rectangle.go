package geom

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rectangle is an axis-aligned plate centred on the origin.
type Rectangle struct {
	Width, Height float64
}

func NewRectangle(width, height float64) *Rectangle {
	return &Rectangle{Width: width, Height: height}
}

func (r *Rectangle) Kind() Kind { return KindRectangle }

func (r *Rectangle) Contains(p r2.Vec) bool {
	return math.Abs(p.X) <= r.Width/2 && math.Abs(p.Y) <= r.Height/2
}

func (r *Rectangle) Clamp(p r2.Vec) r2.Vec {
	hw, hh := r.Width/2, r.Height/2
	return r2.Vec{X: clampf(p.X, -hw, hw), Y: clampf(p.Y, -hh, hh)}
}

func (r *Rectangle) RandomPoint(rng *rand.Rand) r2.Vec {
	return r2.Vec{
		X: (rng.Float64() - 0.5) * r.Width,
		Y: (rng.Float64() - 0.5) * r.Height,
	}
}

func (r *Rectangle) Outline() [][]r2.Vec {
	hw, hh := r.Width/2, r.Height/2
	return [][]r2.Vec{{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}}
}

func (r *Rectangle) Bounds() (float64, float64) { return r.Width, r.Height }

// SetSize resizes the plate in place.
func (r *Rectangle) SetSize(width, height float64) {
	r.Width, r.Height = width, height
}
