package geom

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// MinGap is the narrowest ring the annulus allows between its radii.
const MinGap = 0.02

// Annulus is a ring centred on the origin. The radii are only changed through
// the setters, which keep 0 <= inner <= outer-MinGap. The upper bound is
// inclusive: asking for a larger inner radius yields exactly outer-MinGap.
type Annulus struct {
	inner, outer float64
}

func NewAnnulus(outer, inner float64) *Annulus {
	a := &Annulus{}
	a.SetOuterRadius(outer)
	a.SetInnerRadius(inner)
	return a
}

func (a *Annulus) Kind() Kind { return KindAnnulus }

func (a *Annulus) InnerRadius() float64 { return a.inner }
func (a *Annulus) OuterRadius() float64 { return a.outer }

// SetOuterRadius resizes the ring and pulls the inner radius in if the gap
// would fall below MinGap.
func (a *Annulus) SetOuterRadius(r float64) {
	if r < MinGap {
		r = MinGap
	}
	a.outer = r
	a.SetInnerRadius(a.inner)
}

// SetInnerRadius clamps r into [0, outer-MinGap].
func (a *Annulus) SetInnerRadius(r float64) {
	a.inner = clampf(r, 0, a.outer-MinGap)
}

func (a *Annulus) Contains(p r2.Vec) bool {
	d2 := r2.Norm2(p)
	return d2 >= a.inner*a.inner && d2 <= a.outer*a.outer
}

func (a *Annulus) Clamp(p r2.Vec) r2.Vec {
	if a.Contains(p) {
		return p
	}
	r := r2.Norm(p)
	if r == 0 {
		// direction is undefined at the centre; use +x
		return r2.Vec{X: a.inner * (1 + edgeEps)}
	}
	target := a.inner * (1 + edgeEps)
	if r > a.outer {
		target = a.outer * (1 - edgeEps)
	}
	return r2.Scale(target/r, p)
}

func (a *Annulus) RandomPoint(rng *rand.Rand) r2.Vec {
	d := 2 * a.outer
	return sampleBox(rng, d, d, a)
}

func (a *Annulus) Outline() [][]r2.Vec {
	loops := [][]r2.Vec{circle(a.outer, outlineSegments)}
	if a.inner > 0 {
		loops = append(loops, circle(a.inner, outlineSegments))
	}
	return loops
}

func (a *Annulus) Bounds() (float64, float64) { return 2 * a.outer, 2 * a.outer }

// Area of the ring.
func (a *Annulus) Area() float64 {
	return math.Pi * (a.outer*a.outer - a.inner*a.inner)
}
