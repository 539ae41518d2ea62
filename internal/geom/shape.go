package geom

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Kind tags the concrete shape behind a [Shape].
type Kind int

const (
	KindRectangle Kind = iota
	KindAnnulus
	KindPolygon
)

var kindNames = map[Kind]string{
	KindRectangle: "rectangle",
	KindAnnulus:   "annulus",
	KindPolygon:   "polygon",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a shape name back to its tag.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Shape is the spatial domain particles and the excitation point live in.
type Shape interface {
	Kind() Kind
	Contains(p r2.Vec) bool
	// Clamp returns the nearest point of the region. Points already inside
	// are returned unchanged.
	Clamp(p r2.Vec) r2.Vec
	RandomPoint(rng *rand.Rand) r2.Vec
	// Outline returns closed loops for drawing; it carries no physics.
	Outline() [][]r2.Vec
	// Bounds is the size of the bounding box centred on the origin.
	Bounds() (width, height float64)
}

const (
	// maxRejections caps rejection sampling so a degenerate region cannot
	// hang the frame loop.
	maxRejections = 10000

	// edgeEps pulls projected points strictly inside so that Contains holds
	// after rounding.
	edgeEps = 1e-9

	outlineSegments = 64
)

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func circle(radius float64, segments int) []r2.Vec {
	loop := make([]r2.Vec, segments)
	for i := range loop {
		a := 2 * math.Pi * float64(i) / float64(segments)
		loop[i] = r2.Vec{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return loop
}

// sampleBox draws from the box [-w/2, w/2] x [-h/2, h/2] until inside
// reports true. After maxRejections it clamps the last draw.
func sampleBox(rng *rand.Rand, w, h float64, s Shape) r2.Vec {
	var p r2.Vec
	for i := 0; i < maxRejections; i++ {
		p = r2.Vec{X: (rng.Float64() - 0.5) * w, Y: (rng.Float64() - 0.5) * h}
		if s.Contains(p) {
			return p
		}
	}
	return s.Clamp(p)
}
