package geom

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Polygon is a free-form plate outline. Vertices are kept in unit space,
// recentred on their bounding box, and scaled by Scale into metres.
type Polygon struct {
	unit  []r2.Vec
	scale float64

	verts  []r2.Vec
	width  float64
	height float64
	ccw    bool
}

// NewPolygon builds a polygon from unit-space vertices. Fewer than three
// vertices give a polygon that contains nothing.
func NewPolygon(unit []r2.Vec, scale float64) *Polygon {
	p := &Polygon{unit: recentre(unit), scale: scale}
	p.rebuild()
	return p
}

func recentre(pts []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, len(pts))
	if len(pts) == 0 {
		return out
	}
	minX, maxX, minY, maxY := bbox(pts)
	c := r2.Vec{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
	for i, v := range pts {
		out[i] = r2.Sub(v, c)
	}
	return out
}

func bbox(pts []r2.Vec) (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, v := range pts {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}
	return
}

func (p *Polygon) rebuild() {
	p.verts = make([]r2.Vec, len(p.unit))
	for i, v := range p.unit {
		p.verts[i] = r2.Scale(p.scale, v)
	}
	p.width, p.height = 0, 0
	if len(p.verts) > 0 {
		minX, maxX, minY, maxY := bbox(p.verts)
		p.width, p.height = maxX-minX, maxY-minY
	}
	p.ccw = signedArea(p.verts) > 0
}

func signedArea(v []r2.Vec) float64 {
	sum := 0.0
	for i := range v {
		j := (i + 1) % len(v)
		sum += v[i].X*v[j].Y - v[j].X*v[i].Y
	}
	return sum / 2
}

func (p *Polygon) Kind() Kind { return KindPolygon }

// SetScale rescales the outline; scale is the half-extent of the unit shape.
func (p *Polygon) SetScale(scale float64) {
	p.scale = scale
	p.rebuild()
}

func (p *Polygon) Scale() float64 { return p.scale }

// Vertices returns the scaled vertices. The slice must not be modified.
func (p *Polygon) Vertices() []r2.Vec { return p.verts }

// Area is the absolute enclosed area.
func (p *Polygon) Area() float64 {
	if len(p.verts) < 3 {
		return 0
	}
	return math.Abs(signedArea(p.verts))
}

func (p *Polygon) Contains(q r2.Vec) bool {
	v := p.verts
	n := len(v)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if (v[i].Y > q.Y) != (v[j].Y > q.Y) &&
			q.X < (v[j].X-v[i].X)*(q.Y-v[i].Y)/(v[j].Y-v[i].Y)+v[i].X {
			inside = !inside
		}
	}
	return inside
}

// Clamp projects q onto the nearest edge and nudges it inward until it
// tests inside. It runs in O(vertices) and is meant for geometry changes,
// not for every particle on every tick.
func (p *Polygon) Clamp(q r2.Vec) r2.Vec {
	if p.Contains(q) {
		return q
	}
	n := len(p.verts)
	if n < 3 {
		return q
	}

	best := math.Inf(1)
	var nearest r2.Vec
	edge, at := 0, 0.0
	for i := 0; i < n; i++ {
		a, b := p.verts[i], p.verts[(i+1)%n]
		proj, t := projectSegment(q, a, b)
		if d := r2.Norm2(r2.Sub(q, proj)); d < best {
			best, nearest, edge, at = d, proj, i, t
		}
	}

	dir := p.inwardNormal(edge)
	switch {
	case at <= 0:
		dir = r2.Add(dir, p.inwardNormal((edge+n-1)%n))
	case at >= 1:
		dir = r2.Add(dir, p.inwardNormal((edge+1)%n))
	}
	if l := r2.Norm(dir); l > 0 {
		dir = r2.Scale(1/l, dir)
	}

	for eps := p.scale * edgeEps; eps < p.scale; eps *= 10 {
		c := r2.Add(nearest, r2.Scale(eps, dir))
		if p.Contains(c) {
			return c
		}
	}

	centre, ok := p.interiorPoint()
	if !ok {
		return nearest
	}
	for _, f := range []float64{1e-3, 1e-2, 0.1, 0.5} {
		c := r2.Add(nearest, r2.Scale(f, r2.Sub(centre, nearest)))
		if p.Contains(c) {
			return c
		}
	}
	return centre
}

// interiorPoint finds a point that Contains accepts: the midpoint of the
// widest inside span of a horizontal scan line. The centroid's row is tried
// first, then rows spread over the bounding box.
func (p *Polygon) interiorPoint() (r2.Vec, bool) {
	if c := p.centroid(); p.Contains(c) {
		return c, true
	}
	_, _, minY, maxY := bbox(p.verts)
	rows := []float64{p.centroid().Y}
	for _, f := range []float64{0.5, 0.25, 0.75, 0.125, 0.375, 0.625, 0.875} {
		rows = append(rows, minY+f*(maxY-minY))
	}
	for _, y := range rows {
		xs := p.crossings(y)
		best, found := r2.Vec{}, false
		widest := 0.0
		for i := 0; i+1 < len(xs); i += 2 {
			if w := xs[i+1] - xs[i]; w > widest {
				widest = w
				best, found = r2.Vec{X: (xs[i] + xs[i+1]) / 2, Y: y}, true
			}
		}
		if found && p.Contains(best) {
			return best, true
		}
	}
	return r2.Vec{}, false
}

// crossings returns the sorted x positions where the row y crosses an edge,
// using the same half-open rule as Contains.
func (p *Polygon) crossings(y float64) []float64 {
	v := p.verts
	var xs []float64
	for i, j := 0, len(v)-1; i < len(v); j, i = i, i+1 {
		if (v[i].Y > y) != (v[j].Y > y) {
			xs = append(xs, (v[j].X-v[i].X)*(y-v[i].Y)/(v[j].Y-v[i].Y)+v[i].X)
		}
	}
	sort.Float64s(xs)
	return xs
}

func projectSegment(q, a, b r2.Vec) (r2.Vec, float64) {
	d := r2.Sub(b, a)
	l2 := r2.Norm2(d)
	if l2 == 0 {
		return a, 0
	}
	t := clampf(r2.Dot(r2.Sub(q, a), d)/l2, 0, 1)
	return r2.Add(a, r2.Scale(t, d)), t
}

func (p *Polygon) inwardNormal(i int) r2.Vec {
	a, b := p.verts[i], p.verts[(i+1)%len(p.verts)]
	d := r2.Sub(b, a)
	nrm := r2.Vec{X: -d.Y, Y: d.X}
	if !p.ccw {
		nrm = r2.Scale(-1, nrm)
	}
	if l := r2.Norm(nrm); l > 0 {
		nrm = r2.Scale(1/l, nrm)
	}
	return nrm
}

func (p *Polygon) centroid() r2.Vec {
	var c r2.Vec
	for _, v := range p.verts {
		c = r2.Add(c, v)
	}
	return r2.Scale(1/float64(len(p.verts)), c)
}

func (p *Polygon) RandomPoint(rng *rand.Rand) r2.Vec {
	return sampleBox(rng, p.width, p.height, p)
}

func (p *Polygon) Outline() [][]r2.Vec {
	if len(p.verts) == 0 {
		return nil
	}
	loop := make([]r2.Vec, len(p.verts))
	copy(loop, p.verts)
	return [][]r2.Vec{loop}
}

func (p *Polygon) Bounds() (float64, float64) { return p.width, p.height }
