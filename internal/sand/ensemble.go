package sand

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/chladni/internal/geom"
)

// Policy decides what happens to a grain that leaves the plate.
type Policy int

const (
	PolicyClamp Policy = iota
	PolicyRemove
)

func (p Policy) String() string {
	switch p {
	case PolicyClamp:
		return "clamp"
	case PolicyRemove:
		return "remove"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy maps "clamp" or "remove" to a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "clamp":
		return PolicyClamp, true
	case "remove":
		return PolicyRemove, true
	}
	return 0, false
}

// GrainPresets are the grain counts offered to users.
var GrainPresets = []int{1000, 2500, 5000, 10000, 20000, 40000}

const (
	DefaultTarget    = 10000
	DefaultStepScale = 0.002
	DefaultTimeScale = 1.0
	TargetFPS        = 60.0
)

// Sampler is the field the grains react to.
type Sampler interface {
	Displacement(p r2.Vec) float64
}

// Ensemble owns the grain positions.
type Ensemble struct {
	shape  geom.Shape
	rng    *rand.Rand
	dirs   *DirectionTable
	target int
	policy Policy

	StepScale float64
	TimeScale float64

	pos []r2.Vec
}

func New(shape geom.Shape, rng *rand.Rand, target int) *Ensemble {
	if target < 0 {
		target = 0
	}
	return &Ensemble{
		shape:     shape,
		rng:       rng,
		dirs:      DefaultDirections,
		target:    target,
		StepScale: DefaultStepScale,
		TimeScale: DefaultTimeScale,
		pos:       make([]r2.Vec, 0, target),
	}
}

// Initialize discards every grain and draws Target fresh positions.
func (e *Ensemble) Initialize() {
	if cap(e.pos) < e.target {
		e.pos = make([]r2.Vec, 0, e.target)
	}
	e.pos = e.pos[:e.target]
	for i := range e.pos {
		e.pos[i] = e.shape.RandomPoint(e.rng)
	}
}

// Regenerate is Initialize under the name the UI uses.
func (e *Ensemble) Regenerate() { e.Initialize() }

// Step advances one frame of dt seconds.
func (e *Ensemble) Step(dt float64, field Sampler) {
	scale := e.StepScale * (dt * TargetFPS) * e.TimeScale
	// reverse order keeps swap-remove from skipping unvisited grains
	for i := len(e.pos) - 1; i >= 0; i-- {
		p := e.pos[i]
		d := field.Displacement(p)
		if d < 0 {
			d = -d
		}
		c, s := e.dirs.Direction(e.rng.Float64())
		step := scale * d
		p = r2.Vec{X: p.X + step*c, Y: p.Y + step*s}

		if e.shape.Contains(p) {
			e.pos[i] = p
			continue
		}
		if e.policy == PolicyRemove {
			e.remove(i)
			continue
		}
		e.pos[i] = e.shape.Clamp(p)
	}
}

func (e *Ensemble) remove(i int) {
	last := len(e.pos) - 1
	e.pos[i] = e.pos[last]
	e.pos = e.pos[:last]
}

// ClampToBounds re-applies the boundary after the shape itself changed.
// Under PolicyRemove, grains left outside are dropped instead.
func (e *Ensemble) ClampToBounds() {
	for i := len(e.pos) - 1; i >= 0; i-- {
		p := e.pos[i]
		if e.shape.Contains(p) {
			continue
		}
		if e.policy == PolicyRemove {
			e.remove(i)
			continue
		}
		e.pos[i] = e.shape.Clamp(p)
	}
}

// SetShape swaps the boundary and re-applies it to the current grains.
func (e *Ensemble) SetShape(s geom.Shape) {
	e.shape = s
	e.ClampToBounds()
}

// SetTarget changes the grain count and redistributes every grain.
func (e *Ensemble) SetTarget(n int) {
	if n < 0 {
		n = 0
	}
	e.target = n
	e.Initialize()
}

func (e *Ensemble) SetPolicy(p Policy) { e.policy = p }

func (e *Ensemble) Policy() Policy    { return e.policy }
func (e *Ensemble) Target() int       { return e.target }
func (e *Ensemble) Count() int        { return len(e.pos) }
func (e *Ensemble) Shape() geom.Shape { return e.shape }

// Positions is a read-only view of the grains; it is invalidated by the
// next Step or Initialize.
func (e *Ensemble) Positions() []r2.Vec { return e.pos }
