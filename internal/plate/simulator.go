package plate

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/chladni/internal/geom"
	"github.com/san-kum/chladni/internal/metrics"
	"github.com/san-kum/chladni/internal/modal"
	"github.com/san-kum/chladni/internal/sand"
)

// MaxFrameDt caps a single step so a stalled host loop does not fling every
// grain off the plate on the next frame.
const MaxFrameDt = 0.1

// Simulator is one plate session. It is not safe for concurrent use.
type Simulator struct {
	params   Parameters
	defaults Parameters

	shape geom.Shape
	field *modal.Field
	sand  *sand.Ensemble
	rng   *rand.Rand

	logger  *log.Logger
	metrics []metrics.Metric

	time   float64
	frames int
}

type Option func(*Simulator)

// WithLogger sets the logger for geometry and lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// WithSeed makes grain placement and motion reproducible.
func WithSeed(seed int64) Option {
	return func(s *Simulator) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithMetric registers a metric observed after every step.
func WithMetric(m metrics.Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, m) }
}

// New builds a session from p and distributes the grains. p also becomes
// the state Reset returns to.
func New(p Parameters, opts ...Option) (*Simulator, error) {
	s := &Simulator{
		defaults: p,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if err := s.load(p); err != nil {
		return nil, err
	}
	s.Initialize()
	return s, nil
}

// load replaces the whole state with p without drawing grains. Nothing is
// modified when p is rejected.
func (s *Simulator) load(p Parameters) error {
	if p.Grains <= 0 {
		return &ParamError{Name: "grains", Value: p.Grains, Wrapped: ErrInvalidGrainCount}
	}
	if p.Policy != sand.PolicyClamp && p.Policy != sand.PolicyRemove {
		return &ParamError{Name: "policy", Value: p.Policy, Wrapped: ErrInvalidPolicy}
	}
	p.Width = Limits.Width.Clamp(p.Width)
	p.Height = Limits.Height.Clamp(p.Height)
	p.OuterRadius = Limits.OuterRadius.Clamp(p.OuterRadius)
	p.PolygonScale = Limits.PolygonScale.Clamp(p.PolygonScale)
	p.Frequency = Limits.Frequency.Clamp(p.Frequency)
	p.Damping = Limits.Damping.Clamp(p.Damping)
	p.TimeScale = Limits.TimeScale.Clamp(p.TimeScale)
	p.StepScale = Limits.StepScale.Clamp(p.StepScale)

	shape, err := buildShape(&p)
	if err != nil {
		return err
	}

	s.params = p
	s.shape = shape
	w, h := shape.Bounds()
	s.field = modal.NewField(w, h, p.Material)
	s.field.SetDamping(p.Damping)
	s.field.SetFrequency(p.Frequency)

	s.sand = sand.New(shape, s.rng, p.Grains)
	s.sand.SetPolicy(p.Policy)
	s.sand.TimeScale = p.TimeScale
	s.sand.StepScale = p.StepScale

	s.params.Excitation = shape.Clamp(p.Excitation)
	s.field.SetExcitation(s.params.Excitation)
	return nil
}

// buildShape creates the shape p selects and writes back any radius the
// annulus had to adjust.
func buildShape(p *Parameters) (geom.Shape, error) {
	switch p.Shape {
	case geom.KindRectangle:
		return geom.NewRectangle(p.Width, p.Height), nil
	case geom.KindAnnulus:
		a := geom.NewAnnulus(p.OuterRadius, p.InnerRadius)
		p.InnerRadius = a.InnerRadius()
		return a, nil
	case geom.KindPolygon:
		verts, ok := geom.PolygonPreset(p.Polygon)
		if !ok {
			return nil, &ParamError{Name: "polygon", Value: p.Polygon, Wrapped: ErrUnknownPolygon}
		}
		return geom.NewPolygon(verts, p.PolygonScale), nil
	}
	return nil, &ParamError{Name: "shape", Value: p.Shape, Wrapped: ErrUnknownShape}
}

// geometryChanged propagates a resized shape to the field, the excitation
// point and the grains.
func (s *Simulator) geometryChanged() {
	w, h := s.shape.Bounds()
	s.field.SetPlate(w, h)
	s.params.Excitation = s.shape.Clamp(s.params.Excitation)
	s.field.SetExcitation(s.params.Excitation)
	s.sand.ClampToBounds()
	s.logger.Debug("geometry changed", "shape", s.params.Shape, "width", w, "height", h, "grains", s.sand.Count())
}

// Initialize discards and redraws every grain.
func (s *Simulator) Initialize() {
	s.sand.Initialize()
	s.time, s.frames = 0, 0
	for _, m := range s.metrics {
		m.Reset()
	}
	s.logger.Debug("grains initialized", "count", s.sand.Count(), "shape", s.params.Shape)
}

func (s *Simulator) Regenerate() { s.Initialize() }

// SetParameters replaces the whole session state with p and redistributes
// the grains. On error the session is left unchanged.
func (s *Simulator) SetParameters(p Parameters) error {
	if err := s.load(p); err != nil {
		return err
	}
	s.Initialize()
	s.logger.Debug("parameters replaced", "shape", s.params.Shape, "frequency", s.params.Frequency)
	return nil
}

// Reset restores the parameters New was given and redistributes the grains.
func (s *Simulator) Reset() {
	// defaults were validated by New
	_ = s.load(s.defaults)
	s.Initialize()
	s.logger.Info("session reset")
}

// Step advances the grains by one frame of dt seconds.
func (s *Simulator) Step(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > MaxFrameDt {
		dt = MaxFrameDt
	}
	s.sand.Step(dt, s.field)
	s.time += dt
	s.frames++

	if len(s.metrics) == 0 {
		return
	}
	frame := metrics.Frame{
		Time:      s.time,
		Positions: s.sand.Positions(),
		Target:    s.sand.Target(),
		Field:     s.field,
	}
	for _, m := range s.metrics {
		m.Observe(frame)
	}
}

// SetShapeKind switches the plate outline and redistributes the grains.
func (s *Simulator) SetShapeKind(k geom.Kind) error {
	p := s.params
	p.Shape = k
	shape, err := buildShape(&p)
	if err != nil {
		return err
	}
	s.params = p
	s.shape = shape
	s.sand.SetShape(shape)
	s.geometryChanged()
	s.Initialize()
	return nil
}

// SetPolygon selects a polygon preset. The shape only changes when the
// polygon outline is active.
func (s *Simulator) SetPolygon(name string) error {
	if _, ok := geom.PolygonPreset(name); !ok {
		return &ParamError{Name: "polygon", Value: name, Wrapped: ErrUnknownPolygon}
	}
	s.params.Polygon = name
	if s.params.Shape == geom.KindPolygon {
		return s.SetShapeKind(geom.KindPolygon)
	}
	return nil
}

func (s *Simulator) SetWidth(w float64) {
	s.params.Width = Limits.Width.Clamp(w)
	if r, ok := s.shape.(*geom.Rectangle); ok {
		r.SetSize(s.params.Width, s.params.Height)
		s.geometryChanged()
	}
}

func (s *Simulator) SetHeight(h float64) {
	s.params.Height = Limits.Height.Clamp(h)
	if r, ok := s.shape.(*geom.Rectangle); ok {
		r.SetSize(s.params.Width, s.params.Height)
		s.geometryChanged()
	}
}

func (s *Simulator) SetOuterRadius(r float64) {
	s.params.OuterRadius = Limits.OuterRadius.Clamp(r)
	a, ok := s.shape.(*geom.Annulus)
	if !ok {
		s.params.InnerRadius = clampInner(s.params.InnerRadius, s.params.OuterRadius)
		return
	}
	a.SetOuterRadius(s.params.OuterRadius)
	s.params.InnerRadius = a.InnerRadius()
	s.geometryChanged()
}

func (s *Simulator) SetInnerRadius(r float64) {
	a, ok := s.shape.(*geom.Annulus)
	if !ok {
		s.params.InnerRadius = clampInner(r, s.params.OuterRadius)
		return
	}
	a.SetInnerRadius(r)
	s.params.InnerRadius = a.InnerRadius()
	s.geometryChanged()
}

func clampInner(r, outer float64) float64 {
	return Range{0, outer - geom.MinGap}.Clamp(r)
}

func (s *Simulator) SetPolygonScale(v float64) {
	s.params.PolygonScale = Limits.PolygonScale.Clamp(v)
	if p, ok := s.shape.(*geom.Polygon); ok {
		p.SetScale(s.params.PolygonScale)
		s.geometryChanged()
	}
}

// SetExcitation moves the driving point, clamped into the plate.
func (s *Simulator) SetExcitation(p r2.Vec) {
	s.params.Excitation = s.shape.Clamp(p)
	s.field.SetExcitation(s.params.Excitation)
}

func (s *Simulator) SetMaterial(m modal.Material) {
	s.params.Material = m
	s.field.SetMaterial(m)
}

func (s *Simulator) SetMaterialByName(name string) error {
	m, ok := modal.LookupMaterial(name)
	if !ok {
		return &ParamError{Name: "material", Value: name, Wrapped: ErrUnknownMaterial}
	}
	s.SetMaterial(m)
	return nil
}

func (s *Simulator) SetFrequency(hz float64) {
	s.params.Frequency = Limits.Frequency.Clamp(hz)
	s.field.SetFrequency(s.params.Frequency)
}

func (s *Simulator) SetDamping(d float64) {
	s.params.Damping = Limits.Damping.Clamp(d)
	s.field.SetDamping(s.params.Damping)
}

// SetGrainCount changes the target population and redistributes it.
func (s *Simulator) SetGrainCount(n int) error {
	if n <= 0 {
		return &ParamError{Name: "grains", Value: n, Wrapped: ErrInvalidGrainCount}
	}
	s.params.Grains = n
	s.sand.SetTarget(n)
	s.logger.Debug("grain count changed", "target", n)
	return nil
}

func (s *Simulator) SetPolicy(p sand.Policy) error {
	if p != sand.PolicyClamp && p != sand.PolicyRemove {
		return &ParamError{Name: "policy", Value: p, Wrapped: ErrInvalidPolicy}
	}
	s.params.Policy = p
	s.sand.SetPolicy(p)
	return nil
}

func (s *Simulator) SetTimeScale(v float64) {
	s.params.TimeScale = Limits.TimeScale.Clamp(v)
	s.sand.TimeScale = s.params.TimeScale
}

func (s *Simulator) SetStepScale(v float64) {
	s.params.StepScale = Limits.StepScale.Clamp(v)
	s.sand.StepScale = s.params.StepScale
}

// Displacement samples the field at p for the current frequency.
func (s *Simulator) Displacement(p r2.Vec) float64 { return s.field.Displacement(p) }

// Strength samples the resonance curve at hz.
func (s *Simulator) Strength(hz float64) float64 { return s.field.Strength(hz) }

func (s *Simulator) Contains(p r2.Vec) bool { return s.shape.Contains(p) }
func (s *Simulator) Clamp(p r2.Vec) r2.Vec  { return s.shape.Clamp(p) }
func (s *Simulator) RandomPoint() r2.Vec    { return s.shape.RandomPoint(s.rng) }

// Positions is a read-only view of the grains until the next Step.
func (s *Simulator) Positions() []r2.Vec { return s.sand.Positions() }
func (s *Simulator) ActualCount() int    { return s.sand.Count() }
func (s *Simulator) TargetCount() int    { return s.sand.Target() }

func (s *Simulator) Params() Parameters        { return s.params }
func (s *Simulator) Shape() geom.Shape         { return s.shape }
func (s *Simulator) Field() *modal.Field       { return s.field }
func (s *Simulator) Metrics() []metrics.Metric { return s.metrics }
func (s *Simulator) Time() float64             { return s.time }
func (s *Simulator) Frames() int               { return s.frames }
