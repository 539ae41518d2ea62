package config

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/chladni/internal/geom"
	"github.com/san-kum/chladni/internal/modal"
	"github.com/san-kum/chladni/internal/plate"
	"github.com/san-kum/chladni/internal/sand"
)

const (
	DefaultShape     = "rectangle"
	DefaultSize      = 0.32
	DefaultRadius    = 0.16
	DefaultPolygon   = "guitar"
	DefaultMaterial  = "copper"
	DefaultFrequency = 1000.0
	DefaultPolicy    = "clamp"
)

// Config is a scene: everything needed to rebuild a session.
type Config struct {
	Shape      string          `yaml:"shape"`
	Plate      PlateConfig     `yaml:"plate"`
	Material   string          `yaml:"material"`
	Dispersion float64         `yaml:"dispersion,omitempty"`
	Frequency  float64         `yaml:"frequency"`
	Damping    float64         `yaml:"damping"`
	Excitation ExcitationPoint `yaml:"excitation"`
	Sand       SandConfig      `yaml:"sand"`
	Seed       int64           `yaml:"seed"`
}

type PlateConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	OuterRadius  float64 `yaml:"outer_radius"`
	InnerRadius  float64 `yaml:"inner_radius"`
	Polygon      string  `yaml:"polygon"`
	PolygonScale float64 `yaml:"polygon_scale"`
}

// ExcitationPoint is plate-centred, in metres.
type ExcitationPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SandConfig struct {
	Grains    int     `yaml:"grains"`
	Policy    string  `yaml:"policy"`
	TimeScale float64 `yaml:"time_scale"`
	StepScale float64 `yaml:"step_scale"`
}

func DefaultConfig() *Config {
	return &Config{
		Shape: DefaultShape,
		Plate: PlateConfig{
			Width:        DefaultSize,
			Height:       DefaultSize,
			OuterRadius:  DefaultRadius,
			Polygon:      DefaultPolygon,
			PolygonScale: DefaultRadius,
		},
		Material:  DefaultMaterial,
		Frequency: DefaultFrequency,
		Damping:   modal.DefaultDamping,
		Sand: SandConfig{
			Grains:    sand.DefaultTarget,
			Policy:    DefaultPolicy,
			TimeScale: sand.DefaultTimeScale,
			StepScale: sand.DefaultStepScale,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Parameters resolves the names in c into session parameters.
func (c *Config) Parameters() (plate.Parameters, error) {
	p := plate.DefaultParameters()

	kind, ok := geom.ParseKind(c.Shape)
	if !ok {
		return p, &plate.ParamError{Name: "shape", Value: c.Shape, Wrapped: plate.ErrUnknownShape}
	}
	policy, ok := sand.ParsePolicy(c.Sand.Policy)
	if !ok {
		return p, &plate.ParamError{Name: "policy", Value: c.Sand.Policy, Wrapped: plate.ErrInvalidPolicy}
	}
	material, ok := modal.LookupMaterial(c.Material)
	switch {
	case c.Dispersion > 0:
		name := c.Material
		if !ok {
			name = "custom"
		}
		material = modal.Material{Name: name, Dispersion: c.Dispersion}
	case !ok:
		return p, &plate.ParamError{Name: "material", Value: c.Material, Wrapped: plate.ErrUnknownMaterial}
	}

	p.Shape = kind
	p.Width = c.Plate.Width
	p.Height = c.Plate.Height
	p.OuterRadius = c.Plate.OuterRadius
	p.InnerRadius = c.Plate.InnerRadius
	p.Polygon = c.Plate.Polygon
	p.PolygonScale = c.Plate.PolygonScale
	p.Material = material
	p.Frequency = c.Frequency
	p.Damping = c.Damping
	p.Excitation = r2.Vec{X: c.Excitation.X, Y: c.Excitation.Y}
	p.Grains = c.Sand.Grains
	p.Policy = policy
	p.TimeScale = c.Sand.TimeScale
	p.StepScale = c.Sand.StepScale
	return p, nil
}

// Apply rebuilds s from c and redistributes its grains.
func (c *Config) Apply(s *plate.Simulator) error {
	p, err := c.Parameters()
	if err != nil {
		return err
	}
	if err := s.SetParameters(p); err != nil {
		return fmt.Errorf("apply config: %w", err)
	}
	return nil
}

// FromParameters captures a session so it can be saved.
func FromParameters(p plate.Parameters) *Config {
	cfg := &Config{
		Shape: p.Shape.String(),
		Plate: PlateConfig{
			Width:        p.Width,
			Height:       p.Height,
			OuterRadius:  p.OuterRadius,
			InnerRadius:  p.InnerRadius,
			Polygon:      p.Polygon,
			PolygonScale: p.PolygonScale,
		},
		Material:   p.Material.Name,
		Frequency:  p.Frequency,
		Damping:    p.Damping,
		Excitation: ExcitationPoint{X: p.Excitation.X, Y: p.Excitation.Y},
		Sand: SandConfig{
			Grains:    p.Grains,
			Policy:    p.Policy.String(),
			TimeScale: p.TimeScale,
			StepScale: p.StepScale,
		},
	}
	if known, ok := modal.LookupMaterial(p.Material.Name); !ok || known != p.Material {
		cfg.Dispersion = p.Material.Dispersion
	}
	return cfg
}
