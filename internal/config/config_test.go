package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/san-kum/chladni/internal/geom"
	"github.com/san-kum/chladni/internal/plate"
	"github.com/san-kum/chladni/internal/sand"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Shape != "rectangle" {
		t.Errorf("expected shape rectangle, got %s", cfg.Shape)
	}
	if cfg.Frequency <= 0 {
		t.Error("frequency should be positive")
	}
	if cfg.Sand.Grains <= 0 {
		t.Error("grain count should be positive")
	}

	p, err := cfg.Parameters()
	if err != nil {
		t.Fatalf("Parameters: %v", err)
	}
	if p != plate.DefaultParameters() {
		t.Errorf("default config resolves to %+v, want %+v", p, plate.DefaultParameters())
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	cfg := GetPreset("annulus", "ring")
	cfg.Seed = 42

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "shape: polygon\nfrequency: 2200\nplate:\n  polygon: star\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Shape != "polygon" || cfg.Plate.Polygon != "star" || cfg.Frequency != 2200 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Material != DefaultMaterial || cfg.Sand.Grains != sand.DefaultTarget {
		t.Errorf("defaults lost: material %q grains %d", cfg.Material, cfg.Sand.Grains)
	}
	if cfg.Plate.PolygonScale != DefaultRadius {
		t.Errorf("polygon scale = %v, want %v", cfg.Plate.PolygonScale, DefaultRadius)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParameters_Errors(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
		want error
	}{
		{"shape", func(c *Config) { c.Shape = "triangle" }, plate.ErrUnknownShape},
		{"policy", func(c *Config) { c.Sand.Policy = "bounce" }, plate.ErrInvalidPolicy},
		{"material", func(c *Config) { c.Material = "cheese" }, plate.ErrUnknownMaterial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)
			if _, err := cfg.Parameters(); !errors.Is(err, tt.want) {
				t.Errorf("Parameters() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParameters_DispersionOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Material = "cheese"
	cfg.Dispersion = 0.3

	p, err := cfg.Parameters()
	if err != nil {
		t.Fatalf("Parameters: %v", err)
	}
	if p.Material.Dispersion != 0.3 || p.Material.Name != "custom" {
		t.Errorf("material = %+v, want custom 0.3", p.Material)
	}
}

func TestApply(t *testing.T) {
	s, err := plate.New(plate.DefaultParameters(), plate.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}

	cfg := GetPreset("polygon", "star")
	cfg.Sand.Grains = 300
	if err := cfg.Apply(s); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	p := s.Params()
	if p.Shape != geom.KindPolygon || p.Polygon != "star" {
		t.Errorf("shape = %v/%s, want polygon/star", p.Shape, p.Polygon)
	}
	if p.Frequency != cfg.Frequency {
		t.Errorf("frequency = %v, want %v", p.Frequency, cfg.Frequency)
	}
	if s.ActualCount() != 300 {
		t.Errorf("grains = %d, want 300", s.ActualCount())
	}
	for _, pt := range s.Positions() {
		if !s.Contains(pt) {
			t.Fatalf("grain %v outside the star", pt)
		}
	}

	if got := FromParameters(p); got.Shape != "polygon" || got.Plate.Polygon != "star" || got.Dispersion != 0 {
		t.Errorf("FromParameters = %+v", got)
	}
}

func TestApply_Rejected(t *testing.T) {
	s, err := plate.New(plate.DefaultParameters(), plate.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Plate.Polygon = "teapot"
	cfg.Shape = "polygon"
	if err := cfg.Apply(s); !errors.Is(err, plate.ErrUnknownPolygon) {
		t.Errorf("Apply error = %v, want ErrUnknownPolygon", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("rectangle", "offcentre")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Excitation.X != 0.05 {
		t.Errorf("expected excitation x 0.05, got %f", cfg.Excitation.X)
	}

	cfg.Frequency = 1
	if Presets["rectangle"]["offcentre"].Frequency == 1 {
		t.Error("GetPreset returned the shared preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("rectangle", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "classic"); cfg != nil {
		t.Error("expected nil for nonexistent shape")
	}
	if cfg := FindPreset("nonexistent"); cfg != nil {
		t.Error("expected nil from FindPreset")
	}
}

func TestPresetsResolve(t *testing.T) {
	for _, shape := range Shapes() {
		names := ListPresets(shape)
		if len(names) == 0 {
			t.Errorf("no presets for %s", shape)
		}
		for _, name := range names {
			cfg := FindPreset(name)
			if cfg == nil {
				t.Errorf("FindPreset(%q) = nil", name)
				continue
			}
			p, err := cfg.Parameters()
			if err != nil {
				t.Errorf("%s/%s: %v", shape, name, err)
				continue
			}
			if p.Shape.String() != shape {
				t.Errorf("%s/%s resolves to a %s", shape, name, p.Shape)
			}
		}
	}

	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent shape")
	}
}
