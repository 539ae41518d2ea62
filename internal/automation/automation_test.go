package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/san-kum/chladni/internal/geom"
	"github.com/san-kum/chladni/internal/metrics"
	"github.com/san-kum/chladni/internal/plate"
)

func smallScene() plate.Parameters {
	p := plate.DefaultParameters()
	p.Grains = 200
	return p
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := `name: demo
steps:
  - label: low
    params: {frequency: 600}
    frames: 10
  - shape: annulus
    material: brass
    frames: 5
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.Name != "demo" || len(sc.Steps) != 2 {
		t.Fatalf("scenario = %+v", sc)
	}
	if sc.Steps[0].Params["frequency"] != 600 || sc.Steps[1].Shape != "annulus" {
		t.Errorf("steps = %+v", sc.Steps)
	}
}

func TestRunScenario(t *testing.T) {
	s, err := plate.New(smallScene(), plate.WithSeed(1), plate.WithMetric(metrics.NewSurvival()))
	if err != nil {
		t.Fatal(err)
	}
	sc := &Scenario{Steps: []ScenarioStep{
		{Label: "drive", Params: map[string]float64{"frequency": 1500}, Frames: 30},
		{Shape: "polygon", Polygon: "star", Material: "glass", Frames: 30},
	}}

	results, err := RunScenario(context.Background(), sc, s)
	if err != nil {
		t.Fatalf("RunScenario: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Label != "drive" || results[1].Label != "step 2" {
		t.Errorf("labels = %q, %q", results[0].Label, results[1].Label)
	}
	if s.Params().Shape != geom.KindPolygon || s.Params().Polygon != "star" {
		t.Errorf("shape = %v/%s", s.Params().Shape, s.Params().Polygon)
	}
	if s.Params().Frequency != 1500 {
		t.Errorf("frequency = %v, want 1500", s.Params().Frequency)
	}
	if v, ok := results[1].Metrics["survival"]; !ok || v != 1 {
		t.Errorf("survival = %v (present %v), want 1 under clamp", v, ok)
	}
}

func TestRunScenario_ParamOrder(t *testing.T) {
	p := smallScene()
	p.Shape = geom.KindAnnulus
	step := ScenarioStep{Params: map[string]float64{
		"inner_radius": 0.25,
		"outer_radius": 0.3,
		"width":        0.4,
		"excitation_x": 0.1,
		"frequency":    1200,
	}}

	for i := 0; i < 50; i++ {
		s, err := plate.New(p, plate.WithSeed(1))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := RunScenario(context.Background(), &Scenario{Steps: []ScenarioStep{step}}, s); err != nil {
			t.Fatalf("RunScenario: %v", err)
		}
		got := s.Params()
		if got.OuterRadius != 0.3 || got.InnerRadius != 0.25 {
			t.Fatalf("run %d: radii = %v/%v, want 0.3/0.25", i, got.OuterRadius, got.InnerRadius)
		}
	}
}

func TestParamOrder(t *testing.T) {
	got := paramOrder(map[string]float64{
		"frequency":    1,
		"inner_radius": 1,
		"damping":      1,
		"outer_radius": 1,
		"width":        1,
	})
	want := []string{"width", "outer_radius", "inner_radius", "damping", "frequency"}
	if !slices.Equal(got, want) {
		t.Errorf("paramOrder = %v, want %v", got, want)
	}
}

func TestRunScenario_Errors(t *testing.T) {
	s, err := plate.New(smallScene(), plate.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		step ScenarioStep
		want error
	}{
		{"shape", ScenarioStep{Shape: "triangle"}, plate.ErrUnknownShape},
		{"polygon", ScenarioStep{Polygon: "teapot"}, plate.ErrUnknownPolygon},
		{"material", ScenarioStep{Material: "cheese"}, plate.ErrUnknownMaterial},
		{"param", ScenarioStep{Params: map[string]float64{"gravity": 9.8}}, plate.ErrUnknownParam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunScenario(context.Background(), &Scenario{Steps: []ScenarioStep{tt.step}}, s)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunScenario_Cancelled(t *testing.T) {
	s, err := plate.New(smallScene(), plate.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sc := &Scenario{Steps: []ScenarioStep{{Frames: 100}}}
	if _, err := RunScenario(ctx, sc, s); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Param:    "frequency",
		ParamMin: 500,
		ParamMax: 1500,
		NumSteps: 5,
		Frames:   10,
		Seed:     3,
	}
	results, err := RunSweep(context.Background(), sweep, smallScene())
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	want := []float64{500, 750, 1000, 1250, 1500}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, r := range results {
		if r.ParamValue != want[i] {
			t.Errorf("result %d value = %v, want %v", i, r.ParamValue, want[i])
		}
		if r.Grains != 200 {
			t.Errorf("result %d grains = %d, want 200", i, r.Grains)
		}
		if _, ok := r.Metrics["mean_displacement"]; !ok {
			t.Errorf("result %d missing mean_displacement: %v", i, r.Metrics)
		}
	}
}

func TestRunSweep_Errors(t *testing.T) {
	if _, err := RunSweep(context.Background(), &ParameterSweep{Param: "frequency"}, smallScene()); err == nil {
		t.Error("expected error for zero steps")
	}
	bad := &ParameterSweep{Param: "gravity", ParamMin: 1, ParamMax: 2, NumSteps: 2}
	if _, err := RunSweep(context.Background(), bad, smallScene()); !errors.Is(err, plate.ErrUnknownParam) {
		t.Errorf("error = %v, want ErrUnknownParam", err)
	}
}

func TestRunTrials(t *testing.T) {
	stats, err := RunTrials(context.Background(), &TrialsConfig{NumTrials: 4, Frames: 20, Seed: 10}, smallScene())
	if err != nil {
		t.Fatalf("RunTrials: %v", err)
	}
	surv, ok := stats["survival"]
	if !ok {
		t.Fatalf("missing survival stats: %v", stats)
	}
	if surv.Mean != 1 || surv.StdDev != 0 || len(surv.Values) != 4 {
		t.Errorf("survival stats = %+v, want all 1 under clamp", surv)
	}
}
