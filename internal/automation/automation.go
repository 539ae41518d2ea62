// Package automation runs scripted and batched plate sessions without a UI.
package automation

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/chladni/internal/geom"
	"github.com/san-kum/chladni/internal/metrics"
	"github.com/san-kum/chladni/internal/plate"
)

// Scenario is a sequence of parameter changes applied to one session.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep changes the session and then runs it for Frames frames.
type ScenarioStep struct {
	Label      string             `yaml:"label"`
	Shape      string             `yaml:"shape"`
	Polygon    string             `yaml:"polygon"`
	Material   string             `yaml:"material"`
	Params     map[string]float64 `yaml:"params"`
	Regenerate bool               `yaml:"regenerate"`
	Frames     int                `yaml:"frames"`
	Dt         float64            `yaml:"dt"`
}

// StepResult is the metric readout at the end of a step.
type StepResult struct {
	Label   string
	Time    float64
	Grains  int
	Metrics map[string]float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

const defaultDt = 1.0 / 60

// RunScenario applies each step to s in order. s should have been built
// with the metrics the caller wants reported.
func RunScenario(ctx context.Context, scenario *Scenario, s *plate.Simulator) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := applyStep(s, step); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		dt := step.Dt
		if dt <= 0 {
			dt = defaultDt
		}
		if err := run(ctx, s, step.Frames, dt); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		label := step.Label
		if label == "" {
			label = fmt.Sprintf("step %d", i+1)
		}
		results = append(results, StepResult{
			Label:   label,
			Time:    s.Time(),
			Grains:  s.ActualCount(),
			Metrics: readMetrics(s.Metrics()),
		})
	}

	return results, nil
}

// geometryParams are applied before everything else in a step, outer before
// inner, so radius clamping and the excitation re-clamp see the final plate.
var geometryParams = []string{"width", "height", "outer_radius", "inner_radius", "polygon_scale"}

// paramOrder returns the keys of params in a fixed application order.
func paramOrder(params map[string]float64) []string {
	order := make([]string, 0, len(params))
	for _, k := range geometryParams {
		if _, ok := params[k]; ok {
			order = append(order, k)
		}
	}
	for _, k := range slices.Sorted(maps.Keys(params)) {
		if !slices.Contains(geometryParams, k) {
			order = append(order, k)
		}
	}
	return order
}

func applyStep(s *plate.Simulator, step ScenarioStep) error {
	if step.Polygon != "" {
		if err := s.SetPolygon(step.Polygon); err != nil {
			return err
		}
	}
	if step.Shape != "" {
		kind, ok := geom.ParseKind(step.Shape)
		if !ok {
			return &plate.ParamError{Name: "shape", Value: step.Shape, Wrapped: plate.ErrUnknownShape}
		}
		if kind != s.Params().Shape {
			if err := s.SetShapeKind(kind); err != nil {
				return err
			}
		}
	}
	if step.Material != "" {
		if err := s.SetMaterialByName(step.Material); err != nil {
			return err
		}
	}
	for _, k := range paramOrder(step.Params) {
		if err := s.SetParam(k, step.Params[k]); err != nil {
			return err
		}
	}
	if step.Regenerate {
		s.Regenerate()
	}
	return nil
}

func run(ctx context.Context, s *plate.Simulator, frames int, dt float64) error {
	for f := 0; f < frames; f++ {
		if f%60 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		s.Step(dt)
	}
	return nil
}

func readMetrics(ms []metrics.Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// ParameterSweep runs one fresh session per value of Param.
type ParameterSweep struct {
	Param    string
	ParamMin float64
	ParamMax float64
	NumSteps int
	Frames   int
	Dt       float64
	Seed     int64
}

type SweepResult struct {
	ParamValue float64
	Grains     int
	Metrics    map[string]float64
}

// RunSweep evaluates the sweep points concurrently, one session each.
func RunSweep(ctx context.Context, sweep *ParameterSweep, base plate.Parameters) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}
	dt := sweep.Dt
	if dt <= 0 {
		dt = defaultDt
	}

	results := make([]SweepResult, sweep.NumSteps)
	errs := make([]error, sweep.NumSteps)

	var wg sync.WaitGroup
	for i := 0; i < sweep.NumSteps; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			value := sweep.ParamMin + float64(idx)*paramStep

			s, err := newSession(base, sweep.Seed+int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			if err := s.SetParam(sweep.Param, value); err != nil {
				errs[idx] = err
				return
			}
			s.Regenerate()
			if err := run(ctx, s, sweep.Frames, dt); err != nil {
				errs[idx] = err
				return
			}
			results[idx] = SweepResult{
				ParamValue: value,
				Grains:     s.ActualCount(),
				Metrics:    readMetrics(s.Metrics()),
			}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// TrialsConfig repeats one scene with consecutive seeds.
type TrialsConfig struct {
	NumTrials int
	Frames    int
	Dt        float64
	Seed      int64
}

// TrialStats summarises one metric across trials.
type TrialStats struct {
	Mean, StdDev float64
	Values       []float64
}

// RunTrials measures how much the metrics depend on the random walk alone.
func RunTrials(ctx context.Context, cfg *TrialsConfig, base plate.Parameters) (map[string]TrialStats, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("need at least one trial, got %d", cfg.NumTrials)
	}
	dt := cfg.Dt
	if dt <= 0 {
		dt = defaultDt
	}

	values := make([]map[string]float64, cfg.NumTrials)
	errs := make([]error, cfg.NumTrials)

	var wg sync.WaitGroup
	for i := 0; i < cfg.NumTrials; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			s, err := newSession(base, cfg.Seed+int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			if err := run(ctx, s, cfg.Frames, dt); err != nil {
				errs[idx] = err
				return
			}
			values[idx] = readMetrics(s.Metrics())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	stats := make(map[string]TrialStats)
	for name := range values[0] {
		xs := make([]float64, len(values))
		for i, v := range values {
			xs[i] = v[name]
		}
		mean, std := stat.MeanStdDev(xs, nil)
		if len(xs) == 1 {
			std = 0
		}
		stats[name] = TrialStats{Mean: mean, StdDev: std, Values: xs}
	}
	return stats, nil
}

func newSession(base plate.Parameters, seed int64) (*plate.Simulator, error) {
	opts := []plate.Option{plate.WithSeed(seed)}
	for _, m := range metrics.Defaults() {
		opts = append(opts, plate.WithMetric(m))
	}
	return plate.New(base, opts...)
}
