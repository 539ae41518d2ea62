package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/chladni/internal/automation"
	"github.com/san-kum/chladni/internal/config"
	"github.com/san-kum/chladni/internal/metrics"
	"github.com/san-kum/chladni/internal/modal"
	"github.com/san-kum/chladni/internal/plate"
	"github.com/san-kum/chladni/internal/sand"
	"github.com/san-kum/chladni/internal/tui"
	"github.com/san-kum/chladni/internal/viz"
)

var (
	logLevel string
	logFile  string
	theme    string

	configFile string
	preset     string

	shape      string
	width      float64
	height     float64
	outer      float64
	inner      float64
	polygon    string
	scale      float64
	material   string
	dispersion float64
	frequency  float64
	damping    float64
	exciteX    float64
	exciteY    float64
	grains     int
	policy     string
	timeScale  float64
	seed       int64

	steps    int
	fps      float64
	cols     int
	rows     int
	nodal    bool
	saveTo   string
	minHz    float64
	maxHz    float64
	samples  int
	plotCols int
	plotRows int

	sweepParam  string
	sweepFrom   float64
	sweepTo     float64
	sweepPoints int
	trials      int
	sweepFrames int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "chladni",
		Short:         "chladni figure simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive plate in the terminal",
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and print the settled pattern",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&steps, "steps", 600, "frames to simulate")
	runCmd.Flags().Float64Var(&fps, "fps", 60, "frames per simulated second")
	runCmd.Flags().IntVar(&cols, "cols", 60, "output width in characters")
	runCmd.Flags().IntVar(&rows, "rows", 30, "output height in characters")
	runCmd.Flags().BoolVar(&nodal, "nodal", false, "print the nodal map instead of the sand")
	runCmd.Flags().StringVar(&saveTo, "save", "", "write the resolved scene to a yaml file")

	resonanceCmd := &cobra.Command{
		Use:   "resonance",
		Short: "plot resonance strength over a frequency sweep",
		RunE:  runResonance,
	}
	resonanceCmd.Flags().Float64Var(&minHz, "min", 50, "sweep start (Hz)")
	resonanceCmd.Flags().Float64Var(&maxHz, "max", 4000, "sweep end (Hz)")
	resonanceCmd.Flags().IntVar(&samples, "samples", 800, "sweep samples")
	resonanceCmd.Flags().IntVar(&plotCols, "cols", 80, "plot width")
	resonanceCmd.Flags().IntVar(&plotRows, "rows", 12, "plot height")

	for _, c := range []*cobra.Command{rootCmd, tuiCmd, runCmd, resonanceCmd} {
		addSceneFlags(c)
	}
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().StringVar(&logFile, "log-file", "", "write logs here while the TUI owns the terminal")
		c.Flags().StringVar(&theme, "theme", viz.DefaultTheme.Name, "colour theme ("+strings.Join(viz.ThemeNames(), "|")+")")
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of parameter changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addSceneFlags(scenarioCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one session per value of a parameter and compare metrics",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "frequency", "parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 500, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 3000, "last value")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 6, "number of values")
	sweepCmd.Flags().IntVar(&trials, "trials", 1, "seeds per value; more than one reports mean and spread")
	sweepCmd.Flags().IntVar(&sweepFrames, "frames", 600, "frames per session")
	sweepCmd.Flags().Float64Var(&fps, "fps", 60, "frames per simulated second")
	addSceneFlags(sweepCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [shape]",
		Short: "list scene presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	materialsCmd := &cobra.Command{
		Use:   "materials",
		Short: "list plate materials",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDISPERSION")
			for _, name := range modal.MaterialNames() {
				fmt.Fprintf(w, "%s\t%.3f\n", name, modal.Materials[name].Dispersion)
			}
			w.Flush()
		},
	}

	rootCmd.AddCommand(tuiCmd, runCmd, resonanceCmd, scenarioCmd, sweepCmd, presetsCmd, materialsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSceneFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&configFile, "config", "", "scene file (yaml)")
	f.StringVar(&preset, "preset", "", "scene preset (see `chladni presets`)")
	f.StringVar(&shape, "shape", config.DefaultShape, "plate shape (rectangle|annulus|polygon)")
	f.Float64Var(&width, "width", config.DefaultSize, "rectangle width (m)")
	f.Float64Var(&height, "height", config.DefaultSize, "rectangle height (m)")
	f.Float64Var(&outer, "outer", config.DefaultRadius, "annulus outer radius (m)")
	f.Float64Var(&inner, "inner", 0, "annulus inner radius (m)")
	f.StringVar(&polygon, "polygon", config.DefaultPolygon, "polygon preset")
	f.Float64Var(&scale, "scale", config.DefaultRadius, "polygon scale (m)")
	f.StringVar(&material, "material", config.DefaultMaterial, "plate material")
	f.Float64Var(&dispersion, "dispersion", 0, "override the material dispersion constant")
	f.Float64Var(&frequency, "frequency", config.DefaultFrequency, "driving frequency (Hz)")
	f.Float64Var(&damping, "damping", modal.DefaultDamping, "damping coefficient")
	f.Float64Var(&exciteX, "excite-x", 0, "excitation point x (m)")
	f.Float64Var(&exciteY, "excite-y", 0, "excitation point y (m)")
	f.IntVar(&grains, "grains", sand.DefaultTarget, "number of sand grains")
	f.StringVar(&policy, "policy", config.DefaultPolicy, "grains leaving the plate: clamp|remove")
	f.Float64Var(&timeScale, "time-scale", sand.DefaultTimeScale, "simulation speed multiplier")
	f.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
}

// loadScene resolves preset, then config file, then explicitly set flags.
func loadScene(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.FindPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("shape") {
		cfg.Shape = shape
	}
	if flags.Changed("width") {
		cfg.Plate.Width = width
	}
	if flags.Changed("height") {
		cfg.Plate.Height = height
	}
	if flags.Changed("outer") {
		cfg.Plate.OuterRadius = outer
	}
	if flags.Changed("inner") {
		cfg.Plate.InnerRadius = inner
	}
	if flags.Changed("polygon") {
		cfg.Plate.Polygon = polygon
	}
	if flags.Changed("scale") {
		cfg.Plate.PolygonScale = scale
	}
	if flags.Changed("material") {
		cfg.Material = material
	}
	if flags.Changed("dispersion") {
		cfg.Dispersion = dispersion
	}
	if flags.Changed("frequency") {
		cfg.Frequency = frequency
	}
	if flags.Changed("damping") {
		cfg.Damping = damping
	}
	if flags.Changed("excite-x") {
		cfg.Excitation.X = exciteX
	}
	if flags.Changed("excite-y") {
		cfg.Excitation.Y = exciteY
	}
	if flags.Changed("grains") {
		cfg.Sand.Grains = grains
	}
	if flags.Changed("policy") {
		cfg.Sand.Policy = policy
	}
	if flags.Changed("time-scale") {
		cfg.Sand.TimeScale = timeScale
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}

func newLogger(out io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          "chladni",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

func newSimulator(cfg *config.Config, logger *log.Logger, opts ...plate.Option) (*plate.Simulator, error) {
	p, err := cfg.Parameters()
	if err != nil {
		return nil, err
	}
	opts = append(opts, plate.WithLogger(logger))
	if cfg.Seed != 0 {
		opts = append(opts, plate.WithSeed(cfg.Seed))
	}
	sim, err := plate.New(p, opts...)
	if err != nil {
		return nil, fmt.Errorf("create plate: %w", err)
	}
	return sim, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	out := io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger, err := newLogger(out)
	if err != nil {
		return err
	}
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	opts := make([]plate.Option, 0, 3)
	for _, m := range metrics.Defaults() {
		opts = append(opts, plate.WithMetric(m))
	}
	sim, err := newSimulator(cfg, logger, opts...)
	if err != nil {
		return err
	}
	logger.Info("starting tui", "shape", cfg.Shape, "frequency", cfg.Frequency, "grains", cfg.Sand.Grains)
	return tui.RunInteractive(sim, theme)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	if fps <= 0 {
		return fmt.Errorf("--fps must be positive, got %g", fps)
	}

	ms := metrics.Defaults()
	opts := make([]plate.Option, 0, len(ms))
	for _, m := range ms {
		opts = append(opts, plate.WithMetric(m))
	}
	sim, err := newSimulator(cfg, logger, opts...)
	if err != nil {
		return err
	}
	if saveTo != "" {
		if err := config.Save(saveTo, config.FromParameters(sim.Params())); err != nil {
			return fmt.Errorf("save scene: %w", err)
		}
		logger.Info("scene saved", "path", saveTo)
	}

	start := time.Now()
	for i := 0; i < steps; i++ {
		sim.Step(1 / fps)
	}
	logger.Debug("run finished", "steps", steps, "elapsed", time.Since(start))

	canvas := viz.NewCanvas(cols, rows)
	if nodal {
		proj := viz.DrawNodal(canvas, sim.Shape(), sim.Field(), 0.05)
		viz.DrawOutline(canvas, proj, sim.Shape())
	} else {
		viz.DrawPlate(canvas, sim.Shape(), sim.Positions(), true)
	}

	styles := viz.NewStyles(viz.DefaultTheme)
	p := sim.Params()
	fmt.Println(styles.Title.Render(fmt.Sprintf("%s · %s · %.1f Hz", p.Shape, p.Material.Name, p.Frequency)))
	fmt.Print(lipgloss.NewStyle().Foreground(viz.DefaultTheme.Sand).Render(canvas.String()))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "time\t%.2f s\n", sim.Time())
	fmt.Fprintf(w, "grains\t%d/%d\n", sim.ActualCount(), sim.TargetCount())
	fmt.Fprintf(w, "active modes\t%d\n", sim.Field().ActiveModes())
	for _, m := range ms {
		fmt.Fprintf(w, "%s\t%.4g\n", m.Name(), m.Value())
	}
	return w.Flush()
}

func runResonance(cmd *cobra.Command, args []string) error {
	if minHz <= 0 || maxHz <= minHz {
		return fmt.Errorf("invalid sweep range %g-%g Hz", minHz, maxHz)
	}
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.Parameters()
	if err != nil {
		return err
	}
	// only the field is needed
	p.Grains = 1
	sim, err := plate.New(p)
	if err != nil {
		return err
	}

	freqs, values := sim.Field().Sweep(minHz, maxHz, samples)
	fmt.Println(viz.ResonancePlot(freqs, values, plotCols, plotRows))
	fmt.Println()

	peaks := modal.Peaks(values)
	if len(peaks) == 0 {
		fmt.Println("no resonance peaks in range")
		return nil
	}
	top := values[modal.StrongestPeak(values)]
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PEAK\tFREQUENCY\tMODE\tRELATIVE")
	for i, idx := range peaks {
		hz := freqs[idx]
		mode := sim.Field().NextResonance(hz - (freqs[1]-freqs[0])/2)
		fmt.Fprintf(w, "%d\t%.1f Hz\t%.1f Hz\t%.3f\n", i+1, hz, mode, values[idx]/top)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	shapes := config.Shapes()
	if len(args) == 1 {
		if config.ListPresets(args[0]) == nil {
			return fmt.Errorf("no presets for shape: %s (available: %v)", args[0], shapes)
		}
		shapes = args[:1]
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SHAPE\tPRESET\tMATERIAL\tFREQUENCY")
	for _, s := range shapes {
		for _, name := range config.ListPresets(s) {
			cfg := config.GetPreset(s, name)
			fmt.Fprintf(w, "%s\t%s\t%s\t%.0f Hz\n", s, name, cfg.Material, cfg.Frequency)
		}
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	ms := metrics.Defaults()
	opts := make([]plate.Option, 0, len(ms))
	for _, m := range ms {
		opts = append(opts, plate.WithMetric(m))
	}
	sim, err := newSimulator(cfg, logger, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running scenario", "name", scenario.Name, "steps", len(scenario.Steps))
	results, err := automation.RunScenario(ctx, scenario, sim)
	printSteps(results, ms)
	return err
}

func printSteps(results []automation.StepResult, ms []metrics.Metric) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "STEP\tTIME\tGRAINS")
	for _, m := range ms {
		fmt.Fprintf(w, "\t%s", strings.ToUpper(m.Name()))
	}
	fmt.Fprintln(w)
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.2f\t%d", r.Label, r.Time, r.Grains)
		for _, m := range ms {
			fmt.Fprintf(w, "\t%.4g", r.Metrics[m.Name()])
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	if fps <= 0 {
		return fmt.Errorf("--fps must be positive, got %g", fps)
	}
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	base, err := cfg.Parameters()
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	names := make([]string, 0, 3)
	for _, m := range metrics.Defaults() {
		names = append(names, m.Name())
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tGRAINS", strings.ToUpper(sweepParam))
	for _, n := range names {
		fmt.Fprintf(w, "\t%s", strings.ToUpper(n))
	}
	fmt.Fprintln(w)

	if trials <= 1 {
		logger.Info("sweeping", "param", sweepParam, "from", sweepFrom, "to", sweepTo, "points", sweepPoints)
		results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
			Param:    sweepParam,
			ParamMin: sweepFrom,
			ParamMax: sweepTo,
			NumSteps: sweepPoints,
			Frames:   sweepFrames,
			Dt:       1 / fps,
			Seed:     cfg.Seed,
		}, base)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Fprintf(w, "%.4g\t%d", r.ParamValue, r.Grains)
			for _, n := range names {
				fmt.Fprintf(w, "\t%.4g", r.Metrics[n])
			}
			fmt.Fprintln(w)
		}
		return w.Flush()
	}

	for i := 0; i < max(sweepPoints, 1); i++ {
		value := sweepFrom
		if sweepPoints > 1 {
			value += float64(i) * (sweepTo - sweepFrom) / float64(sweepPoints-1)
		}
		scene, err := plate.New(base)
		if err != nil {
			return err
		}
		if err := scene.SetParam(sweepParam, value); err != nil {
			return err
		}
		stats, err := automation.RunTrials(ctx, &automation.TrialsConfig{
			NumTrials: trials,
			Frames:    sweepFrames,
			Dt:        1 / fps,
			Seed:      cfg.Seed,
		}, scene.Params())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%.4g\t%d", value, scene.Params().Grains)
		for _, n := range names {
			st := stats[n]
			fmt.Fprintf(w, "\t%.4g±%.2g", st.Mean, st.StdDev)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
