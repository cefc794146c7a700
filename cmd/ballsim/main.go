package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/san-kum/ballsim/internal/analysis"
	"github.com/san-kum/ballsim/internal/automation"
	"github.com/san-kum/ballsim/internal/arena"
	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/experiment"
	"github.com/san-kum/ballsim/internal/export"
	"github.com/san-kum/ballsim/internal/gui"
	"github.com/san-kum/ballsim/internal/optim"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/storage"
	"github.com/san-kum/ballsim/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string
	seed       int64
	fps        int
	maxBodies  int
	// run / sweep
	ticks      int
	metricList []string
	svgOut     string
	runs       int
	// analysis
	fields []string
	field  string
	xAxis  string
	yAxis  string
	// tui
	theme string
	// gui
	sound bool
	// tune
	gridParams []string
	tuneMetric string
	maximize   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ballsim",
		Short:        "bouncing ball arena",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".ballsim", "data directory")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&configFile, "config", "", "scene file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset scene")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.IntVar(&maxBodies, "max-bodies", 0, "evict the oldest ball beyond this many (0 = unbounded)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the arena in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	guiCmd.Flags().BoolVar(&sound, "sound", false, "play kinetic energy and collisions on the default audio device")
	rootCmd.Flags().BoolVar(&sound, "sound", false, "play kinetic energy and collisions on the default audio device")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the arena in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "classic", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scene headless and record it",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 600, "number of frames to simulate")
	runCmd.Flags().StringSliceVar(&metricList, "metrics", nil, "metrics to record (default all)")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the final frame as SVG")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a scene under consecutive seeds in parallel",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&ticks, "ticks", 600, "number of frames per run")
	sweepCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run samples",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&fields, "fields", []string{"x", "y", "kinetic"}, "sample columns ("+strings.Join(analysis.Fields, ", ")+")")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "bounce frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&field, "field", "x", "sample column to analyze")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xAxis, "x-axis", "x", "sample column for the x-axis")
	phaseCmd.Flags().StringVar(&yAxis, "y-axis", "vx", "sample column for the y-axis")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the primary ball's path to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBALLS\tWALLS\tELASTICITY\tMAX")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%d\n", name, len(p.Bodies), len(p.Walls), p.Physics.Restitution, p.MaxBodies)
			}
			return w.Flush()
		},
	}

	sceneCmd := &cobra.Command{
		Use:   "scene [path]",
		Short: "write the selected scene to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadScene(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run and record every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search scene parameters against a metric",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	tuneCmd.Flags().IntVar(&ticks, "ticks", 600, "number of frames per grid point")
	tuneCmd.Flags().StringArrayVar(&gridParams, "param", nil, "grid axis as name=v1,v2,... ("+strings.Join(optim.Params, ", ")+")")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "energy_loss", "metric to optimize")
	tuneCmd.Flags().BoolVar(&maximize, "maximize", false, "pick the largest metric value")

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, sweepCmd, batchCmd, tuneCmd, listCmd, plotCmd, analyzeCmd, phaseCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, sceneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScene resolves the scene from --preset, then --config, then the
// remaining flags. Flags only override file values when set explicitly.
func loadScene(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, name := config.DefaultConfig(), "classic"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg, name = p, preset
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

// applyFlags overrides cfg with the explicitly set scene flags, picks a clock
// seed when none is set and validates the result.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("max-bodies") {
		cfg.MaxBodies = maxBodies
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg.Validate()
}

func newLogger(out *os.File) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), nil
}

func builder(cfg *config.Config) func() (*arena.World, error) {
	return func() (*arena.World, error) {
		return cfg.BuildWorld(rand.New(rand.NewSource(cfg.Seed)))
	}
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScene(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	build := builder(cfg)
	w, err := build()
	if err != nil {
		return err
	}
	log.Info("scene loaded", "scene", name, "seed", cfg.Seed, "bodies", w.Len(), "walls", len(w.Walls()))

	gui.Run(w, gui.Options{
		Title:   "ballsim :: " + name,
		FPS:     cfg.FPS,
		Logger:  log,
		Rebuild: build,
		Sound:   sound,
	})
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	logFile, err := os.OpenFile(filepath.Join(dataDir, "tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()

	log, err := newLogger(logFile)
	if err != nil {
		return err
	}
	opts := viz.Options{Theme: viz.GetTheme(theme), Logger: log}

	if preset == "" && configFile == "" {
		return viz.RunInteractive(opts, func(cfg *config.Config) error { return applyFlags(cmd, cfg) })
	}

	cfg, name, err := loadScene(cmd)
	if err != nil {
		return err
	}
	build := builder(cfg)
	w, err := build()
	if err != nil {
		return err
	}
	opts.Title = name
	opts.FPS = cfg.FPS
	opts.Rebuild = build
	log.Info("scene loaded", "scene", name, "seed", cfg.Seed, "bodies", w.Len())
	return viz.Run(w, opts)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScene(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	metrics, err := registry.Metrics(metricList)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, log)
	if err := exp.Setup(metrics); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s for %d frames...\n", name, ticks)
	result, err := exp.Run(ctx, ticks)
	if err != nil {
		return err
	}

	runID, err := st.Save(storage.RunMetadata{
		Scene:  name,
		Seed:   cfg.Seed,
		FPS:    cfg.FPS,
		Width:  cfg.Arena.Width,
		Height: cfg.Arena.Height,
	}, result)
	if err != nil {
		return err
	}

	if svgOut != "" {
		svg := export.FrameToSVG(result.Final, cfg.Arena.Width, cfg.Arena.Height)
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		log.Info("final frame written", "path", svgOut)
	}

	fmt.Printf("completed in %.3fs\n", result.Duration)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d (quit: %v)\n", result.Ticks, result.Quit)
	fmt.Printf("balls: %d (spawned %d, evicted %d)\n", result.Bodies, result.Spawned, result.Evicted)
	fmt.Println("\nmetrics:")
	for _, m := range exp.Simulator().Metrics() {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScene(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	if runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ens := sim.NewEnsemble(experiment.Factory(cfg, experiment.NewRegistry(), log), runs, cfg.Seed)
	start := time.Now()
	results, err := ens.Run(ctx, sim.Config{Ticks: ticks})
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d runs of %d frames in %v\n\n", name, runs, ticks, time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFRAMES\tBALLS\tENERGY\tPEAK\tWALL\tBODY\tCONTAINED")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.3f\t%.3f\t%.0f\t%.0f\t%.3f\n",
			cfg.Seed+int64(i),
			r.Ticks,
			r.Bodies,
			r.Metrics["energy"],
			r.Metrics["peak_speed"],
			r.Metrics["wall_hits"],
			r.Metrics["body_hits"],
			r.Metrics["containment"],
		)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	log, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), log)
	for _, r := range results {
		runID, err := st.Save(storage.RunMetadata{
			Scene:  r.Name,
			Seed:   r.Config.Seed,
			FPS:    r.Config.FPS,
			Width:  r.Config.Arena.Width,
			Height: r.Config.Arena.Height,
		}, r.Result)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d frames -> %s\n", r.Name, r.Result.Ticks, runID)
	}
	return runErr
}

// parseGridParam splits "name=v1,v2" into a grid axis.
func parseGridParam(s string) (string, []float64, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || list == "" {
		return "", nil, fmt.Errorf("grid axis %q: want name=v1,v2,...", s)
	}
	var values []float64
	for _, part := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return "", nil, fmt.Errorf("grid axis %s: %w", name, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScene(cmd)
	if err != nil {
		return err
	}
	if len(gridParams) == 0 {
		return fmt.Errorf("no grid axes given, use --param name=v1,v2")
	}

	names := make([]string, 0, len(gridParams))
	ranges := make([][]float64, 0, len(gridParams))
	for _, gp := range gridParams {
		n, values, err := parseGridParam(gp)
		if err != nil {
			return err
		}
		names = append(names, n)
		ranges = append(ranges, values)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := optim.NewGridSearch(names, ranges)
	g.Maximize = maximize
	best, points, err := g.Search(ctx, cfg, ticks, tuneMetric)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d grid points, %s over %d frames\n\n", name, len(points), tuneMetric, ticks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(tuneMetric))
	for _, p := range points {
		for _, n := range names {
			fmt.Fprintf(w, "%g\t", p.Params[n])
		}
		fmt.Fprintf(w, "%.6f\n", p.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: %v = %.6f\n", best.Params, best.Value)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tFRAMES\tSEED\tBALLS\tQUIT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%v\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Seed,
			run.Bodies,
			run.Quit,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(samples))

	for _, f := range fields {
		data, err := analysis.Series(samples, f)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(f+" vs frame"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	data, err := analysis.Series(samples, field)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scene: %s\n\n", meta.Scene)

	ps := analysis.PowerSpectrum(data)
	if len(ps) < 2 {
		return fmt.Errorf("not enough samples for a spectrum")
	}
	plotData := ps[:max(2, len(ps)/4)]
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+field+")"),
	))
	fmt.Println()

	freq, _ := analysis.DominantFrequency(data)
	if freq == 0 {
		fmt.Println("no dominant frequency (flat series)")
		return nil
	}
	fmt.Printf("dominant frequency: %.4f cycles/frame\n", freq)
	fmt.Printf("period: %.1f frames", 1/freq)
	if meta.FPS > 0 {
		fmt.Printf(" (%.2f s at %d fps)", 1/freq/float64(meta.FPS), meta.FPS)
	}
	fmt.Println()
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	points, err := analysis.PhasePortrait(samples, xAxis, yAxis)
	if err != nil {
		return err
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("x-axis: %s, y-axis: %s\n\n", xAxis, yAxis)

	const width, height = 70, 20
	art := analysis.PhasePortraitToASCII(points, width, height)
	border := strings.Repeat("─", width)
	fmt.Println("┌" + border + "┐")
	for _, line := range strings.Split(strings.TrimSuffix(art, "\n"), "\n") {
		fmt.Println("│" + line + "│")
	}
	fmt.Println("└" + border + "┘")
	fmt.Printf("\nLegend: . = early, o = middle, ● = late\n")
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteSamplesCSV(os.Stdout, samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	svg := export.TrajectoryToSVG(samples, meta.Width, meta.Height, colorful.Color{R: 1, G: 0.3, B: 0.3})
	return export.WriteSVG(os.Stdout, svg)
}
