package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/automation"
	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/export"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/storage"
	"github.com/san-kum/orbsim/internal/viz"
)

const au = 1.495978707e11

var (
	dataDir     string
	configFile  string
	preset      string
	mode        string
	dt          float64
	days        float64
	fieldBodies int
	subSteps    int
	sampleEvery int
	seed        int64
	frameRate   int
	withShip    bool
	// Containment radius for the run summary
	containRadius float64
	// Body shown by plot and analyze
	bodyName string
	// Sweep and export
	sweepRuns    int
	sweepWorkers int
	outputPath   string
	svgSize      int
	metricsAddr  string
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("orbsim: ")

	rootCmd := &cobra.Command{
		Use:   "orbsim",
		Short: "solar system and asteroid disk simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and record it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Float64Var(&days, "days", config.DefaultDays, "simulated days")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "steps between trace samples")
	runCmd.Flags().Float64Var(&containRadius, "contain", 1e13, "containment radius (m)")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&subSteps, "substeps", config.DefaultSubSteps, "simulation steps per frame")
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run consecutive seeds concurrently and compare them",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&days, "days", config.DefaultDays, "simulated days")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 8, "number of seeds")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "concurrent runs (0 = GOMAXPROCS)")
	sweepCmd.Flags().Float64Var(&containRadius, "contain", 1e13, "containment radius (m)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "draw a run's orbits as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default <run_id>.svg)")
	exportCmd.Flags().IntVar(&svgSize, "size", 800, "image size (px)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().Float64Var(&containRadius, "contain", 1e13, "containment radius (m)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a body's distance from the anchor",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&bodyName, "body", "Earth", "catalog body")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate a body's orbital period",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&bodyName, "body", "Earth", "catalog body")

	dateCmd := &cobra.Command{
		Use:   "date [seconds]",
		Short: "print the calendar date a simulated time corresponds to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid time %q: %w", args[0], err)
			}
			fmt.Println(orbital.ISODate(t))
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, sweepCmd, scenarioCmd, presetsCmd, listCmd, plotCmd, analyzeCmd, exportCmd, dateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&mode, "mode", "gravity", "force model (gravity|springs)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultTimeStep, "time step (s)")
	cmd.Flags().IntVar(&fieldBodies, "bodies", config.DefaultFieldBodies, "number of field bodies")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().BoolVar(&withShip, "ship", false, "add a steerable craft")
}

// resolveConfig layers defaults, the preset, the config file and finally
// any flag set explicitly on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("dt") {
		cfg.TimeStep = dt
	}
	if flags.Changed("bodies") {
		cfg.FieldBodies = fieldBodies
	}
	if flags.Changed("ship") {
		cfg.Ship.Enabled = withShip
	}
	if flags.Changed("days") {
		cfg.Days = days
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("substeps") {
		cfg.SubSteps = subSteps
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if cfg.Seed == 0 || flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newSim(cfg *config.Config) (*orbital.Sim, orbital.Mode, error) {
	m, err := cfg.ForceModel()
	if err != nil {
		return nil, 0, err
	}
	s, err := orbital.New(cfg.TimeStep, cfg.Options()...)
	if err != nil {
		return nil, 0, err
	}
	if !s.AnchorConsistent() {
		log.Printf("warning: %s is not the heaviest catalog body; field orbits use its mass", s.Body(0).Name)
	}
	return s, m, nil
}

func newMetrics() []metrics.Metric {
	return []metrics.Metric{
		metrics.NewEnergyDrift(),
		metrics.NewMomentumDrift(),
		metrics.NewContainment(containRadius),
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(cfg)
	observers := newMetrics()
	for _, m := range observers {
		runner.AddMetric(m)
	}
	runner.AddObserver(newProgress(cfg))
	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		runner.AddObserver(metrics.NewExporter(reg, observers...))
		go serveMetrics(metricsAddr, reg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s simulation: %d field bodies, %d steps of %.0fs\n", cfg.Mode, cfg.FieldBodies, cfg.Steps(), cfg.TimeStep)
	start := time.Now()

	result, err := runner.Run(ctx)
	if result == nil {
		return err
	}
	if err != nil {
		log.Printf("run stopped early: %v", err)
	}
	if !result.AnchorConsistent {
		log.Printf("warning: catalog entry 0 is not the heaviest body; field orbits used its mass")
	}

	elapsed := time.Since(start)

	runID, saveErr := st.Save(result.Metadata(), result.Trace)
	if saveErr != nil {
		return saveErr
	}

	fmt.Println(titleStyle.Render("completed in " + elapsed.Round(time.Millisecond).String()))
	fmt.Println(keyStyle.Render("run id") + runID)
	fmt.Println(keyStyle.Render("final date") + result.FinalDate)
	fmt.Println(keyStyle.Render("samples") + strconv.Itoa(result.Trace.Len()))
	fmt.Println("\nmetrics:")
	for _, m := range observers {
		fmt.Printf("  %s: %.6g\n", m.Name(), m.Value())
	}
	return err
}

// progress logs the simulated date at most once per second.
type progress struct {
	limiter *rate.Limiter
	end     float64
}

func newProgress(cfg *config.Config) *progress {
	return &progress{
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		end:     float64(cfg.Steps()) * cfg.TimeStep,
	}
}

func (p *progress) OnSample(bodies []body.Body, primary int, t float64) {
	if t == 0 || !p.limiter.Allow() {
		return
	}
	log.Printf("%s (%.0f%%)", orbital.ISODate(t), 100*t/p.end)
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	log.Printf("serving metrics on %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("metrics server: %v", err)
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %d seeds from %d\n", sweepRuns, cfg.Seed)
	ensemble := sim.NewEnsemble(cfg, sweepRuns, cfg.Seed, newMetrics)
	ensemble.Workers = sweepWorkers
	results, err := ensemble.Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tCONTAINMENT\tENERGY\tMOMENTUM")
	containment := make([]float64, len(results))
	for i, r := range results {
		containment[i] = r.Metrics["containment"]
		fmt.Fprintf(w, "%d\t%.4f\t%.3g\t%.3g\n", r.Seed, containment[i], r.Metrics["energy_drift"], r.Metrics["momentum_drift"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(containment) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(containment,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("containment by seed"),
		))
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
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

	fmt.Println(titleStyle.Render(scenario.Name))
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}
	results, err := automation.RunScenario(ctx, scenario, st, newMetrics)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMODE\tFINAL\tCONTAINMENT\tENERGY\tRUN")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.3g\t%s\n",
			r.Label, r.Result.Mode, r.Result.FinalDate,
			r.Result.Metrics["containment"], r.Result.Metrics["energy_drift"], r.RunID)
	}
	if flushErr := w.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}
	return err
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	svg := export.TraceToSVG(trace, body.SolarSystem, svgSize)
	if svg == "" {
		return fmt.Errorf("run %s has no samples", args[0])
	}

	out := outputPath
	if out == "" {
		out = args[0] + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s, m, err := newSim(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	model := viz.NewModel(s, m, cfg.SubSteps, cfg.FPS)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viz.Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}

func runPicker() error {
	final, err := tea.NewProgram(viz.NewPicker(time.Now().UnixNano()), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if p, ok := final.(viz.Picker); ok && p.Live() != nil {
		p.Live().Sim().Close()
		return p.Live().Err()
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODE\tDT\tDAYS\tFIELD\tSHIP")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%.0fs\t%.0f\t%d\t%v\n",
			name, p.Mode, p.TimeStep, p.Days, p.FieldBodies, p.Ship.Enabled)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tLABEL\tMODE\tTIME\tSTEPS\tDT\tFIELD\tFINAL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.0fs\t%d\t%s\n",
			run.ID,
			run.Label,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.TimeStep,
			run.FieldBodies,
			run.FinalDate,
		)
	}

	return w.Flush()
}

func loadBody(runID string) (*storage.RunMetadata, *storage.Trace, int, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, 0, err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return nil, nil, 0, err
	}
	i := trace.Index(bodyName)
	if i < 0 {
		return nil, nil, 0, fmt.Errorf("unknown body: %s (available: %v)", bodyName, trace.Names)
	}
	if i == 0 {
		return nil, nil, 0, fmt.Errorf("%s is the reference body", trace.Names[0])
	}
	if trace.Len() < 2 {
		return nil, nil, 0, fmt.Errorf("run %s has too few samples", runID)
	}
	return meta, trace, i, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, trace, i, err := loadBody(args[0])
	if err != nil {
		return err
	}

	dist := trace.Distances(i)
	for k := range dist {
		dist[k] /= au
	}

	fmt.Printf("run: %s (%s, until %s)\n\n", meta.ID, meta.Mode, meta.FinalDate)
	graph := asciigraph.Plot(dist,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s distance from %s (AU)", trace.Names[i], trace.Names[0])),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, trace, i, err := loadBody(args[0])
	if err != nil {
		return err
	}

	offsets := trace.Offsets(i)
	xs := make([]float64, len(offsets))
	for k, o := range offsets {
		xs[k] = o.X
	}

	fmt.Printf("period analysis: %s\n", meta.ID)
	fmt.Printf("body: %s, mode: %s\n\n", trace.Names[i], meta.Mode)

	ps := analysis.PowerSpectrum(xs)
	if plotData := ps[:max(2, len(ps)/4)]; len(plotData) > 1 {
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (x offset)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	period, err := analysis.EstimatePeriod(xs, trace.Interval())
	if err != nil {
		return err
	}
	span := trace.Times[trace.Len()-1] - trace.Times[0]
	fmt.Printf("period: %.2f days\n", period/config.SecondsPerDay)
	if period > span {
		log.Printf("warning: period exceeds the %.0f recorded days; run longer for a reliable estimate", span/config.SecondsPerDay)
	}
	return nil
}
