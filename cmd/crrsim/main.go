package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/san-kum/crrsim/internal/automation"
	"github.com/san-kum/crrsim/internal/config"
	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/export"
	"github.com/san-kum/crrsim/internal/gesture"
	"github.com/san-kum/crrsim/internal/logging"
	"github.com/san-kum/crrsim/internal/optim"
	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/server"
	"github.com/san-kum/crrsim/internal/sim"
	"github.com/san-kum/crrsim/internal/storage"
	"github.com/san-kum/crrsim/internal/store"
	"github.com/san-kum/crrsim/internal/tui"
	"github.com/san-kum/crrsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	dataDir    string
	logLevel   string
	logFile    string
	themeName  string
	chartWidth int
	setValues  map[string]string
	autoA      bool

	hysteresis bool
	impact     bool
	height     int
	every      int

	plotCompare bool
	imageKind   string
	imageWidth  float64
	imageHeight float64

	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	sweepWorkers int

	mcTrials  int
	mcPerturb float64
	mcSeed    int64
	mcFields  []string

	optGrid   map[string]string
	optMetric string

	addr string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "crrsim",
		Short:         "bicycle tire rolling resistance explorer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a surface preset")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "run data directory")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to a file instead of stderr")
	pf.StringVar(&themeName, "theme", viz.DefaultTheme.Name, "chart theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	pf.IntVar(&chartWidth, "width", sim.DefaultChartWidth, "chart width in viewport units")
	pf.StringToStringVar(&setValues, "set", nil, "override fields, e.g. --set tireWidthMm=32,massKg=80")
	pf.BoolVar(&autoA, "auto", true, "derive A from tire geometry")

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "print the sampled loss curve",
		RunE:  printCurve,
	}
	curveCmd.Flags().BoolVar(&hysteresis, "hysteresis", true, "include the hysteresis column")
	curveCmd.Flags().BoolVar(&impact, "impact", true, "include the impact column")
	curveCmd.Flags().IntVar(&every, "every", 20, "print every nth row")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare total loss across tire width variants",
		RunE:  printComparison,
	}
	compareCmd.Flags().IntVar(&height, "height", 14, "chart height in rows")

	estimateCmd := &cobra.Command{
		Use:   "estimate",
		Short: "show A, the reference point and the loss minimum",
		RunE:  printEstimate,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "draw the loss curve in the terminal",
		RunE:  plotCurve,
	}
	plotCmd.Flags().BoolVar(&hysteresis, "hysteresis", true, "show hysteresis loss")
	plotCmd.Flags().BoolVar(&impact, "impact", true, "show impact loss")
	plotCmd.Flags().BoolVar(&plotCompare, "compare", false, "draw the width comparison instead")
	plotCmd.Flags().IntVar(&height, "height", 14, "chart height in rows")

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "render the chart to an image (png, svg, pdf)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportImage,
	}
	exportCmd.Flags().StringVar(&imageKind, "kind", string(export.KindCurve), "chart kind (curve, compare)")
	exportCmd.Flags().Float64Var(&imageWidth, "img-width", 8, "image width in inches")
	exportCmd.Flags().Float64Var(&imageHeight, "img-height", 5, "image height in inches")
	exportCmd.Flags().BoolVar(&hysteresis, "hysteresis", true, "show hysteresis loss")
	exportCmd.Flags().BoolVar(&impact, "impact", true, "show impact loss")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [file]",
		Short: "export the committed result to JSON (stdout when no file)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().BoolVar(&hysteresis, "hysteresis", true, "include hysteresis loss")
	exportJSONCmd.Flags().BoolVar(&impact, "impact", true, "include impact loss")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list surface presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [file]",
		Short: "write the resolved parameters as a config file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	saveCmd := &cobra.Command{
		Use:   "save [name]",
		Short: "commit the parameters and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  saveRun,
	}
	saveCmd.Flags().BoolVar(&hysteresis, "hysteresis", true, "store hysteresis loss")
	saveCmd.Flags().BoolVar(&impact, "impact", true, "store impact loss")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&height, "height", 14, "chart height in rows")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "replay a scripted sequence of edits and commits",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep tire width and report the optimum pressure",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 23, "narrowest width (mm)")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 40, "widest width (mm)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of widths")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel workers (0 = all cpus)")

	mcCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb inputs and report the spread of the optimum pressure",
		RunE:  runMonteCarlo,
	}
	mcCmd.Flags().IntVar(&mcTrials, "trials", 200, "number of trials")
	mcCmd.Flags().Float64Var(&mcPerturb, "perturb", 0.1, "relative perturbation")
	mcCmd.Flags().Int64Var(&mcSeed, "seed", 0, "random seed (0 = time based)")
	mcCmd.Flags().StringSliceVar(&mcFields, "fields", []string{string(params.B), string(params.D), string(params.Kappa)}, "fields to perturb")

	optCmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid search fields for the lowest loss",
		RunE:  runOptimize,
	}
	optCmd.Flags().StringToStringVar(&optGrid, "grid", map[string]string{string(params.TireWidthMm): "23:40:18"}, "field ranges as lo:hi:n, e.g. --grid tireWidthMm=25:35:11,speedKph=25:35:3")
	optCmd.Flags().StringVar(&optMetric, "metric", "min", "score to minimize (min = lowest loss on the curve, ref = loss at p0)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the model over HTTP",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	rootCmd.AddCommand(curveCmd, compareCmd, estimateCmd, plotCmd, exportCmd, exportJSONCmd,
		presetsCmd, initCmd, saveCmd, listCmd, showCmd, deleteCmd, scenarioCmd, sweepCmd, mcCmd, optCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// settings layers flags over the config file over its preset over defaults.
func settings(cmd *cobra.Command) (*config.Config, params.Draft, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, params.Draft{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		cfg.Preset = preset
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("theme") || cfg.Theme == "" {
		cfg.Theme = themeName
	}
	if err := viz.CheckTheme(cfg.Theme); err != nil {
		return nil, params.Draft{}, err
	}
	if flags.Changed("width") || cfg.ChartWidth == 0 {
		cfg.ChartWidth = chartWidth
	}

	d, err := cfg.Draft()
	if err != nil {
		return nil, params.Draft{}, err
	}
	for k := range setValues {
		if _, ok := params.Lookup(params.Field(k)); !ok {
			return nil, params.Draft{}, fmt.Errorf("unknown field %q (want one of %s)", k, fieldNames())
		}
	}
	d = d.WithValues(setValues)
	if flags.Changed("auto") {
		d = d.WithAutoA(autoA)
	}
	return cfg, d, nil
}

func fieldNames() string {
	names := make([]string, len(params.Fields))
	for i, f := range params.Fields {
		names[i] = string(f.Key)
	}
	return strings.Join(names, ", ")
}

func setupLogger(cfg *config.Config, path string) (*slog.Logger, func() error, error) {
	return logging.Setup(cfg.LogLevel, path)
}

func components() curve.Components {
	return curve.Components{Hysteresis: hysteresis, Impact: impact}
}

// evaluate commits the resolved draft once and samples it.
func evaluate(cmd *cobra.Command) (*config.Config, sim.Result, error) {
	cfg, d, err := settings(cmd)
	if err != nil {
		return nil, sim.Result{}, err
	}
	return cfg, sim.Evaluate(sim.Apply(d), components()), nil
}

func chartOptions(cfg *config.Config) viz.ChartOptions {
	return viz.ChartOptions{
		ViewportWidth: cfg.ChartWidth,
		Height:        height,
		Theme:         viz.GetTheme(cfg.Theme),
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, d, err := settings(cmd)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return err
	}

	// the terminal belongs to the app, so logs go to a file
	path := logFile
	if path == "" {
		path = filepath.Join(cfg.DataDir, "crrsim.log")
	}
	logger, closeLog, err := setupLogger(cfg, path)
	if err != nil {
		return err
	}
	defer closeLog()
	st := storage.New(cfg.DataDir, logger)

	m := sim.NewFrom(d, logger)
	m.SetChartWidth(int(gesture.Clamp(float64(cfg.ChartWidth))))

	return tui.Run(m, tui.Options{Theme: cfg.Theme, Store: st, Logger: logger})
}

func printCurve(cmd *cobra.Command, args []string) error {
	_, r, err := evaluate(cmd)
	if err != nil {
		return err
	}

	keys := []string{curve.KeyTotal}
	if hysteresis {
		keys = append(keys, curve.KeyHysteresis)
	}
	if impact {
		keys = append(keys, curve.KeyImpact)
	}
	step := max(every, 1)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{"P (bar)"}
	for _, k := range keys {
		header = append(header, strings.ToUpper(k)+" (W)")
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for i, row := range r.Curve {
		if i%step != 0 && i != len(r.Curve)-1 {
			continue
		}
		cells := []string{fmt.Sprintf("%.3f", row.P)}
		for _, k := range keys {
			cells = append(cells, fmt.Sprintf("%.2f", row.Values[k]))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

func printComparison(cmd *cobra.Command, args []string) error {
	cfg, r, err := evaluate(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tWIDTH\tA\tMIN LOSS\tAT\tSHAPE")
	for _, v := range r.Comparison.Variants {
		best, _ := optim.FromCurve(variantRows(r.Comparison.Rows, v.Key))
		fmt.Fprintf(w, "%s\t%s\t%.6f\t%.1f W\t%.2f bar\t%s\n", v.Key, v.Label, v.A, best.Watts, best.Pressure,
			viz.Sparkline(curve.Column(r.Comparison.Rows, v.Key), shapeWidth))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.RenderComparison(r, chartOptions(cfg)))
	return nil
}

// shapeWidth is the sparkline width in the comparison table.
const shapeWidth = 24

// variantRows relabels one comparison series as the total so it can go
// through the curve helpers.
func variantRows(rows []curve.Row, key string) []curve.Row {
	out := make([]curve.Row, len(rows))
	for i, row := range rows {
		out[i] = curve.Row{P: row.P, Values: map[string]float64{curve.KeyTotal: row.Values[key]}}
	}
	return out
}

func printEstimate(cmd *cobra.Command, args []string) error {
	_, r, err := evaluate(cmd)
	if err != nil {
		return err
	}

	ps := r.Params
	fmt.Printf("width        %.1f mm\n", ps.TireWidthMm)
	fmt.Printf("derived A    %.6f\n", ps.DerivedA)
	fmt.Printf("manual A     %.6f\n", ps.ManualA)
	fmt.Print(viz.Summary(r))
	if pStar, ok := optim.Stationary(ps); ok {
		fmt.Printf("stationary   %.3f bar\n", pStar)
	} else {
		fmt.Println("stationary   none")
	}
	return nil
}

func plotCurve(cmd *cobra.Command, args []string) error {
	cfg, r, err := evaluate(cmd)
	if err != nil {
		return err
	}

	opts := chartOptions(cfg)
	if plotCompare {
		fmt.Println(viz.RenderComparison(r, opts))
		return nil
	}
	fmt.Println(viz.RenderCurve(r, opts))
	fmt.Println()
	fmt.Print(viz.Summary(r))
	return nil
}

func exportImage(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := export.CheckFormat(path); err != nil {
		return err
	}
	_, r, err := evaluate(cmd)
	if err != nil {
		return err
	}

	opts := export.DefaultOptions()
	opts.Kind = export.Kind(imageKind)
	opts.Width = imageWidth
	opts.Height = imageHeight
	if err := export.Save(path, r, opts); err != nil {
		return err
	}
	fmt.Printf("exported %s chart to %s\n", opts.Kind, path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	_, r, err := evaluate(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 || args[0] == "-" {
		return store.ExportJSONStdout(r)
	}
	if err := store.ExportJSON(args[0], r); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", args[0])
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION\tFIELDS")
	for _, name := range config.ListPresets() {
		p, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(p.Params))
		for k, v := range p.Params {
			keys = append(keys, k+"="+v)
		}
		sort.Strings(keys)
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Description, strings.Join(keys, " "))
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, d, err := settings(cmd)
	if err != nil {
		return err
	}
	out := config.FromApplied(sim.Apply(d))
	out.Theme = cfg.Theme
	out.DataDir = cfg.DataDir
	out.LogLevel = cfg.LogLevel
	out.ChartWidth = cfg.ChartWidth
	if err := config.Save(args[0], out); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, d, err := settings(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := setupLogger(cfg, logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	st := storage.New(cfg.DataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(d, st, logger).Run(ctx, addr)
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, d, err := settings(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := setupLogger(cfg, logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}
	runner := &automation.Runner{Machine: sim.NewFrom(d, logger), Store: st, Logger: logger}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}

	results, err := runner.Run(cmd.Context(), scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tA\tSOURCE\tWIDTH\tPENDING A\tRUN")
	for _, res := range results {
		fmt.Fprintf(w, "%d\t%.6f\t%s\t%.1f mm\t%.6f\t%s\n",
			res.Step,
			res.Applied.A,
			sim.ASource(res.Applied),
			res.Applied.TireWidthMm,
			res.Preview.ResolvedA,
			res.RunID,
		)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	_, d, err := settings(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.WidthSweep{
		Base:     d,
		MinMm:    sweepMin,
		MaxMm:    sweepMax,
		NumSteps: sweepSteps,
		Workers:  sweepWorkers,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WIDTH\tA\tP@p0\tMIN LOSS\tAT\tSTATIONARY")
	for _, res := range results {
		edge := ""
		if !res.Optimum.Interior {
			edge = "*"
		}
		fmt.Fprintf(w, "%.1f mm\t%.6f\t%.1f W\t%.1f W\t%.2f bar%s\t%s\n",
			res.WidthMm,
			res.A,
			res.RefWatts,
			res.Optimum.Watts,
			res.Optimum.Pressure,
			edge,
			stationaryLabel(res.Stationary),
		)
	}
	return w.Flush()
}

// maxGridPoints bounds the number of combinations one optimize run commits.
const maxGridPoints = 100000

// parseGrid turns field=lo:hi:n pairs into a search grid in field name order.
func parseGrid(grid map[string]string) ([]params.Field, [][]float64, error) {
	if len(grid) == 0 {
		return nil, nil, errors.New("optimize needs at least one --grid field")
	}
	names := make([]string, 0, len(grid))
	for name := range grid {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]params.Field, 0, len(names))
	ranges := make([][]float64, 0, len(names))
	points := 1
	for _, name := range names {
		if _, ok := params.Lookup(params.Field(name)); !ok {
			return nil, nil, fmt.Errorf("unknown field %q (want one of %s)", name, fieldNames())
		}
		values, err := optim.ParseRange(grid[name])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
		points *= len(values)
		if points > maxGridPoints {
			return nil, nil, fmt.Errorf("grid has more than %d combinations", maxGridPoints)
		}
		fields = append(fields, params.Field(name))
		ranges = append(ranges, values)
	}
	return fields, ranges, nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	_, d, err := settings(cmd)
	if err != nil {
		return err
	}
	metric, err := optim.MetricByName(optMetric)
	if err != nil {
		return err
	}
	fields, ranges, err := parseGrid(optGrid)
	if err != nil {
		return err
	}

	best, score, err := optim.NewGridSearch(fields, ranges).Search(cmd.Context(), d, metric)
	if err != nil {
		return err
	}
	if best == nil {
		return errors.New("no grid point produced a finite score")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tBEST")
	for _, f := range fields {
		info, _ := params.Lookup(f)
		fmt.Fprintf(w, "%s\t%s %s\n", f, params.FormatValue(best[f]), info.Unit)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	winner := d
	for _, f := range fields {
		winner = winner.With(f, params.FormatValue(best[f]))
	}
	r := sim.Evaluate(sim.Apply(winner), curve.Components{})
	fmt.Printf("\nscore        %.2f W (%s)\n", score, optMetric)
	if opt, ok := optim.FromCurve(r.Curve); ok {
		fmt.Printf("optimum      %.2f bar\n", opt.Pressure)
	}
	return nil
}

func stationaryLabel(p *float64) string {
	if p == nil {
		return "none"
	}
	return fmt.Sprintf("%.2f bar", *p)
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	_, d, err := settings(cmd)
	if err != nil {
		return err
	}

	fields := make([]params.Field, 0, len(mcFields))
	for _, name := range mcFields {
		if _, ok := params.Lookup(params.Field(name)); !ok {
			return fmt.Errorf("unknown field %q (want one of %s)", name, fieldNames())
		}
		fields = append(fields, params.Field(name))
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Base:         d,
		Fields:       fields,
		Perturbation: mcPerturb,
		NumTrials:    mcTrials,
		Seed:         mcSeed,
	})
	if err != nil {
		return err
	}

	mean, stddev := automation.MonteCarloStats(results)
	edges := 0
	for _, r := range results {
		if !r.Optimum.Interior {
			edges++
		}
	}
	fmt.Printf("trials       %d\n", len(results))
	fmt.Printf("perturbed    %s (±%.0f%%)\n", strings.Join(mcFields, ", "), mcPerturb*100)
	fmt.Printf("optimum      %.3f ± %.3f bar\n", mean, stddev)
	fmt.Printf("at range edge %d\n", edges)
	return nil
}
