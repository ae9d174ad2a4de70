package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/fdtdisp/internal/config"
	"github.com/san-kum/fdtdisp/internal/dispersion"
	"github.com/san-kum/fdtdisp/internal/figures"
	"github.com/san-kum/fdtdisp/internal/logging"
	"github.com/san-kum/fdtdisp/internal/render"
	"github.com/san-kum/fdtdisp/internal/storage"
	"github.com/san-kum/fdtdisp/internal/sweep"
	"github.com/san-kum/fdtdisp/internal/tui"
	"github.com/san-kum/fdtdisp/internal/viz"
)

var (
	dataDir  string
	logLevel string
	devLog   bool

	courant  float64
	thetaDeg float64
	density  float64
	use2D    bool

	preset     string
	configFile string
	minN       float64
	maxN       float64
	steps      int
	output     string
	noSave     bool
	ascii      bool
	theme      string
	workers    int
	benchSteps int

	logger = logging.Nop()
)

// main registers the fdtdisp commands and runs the explorer when no
// subcommand is given. It exits with status 1 on any command error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "fdtdisp",
		Short:         "FDTD numerical dispersion lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logLevel, devLog)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		RunE: explore,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fdtdisp", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&devLog, "dev", false, "human readable console logs")

	transitionCmd := &cobra.Command{
		Use:   "transition",
		Short: "print the transition sampling density N_t",
		Args:  cobra.NoArgs,
		RunE:  printTransition,
	}
	transitionCmd.Flags().Float64Var(&courant, "courant", config.DefaultCourant, "courant number S")
	transitionCmd.Flags().Float64Var(&thetaDeg, "theta", 0, "propagation angle in degrees (2D)")
	transitionCmd.Flags().BoolVar(&use2D, "2d", false, "use the 2D square grid relation")

	evalCmd := &cobra.Command{
		Use:       "eval [quantity]",
		Short:     "evaluate one quantity at a single sampling density",
		Args:      cobra.ExactArgs(1),
		ValidArgs: quantityNames(),
		RunE:      evalQuantity,
	}
	evalCmd.Flags().Float64Var(&density, "n", 10, "sampling density N (points per wavelength)")
	evalCmd.Flags().Float64Var(&courant, "courant", config.DefaultCourant, "courant number S")
	evalCmd.Flags().Float64Var(&thetaDeg, "theta", 0, "propagation angle in degrees (2D)")

	runCmd := newRunCmd()

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [figure]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [quantity]",
		Short: "time a sweep at increasing worker counts",
		Args:  cobra.ExactArgs(1),
		RunE:  benchSweep,
	}
	benchCmd.Flags().Float64Var(&courant, "courant", config.DefaultCourant, "courant number S")
	benchCmd.Flags().IntVar(&benchSteps, "steps", 200000, "number of samples")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "explore dispersion interactively",
		RunE:  explore,
	}
	exploreCmd.Flags().Float64Var(&courant, "courant", config.DefaultCourant, "initial courant number S")
	exploreCmd.Flags().Float64Var(&thetaDeg, "theta", 0, "initial propagation angle in degrees")

	rootCmd.AddCommand(transitionCmd, evalCmd, runCmd, listCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, presetsCmd, benchCmd, exploreCmd)

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, viz.ErrorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

// newRunCmd builds the run command. Its flags override the preset and the
// config file only when set explicitly.
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "run [figure]",
		Short:     "sweep a figure, render it and save the run",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: config.Figures,
		RunE:      runFigure,
	}
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&courant, "courant", config.DefaultCourant, "courant number S")
	cmd.Flags().Float64Var(&thetaDeg, "theta", 0, "propagation angle in degrees (error2d)")
	cmd.Flags().Float64Var(&minN, "min", config.DefaultMinDensity, "smallest sampling density")
	cmd.Flags().Float64Var(&maxN, "max", config.DefaultMaxDensity, "largest sampling density")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of samples")
	cmd.Flags().StringVar(&output, "out", "", "output image (png, svg, pdf)")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	cmd.Flags().IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "parallel workers")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "print a terminal preview")
	return cmd
}

func quantityNames() []string {
	qs := sweep.Quantities()
	names := make([]string, len(qs))
	for i, q := range qs {
		names[i] = string(q)
	}
	return names
}

func printTransition(cmd *cobra.Command, args []string) error {
	theta := thetaDeg * math.Pi / 180

	var (
		nt  float64
		err error
	)
	if use2D {
		nt, err = dispersion.TransitionDensity2D(courant, theta)
	} else {
		nt, err = dispersion.TransitionDensity(courant)
	}
	if err != nil {
		return err
	}

	rows := []viz.Row{{Label: "S", Value: fmt.Sprintf("%g", courant)}}
	if use2D {
		rows = append(rows, viz.Row{Label: "theta", Value: fmt.Sprintf("%g°", thetaDeg)})
	}
	rows = append(rows, viz.Row{Label: "N_t", Value: fmt.Sprintf("%.6f", nt)})
	fmt.Print(viz.Table(rows))
	return nil
}

func evalQuantity(cmd *cobra.Command, args []string) error {
	q, err := sweep.ParseQuantity(args[0])
	if err != nil {
		return err
	}

	p := sweep.Params{Courant: courant, Theta: thetaDeg * math.Pi / 180}
	rows := []viz.Row{
		{Label: "N", Value: fmt.Sprintf("%g", density)},
		{Label: "S", Value: fmt.Sprintf("%g", courant)},
	}

	if q == sweep.Velocity {
		d, err := dispersion.PhaseVelocity1D(density, courant)
		if err != nil {
			return err
		}
		rows = append(rows, viz.Row{Label: "regime", Value: d.Regime().String()})
		rows = append(rows, viz.Row{Label: "v/c", Value: fmt.Sprintf("%.10f", d.Velocity())})
		if _, alpha, ok := d.Evanescent(); ok {
			rows = append(rows, viz.Row{Label: "alpha", Value: fmt.Sprintf("%.10f Np/cell", alpha)})
		}
		fmt.Print(viz.Table(rows))
		return nil
	}

	val, err := q.Eval(density, p)
	if err != nil {
		return err
	}
	if q == sweep.Error2D || q == sweep.Velocity2D {
		rows = append(rows, viz.Row{Label: "theta", Value: fmt.Sprintf("%g°", thetaDeg)})
	}
	rows = append(rows, viz.Row{Label: string(q), Value: fmt.Sprintf("%.10g", val)})
	fmt.Print(viz.Table(rows))
	return nil
}

// resolveConfig layers the preset, the config file and the explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	figure := config.DefaultFigure
	if len(args) > 0 {
		figure = args[0]
	}

	cfg := config.DefaultConfig()
	cfg.Figure = figure

	if preset != "" {
		p := config.GetPreset(figure, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(figure))
		}
		cfg = p
	}

	if configFile != "" {
		if err := config.Overlay(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 && cfg.Figure != figure {
			logger.Warn("config file figure overridden by argument",
				zap.String("file", cfg.Figure),
				zap.String("figure", figure),
			)
			cfg.Figure = figure
		}
	}

	flags := cmd.Flags()
	if flags.Changed("courant") {
		cfg.Courant = courant
	}
	if flags.Changed("theta") {
		cfg.ThetaDeg = thetaDeg
	}
	if flags.Changed("min") {
		cfg.Range.Min = minN
	}
	if flags.Changed("max") {
		cfg.Range.Max = maxN
	}
	if flags.Changed("steps") {
		cfg.Range.Steps = steps
	}
	if flags.Changed("out") {
		cfg.Output = output
	}
	if flags.Changed("theme") {
		cfg.Chart.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runFigure(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	viz.SetTheme(cfg.Chart.Theme)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := sweep.DefaultOptions()
	opts.Workers = workers

	logger.Info("run started",
		zap.String("figure", cfg.Figure),
		zap.Float64("courant", cfg.Courant),
		zap.Float64("theta_deg", cfg.ThetaDeg),
	)
	start := time.Now()

	run, err := figures.Build(ctx, cfg, opts, logger)
	if err != nil {
		return err
	}

	out := cfg.OutputPath()
	if err := render.Save(run.Figure, out); err != nil {
		return err
	}
	logger.Info("figure written", zap.String("path", out), zap.Duration("elapsed", time.Since(start)))

	rows := []viz.Row{
		{Label: "figure", Value: cfg.Figure},
		{Label: "S", Value: fmt.Sprintf("%g", cfg.Courant)},
		{Label: "N_t", Value: fmt.Sprintf("%.6f", run.Meta.Transition)},
		{Label: "output", Value: out},
	}
	for _, s := range run.Series {
		vals := make([]float64, len(s.Samples))
		for i, smp := range s.Samples {
			vals[i] = smp.Value
		}
		rows = append(rows, viz.Row{
			Label: s.Name,
			Value: fmt.Sprintf("%s %d samples, %d failed", viz.Sparkline(vals, 24), len(s.Samples), s.Failures),
		})
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(run.Meta, run.Series)
		if err != nil {
			return err
		}
		logger.Info("run saved", zap.String("run_id", runID), zap.String("data", dataDir))
		rows = append(rows, viz.Row{Label: "run id", Value: runID})
	}

	fmt.Println(viz.Header(run.Figure.Title))
	fmt.Print(viz.Table(rows))

	if ascii {
		fmt.Println()
		fmt.Println(render.ASCII(run.Figure, 80, 15))
	}
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
	fmt.Fprintln(w, "ID\tFIGURE\tTIME\tS\tTHETA\tN\tN_T\tSERIES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4g\t%g°\t%g..%g\t%.4f\t%d\n",
			run.ID,
			run.Figure,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Courant,
			run.ThetaDeg,
			run.Min,
			run.Max,
			run.Transition,
			len(run.Series),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Figure = meta.Figure
	fig := figures.Layout(*meta, series, cfg.Chart.Width, cfg.Chart.Height, cfg.UseLogY())

	graph := render.ASCII(fig, 80, 15)
	if graph == "" {
		return fmt.Errorf("no data to plot")
	}

	fmt.Print(viz.Table([]viz.Row{
		{Label: "run", Value: meta.ID},
		{Label: "figure", Value: meta.Figure},
		{Label: "N_t", Value: fmt.Sprintf("%.6f", meta.Transition)},
	}))
	fmt.Println()
	fmt.Println(graph)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, series)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, series)
}

func listPresets(cmd *cobra.Command, args []string) error {
	figs := config.Figures
	if len(args) > 0 {
		if config.ListPresets(args[0]) == nil {
			return fmt.Errorf("unknown figure: %s (available: %v)", args[0], config.Figures)
		}
		figs = args[:1]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIGURE\tPRESET\tS\tTHETA\tN\tSTEPS")
	for _, fig := range figs {
		for _, name := range config.ListPresets(fig) {
			p := config.GetPreset(fig, name)
			fmt.Fprintf(w, "%s\t%s\t%.4g\t%g°\t%g..%g\t%d\n",
				fig, name, p.Courant, p.ThetaDeg, p.Range.Min, p.Range.Max, p.Range.Steps)
		}
	}
	return w.Flush()
}

func benchSweep(cmd *cobra.Command, args []string) error {
	q, err := sweep.ParseQuantity(args[0])
	if err != nil {
		return err
	}

	nt, err := dispersion.TransitionDensity(courant)
	if err != nil {
		return err
	}
	rng := sweep.Range{Min: nt, Max: 1000, Steps: benchSteps}
	if q == sweep.Attenuation {
		rng = sweep.Range{Min: 1, Max: nt, Steps: benchSteps}
	}
	p := sweep.Params{Courant: courant}

	fmt.Printf("benchmarking %s over %d samples...\n\n", q, benchSteps)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tELAPSED\tSAMPLES/S\tFAILED")

	for n := 1; n <= runtime.GOMAXPROCS(0); n *= 2 {
		opts := sweep.Options{Workers: n, MinChunk: sweep.DefaultOptions().MinChunk}
		start := time.Now()
		res, err := sweep.Run(context.Background(), q, p, rng, opts)
		elapsed := time.Since(start)
		if res == nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%v\t%.0f\t%d\n", n, elapsed.Round(time.Microsecond),
			float64(benchSteps)/elapsed.Seconds(), len(res.Failures))
	}
	return w.Flush()
}

func explore(cmd *cobra.Command, args []string) error {
	m := tui.NewModel(courant, thetaDeg, sweep.Range{Min: 1, Max: 80, Steps: 120})
	return tui.Run(m)
}
