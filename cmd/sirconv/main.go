package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sirconv/internal/automation"
	"github.com/san-kum/sirconv/internal/config"
	"github.com/san-kum/sirconv/internal/experiment"
	"github.com/san-kum/sirconv/internal/store"
	"github.com/san-kum/sirconv/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	beta       float64
	gamma      float64
	s0         float64
	i0         float64
	t0         float64
	maxT       float64
	stepSizes  []float64
	integrator string
	parallel   bool
	verbose    bool
	trajectory bool
	// Beta sweep
	betaMin float64
	betaMax float64
	numBeta int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers every command. With no subcommand the root prints
// the default error sequence.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "sirconv",
		Short:        "euler vs closed-form convergence study for the S/I epidemic model",
		Args:         cobra.NoArgs,
		RunE:         printErrors,
		SilenceUsage: true,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a convergence sweep and show the table",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot error against step size",
		Args:  cobra.NoArgs,
		RunE:  plotErrors,
	}
	addModelFlags(plotCmd)

	trajectoryCmd := &cobra.Command{
		Use:   "trajectory",
		Short: "plot numerical and analytical I(t) for one step size",
		Args:  cobra.NoArgs,
		RunE:  plotTrajectory,
	}
	addModelFlags(trajectoryCmd)
	trajectoryCmd.Flags().Float64("step", 0.5, "step size to plot")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "export sweep results to CSV on stdout",
		Args:  cobra.NoArgs,
		RunE:  exportCSV,
	}
	addModelFlags(exportCSVCmd)
	exportCSVCmd.Flags().BoolVar(&trajectory, "trajectory", false, "export the grid of a single step size instead")
	exportCSVCmd.Flags().Float64("step", 0.5, "step size for --trajectory")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "export sweep results to JSON on stdout",
		Args:  cobra.NoArgs,
		RunE:  exportJSON,
	}
	addModelFlags(exportJSONCmd)

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "draw numerical and analytical I(t) as SVG on stdout",
		Args:  cobra.NoArgs,
		RunE:  exportSVG,
	}
	addModelFlags(exportSVGCmd)
	exportSVGCmd.Flags().Float64("step", 0.5, "step size to draw")
	exportSVGCmd.Flags().Int("width", 800, "image width")
	exportSVGCmd.Flags().Int("height", 400, "image height")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactively step through the sweep",
		Args:  cobra.NoArgs,
		RunE:  explore,
	}
	addModelFlags(exploreCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run every study in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	betaSweepCmd := &cobra.Command{
		Use:   "beta-sweep",
		Short: "error at a fixed step size across transmission rates",
		Args:  cobra.NoArgs,
		RunE:  runBetaSweep,
	}
	addModelFlags(betaSweepCmd)
	betaSweepCmd.Flags().Float64("step", 0.25, "step size")
	betaSweepCmd.Flags().Float64Var(&betaMin, "beta-min", 2.5, "first beta")
	betaSweepCmd.Flags().Float64Var(&betaMax, "beta-max", 5.0, "last beta")
	betaSweepCmd.Flags().IntVar(&numBeta, "n", 6, "number of beta values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(out, "  %-16s %-6s beta=%g gamma=%g max_t=%g steps=%v\n",
					name, p.Integrator, p.Beta, p.Gamma, p.MaxT, p.StepSizes)
			}
			return nil
		},
	}

	rootCmd.AddCommand(sweepCmd, plotCmd, trajectoryCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, exploreCmd, batchCmd, betaSweepCmd, presetsCmd)

	return rootCmd
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "transmission rate")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "recovery rate")
	cmd.Flags().Float64Var(&s0, "s0", config.DefaultSInit, "initial susceptible fraction")
	cmd.Flags().Float64Var(&i0, "i0", config.DefaultIInit, "initial infected fraction")
	cmd.Flags().Float64Var(&t0, "t0", 0, "start time")
	cmd.Flags().Float64Var(&maxT, "max-t", config.DefaultMaxT, "time horizon")
	cmd.Flags().Float64SliceVar(&stepSizes, "dt", nil, "step sizes (repeatable, default halving from 2 to 1/32)")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, rk4)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "run step sizes concurrently")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "report each step size as it finishes")
}

// loadConfig resolves defaults, then preset, then config file, then any
// flag set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
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
	if flags.Changed("beta") {
		cfg.Beta = beta
	}
	if flags.Changed("gamma") {
		cfg.Gamma = gamma
	}
	if flags.Changed("s0") {
		cfg.SInit = s0
	}
	if flags.Changed("i0") {
		cfg.IInit = i0
	}
	if flags.Changed("t0") {
		cfg.TInit = t0
	}
	if flags.Changed("max-t") {
		cfg.MaxT = maxT
	}
	if flags.Changed("dt") {
		cfg.StepSizes = stepSizes
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runReport(cmd *cobra.Command, cfg *config.Config) (*experiment.Report, error) {
	exp := experiment.New(cfg.ToExperiment())
	if verbose {
		errOut := cmd.ErrOrStderr()
		exp.OnRun(func(r experiment.Run) {
			fmt.Fprintf(errOut, "dt=%g points=%d max_error=%.6e\n", r.Dt, r.Points, r.MaxError)
		})
	}

	start := time.Now()
	report, err := exp.Run(cmd.Context())
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "completed %d runs in %v\n", len(report.Runs), time.Since(start))
	}
	return report, nil
}

func printErrors(cmd *cobra.Command, args []string) error {
	report, err := experiment.New(experiment.DefaultConfig()).Run(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.Errors)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := runReport(cmd, cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), viz.RenderReport(report))
	return nil
}

func plotErrors(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := runReport(cmd, cfg)
	if err != nil {
		return err
	}
	graph := viz.PlotErrors(report)
	if graph == "" {
		return fmt.Errorf("no finite errors to plot")
	}
	fmt.Fprintln(cmd.OutOrStdout(), graph)
	return nil
}

func plotTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	step, err := cmd.Flags().GetFloat64("step")
	if err != nil {
		return err
	}
	traj, err := experiment.Solve(cmd.Context(), cfg.ToExperiment(), step)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz.PlotTrajectory(traj))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if trajectory {
		step, err := cmd.Flags().GetFloat64("step")
		if err != nil {
			return err
		}
		traj, err := experiment.Solve(cmd.Context(), cfg.ToExperiment(), step)
		if err != nil {
			return err
		}
		return store.WriteTrajectoryCSV(cmd.OutOrStdout(), traj)
	}

	report, err := runReport(cmd, cfg)
	if err != nil {
		return err
	}
	return store.WriteReportCSV(cmd.OutOrStdout(), report)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := runReport(cmd, cfg)
	if err != nil {
		return err
	}
	return store.WriteReportJSON(cmd.OutOrStdout(), report)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	step, err := flags.GetFloat64("step")
	if err != nil {
		return err
	}
	width, err := flags.GetInt("width")
	if err != nil {
		return err
	}
	height, err := flags.GetInt("height")
	if err != nil {
		return err
	}

	traj, err := experiment.Solve(cmd.Context(), cfg.ToExperiment(), step)
	if err != nil {
		return err
	}
	return store.WriteTrajectorySVG(cmd.OutOrStdout(), traj, width, height)
}

func explore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	m := viz.NewExplorer(cfg.ToExperiment())
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	if scenario.Description != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", scenario.Name, scenario.Description)
	}

	results, err := automation.RunScenario(cmd.Context(), scenario, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(out, "\n[%s]\n", r.Name)
		fmt.Fprint(out, viz.RenderReport(r.Report))
	}
	return nil
}

func runBetaSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	step, err := cmd.Flags().GetFloat64("step")
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:     cfg.ToExperiment(),
		BetaMin:  betaMin,
		BetaMax:  betaMax,
		NumSteps: numBeta,
		Dt:       step,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BETA\tR0\tMAX ERROR\tPEAK I")
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.6e\t%.6f\n", r.Beta, r.R0, r.MaxError, r.Peak)
	}
	return w.Flush()
}
