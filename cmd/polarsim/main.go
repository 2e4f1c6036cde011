package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/config"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/engine"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/polar"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/snapshot"
)

var (
	configFile  string
	diagDir     string
	plot        bool
	restartFile string
	saveRestart string

	cutCoul   float64
	maxIter   int
	precision float64
	ordering  string
	damping   string
	gamma     float64
	zeroOrder bool
)

var (
	header = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	label  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	good   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	warn   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "polarsim",
		Short: "polarizable pair potential evaluator",
	}

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "evaluate forces and energies for a scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	runCmd.Flags().StringVar(&diagDir, "diag", "", "write solver diagnostics (csv) to directory")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot residual history")
	runCmd.Flags().StringVar(&restartFile, "restart", "", "restore solver settings from snapshot")
	runCmd.Flags().StringVar(&saveRestart, "save-restart", "", "write snapshot after the run")
	runCmd.Flags().Float64Var(&cutCoul, "cut-coul", 0, "coulomb cutoff override")
	runCmd.Flags().IntVar(&maxIter, "max-iter", 0, "iteration budget override")
	runCmd.Flags().Float64Var(&precision, "precision", 0, "convergence threshold override")
	runCmd.Flags().StringVar(&ordering, "ordering", "", "sweep ordering: natural, gauss_seidel, gauss_seidel_ranked")
	runCmd.Flags().StringVar(&damping, "damping", "", "tensor damping: none, exponential")
	runCmd.Flags().Float64Var(&gamma, "gamma", 0, "seed preconditioner override")
	runCmd.Flags().BoolVar(&zeroOrder, "zero-order", false, "skip iteration, keep the linear estimate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a scenario template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetPreset("ion_pair")
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [snapshot]",
		Short: "print the settings stored in a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}

	rootCmd.AddCommand(runCmd, presetsCmd, initCmd, showCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadScenario(args []string) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	name := "ion_pair"
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	return cfg, nil
}

func solverSettings(cmd *cobra.Command, cfg *config.Config) (polar.Config, error) {
	if restartFile != "" {
		snap, err := snapshot.Load(restartFile)
		if err != nil {
			return polar.Config{}, err
		}
		return applyOverrides(cmd, snap.Config()), nil
	}

	if cmd.Flags().Changed("ordering") {
		cfg.Solver.Ordering = ordering
	}
	if cmd.Flags().Changed("damping") {
		cfg.Solver.Damping = damping
	}
	pc, err := cfg.SolverSettings()
	if err != nil {
		return pc, err
	}
	return applyOverrides(cmd, pc), nil
}

func applyOverrides(cmd *cobra.Command, pc polar.Config) polar.Config {
	if cmd.Flags().Changed("cut-coul") {
		pc.CutCoul = cutCoul
	}
	if cmd.Flags().Changed("max-iter") {
		pc.MaxIterations = maxIter
	}
	if cmd.Flags().Changed("precision") {
		pc.Precision = precision
	}
	if cmd.Flags().Changed("gamma") {
		pc.Gamma = gamma
	}
	if cmd.Flags().Changed("zero-order") {
		pc.ZeroOrder = zeroOrder
		if zeroOrder {
			pc.Ordering = polar.OrderingNatural
		}
	}
	return pc
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args)
	if err != nil {
		return err
	}

	pc, err := solverSettings(cmd, cfg)
	if err != nil {
		return err
	}

	table, err := cfg.BuildTable()
	if err != nil {
		return err
	}

	var sink polar.DiagnosticsSink
	if diagDir != "" {
		sink = polar.CSVSink{Dir: diagDir}
	}

	eng, err := engine.New(table, cfg.BuildEwald(), pc, nil, sink)
	if err != nil {
		return err
	}

	st := cfg.BuildState()
	fmt.Printf("evaluating %d atoms...\n", st.NLocal)
	start := time.Now()
	res, err := eng.Evaluate(st)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(header.Render("\nsolver"))
	status := good.Render(res.Solve.Status.String())
	if res.Solve.Status == polar.StatusDiverged {
		status = warn.Render(res.Solve.Status.String())
	}
	fmt.Printf("  %s %s\n", label.Render("status:"), status)
	fmt.Printf("  %s %d\n", label.Render("iterations:"), res.Solve.Iterations)
	fmt.Printf("  %s %v\n", label.Render("elapsed:"), elapsed)
	if res.Solve.Warning != nil {
		fmt.Printf("  %s %v\n", warn.Render("warning:"), res.Solve.Warning)
	}

	fmt.Println(header.Render("\nenergy"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  vdw\t%.10g\n", res.Pair.VdW)
	fmt.Fprintf(w, "  coulomb\t%.10g\n", res.Pair.Coul)
	fmt.Fprintf(w, "  dipole self\t%.10g\n", res.Polar.Self)
	fmt.Fprintf(w, "  dipole-charge\t%.10g\n", res.Polar.Field)
	fmt.Fprintf(w, "  dipole-dipole\t%.10g\n", res.Polar.DipoleDipole)
	fmt.Fprintf(w, "  total\t%.10g\n", res.Total())
	if err := w.Flush(); err != nil {
		return err
	}

	if plot && len(res.Solve.Residuals) > 1 {
		fmt.Println(header.Render("\nresidual history"))
		graph := asciigraph.Plot(res.Solve.Residuals,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("mean squared dipole change per sweep"),
		)
		fmt.Println(graph)
	}

	if saveRestart != "" {
		if err := snapshot.Save(saveRestart, snapshot.Capture(pc, cfg.CutLJ, table)); err != nil {
			return err
		}
		fmt.Printf("\nwrote snapshot %s\n", saveRestart)
	}

	return nil
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	snap, err := snapshot.Load(args[0])
	if err != nil {
		return err
	}
	pc := snap.Config()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "cut_coul\t%g\n", pc.CutCoul)
	fmt.Fprintf(w, "cut_lj_global\t%g\n", snap.CutLJGlobal)
	fmt.Fprintf(w, "damping\t%s\n", pc.Damping)
	fmt.Fprintf(w, "damp_param\t%g\n", pc.DampParam)
	fmt.Fprintf(w, "precision\t%g\n", pc.Precision)
	fmt.Fprintf(w, "max_iterations\t%d\n", pc.MaxIterations)
	fmt.Fprintf(w, "termination\t%s\n", pc.Termination)
	fmt.Fprintf(w, "ordering\t%s\n", pc.Ordering)
	fmt.Fprintf(w, "gamma\t%g\n", pc.Gamma)
	fmt.Fprintf(w, "zero_order\t%v\n", pc.ZeroOrder)
	fmt.Fprintf(w, "warm_start\t%v\n", pc.WarmStart)
	fmt.Fprintf(w, "ntypes\t%d\n", snap.NTypes)
	return w.Flush()
}
