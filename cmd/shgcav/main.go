package main

import (
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/shgcav/internal/cavity"
	"github.com/san-kum/shgcav/internal/logging"
)

var (
	dataDir  string
	logLevel string
	logger   *log.Logger

	// cavity
	configFile string
	preset     string
	crystal    string
	angleDeg   float64
	radiusMM   float64
	sMM        float64
	vMM        float64
	lengthMM   float64
	index      float64
	lambdaNM   float64
	walkOff    float64

	// output
	jsonOut  bool
	quantity string
	outPath  string
	force    bool

	// sweep
	field    string
	fromMM   float64
	toMM     float64
	steps    int
	workers  int
	save     bool
	htmlPath string
	imgPath  string
	plot     bool

	// optimize
	targetXi float64
)

func main() {
	logger = log.Default()

	if err := newRootCmd().Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func setupLogger(cmd *cobra.Command, args []string) error {
	l, err := logging.New(os.Stderr, logLevel)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "shgcav",
		Short:         "gaussian eigenmode of a bow-tie SHG ring cavity",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: setupLogger,
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".shgcav", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve the cavity eigenmode",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
	addCavityFlags(solveCmd)
	solveCmd.Flags().BoolVar(&jsonOut, "json", false, "print the mode as JSON")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "solve over a range of one distance",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addCavityFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&field, "field", "s", "swept field (s, v, l, R)")
	sweepCmd.Flags().Float64Var(&fromMM, "from", 0, "sweep start in mm (0 with --to 0: full stability range of s)")
	sweepCmd.Flags().Float64Var(&toMM, "to", 0, "sweep end in mm")
	sweepCmd.Flags().IntVar(&steps, "steps", 50, "number of points")
	sweepCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel workers")
	sweepCmd.Flags().BoolVar(&save, "save", false, "store the run under --data")
	sweepCmd.Flags().StringVar(&htmlPath, "html", "", "write an interactive HTML chart")
	sweepCmd.Flags().StringVar(&imgPath, "png", "", "write a chart image (png, svg, pdf by extension)")
	sweepCmd.Flags().BoolVar(&plot, "plot", false, "draw an ASCII plot")
	sweepCmd.Flags().StringVar(&quantity, "quantity", "waist", "plotted quantity (waist, collimated, xi, ellipticity)")

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "find the distance that gives a target focusing parameter",
		Args:  cobra.NoArgs,
		RunE:  runOptimize,
	}
	addCavityFlags(optimizeCmd)
	optimizeCmd.Flags().Float64Var(&targetXi, "xi", cavity.OptimalXi, "target focusing parameter l/b")
	optimizeCmd.Flags().StringVar(&field, "field", "s", "searched field (s, v, l, R)")
	optimizeCmd.Flags().Float64Var(&fromMM, "from", 0, "search start in mm (0 with --to 0: full stability range of s)")
	optimizeCmd.Flags().Float64Var(&toMM, "to", 0, "search end in mm")
	optimizeCmd.Flags().IntVar(&steps, "steps", 50, "grid points per pass")
	optimizeCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel workers")

	boundsCmd := &cobra.Command{
		Use:   "bounds",
		Short: "stable range of the crystal distance",
		Args:  cobra.NoArgs,
		RunE:  runBounds,
	}
	addCavityFlags(boundsCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset (crystal/name)")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "stored sweep runs",
	}
	runsListCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
	runsShowCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	runsShowCmd.Flags().StringVar(&quantity, "quantity", "waist", "plotted quantity (waist, collimated, xi, ellipticity)")
	runsExportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	runsExportCmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file, - for stdout")
	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsExportCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive explorer",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	addCavityFlags(tuiCmd)

	rootCmd.AddCommand(solveCmd, sweepCmd, optimizeCmd, boundsCmd, presetsCmd, initCmd, runsCmd, tuiCmd)
	return rootCmd
}
