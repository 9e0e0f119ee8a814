package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/x509cert/gravsim/internal/config"
)

var (
	opts options

	// Window frontend
	withAudio     bool
	withTelemetry bool

	// Headless runs
	frames      int
	dt          float32
	targetSpeed float64

	// Sweep
	gravityMin float32
	gravityMax float32
	sweepSteps int

	// Monte Carlo
	trials int

	// Tuning
	gridParams []string
	metricName string

	// Analysis
	bodyIndex int
	axisName  string

	// Config output
	outFile string
)

// main registers commands and flags and runs the windowed simulation
// when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "gravsim",
		Short:        "interactive 2D gravity simulation",
		SilenceUsage: true,
		RunE:         runWindow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&opts.preset, "preset", "", "start from a preset configuration")
	pf.Int64Var(&opts.seed, "seed", config.DefaultSeed, "random seed (0 picks one from the clock)")
	pf.IntVar(&opts.bodies, "bodies", config.DefaultBodies, "number of bodies")
	pf.Float32Var(&opts.gravity, "gravity", config.DefaultGravity, "initial gravitational constant")
	pf.StringVar(&opts.integrator, "integrator", config.DefaultIntegrator, "integrator (damped, semi_implicit)")

	rootCmd.Flags().BoolVar(&opts.fullscreen, "fullscreen", true, "open the window fullscreen")
	rootCmd.Flags().BoolVar(&withAudio, "audio", false, "play an ambient drone that follows kinetic energy")
	rootCmd.Flags().BoolVar(&withTelemetry, "telemetry", false, "draw a kinetic energy strip")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().Float32Var(&dt, "dt", 1.0/60, "timestep")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run headless and report metrics",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 600, "number of frames")
	benchCmd.Flags().Float32Var(&dt, "dt", 1.0/60, "timestep")
	benchCmd.Flags().Float64Var(&targetSpeed, "target-speed", 0, "let an autopilot hold this average speed (0 disables)")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same population",
		RunE:  runCompare,
	}
	compareCmd.Flags().IntVar(&frames, "frames", 600, "number of frames")
	compareCmd.Flags().Float32Var(&dt, "dt", 1.0/60, "timestep")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Lyapunov estimate and phase portrait of one body",
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().IntVar(&frames, "frames", 600, "number of frames")
	analyzeCmd.Flags().Float32Var(&dt, "dt", 1.0/60, "timestep")
	analyzeCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index for the phase portrait")
	analyzeCmd.Flags().StringVar(&axisName, "axis", "x", "phase portrait axis (x or y)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted key scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the gravitational constant",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float32Var(&gravityMin, "min", 0, "lowest gravity")
	sweepCmd.Flags().Float32Var(&gravityMax, "max", 10000, "highest gravity")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of gravity values")
	sweepCmd.Flags().IntVar(&frames, "frames", 600, "frames per run")
	sweepCmd.Flags().Float32Var(&dt, "dt", 1.0/60, "timestep")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "run the configuration over consecutive seeds",
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 10, "number of seeds")
	monteCarloCmd.Flags().IntVar(&frames, "frames", 600, "frames per trial")
	monteCarloCmd.Flags().Float32Var(&dt, "dt", 1.0/60, "timestep")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search parameters for the lowest metric value",
		RunE:  runTune,
	}
	tuneCmd.Flags().StringArrayVar(&gridParams, "param", []string{"gravity=1000,3000,5000", "damping=0.95,0.99"}, "name=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&metricName, "metric", "momentum_drift", "metric to minimise")
	tuneCmd.Flags().IntVar(&frames, "frames", 600, "frames per run")
	tuneCmd.Flags().Float32Var(&dt, "dt", 1.0/60, "timestep")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE:  printConfig,
	}
	configCmd.Flags().StringVar(&outFile, "out", "", "also write the configuration to this file")

	rootCmd.AddCommand(tuiCmd, benchCmd, compareCmd, analyzeCmd, scenarioCmd, sweepCmd, monteCarloCmd, tuneCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
