package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/x509cert/gravsim/internal/analysis"
	"github.com/x509cert/gravsim/internal/audio"
	"github.com/x509cert/gravsim/internal/automation"
	"github.com/x509cert/gravsim/internal/config"
	"github.com/x509cert/gravsim/internal/control"
	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/experiment"
	"github.com/x509cert/gravsim/internal/gui"
	"github.com/x509cert/gravsim/internal/optim"
	"github.com/x509cert/gravsim/internal/sim"
	"github.com/x509cert/gravsim/internal/viz"
)

func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	return opts.resolve(cmd.Flags().Changed)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	var appOpts []gui.Option
	if withTelemetry {
		appOpts = append(appOpts, gui.WithTelemetry())
	}
	if withAudio {
		drone := audio.NewDrone()
		player := audio.NewPlayer(drone)
		if err := player.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "audio disabled: %v\n", err)
		} else {
			defer player.Stop()
			appOpts = append(appOpts, gui.WithObserver(drone))
		}
	}

	result, err := gui.NewApp(cfg, appOpts...).Run(cmd.Context())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Printf("frames: %d\n", result.Frames)
	printMetrics(result.Metrics)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	width, height := float32(cfg.Window.Width), float32(cfg.Window.Height)
	if err := exp.Setup(width, height); err != nil {
		return err
	}

	return viz.Run(viz.NewModel(exp.Simulator(), exp.World(), width, height, dt, cfg.Window.Title))
}

// headless sets up cfg in its configured window size and runs it. A
// positive target speed hands the gravity keys to an autopilot.
func headless(cmd *cobra.Command, cfg *config.Config, targetSpeed float64) (*experiment.Result, time.Duration, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(float32(cfg.Window.Width), float32(cfg.Window.Height)); err != nil {
		return nil, 0, err
	}
	if targetSpeed > 0 {
		ap := control.NewAutopilot(targetSpeed)
		exp.Simulator().AddObserver(ap)
		exp.SetScript(func(int) sim.Input { return ap })
	}

	start := time.Now()
	result, err := exp.Run(cmd.Context(), frames, dt)
	return result, time.Since(start), err
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %d bodies for %d frames (%s)\n", cfg.Bodies, frames, cfg.Integrator)
	if targetSpeed > 0 {
		fmt.Printf("autopilot holding average speed at %.2f\n", targetSpeed)
	}
	fmt.Println()
	result, elapsed, err := headless(cmd, cfg, targetSpeed)
	if err != nil {
		return err
	}

	n := len(result.Frames)
	fmt.Printf("completed in %v\n", elapsed)
	if n > 0 && elapsed > 0 {
		fmt.Printf("frames/sec: %.0f\n\n", float64(n)/elapsed.Seconds())
	}
	printMetrics(result.Metrics)

	if n < 2 {
		return nil
	}

	energy := make([]float64, n)
	speed := make([]float64, n)
	for i, s := range result.Frames {
		energy[i] = float64(s.KineticEnergy)
		speed[i] = float64(s.AverageSpeed)
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(energy, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("kinetic energy")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(speed, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("average speed")))
	fmt.Printf("\ndominant energy frequency: %.3f Hz\n", analysis.DominantFrequency(energy, float64(dt)))
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = experiment.NewRegistry().ListIntegrators()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tMEAN KE\tPEAK SPEED\tMOMENTUM DRIFT\tTIME")

	for _, name := range names {
		run := *cfg
		run.Integrator = name

		result, elapsed, err := headless(cmd, &run, 0)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.4f\t%v\n",
			name,
			result.Metrics["kinetic_energy"],
			result.Metrics["peak_speed"],
			result.Metrics["momentum_drift"],
			elapsed.Round(time.Millisecond),
		)
	}

	return w.Flush()
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	var axis analysis.Axis
	switch axisName {
	case "x":
		axis = analysis.AxisX
	case "y":
		axis = analysis.AxisY
	default:
		return fmt.Errorf("unknown axis: %s", axisName)
	}

	if frames < 1 {
		return fmt.Errorf("%w: frames %d", dynamo.ErrParameterBounds, frames)
	}

	exp := experiment.New(cfg)
	width, height := float32(cfg.Window.Width), float32(cfg.Window.Height)
	if err := exp.Setup(width, height); err != nil {
		return err
	}
	integ := exp.Simulator().Integrator()

	lambda := analysis.LyapunovExponent(exp.World(), integ, frames, dt, width, height, 1e-3)
	fmt.Printf("lyapunov exponent: %.4f /s\n", lambda)
	if lambda > 0 {
		fmt.Println("small differences in starting positions grow exponentially")
	}

	portrait := analysis.GeneratePhasePortrait(exp.World(), integ, bodyIndex, axis, frames, dt, width, height)
	if portrait == nil {
		return fmt.Errorf("body %d out of range (have %d)", bodyIndex, exp.World().Len())
	}
	fmt.Printf("\nphase portrait of body %d (%s position vs %s velocity)\n", bodyIndex, axis, axis)
	fmt.Print(portrait.ASCII(80, 24))
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	opts.scenarioPreset = scenario.Preset
	opts.scenarioSeed = scenario.Seed
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("  %s\n", scenario.Description)
	}

	result, err := automation.RunScenario(cmd.Context(), scenario, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("frames: %d", len(result.Frames))
	if result.Stopped {
		fmt.Print(" (stopped by escape)")
	}
	fmt.Println()
	if n := len(result.Frames); n > 0 {
		printStats(result.Frames[n-1])
	}
	printMetrics(result.Metrics)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.GravitySweep{
		Base:       cfg,
		GravityMin: gravityMin,
		GravityMax: gravityMax,
		NumSteps:   sweepSteps,
		Frames:     frames,
		Dt:         dt,
	}, func(done, total int) {
		fmt.Printf("sweep %d/%d\n", done, total)
	})
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRAVITY\tMEAN KE\tPEAK SPEED\tFINAL AVG SPEED\tBOUNCES")
	for _, r := range results {
		fmt.Fprintf(w, "%.0f\t%.2f\t%.2f\t%.2f\t%d\n",
			r.Gravity, r.MeanKineticEnergy, r.PeakSpeed, r.FinalAverageSpeed, r.Bounces)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarlo{
		Base:   cfg,
		Trials: trials,
		Frames: frames,
		Dt:     dt,
	}, func(done, total int) {
		if done%10 == 0 || done == total {
			fmt.Printf("monte carlo %d/%d\n", done, total)
		}
	})
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tMEAN KE\tPEAK SPEED\tFINAL AVG SPEED\tSTABLE")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.2f\t%v\n",
			r.Seed, r.MeanKineticEnergy, r.PeakSpeed, r.FinalAverageSpeed, r.Stable)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("\nstable: %d  unstable: %d\n", stable, unstable)
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	names, ranges, err := parseGrid(gridParams)
	if err != nil {
		return err
	}
	grid, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	fmt.Printf("searching %v for the lowest %s\n", names, metricName)
	best, err := grid.Search(cmd.Context(), cfg, frames, dt, metricName)
	if err != nil {
		return err
	}

	fmt.Printf("runs: %d\n", best.Runs)
	fmt.Printf("best %s: %.6f\n", metricName, best.Value)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best.Params[name])
	}
	return nil
}

// parseGrid reads "name=v1,v2,..." entries.
func parseGrid(entries []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(entries))
	ranges := make([][]float64, 0, len(entries))

	for _, entry := range entries {
		name, list, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, nil, fmt.Errorf("invalid param %q, want name=v1,v2", entry)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("param %s: %w", name, err)
			}
			values = append(values, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))

	if outFile != "" {
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", outFile)
	}
	return nil
}

func printStats(s sim.Stats) {
	for _, line := range sim.HUDLines(s) {
		fmt.Printf("  %s\n", line)
	}
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("metrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}
