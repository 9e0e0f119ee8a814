package automation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/x509cert/gravsim/internal/config"
	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/experiment"
)

// MonteCarlo runs the same configuration over consecutive seeds.
type MonteCarlo struct {
	Base   *config.Config
	Trials int
	Frames int
	Dt     float32
}

type TrialResult struct {
	Trial             int
	Seed              int64
	MeanKineticEnergy float64
	PeakSpeed         float64
	FinalAverageSpeed float32
	Stable            bool // no body position or velocity went NaN/Inf
}

// RunMonteCarlo runs one trial per seed, starting from the base seed (or
// the clock when it is zero). A trial that blows up is recorded as
// unstable rather than aborting the run.
func RunMonteCarlo(ctx context.Context, mc *MonteCarlo, progress func(done, total int)) ([]TrialResult, error) {
	if mc.Trials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least one trial")
	}

	seed := mc.Base.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	width := float32(mc.Base.Window.Width)
	height := float32(mc.Base.Window.Height)

	results := make([]TrialResult, 0, mc.Trials)
	for trial := 0; trial < mc.Trials; trial++ {
		cfg := *mc.Base
		cfg.Seed = seed + int64(trial)

		exp := experiment.New(&cfg)
		if err := exp.Setup(width, height); err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		tr := TrialResult{Trial: trial, Seed: cfg.Seed, Stable: true}
		res, err := exp.Run(ctx, mc.Frames, mc.Dt)
		var frameErr *dynamo.FrameError
		switch {
		case errors.As(err, &frameErr):
			tr.Stable = false
		case err != nil:
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		tr.MeanKineticEnergy = res.Metrics["kinetic_energy"]
		tr.PeakSpeed = res.Metrics["peak_speed"]
		if n := len(res.Frames); n > 0 {
			tr.FinalAverageSpeed = res.Frames[n-1].AverageSpeed
		}
		results = append(results, tr)

		if progress != nil {
			progress(trial+1, mc.Trials)
		}
	}

	return results, nil
}

func MonteCarloStats(results []TrialResult) (stable, unstable int) {
	for _, r := range results {
		if r.Stable {
			stable++
		} else {
			unstable++
		}
	}
	return
}
