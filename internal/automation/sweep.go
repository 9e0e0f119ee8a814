package automation

import (
	"context"
	"fmt"

	"github.com/x509cert/gravsim/internal/config"
	"github.com/x509cert/gravsim/internal/experiment"
)

// GravitySweep runs the same seeded population at evenly spaced values of
// the gravitational constant.
type GravitySweep struct {
	Base       *config.Config
	GravityMin float32
	GravityMax float32
	NumSteps   int
	Frames     int
	Dt         float32
}

type SweepResult struct {
	Gravity           float32
	MeanKineticEnergy float64
	PeakSpeed         float64
	FinalAverageSpeed float32
	Bounces           int
}

func RunSweep(ctx context.Context, sweep *GravitySweep, progress func(done, total int)) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step")
	}
	if sweep.GravityMin < 0 || sweep.GravityMax < sweep.GravityMin {
		return nil, fmt.Errorf("invalid gravity range [%v, %v]", sweep.GravityMin, sweep.GravityMax)
	}

	var step float32
	if sweep.NumSteps > 1 {
		step = (sweep.GravityMax - sweep.GravityMin) / float32(sweep.NumSteps-1)
	}

	width := float32(sweep.Base.Window.Width)
	height := float32(sweep.Base.Window.Height)
	results := make([]SweepResult, 0, sweep.NumSteps)

	for i := 0; i < sweep.NumSteps; i++ {
		cfg := *sweep.Base
		cfg.Gravity = sweep.GravityMin + float32(i)*step

		exp := experiment.New(&cfg)
		if err := exp.Setup(width, height); err != nil {
			return results, fmt.Errorf("sweep %d: %w", i+1, err)
		}

		res, err := exp.Run(ctx, sweep.Frames, sweep.Dt)
		if err != nil {
			return results, fmt.Errorf("sweep %d: %w", i+1, err)
		}

		sr := SweepResult{
			Gravity:           cfg.Gravity,
			MeanKineticEnergy: res.Metrics["kinetic_energy"],
			PeakSpeed:         res.Metrics["peak_speed"],
		}
		for _, st := range res.Frames {
			sr.Bounces += st.Bounces
		}
		if n := len(res.Frames); n > 0 {
			sr.FinalAverageSpeed = res.Frames[n-1].AverageSpeed
		}
		results = append(results, sr)

		if progress != nil {
			progress(i+1, sweep.NumSteps)
		}
	}

	return results, nil
}
