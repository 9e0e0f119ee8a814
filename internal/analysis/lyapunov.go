package analysis

import (
	"math"

	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/sim"
)

// LyapunovExponent estimates the largest Lyapunov exponent of the
// population by running a copy of w with body 0 nudged along x and
// tracking how fast the two runs separate. A positive value means small
// differences in the starting positions grow exponentially.
//
// w is not modified. Both runs share integ and the width x height
// viewport, so wall reflections are part of the dynamics being measured.
func LyapunovExponent(
	w *dynamo.World,
	integ dynamo.Integrator,
	frames int,
	dt, width, height float32,
	perturbation float32,
) float64 {
	if w.Len() == 0 || frames <= 0 || dt <= 0 || perturbation <= 0 {
		return 0
	}

	ref := w.Clone()
	pert := w.Clone()
	pert.Bodies[0].Position.X += perturbation

	d0 := separation(ref, pert)
	if d0 == 0 {
		return 0
	}

	simulator := sim.New(sim.WithIntegrator(integ))
	frame := sim.Frame{Dt: dt, Width: width, Height: height}

	// Growth is logged at each rescale back to d0 and once more for the
	// remainder after the last frame.
	sumLog := 0.0
	sep := d0
	steps := 0

	for i := 0; i < frames; i++ {
		simulator.Advance(ref, frame)
		simulator.Advance(pert, frame)

		next := separation(ref, pert)
		if next == 0 || math.IsInf(next, 0) || math.IsNaN(next) {
			break
		}
		sep = next
		steps++

		if sep > renormalizeAt {
			sumLog += math.Log(sep / d0)
			rescale(ref, pert, float32(d0/sep))
			sep = d0
		}
	}

	if steps == 0 {
		return 0
	}
	sumLog += math.Log(sep / d0)

	return sumLog / (float64(steps) * float64(dt))
}

// renormalizeAt is the phase space separation above which the
// perturbed run is pulled back toward the reference.
const renormalizeAt = 1.0

// rescale shrinks the offset of pert from ref by scale.
func rescale(ref, pert *dynamo.World, scale float32) {
	for j := range pert.Bodies {
		r, p := ref.Bodies[j], &pert.Bodies[j]
		p.Position = r.Position.Add(p.Position.Sub(r.Position).Scale(scale))
		p.Velocity = r.Velocity.Add(p.Velocity.Sub(r.Velocity).Scale(scale))
	}
}

// separation is the Euclidean distance between two worlds in phase space.
func separation(a, b *dynamo.World) float64 {
	sum := 0.0
	for i := range a.Bodies {
		dp := b.Bodies[i].Position.Sub(a.Bodies[i].Position)
		dv := b.Bodies[i].Velocity.Sub(a.Bodies[i].Velocity)
		sum += float64(dp.LenSq()) + float64(dv.LenSq())
	}
	return math.Sqrt(sum)
}
