// Package analysis provides post-run analysis of gravity simulations.
//
//   - [PowerSpectrum]: FFT magnitude spectrum of a sampled series
//   - [DominantFrequency]: strongest oscillation in a series, in Hz
//   - [LyapunovExponent]: sensitivity of the population to a small nudge
//   - [GeneratePhasePortrait]: one body's position/velocity trajectory
//
// # Energy Oscillation
//
// Bodies falling through the cluster center and back produce a periodic
// kinetic energy signal:
//
//	ke := make([]float64, len(res.Frames))
//	for i, s := range res.Frames {
//	    ke[i] = float64(s.KineticEnergy)
//	}
//	hz := analysis.DominantFrequency(ke, dt)
package analysis
