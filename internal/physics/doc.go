// Package physics implements the per-frame physics of the gravity simulation.
//
// A frame runs three stages over the [dynamo.Body] set:
//
//   - [ForceField]: brute-force pairwise attraction, each pair visited once
//   - an integrator from package integrators, fed the force snapshot
//   - [Bounds]: clamp and reflect bodies that crossed a viewport edge
//
// [Spawn] builds the initial clustered population from an injectable
// [Rand], and [KineticEnergy], [AverageSpeed], [Momentum] and
// [PotentialEnergy] provide diagnostics.
//
// # Close Encounters
//
// Pairs closer than sqrt([MinDistanceSq]) are skipped entirely rather
// than softened:
//
//	forces := physics.NewForceField().Compute(w.Bodies, w.G)
//	// forces[i] excludes every j with |p[j]-p[i]|^2 <= 1
package physics
