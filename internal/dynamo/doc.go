// Package dynamo provides the core data model of the gravity simulation.
//
// The package defines the value types and contracts every other package
// builds on:
//
//   - [Vec2]: float32 2-D vector in world (pixel) coordinates
//   - [Body]: circular particle with position, velocity, mass and color
//   - [World]: the body set plus the live gravitational constant
//   - [Integrator]: advances bodies from a precomputed force snapshot
//   - [Metric]: accumulates a scalar over the frames of a run
//
// # Example
//
//	w, _ := dynamo.NewWorld(bodies, 5000)
//	forces := physics.NewForceField().Compute(w.Bodies, w.G)
//	integrators.NewDampedEuler(0.99).Step(w.Bodies, forces, dt)
//
// # Thread Safety
//
// A World is owned by a single frame loop. Nothing in this package locks.
package dynamo
