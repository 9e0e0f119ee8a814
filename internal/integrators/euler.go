package integrators

import "github.com/x509cert/gravsim/internal/dynamo"

// DefaultDamping is the per-frame velocity decay factor.
const DefaultDamping float32 = 0.99

// DampedEuler is the reference integrator. Velocity takes the full
// acceleration and is then damped; position moves by the velocity the
// body had at the start of the frame. Damping is applied once per call
// and does not scale with dt.
type DampedEuler struct {
	Damping float32
}

func NewDampedEuler(damping float32) *DampedEuler {
	return &DampedEuler{Damping: damping}
}

func (e *DampedEuler) Name() string { return "damped" }

func (e *DampedEuler) Step(bodies []dynamo.Body, forces []dynamo.Vec2, dt float32) {
	for i := range bodies {
		b := &bodies[i]
		v := b.Velocity
		a := forces[i].Div(b.Mass)

		b.Velocity = v.Add(a.Scale(dt)).Scale(e.Damping)
		b.Position = b.Position.Add(v.Scale(dt))
	}
}
