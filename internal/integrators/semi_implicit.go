package integrators

import "github.com/x509cert/gravsim/internal/dynamo"

// SemiImplicit is symplectic Euler with the same damping as
// DampedEuler: position moves by the updated velocity.
type SemiImplicit struct {
	Damping float32
}

func NewSemiImplicit(damping float32) *SemiImplicit {
	return &SemiImplicit{Damping: damping}
}

func (s *SemiImplicit) Name() string { return "semi_implicit" }

func (s *SemiImplicit) Step(bodies []dynamo.Body, forces []dynamo.Vec2, dt float32) {
	for i := range bodies {
		b := &bodies[i]
		a := forces[i].Div(b.Mass)

		b.Velocity = b.Velocity.Add(a.Scale(dt)).Scale(s.Damping)
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	}
}
