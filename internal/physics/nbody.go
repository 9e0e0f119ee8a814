package physics

import "github.com/x509cert/gravsim/internal/dynamo"

// MinDistanceSq is the squared separation at or below which a pair
// contributes no force.
const MinDistanceSq float32 = 1.0

// ForceField accumulates pairwise gravitational attraction for a body set.
// The returned slice is reused between calls.
type ForceField struct {
	forces []dynamo.Vec2
}

func NewForceField() *ForceField {
	return &ForceField{}
}

// Compute returns the net force on every body. Each unordered pair is
// visited once; the force added to i is subtracted from j.
func (f *ForceField) Compute(bodies []dynamo.Body, g float32) []dynamo.Vec2 {
	n := len(bodies)
	if cap(f.forces) < n {
		f.forces = make([]dynamo.Vec2, n)
	}
	forces := f.forces[:n]
	for i := range forces {
		forces[i] = dynamo.Vec2{}
	}

	for i := 0; i < n; i++ {
		pi, mi := bodies[i].Position, bodies[i].Mass

		for j := i + 1; j < n; j++ {
			direction := bodies[j].Position.Sub(pi)
			distSq := direction.LenSq()
			if distSq <= MinDistanceSq {
				continue
			}

			magnitude := g * mi * bodies[j].Mass / distSq
			force := direction.Normalize().Scale(magnitude)

			forces[i] = forces[i].Add(force)
			forces[j] = forces[j].Sub(force)
		}
	}

	return forces
}

// PairForce is the force body j exerts on body i, or false when the pair
// is inside MinDistanceSq.
func PairForce(bi, bj *dynamo.Body, g float32) (dynamo.Vec2, bool) {
	direction := bj.Position.Sub(bi.Position)
	distSq := direction.LenSq()
	if distSq <= MinDistanceSq {
		return dynamo.Vec2{}, false
	}
	return direction.Normalize().Scale(g * bi.Mass * bj.Mass / distSq), true
}
