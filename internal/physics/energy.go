package physics

import (
	"math"

	"github.com/x509cert/gravsim/internal/dynamo"
)

// KineticEnergy is the sum of 0.5*m*|v|^2 over all bodies.
func KineticEnergy(bodies []dynamo.Body) float32 {
	var ke float32
	for i := range bodies {
		ke += bodies[i].KineticEnergy()
	}
	return ke
}

// AverageSpeed is the mean |v|, or 0 for an empty set.
func AverageSpeed(bodies []dynamo.Body) float32 {
	if len(bodies) == 0 {
		return 0
	}
	var total float32
	for i := range bodies {
		total += bodies[i].Speed()
	}
	return total / float32(len(bodies))
}

func Momentum(bodies []dynamo.Body) dynamo.Vec2 {
	var p dynamo.Vec2
	for i := range bodies {
		p = p.Add(bodies[i].Velocity.Scale(bodies[i].Mass))
	}
	return p
}

// PotentialEnergy sums -G*mi*mj/r over the pairs the force field acts on.
func PotentialEnergy(bodies []dynamo.Body, g float32) float64 {
	pe := 0.0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			distSq := bodies[j].Position.Sub(bodies[i].Position).LenSq()
			if distSq <= MinDistanceSq {
				continue
			}
			r := math.Sqrt(float64(distSq))
			pe -= float64(g) * float64(bodies[i].Mass) * float64(bodies[j].Mass) / r
		}
	}
	return pe
}
