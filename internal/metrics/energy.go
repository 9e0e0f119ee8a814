package metrics

import (
	"math"

	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/physics"
)

// MeanKineticEnergy averages the total kinetic energy over observed frames.
type MeanKineticEnergy struct {
	name    string
	samples int
	total   float64
}

func NewMeanKineticEnergy() *MeanKineticEnergy {
	return &MeanKineticEnergy{name: "kinetic_energy"}
}

func (e *MeanKineticEnergy) Name() string { return e.name }

func (e *MeanKineticEnergy) Observe(w *dynamo.World, dt float32) {
	e.total += float64(physics.KineticEnergy(w.Bodies))
	e.samples++
}

func (e *MeanKineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *MeanKineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// MomentumDrift tracks the largest deviation of total momentum from the
// first observed frame. Internal forces cancel, so drift comes from
// damping and wall reflections.
type MomentumDrift struct {
	name     string
	initial  dynamo.Vec2
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(w *dynamo.World, dt float32) {
	p := physics.Momentum(w.Bodies)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++

	drift := float64(p.Sub(m.initial).Len())
	m.maxDrift = math.Max(m.maxDrift, drift)
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = dynamo.Vec2{}
	m.maxDrift = 0
	m.samples = 0
}
