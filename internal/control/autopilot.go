package control

import (
	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/sim"
)

const (
	defaultKp       = 1.0
	defaultKi       = 0.2
	defaultKd       = 0.0
	defaultDeadband = 0.5
)

// Autopilot holds the average body speed near a target by pressing the
// gravity keys, the same way a player would. It is both the sim.Input for
// the next frame and a sim.Observer of the last one.
type Autopilot struct {
	pid      *PID
	deadband float64
	held     sim.Keys
}

var (
	_ sim.Input    = (*Autopilot)(nil)
	_ sim.Observer = (*Autopilot)(nil)
)

func NewAutopilot(targetSpeed float64) *Autopilot {
	return &Autopilot{
		pid:      NewPID(defaultKp, defaultKi, defaultKd, targetSpeed),
		deadband: defaultDeadband,
	}
}

func (a *Autopilot) IsKeyDown(k sim.Key) bool { return a.held.IsKeyDown(k) }

// OnFrame decides which key to hold next frame. Gravity only changes in
// fixed steps, so outputs inside the deadband hold nothing.
func (a *Autopilot) OnFrame(w *dynamo.World, s sim.Stats) {
	u := a.pid.Update(float64(s.AverageSpeed), float64(s.FrameTimeMs)/1000)

	switch {
	case u > a.deadband:
		a.held = sim.Keys{Up: true}
	case u < -a.deadband:
		a.held = sim.Keys{Down: true}
	default:
		a.held = sim.Keys{}
	}
}

func (a *Autopilot) Target() float64 { return a.pid.Target }

func (a *Autopilot) Reset() {
	a.pid.Reset()
	a.held = sim.Keys{}
}
