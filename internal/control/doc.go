// Package control provides feedback control over a running simulation.
//
//   - [PID]: Proportional-Integral-Derivative controller on a scalar
//   - [Autopilot]: presses the gravity keys to hold a target average speed
//
// # Usage
//
//	ap := control.NewAutopilot(40)
//	exp.Simulator().AddObserver(ap)
//	exp.SetScript(func(int) sim.Input { return ap })
package control
