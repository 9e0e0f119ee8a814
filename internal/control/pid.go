package control

type PID struct {
	Kp, Ki, Kd   float64
	Target       float64
	integral     float64
	prevMeasured float64
	first        bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		first:  true,
	}
}

// Update returns the control output for a measurement taken dt seconds
// after the previous one. The derivative acts on the measurement so a
// target change does not kick the output.
func (p *PID) Update(measured, dt float64) float64 {
	err := p.Target - measured

	if p.first || dt <= 0 {
		p.prevMeasured = measured
		p.first = false
		return p.Kp * err
	}

	p.integral += err * dt
	derivative := -(measured - p.prevMeasured) / dt
	p.prevMeasured = measured

	return p.Kp*err + p.Ki*p.integral + p.Kd*derivative
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevMeasured = 0
	p.first = true
}
