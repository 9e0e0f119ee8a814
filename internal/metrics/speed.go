package metrics

import "github.com/x509cert/gravsim/internal/dynamo"

// PeakSpeed is the fastest body speed seen in any frame.
type PeakSpeed struct {
	name string
	peak float32
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(w *dynamo.World, dt float32) {
	for i := range w.Bodies {
		if s := w.Bodies[i].Speed(); s > p.peak {
			p.peak = s
		}
	}
}

func (p *PeakSpeed) Value() float64 { return float64(p.peak) }

func (p *PeakSpeed) Reset() { p.peak = 0 }

// FrameTime averages the frame duration in milliseconds.
type FrameTime struct {
	name    string
	sum     float64
	samples int
}

func NewFrameTime() *FrameTime {
	return &FrameTime{name: "frame_time_ms"}
}

func (f *FrameTime) Name() string { return f.name }

func (f *FrameTime) Observe(w *dynamo.World, dt float32) {
	f.sum += float64(dt) * 1000
	f.samples++
}

func (f *FrameTime) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return f.sum / float64(f.samples)
}

func (f *FrameTime) Reset() {
	f.sum = 0
	f.samples = 0
}

// Defaults returns a fresh set of the run summary metrics.
func Defaults() []dynamo.Metric {
	return []dynamo.Metric{
		NewMeanKineticEnergy(),
		NewPeakSpeed(),
		NewMomentumDrift(),
		NewFrameTime(),
	}
}
