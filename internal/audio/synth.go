package audio

import (
	"math"
	"sync"

	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/sim"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

const (
	baseCutoff = 300.0
	maxCutoff  = 1200.0
	volume     = 0.252
)

// G2, Bb2, D3, F3, A3
var chord = []float64{98.00, 116.54, 146.83, 174.61, 220.00}

// Drone is an ambient pad whose low-pass cutoff opens with the kinetic
// energy of the simulation. Wall bounces add a short burst of brightness.
// It implements sim.Observer; OnFrame runs on the simulation goroutine
// and Process on the audio callback.
type Drone struct {
	mu      sync.Mutex
	energy  float64
	bounces int

	// audio thread only
	time        float64
	energySmth  float64
	sparkle     float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int
}

var _ sim.Observer = (*Drone)(nil)

func NewDrone() *Drone {
	// 0.6 second delay
	delayLen := int(float64(SampleRate) * 0.6)
	return &Drone{
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

func (d *Drone) OnFrame(w *dynamo.World, s sim.Stats) {
	d.mu.Lock()
	d.energy = float64(s.KineticEnergy)
	d.bounces += s.Bounces
	d.mu.Unlock()
}

// Cutoff maps a kinetic energy to a filter cutoff in Hz. Energy spans
// many decades across presets, so the mapping is logarithmic.
func Cutoff(energy float64) float64 {
	if energy <= 0 || math.IsNaN(energy) {
		return baseCutoff
	}
	return baseCutoff + math.Min(150*math.Log10(1+energy), maxCutoff-baseCutoff)
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// lpf is a one pole low-pass filter.
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Process fills a stereo output buffer. It matches the portaudio
// callback signature for an output-only stream.
func (d *Drone) Process(out [][]float32) {
	d.mu.Lock()
	target := d.energy
	bounces := d.bounces
	d.bounces = 0
	d.mu.Unlock()

	// slow morph so frame-to-frame jitter is inaudible
	d.energySmth = d.energySmth*0.995 + target*0.005
	d.sparkle = math.Min(d.sparkle+0.05*float64(bounces), 1)

	dt := 1.0 / float64(SampleRate)
	g := 1.0 / float64(len(chord))

	for i := range out[0] {
		cutoff := math.Min(Cutoff(d.energySmth)+600*d.sparkle, maxCutoff+600)

		var left, right float64
		for j, f := range chord {
			lfo := math.Sin(d.time*0.2 + float64(j))
			left += triangle(d.time*f*0.999) * g * (0.7 + 0.3*lfo)
			right += triangle(d.time*f*1.001) * g * (0.7 + 0.3*lfo)
		}

		d.filterState[0] = lpf(left, cutoff, dt, d.filterState[0])
		d.filterState[1] = lpf(right, cutoff, dt, d.filterState[1])

		delayL := d.delayLine[0][d.delayHead]
		delayR := d.delayLine[1][d.delayHead]

		// ping pong feedback
		mixL := d.filterState[0] + delayL*0.3 + delayR*0.1
		mixR := d.filterState[1] + delayR*0.3 + delayL*0.1

		d.delayLine[0][d.delayHead] = mixL * 0.7
		d.delayLine[1][d.delayHead] = mixR * 0.7
		d.delayHead = (d.delayHead + 1) % len(d.delayLine[0])

		out[0][i] = float32(mixL * volume)
		out[1][i] = float32(mixR * volume)

		d.time += dt
		d.sparkle *= 0.99995
	}
}
