package sim

import (
	"context"

	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/integrators"
	"github.com/x509cert/gravsim/internal/physics"
)

// DefaultGravityStep is applied per frame while up or down is held.
const DefaultGravityStep float32 = 50

type Simulator struct {
	field       *physics.ForceField
	integrator  dynamo.Integrator
	gravityStep float32
	metrics     []dynamo.Metric
	observers   []Observer
}

type Option func(*Simulator)

func WithIntegrator(i dynamo.Integrator) Option {
	return func(s *Simulator) { s.integrator = i }
}

func WithGravityStep(step float32) Option {
	return func(s *Simulator) { s.gravityStep = step }
}

func WithMetric(m dynamo.Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, m) }
}

func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

func New(opts ...Option) *Simulator {
	s := &Simulator{
		field:       physics.NewForceField(),
		integrator:  integrators.NewDampedEuler(integrators.DefaultDamping),
		gravityStep: DefaultGravityStep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)        { s.observers = append(s.observers, o) }
func (s *Simulator) Integrator() dynamo.Integrator { return s.integrator }

// Advance applies one frame to w. It returns false, leaving w untouched,
// when escape is held. Otherwise it adjusts gravity from the input and
// runs forces, integration and boundary resolution once each.
func (s *Simulator) Advance(w *dynamo.World, f Frame) (Stats, bool) {
	in := f.Input
	if in == nil {
		in = Keys{}
	}
	if in.IsKeyDown(KeyEscape) {
		return Stats{}, false
	}

	s.adjustGravity(w, in)

	forces := s.field.Compute(w.Bodies, w.G)
	s.integrator.Step(w.Bodies, forces, f.Dt)
	bounces := physics.Bounds{Width: f.Width, Height: f.Height}.ResolveAll(w.Bodies)

	stats := Measure(w, f.Dt)
	stats.Bounces = bounces

	for _, m := range s.metrics {
		m.Observe(w, f.Dt)
	}
	for _, obs := range s.observers {
		obs.OnFrame(w, stats)
	}

	return stats, true
}

func (s *Simulator) adjustGravity(w *dynamo.World, in Input) {
	if in.IsKeyDown(KeyUp) {
		w.G += s.gravityStep
	}
	if in.IsKeyDown(KeyDown) {
		w.G -= s.gravityStep
		if w.G < 0 {
			w.G = 0
		}
	}
}

// Measure computes the frame statistics of w for a frame of length dt.
func Measure(w *dynamo.World, dt float32) Stats {
	stats := Stats{
		AverageSpeed:  physics.AverageSpeed(w.Bodies),
		KineticEnergy: physics.KineticEnergy(w.Bodies),
		Bodies:        len(w.Bodies),
		Gravity:       w.G,
		FrameTimeMs:   dt * 1000,
	}
	if dt > 0 {
		stats.FPS = 1 / dt
	}
	return stats
}

// Run drives the frame loop on surface until escape is pressed or ctx is
// done. Metrics are reset at the start of the run.
func (s *Simulator) Run(ctx context.Context, w *dynamo.World, surface Surface) (*Result, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}

	for {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		width, height := surface.Viewport()
		frame := Frame{
			Dt:     surface.FrameTime(),
			Width:  width,
			Height: height,
			Input:  surface,
		}

		stats, ok := s.Advance(w, frame)
		if !ok {
			break
		}
		result.Frames++
		result.Last = stats

		Render(surface, w, stats)
		surface.Present()
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
