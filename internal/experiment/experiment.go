package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/x509cert/gravsim/internal/config"
	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/physics"
	"github.com/x509cert/gravsim/internal/sim"
)

// Script supplies the keys held on a given frame of a headless run.
type Script func(frame int) sim.Input

type Result struct {
	Frames  []sim.Stats
	Metrics map[string]float64
	Stopped bool // escape was scripted before the frame budget ran out
}

type Experiment struct {
	cfg        *config.Config
	registry   *Registry
	randSource *rand.Rand
	script     Script

	simulator     *sim.Simulator
	world         *dynamo.World
	metrics       []dynamo.Metric
	width, height float32
}

// New creates an experiment from cfg. A zero seed draws one from the clock.
func New(cfg *config.Config) *Experiment {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Experiment{
		cfg:        cfg,
		registry:   NewRegistry(),
		randSource: rand.New(rand.NewSource(seed)),
	}
}

func (e *Experiment) SetScript(s Script) { e.script = s }

// Setup spawns the population into a width x height viewport and builds
// the simulator.
func (e *Experiment) Setup(width, height float32) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	integ, err := e.registry.GetIntegrator(e.cfg.Integrator, e.cfg.Damping)
	if err != nil {
		return err
	}

	bodies, err := physics.Spawn(e.randSource, e.cfg.SpawnConfig(), width, height)
	if err != nil {
		return err
	}
	world, err := dynamo.NewWorld(bodies, e.cfg.Gravity)
	if err != nil {
		return err
	}

	e.metrics = e.registry.DefaultMetrics()
	opts := []sim.Option{
		sim.WithIntegrator(integ),
		sim.WithGravityStep(e.cfg.GravityStep),
	}
	for _, m := range e.metrics {
		opts = append(opts, sim.WithMetric(m))
	}

	e.simulator = sim.New(opts...)
	e.world = world
	e.width, e.height = width, height
	return nil
}

// Run advances the world for up to frames fixed steps of dt.
func (e *Experiment) Run(ctx context.Context, frames int, dt float32) (*Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if frames < 0 {
		return nil, fmt.Errorf("%w: frames %d", dynamo.ErrParameterBounds, frames)
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	result := &Result{
		Frames:  make([]sim.Stats, 0, frames),
		Metrics: make(map[string]float64),
	}

	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			e.collect(result)
			return result, err
		}

		var in sim.Input = sim.Keys{}
		if e.script != nil {
			in = e.script(i)
		}

		stats, ok := e.simulator.Advance(e.world, sim.Frame{
			Dt:     dt,
			Width:  e.width,
			Height: e.height,
			Input:  in,
		})
		if !ok {
			result.Stopped = true
			break
		}
		if err := e.world.Validate(); err != nil {
			e.collect(result)
			return result, &dynamo.FrameError{Frame: i, Wrapped: err}
		}

		result.Frames = append(result.Frames, stats)
	}

	e.collect(result)
	return result, nil
}

func (e *Experiment) collect(result *Result) {
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (e *Experiment) World() *dynamo.World         { return e.world }
func (e *Experiment) Simulator() *sim.Simulator    { return e.simulator }
func (e *Experiment) Config() *config.Config       { return e.cfg }
func (e *Experiment) Viewport() (float32, float32) { return e.width, e.height }
