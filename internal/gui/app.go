package gui

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/x509cert/gravsim/internal/config"
	"github.com/x509cert/gravsim/internal/experiment"
	"github.com/x509cert/gravsim/internal/sim"
)

const telemetryFrames = 300

type App struct {
	cfg       *config.Config
	observers []sim.Observer
	telemetry bool
}

type Option func(*App)

// WithObserver attaches o to the simulator before the first frame.
func WithObserver(o sim.Observer) Option {
	return func(a *App) { a.observers = append(a.observers, o) }
}

// WithTelemetry draws a kinetic energy strip in the bottom left corner.
func WithTelemetry() Option {
	return func(a *App) { a.telemetry = true }
}

func NewApp(cfg *config.Config, opts ...Option) *App {
	a := &App{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// initWindow opens the window described by cfg. Escape is left to the
// simulation so raylib's own exit key is disabled.
func initWindow(cfg config.WindowConfig) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagVsyncHint)
	if cfg.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// Run opens the window, spawns the population into it and blocks until
// escape is pressed, the window is closed or ctx is done.
func (a *App) Run(ctx context.Context) (*sim.Result, error) {
	initWindow(a.cfg.Window)
	defer rl.CloseWindow()

	var telemetry *Telemetry
	if a.telemetry {
		telemetry = NewTelemetry(telemetryFrames)
	}
	window := NewWindow(telemetry)

	exp := experiment.New(a.cfg)
	width, height := window.Viewport()
	if err := exp.Setup(width, height); err != nil {
		return nil, err
	}

	simulator := exp.Simulator()
	for _, o := range a.observers {
		simulator.AddObserver(o)
	}
	if telemetry != nil {
		simulator.AddObserver(telemetry)
	}

	return simulator.Run(ctx, exp.World(), window)
}
