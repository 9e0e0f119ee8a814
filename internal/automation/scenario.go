package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/x509cert/gravsim/internal/config"
	"github.com/x509cert/gravsim/internal/experiment"
	"github.com/x509cert/gravsim/internal/sim"
)

// Scenario is a scripted headless run: a preset, a frame budget and the
// keys held over ranges of frames.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Preset      string  `yaml:"preset"`
	Seed        int64   `yaml:"seed"`
	Frames      int     `yaml:"frames"`
	Dt          float32 `yaml:"dt"`
	Width       float32 `yaml:"width"`
	Height      float32 `yaml:"height"`
	Steps       []Step  `yaml:"steps"`
}

// Step holds Keys for frames in [From, To).
type Step struct {
	From int      `yaml:"from"`
	To   int      `yaml:"to"`
	Keys []string `yaml:"keys"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Script compiles the steps into a per-frame key lookup. Overlapping
// steps combine their keys.
func (s *Scenario) Script() (experiment.Script, error) {
	type span struct {
		from, to int
		keys     sim.Keys
	}

	spans := make([]span, 0, len(s.Steps))
	for i, step := range s.Steps {
		if step.To <= step.From {
			return nil, fmt.Errorf("step %d: empty frame range [%d, %d)", i+1, step.From, step.To)
		}
		var keys sim.Keys
		for _, name := range step.Keys {
			k, err := sim.ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			keys = keys.Press(k)
		}
		spans = append(spans, span{step.From, step.To, keys})
	}

	return func(frame int) sim.Input {
		var held sim.Keys
		for _, sp := range spans {
			if frame < sp.from || frame >= sp.to {
				continue
			}
			if sp.keys.Up {
				held.Up = true
			}
			if sp.keys.Down {
				held.Down = true
			}
			if sp.keys.Escape {
				held.Escape = true
			}
		}
		return held
	}, nil
}

// Config resolves the scenario's preset and seed on top of base. The
// preset replaces base entirely.
func (s *Scenario) Config(base *config.Config) (*config.Config, error) {
	cfg := *base
	if s.Preset != "" {
		preset := config.GetPreset(s.Preset)
		if preset == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
		cfg = *preset
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	return &cfg, nil
}

// RunScenario executes the scenario's key script and frame budget on cfg
// as given. Resolve the scenario's preset and seed first with Config.
func RunScenario(ctx context.Context, s *Scenario, cfg *config.Config) (*experiment.Result, error) {
	if s.Frames <= 0 || s.Dt <= 0 {
		return nil, fmt.Errorf("scenario %s: frames and dt must be positive", s.Name)
	}

	script, err := s.Script()
	if err != nil {
		return nil, err
	}

	width, height := s.Width, s.Height
	if width <= 0 || height <= 0 {
		width, height = float32(cfg.Window.Width), float32(cfg.Window.Height)
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(width, height); err != nil {
		return nil, fmt.Errorf("scenario %s setup: %w", s.Name, err)
	}
	exp.SetScript(script)

	result, err := exp.Run(ctx, s.Frames, s.Dt)
	if err != nil {
		return result, fmt.Errorf("scenario %s run: %w", s.Name, err)
	}
	return result, nil
}
