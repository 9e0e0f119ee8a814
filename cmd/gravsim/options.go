package main

import (
	"fmt"

	"github.com/x509cert/gravsim/internal/config"
)

type options struct {
	configFile string
	preset     string
	seed       int64
	bodies     int
	gravity    float32
	integrator string
	fullscreen bool

	// Set by the scenario command from the scenario file.
	scenarioPreset string
	scenarioSeed   int64
}

// resolve builds the effective configuration. Later sources win:
// defaults, then the preset (the --preset flag over a scenario's), then
// the config file, then a scenario's seed, then flags the user actually
// set.
func (o *options) resolve(changed func(name string) bool) (*config.Config, error) {
	cfg := config.DefaultConfig()

	preset := o.preset
	if preset == "" {
		preset = o.scenarioPreset
	}
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if o.configFile != "" {
		loaded, err := config.LoadOnto(o.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if o.scenarioSeed != 0 {
		cfg.Seed = o.scenarioSeed
	}

	if changed("seed") {
		cfg.Seed = o.seed
	}
	if changed("bodies") {
		cfg.Bodies = o.bodies
	}
	if changed("gravity") {
		cfg.Gravity = o.gravity
	}
	if changed("integrator") {
		cfg.Integrator = o.integrator
	}
	if changed("fullscreen") {
		cfg.Window.Fullscreen = o.fullscreen
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
