package config

import "sort"

var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"swarm": derive(func(c *Config) {
		c.Bodies = 200
		c.Gravity = 1500
		c.Spawn.MassMin = 2
		c.Spawn.MassMax = 16
		c.Spawn.Spread = 0.3
	}),
	"heavy": derive(func(c *Config) {
		c.Bodies = 12
		c.Gravity = 8000
		c.Spawn.MassMin = 40
		c.Spawn.MassMax = 120
		c.Spawn.Spread = 0.25
	}),
	"calm": derive(func(c *Config) {
		c.Gravity = 500
		c.GravityStep = 10
		c.Damping = 0.95
		c.Spawn.Spread = 0.4
		c.Spawn.MaxSpeed = 0
	}),
}

func derive(apply func(*Config)) *Config {
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	preset, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *preset
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
