package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/physics"
)

const (
	DefaultTitle       = "Circles with Gravity"
	DefaultWidth       = 800
	DefaultHeight      = 600
	DefaultBodies      = 74
	DefaultGravity     = 5000.0
	DefaultGravityStep = 50.0
	DefaultDamping     = 0.99
	DefaultIntegrator  = "damped"
	DefaultSeed        = 1
)

type Config struct {
	Window      WindowConfig `yaml:"window"`
	Bodies      int          `yaml:"bodies"`
	Gravity     float32      `yaml:"gravity"`
	GravityStep float32      `yaml:"gravity_step"`
	Damping     float32      `yaml:"damping"`
	Integrator  string       `yaml:"integrator"`
	Seed        int64        `yaml:"seed"`
	Spawn       SpawnConfig  `yaml:"spawn"`
}

type WindowConfig struct {
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
}

type SpawnConfig struct {
	MassMin  float32 `yaml:"mass_min"`
	MassMax  float32 `yaml:"mass_max"`
	Spread   float32 `yaml:"spread"`
	MaxSpeed float32 `yaml:"max_speed"`
}

func DefaultConfig() *Config {
	spawn := physics.DefaultSpawnConfig()
	return &Config{
		Window: WindowConfig{
			Title:      DefaultTitle,
			Fullscreen: true,
			Width:      DefaultWidth,
			Height:     DefaultHeight,
		},
		Bodies:      DefaultBodies,
		Gravity:     DefaultGravity,
		GravityStep: DefaultGravityStep,
		Damping:     DefaultDamping,
		Integrator:  DefaultIntegrator,
		Seed:        DefaultSeed,
		Spawn: SpawnConfig{
			MassMin:  spawn.MassMin,
			MassMax:  spawn.MassMax,
			Spread:   spawn.Spread,
			MaxSpeed: spawn.MaxSpeed,
		},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads a YAML file on top of base. Keys missing from the file
// keep base's values.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Bodies < 1:
		return fmt.Errorf("%w: bodies %d", dynamo.ErrParameterBounds, c.Bodies)
	case c.Gravity < 0 || !dynamo.IsFinite(c.Gravity):
		return fmt.Errorf("%w: gravity %v", dynamo.ErrParameterBounds, c.Gravity)
	case c.GravityStep < 0 || !dynamo.IsFinite(c.GravityStep):
		return fmt.Errorf("%w: gravity step %v", dynamo.ErrParameterBounds, c.GravityStep)
	case !(c.Damping > 0 && c.Damping <= 1):
		return fmt.Errorf("%w: damping %v not in (0, 1]", dynamo.ErrParameterBounds, c.Damping)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", dynamo.ErrParameterBounds, c.Window.Width, c.Window.Height)
	}
	return c.SpawnConfig().Validate()
}

// SpawnConfig converts the spawn section into the spawner's parameters.
func (c *Config) SpawnConfig() physics.SpawnConfig {
	return physics.SpawnConfig{
		Count:    c.Bodies,
		MassMin:  c.Spawn.MassMin,
		MassMax:  c.Spawn.MassMax,
		Spread:   c.Spawn.Spread,
		MaxSpeed: c.Spawn.MaxSpeed,
	}
}
