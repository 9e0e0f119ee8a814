package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/x509cert/gravsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Window.Title != "Circles with Gravity" {
		t.Errorf("unexpected title %q", cfg.Window.Title)
	}
	if !cfg.Window.Fullscreen {
		t.Error("default window should be fullscreen")
	}
	if cfg.Bodies != 74 {
		t.Errorf("expected 74 bodies, got %d", cfg.Bodies)
	}
	if cfg.Gravity != 5000 || cfg.GravityStep != 50 {
		t.Errorf("expected gravity 5000 step 50, got %v step %v", cfg.Gravity, cfg.GravityStep)
	}
	if cfg.Integrator != "damped" {
		t.Errorf("expected damped integrator, got %s", cfg.Integrator)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no bodies", func(c *Config) { c.Bodies = 0 }},
		{"negative gravity", func(c *Config) { c.Gravity = -1 }},
		{"negative step", func(c *Config) { c.GravityStep = -5 }},
		{"zero damping", func(c *Config) { c.Damping = 0 }},
		{"amplifying damping", func(c *Config) { c.Damping = 1.5 }},
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"inverted mass range", func(c *Config) { c.Spawn.MassMin, c.Spawn.MassMax = 10, 5 }},
		{"spread out of range", func(c *Config) { c.Spawn.Spread = 2 }},
		{"NaN damping", func(c *Config) { c.Damping = float32(math.NaN()) }},
		{"NaN spread", func(c *Config) { c.Spawn.Spread = float32(math.NaN()) }},
		{"NaN max speed", func(c *Config) { c.Spawn.MaxSpeed = float32(math.NaN()) }},
		{"infinite max speed", func(c *Config) { c.Spawn.MaxSpeed = float32(math.Inf(1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gravsim.yaml")
	data := []byte("bodies: 10\ngravity: 1200\nwindow:\n  fullscreen: false\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Bodies != 10 || cfg.Gravity != 1200 {
		t.Errorf("file values not applied: bodies %d gravity %v", cfg.Bodies, cfg.Gravity)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen false from file")
	}
	if cfg.Window.Title != DefaultTitle || cfg.Window.Width != DefaultWidth {
		t.Error("keys missing from the file should keep defaults")
	}
	if cfg.Damping != DefaultDamping {
		t.Errorf("expected default damping, got %v", cfg.Damping)
	}
}

func TestLoadOnto_KeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gravsim.yaml")
	if err := os.WriteFile(path, []byte("seed: 42\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("heavy")
	cfg, err := LoadOnto(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 42 || cfg.Bodies != base.Bodies {
		t.Errorf("expected heavy preset with seed 42, got %+v", cfg)
	}
	if base.Seed == 42 {
		t.Error("base should not be modified")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("bodies: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	want := GetPreset("swarm")

	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("swarm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Bodies != 200 {
		t.Errorf("expected 200 bodies, got %d", cfg.Bodies)
	}

	cfg.Bodies = 1
	if GetPreset("swarm").Bodies != 200 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresets_Validate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestListPresets(t *testing.T) {
	want := []string{"calm", "heavy", "reference", "swarm"}
	if got := ListPresets(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSpawnConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies = 5

	sc := cfg.SpawnConfig()
	if sc.Count != 5 || sc.MassMin != 8 || sc.MassMax != 75 {
		t.Errorf("unexpected spawn config %+v", sc)
	}
}
