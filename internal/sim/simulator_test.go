package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/x509cert/gravsim/internal/dynamo"
)

type fakeSurface struct {
	keys          []Keys // one entry per frame; the last one repeats
	frame         int
	dt            float32
	width, height float32

	clears   int
	circles  int
	texts    []string
	presents int
}

func (f *fakeSurface) current() Keys {
	if len(f.keys) == 0 {
		return Keys{}
	}
	if f.frame < len(f.keys) {
		return f.keys[f.frame]
	}
	return f.keys[len(f.keys)-1]
}

func (f *fakeSurface) IsKeyDown(k Key) bool         { return f.current().IsKeyDown(k) }
func (f *fakeSurface) FrameTime() float32           { return f.dt }
func (f *fakeSurface) Viewport() (float32, float32) { return f.width, f.height }
func (f *fakeSurface) Clear(dynamo.Color)           { f.clears++ }

func (f *fakeSurface) DrawCircle(_, _, _ float32, _ dynamo.Color) {
	f.circles++
}

func (f *fakeSurface) DrawText(s string, _, _, _ float32, _ dynamo.Color) {
	f.texts = append(f.texts, s)
}

func (f *fakeSurface) Present() {
	f.presents++
	f.frame++
}

func twoBodyWorld(t *testing.T) *dynamo.World {
	t.Helper()
	w, err := dynamo.NewWorld([]dynamo.Body{
		{Position: dynamo.Vec2{X: 100, Y: 100}, Mass: 10},
		{Position: dynamo.Vec2{X: 110, Y: 100}, Mass: 10},
	}, 5000)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestAdvance_TwoBodyScenario(t *testing.T) {
	w := twoBodyWorld(t)
	s := New()

	stats, ok := s.Advance(w, Frame{Dt: 0.016, Width: 800, Height: 600})
	if !ok {
		t.Fatal("Advance stopped without escape")
	}

	v0, v1 := w.Bodies[0].Velocity.X, w.Bodies[1].Velocity.X
	if math.Abs(float64(v0-7.92)) > 1e-4 {
		t.Errorf("body 0 vx = %v, want +7.92", v0)
	}
	if math.Abs(float64(v1+7.92)) > 1e-4 {
		t.Errorf("body 1 vx = %v, want -7.92", v1)
	}
	// positions move by the pre-step velocity, which was zero
	if w.Bodies[0].Position.X != 100 || w.Bodies[1].Position.X != 110 {
		t.Errorf("positions moved on the first frame: %v, %v", w.Bodies[0].Position, w.Bodies[1].Position)
	}
	if stats.Bodies != 2 || stats.Gravity != 5000 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestAdvance_EscapeLeavesWorldUntouched(t *testing.T) {
	w := twoBodyWorld(t)
	before := w.Clone()

	_, ok := New().Advance(w, Frame{Dt: 0.016, Width: 800, Height: 600, Input: Keys{Up: true, Escape: true}})

	if ok {
		t.Fatal("expected Advance to stop on escape")
	}
	if w.G != before.G {
		t.Errorf("gravity changed on the terminal frame: %v", w.G)
	}
	for i := range w.Bodies {
		if w.Bodies[i] != before.Bodies[i] {
			t.Errorf("body %d mutated on the terminal frame", i)
		}
	}
}

func TestAdvance_GravityControl(t *testing.T) {
	tests := []struct {
		name     string
		start    float32
		keys     Keys
		frames   int
		expected float32
	}{
		{"up held", 5000, Keys{Up: true}, 3, 5150},
		{"down held", 5000, Keys{Down: true}, 4, 4800},
		{"floor at zero", 120, Keys{Down: true}, 10, 0},
		{"both cancel", 5000, Keys{Up: true, Down: true}, 5, 5000},
		{"idle", 5000, Keys{}, 5, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := twoBodyWorld(t)
			w.G = tt.start
			s := New()
			for i := 0; i < tt.frames; i++ {
				s.Advance(w, Frame{Dt: 0.016, Width: 800, Height: 600, Input: tt.keys})
				if w.G < 0 {
					t.Fatalf("frame %d: gravity below zero: %v", i, w.G)
				}
			}
			if w.G != tt.expected {
				t.Errorf("G = %v, want %v", w.G, tt.expected)
			}
		})
	}
}

func TestAdvance_BoundaryScenario(t *testing.T) {
	b := dynamo.Body{Velocity: dynamo.Vec2{X: -10}, Mass: 20}
	b.Position = dynamo.Vec2{X: b.Radius() - 5, Y: 50}
	w, _ := dynamo.NewWorld([]dynamo.Body{b}, 5000)

	stats, _ := New().Advance(w, Frame{Dt: 0, Width: 800, Height: 600})

	got := w.Bodies[0]
	if got.Position.X != got.Radius() {
		t.Errorf("x = %v, want %v", got.Position.X, got.Radius())
	}
	// damped to 9.9 by the integrator, then reflected
	if math.Abs(float64(got.Velocity.X)-9.9) > 1e-5 {
		t.Errorf("vx = %v, want +9.9", got.Velocity.X)
	}
	if stats.Bounces != 1 {
		t.Errorf("Bounces = %d, want 1", stats.Bounces)
	}
}

func TestAdvance_ContainsAllBodies(t *testing.T) {
	w, _ := dynamo.NewWorld([]dynamo.Body{
		{Position: dynamo.Vec2{X: 400, Y: 300}, Mass: 60},
		{Position: dynamo.Vec2{X: 420, Y: 300}, Mass: 60},
		{Position: dynamo.Vec2{X: 400, Y: 320}, Mass: 60},
	}, 50000)
	s := New()

	for i := 0; i < 500; i++ {
		// shrink the viewport to force contact with every edge
		width := float32(800 - i)
		s.Advance(w, Frame{Dt: 0.016, Width: width, Height: 600})
		for j := range w.Bodies {
			b := &w.Bodies[j]
			r := b.Radius()
			if b.Position.X < r || b.Position.X > width-r || b.Position.Y < r || b.Position.Y > 600-r {
				t.Fatalf("frame %d: body %d escaped to %v", i, j, b.Position)
			}
			if b.Radius() != b.Mass/2 {
				t.Fatalf("frame %d: radius invariant broken", i)
			}
		}
	}
}

type countingMetric struct{ frames int }

func (c *countingMetric) Name() string                   { return "frames" }
func (c *countingMetric) Observe(*dynamo.World, float32) { c.frames++ }
func (c *countingMetric) Value() float64                 { return float64(c.frames) }
func (c *countingMetric) Reset()                         { c.frames = 0 }

type recordingObserver struct{ stats []Stats }

func (r *recordingObserver) OnFrame(_ *dynamo.World, s Stats) { r.stats = append(r.stats, s) }

func TestRun_StopsOnEscape(t *testing.T) {
	surface := &fakeSurface{
		keys:   []Keys{{}, {Up: true}, {}, {Escape: true}},
		dt:     0.016,
		width:  800,
		height: 600,
	}
	metric := &countingMetric{frames: 99}
	obs := &recordingObserver{}
	s := New(WithMetric(metric), WithObserver(obs))
	w := twoBodyWorld(t)

	result, err := s.Run(context.Background(), w, surface)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Frames != 3 {
		t.Errorf("Frames = %d, want 3", result.Frames)
	}
	if surface.presents != 3 || surface.clears != 3 {
		t.Errorf("presents/clears = %d/%d, want 3/3", surface.presents, surface.clears)
	}
	if surface.circles != 6 {
		t.Errorf("circles drawn = %d, want 6", surface.circles)
	}
	if len(surface.texts) != 18 {
		t.Errorf("HUD lines drawn = %d, want 18", len(surface.texts))
	}
	if result.Metrics["frames"] != 3 {
		t.Errorf("metric saw %v frames, want 3 (metrics reset at start)", result.Metrics["frames"])
	}
	if len(obs.stats) != 3 || obs.stats[1].Gravity != 5050 {
		t.Errorf("observer stats = %+v", obs.stats)
	}
	if result.Last.Gravity != 5050 {
		t.Errorf("Last.Gravity = %v, want 5050", result.Last.Gravity)
	}
}

func TestRun_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	surface := &fakeSurface{dt: 0.016, width: 800, height: 600}
	result, err := New().Run(ctx, twoBodyWorld(t), surface)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.Frames != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestRun_InvalidWorld(t *testing.T) {
	w := &dynamo.World{G: 5000}
	_, err := New().Run(context.Background(), w, &fakeSurface{})
	if !errors.Is(err, dynamo.ErrEmptyWorld) {
		t.Errorf("expected ErrEmptyWorld, got %v", err)
	}
}
