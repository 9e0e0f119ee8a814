package sim

import (
	"fmt"

	"github.com/x509cert/gravsim/internal/dynamo"
)

type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEscape:
		return "escape"
	}
	return "unknown"
}

// Input is polled once per frame. A held key reports true on every frame.
type Input interface {
	IsKeyDown(k Key) bool
}

// Keys is a fixed key snapshot.
type Keys struct {
	Up, Down, Escape bool
}

func (k Keys) IsKeyDown(key Key) bool {
	switch key {
	case KeyUp:
		return k.Up
	case KeyDown:
		return k.Down
	case KeyEscape:
		return k.Escape
	}
	return false
}

func ParseKey(name string) (Key, error) {
	for _, k := range []Key{KeyUp, KeyDown, KeyEscape} {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown key: %s", name)
}

// Press returns a copy of k with key held.
func (k Keys) Press(key Key) Keys {
	switch key {
	case KeyUp:
		k.Up = true
	case KeyDown:
		k.Down = true
	case KeyEscape:
		k.Escape = true
	}
	return k
}

// Frame is everything the frontend supplies for one tick.
type Frame struct {
	Dt            float32
	Width, Height float32
	Input         Input
}

// Stats are derived from the world after a frame has been applied.
type Stats struct {
	AverageSpeed  float32
	KineticEnergy float32
	Bodies        int
	Gravity       float32
	FPS           float32
	FrameTimeMs   float32
	Bounces       int
}

// Surface is the rendering, input and timing collaborator driven by Run.
type Surface interface {
	Input
	FrameTime() float32
	Viewport() (width, height float32)
	Clear(c dynamo.Color)
	DrawCircle(x, y, radius float32, c dynamo.Color)
	DrawText(text string, x, y, size float32, c dynamo.Color)
	// Present blocks until the next frame is ready.
	Present()
}

type Observer interface {
	OnFrame(w *dynamo.World, s Stats)
}

type Result struct {
	Frames  int
	Last    Stats
	Metrics map[string]float64
}
