package dynamo

import "fmt"

// Color is an RGBA tuple with components in [0,1].
type Color struct {
	R, G, B, A float32
}

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

// Body is a circular particle. Its radius is derived from mass and
// cannot be set independently.
type Body struct {
	Position Vec2
	Velocity Vec2
	Mass     float32
	Color    Color
}

// NewBody returns a body after checking that mass is positive and finite.
func NewBody(pos, vel Vec2, mass float32, color Color) (Body, error) {
	if !(mass > 0) || !IsFinite(mass) {
		return Body{}, fmt.Errorf("%w: mass %v", ErrParameterBounds, mass)
	}
	return Body{Position: pos, Velocity: vel, Mass: mass, Color: color}, nil
}

func (b *Body) Radius() float32 { return b.Mass / 2 }

func (b *Body) Speed() float32 { return b.Velocity.Len() }

func (b *Body) KineticEnergy() float32 {
	return 0.5 * b.Mass * b.Velocity.LenSq()
}

// World is the complete simulation state carried across frames.
type World struct {
	Bodies []Body
	// G is the gravitational constant; never negative.
	G float32
}

func NewWorld(bodies []Body, g float32) (*World, error) {
	if len(bodies) == 0 {
		return nil, ErrEmptyWorld
	}
	if g < 0 || !IsFinite(g) {
		return nil, fmt.Errorf("%w: gravitational constant %v", ErrParameterBounds, g)
	}
	return &World{Bodies: bodies, G: g}, nil
}

func (w *World) Len() int { return len(w.Bodies) }

func (w *World) Clone() *World {
	bodies := make([]Body, len(w.Bodies))
	copy(bodies, w.Bodies)
	return &World{Bodies: bodies, G: w.G}
}

// Validate reports the first body whose position or velocity is not finite.
func (w *World) Validate() error {
	if len(w.Bodies) == 0 {
		return ErrEmptyWorld
	}
	for i := range w.Bodies {
		b := &w.Bodies[i]
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
			return fmt.Errorf("body %d: %w", i, ErrInvalidState)
		}
	}
	return nil
}

// Integrator advances every body by dt from forces computed on a
// consistent snapshot. forces[i] belongs to bodies[i].
type Integrator interface {
	Name() string
	Step(bodies []Body, forces []Vec2, dt float32)
}

type Metric interface {
	Name() string
	Observe(w *World, dt float32)
	Value() float64
	Reset()
}
