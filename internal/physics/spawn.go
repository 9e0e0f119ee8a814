package physics

import (
	"fmt"

	"github.com/x509cert/gravsim/internal/dynamo"
)

// Rand is the random source used to build a population.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float32() float32
}

type SpawnConfig struct {
	Count    int
	MassMin  float32
	MassMax  float32
	Spread   float32 // fraction of the half-viewport around the center
	MaxSpeed float32 // per-axis initial speed bound
}

func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		Count:    74,
		MassMin:  8,
		MassMax:  75,
		Spread:   0.1,
		MaxSpeed: 0.1,
	}
}

func (c SpawnConfig) Validate() error {
	if c.Count < 1 {
		return fmt.Errorf("%w: body count %d", dynamo.ErrParameterBounds, c.Count)
	}
	if !(c.MassMin > 0) || !(c.MassMax > c.MassMin) || !dynamo.IsFinite(c.MassMax) {
		return fmt.Errorf("%w: mass range [%v, %v)", dynamo.ErrParameterBounds, c.MassMin, c.MassMax)
	}
	if !(c.Spread >= 0 && c.Spread <= 1) {
		return fmt.Errorf("%w: spread %v", dynamo.ErrParameterBounds, c.Spread)
	}
	if !(c.MaxSpeed >= 0) || !dynamo.IsFinite(c.MaxSpeed) {
		return fmt.Errorf("%w: max speed %v", dynamo.ErrParameterBounds, c.MaxSpeed)
	}
	return nil
}

// Spawn builds cfg.Count bodies clustered around the center of a
// width x height viewport. Draw order per body is position, velocity,
// mass, color, so a fixed seed reproduces the same population.
func Spawn(rng Rand, cfg SpawnConfig, width, height float32) ([]dynamo.Body, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cx, cy := width/2, height/2
	bodies := make([]dynamo.Body, 0, cfg.Count)

	for i := 0; i < cfg.Count; i++ {
		x := uniform(rng, cx-cx*cfg.Spread, cx+cx*cfg.Spread)
		y := uniform(rng, cy-cy*cfg.Spread, cy+cy*cfg.Spread)
		vx := uniform(rng, -cfg.MaxSpeed, cfg.MaxSpeed)
		vy := uniform(rng, -cfg.MaxSpeed, cfg.MaxSpeed)
		m := uniform(rng, cfg.MassMin, cfg.MassMax)

		b, err := dynamo.NewBody(dynamo.Vec2{X: x, Y: y}, dynamo.Vec2{X: vx, Y: vy}, m, RandomColor(rng))
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}

	return bodies, nil
}

func RandomColor(rng Rand) dynamo.Color {
	return dynamo.Color{R: rng.Float32(), G: rng.Float32(), B: rng.Float32(), A: rng.Float32()}
}

// uniform draws from [lo, hi).
func uniform(rng Rand, lo, hi float32) float32 {
	v := lo + rng.Float32()*(hi-lo)
	if v >= hi {
		// float32 rounding can land exactly on hi
		return lo
	}
	return v
}
