package physics

import "github.com/x509cert/gravsim/internal/dynamo"

// Bounds is the viewport a body's disc must stay inside.
type Bounds struct {
	Width, Height float32
}

// Resolve clamps b back inside the bounds and reflects the velocity
// component of every edge it crossed. Edges are checked x-low, x-high,
// y-low, y-high; when a body overlaps both edges of an axis the later
// check wins. It returns the number of edges hit.
func (bd Bounds) Resolve(b *dynamo.Body) int {
	r := b.Radius()
	hits := 0

	if b.Position.X-r < 0 {
		b.Position.X = r
		b.Velocity.X = -b.Velocity.X
		hits++
	}
	if b.Position.X+r > bd.Width {
		b.Position.X = bd.Width - r
		b.Velocity.X = -b.Velocity.X
		hits++
	}
	if b.Position.Y-r < 0 {
		b.Position.Y = r
		b.Velocity.Y = -b.Velocity.Y
		hits++
	}
	if b.Position.Y+r > bd.Height {
		b.Position.Y = bd.Height - r
		b.Velocity.Y = -b.Velocity.Y
		hits++
	}

	return hits
}

func (bd Bounds) ResolveAll(bodies []dynamo.Body) int {
	hits := 0
	for i := range bodies {
		hits += bd.Resolve(&bodies[i])
	}
	return hits
}

// Contains reports whether the whole disc of b lies inside the bounds.
func (bd Bounds) Contains(b *dynamo.Body) bool {
	r := b.Radius()
	return b.Position.X >= r && b.Position.X <= bd.Width-r &&
		b.Position.Y >= r && b.Position.Y <= bd.Height-r
}
