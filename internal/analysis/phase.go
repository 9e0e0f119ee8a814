package analysis

import (
	"strings"

	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/sim"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// PhasePortrait2D is the trajectory of one body in (position, velocity)
// along a single axis.
type PhasePortrait2D struct {
	Body   int
	Axis   Axis
	Points []struct{ X, Y float64 }
}

// GeneratePhasePortrait runs a copy of w for frames steps and records the
// chosen body's position and velocity along axis after every frame. It
// returns nil for an out of range body or a negative frame count.
func GeneratePhasePortrait(
	w *dynamo.World,
	integ dynamo.Integrator,
	body int,
	axis Axis,
	frames int,
	dt, width, height float32,
) *PhasePortrait2D {
	if body < 0 || body >= w.Len() || frames < 0 {
		return nil
	}

	portrait := &PhasePortrait2D{
		Body:   body,
		Axis:   axis,
		Points: make([]struct{ X, Y float64 }, 0, frames),
	}

	world := w.Clone()
	simulator := sim.New(sim.WithIntegrator(integ))
	frame := sim.Frame{Dt: dt, Width: width, Height: height}

	for i := 0; i < frames; i++ {
		simulator.Advance(world, frame)

		b := world.Bodies[body]
		p, v := b.Position.X, b.Velocity.X
		if axis == AxisY {
			p, v = b.Position.Y, b.Velocity.Y
		}
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{
			X: float64(p),
			Y: float64(v),
		})
	}

	return portrait
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

// span returns the bounding box of the points with 10% padding per side.
func (p *PhasePortrait2D) span() bounds {
	b := bounds{p.Points[0].X, p.Points[0].X, p.Points[0].Y, p.Points[0].Y}
	for _, pt := range p.Points {
		b.minX = min(b.minX, pt.X)
		b.maxX = max(b.maxX, pt.X)
		b.minY = min(b.minY, pt.Y)
		b.maxY = max(b.maxY, pt.Y)
	}

	padX := (b.maxX - b.minX) * 0.1
	padY := (b.maxY - b.minY) * 0.1
	if padX == 0 {
		padX = 0.5
	}
	if padY == 0 {
		padY = 0.5
	}
	return bounds{b.minX - padX, b.maxX + padX, b.minY - padY, b.maxY + padY}
}

// ASCII plots the portrait into a width x height grid of runes, position
// on the horizontal axis and velocity on the vertical. The zero-velocity
// line is drawn when it is in range.
func (p *PhasePortrait2D) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	b := p.span()
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	rowOf := func(y float64) int { return height - 1 - int((y-b.minY)/rangeY*float64(height-1)) }
	colOf := func(x float64) int { return int((x - b.minX) / rangeX * float64(width-1)) }

	if b.minY <= 0 && b.maxY >= 0 {
		row := rowOf(0)
		for col := range grid[row] {
			grid[row][col] = '─'
		}
	}

	for _, pt := range p.Points {
		row, col := rowOf(pt.Y), colOf(pt.X)
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
