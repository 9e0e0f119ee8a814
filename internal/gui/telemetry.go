package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/sim"
)

var (
	colStrip = rl.NewColor(80, 80, 80, 255)
	colLabel = rl.NewColor(40, 40, 40, 255)
)

// Telemetry keeps a rolling kinetic energy history and draws it as a
// line strip under the HUD.
type Telemetry struct {
	values []float32
	limit  int
}

var _ sim.Observer = (*Telemetry)(nil)

func NewTelemetry(limit int) *Telemetry {
	return &Telemetry{values: make([]float32, 0, limit), limit: limit}
}

func (t *Telemetry) OnFrame(w *dynamo.World, s sim.Stats) {
	if len(t.values) == t.limit {
		copy(t.values, t.values[1:])
		t.values = t.values[:len(t.values)-1]
	}
	t.values = append(t.values, s.KineticEnergy)
}

func (t *Telemetry) Draw(x, y, width, height int32) {
	if len(t.values) < 2 {
		return
	}

	lo, hi := t.values[0], t.values[0]
	for _, v := range t.values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(t.values))
	for i, v := range t.values {
		px := float32(x) + float32(i)/float32(t.limit)*float32(width)
		py := float32(y+height) - (v-lo)/(hi-lo)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, colStrip)
	rl.DrawText(fmt.Sprintf("KE %.2e", t.values[len(t.values)-1]), x+width+10, y+height-10, 14, colLabel)
}
