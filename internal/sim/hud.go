package sim

import (
	"fmt"

	"github.com/x509cert/gravsim/internal/dynamo"
)

const (
	hudX        = 10
	hudTop      = 20
	hudSpacing  = 30
	hudFontSize = 30
)

// HUDLines formats the statistics overlay, one entry per line.
func HUDLines(s Stats) []string {
	return []string{
		fmt.Sprintf("FPS: %.0f", s.FPS),
		fmt.Sprintf("Gravity: %.0f", s.Gravity),
		fmt.Sprintf("Circles: %d", s.Bodies),
		fmt.Sprintf("Avg Speed: %.2f", s.AverageSpeed),
		fmt.Sprintf("Total Energy: %.2f", s.KineticEnergy),
		fmt.Sprintf("Frame Time: %.2f ms", s.FrameTimeMs),
	}
}

// Render clears the surface, draws every body and overlays the HUD.
func Render(surface Surface, w *dynamo.World, s Stats) {
	surface.Clear(dynamo.White)

	for i := range w.Bodies {
		b := &w.Bodies[i]
		surface.DrawCircle(b.Position.X, b.Position.Y, b.Radius(), b.Color)
	}

	for i, line := range HUDLines(s) {
		surface.DrawText(line, hudX, float32(hudTop+i*hudSpacing), hudFontSize, dynamo.Black)
	}
}
