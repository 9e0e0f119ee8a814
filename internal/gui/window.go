package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/sim"
)

var keyCodes = map[sim.Key]int32{
	sim.KeyUp:     rl.KeyUp,
	sim.KeyDown:   rl.KeyDown,
	sim.KeyEscape: rl.KeyEscape,
}

// Window is a raylib backed sim.Surface. The window must already be open.
type Window struct {
	font      rl.Font
	telemetry *Telemetry
}

var _ sim.Surface = (*Window)(nil)

func NewWindow(t *Telemetry) *Window {
	return &Window{font: rl.GetFontDefault(), telemetry: t}
}

// IsKeyDown reports held keys. Closing the window counts as escape.
func (w *Window) IsKeyDown(k sim.Key) bool {
	if k == sim.KeyEscape && rl.WindowShouldClose() {
		return true
	}
	code, ok := keyCodes[k]
	return ok && rl.IsKeyDown(code)
}

func (w *Window) FrameTime() float32 { return rl.GetFrameTime() }

func (w *Window) Viewport() (float32, float32) {
	return float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
}

func (w *Window) Clear(c dynamo.Color) {
	rl.BeginDrawing()
	rl.ClearBackground(toColor(c))
}

func (w *Window) DrawCircle(x, y, r float32, c dynamo.Color) {
	rl.DrawCircleV(rl.NewVector2(x, y), r, toColor(c))
}

func (w *Window) DrawText(text string, x, y, size float32, c dynamo.Color) {
	rl.DrawTextEx(w.font, text, rl.NewVector2(x, y), size, size/10, toColor(c))
}

func (w *Window) Present() {
	if w.telemetry != nil {
		_, h := w.Viewport()
		w.telemetry.Draw(10, int32(h)-80, 300, 60)
	}
	rl.EndDrawing()
}

func toColor(c dynamo.Color) rl.Color {
	return rl.ColorFromNormalized(rl.NewVector4(c.R, c.G, c.B, c.A))
}
