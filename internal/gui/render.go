package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/ballsim/internal/arena"
)

var (
	ColBg      = rl.White
	ColText    = rl.NewColor(60, 60, 60, 255)
	ColTextDim = rl.NewColor(150, 150, 150, 255)
	ColGraph   = rl.NewColor(0, 120, 200, 255)
)

const labelSize = 20

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	for _, c := range a.World.Draw() {
		drawCmd(c)
	}
	if a.ShowHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

// drawCmd renders one primitive of the arena's draw list.
func drawCmd(c arena.DrawCmd) {
	col := toRL(c.Color)
	switch c.Kind {
	case arena.DrawRect:
		rl.DrawRectangle(int32(c.Pos.X), int32(c.Pos.Y), int32(c.W), int32(c.H), col)
	case arena.DrawCircle, arena.DrawDot:
		rl.DrawCircle(int32(c.Pos.X), int32(c.Pos.Y), float32(c.Radius), col)
	case arena.DrawText:
		rl.DrawText(c.Text, int32(c.Pos.X), int32(c.Pos.Y), labelSize, col)
	}
}

func toRL(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

func (a *App) DrawHUD() {
	width, height := a.World.Size()
	w, h := int32(width), int32(height)

	status := "RUNNING"
	if !a.Running {
		status = "PAUSED"
	}
	rl.DrawText(status, w-110, 10, 16, ColText)
	rl.DrawText(fmt.Sprintf("%d FPS  %d balls", rl.GetFPS(), a.World.Len()), 10, h-24, 14, ColTextDim)
	rl.DrawText("[UP/DOWN] ELASTICITY  [SPACE] PAUSE  [R] RESET  [H] HUD  [Q] QUIT", 180, h-24, 14, ColTextDim)

	a.DrawTelemetry(w-230, h-90, 200, 50)
}

// DrawTelemetry plots recent kinetic energy as a line strip in the given
// rectangle.
func (a *App) DrawTelemetry(x, y, width, height int32) {
	if len(a.Telemetry) < 2 {
		return
	}

	lo, hi := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		lo, hi = min(lo, v), max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, v := range a.Telemetry {
		px := float32(x) + float32(i)/float32(len(a.Telemetry))*float32(width)
		py := float32(y+height) - float32((v-lo)/(hi-lo))*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColGraph)
	rl.DrawText(fmt.Sprintf("KE %.1f", a.Telemetry[len(a.Telemetry)-1]), x, y-18, 14, ColText)
}
