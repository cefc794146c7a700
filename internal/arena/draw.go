package arena

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

const TrailDotRadius = 2.0

var (
	WallColor = colorful.Color{R: 0.25, G: 0.25, B: 0.25}
	TextColor = colorful.Color{}
)

type DrawKind int

const (
	DrawRect DrawKind = iota
	DrawCircle
	DrawDot
	DrawText
)

// DrawCmd is one primitive for a rendering collaborator. Pos is the top-left
// corner of a rectangle, the center of a circle or dot, and the origin of a
// text label.
type DrawCmd struct {
	Kind   DrawKind
	Pos    Vec2
	W, H   float64
	Radius float64
	Color  colorful.Color
	Text   string
}

// Labels formats the HUD lines for b: integer speed, integer position and
// restitution to two decimals.
func Labels(b *Body) [3]string {
	return [3]string{
		fmt.Sprintf("Velocity: %d", int(b.Speed())),
		fmt.Sprintf("Position: (%d, %d)", int(b.Pos.X), int(b.Pos.Y)),
		fmt.Sprintf("Elasticity: %.2f", b.Restitution),
	}
}

// Draw returns the frame's draw commands: walls, then per body its trail
// dots and circle, then the primary body's labels.
func (w *World) Draw() []DrawCmd {
	cmds := make([]DrawCmd, 0, len(w.walls)+len(w.bodies)*(TrailLength+1)+3)
	for _, wall := range w.walls {
		ww, wh := wall.Size()
		cmds = append(cmds, DrawCmd{Kind: DrawRect, Pos: wall.Pos, W: ww, H: wh, Color: WallColor})
	}
	for _, b := range w.bodies {
		for _, p := range b.trail.Points() {
			cmds = append(cmds, DrawCmd{Kind: DrawDot, Pos: p, Radius: TrailDotRadius, Color: b.Color})
		}
		cmds = append(cmds, DrawCmd{Kind: DrawCircle, Pos: b.Pos, Radius: b.Radius(), Color: b.Color})
	}
	if first, ok := w.Primary(); ok {
		for i, line := range Labels(first) {
			cmds = append(cmds, DrawCmd{
				Kind:  DrawText,
				Pos:   Vec2{10, 10 + float64(i)*30},
				Color: TextColor,
				Text:  line,
			})
		}
	}
	return cmds
}
