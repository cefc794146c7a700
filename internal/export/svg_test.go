package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/ballsim/internal/arena"
	"github.com/san-kum/ballsim/internal/sim"
)

func TestFrameToSVG(t *testing.T) {
	red := colorful.Color{R: 1}
	cmds := []arena.DrawCmd{
		{Kind: arena.DrawRect, Pos: arena.Vec2{X: 150, Y: 420}, W: 250, H: 10, Color: arena.WallColor},
		{Kind: arena.DrawDot, Pos: arena.Vec2{X: 390, Y: 300}, Radius: 2, Color: red},
		{Kind: arena.DrawCircle, Pos: arena.Vec2{X: 400, Y: 300}, Radius: 30, Color: red},
		{Kind: arena.DrawText, Pos: arena.Vec2{X: 10, Y: 10}, Text: "Position: (400, 300) <x>"},
	}

	svg := FrameToSVG(cmds, 800, 600)

	if !strings.Contains(svg, `width="800" height="600"`) {
		t.Error("missing canvas size")
	}
	if !strings.Contains(svg, `<rect x="150.0" y="420.0" width="250.0" height="10.0"`) {
		t.Error("missing wall rectangle")
	}
	if !strings.Contains(svg, `<circle cx="400.0" cy="300.0" r="30.0" fill="#ff0000"/>`) {
		t.Error("missing body circle")
	}
	if !strings.Contains(svg, "&lt;x&gt;") {
		t.Error("label text not escaped")
	}
	dot := strings.Index(svg, `r="2.0"`)
	body := strings.Index(svg, `r="30.0"`)
	if dot < 0 || body < dot {
		t.Error("trail dots must precede the body circle")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	samples := []sim.Sample{
		{Tick: 1, X: 100, Y: 100},
		{Tick: 2, X: 110, Y: 105},
		{Tick: 3, X: 120, Y: 110},
	}

	svg := TrajectoryToSVG(samples, 800, 600, colorful.Color{G: 1})

	if !strings.Contains(svg, `d="M100.0,100.0 L110.0,105.0 L120.0,110.0"`) {
		t.Errorf("unexpected path in %s", svg)
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("missing stroke color")
	}

	empty := TrajectoryToSVG(samples[:1], 800, 600, colorful.Color{G: 1})
	if strings.Contains(empty, "<path") {
		t.Error("single sample should not produce a path")
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, "<svg/>"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<svg/>" {
		t.Errorf("got %q", buf.String())
	}
}
