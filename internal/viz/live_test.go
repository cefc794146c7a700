package viz

import (
	"math"
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ballsim/internal/arena"
	"github.com/san-kum/ballsim/internal/config"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	build := func() (*arena.World, error) { return cfg.BuildWorld(rand.New(rand.NewSource(1))) }
	w, err := build()
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(w, Options{Rebuild: build})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func tick(t *testing.T, m Model) (Model, tea.Cmd) {
	return update(t, m, TickMsg(time.Now()))
}

func TestToArena(t *testing.T) {
	m := newTestModel(t)

	// 80x24 cells over 800x600: 5 units per dot across, 6.25 down.
	p, ok := m.toArena(canvasOffsetX+40, canvasOffsetY+12)
	if !ok {
		t.Fatal("center cell reported outside canvas")
	}
	if math.Abs(p.X-405) > 1e-9 || math.Abs(p.Y-312.5) > 1e-9 {
		t.Errorf("toArena = %+v", p)
	}

	if _, ok := m.toArena(0, 0); ok {
		t.Error("padding cell should be outside canvas")
	}
	if _, ok := m.toArena(canvasOffsetX+80, canvasOffsetY); ok {
		t.Error("cell past right edge should be outside canvas")
	}
}

func TestMousePressGrabsBody(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.MouseMsg{X: canvasOffsetX + 40, Y: canvasOffsetY + 12, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = tick(t, m)

	b, _ := m.World().Primary()
	if !b.Dragging() {
		t.Fatal("press on the ball should grab it")
	}
	if b.Pos.X != 405 || b.Pos.Y != 312.5 {
		t.Errorf("held ball should follow the pointer, at %+v", b.Pos)
	}
	if math.Abs(b.Vel.X+0.5) > 1e-9 || math.Abs(b.Vel.Y+1.25) > 1e-9 {
		t.Errorf("grab impulse = %+v", b.Vel)
	}

	m, _ = update(t, m, tea.MouseMsg{X: canvasOffsetX + 40, Y: canvasOffsetY + 12, Action: tea.MouseActionRelease})
	m, _ = tick(t, m)
	if b.Dragging() {
		t.Error("release should free the ball")
	}
}

func TestMousePressSpawns(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.MouseMsg{X: canvasOffsetX + 5, Y: canvasOffsetY + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = tick(t, m)

	if m.World().Len() != 2 {
		t.Errorf("expected a spawned ball, have %d", m.World().Len())
	}
}

func TestKeysAdjustRestitution(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = tick(t, m)

	b, _ := m.World().Primary()
	if math.Abs(b.Restitution-0.95) > 1e-9 {
		t.Errorf("restitution = %v, want 0.95", b.Restitution)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = tick(t, m)
	if math.Abs(b.Restitution-0.85) > 1e-9 {
		t.Errorf("restitution = %v, want 0.85", b.Restitution)
	}
}

func TestQuitCompletesTick(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m, cmd := tick(t, m)

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.World().Tick() != 1 {
		t.Errorf("quit tick should still step the world, tick=%d", m.World().Tick())
	}
}

func TestPauseAndReset(t *testing.T) {
	m := newTestModel(t)
	m, _ = tick(t, m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = tick(t, m)
	if m.World().Tick() != 1 {
		t.Errorf("paused view should not step, tick=%d", m.World().Tick())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.World().Tick() != 0 {
		t.Errorf("reset should rebuild the scene, tick=%d", m.World().Tick())
	}
	if m.View() == "" {
		t.Error("empty view")
	}
}

func TestReleaseOutsideCanvasFreesBody(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.MouseMsg{X: canvasOffsetX + 40, Y: canvasOffsetY + 12, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = tick(t, m)

	b, _ := m.World().Primary()
	if !b.Dragging() {
		t.Fatal("press on the ball should grab it")
	}
	held := m.pointer

	// Column 100 lies in the stats panel, right of the 80 cell canvas.
	m, _ = update(t, m, tea.MouseMsg{X: canvasOffsetX + 100, Y: canvasOffsetY + 12, Action: tea.MouseActionRelease})
	if m.pointer != held {
		t.Errorf("pointer moved to %+v outside the canvas", m.pointer)
	}
	m, _ = tick(t, m)
	m, _ = tick(t, m)

	if b.Dragging() {
		t.Fatal("ball still held after release over the side panel")
	}
	if b.Radius() != arena.BaseRadius {
		t.Errorf("radius = %v, want %v", b.Radius(), arena.BaseRadius)
	}
}

func TestPressOutsideCanvasIgnored(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.MouseMsg{X: canvasOffsetX + 100, Y: canvasOffsetY + 12, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = tick(t, m)
	if m.World().Len() != 1 {
		t.Errorf("press outside the canvas spawned a ball, have %d", m.World().Len())
	}
}

func TestDrawnBallWithinHitRadius(t *testing.T) {
	m := newTestModel(t)
	m.draw()

	// The ball sits at (400, 300): dot (80, 48) with 5 x 6.25 units per dot.
	b, _ := m.World().Primary()
	sx, sy := m.scale()
	cx, cy := int(b.Pos.X/sx), int(b.Pos.Y/sy)
	rx, ry := int(b.Radius()/sx), int(b.Radius()/sy)
	if rx != 6 || ry != 4 {
		t.Fatalf("radii in dots = %d, %d", rx, ry)
	}

	if !m.canvas.Lit(cx+rx, cy) || !m.canvas.Lit(cx, cy-ry) || !m.canvas.Lit(cx, cy+ry) {
		t.Error("outline missing an axis point")
	}
	if m.canvas.Lit(cx, cy-ry-1) || m.canvas.Lit(cx, cy+ry+1) || m.canvas.Lit(cx+rx+1, cy) {
		t.Error("outline drawn past the hit radius")
	}
	if float64(ry)*sy > b.Radius() || float64(rx)*sx > b.Radius() {
		t.Errorf("drawn radii %v, %v exceed %v", float64(rx)*sx, float64(ry)*sy, b.Radius())
	}
}
