package arena

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	BaseRadius      = 30.0
	DragRadius      = 40.0
	DefaultFriction = 0.99
	// RestitutionStep is the change applied by one adjustment key press.
	RestitutionStep = 0.05
	// GrabFactor scales the body-to-pointer offset into the grab impulse.
	GrabFactor = 0.1
)

// Body is a circular entity. Its radius follows its drag state.
type Body struct {
	ID          int
	Pos         Vec2
	Vel         Vec2
	Restitution float64
	Friction    float64
	Color       colorful.Color

	state DragState
	trail Trail
}

func NewBody(pos Vec2, restitution float64, color colorful.Color) *Body {
	return &Body{
		Pos:         pos,
		Restitution: clamp01(restitution),
		Friction:    DefaultFriction,
		Color:       color,
	}
}

func (b *Body) Radius() float64 {
	if b.state == Dragging {
		return DragRadius
	}
	return BaseRadius
}

func (b *Body) State() DragState { return b.state }

func (b *Body) Dragging() bool { return b.state == Dragging }

func (b *Body) Trail() []Vec2 { return b.trail.Points() }

func (b *Body) TrailLen() int { return b.trail.Len() }

func (b *Body) Speed() float64 { return b.Vel.Len() }

// Integrate advances the body by one frame. A dragged body follows the
// pointer and keeps its stored velocity untouched.
func (b *Body) Integrate(pointer Vec2) {
	if b.state == Dragging {
		b.Pos = pointer
		return
	}
	b.Vel = b.Vel.Scale(b.Friction)
	b.Pos = b.Pos.Add(b.Vel)
	b.trail.Push(b.Pos)
}

func (b *Body) recolor(rng RandSource) {
	b.Color = RandomColor(rng)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
