package arena

// DragState is the manual-interaction state of a body.
type DragState int

const (
	Free DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "free"
}

// Hit reports whether a pointer at p lies within the body's current radius.
func (b *Body) Hit(p Vec2) bool {
	return b.Pos.Dist(p) <= b.Radius()
}

// Grab moves a free body into the dragging state and caches the grab
// impulse, which only takes effect after release. It returns false when the
// body was already dragging.
func (b *Body) Grab(pointer Vec2) bool {
	if b.state == Dragging {
		return false
	}
	b.Vel = b.Pos.Sub(pointer).Scale(GrabFactor)
	b.state = Dragging
	return true
}

// Release returns the body to free motion with whatever velocity it holds.
func (b *Body) Release() {
	b.state = Free
}

// AdjustRestitution shifts restitution by delta, clamped into [0, 1].
func (b *Body) AdjustRestitution(delta float64) {
	b.Restitution = clamp01(b.Restitution + delta)
}
