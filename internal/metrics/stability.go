package metrics

import "github.com/san-kum/ballsim/internal/arena"

// Containment is the fraction of ticks that ended with every body inside the
// screen. Pairwise separation runs after the edge clamp, so crowded corners
// can briefly push a body out.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(w *arena.World, rep arena.Report) {
	c.samples++
	width, height := w.Size()
	for _, b := range w.Bodies() {
		r := b.Radius()
		if b.Pos.X < r || b.Pos.X > width-r || b.Pos.Y < r || b.Pos.Y > height-r {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
