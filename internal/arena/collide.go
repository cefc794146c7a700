package arena

// ResolveBoundaries applies every interior wall in order, then the four
// screen edges. All walls are tested; when several match, later corrections
// override earlier ones. Each correction recolors the body. It returns the
// number of corrections applied.
func ResolveBoundaries(b *Body, walls []Boundary, width, height float64, rng RandSource) int {
	hits := 0
	for _, w := range walls {
		if deflect(b, w) {
			b.recolor(rng)
			hits++
		}
	}
	edges := clampEdges(b, width, height)
	for i := 0; i < edges; i++ {
		b.recolor(rng)
	}
	return hits + edges
}

func deflect(b *Body, w Boundary) bool {
	r := b.Radius()
	if !w.Touches(b.Pos, r) {
		return false
	}
	if w.Orientation == Horizontal {
		b.Vel.Y *= -b.Restitution
		b.Pos.Y = flushSide(b.Vel.Y, b.Pos.Y, w.Pos.Y, r)
	} else {
		b.Vel.X *= -b.Restitution
		b.Pos.X = flushSide(b.Vel.X, b.Pos.X, w.Pos.X, r)
	}
	return true
}

// flushSide places the body against the wall on the side its reflected
// velocity points to. A zero velocity keeps the body on its current side.
func flushSide(vel, pos, start, r float64) float64 {
	before := vel < 0
	if vel == 0 {
		before = pos < start+WallThickness/2
	}
	if before {
		return start - r
	}
	return start + WallThickness + r
}

// clampEdges keeps the body inside the screen. At most one x and one y
// correction apply per call.
func clampEdges(b *Body, width, height float64) int {
	r := b.Radius()
	hits := 0
	switch {
	case b.Pos.X < r:
		b.Pos.X = r
		b.Vel.X *= -b.Restitution
		hits++
	case b.Pos.X > width-r:
		b.Pos.X = width - r
		b.Vel.X *= -b.Restitution
		hits++
	}
	switch {
	case b.Pos.Y < r:
		b.Pos.Y = r
		b.Vel.Y *= -b.Restitution
		hits++
	case b.Pos.Y > height-r:
		b.Pos.Y = height - r
		b.Vel.Y *= -b.Restitution
		hits++
	}
	return hits
}

// Overlap returns half the penetration depth of two bodies and the center
// distance used for the correction. Coincident centers report a distance of
// 1. ok is false when the bodies do not touch.
func Overlap(self, other *Body) (overlap, dist float64, ok bool) {
	dist = self.Pos.Dist(other.Pos)
	sum := self.Radius() + other.Radius()
	if dist > sum {
		return 0, dist, false
	}
	if dist == 0 {
		dist = 1
	}
	return 0.5 * (sum - dist), dist, true
}

// SwapThenDamp resolves a touching pair from self's point of view:
//
//  1. self takes other's velocity
//  2. other, then self, is pushed apart along the center line
//  3. both velocities are scaled by minus their own restitution
//  4. both bodies recolor
//
// Step 2 reads positions after other has already moved, so the two
// displacements differ. It reports whether the pair touched.
func SwapThenDamp(self, other *Body, rng RandSource) bool {
	overlap, dist, ok := Overlap(self, other)
	if !ok {
		return false
	}

	self.Vel = other.Vel

	other.Pos.X -= overlap * (self.Pos.X - other.Pos.X) / dist
	other.Pos.Y -= overlap * (self.Pos.Y - other.Pos.Y) / dist
	self.Pos.X += overlap * (self.Pos.X - other.Pos.X) / dist
	self.Pos.Y += overlap * (self.Pos.Y - other.Pos.Y) / dist

	self.Vel = self.Vel.Scale(-self.Restitution)
	other.Vel = other.Vel.Scale(-other.Restitution)

	self.recolor(rng)
	other.recolor(rng)
	return true
}
