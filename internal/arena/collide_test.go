package arena

import (
	"math"
	"math/rand"
	"testing"
)

func TestResolveBoundaries_LeftEdgeBounce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBody(Vec2{10, 300}, 0.9, red)
	b.Vel = Vec2{-5, 0}

	b.Integrate(Vec2{})
	if math.Abs(b.Pos.X-5.05) > 1e-9 {
		t.Fatalf("integrated x = %v, want 5.05", b.Pos.X)
	}

	hits := ResolveBoundaries(b, nil, 800, 600, rng)

	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
	if b.Pos.X != 30 {
		t.Errorf("x = %v, want 30", b.Pos.X)
	}
	if math.Abs(b.Vel.X-4.455) > 1e-9 {
		t.Errorf("vx = %v, want 4.455", b.Vel.X)
	}
	if b.Color == red {
		t.Error("expected recolor on bounce")
	}
}

func TestResolveBoundaries_CornerAppliesBothAxes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBody(Vec2{795, 598}, 0.5, red)
	b.Vel = Vec2{4, 2}

	hits := ResolveBoundaries(b, nil, 800, 600, rng)

	if hits != 2 {
		t.Errorf("hits = %d, want 2", hits)
	}
	if b.Pos != (Vec2{770, 570}) {
		t.Errorf("pos = %v, want (770, 570)", b.Pos)
	}
	if b.Vel != (Vec2{-2, -1}) {
		t.Errorf("vel = %v, want (-2, -1)", b.Vel)
	}
}

func TestResolveBoundaries_Containment(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	walls := []Boundary{
		NewBoundary(100, 200, 300, Horizontal),
		NewBoundary(500, 50, 400, Vertical),
		NewBoundary(0, 580, 800, Horizontal),
	}
	const w, h = 800.0, 600.0

	for i := 0; i < 5000; i++ {
		b := NewBody(Vec2{rng.Float64()*1000 - 100, rng.Float64()*800 - 100}, rng.Float64(), red)
		b.Vel = Vec2{rng.Float64()*40 - 20, rng.Float64()*40 - 20}
		if rng.Intn(4) == 0 {
			b.Grab(b.Pos)
		}

		ResolveBoundaries(b, walls, w, h, rng)

		r := b.Radius()
		if b.Pos.X < r || b.Pos.X > w-r || b.Pos.Y < r || b.Pos.Y > h-r {
			t.Fatalf("trial %d: body at %v escaped the screen (r=%v)", i, b.Pos, r)
		}
	}
}

func TestResolveBoundaries_HorizontalWallSides(t *testing.T) {
	wall := NewBoundary(100, 300, 200, Horizontal)

	tests := []struct {
		name  string
		pos   Vec2
		vel   Vec2
		wantY float64
		wantV float64
		hits  int
	}{
		{"from above", Vec2{200, 275}, Vec2{0, 3}, 270, -3, 1},
		{"from below", Vec2{200, 335}, Vec2{0, -3}, 340, 3, 1},
		{"outside span", Vec2{50, 295}, Vec2{0, 3}, 295, 3, 0},
		{"too far", Vec2{200, 260}, Vec2{0, 3}, 260, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			b := NewBody(tt.pos, 1, red)
			b.Vel = tt.vel
			hits := ResolveBoundaries(b, []Boundary{wall}, 800, 600, rng)
			if hits != tt.hits {
				t.Errorf("hits = %d, want %d", hits, tt.hits)
			}
			if b.Pos.Y != tt.wantY || b.Vel.Y != tt.wantV {
				t.Errorf("y=%v vy=%v, want y=%v vy=%v", b.Pos.Y, b.Vel.Y, tt.wantY, tt.wantV)
			}
		})
	}
}

func TestResolveBoundaries_VerticalWall(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	wall := NewBoundary(400, 100, 300, Vertical)
	b := NewBody(Vec2{380, 200}, 0.5, red)
	b.Vel = Vec2{4, 0}

	ResolveBoundaries(b, []Boundary{wall}, 800, 600, rng)

	if b.Pos.X != 370 || b.Vel.X != -2 {
		t.Errorf("x=%v vx=%v, want x=370 vx=-2", b.Pos.X, b.Vel.X)
	}
}

func TestResolveBoundaries_NoEarlyExit(t *testing.T) {
	lower := NewBoundary(100, 300, 200, Horizontal)
	upper := NewBoundary(100, 260, 200, Horizontal)

	t.Run("lower then upper", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		b := NewBody(Vec2{200, 285}, 1, red)
		b.Vel = Vec2{0, 1}
		hits := ResolveBoundaries(b, []Boundary{lower, upper}, 800, 600, rng)
		if hits != 2 {
			t.Errorf("hits = %d, want 2", hits)
		}
		if b.Pos.Y != 300 || b.Vel.Y != 1 {
			t.Errorf("y=%v vy=%v, want the later wall to win (y=300, vy=1)", b.Pos.Y, b.Vel.Y)
		}
	})

	t.Run("upper then lower", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		b := NewBody(Vec2{200, 285}, 1, red)
		b.Vel = Vec2{0, 1}
		hits := ResolveBoundaries(b, []Boundary{upper, lower}, 800, 600, rng)
		if hits != 1 {
			t.Errorf("hits = %d, want 1", hits)
		}
		if b.Pos.Y != 230 || b.Vel.Y != -1 {
			t.Errorf("y=%v vy=%v, want y=230 vy=-1", b.Pos.Y, b.Vel.Y)
		}
	})
}

func TestOverlap(t *testing.T) {
	a := NewBody(Vec2{100, 100}, 0.9, red)
	b := NewBody(Vec2{150, 100}, 0.9, red)

	overlap, dist, ok := Overlap(a, b)
	if !ok {
		t.Fatal("expected contact")
	}
	if overlap != 5 || dist != 50 {
		t.Errorf("overlap=%v dist=%v, want 5 and 50", overlap, dist)
	}

	far := NewBody(Vec2{161, 100}, 0.9, red)
	if _, _, ok := Overlap(a, far); ok {
		t.Error("bodies 61 apart should not touch")
	}

	edge := NewBody(Vec2{160, 100}, 0.9, red)
	if _, _, ok := Overlap(a, edge); !ok {
		t.Error("bodies exactly r1+r2 apart should touch")
	}
}

func TestSwapThenDamp(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	self := NewBody(Vec2{100, 100}, 0.5, red)
	self.Vel = Vec2{1, 0}
	other := NewBody(Vec2{150, 100}, 0.8, red)
	other.Vel = Vec2{-2, 1}

	if !SwapThenDamp(self, other, rng) {
		t.Fatal("expected collision")
	}

	if other.Pos != (Vec2{155, 100}) {
		t.Errorf("other moved to %v, want (155, 100)", other.Pos)
	}
	if math.Abs(self.Pos.X-94.5) > 1e-12 || self.Pos.Y != 100 {
		t.Errorf("self moved to %v, want (94.5, 100)", self.Pos)
	}
	if self.Vel != (Vec2{1, -0.5}) {
		t.Errorf("self vel = %v, want other's velocity damped to (1, -0.5)", self.Vel)
	}
	if math.Abs(other.Vel.X-1.6) > 1e-12 || math.Abs(other.Vel.Y+0.8) > 1e-12 {
		t.Errorf("other vel = %v, want (1.6, -0.8)", other.Vel)
	}
	if self.Color == red || other.Color == red {
		t.Error("expected both bodies to recolor")
	}
}

func TestSwapThenDamp_CoincidentCenters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := NewBody(Vec2{200, 200}, 0.9, red)
	b := NewBody(Vec2{200, 200}, 0.9, red)

	overlap, dist, ok := Overlap(a, b)
	if !ok || dist != 1 || overlap != 29.5 {
		t.Fatalf("overlap=%v dist=%v ok=%v, want 29.5, 1, true", overlap, dist, ok)
	}

	SwapThenDamp(a, b, rng)

	for _, body := range []*Body{a, b} {
		if math.IsNaN(body.Pos.X) || math.IsNaN(body.Pos.Y) {
			t.Fatalf("NaN position after coincident collision: %v", body.Pos)
		}
	}
}

func TestSwapThenDamp_Apart(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := NewBody(Vec2{100, 100}, 0.9, red)
	a.Vel = Vec2{1, 1}
	b := NewBody(Vec2{300, 100}, 0.9, red)

	if SwapThenDamp(a, b, rng) {
		t.Fatal("distant bodies reported a collision")
	}
	if a.Vel != (Vec2{1, 1}) || a.Color != red {
		t.Error("distant bodies were modified")
	}
}
