package arena

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

var red = colorful.Color{R: 1}

func TestBody_FrictionDecay(t *testing.T) {
	b := NewBody(Vec2{400, 300}, 0.9, red)
	b.Vel = Vec2{1.0, 0.5}
	v0 := b.Speed()

	for n := 1; n <= 50; n++ {
		b.Integrate(Vec2{})
		expected := v0 * math.Pow(DefaultFriction, float64(n))
		if math.Abs(b.Speed()-expected) > 1e-12 {
			t.Fatalf("tick %d: speed %v, want %v", n, b.Speed(), expected)
		}
	}
}

func TestBody_IntegrateWhileDragging(t *testing.T) {
	b := NewBody(Vec2{400, 300}, 0.9, red)
	b.Grab(Vec2{420, 300})

	b.Integrate(Vec2{480, 310})

	if b.Pos != (Vec2{480, 310}) {
		t.Errorf("dragged body at %v, want pointer position", b.Pos)
	}
	if b.Vel != (Vec2{-2, 0}) {
		t.Errorf("velocity changed while dragging: %v", b.Vel)
	}
	if b.TrailLen() != 0 {
		t.Errorf("trail grew while dragging: %d", b.TrailLen())
	}
}

func TestBody_RadiusFollowsDragState(t *testing.T) {
	b := NewBody(Vec2{100, 100}, 0.9, red)
	if b.Radius() != BaseRadius {
		t.Errorf("free radius = %v, want %v", b.Radius(), BaseRadius)
	}
	b.Grab(Vec2{100, 100})
	if b.Radius() != DragRadius {
		t.Errorf("dragging radius = %v, want %v", b.Radius(), DragRadius)
	}
	b.Release()
	if b.Radius() != BaseRadius {
		t.Errorf("released radius = %v, want %v", b.Radius(), BaseRadius)
	}
}

func TestBody_RestitutionClamped(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		steps []float64
		want  float64
	}{
		{"raise past one", 0.9, []float64{RestitutionStep, RestitutionStep, RestitutionStep}, 1},
		{"lower past zero", 0.02, []float64{-RestitutionStep}, 0},
		{"construct above one", 1.7, nil, 1},
		{"construct below zero", -0.3, nil, 0},
		{"inside range", 0.5, []float64{RestitutionStep, -RestitutionStep, -RestitutionStep}, 0.45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(Vec2{}, tt.start, red)
			for _, d := range tt.steps {
				b.AdjustRestitution(d)
			}
			if math.Abs(b.Restitution-tt.want) > 1e-9 {
				t.Errorf("restitution = %v, want %v", b.Restitution, tt.want)
			}
		})
	}
}

func TestBody_RestitutionRandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewBody(Vec2{}, 0.5, red)
	for i := 0; i < 2000; i++ {
		if rng.Intn(2) == 0 {
			b.AdjustRestitution(RestitutionStep)
		} else {
			b.AdjustRestitution(-RestitutionStep)
		}
		if b.Restitution < 0 || b.Restitution > 1 {
			t.Fatalf("step %d: restitution %v out of range", i, b.Restitution)
		}
	}
}

func TestTrail_Bounded(t *testing.T) {
	var tr Trail
	for i := 0; i < 25; i++ {
		tr.Push(Vec2{float64(i), 0})
	}
	if tr.Len() != TrailLength {
		t.Fatalf("len = %d, want %d", tr.Len(), TrailLength)
	}
	pts := tr.Points()
	if pts[0].X != 5 || pts[len(pts)-1].X != 24 {
		t.Errorf("trail holds %v..%v, want 5..24", pts[0].X, pts[len(pts)-1].X)
	}
}

func TestBody_TrailFollowsIntegration(t *testing.T) {
	b := NewBody(Vec2{400, 300}, 0.9, red)
	b.Vel = Vec2{0.2, 0}
	for i := 0; i < 40; i++ {
		b.Integrate(Vec2{})
		if b.TrailLen() > TrailLength {
			t.Fatalf("trail length %d exceeds %d", b.TrailLen(), TrailLength)
		}
	}
	pts := b.Trail()
	if pts[len(pts)-1] != b.Pos {
		t.Errorf("newest trail point %v, want %v", pts[len(pts)-1], b.Pos)
	}
}
