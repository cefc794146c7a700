package arena_test

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/arena"
)

var _ = Describe("World", func() {
	var (
		world *arena.World
		ball  *arena.Body
	)

	BeforeEach(func() {
		world = arena.NewWorld(arena.Options{Width: 800, Height: 600, Restitution: 0.9}, rand.New(rand.NewSource(11)))
		ball = world.AddBody(arena.NewBody(arena.Vec2{X: 400, Y: 300}, 0.9, colorful.Color{R: 1}))
	})

	Context("a lone free body", func() {
		It("loses speed geometrically", func() {
			ball.Vel = arena.Vec2{X: 2, Y: -1}
			v0 := ball.Speed()
			for i := 0; i < 30; i++ {
				world.Step(arena.Frame{})
			}
			Expect(ball.Speed()).To(BeNumerically("~", v0*math.Pow(0.99, 30), 1e-9))
		})

		It("bounces off the left edge", func() {
			ball.Pos = arena.Vec2{X: 10, Y: 300}
			ball.Vel = arena.Vec2{X: -5, Y: 0}

			rep := world.Step(arena.Frame{})

			Expect(rep.WallHits).To(Equal(1))
			Expect(ball.Pos.X).To(Equal(30.0))
			Expect(ball.Vel.X).To(BeNumerically("~", 4.455, 1e-9))
		})

		It("never keeps more than twenty trail points", func() {
			ball.Vel = arena.Vec2{X: 3, Y: 2}
			for i := 0; i < 200; i++ {
				world.Step(arena.Frame{})
				Expect(ball.TrailLen()).To(BeNumerically("<=", arena.TrailLength))
			}
			Expect(ball.TrailLen()).To(Equal(arena.TrailLength))
		})
	})

	Context("when grabbed and dragged", func() {
		BeforeEach(func() {
			world.Step(arena.Frame{
				Events:  []arena.Event{arena.PointerDown{Pos: arena.Vec2{X: 420, Y: 300}, Button: arena.ButtonPrimary}},
				Pointer: arena.Vec2{X: 420, Y: 300},
			})
		})

		It("grows and caches the grab impulse", func() {
			Expect(ball.State()).To(Equal(arena.Dragging))
			Expect(ball.Radius()).To(Equal(40.0))
			Expect(ball.Vel).To(Equal(arena.Vec2{X: -2, Y: 0}))
		})

		It("releases with the stale impulse", func() {
			for _, x := range []float64{450, 480, 500} {
				world.Step(arena.Frame{Pointer: arena.Vec2{X: x, Y: 300}})
			}
			world.Step(arena.Frame{Events: []arena.Event{arena.PointerUp{}}, Pointer: arena.Vec2{X: 500, Y: 300}})

			Expect(ball.State()).To(Equal(arena.Free))
			Expect(ball.Vel.X).To(BeNumerically("~", -1.98, 1e-12))
			Expect(ball.Pos.X).To(BeNumerically("~", 498.02, 1e-9))
		})

		It("does not spawn on an empty press", func() {
			rep := world.Step(arena.Frame{
				Events:  []arena.Event{arena.PointerDown{Pos: arena.Vec2{X: 50, Y: 50}, Button: arena.ButtonPrimary}},
				Pointer: arena.Vec2{X: 50, Y: 50},
			})
			Expect(rep.Spawned).To(BeEmpty())
			Expect(world.Len()).To(Equal(1))
		})
	})

	Context("spawning", func() {
		It("adds exactly one resting body at the press", func() {
			rep := world.Step(arena.Frame{
				Events:  []arena.Event{arena.PointerDown{Pos: arena.Vec2{X: 120, Y: 90}, Button: arena.ButtonPrimary}},
				Pointer: arena.Vec2{X: 120, Y: 90},
			})

			Expect(world.Len()).To(Equal(2))
			Expect(rep.Spawned).To(HaveLen(1))
			spawned, ok := world.Body(rep.Spawned[0])
			Expect(ok).To(BeTrue())
			Expect(spawned.Pos).To(Equal(arena.Vec2{X: 120, Y: 90}))
			Expect(spawned.Vel).To(Equal(arena.Vec2{}))
			Expect(spawned.Radius()).To(Equal(30.0))
		})
	})

	Context("with interior walls and a crowd", func() {
		BeforeEach(func() {
			world.AddWall(arena.NewBoundary(100, 200, 300, arena.Horizontal))
			world.AddWall(arena.NewBoundary(500, 50, 400, arena.Vertical))
			rng := rand.New(rand.NewSource(5))
			for i := 0; i < 12; i++ {
				b, _ := world.Spawn(arena.Vec2{X: 40 + rng.Float64()*720, Y: 40 + rng.Float64()*520})
				b.Vel = arena.Vec2{X: rng.Float64()*30 - 15, Y: rng.Float64()*30 - 15}
			}
		})

		It("keeps restitution in range under key spam", func() {
			for i := 0; i < 40; i++ {
				code := arena.KeyRaiseRestitution
				if i%3 == 0 {
					code = arena.KeyLowerRestitution
				}
				world.Step(arena.Frame{Events: []arena.Event{arena.KeyDown{Code: code}}})
				for _, b := range world.Bodies() {
					Expect(b.Restitution).To(And(BeNumerically(">=", 0), BeNumerically("<=", 1)))
				}
			}
		})

		It("stays finite", func() {
			for i := 0; i < 300; i++ {
				world.Step(arena.Frame{})
			}
			for _, b := range world.Bodies() {
				Expect(math.IsNaN(b.Pos.X) || math.IsNaN(b.Pos.Y)).To(BeFalse())
				Expect(math.IsInf(b.Pos.X, 0) || math.IsInf(b.Pos.Y, 0)).To(BeFalse())
			}
		})
	})
})
