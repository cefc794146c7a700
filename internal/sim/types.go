package sim

import "github.com/san-kum/ballsim/internal/arena"

// Input supplies the frame for an upcoming tick.
type Input interface {
	Next(tick int) arena.Frame
}

type Metric interface {
	Name() string
	Observe(w *arena.World, rep arena.Report)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(w *arena.World, rep arena.Report)
}

type Config struct {
	Ticks int
	Seed  int64
}

// Sample is the per-tick telemetry row of a run. Position and velocity
// describe the primary body.
type Sample struct {
	Tick        int
	Bodies      int
	X, Y        float64
	VX, VY      float64
	Restitution float64
	Kinetic     float64
	WallHits    int
	BodyHits    int
}

type Result struct {
	Samples  []Sample
	Metrics  map[string]float64
	Ticks    int
	Quit     bool
	Final    []arena.DrawCmd
	Bodies   int
	Spawned  int
	Evicted  int
	Duration float64
}
