package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/ballsim/internal/arena"
	"github.com/san-kum/ballsim/internal/metrics"
)

// Simulator steps one world with scripted input, recording a sample per tick.
type Simulator struct {
	world     *arena.World
	input     Input
	metrics   []Metric
	observers []Observer
	log       *slog.Logger
}

func New(world *arena.World, input Input) *Simulator {
	if input == nil {
		input = Idle{}
	}
	return &Simulator{
		world:     world,
		input:     input,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       slog.New(slog.DiscardHandler),
	}
}

func (s *Simulator) AddMetric(m Metric)       { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)   { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l *slog.Logger) { s.log = l }
func (s *Simulator) World() *arena.World      { return s.world }
func (s *Simulator) Metrics() []Metric        { return s.metrics }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Samples: make([]Sample, 0, cfg.Ticks),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	start := time.Now()
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, start)
			return result, &RunError{Tick: s.world.Tick(), Err: ctx.Err()}
		default:
		}

		frame := s.input.Next(s.world.Tick() + 1)
		rep := s.world.Step(frame)

		for _, m := range s.metrics {
			m.Observe(s.world, rep)
		}
		for _, obs := range s.observers {
			obs.OnTick(s.world, rep)
		}

		result.Spawned += len(rep.Spawned)
		result.Evicted += len(rep.Evicted)
		if len(rep.Spawned) > 0 {
			s.log.Debug("spawned", "tick", rep.Tick, "ids", rep.Spawned, "bodies", s.world.Len())
		}
		if len(rep.Evicted) > 0 {
			s.log.Debug("evicted", "tick", rep.Tick, "ids", rep.Evicted)
		}

		result.Samples = append(result.Samples, sampleOf(s.world, rep))
		result.Ticks++

		if rep.Quit {
			s.log.Info("quit requested", "tick", rep.Tick)
			result.Quit = true
			break
		}
	}

	s.finish(result, start)
	return result, nil
}

func (s *Simulator) finish(result *Result, start time.Time) {
	result.Duration = time.Since(start).Seconds()
	result.Bodies = s.world.Len()
	result.Final = s.world.Draw()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if s.world == nil {
		return ErrNoWorld
	}
	if cfg.Ticks <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidTicks, cfg.Ticks)
	}
	return nil
}

func sampleOf(w *arena.World, rep arena.Report) Sample {
	smp := Sample{
		Tick:     rep.Tick,
		Bodies:   w.Len(),
		Kinetic:  metrics.Kinetic(w),
		WallHits: rep.WallHits,
		BodyHits: rep.BodyHits,
	}
	if b, ok := w.Primary(); ok {
		smp.X, smp.Y = b.Pos.X, b.Pos.Y
		smp.VX, smp.VY = b.Vel.X, b.Vel.Y
		smp.Restitution = b.Restitution
	}
	return smp
}
