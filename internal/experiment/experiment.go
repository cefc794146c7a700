package experiment

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"

	"github.com/san-kum/ballsim/internal/arena"
	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/sim"
)

var ErrNotSetup = errors.New("experiment: not set up")

// Experiment is one headless run of a scene: the world built from the
// config under its seed, driven by the config's script.
type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
	log       *slog.Logger
}

func New(cfg *config.Config, log *slog.Logger) *Experiment {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Experiment{cfg: cfg, log: log}
}

// Setup builds the world and attaches metrics. It must be called before Run.
func (e *Experiment) Setup(metrics []sim.Metric) error {
	w, err := e.cfg.BuildWorld(rand.New(rand.NewSource(e.cfg.Seed)))
	if err != nil {
		return err
	}

	pointer := arena.Vec2{X: e.cfg.Arena.Width / 2, Y: e.cfg.Arena.Height / 2}
	script, err := sim.NewScript(e.cfg.Script, pointer)
	if err != nil {
		return err
	}
	e.simulator = sim.New(w, script)
	e.simulator.SetLogger(e.log)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context, ticks int) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, ErrNotSetup
	}
	return e.simulator.Run(ctx, sim.Config{Ticks: ticks, Seed: e.cfg.Seed})
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }

// Factory returns a sim.Factory that sets up the scene under each seed, for
// ensemble runs.
func Factory(cfg *config.Config, reg *Registry, log *slog.Logger) sim.Factory {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(seed int64) (*sim.Simulator, error) {
		c := cfg.Clone()
		c.Seed = seed
		exp := New(c, log.With("seed", seed))
		if err := exp.Setup(reg.DefaultMetrics()); err != nil {
			return nil, err
		}
		return exp.Simulator(), nil
	}
}
