package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/sim"
)

var ErrUnknownMetric = errors.New("experiment: unknown metric")

// Registry maps metric names to constructors so runs can pick them by name.
type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{metrics: make(map[string]func() sim.Metric)}

	r.metrics["energy"] = func() sim.Metric { return metrics.NewEnergy() }
	r.metrics["energy_loss"] = func() sim.Metric { return metrics.NewEnergyLoss() }
	r.metrics["peak_speed"] = func() sim.Metric { return metrics.NewPeakSpeed() }
	r.metrics["containment"] = func() sim.Metric { return metrics.NewContainment() }
	r.metrics["wall_hits"] = func() sim.Metric { return metrics.NewHits(metrics.WallHits) }
	r.metrics["body_hits"] = func() sim.Metric { return metrics.NewHits(metrics.BodyHits) }
	r.metrics["bodies"] = func() sim.Metric { return metrics.NewBodyCount() }

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, name)
	}
	return fn(), nil
}

// Metrics resolves names in order. An empty list means every metric.
func (r *Registry) Metrics(names []string) ([]sim.Metric, error) {
	if len(names) == 0 {
		return r.DefaultMetrics(), nil
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh instance of every registered metric.
func (r *Registry) DefaultMetrics() []sim.Metric {
	out := make([]sim.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name]())
	}
	return out
}
