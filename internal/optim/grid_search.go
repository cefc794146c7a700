package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/experiment"
)

var ErrUnknownParam = errors.New("optim: unknown parameter")

// Params lists the scene parameters a grid can vary.
var Params = []string{"restitution", "friction", "max_bodies"}

// Apply sets one named scene parameter on cfg.
func Apply(cfg *config.Config, name string, v float64) error {
	switch name {
	case "restitution":
		cfg.Physics.Restitution = v
	case "friction":
		cfg.Physics.Friction = v
	case "max_bodies":
		cfg.MaxBodies = int(v)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}

// GridSearch evaluates a scene at every point of a parameter grid and keeps
// the point with the best metric value.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	// Maximize picks the largest metric value instead of the smallest.
	Maximize bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Point is one evaluated grid point.
type Point struct {
	Params map[string]float64
	Value  float64
}

// Search runs base under every parameter combination for ticks frames and
// returns the best point along with every evaluated point in grid order.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, ticks int, metricName string) (Point, []Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Point{}, nil, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	var points []Point
	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) error {
		cfg := base.Clone()
		for k, v := range params {
			if err := Apply(cfg, k, v); err != nil {
				return err
			}
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("grid point %v: %w", params, err)
		}

		m, err := experiment.NewRegistry().GetMetric(metricName)
		if err != nil {
			return err
		}
		exp := experiment.New(cfg, nil)
		if err := exp.Setup(nil); err != nil {
			return err
		}
		exp.Simulator().AddMetric(m)

		result, err := exp.Run(ctx, ticks)
		if err != nil {
			return err
		}
		points = append(points, Point{Params: params, Value: result.Metrics[metricName]})
		return nil
	})
	if err != nil {
		return Point{}, points, err
	}

	best := Point{Value: math.Inf(1)}
	if g.Maximize {
		best.Value = math.Inf(-1)
	}
	for _, p := range points {
		if (g.Maximize && p.Value > best.Value) || (!g.Maximize && p.Value < best.Value) {
			best = p
		}
	}
	return best, points, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, eval func(map[string]float64) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		return eval(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, eval); err != nil {
			return err
		}
	}
	return nil
}
