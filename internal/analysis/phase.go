package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/ballsim/internal/sim"
)

var ErrUnknownField = errors.New("analysis: unknown sample field")

// Fields lists the sample columns Series understands.
var Fields = []string{"x", "y", "vx", "vy", "speed", "kinetic", "restitution", "bodies"}

// Series extracts one column from recorded samples.
func Series(samples []sim.Sample, field string) ([]float64, error) {
	pick, err := selector(field)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = pick(s)
	}
	return out, nil
}

func selector(field string) (func(sim.Sample) float64, error) {
	switch field {
	case "x":
		return func(s sim.Sample) float64 { return s.X }, nil
	case "y":
		return func(s sim.Sample) float64 { return s.Y }, nil
	case "vx":
		return func(s sim.Sample) float64 { return s.VX }, nil
	case "vy":
		return func(s sim.Sample) float64 { return s.VY }, nil
	case "speed":
		return func(s sim.Sample) float64 { return math.Hypot(s.VX, s.VY) }, nil
	case "kinetic":
		return func(s sim.Sample) float64 { return s.Kinetic }, nil
	case "restitution":
		return func(s sim.Sample) float64 { return s.Restitution }, nil
	case "bodies":
		return func(s sim.Sample) float64 { return float64(s.Bodies) }, nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownField, field, strings.Join(Fields, ", "))
}

type Point struct {
	X, Y float64
}

// PhasePortrait pairs two sample columns, e.g. x against vx.
func PhasePortrait(samples []sim.Sample, xField, yField string) ([]Point, error) {
	xs, err := Series(samples, xField)
	if err != nil {
		return nil, err
	}
	ys, err := Series(samples, yField)
	if err != nil {
		return nil, err
	}
	points := make([]Point, len(xs))
	for i := range xs {
		points[i] = Point{xs[i], ys[i]}
	}
	return points, nil
}

// PhasePortraitToASCII scatters points on a width x height character grid,
// marking early, middle and late thirds of the run with '.', 'o' and '●'.
func PhasePortraitToASCII(points []Point, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		mark := '●'
		switch {
		case i < len(points)/3:
			mark = '.'
		case i < 2*len(points)/3:
			mark = 'o'
		}
		grid[row][col] = mark
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
