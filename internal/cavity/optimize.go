package cavity

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// OptimalXi is the Boyd-Kleinman optimum focusing parameter l/b without
// walk-off.
const OptimalXi = 2.84

const refinePasses = 3

// MeanXi is the geometric mean of the tangential and sagittal crystal
// focusing parameters.
func (m Mode) MeanXi() float64 {
	return math.Sqrt(m.Crystal.XiT * m.Crystal.XiS)
}

// Nearest returns the stable point whose mean focusing parameter is
// closest to target, and its index.
func Nearest(points []Point, target float64) (Point, int, error) {
	best, bestIdx := math.Inf(1), -1
	for i, pt := range points {
		if !pt.OK() {
			continue
		}
		if d := math.Abs(pt.Mode.MeanXi() - target); d < best {
			best, bestIdx = d, i
		}
	}
	if bestIdx < 0 {
		return Point{}, -1, fmt.Errorf("no stable point among %d: %w", len(points), ErrCavityUnstable)
	}
	return points[bestIdx], bestIdx, nil
}

// FindXi grid-searches field over values for the mode whose mean focusing
// parameter is closest to target, then refines between the neighbours of
// the best point. values must be sorted.
func FindXi(ctx context.Context, p Parameters, field Field, values []float64, target float64, workers int) (Point, error) {
	if len(values) < 3 {
		return Point{}, fmt.Errorf("search needs at least 3 values, got %d", len(values))
	}

	grid := values
	var best Point
	bestDist := math.Inf(1)
	for pass := 0; pass <= refinePasses; pass++ {
		points := SweepParallel(ctx, p, field, grid, workers)
		if err := ctx.Err(); err != nil {
			return Point{}, err
		}

		pt, i, err := Nearest(points, target)
		if err != nil {
			if pass == 0 {
				return Point{}, err
			}
			break
		}
		if d := math.Abs(pt.Mode.MeanXi() - target); d < bestDist {
			best, bestDist = pt, d
		}

		lo, hi := grid[max(i-1, 0)], grid[min(i+1, len(grid)-1)]
		if hi <= lo {
			break
		}
		grid = floats.Span(make([]float64, len(values)), lo, hi)
	}
	return best, nil
}
