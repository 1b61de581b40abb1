package linkbudget

import (
	"context"
	"fmt"
	"math"
)

// Distances returns the distances from start to end inclusive, step apart.
func Distances(start, end, step float64) ([]float64, error) {
	if start <= 0 {
		return nil, NewConfigError(fmt.Sprintf("linkbudget: sweep start must be positive: %g", start))
	}
	if end < start {
		return nil, NewConfigError(fmt.Sprintf("linkbudget: sweep end must not be less than start: %g < %g", end, start))
	}
	if step <= 0 {
		return nil, NewConfigError(fmt.Sprintf("linkbudget: sweep step must be positive: %g", step))
	}

	n := int(math.Floor((end-start)/step+1e-9)) + 1
	distances := make([]float64, n)
	for i := range distances {
		distances[i] = start + float64(i)*step
	}
	return distances, nil
}

// Sweep evaluates the link budget at every distance. It stops early if the
// context is cancelled.
func (p *RadioParameters) Sweep(ctx context.Context, distances []float64) ([]Point, error) {
	points := make([]Point, 0, len(distances))
	for _, d := range distances {
		if err := ctx.Err(); err != nil {
			return points, err
		}

		pt, err := p.Budget(d)
		if err != nil {
			return points, fmt.Errorf("evaluating distance %g m: %w", d, err)
		}
		points = append(points, pt)
	}
	return points, nil
}
