package sim

import (
	"fmt"
	"math"
)

// TimeGrid builds t_0 = start, t_{k+1} = t_k + dt while t_k < maxT. The
// last point is the first one at or beyond maxT, so start >= maxT yields
// the single point {start}.
// Simulator.Run accumulates time the same way, so both grids agree
// value for value.
func TimeGrid(start, dt, maxT float64) ([]float64, error) {
	if err := validate(start, dt, maxT); err != nil {
		return nil, err
	}

	times := make([]float64, 0, gridCap(start, dt, maxT))
	t := start
	times = append(times, t)
	for t < maxT {
		t += dt
		times = append(times, t)
	}
	return times, nil
}

func validate(start, dt, maxT float64) error {
	if math.IsNaN(start) || math.IsInf(start, 0) {
		return fmt.Errorf("%w: start time must be finite, got %v", ErrInvalidConfig, start)
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", ErrInvalidConfig, dt)
	}
	if math.IsNaN(maxT) || math.IsInf(maxT, 0) {
		return fmt.Errorf("%w: end time must be finite, got %v", ErrInvalidConfig, maxT)
	}
	return nil
}

func gridCap(start, dt, maxT float64) int {
	if start >= maxT {
		return 1
	}
	return int(math.Ceil((maxT-start)/dt)) + 2
}
