package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a step size or horizon that cannot produce a grid.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrInvalidState indicates a state vector holding NaN or Inf.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates an initial state that does not fit the dynamics.
	ErrDimensionMismatch = errors.New("sim: dimension mismatch between state and dynamics")
)

// SimError wraps an error with the grid point at which it happened.
type SimError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
