package sim

import "math"

// Component indices of a State.
const (
	IdxS = 0
	IdxI = 1
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Sum() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum
}

type Dynamics interface {
	Derivative(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn Dynamics, x State, t float64, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

type Config struct {
	T0            float64
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      25.0,
		ValidateState: true,
	}
}

type Result struct {
	States     []State
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}

// Len returns the number of grid points, including the initial one.
func (r *Result) Len() int {
	return len(r.Times)
}

// Component extracts one state index across the whole run.
func (r *Result) Component(idx int) []float64 {
	out := make([]float64, len(r.States))
	for k, x := range r.States {
		if idx < len(x) {
			out[k] = x[idx]
		}
	}
	return out
}
