package integrators

import "github.com/san-kum/sirconv/internal/sim"

// Euler is the explicit forward Euler method. The derivative is taken
// once at x and applied to every component, so no component sees
// another's updated value within a step.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn sim.Dynamics, x sim.State, t float64, dt float64) sim.State {
	dx := dyn.Derivative(x, t)
	result := make(sim.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
