package models

import "github.com/san-kum/sirconv/internal/sim"

// SIR is the reduced susceptible/infected model. Recovered individuals
// are fed back into S rather than tracked in their own compartment, so
// S+I is conserved.
type SIR struct {
	Beta  float64
	Gamma float64
}

func NewSIR(beta, gamma float64) *SIR {
	return &SIR{Beta: beta, Gamma: gamma}
}

func (m *SIR) StateDim() int {
	return 2
}

func (m *SIR) R0() float64 {
	return m.Beta / m.Gamma
}

// Derivative evaluates both right-hand sides at the same state.
func (m *SIR) Derivative(x sim.State, t float64) sim.State {
	s := x[sim.IdxS]
	i := x[sim.IdxI]
	return sim.State{SDot(m.Beta, m.Gamma, s, i), IDot(m.Beta, m.Gamma, s, i)}
}

// Population returns S+I.
func (m *SIR) Population(x sim.State) float64 {
	return x[sim.IdxS] + x[sim.IdxI]
}

// SDot is dS/dt = -beta*S*I + gamma*I.
func SDot(beta, gamma, s, i float64) float64 {
	return -beta*s*i + gamma*i
}

// IDot is dI/dt = beta*S*I - gamma*I.
func IDot(beta, gamma, s, i float64) float64 {
	return beta*s*i - gamma*i
}
