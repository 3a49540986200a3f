package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/sirconv/internal/sim"
)

// ErrUndefinedClosedForm is returned when the logistic solution cannot
// be evaluated (zero initial infected fraction or zero recovery rate).
var ErrUndefinedClosedForm = errors.New("models: closed-form solution undefined")

// Logistic is the closed-form infected fraction of the SIR model:
//
//	I(t) = (1 - 1/R0) / (1 + factor*exp(-(beta-gamma)*t))
//	factor = (1 - 1/R0 - i0) / i0
//
// It depends on i0 only; the initial susceptible fraction is not used.
type Logistic struct {
	beta      float64
	gamma     float64
	numerator float64
	factor    float64
}

func NewLogistic(i0, beta, gamma float64) (*Logistic, error) {
	if i0 == 0 {
		return nil, fmt.Errorf("%w: initial infected fraction is zero", ErrUndefinedClosedForm)
	}
	if gamma == 0 || beta == 0 {
		return nil, fmt.Errorf("%w: R0 = %v/%v", ErrUndefinedClosedForm, beta, gamma)
	}

	r0 := beta / gamma
	numerator := 1 - 1/r0
	return &Logistic{
		beta:      beta,
		gamma:     gamma,
		numerator: numerator,
		factor:    (numerator - i0) / i0,
	}, nil
}

func (l *Logistic) At(t float64) float64 {
	return l.numerator / (1 + l.factor*math.Exp(-(l.beta-l.gamma)*t))
}

// Equilibrium is the limit of I(t) for beta > gamma.
func (l *Logistic) Equilibrium() float64 {
	return l.numerator
}

// Solve evaluates the closed form on sim.TimeGrid(t0, dt, maxT). Time is
// absolute: the closed form is anchored at t=0 whatever t0 is.
func (l *Logistic) Solve(t0, dt, maxT float64) ([]float64, []float64, error) {
	times, err := sim.TimeGrid(t0, dt, maxT)
	if err != nil {
		return nil, nil, err
	}
	values := make([]float64, len(times))
	for k, t := range times {
		values[k] = l.At(t)
	}
	return times, values, nil
}
