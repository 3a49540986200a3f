package sim

import (
	"context"
	"fmt"
)

type Simulator struct {
	dyn        Dynamics
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(dyn Dynamics, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run steps x0 forward from cfg.T0 while the previous grid point is below
// cfg.Duration. Every grid point, the initial one included, is recorded
// and shown to metrics and observers.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := validate(cfg.T0, cfg.Dt, cfg.Duration); err != nil {
		return nil, err
	}
	if dim := s.dyn.StateDim(); len(x0) != dim {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrDimensionMismatch, len(x0), dim)
	}

	n := gridCap(cfg.T0, cfg.Dt, cfg.Duration)
	result := &Result{
		States:  make([]State, 0, n),
		Times:   make([]float64, 0, n),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := cfg.T0
	s.record(result, x, t)

	for step := 0; t < cfg.Duration; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		newX := s.integrator.Step(s.dyn, x, t, cfg.Dt)

		if cfg.ValidateState && !newX.IsValid() {
			return result, &SimError{Step: step, Time: t, State: newX, Wrapped: ErrInvalidState}
		}

		x = newX
		t += cfg.Dt
		result.StepsTaken++
		s.record(result, x, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) record(result *Result, x State, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)
}
