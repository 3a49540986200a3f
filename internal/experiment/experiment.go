package experiment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/san-kum/sirconv/internal/analysis"
	"github.com/san-kum/sirconv/internal/metrics"
	"github.com/san-kum/sirconv/internal/models"
	"github.com/san-kum/sirconv/internal/sim"
)

// ErrGridMismatch indicates numerical and analytical time grids that differ.
var ErrGridMismatch = errors.New("experiment: numerical and analytical grids differ")

type Config struct {
	Beta       float64
	Gamma      float64
	S0         float64
	I0         float64
	T0         float64
	MaxT       float64
	StepSizes  []float64
	Integrator string
	Parallel   bool
}

// DefaultConfig is the reference convergence study: beta=3, gamma=2,
// S0=0.99, I0=0.01 up to t=25 with step sizes halving from 2 to 1/32.
func DefaultConfig() Config {
	return Config{
		Beta:       3,
		Gamma:      2,
		S0:         0.99,
		I0:         0.01,
		T0:         0,
		MaxT:       25,
		StepSizes:  []float64{2, 1, 0.5, 0.25, 0.125, 0.0625, 0.03125},
		Integrator: "euler",
	}
}

// Trajectory pairs the numerical and analytical solution on one grid.
type Trajectory struct {
	Dt          float64
	Times       []float64
	S           []float64
	INumerical  []float64
	IAnalytical []float64
	Metrics     map[string]float64
}

// Run is the outcome for one step size.
type Run struct {
	Dt       float64 `json:"dt"`
	Points   int     `json:"points"`
	MaxError float64 `json:"max_error"`
	Peak     float64 `json:"peak_prevalence"`
	Drift    float64 `json:"population_drift"`
}

type Report struct {
	Integrator  string    `json:"integrator"`
	Beta        float64   `json:"beta"`
	Gamma       float64   `json:"gamma"`
	MaxT        float64   `json:"max_t"`
	Runs        []Run     `json:"runs"`
	Errors      []float64 `json:"errors"`
	Orders      []float64 `json:"orders,omitempty"`
	FittedOrder float64   `json:"fitted_order,omitempty"`
}

// StepSizes returns the dt of every run in order.
func (r *Report) StepSizes() []float64 {
	dts := make([]float64, len(r.Runs))
	for k, run := range r.Runs {
		dts[k] = run.Dt
	}
	return dts
}

type Experiment struct {
	cfg      Config
	registry *Registry
	progress func(Run)
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
	}
}

// OnRun registers a callback invoked after each step size completes.
// With Parallel set it may be called from several goroutines.
func (e *Experiment) OnRun(fn func(Run)) {
	e.progress = fn
}

// Run solves the model for every configured step size and measures the
// sup-norm distance between the numerical and analytical infected
// fraction. Report.Errors keeps the order of Config.StepSizes.
func (e *Experiment) Run(ctx context.Context) (*Report, error) {
	if len(e.cfg.StepSizes) == 0 {
		return nil, fmt.Errorf("experiment: no step sizes configured")
	}

	runs := make([]Run, len(e.cfg.StepSizes))
	if e.cfg.Parallel {
		if err := e.runParallel(ctx, runs); err != nil {
			return nil, err
		}
	} else {
		for k, dt := range e.cfg.StepSizes {
			run, err := e.runOne(ctx, dt)
			if err != nil {
				return nil, err
			}
			runs[k] = run
		}
	}

	report := &Report{
		Integrator: e.cfg.Integrator,
		Beta:       e.cfg.Beta,
		Gamma:      e.cfg.Gamma,
		MaxT:       e.cfg.MaxT,
		Runs:       runs,
		Errors:     make([]float64, len(runs)),
	}
	for k, run := range runs {
		report.Errors[k] = run.MaxError
	}

	// orders need at least two distinct positive errors; a sweep that
	// does not provide them simply reports none
	if orders, err := analysis.ObservedOrders(report.StepSizes(), report.Errors); err == nil {
		report.Orders = orders
	}
	if p, err := analysis.FitOrder(report.StepSizes(), report.Errors); err == nil {
		report.FittedOrder = p
	}

	return report, nil
}

func (e *Experiment) runParallel(ctx context.Context, runs []Run) error {
	errs := make([]error, len(runs))

	var wg sync.WaitGroup
	for k, dt := range e.cfg.StepSizes {
		wg.Add(1)
		go func(idx int, dt float64) {
			defer wg.Done()
			runs[idx], errs[idx] = e.runOne(ctx, dt)
		}(k, dt)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Experiment) runOne(ctx context.Context, dt float64) (Run, error) {
	traj, err := e.solve(ctx, dt)
	if err != nil {
		return Run{}, err
	}

	maxErr, err := metrics.SupNorm(traj.IAnalytical, traj.INumerical)
	if err != nil {
		return Run{}, fmt.Errorf("dt=%v: %w", dt, err)
	}

	run := Run{
		Dt:       dt,
		Points:   len(traj.Times),
		MaxError: maxErr,
		Peak:     traj.Metrics["peak_prevalence"],
		Drift:    traj.Metrics["population_drift"],
	}
	if e.progress != nil {
		e.progress(run)
	}
	return run, nil
}

// Solve produces the paired trajectory for a single step size.
func Solve(ctx context.Context, cfg Config, dt float64) (*Trajectory, error) {
	return New(cfg).solve(ctx, dt)
}

func (e *Experiment) solve(ctx context.Context, dt float64) (*Trajectory, error) {
	integ, err := e.registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return nil, err
	}

	simulator := sim.New(models.NewSIR(e.cfg.Beta, e.cfg.Gamma), integ)
	simulator.AddMetric(metrics.NewPeakPrevalence())
	simulator.AddMetric(metrics.NewPopulationDrift())

	result, err := simulator.Run(ctx, sim.State{e.cfg.S0, e.cfg.I0}, sim.Config{
		T0:       e.cfg.T0,
		Dt:       dt,
		Duration: e.cfg.MaxT,
	})
	if err != nil {
		return nil, fmt.Errorf("numerical solve dt=%v: %w", dt, err)
	}

	exact, err := models.NewLogistic(e.cfg.I0, e.cfg.Beta, e.cfg.Gamma)
	if err != nil {
		return nil, err
	}
	times, analytical, err := exact.Solve(e.cfg.T0, dt, e.cfg.MaxT)
	if err != nil {
		return nil, fmt.Errorf("analytical solve dt=%v: %w", dt, err)
	}

	if err := sameGrid(result.Times, times); err != nil {
		return nil, fmt.Errorf("dt=%v: %w", dt, err)
	}

	return &Trajectory{
		Dt:          dt,
		Times:       result.Times,
		S:           result.Component(sim.IdxS),
		INumerical:  result.Component(sim.IdxI),
		IAnalytical: analytical,
		Metrics:     result.Metrics,
	}, nil
}

func sameGrid(a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d vs %d points", ErrGridMismatch, len(a), len(b))
	}
	for k := range a {
		if a[k] != b[k] {
			return fmt.Errorf("%w: t[%d] = %v vs %v", ErrGridMismatch, k, a[k], b[k])
		}
	}
	return nil
}
