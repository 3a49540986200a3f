package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/sirconv/internal/models"
	"github.com/san-kum/sirconv/internal/sim"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derivative(x sim.State, t float64) sim.State {
	return sim.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x := sim.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4BeatsEulerOnSIR(t *testing.T) {
	dyn := models.NewSIR(3, 2)
	exact, err := models.NewLogistic(0.01, 3, 2)
	if err != nil {
		t.Fatalf("NewLogistic failed: %v", err)
	}

	dt := 0.25
	steps := 40
	xe := sim.State{0.99, 0.01}
	xr := xe.Clone()
	rk4 := NewRK4()
	euler := NewEuler()
	for i := 0; i < steps; i++ {
		xe = euler.Step(dyn, xe, float64(i)*dt, dt)
		xr = rk4.Step(dyn, xr, float64(i)*dt, dt)
	}

	want := exact.At(float64(steps) * dt)
	errEuler := math.Abs(xe[sim.IdxI] - want)
	errRK4 := math.Abs(xr[sim.IdxI] - want)
	if errRK4 >= errEuler {
		t.Errorf("expected rk4 error %.3e below euler error %.3e", errRK4, errEuler)
	}
}
