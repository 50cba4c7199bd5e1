package integrator

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/stage"
)

// fall is free fall: theta' = omega, omega' = -g.
func fall(g float64) stage.MotionFunc {
	return func(states []stage.StateVar, dx []float64, b *stage.Bindings, dyn, fixed *params.Array) error {
		dx[0] = *states[1].Value
		dx[1] = -g
		return nil
	}
}

// decay is omega' = -omega, with the analytic solution omega(t) = omega0 * e^-t.
func decay() stage.MotionFunc {
	return func(states []stage.StateVar, dx []float64, b *stage.Bindings, dyn, fixed *params.Array) error {
		dx[0] = -*states[0].Value
		return nil
	}
}

func TestEulerStep(t *testing.T) {
	theta, omega := 0.0, 5.0
	states := []stage.StateVar{
		{Name: "theta", Value: &theta},
		{Name: "omega", Value: &omega},
	}
	b := &stage.Bindings{Motion: fall(9.81)}

	step := NewEuler()
	if err := step(states, 0.1, b, nil, nil); err != nil {
		t.Fatalf("euler: %v", err)
	}
	if theta != 0.5 {
		t.Errorf("theta = %f, want 0 + dt*omega = 0.5", theta)
	}
	if diff := math.Abs(omega - (5.0 - 0.981)); diff > 1e-12 {
		t.Errorf("omega = %f, want 5 - dt*g", omega)
	}
}

func TestRK4MatchesAnalyticDecay(t *testing.T) {
	omega := 1.0
	states := []stage.StateVar{{Name: "omega", Value: &omega}}
	b := &stage.Bindings{Motion: decay()}

	step := NewRK4()
	dt := 0.1
	for i := 0; i < 10; i++ {
		if err := step(states, dt, b, nil, nil); err != nil {
			t.Fatalf("rk4 step %d: %v", i, err)
		}
	}

	want := math.Exp(-1.0)
	if diff := math.Abs(omega - want); diff > 1e-6 {
		t.Errorf("omega after 1s = %.9f, want e^-1 = %.9f (diff %g)", omega, want, diff)
	}
}

func TestRK4MoreAccurateThanEuler(t *testing.T) {
	run := func(step stage.IntegratorFunc) float64 {
		omega := 1.0
		states := []stage.StateVar{{Name: "omega", Value: &omega}}
		b := &stage.Bindings{Motion: decay()}
		for i := 0; i < 10; i++ {
			if err := step(states, 0.1, b, nil, nil); err != nil {
				t.Fatalf("step: %v", err)
			}
		}
		return math.Abs(omega - math.Exp(-1.0))
	}

	if eulerErr, rk4Err := run(NewEuler()), run(NewRK4()); rk4Err >= eulerErr {
		t.Errorf("rk4 error %g should beat euler error %g", rk4Err, eulerErr)
	}
}

func TestRK4RestoresStateOnError(t *testing.T) {
	calls := 0
	failing := func(states []stage.StateVar, dx []float64, b *stage.Bindings, dyn, fixed *params.Array) error {
		calls++
		if calls > 2 {
			return errors.New("model blew up")
		}
		dx[0] = 1.0
		return nil
	}

	omega := 3.0
	states := []stage.StateVar{{Name: "omega", Value: &omega}}
	b := &stage.Bindings{Motion: failing}

	if err := NewRK4()(states, 0.1, b, nil, nil); err == nil {
		t.Fatal("expected the motion error to propagate")
	}
	if omega != 3.0 {
		t.Errorf("omega = %f, want trial values rolled back to 3.0", omega)
	}
}
