package motion

import (
	"testing"

	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/stage"
)

func TestBall(t *testing.T) {
	fixed := params.New("fixed")
	fixed.DefineFloat("gravity_acc_g", 9.81)
	fixed.Seal()
	dyn := params.New("dynamic")

	theta, omega := 0.0, 5.0
	states := []stage.StateVar{
		{Name: "theta", Value: &theta},
		{Name: "omega", Value: &omega},
	}
	dx := make([]float64, 2)

	eom := NewBall()
	if err := eom(states, dx, nil, dyn, fixed); err != nil {
		t.Fatalf("ball eom: %v", err)
	}
	if dx[0] != 5.0 {
		t.Errorf("dtheta = %f, want omega", dx[0])
	}
	if dx[1] != -9.81 {
		t.Errorf("domega = %f, want -g", dx[1])
	}
}

func TestBallMissingState(t *testing.T) {
	fixed := params.New("fixed")
	fixed.DefineFloat("gravity_acc_g", 9.81)
	dyn := params.New("dynamic")

	v := 0.0
	states := []stage.StateVar{{Name: "height", Value: &v}}
	if err := NewBall()(states, make([]float64, 1), nil, dyn, fixed); err == nil {
		t.Error("expected error for missing state variables")
	}
}

func TestTurbineDerivative(t *testing.T) {
	dyn := params.New("dynamic")
	dyn.DefineFloat("moment_of_inertia", 50.0)
	tauFlow, _ := dyn.DefineFloat("tau_flow", 0.0)
	tauExtract, _ := dyn.DefineFloat("tau_flow_extract", 0.0)
	drag, _ := dyn.DefineFloat("drivetrain_drag", 0.0)
	fixed := params.New("fixed")
	fixed.Seal()

	// The turbine eom pulls its torques through the wired stages.
	b := &stage.Bindings{
		FlowModel: func(dyn, fixed *params.Array) error {
			*tauFlow = 100.0
			return nil
		},
		Drivetrain: func(dyn, fixed *params.Array) error {
			*drag = 10.0
			return nil
		},
	}
	*tauExtract = 40.0

	theta, omega := 0.0, 2.0
	states := []stage.StateVar{
		{Name: "theta", Value: &theta},
		{Name: "omega", Value: &omega},
	}
	dx := make([]float64, 2)

	eom := NewTurbine()
	if err := eom(states, dx, b, dyn, fixed); err != nil {
		t.Fatalf("turbine eom: %v", err)
	}
	if dx[0] != 2.0 {
		t.Errorf("dtheta = %f, want omega", dx[0])
	}
	// (100 - 40 - 10) / 50
	if dx[1] != 1.0 {
		t.Errorf("domega = %f, want 1.0", dx[1])
	}
}
