package flowmodel

import (
	"testing"

	"github.com/san-kum/turbsim/internal/params"
)

func buildArrays(t *testing.T) (*params.Array, *params.Array) {
	t.Helper()
	dyn := params.New("dynamic")
	dyn.DefineFloat("omega", 0.0)
	dyn.DefineFloat("flow_speed", 0.0)
	dyn.DefineFloat("tau_flow", 0.0)

	fixed := params.New("fixed")
	fixed.DefineFloat("R", 2.0)
	fixed.DefineFloat("A", 10.0)
	fixed.DefineFloat("slowCQ", 0.05)
	fixed.DefineFloat("rho", 1.225)
	fixed.Seal()
	return dyn, fixed
}

func TestNoWindNoTorque(t *testing.T) {
	dyn, fixed := buildArrays(t)
	fm := NewExample()

	omega, _ := dyn.Float("omega")
	tau, _ := dyn.Float("tau_flow")
	*omega = 2.0

	if err := fm(dyn, fixed); err != nil {
		t.Fatalf("flow model: %v", err)
	}
	if *tau != 0 {
		t.Errorf("tau = %f, want 0 with no wind", *tau)
	}
}

func TestStalledRotorUsesSlowCq(t *testing.T) {
	dyn, fixed := buildArrays(t)
	fm := NewExample()

	u, _ := dyn.Float("flow_speed")
	tau, _ := dyn.Float("tau_flow")
	*u = 8.0

	if err := fm(dyn, fixed); err != nil {
		t.Fatalf("flow model: %v", err)
	}
	// slowCQ * 0.5 * rho * u^2 * A * R
	want := 0.05 * 0.5 * 1.225 * 64.0 * 10.0 * 2.0
	if diff := *tau - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("tau = %f, want %f from slow-cq floor", *tau, want)
	}
}

func TestSpinningRotorProducesTorque(t *testing.T) {
	dyn, fixed := buildArrays(t)
	fm := NewExample()

	omega, _ := dyn.Float("omega")
	u, _ := dyn.Float("flow_speed")
	tau, _ := dyn.Float("tau_flow")

	// tsr = 3 puts the cp curve at its peak.
	*u = 8.0
	*omega = 12.0

	if err := fm(dyn, fixed); err != nil {
		t.Fatalf("flow model: %v", err)
	}
	if *tau <= 0 {
		t.Errorf("tau = %f, want positive torque at peak cp", *tau)
	}
}
