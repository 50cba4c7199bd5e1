package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Stages.TurbineControl != "kw2_turbine_control" {
		t.Errorf("default controller = %s", cfg.Stages.TurbineControl)
	}
	if cfg.Sim.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Control.ControlDt < cfg.Sim.Dt {
		t.Error("control interval should not be shorter than the tick")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turbsim.yaml")

	cfg := DefaultConfig()
	cfg.Stages.TurbineControl = "pi_speed_turbine_control"
	cfg.Control.OmegaTarget = 3.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Stages.TurbineControl != "pi_speed_turbine_control" {
		t.Errorf("controller = %s after round trip", loaded.Stages.TurbineControl)
	}
	if loaded.Control.OmegaTarget != 3.5 {
		t.Errorf("omega_target = %f after round trip", loaded.Control.OmegaTarget)
	}
	// Fields absent from the file keep their defaults.
	if loaded.Turbine.Rho != DefaultRho {
		t.Errorf("rho = %f, want default", loaded.Turbine.Rho)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuildArrays(t *testing.T) {
	dyn, fixed, err := DefaultConfig().BuildArrays()
	if err != nil {
		t.Fatalf("build arrays: %v", err)
	}

	for _, name := range []string{"omega", "tau_flow", "tau_flow_extract", "drivetrain_drag", "time_sec"} {
		if _, err := dyn.Float(name); err != nil {
			t.Errorf("dynamic %q missing: %v", name, err)
		}
	}
	if _, err := dyn.Int("enable_brake_signal"); err != nil {
		t.Errorf("brake signal missing: %v", err)
	}
	if _, err := dyn.History("omega"); err != nil {
		t.Errorf("omega history missing: %v", err)
	}

	name, err := fixed.String("turbine_control_function_call")
	if err != nil {
		t.Fatalf("selection key missing: %v", err)
	}
	if *name != "kw2_turbine_control" {
		t.Errorf("selection = %q", *name)
	}
	integ, err := fixed.String("numerical_integrator_function_call")
	if err != nil {
		t.Fatalf("integrator key missing: %v", err)
	}
	if *integ != "rk4_numerical_integrator" {
		t.Errorf("integrator selection = %q", *integ)
	}

	// Fixed array must be sealed after seeding.
	if _, err := fixed.DefineFloat("late", 1.0); err == nil {
		t.Error("fixed array should be sealed")
	}
}
