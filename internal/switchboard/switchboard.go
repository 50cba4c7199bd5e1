// Package switchboard resolves the configured stage names into callable
// bindings, exactly once per process.
package switchboard

import (
	"fmt"
	"sync"

	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/registry"
	"github.com/san-kum/turbsim/internal/stage"
)

// Configuration keys, one per stage kind, read from the fixed array in this
// declared order during wiring.
const (
	KeyTurbineControl = "turbine_control_function_call"
	KeyDrivetrain     = "drivetrain_function_call"
	KeyFlowModel      = "flow_model_function_call"
	KeyMotion         = "eom_function_call"
	KeyIntegrator     = "numerical_integrator_function_call"
	KeyHostInterface  = "host_interface_function_call"
	KeyBridgeEntry    = "bridge_entry_function_call"
)

// Switch is a two-state machine: Unwired until the first successful Wire,
// Wired for the rest of the process. While Wired, further Wire calls are
// deliberate no-ops; re-wiring mid-run would swap implementations under the
// host's feet.
type Switch struct {
	reg *registry.Set

	mu       sync.Mutex
	wired    bool
	bindings stage.Bindings
}

func New(reg *registry.Set) *Switch {
	return &Switch{reg: reg}
}

// Wire reads the configured name for every stage kind from the fixed array
// and resolves it against the kind's table. The first unknown name aborts
// the whole step: nothing is committed, the switch stays Unwired, and the
// error carries the kind and the requested name. Returns whether this call
// performed the wiring (false when already Wired).
//
// The mutex makes the Unwired to Wired transition safe even if a host calls
// the first tick concurrently; afterwards the fast path is a flag check.
func (s *Switch) Wire(fixed *params.Array) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.wired {
		return false, nil
	}

	var b stage.Bindings

	name, err := fixed.String(KeyTurbineControl)
	if err != nil {
		return false, err
	}
	if b.Control, err = s.reg.Control.Resolve(*name); err != nil {
		return false, err
	}

	if name, err = fixed.String(KeyDrivetrain); err != nil {
		return false, err
	}
	if b.Drivetrain, err = s.reg.Drivetrain.Resolve(*name); err != nil {
		return false, err
	}

	if name, err = fixed.String(KeyFlowModel); err != nil {
		return false, err
	}
	if b.FlowModel, err = s.reg.FlowModel.Resolve(*name); err != nil {
		return false, err
	}

	if name, err = fixed.String(KeyMotion); err != nil {
		return false, err
	}
	if b.Motion, err = s.reg.Motion.Resolve(*name); err != nil {
		return false, err
	}

	if name, err = fixed.String(KeyIntegrator); err != nil {
		return false, err
	}
	if b.Integrator, err = s.reg.Integrator.Resolve(*name); err != nil {
		return false, err
	}

	if name, err = fixed.String(KeyHostInterface); err != nil {
		return false, err
	}
	if b.Interface, err = s.reg.Interface.Resolve(*name); err != nil {
		return false, err
	}

	if name, err = fixed.String(KeyBridgeEntry); err != nil {
		return false, err
	}
	if b.Entry, err = s.reg.Entry.Resolve(*name); err != nil {
		return false, err
	}

	s.bindings = b
	s.wired = true
	return true, nil
}

// Wired reports whether the switch has reached its terminal state.
func (s *Switch) Wired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wired
}

// Bindings returns the resolved implementations. Only valid once Wired.
func (s *Switch) Bindings() (*stage.Bindings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.wired {
		return nil, fmt.Errorf("control switch is not wired")
	}
	return &s.bindings, nil
}
