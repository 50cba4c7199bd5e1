// Package stage defines the swappable units of computation the control
// system is assembled from. Each stage kind has its own call signature, so
// there is one typed table per kind rather than a single universal map:
// selection is by name at runtime, but a resolved implementation can only
// ever be invoked with its kind's exact argument list.
package stage

import (
	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/swap"
)

type Kind string

const (
	KindTurbineControl Kind = "turbine control"
	KindDrivetrain     Kind = "drivetrain"
	KindFlowModel      Kind = "flow model"
	KindMotion         Kind = "equation of motion"
	KindIntegrator     Kind = "numerical integrator"
	KindHostInterface  Kind = "host interface"
	KindBridgeEntry    Kind = "bridge entry"
)

// ControlFunc computes a torque command from the parameter arrays.
type ControlFunc func(dyn, fixed *params.Array) error

// DrivetrainFunc updates drivetrain quantities (drag, brake handling).
type DrivetrainFunc func(dyn, fixed *params.Array) error

// FlowModelFunc updates the aerodynamic torque from the current flow state.
type FlowModelFunc func(dyn, fixed *params.Array) error

// StateVar is one named integration state. Motion stages locate the
// variables they need by name once, then address them by index.
type StateVar struct {
	Name  string
	Value *float64
}

// MotionFunc writes the state derivative dx for the given states. It may
// invoke other wired stages (flow model, drivetrain) through the bindings.
type MotionFunc func(states []StateVar, dx []float64, b *Bindings, dyn, fixed *params.Array) error

// IntegratorFunc advances the named states by one step of dt, evaluating
// the wired motion stage for the derivative as many times as its scheme
// needs. State values are updated in place through their pointers.
type IntegratorFunc func(states []StateVar, dt float64, b *Bindings, dyn, fixed *params.Array) error

// InterfaceFunc translates between the exchange buffer and the parameter
// arrays and drives the control chain for one tick.
type InterfaceFunc func(buf swap.Buffer, b *Bindings, dyn, fixed *params.Array) error

// EntryFunc is the root of the per-tick chain, invoked by the bridge once
// the command code has asked for a computation.
type EntryFunc func(buf swap.Buffer, b *Bindings, dyn, fixed *params.Array) error

// Bindings holds the implementation resolved for each kind. It is written
// once during wiring and read-only afterwards.
type Bindings struct {
	Control    ControlFunc
	Drivetrain DrivetrainFunc
	FlowModel  FlowModelFunc
	Motion     MotionFunc
	Integrator IntegratorFunc
	Interface  InterfaceFunc
	Entry      EntryFunc
}
