// Package motion provides the equation-of-motion stage implementations.
// A motion stage receives the named integration states and writes their
// derivative; it locates its variables by name on the first call only and
// addresses them by index afterwards.
package motion

import (
	"fmt"

	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/stage"
)

func stateIndex(states []stage.StateVar, name string) int {
	for i, s := range states {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// NewBall returns a minimal test dynamics: a ball thrown straight up.
// theta' = omega, omega' = -g.
func NewBall() stage.MotionFunc {
	var (
		gravity  *float64
		idxTheta = -1
		idxOmega = -1
		bound    bool
	)
	return func(states []stage.StateVar, dx []float64, b *stage.Bindings, dyn, fixed *params.Array) error {
		if !bound {
			var err error
			if gravity, err = fixed.Float("gravity_acc_g"); err != nil {
				return err
			}
			idxTheta = stateIndex(states, "theta")
			idxOmega = stateIndex(states, "omega")
			if idxTheta < 0 || idxOmega < 0 {
				return fmt.Errorf("ball eom: required state variables not found")
			}
			bound = true
		}

		dx[idxTheta] = *states[idxOmega].Value
		dx[idxOmega] = -(*gravity)
		return nil
	}
}

// NewTurbine returns the single-dof rotor dynamics. It refreshes the aero
// torque and drivetrain state through the wired bindings before forming the
// derivative: omega' = (tau_flow - tau_flow_extract - drag) / J.
func NewTurbine() stage.MotionFunc {
	var (
		inertia    *float64
		tauFlow    *float64
		tauExtract *float64
		drag       *float64
		idxTheta   = -1
		idxOmega   = -1
		bound      bool
	)
	return func(states []stage.StateVar, dx []float64, b *stage.Bindings, dyn, fixed *params.Array) error {
		if !bound {
			var err error
			if inertia, err = dyn.Float("moment_of_inertia"); err != nil {
				return err
			}
			if tauFlow, err = dyn.Float("tau_flow"); err != nil {
				return err
			}
			if tauExtract, err = dyn.Float("tau_flow_extract"); err != nil {
				return err
			}
			if drag, err = dyn.Float("drivetrain_drag"); err != nil {
				return err
			}
			idxTheta = stateIndex(states, "theta")
			idxOmega = stateIndex(states, "omega")
			if idxTheta < 0 || idxOmega < 0 {
				return fmt.Errorf("turbine eom: required state variables not found")
			}
			bound = true
		}

		if err := b.FlowModel(dyn, fixed); err != nil {
			return err
		}
		if err := b.Drivetrain(dyn, fixed); err != nil {
			return err
		}

		dx[idxTheta] = *states[idxOmega].Value
		dx[idxOmega] = (*tauFlow - *tauExtract - *drag) / *inertia
		return nil
	}
}
