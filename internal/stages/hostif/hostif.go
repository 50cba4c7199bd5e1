// Package hostif provides the host-interface stage: the per-tick
// translation between the exchange buffer and the parameter arrays, and the
// cadence at which the turbine controller actually runs.
package hostif

import (
	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/stage"
	"github.com/san-kum/turbsim/internal/swap"
)

// NewExample returns the reference interface stage. On its first call it
// binds the parameters it needs, takes the communication interval from the
// buffer (the host's interval wins over the configured one, once), and
// seeds target speed and inertia from the user-defined slots when the host
// provides them. Every tick it refreshes time and rotor speed, runs the
// turbine controller whenever the accumulated interval crosses
// control_dt_sec, advances the plant states one step through the wired
// numerical integrator (which evaluates the equation of motion, and through
// it the flow model and drivetrain), and writes the demanded generator
// torque back into the buffer.
func NewExample() stage.InterfaceFunc {
	var (
		omega       *float64
		tauExtract  *float64
		timeSec     *float64
		dtSec       *float64
		controlDt   *float64
		states      []stage.StateVar
		accumulated float64
		bound       bool
	)
	return func(buf swap.Buffer, b *stage.Bindings, dyn, fixed *params.Array) error {
		if !bound {
			var err error
			if omega, err = dyn.Float("omega"); err != nil {
				return err
			}
			if tauExtract, err = dyn.Float("tau_flow_extract"); err != nil {
				return err
			}
			if timeSec, err = dyn.Float("time_sec"); err != nil {
				return err
			}
			if dtSec, err = fixed.Float("dt_sec"); err != nil {
				return err
			}
			if controlDt, err = fixed.Float("control_dt_sec"); err != nil {
				return err
			}
			theta, err := dyn.Float("theta")
			if err != nil {
				return err
			}
			states = []stage.StateVar{
				{Name: "theta", Value: theta},
				{Name: "omega", Value: omega},
			}

			// Fixed data, but set once so the configured interval always
			// matches what the host actually calls us at.
			*dtSec = buf.Interval()

			if target := buf.User(1); target != 0 {
				if p, err := dyn.Float("omega_target"); err == nil {
					*p = target
				}
			}
			if inertia := buf.User(2); inertia != 0 {
				if p, err := dyn.Float("moment_of_inertia"); err == nil {
					*p = inertia
				}
			}

			bound = true
		}

		*timeSec = buf.Time()
		*omega = buf.RotorSpeed()

		accumulated += *dtSec
		if accumulated >= *controlDt {
			if err := b.Control(dyn, fixed); err != nil {
				return err
			}
			accumulated -= *controlDt // keep any leftover time
		}

		if err := b.Integrator(states, *dtSec, b, dyn, fixed); err != nil {
			return err
		}

		buf.SetDemandedGenTorque(*tauExtract)
		return nil
	}
}
