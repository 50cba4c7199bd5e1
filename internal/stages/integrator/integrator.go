// Package integrator provides the numerical-integrator stage
// implementations. An integrator advances the named state variables by one
// step of dt, asking the wired motion stage for the derivative; states are
// updated in place through their pointers.
package integrator

import (
	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/stage"
)

// NewEuler returns the explicit first-order scheme:
// x(t+dt) = x(t) + dt * f(x(t)).
func NewEuler() stage.IntegratorFunc {
	var dx []float64
	return func(states []stage.StateVar, dt float64, b *stage.Bindings, dyn, fixed *params.Array) error {
		if len(dx) != len(states) {
			dx = make([]float64, len(states))
		}
		if err := b.Motion(states, dx, b, dyn, fixed); err != nil {
			return err
		}
		for i := range states {
			*states[i].Value += dt * dx[i]
		}
		return nil
	}
}

// NewRK4 returns the classic fourth-order Runge-Kutta scheme. Intermediate
// evaluations write trial values through the state pointers so the motion
// stage sees them where it expects; the original values are restored before
// the combined update.
func NewRK4() stage.IntegratorFunc {
	var x0, k1, k2, k3, k4 []float64

	return func(states []stage.StateVar, dt float64, b *stage.Bindings, dyn, fixed *params.Array) error {
		n := len(states)
		if len(x0) != n {
			x0 = make([]float64, n)
			k1 = make([]float64, n)
			k2 = make([]float64, n)
			k3 = make([]float64, n)
			k4 = make([]float64, n)
		}
		for i := range states {
			x0[i] = *states[i].Value
		}
		// A failed evaluation must not leave trial values behind.
		restore := func() {
			for i := range states {
				*states[i].Value = x0[i]
			}
		}

		if err := b.Motion(states, k1, b, dyn, fixed); err != nil {
			return err
		}

		for i := range states {
			*states[i].Value = x0[i] + dt*0.5*k1[i]
		}
		if err := b.Motion(states, k2, b, dyn, fixed); err != nil {
			restore()
			return err
		}

		for i := range states {
			*states[i].Value = x0[i] + dt*0.5*k2[i]
		}
		if err := b.Motion(states, k3, b, dyn, fixed); err != nil {
			restore()
			return err
		}

		for i := range states {
			*states[i].Value = x0[i] + dt*k3[i]
		}
		if err := b.Motion(states, k4, b, dyn, fixed); err != nil {
			restore()
			return err
		}

		dt6 := dt / 6.0
		for i := range states {
			*states[i].Value = x0[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
		}
		return nil
	}
}
