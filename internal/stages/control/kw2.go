// Package control provides the turbine-control stage implementations.
// Each constructor returns a fresh implementation carrying its own
// process-lifetime state; parameter pointers are bound on the first call
// and dereferenced on every tick after that.
package control

import (
	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/stage"
)

// NewKW2 returns the k-omega-squared torque law: tau = k * omega^2.
func NewKW2() stage.ControlFunc {
	var (
		omega      *float64
		tauExtract *float64
		k          *float64
		bound      bool
	)
	return func(dyn, fixed *params.Array) error {
		if !bound {
			var err error
			if omega, err = dyn.Float("omega"); err != nil {
				return err
			}
			if tauExtract, err = dyn.Float("tau_flow_extract"); err != nil {
				return err
			}
			if k, err = fixed.Float("k"); err != nil {
				return err
			}
			bound = true
		}

		*tauExtract = (*k) * (*omega) * (*omega)
		return nil
	}
}

// NewKW2History applies the same law to the mean of the recorded omega
// window, smoothing the command against measurement noise. Falls back to
// doing nothing until at least one value has been recorded.
func NewKW2History() stage.ControlFunc {
	var (
		hist       *params.History
		tauExtract *float64
		k          *float64
		bound      bool
	)
	return func(dyn, fixed *params.Array) error {
		if !bound {
			var err error
			if hist, err = dyn.History("omega"); err != nil {
				return err
			}
			if tauExtract, err = dyn.Float("tau_flow_extract"); err != nil {
				return err
			}
			if k, err = fixed.Float("k"); err != nil {
				return err
			}
			bound = true
		}

		values := hist.Values()
		if len(values) == 0 {
			return nil
		}
		mean := 0.0
		for _, v := range values {
			mean += v
		}
		mean /= float64(len(values))

		*tauExtract = (*k) * mean * mean
		return nil
	}
}
