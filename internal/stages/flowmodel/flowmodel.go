// Package flowmodel provides the aerodynamic torque stage implementations.
package flowmodel

import (
	"math"

	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/stage"
)

type turbineData struct {
	radius float64
	area   float64
	slowCq float64
	rho    float64
}

// tauFlow computes aerodynamic torque from rotor speed and flow speed using
// a simplified cp curve over tip speed ratio, with a slow-cq floor for very
// low or reversed rotation.
func tauFlow(omega, u float64, td turbineData) float64 {
	if u <= 0 {
		return 0 // no wind, no torque
	}

	dynPressureTerm := 0.5 * td.rho * u * u * td.area * td.radius

	if omega <= 0 {
		return td.slowCq * dynPressureTerm
	}

	tsr := omega * td.radius / u
	cp := -0.1*(tsr-3)*(tsr-3) + 0.5
	cq := cp / tsr

	if math.Abs(cq) < td.slowCq {
		cq = td.slowCq
	}
	return cq * dynPressureTerm
}

// NewExample returns the reference flow model. Turbine geometry is cached
// from the fixed array on the first call.
func NewExample() stage.FlowModelFunc {
	var (
		omega     *float64
		flowSpeed *float64
		tau       *float64
		td        turbineData
		bound     bool
	)
	return func(dyn, fixed *params.Array) error {
		if !bound {
			var err error
			if omega, err = dyn.Float("omega"); err != nil {
				return err
			}
			if flowSpeed, err = dyn.Float("flow_speed"); err != nil {
				return err
			}
			if tau, err = dyn.Float("tau_flow"); err != nil {
				return err
			}

			radius, err := fixed.Float("R")
			if err != nil {
				return err
			}
			area, err := fixed.Float("A")
			if err != nil {
				return err
			}
			slowCq, err := fixed.Float("slowCQ")
			if err != nil {
				return err
			}
			rho, err := fixed.Float("rho")
			if err != nil {
				return err
			}
			td = turbineData{radius: *radius, area: *area, slowCq: *slowCq, rho: *rho}
			bound = true
		}

		*tau = tauFlow(*omega, *flowSpeed, td)
		return nil
	}
}
