package control

import (
	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/stage"
)

// NewPISpeed returns a PI speed controller tracking omega_target. It runs
// at the control interval, so the integration step is control_dt_sec.
// The integral is clamped to keep the command bounded while the rotor is
// far from target.
func NewPISpeed() stage.ControlFunc {
	var (
		omega       *float64
		omegaTarget *float64
		tauExtract  *float64
		kp          *float64
		ki          *float64
		controlDt   *float64
		integral    float64
		bound       bool
	)
	const integralLimit = 1e4

	return func(dyn, fixed *params.Array) error {
		if !bound {
			var err error
			if omega, err = dyn.Float("omega"); err != nil {
				return err
			}
			if omegaTarget, err = dyn.Float("omega_target"); err != nil {
				return err
			}
			if tauExtract, err = dyn.Float("tau_flow_extract"); err != nil {
				return err
			}
			if kp, err = fixed.Float("kp"); err != nil {
				return err
			}
			if ki, err = fixed.Float("ki"); err != nil {
				return err
			}
			if controlDt, err = fixed.Float("control_dt_sec"); err != nil {
				return err
			}
			bound = true
		}

		// Positive error (rotor too fast) demands more extraction torque.
		err := *omega - *omegaTarget

		integral += err * (*controlDt)
		if integral > integralLimit {
			integral = integralLimit
		} else if integral < -integralLimit {
			integral = -integralLimit
		}

		tau := (*kp)*err + (*ki)*integral
		if tau < 0 {
			tau = 0
		}
		*tauExtract = tau
		return nil
	}
}
