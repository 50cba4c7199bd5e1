// Package drivetrain provides the drivetrain stage implementations.
package drivetrain

import (
	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/stage"
)

// NewExample returns the reference drivetrain: while the brake signal is
// raised it applies the configured brake drag, otherwise the drag is zero.
// Torque extraction itself passes through untouched.
func NewExample() stage.DrivetrainFunc {
	var (
		drag        *float64
		brakeSignal *int
		brakeDrag   *float64
		bound       bool
	)
	return func(dyn, fixed *params.Array) error {
		if !bound {
			var err error
			if drag, err = dyn.Float("drivetrain_drag"); err != nil {
				return err
			}
			if brakeSignal, err = dyn.Int("enable_brake_signal"); err != nil {
				return err
			}
			if brakeDrag, err = fixed.Float("brake_drag"); err != nil {
				return err
			}
			bound = true
		}

		if *brakeSignal != 0 {
			*drag = *brakeDrag
		} else {
			*drag = 0
		}
		return nil
	}
}
