// Package entry provides the bridge-entry stage: the root of the chain the
// bridge invokes when the host asks for a computation.
package entry

import (
	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/stage"
	"github.com/san-kum/turbsim/internal/swap"
)

// NewExample returns the reference entry behavior: hand the tick to the
// host-interface stage, then record the parameter histories, so controllers
// on the next tick see windows that end at this one.
func NewExample() stage.EntryFunc {
	return func(buf swap.Buffer, b *stage.Bindings, dyn, fixed *params.Array) error {
		if err := b.Interface(buf, b, dyn, fixed); err != nil {
			return err
		}
		dyn.RecordHistories()
		return nil
	}
}
