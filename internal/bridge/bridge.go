// Package bridge is the host-facing entry point. The host calls Invoke once
// per simulation tick with its exchange buffer and a status cell; everything
// behind the call is this library's business, and no internal error or panic
// may cross back over the boundary — failures surface only through the
// status cell.
package bridge

import (
	"fmt"
	"sync"

	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/registry"
	"github.com/san-kum/turbsim/internal/swap"
	"github.com/san-kum/turbsim/internal/switchboard"
)

// Bootstrap builds and seeds the two parameter arrays. It runs exactly once,
// on the first tick; the fixed array it returns must already contain the
// stage selection keys and be sealed.
type Bootstrap func() (dyn, fixed *params.Array, err error)

// Adapter translates the host protocol: first-call initialization and
// wiring, command-code gating, parameter array bookkeeping, and the status
// contract.
type Adapter struct {
	sw   *switchboard.Switch
	boot Bootstrap

	// The init gate is locked so that initialization happens exactly once
	// even under concurrent first calls; steady-state ticks are sequential
	// by the host contract.
	initMu      sync.Mutex
	initialized bool
	initErr     error
	dyn         *params.Array
	fixed       *params.Array
}

func New(reg *registry.Set, boot Bootstrap) *Adapter {
	return &Adapter{
		sw:   switchboard.New(reg),
		boot: boot,
	}
}

// Dynamic exposes the dynamic array for monitoring and logging. Nil until
// the first tick has initialized the adapter.
func (a *Adapter) Dynamic() *params.Array { return a.dyn }

// Err reports the initialization failure, if any. The host harness uses it
// to explain a nonzero status.
func (a *Adapter) Err() error { return a.initErr }

// Invoke processes one tick. The three message buffers follow the host
// calling contract; this core accepts them without interpreting them.
//
// Status is written exactly once per invocation: OK on success or when the
// command code asks for no action, Failed on wiring or stage failure. A
// wiring failure is terminal: every later tick fails fast without touching
// the stages.
func (a *Adapter) Invoke(buf swap.Buffer, status *swap.Status, inFile, outName, msg []byte) {
	result := swap.Failed
	defer func() {
		if recover() != nil {
			result = swap.Failed
		}
		*status = result
	}()

	if err := a.initOnce(); err != nil {
		return
	}

	if err := buf.Check(); err != nil {
		return
	}

	// Negative command code: the host wants no computation this tick.
	if buf.Command() < 0 {
		result = swap.OK
		return
	}

	b, err := a.sw.Bindings()
	if err != nil {
		return
	}
	if err := b.Entry(buf, b, a.dyn, a.fixed); err != nil {
		return
	}

	result = swap.OK
}

// initOnce runs initialization on the first call and replays its verdict on
// every later one. The unlock is deferred so that even a panicking Bootstrap
// cannot leave the gate held and hang the next tick.
func (a *Adapter) initOnce() error {
	a.initMu.Lock()
	defer a.initMu.Unlock()
	if !a.initialized {
		a.initialized = true
		a.initErr = a.initialize()
	}
	return a.initErr
}

func (a *Adapter) initialize() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bootstrap panic: %v", r)
		}
	}()

	dyn, fixed, err := a.boot()
	if err != nil {
		return fmt.Errorf("bootstrap parameter arrays: %w", err)
	}
	if _, err := a.sw.Wire(fixed); err != nil {
		return fmt.Errorf("wire control switch: %w", err)
	}
	a.dyn = dyn
	a.fixed = fixed
	return nil
}
