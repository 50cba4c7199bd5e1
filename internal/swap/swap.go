// Package swap defines the fixed-layout exchange buffer shared with the
// simulation host. The layout follows the Bladed external-controller record
// convention: a flat float32 array whose cells are addressed by fixed index,
// each with a documented unit and direction. Only the accessors below may
// touch the raw indices; stage code never sees an offset.
package swap

import (
	"fmt"
	"math"
)

// Record indices (zero-based). Direction is relative to this library:
// "in" cells are written by the host before each tick, "out" cells are
// written back by the bridge.
const (
	RecCommand               = 0  // in: command/status code; negative = no action this tick
	RecCurrentTime           = 1  // in: current simulation time (s)
	RecCommunicationInterval = 2  // in: communication interval (s)
	RecMeasuredRotorSpeed    = 20 // in: measured rotor speed (rad/s)
	RecDemandedGenTorque     = 46 // out: demanded generator torque (N·m)
	RecUserVariable1         = 119
	RecUserVariable10        = 128
)

// MinLen is the smallest host buffer this library will accept.
const MinLen = RecUserVariable10 + 1

// Status is the per-tick result cell. Zero means success; anything else is
// a failure code the host decides how to react to.
type Status int32

const (
	OK     Status = 0
	Failed Status = 1
)

// Buffer is the host-owned exchange array. All values cross the boundary as
// float32; internal computation is float64 and the conversion happens only
// in these accessors.
type Buffer []float32

// NewBuffer allocates a zeroed buffer of the minimum accepted length, for
// standalone harnesses and tests. Real hosts pass their own.
func NewBuffer() Buffer { return make(Buffer, MinLen) }

// Check verifies the buffer is long enough for every documented index.
func (b Buffer) Check() error {
	if len(b) < MinLen {
		return fmt.Errorf("exchange buffer has %d cells, need at least %d", len(b), MinLen)
	}
	return nil
}

// Command reads the command/status code, rounded to nearest as the Bladed
// convention requires for integer-valued cells.
func (b Buffer) Command() int { return int(math.Round(float64(b[RecCommand]))) }

func (b Buffer) SetCommand(c int) { b[RecCommand] = float32(c) }

func (b Buffer) Time() float64     { return float64(b[RecCurrentTime]) }
func (b Buffer) SetTime(t float64) { b[RecCurrentTime] = float32(t) }

func (b Buffer) Interval() float64      { return float64(b[RecCommunicationInterval]) }
func (b Buffer) SetInterval(dt float64) { b[RecCommunicationInterval] = float32(dt) }

func (b Buffer) RotorSpeed() float64     { return float64(b[RecMeasuredRotorSpeed]) }
func (b Buffer) SetRotorSpeed(w float64) { b[RecMeasuredRotorSpeed] = float32(w) }

func (b Buffer) DemandedGenTorque() float64       { return float64(b[RecDemandedGenTorque]) }
func (b Buffer) SetDemandedGenTorque(tau float64) { b[RecDemandedGenTorque] = float32(tau) }

// User reads user-defined slot n (1..10). The slots carry auxiliary
// configuration seeded by the host, e.g. a target speed or inertia.
func (b Buffer) User(n int) float64 {
	return float64(b[userIndex(n)])
}

func (b Buffer) SetUser(n int, v float64) {
	b[userIndex(n)] = float32(v)
}

func userIndex(n int) int {
	if n < 1 || n > 10 {
		panic(fmt.Sprintf("user variable slot %d out of range 1..10", n))
	}
	return RecUserVariable1 + n - 1
}
