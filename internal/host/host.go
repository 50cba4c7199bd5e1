// Package host is a standalone stand-in for the external simulator: it
// drives the bridge per tick exactly the way the real host would. The rotor
// speed it presents is the plant speed integrated inside the wired stage
// chain on the previous tick, plus a sine perturbation standing in for
// turbulence, so the full control loop closes through the bridge.
package host

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/turbsim/internal/bridge"
	"github.com/san-kum/turbsim/internal/config"
	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/registry"
	"github.com/san-kum/turbsim/internal/swap"
)

// Tick is one completed exchange with the bridge.
type Tick struct {
	Time       float64
	RotorSpeed float64 // measurement presented to the controller (rad/s)
	PlantOmega float64 // plant speed after the wired chain integrated this tick
	Torque     float64 // demanded generator torque read back (N·m)
}

type Result struct {
	Times      []float64
	RotorSpeed []float64
	PlantOmega []float64
	Torque     []float64
	Ticks      int
}

type Harness struct {
	cfg     *config.Config
	adapter *bridge.Adapter
}

func New(cfg *config.Config) (*Harness, error) {
	reg, err := registry.Default()
	if err != nil {
		return nil, err
	}
	return &Harness{
		cfg:     cfg,
		adapter: bridge.New(reg, cfg.BuildArrays),
	}, nil
}

// Dynamic exposes the live dynamic array, for the monitor. Nil before the
// first tick.
func (h *Harness) Dynamic() *params.Array { return h.adapter.Dynamic() }

// measuredSpeed stands in for the external rotor-speed sensor: the plant
// speed carried over from the previous tick plus a sine perturbation, so
// the controller always has something to chase.
func measuredSpeed(plantOmega, t float64) float64 {
	const (
		amplitude = 0.5 // rad/s
		frequency = 0.2 // Hz
	)
	return plantOmega + amplitude*math.Sin(2*math.Pi*frequency*t)
}

func (h *Harness) Run(ctx context.Context) (*Result, error) {
	return h.RunWithCallback(ctx, nil)
}

// RunWithCallback runs the closed loop, invoking cb after every tick.
// Returning false from cb stops the run early without error.
func (h *Harness) RunWithCallback(ctx context.Context, cb func(Tick) bool) (*Result, error) {
	dt := h.cfg.Sim.Dt
	if dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %f", dt)
	}
	duration := h.cfg.Sim.Duration
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %f", duration)
	}

	steps := int(duration / dt)
	result := &Result{
		Times:      make([]float64, 0, steps),
		RotorSpeed: make([]float64, 0, steps),
		PlantOmega: make([]float64, 0, steps),
		Torque:     make([]float64, 0, steps),
	}

	buf := swap.NewBuffer()
	buf.SetInterval(dt)
	buf.SetUser(1, h.cfg.Control.OmegaTarget)
	buf.SetUser(2, h.cfg.Turbine.MomentOfInertia)

	t := 0.0
	plantOmega := h.cfg.Init.Omega
	var omegaCell *float64

	for t < duration {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		measured := measuredSpeed(plantOmega, t)
		buf.SetTime(t)
		buf.SetRotorSpeed(measured)
		buf.SetCommand(0)

		var status swap.Status
		h.adapter.Invoke(buf, &status, nil, nil, nil)
		if status != swap.OK {
			if err := h.adapter.Err(); err != nil {
				return result, fmt.Errorf("tick at t=%.2fs: %w", t, err)
			}
			return result, fmt.Errorf("tick at t=%.2fs failed with status %d", t, status)
		}

		// The interface stage integrated the plant through the wired
		// eom/flow-model chain; carry the resulting speed into the next
		// tick's measurement.
		if omegaCell == nil {
			var err error
			if omegaCell, err = h.adapter.Dynamic().Float("omega"); err != nil {
				return result, fmt.Errorf("plant state: %w", err)
			}
		}
		plantOmega = *omegaCell

		torque := buf.DemandedGenTorque()

		result.Times = append(result.Times, t)
		result.RotorSpeed = append(result.RotorSpeed, measured)
		result.PlantOmega = append(result.PlantOmega, plantOmega)
		result.Torque = append(result.Torque, torque)
		result.Ticks++

		if cb != nil && !cb(Tick{Time: t, RotorSpeed: measured, PlantOmega: plantOmega, Torque: torque}) {
			return result, nil
		}

		t += dt
	}

	return result, nil
}
