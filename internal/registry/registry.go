// Package registry assembles the default stage tables. This is the only
// place implementations are registered: adding a stage means adding one
// entry here, never touching the dispatch machinery.
package registry

import (
	"github.com/san-kum/turbsim/internal/stage"
	"github.com/san-kum/turbsim/internal/stages/control"
	"github.com/san-kum/turbsim/internal/stages/drivetrain"
	"github.com/san-kum/turbsim/internal/stages/entry"
	"github.com/san-kum/turbsim/internal/stages/flowmodel"
	"github.com/san-kum/turbsim/internal/stages/hostif"
	"github.com/san-kum/turbsim/internal/stages/integrator"
	"github.com/san-kum/turbsim/internal/stages/motion"
)

// Set holds one table per stage kind.
type Set struct {
	Control    *stage.Table[stage.ControlFunc]
	Drivetrain *stage.Table[stage.DrivetrainFunc]
	FlowModel  *stage.Table[stage.FlowModelFunc]
	Motion     *stage.Table[stage.MotionFunc]
	Integrator *stage.Table[stage.IntegratorFunc]
	Interface  *stage.Table[stage.InterfaceFunc]
	Entry      *stage.Table[stage.EntryFunc]
}

// Default builds a fresh set of tables. Each call constructs new stage
// instances, so per-stage state (first-run flags, bound pointers,
// accumulators) is scoped to the set and not shared between bridges.
func Default() (*Set, error) {
	controlTable, err := stage.NewTable(stage.KindTurbineControl,
		stage.Entry[stage.ControlFunc]{Name: "kw2_turbine_control", Fn: control.NewKW2()},
		stage.Entry[stage.ControlFunc]{Name: "kw2_history_turbine_control", Fn: control.NewKW2History()},
		stage.Entry[stage.ControlFunc]{Name: "pi_speed_turbine_control", Fn: control.NewPISpeed()},
	)
	if err != nil {
		return nil, err
	}

	drivetrainTable, err := stage.NewTable(stage.KindDrivetrain,
		stage.Entry[stage.DrivetrainFunc]{Name: "example_drivetrain", Fn: drivetrain.NewExample()},
	)
	if err != nil {
		return nil, err
	}

	flowTable, err := stage.NewTable(stage.KindFlowModel,
		stage.Entry[stage.FlowModelFunc]{Name: "example_flow_model", Fn: flowmodel.NewExample()},
	)
	if err != nil {
		return nil, err
	}

	motionTable, err := stage.NewTable(stage.KindMotion,
		stage.Entry[stage.MotionFunc]{Name: "eom_simple_ball", Fn: motion.NewBall()},
		stage.Entry[stage.MotionFunc]{Name: "example_turbine_eom", Fn: motion.NewTurbine()},
	)
	if err != nil {
		return nil, err
	}

	integratorTable, err := stage.NewTable(stage.KindIntegrator,
		stage.Entry[stage.IntegratorFunc]{Name: "euler_numerical_integrator", Fn: integrator.NewEuler()},
		stage.Entry[stage.IntegratorFunc]{Name: "rk4_numerical_integrator", Fn: integrator.NewRK4()},
	)
	if err != nil {
		return nil, err
	}

	interfaceTable, err := stage.NewTable(stage.KindHostInterface,
		stage.Entry[stage.InterfaceFunc]{Name: "example_interface", Fn: hostif.NewExample()},
	)
	if err != nil {
		return nil, err
	}

	entryTable, err := stage.NewTable(stage.KindBridgeEntry,
		stage.Entry[stage.EntryFunc]{Name: "example_entry", Fn: entry.NewExample()},
	)
	if err != nil {
		return nil, err
	}

	return &Set{
		Control:    controlTable,
		Drivetrain: drivetrainTable,
		FlowModel:  flowTable,
		Motion:     motionTable,
		Integrator: integratorTable,
		Interface:  interfaceTable,
		Entry:      entryTable,
	}, nil
}
