package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/turbsim/internal/params"
	"github.com/san-kum/turbsim/internal/switchboard"
)

const (
	DefaultDt        = 0.1
	DefaultDuration  = 10.0
	DefaultControlDt = 0.2
	DefaultK         = 1.2
	DefaultKp        = 80.0
	DefaultKi        = 4.0
	DefaultTarget    = 2.0
	DefaultInertia   = 50.0
	DefaultRadius    = 2.0
	DefaultArea      = 10.0
	DefaultRho       = 1.225
	DefaultSlowCq    = 0.05
	DefaultBrakeDrag = 450.0
	DefaultFlowSpeed = 8.0
)

type Config struct {
	Stages  StagesConfig   `yaml:"stages"`
	Turbine TurbineConfig  `yaml:"turbine"`
	Control ControlConfig  `yaml:"control"`
	Sim     SimConfig      `yaml:"sim"`
	Init    InitConfig     `yaml:"init"`
	History map[string]int `yaml:"history"`
}

// StagesConfig selects one implementation name per stage kind.
type StagesConfig struct {
	TurbineControl string `yaml:"turbine_control"`
	Drivetrain     string `yaml:"drivetrain"`
	FlowModel      string `yaml:"flow_model"`
	EOM            string `yaml:"eom"`
	Integrator     string `yaml:"integrator"`
	HostInterface  string `yaml:"host_interface"`
	BridgeEntry    string `yaml:"bridge_entry"`
}

type TurbineConfig struct {
	Radius          float64 `yaml:"radius"`
	Area            float64 `yaml:"area"`
	Rho             float64 `yaml:"rho"`
	SlowCq          float64 `yaml:"slow_cq"`
	MomentOfInertia float64 `yaml:"moment_of_inertia"`
	BrakeDrag       float64 `yaml:"brake_drag"`
}

type ControlConfig struct {
	K           float64 `yaml:"k"`
	Kp          float64 `yaml:"kp"`
	Ki          float64 `yaml:"ki"`
	OmegaTarget float64 `yaml:"omega_target"`
	ControlDt   float64 `yaml:"control_dt"`
}

type SimConfig struct {
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Gravity  float64 `yaml:"gravity"`
}

type InitConfig struct {
	Omega     float64 `yaml:"omega"`
	FlowSpeed float64 `yaml:"flow_speed"`
}

func DefaultConfig() *Config {
	return &Config{
		Stages: StagesConfig{
			TurbineControl: "kw2_turbine_control",
			Drivetrain:     "example_drivetrain",
			FlowModel:      "example_flow_model",
			EOM:            "example_turbine_eom",
			Integrator:     "rk4_numerical_integrator",
			HostInterface:  "example_interface",
			BridgeEntry:    "example_entry",
		},
		Turbine: TurbineConfig{
			Radius:          DefaultRadius,
			Area:            DefaultArea,
			Rho:             DefaultRho,
			SlowCq:          DefaultSlowCq,
			MomentOfInertia: DefaultInertia,
			BrakeDrag:       DefaultBrakeDrag,
		},
		Control: ControlConfig{
			K:           DefaultK,
			Kp:          DefaultKp,
			Ki:          DefaultKi,
			OmegaTarget: DefaultTarget,
			ControlDt:   DefaultControlDt,
		},
		Sim: SimConfig{
			Dt:       DefaultDt,
			Duration: DefaultDuration,
			Gravity:  9.81,
		},
		Init: InitConfig{
			FlowSpeed: DefaultFlowSpeed,
		},
		History: map[string]int{"omega": 10},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildArrays seeds the dynamic and fixed parameter arrays the stages read.
// The fixed array is sealed before it is returned; the dynamic one stays
// mutable through its bound pointers.
func (c *Config) BuildArrays() (*params.Array, *params.Array, error) {
	dyn := params.New("dynamic")
	dynFloats := map[string]float64{
		"omega":             c.Init.Omega,
		"omega_target":      c.Control.OmegaTarget,
		"theta":             0,
		"time_sec":          0,
		"flow_speed":        c.Init.FlowSpeed,
		"tau_flow":          0,
		"tau_flow_extract":  0,
		"drivetrain_drag":   0,
		"moment_of_inertia": c.Turbine.MomentOfInertia,
	}
	for name, v := range dynFloats {
		if _, err := dyn.DefineFloat(name, v); err != nil {
			return nil, nil, err
		}
	}
	if _, err := dyn.DefineInt("enable_brake_signal", 0); err != nil {
		return nil, nil, err
	}
	for name, depth := range c.History {
		if _, err := dyn.DefineHistory(name, depth); err != nil {
			return nil, nil, fmt.Errorf("history %q: %w", name, err)
		}
	}

	fixed := params.New("fixed")
	fixedFloats := map[string]float64{
		"dt_sec":         c.Sim.Dt,
		"control_dt_sec": c.Control.ControlDt,
		"k":              c.Control.K,
		"kp":             c.Control.Kp,
		"ki":             c.Control.Ki,
		"R":              c.Turbine.Radius,
		"A":              c.Turbine.Area,
		"rho":            c.Turbine.Rho,
		"slowCQ":         c.Turbine.SlowCq,
		"brake_drag":     c.Turbine.BrakeDrag,
		"gravity_acc_g":  c.Sim.Gravity,
	}
	for name, v := range fixedFloats {
		if _, err := fixed.DefineFloat(name, v); err != nil {
			return nil, nil, err
		}
	}
	fixedStrings := map[string]string{
		switchboard.KeyTurbineControl: c.Stages.TurbineControl,
		switchboard.KeyDrivetrain:     c.Stages.Drivetrain,
		switchboard.KeyFlowModel:      c.Stages.FlowModel,
		switchboard.KeyMotion:         c.Stages.EOM,
		switchboard.KeyIntegrator:     c.Stages.Integrator,
		switchboard.KeyHostInterface:  c.Stages.HostInterface,
		switchboard.KeyBridgeEntry:    c.Stages.BridgeEntry,
	}
	for name, v := range fixedStrings {
		if _, err := fixed.DefineString(name, v); err != nil {
			return nil, nil, err
		}
	}
	fixed.Seal()

	return dyn, fixed, nil
}
