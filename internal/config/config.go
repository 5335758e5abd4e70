package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pullswitch/internal/integrators"
	"github.com/san-kum/pullswitch/internal/pull"
	"github.com/san-kum/pullswitch/internal/rope"
)

const (
	DefaultDt       = 1.0 / 60.0
	DefaultDuration = 6.0
	DefaultFPS      = 60
	DefaultCellX    = 8.0
	DefaultCellY    = 16.0
)

type Config struct {
	Tuning   TuningConfig   `yaml:"tuning"`
	Bounce   BounceConfig   `yaml:"bounce"`
	Sim      SimConfig      `yaml:"sim"`
	Script   ScriptConfig   `yaml:"script"`
	Geometry GeometryConfig `yaml:"geometry"`
	Display  DisplayConfig  `yaml:"display"`
}

type TuningConfig struct {
	MaxPull         float64 `yaml:"max_pull"`
	TriggerDistance float64 `yaml:"trigger_distance"`
	MaxSide         float64 `yaml:"max_side"`
	SlackLimit      float64 `yaml:"slack_limit"`
	UpFactor        float64 `yaml:"up_factor"`
	ResistanceExp   float64 `yaml:"resistance_exp"`
	TensionDivisor  float64 `yaml:"tension_divisor"`
	ReleaseKickX    float64 `yaml:"release_kick_x"`
	ReleaseKickY    float64 `yaml:"release_kick_y"`
	Stiffness       float64 `yaml:"stiffness"`
	Damping         float64 `yaml:"damping"`
	Gravity         float64 `yaml:"gravity"`
	Epsilon         float64 `yaml:"epsilon"`
	MaxStep         float64 `yaml:"max_step"`
	Trigger         string  `yaml:"trigger"`
}

type BounceConfig struct {
	Window    float64          `yaml:"window"`
	Keyframes []KeyframeConfig `yaml:"keyframes"`
}

type KeyframeConfig struct {
	Delay     float64 `yaml:"delay"`
	Target    float64 `yaml:"target"`
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
}

type SimConfig struct {
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Integrator string  `yaml:"integrator"`
}

// ScriptConfig describes the scripted pull used by headless runs.
type ScriptConfig struct {
	DX   float64 `yaml:"dx"`
	DY   float64 `yaml:"dy"`
	Hold float64 `yaml:"hold"`
	Ramp float64 `yaml:"ramp"`
}

type GeometryConfig struct {
	TopLength float64 `yaml:"top_length"`
	Width     float64 `yaml:"width"`
	KnobSize  float64 `yaml:"knob_size"`
}

// DisplayConfig holds host settings. CellX and CellY are layout units per
// terminal cell.
type DisplayConfig struct {
	CellX float64 `yaml:"cell_x"`
	CellY float64 `yaml:"cell_y"`
	FPS   int     `yaml:"fps"`
	Sound bool    `yaml:"sound"`
}

func DefaultConfig() *Config {
	t := pull.DefaultTuning()
	g := rope.DefaultGeometry()

	cfg := &Config{
		Tuning: TuningConfig{
			MaxPull:         t.MaxPull,
			TriggerDistance: t.TriggerDistance,
			MaxSide:         t.MaxSide,
			SlackLimit:      t.SlackLimit,
			UpFactor:        t.UpFactor,
			ResistanceExp:   t.ResistanceExp,
			TensionDivisor:  t.TensionDivisor,
			ReleaseKickX:    t.ReleaseKickX,
			ReleaseKickY:    t.ReleaseKickY,
			Stiffness:       t.Stiffness,
			Damping:         t.Damping,
			Gravity:         t.Gravity,
			Epsilon:         t.Epsilon,
			MaxStep:         t.MaxStep,
			Trigger:         string(t.Trigger),
		},
		Bounce: BounceConfig{Window: t.Bounce.Window},
		Sim: SimConfig{
			Dt:         DefaultDt,
			Duration:   DefaultDuration,
			Integrator: integrators.Default,
		},
		Script: ScriptConfig{DX: 12, DY: 400, Hold: 0.2, Ramp: 0.3},
		Geometry: GeometryConfig{
			TopLength: g.TopLength,
			Width:     g.Width,
			KnobSize:  g.KnobSize,
		},
		Display: DisplayConfig{
			CellX: DefaultCellX,
			CellY: DefaultCellY,
			FPS:   DefaultFPS,
		},
	}
	for _, kf := range t.Bounce.Keyframes {
		cfg.Bounce.Keyframes = append(cfg.Bounce.Keyframes, KeyframeConfig(kf))
	}
	return cfg
}

// Load reads a yaml file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
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

func (c *Config) PullTuning() pull.Tuning {
	t := c.Tuning
	out := pull.Tuning{
		MaxPull:         t.MaxPull,
		TriggerDistance: t.TriggerDistance,
		MaxSide:         t.MaxSide,
		SlackLimit:      t.SlackLimit,
		UpFactor:        t.UpFactor,
		ResistanceExp:   t.ResistanceExp,
		TensionDivisor:  t.TensionDivisor,
		ReleaseKickX:    t.ReleaseKickX,
		ReleaseKickY:    t.ReleaseKickY,
		Stiffness:       t.Stiffness,
		Damping:         t.Damping,
		Gravity:         t.Gravity,
		Epsilon:         t.Epsilon,
		MaxStep:         t.MaxStep,
		Trigger:         pull.TriggerMode(t.Trigger),
		Bounce:          pull.BounceConfig{Window: c.Bounce.Window},
	}
	for _, kf := range c.Bounce.Keyframes {
		out.Bounce.Keyframes = append(out.Bounce.Keyframes, pull.BounceKeyframe(kf))
	}
	return out
}

func (c *Config) RopeGeometry() rope.Geometry {
	return rope.Geometry{
		TopLength: c.Geometry.TopLength,
		Width:     c.Geometry.Width,
		KnobSize:  c.Geometry.KnobSize,
	}
}

func (c *Config) Validate() error {
	if err := c.PullTuning().Validate(); err != nil {
		return err
	}
	if c.Sim.Dt <= 0 {
		return fmt.Errorf("config: sim.dt must be positive, got %v", c.Sim.Dt)
	}
	if c.Sim.Duration <= 0 {
		return fmt.Errorf("config: sim.duration must be positive, got %v", c.Sim.Duration)
	}
	if _, err := integrators.ForHost(c.Sim.Integrator); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Script.Hold < 0 || c.Script.Ramp < 0 {
		return fmt.Errorf("config: script hold and ramp must not be negative")
	}
	if c.Geometry.TopLength <= 0 || c.Geometry.Width <= 0 || c.Geometry.KnobSize <= 0 {
		return fmt.Errorf("config: geometry sizes must be positive")
	}
	if c.Display.CellX <= 0 || c.Display.CellY <= 0 {
		return fmt.Errorf("config: display cell size must be positive")
	}
	if c.Display.FPS <= 0 {
		return fmt.Errorf("config: display.fps must be positive, got %d", c.Display.FPS)
	}
	return nil
}
