package config

import (
	"sort"

	"github.com/san-kum/pullswitch/internal/pull"
)

// Presets adjust the default configuration. Each one is applied to a fresh
// DefaultConfig, so callers may modify what GetPreset returns.
var Presets = map[string]func(c *Config){
	"default": func(c *Config) {},
	"classic": func(c *Config) {
		c.Tuning.MaxPull = 160
		c.Tuning.TriggerDistance = 95
	},
	"stiff": func(c *Config) {
		c.Tuning.Stiffness = 60
		c.Tuning.Damping = 12
		c.Tuning.MaxSide = 20
	},
	"loose": func(c *Config) {
		c.Tuning.Stiffness = 20
		c.Tuning.Damping = 5
		c.Tuning.UpFactor = 0.5
	},
	"peak": func(c *Config) {
		c.Tuning.Trigger = string(pull.TriggerPeak)
	},
}

var presetDescriptions = map[string]string{
	"default": "max pull 140, trigger 90, toggles on release",
	"classic": "max pull 160, trigger 95",
	"stiff":   "tighter springs, less sway",
	"loose":   "softer springs, more slack",
	"peak":    "toggles when the deepest pull crossed the trigger",
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func DescribePreset(name string) string {
	return presetDescriptions[name]
}
