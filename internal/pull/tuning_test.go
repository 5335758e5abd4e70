package pull

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultTuningIsValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("default tuning rejected: %v", err)
	}
}

func TestTuningValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero max pull", func(t *Tuning) { t.MaxPull = 0 }},
		{"nan stiffness", func(t *Tuning) { t.Stiffness = math.NaN() }},
		{"negative damping", func(t *Tuning) { t.Damping = -1 }},
		{"negative slack", func(t *Tuning) { t.SlackLimit = -5 }},
		{"convex resistance", func(t *Tuning) { t.ResistanceExp = 1.2 }},
		{"zero resistance", func(t *Tuning) { t.ResistanceExp = 0 }},
		{"up factor above one", func(t *Tuning) { t.UpFactor = 1.5 }},
		{"unreachable trigger", func(t *Tuning) { t.TriggerDistance = t.MaxPull }},
		{"unknown trigger mode", func(t *Tuning) { t.Trigger = "hold" }},
		{"zero max step", func(t *Tuning) { t.MaxStep = 0 }},
		{"bounce without window", func(t *Tuning) { t.Bounce.Window = 0 }},
		{"bounce out of order", func(t *Tuning) { t.Bounce.Keyframes[1].Delay = -1 }},
		{"bounce never returns", func(t *Tuning) { t.Bounce.Keyframes[1].Target = 4 }},
		{"bounce zero stiffness", func(t *Tuning) { t.Bounce.Keyframes[0].Stiffness = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tun := DefaultTuning()
			tun.Bounce = DefaultBounce()
			tt.mutate(&tun)
			err := tun.Validate()
			if !errors.Is(err, ErrInvalidTuning) {
				t.Errorf("expected ErrInvalidTuning, got %v", err)
			}
		})
	}
}

func TestTuningWithoutBounceIsValid(t *testing.T) {
	tun := DefaultTuning()
	tun.Bounce = BounceConfig{}
	if err := tun.Validate(); err != nil {
		t.Errorf("expected bounce to be optional, got %v", err)
	}
}

func TestSaturationPull(t *testing.T) {
	tun := DefaultTuning()
	if got := ResistedPull(tun, tun.SaturationPull()); math.Abs(got-tun.MaxPull) > 1e-9 {
		t.Errorf("expected MaxPull at saturation travel, got %f", got)
	}
}
