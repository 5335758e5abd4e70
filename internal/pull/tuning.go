package pull

import (
	"fmt"
	"math"
)

// TriggerMode selects which offset the toggle decision looks at.
type TriggerMode string

const (
	// TriggerRelease uses the offset held at the moment of release.
	TriggerRelease TriggerMode = "release"
	// TriggerPeak uses the largest offset reached during the drag.
	TriggerPeak TriggerMode = "peak"
)

// BounceKeyframe moves the bounce toward Target along a unit-mass spring
// once Delay seconds have passed since release.
type BounceKeyframe struct {
	Delay     float64
	Target    float64
	Stiffness float64
	Damping   float64
}

type BounceConfig struct {
	Keyframes []BounceKeyframe
	// Window bounds the whole sequence in seconds; bounce is forced to 0 after it.
	Window float64
}

type Tuning struct {
	MaxPull         float64
	TriggerDistance float64
	MaxSide         float64
	SlackLimit      float64

	UpFactor       float64
	ResistanceExp  float64
	TensionDivisor float64
	ReleaseKickX   float64
	ReleaseKickY   float64

	Stiffness float64
	Damping   float64
	Gravity   float64
	Epsilon   float64
	MaxStep   float64

	Trigger TriggerMode
	Bounce  BounceConfig
}

func DefaultBounce() BounceConfig {
	return BounceConfig{
		Keyframes: []BounceKeyframe{
			{Delay: 0, Target: 18, Stiffness: 240, Damping: 16},
			{Delay: 0.08, Target: 0, Stiffness: 260, Damping: 16},
		},
		Window: 1.2,
	}
}

func DefaultTuning() Tuning {
	return Tuning{
		MaxPull:         140,
		TriggerDistance: 90,
		MaxSide:         32,
		SlackLimit:      40,
		UpFactor:        0.35,
		ResistanceExp:   0.85,
		TensionDivisor:  60,
		ReleaseKickX:    4.5,
		ReleaseKickY:    2.2,
		Stiffness:       34,
		Damping:         8.5,
		Gravity:         58,
		Epsilon:         0.05,
		MaxStep:         1.0 / 30.0,
		Trigger:         TriggerRelease,
		Bounce:          DefaultBounce(),
	}
}

// SaturationPull is the downward finger travel beyond which the vertical
// offset is pinned at MaxPull.
func (t Tuning) SaturationPull() float64 {
	return math.Pow(t.MaxPull, 1/t.ResistanceExp)
}

func (t Tuning) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"max_pull", t.MaxPull},
		{"trigger_distance", t.TriggerDistance},
		{"max_side", t.MaxSide},
		{"tension_divisor", t.TensionDivisor},
		{"stiffness", t.Stiffness},
		{"epsilon", t.Epsilon},
		{"max_step", t.MaxStep},
	}
	for _, p := range positive {
		if !finite(p.value) || p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"slack_limit", t.SlackLimit},
		{"release_kick_x", t.ReleaseKickX},
		{"release_kick_y", t.ReleaseKickY},
		{"damping", t.Damping},
		{"gravity", t.Gravity},
	}
	for _, p := range nonNegative {
		if !finite(p.value) || p.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidTuning, p.name, p.value)
		}
	}

	if !finite(t.UpFactor) || t.UpFactor < 0 || t.UpFactor > 1 {
		return fmt.Errorf("%w: up_factor must be in [0, 1], got %v", ErrInvalidTuning, t.UpFactor)
	}
	if !finite(t.ResistanceExp) || t.ResistanceExp <= 0 || t.ResistanceExp > 1 {
		return fmt.Errorf("%w: resistance_exp must be in (0, 1], got %v", ErrInvalidTuning, t.ResistanceExp)
	}
	if t.TriggerDistance >= t.MaxPull {
		return fmt.Errorf("%w: trigger_distance %v is unreachable with max_pull %v", ErrInvalidTuning, t.TriggerDistance, t.MaxPull)
	}
	switch t.Trigger {
	case TriggerRelease, TriggerPeak:
	default:
		return fmt.Errorf("%w: unknown trigger mode %q", ErrInvalidTuning, t.Trigger)
	}

	return t.Bounce.validate()
}

func (b BounceConfig) validate() error {
	if len(b.Keyframes) == 0 {
		return nil
	}
	if !finite(b.Window) || b.Window <= 0 {
		return fmt.Errorf("%w: bounce window must be positive, got %v", ErrInvalidTuning, b.Window)
	}
	prev := 0.0
	for i, kf := range b.Keyframes {
		if !finite(kf.Delay) || kf.Delay < prev {
			return fmt.Errorf("%w: bounce keyframe %d delay %v out of order", ErrInvalidTuning, i, kf.Delay)
		}
		if !finite(kf.Stiffness) || kf.Stiffness <= 0 {
			return fmt.Errorf("%w: bounce keyframe %d stiffness must be positive", ErrInvalidTuning, i)
		}
		if !finite(kf.Damping) || kf.Damping < 0 {
			return fmt.Errorf("%w: bounce keyframe %d damping must not be negative", ErrInvalidTuning, i)
		}
		if !finite(kf.Target) {
			return fmt.Errorf("%w: bounce keyframe %d target is not finite", ErrInvalidTuning, i)
		}
		prev = kf.Delay
	}
	if last := b.Keyframes[len(b.Keyframes)-1]; last.Target != 0 {
		return fmt.Errorf("%w: last bounce keyframe must target 0, got %v", ErrInvalidTuning, last.Target)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
