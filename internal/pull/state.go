package pull

import "math"

// State is the mutable pose shared by the tracker and the simulator.
// The tracker writes it while IsDragging is set; the simulator otherwise.
type State struct {
	VerticalOffset float64
	LateralOffset  float64
	Bounce         float64
	VelocityX      float64
	VelocityY      float64
	IsDragging     bool
	IsOn           bool
}

// Pose is the read-only snapshot handed to renderers.
type Pose struct {
	VerticalOffset float64 `json:"vertical_offset"`
	LateralOffset  float64 `json:"lateral_offset"`
	Bounce         float64 `json:"bounce"`
	VelocityX      float64 `json:"velocity_x"`
	VelocityY      float64 `json:"velocity_y"`
	IsDragging     bool    `json:"is_dragging"`
	IsOn           bool    `json:"is_on"`
}

func (s State) Pose() Pose {
	return Pose(s)
}

// KnobY is how far below its rest point the knob is drawn.
func (p Pose) KnobY() float64 {
	return p.VerticalOffset + p.Bounce
}

// AtRest reports an exact rest pose: no offset, no motion, no bounce.
func (p Pose) AtRest() bool {
	return !p.IsDragging &&
		p.VerticalOffset == 0 && p.LateralOffset == 0 &&
		p.VelocityX == 0 && p.VelocityY == 0 &&
		p.Bounce == 0
}

func (s *State) clampOffsets(t Tuning) {
	s.VerticalOffset = clamp(s.VerticalOffset, -t.SlackLimit, t.MaxPull)
	s.LateralOffset = clamp(s.LateralOffset, -t.MaxSide, t.MaxSide)
}

func (s *State) stopMotion() {
	s.VelocityX = 0
	s.VelocityY = 0
	s.Bounce = 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
