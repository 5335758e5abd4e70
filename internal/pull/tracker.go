package pull

import "math"

// Tracker turns a drag into a pull. It never accumulates per-event deltas:
// every change is recomputed from the cumulative translation since the drag
// began, so the resistance curve sees the whole finger travel.
type Tracker struct {
	tuning Tuning
	peak   float64
}

func NewTracker(t Tuning) *Tracker {
	return &Tracker{tuning: t}
}

func (g *Tracker) Begin(s *State) {
	s.IsDragging = true
	s.stopMotion()
	g.peak = math.Inf(-1)
}

func (g *Tracker) Change(s *State, dx, dy float64) {
	if !s.IsDragging {
		g.Begin(s)
	}
	// A broken translation counts as no travel.
	if !finite(dx) {
		dx = 0
	}
	if !finite(dy) {
		dy = 0
	}
	t := g.tuning

	s.VerticalOffset = ResistedPull(t, dy)
	s.VerticalOffset = clamp(s.VerticalOffset, -t.SlackLimit, t.MaxPull)

	// The rope is tauter when stretched, leaving less sideways freedom.
	tension := 1 + math.Max(0, s.VerticalOffset)/t.TensionDivisor
	s.LateralOffset = clamp(dx/tension, -t.MaxSide, t.MaxSide)

	s.stopMotion()
	g.peak = math.Max(g.peak, s.VerticalOffset)
}

// End releases the knob and reports whether the switch flipped. Velocities
// are seeded from the held displacement; offsets are left for the simulator.
func (g *Tracker) End(s *State) bool {
	if !s.IsDragging {
		return false
	}
	s.IsDragging = false

	toggled := g.triggerOffset(s) > g.tuning.TriggerDistance
	if toggled {
		s.IsOn = !s.IsOn
	}

	s.VelocityX = -s.LateralOffset * g.tuning.ReleaseKickX
	s.VelocityY = -s.VerticalOffset * g.tuning.ReleaseKickY
	return toggled
}

func (g *Tracker) triggerOffset(s *State) float64 {
	if g.tuning.Trigger == TriggerPeak && !math.IsInf(g.peak, -1) {
		return g.peak
	}
	return s.VerticalOffset
}

// ResistedPull maps cumulative vertical finger travel to rope travel:
// downward travel goes through a concave resistance curve capped at MaxPull,
// upward travel only buys a fraction of itself as slack.
func ResistedPull(t Tuning, dy float64) float64 {
	down := math.Max(0, dy)
	up := math.Min(0, dy) * t.UpFactor
	resisted := math.Pow(down, t.ResistanceExp)
	return math.Min(resisted, t.MaxPull) + up
}
