package pull

import (
	"math"
	"time"

	"github.com/san-kum/pullswitch/internal/dynamo"
	"github.com/san-kum/pullswitch/internal/integrators"
	"github.com/san-kum/pullswitch/internal/physics"
)

// Simulator settles the rope once the knob is released. It is a no-op while
// the user holds the knob.
type Simulator struct {
	tuning   Tuning
	integ    dynamo.Integrator
	lateral  *physics.RopeAxis
	vertical *physics.RopeAxis
	bounce   *BounceSequence
	lastTick time.Time
}

func NewSimulator(t Tuning) *Simulator {
	return &Simulator{
		tuning:   t,
		integ:    integrators.NewSemiImplicit(),
		lateral:  physics.NewRopeAxis(t.Stiffness, t.Damping, 0),
		vertical: physics.NewRopeAxis(t.Stiffness, t.Damping, t.Gravity),
		bounce:   NewBounceSequence(t.Bounce, t.Epsilon),
	}
}

func (m *Simulator) SetIntegrator(integ dynamo.Integrator) {
	m.integ = integ
}

// Suspend discards all simulation momentum; called when a drag begins.
func (m *Simulator) Suspend(s *State) {
	s.stopMotion()
	m.bounce.Stop()
}

// Release starts the bounce pulse if the knob was actually displaced.
func (m *Simulator) Release(s *State) {
	if s.VerticalOffset == 0 && s.LateralOffset == 0 {
		return
	}
	m.bounce.Start()
}

// Tick steps by the wall time since the previous tick, capped at MaxStep.
// The first tick only primes the clock.
func (m *Simulator) Tick(s *State, now time.Time) {
	last := m.lastTick
	m.lastTick = now
	if last.IsZero() || s.IsDragging {
		return
	}
	m.Step(s, now.Sub(last).Seconds())
}

func (m *Simulator) Step(s *State, dt float64) {
	if s.IsDragging {
		return
	}
	dt = clamp(dt, 0, m.tuning.MaxStep)
	if dt == 0 {
		return
	}

	m.stepAxes(s, dt)
	s.Bounce = m.bounce.Step(dt)
}

func (m *Simulator) stepAxes(s *State, dt float64) {
	x := m.integ.Step(m.lateral, dynamo.State{s.LateralOffset, s.VelocityX}, nil, 0, dt)
	y := m.integ.Step(m.vertical, dynamo.State{s.VerticalOffset, s.VelocityY}, nil, 0, dt)
	if !x.IsValid() || !y.IsValid() {
		s.LateralOffset, s.VelocityX = 0, 0
		s.VerticalOffset, s.VelocityY = 0, 0
		return
	}

	eps := m.tuning.Epsilon
	s.LateralOffset, s.VelocityX = jitterFloor(x[0], x[1], eps)
	s.VerticalOffset, s.VelocityY = jitterFloor(y[0], y[1], eps)
	s.clampOffsets(m.tuning)
}

// Advance is the pure form of one axis step: it returns the state after dt
// seconds without touching the bounce sequence.
func Advance(s State, t Tuning, dt float64) State {
	if s.IsDragging {
		return s
	}
	dt = clamp(dt, 0, t.MaxStep)
	if dt == 0 {
		return s
	}
	NewSimulator(t).stepAxes(&s, dt)
	return s
}

func jitterFloor(pos, vel, eps float64) (float64, float64) {
	if math.Abs(pos) < eps && math.Abs(vel) < eps {
		return 0, 0
	}
	return pos, vel
}
