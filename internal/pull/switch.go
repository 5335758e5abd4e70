package pull

import (
	"time"

	"github.com/san-kum/pullswitch/internal/dynamo"
)

// Switch owns the pull state and wires host callbacks to the tracker and the
// simulator. Toggle listeners run synchronously inside DragEnd.
type Switch struct {
	state     State
	tuning    Tuning
	tracker   *Tracker
	sim       *Simulator
	listeners []func(isOn bool)
}

func New(t Tuning) (*Switch, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Switch{
		tuning:  t,
		tracker: NewTracker(t),
		sim:     NewSimulator(t),
	}, nil
}

func (s *Switch) OnToggle(fn func(isOn bool)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Switch) DragBegin() {
	s.tracker.Begin(&s.state)
	s.sim.Suspend(&s.state)
}

// DragChange takes the cumulative translation since DragBegin.
func (s *Switch) DragChange(dx, dy float64) {
	if !s.state.IsDragging {
		s.DragBegin()
	}
	s.tracker.Change(&s.state, dx, dy)
}

func (s *Switch) DragEnd() {
	if !s.state.IsDragging {
		return
	}
	toggled := s.tracker.End(&s.state)
	s.sim.Release(&s.state)
	if toggled {
		for _, fn := range s.listeners {
			fn(s.state.IsOn)
		}
	}
}

// Tick is the animation-frame callback.
func (s *Switch) Tick(now time.Time) {
	s.sim.Tick(&s.state, now)
}

// Step advances the simulation by an explicit dt, for hosts that keep their
// own clock.
func (s *Switch) Step(dt float64) {
	s.sim.Step(&s.state, dt)
}

func (s *Switch) Pose() Pose {
	return s.state.Pose()
}

func (s *Switch) Tuning() Tuning {
	return s.tuning
}

// SetTuning swaps the constants in place. The pose, mode and clock are kept;
// any running bounce is dropped.
func (s *Switch) SetTuning(t Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	integ := s.sim.integ
	last := s.sim.lastTick
	s.tuning = t
	s.tracker = NewTracker(t)
	s.sim = NewSimulator(t)
	s.sim.integ = integ
	s.sim.lastTick = last
	s.state.Bounce = 0
	s.state.clampOffsets(t)
	return nil
}

func (s *Switch) SetIntegrator(integ dynamo.Integrator) {
	s.sim.SetIntegrator(integ)
}
