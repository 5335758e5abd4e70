package physics

import "github.com/san-kum/pullswitch/internal/dynamo"

const (
	DefaultStiffness = 34.0
	DefaultDamping   = 8.5
	DefaultGravity   = 58.0
)

// RopeAxis is one axis of the knob hanging from the rope: a unit-mass damped
// spring pulled toward 0. Gravity is only felt on the slack side (x < 0),
// which drops a lifted knob faster than the spring alone would.
//
// State layout: [pos, vel]. Control is ignored.
type RopeAxis struct {
	Stiffness float64
	Damping   float64
	Gravity   float64
}

func NewRopeAxis(stiffness, damping, gravity float64) *RopeAxis {
	return &RopeAxis{
		Stiffness: stiffness,
		Damping:   damping,
		Gravity:   gravity,
	}
}

func (r *RopeAxis) StateDim() int   { return 2 }
func (r *RopeAxis) ControlDim() int { return 0 }

func (r *RopeAxis) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	pos, vel := x[0], x[1]
	return dynamo.State{vel, r.Accel(pos, vel)}
}

func (r *RopeAxis) Accel(pos, vel float64) float64 {
	gravity := 0.0
	if pos < 0 {
		gravity = r.Gravity
	}
	return -r.Stiffness*pos - r.Damping*vel + gravity
}

// Energy is the spring plus kinetic energy. The one-sided gravity term is
// left out so the value is zero exactly at rest.
func (r *RopeAxis) Energy(x dynamo.State) float64 {
	pos, vel := x[0], x[1]
	return 0.5*r.Stiffness*pos*pos + 0.5*vel*vel
}
