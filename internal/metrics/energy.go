package metrics

import (
	"github.com/san-kum/pullswitch/internal/dynamo"
	"github.com/san-kum/pullswitch/internal/pull"
)

// Energy is the mean spring-plus-kinetic energy left in the rope, summed
// over both axes. Dragged frames are skipped: the hand holds that energy.
type Energy struct {
	name        string
	axis        dynamo.Hamiltonian
	samples     int
	totalEnergy float64
}

// NewEnergy measures both axes with h, which sees [pos, vel] states.
func NewEnergy(h dynamo.Hamiltonian) *Energy {
	return &Energy{
		name: "mean_energy",
		axis: h,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(p pull.Pose, t float64) {
	if p.IsDragging {
		return
	}
	e.totalEnergy += e.axis.Energy(dynamo.State{p.LateralOffset, p.VelocityX})
	e.totalEnergy += e.axis.Energy(dynamo.State{p.VerticalOffset, p.VelocityY})
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}
