// Package physics provides the dynamical models behind the pull switch.
//
// [RopeAxis] implements [dynamo.System] for a single axis of the knob and
// [dynamo.Hamiltonian] for monitoring how much energy is left to settle:
//
//	axis := physics.NewRopeAxis(34, 8.5, 58)
//	if h, ok := dynamo.System(axis).(dynamo.Hamiltonian); ok {
//	    energy := h.Energy(state)
//	}
package physics
