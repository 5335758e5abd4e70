// Package dynamo provides the numerical primitives shared by the pull switch
// physics.
//
// The package defines the small vocabulary used to integrate the rope axes:
//
//   - [State]: vector representing system state, positions first then velocities
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical stepper interface
//   - [Hamiltonian]: optional energy accessor for a [System]
//
// # Example
//
//	axis := physics.NewRopeAxis(34, 8.5, 58)
//	integ := integrators.NewSemiImplicit()
//	x := integ.Step(axis, dynamo.State{140, -308}, nil, 0, 1.0/60)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT thread-safe. Use one per
// simulation loop.
package dynamo
