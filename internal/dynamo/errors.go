package dynamo

import "errors"

var (
	// ErrUnknownIntegrator indicates an integrator name with no registered constructor.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrUnsettledIntegrator indicates an integrator that never brings the rope to rest.
	ErrUnsettledIntegrator = errors.New("dynamo: integrator does not settle")
)
