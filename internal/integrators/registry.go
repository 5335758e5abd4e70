package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/pullswitch/internal/dynamo"
)

const Default = "semi-implicit"

var constructors = map[string]func() dynamo.Integrator{
	"semi-implicit": func() dynamo.Integrator { return NewSemiImplicit() },
	"euler":         func() dynamo.Integrator { return NewEuler() },
	"rk4":           func() dynamo.Integrator { return NewRK4() },
}

// ByName returns a fresh integrator. An empty name selects Default.
func ByName(name string) (dynamo.Integrator, error) {
	if name == "" {
		name = Default
	}
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

// settling lists the integrators that bring the rope to rest. Explicit Euler
// gains energy at the default stiffness, so only comparison runs use it.
var settling = map[string]bool{
	"semi-implicit": true,
	"rk4":           true,
}

// ForHost is ByName restricted to integrators that settle.
func ForHost(name string) (dynamo.Integrator, error) {
	if name == "" {
		name = Default
	}
	if _, ok := constructors[name]; ok && !settling[name] {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnsettledIntegrator, name)
	}
	return ByName(name)
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Interactive returns the sorted names ForHost accepts.
func Interactive() []string {
	names := make([]string, 0, len(settling))
	for name := range settling {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
