package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pullswitch/internal/dynamo"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int   { return 2 }
func (s *simpleDynamics) ControlDim() int { return 0 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x0 := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestSemiImplicitUpdatesVelocityFirst(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewSemiImplicit()

	x := integ.Step(dyn, dynamo.State{1.0, 0.0}, nil, 0, 0.1)

	// v' = 0 + (-1)(0.1) = -0.1, x' = 1 + (-0.1)(0.1) = 0.99
	if math.Abs(x[1]+0.1) > 1e-12 {
		t.Errorf("expected velocity -0.1, got %.6f", x[1])
	}
	if math.Abs(x[0]-0.99) > 1e-12 {
		t.Errorf("expected position 0.99, got %.6f", x[0])
	}
}

func TestSemiImplicitBoundedEnergy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewSemiImplicit()

	x := dynamo.State{1.0, 0.0}
	for i := 0; i < 10000; i++ {
		x = integ.Step(dyn, x, nil, 0, 0.05)
	}

	energy := 0.5 * (x[0]*x[0] + x[1]*x[1])
	if energy > 0.6 || energy < 0.4 {
		t.Errorf("expected energy to stay near 0.5, got %.4f", energy)
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		if _, err := ByName(name); err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
	}

	integ, err := ByName("")
	if err != nil {
		t.Fatalf("empty name: %v", err)
	}
	if _, ok := integ.(*SemiImplicit); !ok {
		t.Errorf("expected default SemiImplicit, got %T", integ)
	}

	_, err = ByName("leapfrog")
	if !errors.Is(err, dynamo.ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}

func TestForHost(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"", nil},
		{"semi-implicit", nil},
		{"rk4", nil},
		{"euler", dynamo.ErrUnsettledIntegrator},
		{"leapfrog", dynamo.ErrUnknownIntegrator},
	}

	for _, tt := range tests {
		_, err := ForHost(tt.name)
		if !errors.Is(err, tt.err) {
			t.Errorf("%q: expected %v, got %v", tt.name, tt.err, err)
		}
	}

	got := Interactive()
	if len(got) != 2 || got[0] != "rk4" || got[1] != "semi-implicit" {
		t.Errorf("expected [rk4 semi-implicit], got %v", got)
	}
}

func BenchmarkSemiImplicit(b *testing.B) {
	integrator := NewSemiImplicit()
	dyn := &simpleDynamics{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, nil, 0, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := &simpleDynamics{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, nil, 0, 0.01)
	}
}
