package integrators

import "github.com/san-kum/pullswitch/internal/dynamo"

var (
	rk4Nodes   = [4]float64{0, 0.5, 0.5, 1}
	rk4Weights = [4]float64{1, 2, 2, 1}
)

// RK4 is the classic four-stage Runge-Kutta step. Stage buffers are reused
// between calls, so one RK4 must not be shared by concurrent runs.
type RK4 struct {
	k     [4]dynamo.State
	probe dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) grow(n int) {
	if len(r.probe) == n {
		return
	}
	for s := range r.k {
		r.k[s] = make(dynamo.State, n)
	}
	r.probe = make(dynamo.State, n)
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	r.grow(n)

	for s := range r.k {
		probe := x
		if s > 0 {
			h := rk4Nodes[s] * dt
			for i := 0; i < n; i++ {
				r.probe[i] = x[i] + h*r.k[s-1][i]
			}
			probe = r.probe
		}
		copy(r.k[s], dyn.Derive(probe, u, t+rk4Nodes[s]*dt))
	}

	result := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for s := range r.k {
			sum += rk4Weights[s] * r.k[s][i]
		}
		result[i] = x[i] + dt/6*sum
	}
	return result
}
