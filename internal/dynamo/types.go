package dynamo

import "math"

// State is a flat vector over the phase space of a system. The N-body
// system lays it out as [x, y, z, vx, vy, vz] per body.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System describes an autonomous-or-not ODE dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// Stepper attempts a single integration step of size dt (which may be
// negative for backward integration). It returns the proposed state, the
// normalized local error ratio (accept the step when <= 1), and a
// suggested size for the next attempt. Steppers keep no per-call state
// beyond reusable scratch buffers, so a fresh instance per propagation
// keeps concurrent calls independent.
type Stepper interface {
	Step(sys System, x State, t, dt, tol float64) (State, float64, float64)
}

// Hamiltonian is implemented by systems that can report total energy,
// used to diagnose integration drift.
type Hamiltonian interface {
	Energy(x State) float64
}
