// Package nbody implements the numerical dynamics method: Newtonian
// point-mass gravitation integrated from initial conditions derived
// from the hierarchy's osculating elements at the reference epoch, with
// dense output so trajectories are queryable at arbitrary times inside
// the integrated span.
package nbody

import (
	"math"

	"github.com/san-kum/stardyn/internal/dynamo"
)

// System is the coupled gravitational ODE for n point masses. State
// layout is [u, v, w, vu, vv, vw] per body; index 2 of each block is
// the line-of-sight coordinate.
type System struct {
	masses []float64
	n      int
}

func NewSystem(masses []float64) *System {
	return &System{masses: append([]float64(nil), masses...), n: len(masses)}
}

func (s *System) Dim() int { return s.n * 6 }

// Derive evaluates d2r_i/dt2 = sum_j G*m_j*(r_j-r_i)/|r_j-r_i|^3.
// Pairs are visited once with the symmetric update. No softening: a
// coincident pair produces Inf, which the integration driver turns
// into a hard error rather than letting NaN propagate silently.
func (s *System) Derive(x dynamo.State, t float64) dynamo.State {
	dx := make(dynamo.State, len(x))

	for i := 0; i < s.n; i++ {
		dx[i*6] = x[i*6+3]
		dx[i*6+1] = x[i*6+4]
		dx[i*6+2] = x[i*6+5]
	}

	for i := 0; i < s.n; i++ {
		for j := i + 1; j < s.n; j++ {
			rx := x[j*6] - x[i*6]
			ry := x[j*6+1] - x[i*6+1]
			rz := x[j*6+2] - x[i*6+2]
			r2 := rx*rx + ry*ry + rz*rz
			r3inv := 1.0 / (r2 * math.Sqrt(r2))

			fij := dynamo.GMSun * s.masses[j] * r3inv
			dx[i*6+3] += fij * rx
			dx[i*6+4] += fij * ry
			dx[i*6+5] += fij * rz

			fji := dynamo.GMSun * s.masses[i] * r3inv
			dx[j*6+3] -= fji * rx
			dx[j*6+4] -= fji * ry
			dx[j*6+5] -= fji * rz
		}
	}

	return dx
}

// Energy returns the total mechanical energy, used as the drift
// diagnostic reported with every N-body result.
func (s *System) Energy(x dynamo.State) float64 {
	ke := 0.0
	pe := 0.0

	for i := 0; i < s.n; i++ {
		vx, vy, vz := x[i*6+3], x[i*6+4], x[i*6+5]
		ke += 0.5 * s.masses[i] * (vx*vx + vy*vy + vz*vz)

		for j := i + 1; j < s.n; j++ {
			rx := x[j*6] - x[i*6]
			ry := x[j*6+1] - x[i*6+1]
			rz := x[j*6+2] - x[i*6+2]
			r := math.Sqrt(rx*rx + ry*ry + rz*rz)
			pe -= dynamo.GMSun * s.masses[i] * s.masses[j] / r
		}
	}

	return ke + pe
}

// AngularMomentum returns the total angular momentum vector about the
// origin (the system barycenter for hierarchy-derived states).
func (s *System) AngularMomentum(x dynamo.State) [3]float64 {
	var l [3]float64
	for i := 0; i < s.n; i++ {
		px, py, pz := x[i*6], x[i*6+1], x[i*6+2]
		vx, vy, vz := x[i*6+3], x[i*6+4], x[i*6+5]
		l[0] += s.masses[i] * (py*vz - pz*vy)
		l[1] += s.masses[i] * (pz*vx - px*vz)
		l[2] += s.masses[i] * (px*vy - py*vx)
	}
	return l
}
