// Package ltte implements the light travel time (Roemer delay)
// correction shared by both dynamics methods. Light observed at t_obs
// was emitted at t_emit = t_obs - w(t_emit)/c, where w is the emitter's
// line-of-sight offset from the system barycenter, positive away from
// the observer. Position depends on the unknown emission time, so the
// correction is a fixed point solved by direct iteration; stellar-scale
// delays converge in two or three passes.
package ltte

import (
	"fmt"

	"github.com/san-kum/stardyn/internal/dynamo"
)

const (
	// DefaultTol is the convergence tolerance on the emission time, in
	// days. Delays are of order 1e-4 d, so 1e-12 d leaves the correction
	// exact to well below the propagators' numerical noise.
	DefaultTol = 1e-12

	DefaultMaxIter = 30
)

// EmissionTime solves the retarded-time fixed point for one observed
// time. losOffset evaluates the emitter's barycentric w coordinate
// (solRad) at a candidate emission time; any error it returns aborts
// the solve unchanged.
func EmissionTime(observed float64, losOffset func(t float64) (float64, error), tol float64, maxIter int) (float64, error) {
	temit := observed
	for i := 0; i < maxIter; i++ {
		w, err := losOffset(temit)
		if err != nil {
			return 0, err
		}
		next := observed - w/dynamo.CLight
		if abs(next-temit) < tol {
			return next, nil
		}
		temit = next
	}
	return 0, &dynamo.NumericalError{
		Op:     "ltte",
		Time:   observed,
		Detail: fmt.Sprintf("retarded time did not converge after %d iterations", maxIter),
		Err:    dynamo.ErrNonConvergence,
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
