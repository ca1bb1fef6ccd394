package kepler

import (
	"fmt"
	"math"

	"github.com/san-kum/stardyn/internal/dynamo"
)

const (
	// DefaultTol is the convergence tolerance on the eccentric anomaly,
	// in radians.
	DefaultTol = 1e-10

	// DefaultMaxIter caps the Newton-Raphson iterations. Exceeding it is
	// a hard failure, never a silently degraded result.
	DefaultMaxIter = 50
)

// SolveEccentric solves Kepler's equation M = E - e*sin(E) for the
// eccentric anomaly E by Newton-Raphson. The starting guess
// E0 = M + 0.85*e*sign(sin M) keeps the iteration stable up to
// eccentricities near 1 (Danby 1987).
func SolveEccentric(meanAnom, ecc, tol float64, maxIter int) (float64, error) {
	if ecc == 0 {
		return meanAnom, nil
	}

	e0 := meanAnom + 0.85*ecc
	if math.Sin(meanAnom) < 0 {
		e0 = meanAnom - 0.85*ecc
	}

	ei := e0
	for i := 0; i < maxIter; i++ {
		f := ei - ecc*math.Sin(ei) - meanAnom
		fp := 1 - ecc*math.Cos(ei)
		delta := f / fp
		ei -= delta
		if math.Abs(delta) < tol {
			return ei, nil
		}
	}

	return 0, &dynamo.NumericalError{
		Op:     "kepler",
		Time:   meanAnom,
		Detail: fmt.Sprintf("no convergence after %d iterations (e=%g)", maxIter, ecc),
		Err:    dynamo.ErrNonConvergence,
	}
}

// wrapMean reduces a mean anomaly to [0, 2*pi).
func wrapMean(m float64) float64 {
	m = math.Mod(m, 2*math.Pi)
	if m < 0 {
		m += 2 * math.Pi
	}
	return m
}
