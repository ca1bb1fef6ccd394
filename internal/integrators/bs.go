package integrators

import (
	"math"

	"github.com/san-kum/stardyn/internal/dynamo"
)

// stepSequence is the even sub-step counts of the modified midpoint
// method; the extrapolation table is polynomial in (dt/n)^2.
var stepSequence = []int{2, 4, 6, 8, 10, 12, 14, 16}

// BulirschStoer is the extrapolation stepper behind the bs N-body
// method variant: modified midpoint integrations at increasing sub-step
// counts, Richardson-extrapolated to zero step size.
type BulirschStoer struct {
	grow   float64
	shrink float64
}

func NewBulirschStoer() *BulirschStoer {
	return &BulirschStoer{
		grow:   1.5,
		shrink: 0.5,
	}
}

func (b *BulirschStoer) Step(sys dynamo.System, x dynamo.State, t, dt, tol float64) (dynamo.State, float64, float64) {
	n := len(x)

	// table[k] holds the k-th extrapolated estimate, refined in place
	// by Neville's scheme as rows arrive.
	table := make([]dynamo.State, len(stepSequence))
	h2 := make([]float64, len(stepSequence))

	scale := func(i int) float64 {
		return math.Abs(x[i]) + math.Abs(dt) + 1e-10
	}

	for k, nsub := range stepSequence {
		table[k] = b.midpoint(sys, x, t, dt, nsub)
		h := dt / float64(nsub)
		h2[k] = h * h

		for j := k - 1; j >= 0; j-- {
			factor := h2[j] / (h2[j] - h2[k])
			prev := table[j]
			next := make(dynamo.State, n)
			for i := 0; i < n; i++ {
				next[i] = table[j+1][i] + (table[j+1][i]-prev[i])*(factor-1)
			}
			table[j] = next
		}

		if k == 0 {
			continue
		}
		errMax := 0.0
		for i := 0; i < n; i++ {
			errMax = math.Max(errMax, math.Abs(table[0][i]-table[1][i])/scale(i))
		}
		errRatio := errMax / tol
		if errRatio <= 1 {
			dtNext := dt
			// Converged early: the step could have been larger.
			if k < len(stepSequence)/2 {
				dtNext = dt * b.grow
			}
			return table[0], errRatio, dtNext
		}
	}

	// The full sequence was not enough; report the last estimate and a
	// smaller step for the retry.
	errMax := 0.0
	for i := 0; i < n; i++ {
		errMax = math.Max(errMax, math.Abs(table[0][i]-table[1][i])/scale(i))
	}
	return table[0], math.Max(errMax/tol, math.Nextafter(1, 2)), dt * b.shrink
}

// midpoint runs the modified midpoint method across nsub sub-steps,
// with the usual averaged endpoint (Gragg smoothing).
func (b *BulirschStoer) midpoint(sys dynamo.System, x dynamo.State, t, dt float64, nsub int) dynamo.State {
	n := len(x)
	h := dt / float64(nsub)

	z0 := x.Clone()
	z1 := make(dynamo.State, n)
	d0 := sys.Derive(x, t)
	for i := 0; i < n; i++ {
		z1[i] = z0[i] + h*d0[i]
	}

	for m := 1; m < nsub; m++ {
		d := sys.Derive(z1, t+float64(m)*h)
		z2 := make(dynamo.State, n)
		for i := 0; i < n; i++ {
			z2[i] = z0[i] + 2*h*d[i]
		}
		z0, z1 = z1, z2
	}

	dEnd := sys.Derive(z1, t+dt)
	out := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		out[i] = 0.5 * (z0[i] + z1[i] + h*dEnd[i])
	}
	return out
}
