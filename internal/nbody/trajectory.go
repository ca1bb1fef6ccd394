package nbody

import (
	"fmt"
	"sort"

	"github.com/san-kum/stardyn/internal/dynamo"
)

// segment is one accepted integration step with the state and its
// derivative at both endpoints, enough for cubic Hermite interpolation
// of positions and velocities anywhere inside the step.
type segment struct {
	t0, t1 float64
	x0, x1 dynamo.State
	f0, f1 dynamo.State
}

// Trajectory is the dense output of an integration: piecewise-cubic in
// time, exact at step endpoints. Segments are stored in ascending t0
// order regardless of the direction they were integrated in.
type Trajectory struct {
	segs []segment
}

func (tr *Trajectory) add(s segment) {
	tr.segs = append(tr.segs, s)
}

func (tr *Trajectory) sortSegments() {
	sort.Slice(tr.segs, func(i, j int) bool { return tr.segs[i].t0 < tr.segs[j].t0 })
}

// Span returns the time interval the trajectory covers.
func (tr *Trajectory) Span() (float64, float64) {
	if len(tr.segs) == 0 {
		return 0, 0
	}
	return tr.segs[0].t0, tr.segs[len(tr.segs)-1].t1
}

// Eval interpolates the full state at time t, which must lie within
// the integrated span.
func (tr *Trajectory) Eval(t float64) (dynamo.State, error) {
	lo, hi := tr.Span()
	if len(tr.segs) == 0 || t < lo || t > hi {
		return nil, &dynamo.NumericalError{
			Op:     "integrate",
			Time:   t,
			Detail: fmt.Sprintf("time outside integrated span [%g, %g]", lo, hi),
			Err:    dynamo.ErrNonConvergence,
		}
	}

	i := sort.Search(len(tr.segs), func(k int) bool { return tr.segs[k].t1 >= t })
	if i == len(tr.segs) {
		i = len(tr.segs) - 1
	}
	s := &tr.segs[i]

	h := s.t1 - s.t0
	theta := (t - s.t0) / h

	// Cubic Hermite basis over [t0, t1]; matches state and derivative
	// at both endpoints.
	h00 := (1 + 2*theta) * (1 - theta) * (1 - theta)
	h10 := theta * (1 - theta) * (1 - theta)
	h01 := theta * theta * (3 - 2*theta)
	h11 := theta * theta * (theta - 1)

	out := make(dynamo.State, len(s.x0))
	for k := range out {
		out[k] = h00*s.x0[k] + h10*h*s.f0[k] + h01*s.x1[k] + h11*h*s.f1[k]
	}
	return out, nil
}
