package dynamo

// Result holds the trajectory arrays for every star of a hierarchy,
// in the hierarchy's flattened star order. All slices for a star share
// the length of the requested time grid. Positions are in solRad,
// velocities in solRad/d, times in days.
//
// BodyTimes holds, per star, the times the states correspond to: the
// light-time corrected emission times when the correction is enabled,
// otherwise exactly the requested times.
type Result struct {
	Names []string
	Times []float64

	BodyTimes [][]float64

	U, V, W    [][]float64
	VU, VV, VW [][]float64

	// EnergyDrift is the relative total-energy drift over the integrated
	// span. Zero for the analytic method.
	EnergyDrift float64
}

// NewResult allocates a Result for the given star names and time grid.
// The time grid is copied so the caller's slice is never aliased.
func NewResult(names []string, times []float64) *Result {
	r := &Result{
		Names:     append([]string(nil), names...),
		Times:     append([]float64(nil), times...),
		BodyTimes: make([][]float64, len(names)),
		U:         make([][]float64, len(names)),
		V:         make([][]float64, len(names)),
		W:         make([][]float64, len(names)),
		VU:        make([][]float64, len(names)),
		VV:        make([][]float64, len(names)),
		VW:        make([][]float64, len(names)),
	}
	n := len(times)
	for i := range names {
		r.BodyTimes[i] = make([]float64, n)
		r.U[i] = make([]float64, n)
		r.V[i] = make([]float64, n)
		r.W[i] = make([]float64, n)
		r.VU[i] = make([]float64, n)
		r.VV[i] = make([]float64, n)
		r.VW[i] = make([]float64, n)
	}
	return r
}

// BodyIndex returns the array index of the named star, or -1.
func (r *Result) BodyIndex(name string) int {
	for i, n := range r.Names {
		if n == name {
			return i
		}
	}
	return -1
}
