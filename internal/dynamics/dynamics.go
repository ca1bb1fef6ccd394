// Package dynamics is the single entry point of the orbital dynamics
// engine. It validates the method/option combination, dispatches to the
// analytic or numerical propagator, and guarantees the output schema is
// identical regardless of which method produced it: same array lengths,
// same flattened star order, same units. Calling it directly and
// calling it through the configuration layer are numerically
// indistinguishable because the configuration layer only forwards
// values, never reconverts them.
package dynamics

import (
	"github.com/san-kum/stardyn/internal/dynamo"
	"github.com/san-kum/stardyn/internal/hierarchy"
	"github.com/san-kum/stardyn/internal/integrators"
	"github.com/san-kum/stardyn/internal/kepler"
	"github.com/san-kum/stardyn/internal/nbody"
)

// Options selects the dynamics method and whether output times are
// light-time corrected emission times.
type Options struct {
	Method Method
	LTTE   bool
}

// Compute propagates every star of the hierarchy across the requested
// times. Times may be unsorted and arbitrarily spaced; every returned
// array has their length, in the hierarchy's flattened star order.
// With LTTE off, the returned time arrays equal the input exactly.
func Compute(sys *hierarchy.System, times []float64, opts Options) (*dynamo.Result, error) {
	if len(times) == 0 {
		return nil, &dynamo.ConfigError{Detail: "no times requested"}
	}
	if opts.Method == NBodyBS && !opts.LTTE {
		return nil, &dynamo.ConfigError{Detail: "method bs supports ltte=true only"}
	}

	switch opts.Method {
	case Keplerian:
		return kepler.NewPropagator(sys).Propagate(times, opts.LTTE)
	case NBodyRK45:
		return nbody.NewPropagator(sys, integrators.NewDormandPrince()).Propagate(times, opts.LTTE)
	case NBodyBS:
		return nbody.NewPropagator(sys, integrators.NewBulirschStoer()).Propagate(times, opts.LTTE)
	}
	return nil, &dynamo.ConfigError{Detail: "unknown dynamics method " + opts.Method.String()}
}
