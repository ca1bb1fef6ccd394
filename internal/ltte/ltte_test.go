package ltte

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/stardyn/internal/dynamo"
)

func TestEmissionTimeConstantOffset(t *testing.T) {
	// A body frozen at w = 1000 solRad: the fixed point is exactly
	// t_obs - w/c after one pass.
	const w = 1000.0
	temit, err := EmissionTime(5.0, func(float64) (float64, error) {
		return w, nil
	}, DefaultTol, DefaultMaxIter)
	if err != nil {
		t.Fatal(err)
	}
	want := 5.0 - w/dynamo.CLight
	if temit != want {
		t.Errorf("got %.17g, want %.17g", temit, want)
	}
}

func TestEmissionTimeZeroOffset(t *testing.T) {
	temit, err := EmissionTime(3.25, func(float64) (float64, error) {
		return 0, nil
	}, DefaultTol, DefaultMaxIter)
	if err != nil {
		t.Fatal(err)
	}
	if temit != 3.25 {
		t.Errorf("zero offset must leave the time untouched, got %g", temit)
	}
}

func TestEmissionTimeLinearOffset(t *testing.T) {
	// w(t) = w0 + k*(t - t_obs) has the closed-form fixed point
	// t_emit = t_obs - w0/(c + k).
	const (
		tobs = 2.0
		w0   = 500.0
		k    = 40.0
	)
	temit, err := EmissionTime(tobs, func(tt float64) (float64, error) {
		return w0 + k*(tt-tobs), nil
	}, DefaultTol, DefaultMaxIter)
	if err != nil {
		t.Fatal(err)
	}
	want := tobs - w0/(dynamo.CLight+k)
	if math.Abs(temit-want) > 1e-11 {
		t.Errorf("got %.17g, want %.17g", temit, want)
	}
}

func TestEmissionTimeReceedingIsEarlier(t *testing.T) {
	// Positive w points away from the observer, so its light left
	// earlier than t_obs; negative w later.
	for _, tc := range []struct {
		w    float64
		sign float64
	}{{800, -1}, {-800, 1}} {
		temit, err := EmissionTime(0, func(float64) (float64, error) {
			return tc.w, nil
		}, DefaultTol, DefaultMaxIter)
		if err != nil {
			t.Fatal(err)
		}
		if temit*tc.sign <= 0 {
			t.Errorf("w=%g: emission offset %g has the wrong sign", tc.w, temit)
		}
	}
}

func TestEmissionTimeNonConvergence(t *testing.T) {
	_, err := EmissionTime(0, func(float64) (float64, error) {
		return 1e6, nil
	}, DefaultTol, 1)
	if err == nil {
		t.Fatal("expected non-convergence with a single iteration")
	}
	if !errors.Is(err, dynamo.ErrNonConvergence) {
		t.Errorf("expected ErrNonConvergence, got %v", err)
	}
}

func TestEmissionTimePropagatesEvalError(t *testing.T) {
	boom := errors.New("trajectory out of span")
	_, err := EmissionTime(0, func(float64) (float64, error) {
		return 0, boom
	}, DefaultTol, DefaultMaxIter)
	if !errors.Is(err, boom) {
		t.Errorf("expected the evaluator error back, got %v", err)
	}
}
