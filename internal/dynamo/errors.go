package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors surfaced by the dynamics engine. Failures are never
// retried with relaxed tolerances inside the engine; the caller decides.
var (
	// ErrConfiguration indicates a malformed hierarchy or an unsupported
	// method/option combination, detected before any numerical work.
	ErrConfiguration = errors.New("dynamo: invalid configuration")

	// ErrNonConvergence indicates an iterative solve hit its iteration
	// cap without reaching tolerance.
	ErrNonConvergence = errors.New("dynamo: iteration limit reached without convergence")

	// ErrNonFinite indicates NaN or Inf appeared in an intermediate
	// state, e.g. two bodies coincident during integration.
	ErrNonFinite = errors.New("dynamo: non-finite state")
)

// ConfigError wraps ErrConfiguration with a description of what is wrong
// with the input.
type ConfigError struct {
	Detail string
}

func (e *ConfigError) Error() string {
	return ErrConfiguration.Error() + ": " + e.Detail
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// NumericalError wraps a numerical sentinel with the operation and the
// time at which the computation failed.
type NumericalError struct {
	Op     string // "kepler", "ltte", "integrate"
	Time   float64
	Detail string
	Err    error
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("%s (%s at t=%.6f): %s", e.Err.Error(), e.Op, e.Time, e.Detail)
}

func (e *NumericalError) Unwrap() error { return e.Err }
