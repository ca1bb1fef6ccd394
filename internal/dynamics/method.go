package dynamics

import (
	"fmt"

	"github.com/san-kum/stardyn/internal/dynamo"
)

// Method is the closed set of dynamics methods. Adding one touches the
// dispatch table in Compute and a new propagator, nothing else.
type Method int

const (
	// Keplerian is the analytic hierarchical-orbit propagator.
	Keplerian Method = iota

	// NBodyRK45 integrates the gravitational ODEs with the adaptive
	// Dormand-Prince stepper.
	NBodyRK45

	// NBodyBS integrates with the Bulirsch-Stoer extrapolation stepper.
	// It mirrors an external photodynamics code that only operates with
	// the light-time correction enabled, so ltte=false is rejected.
	NBodyBS
)

func (m Method) String() string {
	switch m {
	case Keplerian:
		return "keplerian"
	case NBodyRK45:
		return "rk45"
	case NBodyBS:
		return "bs"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a configuration string onto a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "keplerian":
		return Keplerian, nil
	case "rk45", "nbody":
		return NBodyRK45, nil
	case "bs":
		return NBodyBS, nil
	}
	return 0, &dynamo.ConfigError{Detail: fmt.Sprintf("unknown dynamics method %q", s)}
}
