package nbody

import (
	"fmt"
	"math"

	"github.com/san-kum/stardyn/internal/dynamo"
)

// Config bounds one integration run. MaxStep caps the step size so the
// Hermite dense output stays well below the cross-method agreement
// tolerances even when the local-error control would allow larger
// steps.
type Config struct {
	Tol      float64
	MaxStep  float64
	MinStep  float64
	MaxSteps int
}

func DefaultConfig(minPeriod float64) Config {
	return Config{
		Tol:      1e-12,
		MaxStep:  minPeriod / 100,
		MinStep:  1e-12,
		MaxSteps: 2_000_000,
	}
}

// integrate covers [tMin, tMax] starting from x0 at epoch, running
// forward and backward as needed, and returns the dense trajectory.
// Every accepted state is checked for finiteness; a singular close
// encounter surfaces as a hard error, never as silent NaN output.
func integrate(sys *System, x0 dynamo.State, epoch, tMin, tMax float64, st dynamo.Stepper, cfg Config) (*Trajectory, error) {
	tr := &Trajectory{}

	if tMax > epoch {
		if err := sweep(tr, sys, x0, epoch, tMax, st, cfg); err != nil {
			return nil, err
		}
	}
	if tMin < epoch {
		if err := sweep(tr, sys, x0, epoch, tMin, st, cfg); err != nil {
			return nil, err
		}
	}
	tr.sortSegments()
	return tr, nil
}

// sweep integrates from epoch toward target, accepting steps whose
// local error ratio is within tolerance and recording each as a dense
// segment. Backward sweeps reuse the same logic with negative steps;
// the recorded segments are normalized to ascending time.
func sweep(tr *Trajectory, sys *System, x0 dynamo.State, epoch, target float64, st dynamo.Stepper, cfg Config) error {
	dir := 1.0
	if target < epoch {
		dir = -1.0
	}

	t := epoch
	x := x0.Clone()
	f := sys.Derive(x, t)
	dt := dir * cfg.MaxStep

	for steps := 0; (target-t)*dir > 0; steps++ {
		if steps >= cfg.MaxSteps {
			return &dynamo.NumericalError{
				Op:     "integrate",
				Time:   t,
				Detail: fmt.Sprintf("step budget of %d exhausted before reaching t=%g", cfg.MaxSteps, target),
				Err:    dynamo.ErrNonConvergence,
			}
		}

		if math.Abs(dt) > cfg.MaxStep {
			dt = dir * cfg.MaxStep
		}
		if (t+dt-target)*dir > 0 {
			dt = target - t
		}

		xNew, errRatio, dtNext := st.Step(sys, x, t, dt, cfg.Tol)
		if !xNew.IsValid() || math.IsNaN(errRatio) {
			return &dynamo.NumericalError{
				Op:     "integrate",
				Time:   t,
				Detail: "NaN or Inf in integration state (singular encounter?)",
				Err:    dynamo.ErrNonFinite,
			}
		}

		if errRatio > 1 {
			if math.Abs(dt) <= cfg.MinStep {
				return &dynamo.NumericalError{
					Op:     "integrate",
					Time:   t,
					Detail: fmt.Sprintf("step size underflow below %g with error ratio %g", cfg.MinStep, errRatio),
					Err:    dynamo.ErrNonConvergence,
				}
			}
			dt = clampStep(dtNext, dt, cfg)
			continue
		}

		fNew := sys.Derive(xNew, t+dt)
		seg := segment{t0: t, t1: t + dt, x0: x, x1: xNew, f0: f, f1: fNew}
		if dir < 0 {
			seg = segment{t0: t + dt, t1: t, x0: xNew, x1: x, f0: fNew, f1: f}
		}
		tr.add(seg)

		t += dt
		x = xNew
		f = fNew
		dt = clampStep(dtNext, dt, cfg)
	}

	return nil
}

// clampStep keeps a suggested step within configured bounds and in the
// direction of the current sweep.
func clampStep(suggested, current float64, cfg Config) float64 {
	dir := math.Copysign(1, current)
	mag := math.Abs(suggested)
	if mag > cfg.MaxStep {
		mag = cfg.MaxStep
	}
	if mag < cfg.MinStep {
		mag = cfg.MinStep
	}
	return dir * mag
}
