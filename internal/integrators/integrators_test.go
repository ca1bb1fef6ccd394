package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/stardyn/internal/dynamo"
)

// oscillator is the unit harmonic oscillator x'' = -x, whose exact
// solution from (1, 0) is (cos t, -sin t).
type oscillator struct{}

func (oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (oscillator) Dim() int { return 2 }

func steppers() map[string]dynamo.Stepper {
	return map[string]dynamo.Stepper{
		"rk45": NewDormandPrince(),
		"bs":   NewBulirschStoer(),
	}
}

func TestStepAccuracyOscillator(t *testing.T) {
	for name, st := range steppers() {
		t.Run(name, func(t *testing.T) {
			// dt is sized so the embedded error estimate sits well under
			// the tolerance; at 200 steps per period the rk45 estimate is
			// already several times over 1e-10.
			x := dynamo.State{1, 0}
			tt := 0.0
			dt := 2 * math.Pi / 500
			for i := 0; i < 500; i++ {
				var ratio float64
				x, ratio, _ = st.Step(oscillator{}, x, tt, dt, 1e-10)
				if ratio > 1 {
					t.Fatalf("step %d rejected at fixed dt=%g (ratio %g)", i, dt, ratio)
				}
				tt += dt
			}
			// One full period returns to the start.
			if math.Abs(x[0]-1) > 1e-7 || math.Abs(x[1]) > 1e-7 {
				t.Errorf("after one period: (%g, %g), want (1, 0)", x[0], x[1])
			}
		})
	}
}

func TestStepBackward(t *testing.T) {
	for name, st := range steppers() {
		t.Run(name, func(t *testing.T) {
			x0 := dynamo.State{1, 0}
			fwd, _, _ := st.Step(oscillator{}, x0, 0, 0.05, 1e-12)
			back, _, dtNext := st.Step(oscillator{}, fwd, 0.05, -0.05, 1e-12)
			if math.Abs(back[0]-1) > 1e-10 || math.Abs(back[1]) > 1e-10 {
				t.Errorf("backward step does not invert: (%g, %g)", back[0], back[1])
			}
			if dtNext >= 0 {
				t.Errorf("suggested step lost its sign: %g", dtNext)
			}
		})
	}
}

func TestStepErrorEstimateScalesWithStep(t *testing.T) {
	// At 200 steps per period the rk45 embedded estimate exceeds 1e-10,
	// so the step must be rejected; at 500 it must pass. Both sides
	// guard the error control against miscalibration.
	st := NewDormandPrince()
	x := dynamo.State{1, 0}

	_, coarse, _ := st.Step(oscillator{}, x, 0, 2*math.Pi/200, 1e-10)
	if coarse <= 1 {
		t.Errorf("coarse step accepted with ratio %g, want rejection", coarse)
	}
	_, fine, _ := st.Step(oscillator{}, x, 0, 2*math.Pi/500, 1e-10)
	if fine > 1 {
		t.Errorf("fine step rejected with ratio %g", fine)
	}
}

func TestStepRejectsOversizedStep(t *testing.T) {
	for name, st := range steppers() {
		t.Run(name, func(t *testing.T) {
			x := dynamo.State{1, 0}
			_, ratio, dtNext := st.Step(oscillator{}, x, 0, 10.0, 1e-14)
			if ratio <= 1 {
				t.Fatalf("a 10-radian step at tol 1e-14 should be rejected, ratio %g", ratio)
			}
			if dtNext >= 10.0 || dtNext <= 0 {
				t.Errorf("retry suggestion should shrink the step, got %g", dtNext)
			}
		})
	}
}

func TestStepDeterministic(t *testing.T) {
	for name, st := range steppers() {
		t.Run(name, func(t *testing.T) {
			x := dynamo.State{0.3, -0.7}
			a1, r1, d1 := st.Step(oscillator{}, x, 1.5, 0.02, 1e-10)
			a2, r2, d2 := st.Step(oscillator{}, x, 1.5, 0.02, 1e-10)
			if r1 != r2 || d1 != d2 || a1[0] != a2[0] || a1[1] != a2[1] {
				t.Error("identical inputs must produce identical steps")
			}
		})
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	for name, st := range steppers() {
		t.Run(name, func(t *testing.T) {
			x := dynamo.State{1, 0}
			st.Step(oscillator{}, x, 0, 0.1, 1e-10)
			if x[0] != 1 || x[1] != 0 {
				t.Errorf("input state mutated: %v", x)
			}
		})
	}
}
