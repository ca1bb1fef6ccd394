package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestConstants(t *testing.T) {
	// Sanity against well-known magnitudes: c ~ 37230 solRad/d, and
	// Kepler's third law for the Earth gives ~1 AU from GMSun.
	if math.Abs(CLight-37241)/37241 > 1e-2 {
		t.Errorf("CLight = %g solRad/d", CLight)
	}
	year := 365.25
	au := math.Cbrt(GMSun * year * year / (4 * math.Pi * math.Pi))
	if math.Abs(au-215.0)/215.0 > 1e-2 {
		t.Errorf("1 au = %g solRad, expected ~215", au)
	}
}

func TestErrorWrapping(t *testing.T) {
	cfg := &ConfigError{Detail: "bad hierarchy"}
	if !errors.Is(cfg, ErrConfiguration) {
		t.Error("ConfigError must wrap ErrConfiguration")
	}

	num := &NumericalError{Op: "kepler", Time: 1.5, Detail: "stalled", Err: ErrNonConvergence}
	if !errors.Is(num, ErrNonConvergence) {
		t.Error("NumericalError must wrap its sentinel")
	}
	if errors.Is(num, ErrNonFinite) {
		t.Error("NumericalError must not match other sentinels")
	}

	var ne *NumericalError
	if !errors.As(error(num), &ne) || ne.Op != "kepler" {
		t.Error("errors.As should recover the typed error")
	}
}

func TestStateValidity(t *testing.T) {
	if !(State{1, -2, 0}).IsValid() {
		t.Error("finite state reported invalid")
	}
	if (State{1, math.NaN()}).IsValid() {
		t.Error("NaN state reported valid")
	}
	if (State{math.Inf(1)}).IsValid() {
		t.Error("Inf state reported valid")
	}
}

func TestStateClone(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 99
	if s[0] != 1 {
		t.Error("Clone must not alias the original")
	}
}

func TestNewResultCopiesTimes(t *testing.T) {
	times := []float64{0, 1, 2}
	r := NewResult([]string{"a"}, times)
	times[0] = 42
	if r.Times[0] != 0 {
		t.Error("Result must not alias the caller's time slice")
	}
	if r.BodyIndex("a") != 0 || r.BodyIndex("b") != -1 {
		t.Error("BodyIndex lookup wrong")
	}
}
