package hierarchy

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/stardyn/internal/dynamo"
)

func star(name string, mass float64) Node {
	return Node{Star: &StarSpec{Name: name, Mass: mass, Radius: 1.0}}
}

func binarySpec() *Spec {
	return &Spec{
		Root: Node{Orbit: &OrbitSpec{
			Period:   1.0,
			SMA:      5.3,
			Incl:     90,
			Children: []Node{star("primary", 1.0), star("secondary", 0.5)},
		}},
	}
}

func TestNewBinary(t *testing.T) {
	sys, err := New(binarySpec())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if sys.NumStars() != 2 {
		t.Errorf("expected 2 stars, got %d", sys.NumStars())
	}
	if sys.NumOrbits() != 1 {
		t.Errorf("expected 1 orbit, got %d", sys.NumOrbits())
	}
	if sys.TotalMass() != 1.5 {
		t.Errorf("expected total mass 1.5, got %g", sys.TotalMass())
	}

	names := sys.StarNames()
	if names[0] != "primary" || names[1] != "secondary" {
		t.Errorf("flattened order wrong: %v", names)
	}

	// The spec's star fields carry through to the arena unchanged.
	stars := sys.Stars()
	if stars[1].Name != "secondary" || stars[1].Mass != 0.5 || stars[1].Radius != 1.0 {
		t.Errorf("star fields lost in construction: %+v", stars[1])
	}
}

func TestMassFractions(t *testing.T) {
	sys, err := New(binarySpec())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	chain := sys.Chain(0)
	if len(chain) != 1 {
		t.Fatalf("expected chain of 1, got %d", len(chain))
	}
	o := chain[0].Orbit

	// Each child's offset is scaled by the sibling's share of the pair.
	if got := o.ChildFrac[0]; math.Abs(got-0.5/1.5) > 1e-15 {
		t.Errorf("primary fraction: got %g, want %g", got, 0.5/1.5)
	}
	if got := o.ChildFrac[1]; math.Abs(got-1.0/1.5) > 1e-15 {
		t.Errorf("secondary fraction: got %g, want %g", got, 1.0/1.5)
	}
}

func TestTripleChains(t *testing.T) {
	inner := Node{Orbit: &OrbitSpec{
		Period:   1.0,
		SMA:      5.0,
		Children: []Node{star("Aa", 1.0), star("Ab", 1.0)},
	}}
	spec := &Spec{
		Root: Node{Orbit: &OrbitSpec{
			Period:   200,
			SMA:      150,
			Children: []Node{inner, star("B", 0.8)},
		}},
	}

	sys, err := New(spec)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if sys.NumStars() != 3 || sys.NumOrbits() != 2 {
		t.Fatalf("expected 3 stars / 2 orbits, got %d / %d", sys.NumStars(), sys.NumOrbits())
	}

	// Inner stars carry the outer orbit first, then the inner one.
	chain := sys.Chain(0)
	if len(chain) != 2 {
		t.Fatalf("inner star: expected chain of 2, got %d", len(chain))
	}
	if chain[0].Orbit.Period != 200 || chain[1].Orbit.Period != 1.0 {
		t.Errorf("chain not root-first: periods %g, %g", chain[0].Orbit.Period, chain[1].Orbit.Period)
	}

	// The tertiary sees only the outer orbit, in slot 1.
	chain = sys.Chain(2)
	if len(chain) != 1 || chain[0].Slot != 1 {
		t.Errorf("tertiary chain wrong: %+v", chain)
	}

	// The outer orbit splits the pair as (2.0, 0.8).
	outer := chain[0].Orbit
	if outer.ChildMass[0] != 2.0 || outer.ChildMass[1] != 0.8 {
		t.Errorf("outer pair masses: got %v", outer.ChildMass)
	}
}

func TestNewRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		spec *Spec
	}{
		{"root star", &Spec{Root: star("lonely", 1.0)}},
		{"empty node", &Spec{Root: Node{}}},
		{"both star and orbit", &Spec{Root: Node{
			Star:  &StarSpec{Name: "x", Mass: 1},
			Orbit: &OrbitSpec{Period: 1, SMA: 1, Children: []Node{star("a", 1), star("b", 1)}},
		}}},
		{"one child", &Spec{Root: Node{Orbit: &OrbitSpec{
			Period: 1, SMA: 1, Children: []Node{star("a", 1)},
		}}}},
		{"three children", &Spec{Root: Node{Orbit: &OrbitSpec{
			Period: 1, SMA: 1, Children: []Node{star("a", 1), star("b", 1), star("c", 1)},
		}}}},
		{"zero period", &Spec{Root: Node{Orbit: &OrbitSpec{
			Period: 0, SMA: 1, Children: []Node{star("a", 1), star("b", 1)},
		}}}},
		{"negative mass", &Spec{Root: Node{Orbit: &OrbitSpec{
			Period: 1, SMA: 1, Children: []Node{star("a", -1), star("b", 1)},
		}}}},
		{"eccentricity one", &Spec{Root: Node{Orbit: &OrbitSpec{
			Period: 1, SMA: 1, Ecc: 1.0, Children: []Node{star("a", 1), star("b", 1)},
		}}}},
		{"duplicate names", &Spec{Root: Node{Orbit: &OrbitSpec{
			Period: 1, SMA: 1, Children: []Node{star("a", 1), star("a", 1)},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.spec)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, dynamo.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestSemiMajorAxis(t *testing.T) {
	// One-day orbit of two suns; check Kepler's third law round trip.
	a := SemiMajorAxis(1.0, 2.0)
	n := 2 * math.Pi / 1.0
	if got := n * n * a * a * a; math.Abs(got-dynamo.GMSun*2.0) > 1e-9*dynamo.GMSun {
		t.Errorf("n^2 a^3 = %g, want %g", got, dynamo.GMSun*2.0)
	}

	// Two suns in a one-day orbit come out near 5.3 solRad.
	if a < 5.2 || a > 5.4 {
		t.Errorf("two suns at P=1d: a = %g solRad, expected ~5.3", a)
	}
}

func TestAnglesConvertedOnce(t *testing.T) {
	spec := binarySpec()
	spec.Root.Orbit.Incl = 90
	spec.Root.Orbit.LongAN = 180
	sys, err := New(spec)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	o := sys.Chain(0)[0].Orbit
	if math.Abs(o.Incl-math.Pi/2) > 1e-15 {
		t.Errorf("incl: got %g rad", o.Incl)
	}
	if math.Abs(o.LongAN-math.Pi) > 1e-15 {
		t.Errorf("long_an: got %g rad", o.LongAN)
	}
}
