package hierarchy

import (
	"fmt"
	"math"

	"github.com/san-kum/stardyn/internal/dynamo"
)

type nodeKind int

const (
	kindStar nodeKind = iota
	kindOrbit
)

// node is one entry of the arena tree. Children are arena indices, -1
// when absent; the parent link makes ancestor-chain walks cheap without
// cyclic object references.
type node struct {
	kind     nodeKind
	parent   int
	children [2]int
	star     int // index into stars when kindStar
	orbit    int // index into orbits when kindOrbit
	mass     float64
}

type Star struct {
	Name   string
	Mass   float64 // solMass
	Radius float64 // solRad
}

// Orbit carries the elements of one two-body level of the hierarchy
// with angles already in radians. ChildMass and ChildFrac are indexed
// by child slot; ChildFrac is the sibling's share of the pair mass,
// which scales that child's offset from the level's center of mass.
type Orbit struct {
	Period    float64
	SMA       float64
	Ecc       float64
	Incl      float64
	LongAN    float64
	Per0      float64
	T0Perpass float64

	ChildMass [2]float64
	ChildFrac [2]float64
}

// ChainLink is one level of a star's ancestor-orbit chain: the orbit
// and the child slot the star's subtree occupies there. Slot 0 sits at
// minus its fraction of the relative orbit, slot 1 at plus.
type ChainLink struct {
	Orbit *Orbit
	Slot  int
}

// System is the immutable arena representation of a validated Spec.
type System struct {
	nodes  []node
	stars  []Star
	orbits []Orbit

	starNode  []int // arena index per star, flattened depth-first order
	epoch     float64
	totalMass float64
}

// New validates the spec and builds the arena. The flattened star order
// is the depth-first order of the input tree with slot 0 before slot 1,
// and is the index order of every per-star output array downstream.
func New(spec *Spec) (*System, error) {
	s := &System{epoch: spec.T0}
	if _, err := s.build(&spec.Root, -1); err != nil {
		return nil, err
	}
	if len(s.orbits) == 0 {
		return nil, &dynamo.ConfigError{Detail: "root node must be an orbit of two children"}
	}
	seen := make(map[string]bool, len(s.stars))
	for _, st := range s.stars {
		if seen[st.Name] {
			return nil, &dynamo.ConfigError{Detail: fmt.Sprintf("duplicate star name %q", st.Name)}
		}
		seen[st.Name] = true
	}
	s.totalMass = s.nodes[0].mass
	return s, nil
}

// build adds the subtree rooted at n and returns its arena index. The
// subtree mass is accumulated bottom-up so each orbit level can place
// its children relative to the local center of mass.
func (s *System) build(n *Node, parent int) (int, error) {
	switch {
	case n.Star != nil && n.Orbit != nil:
		return -1, &dynamo.ConfigError{Detail: fmt.Sprintf("node %q is both a star and an orbit", n.Star.Name)}
	case n.Star == nil && n.Orbit == nil:
		return -1, &dynamo.ConfigError{Detail: "node is neither a star nor an orbit"}
	case n.Star != nil:
		st := *n.Star
		if st.Name == "" {
			return -1, &dynamo.ConfigError{Detail: "star without a name"}
		}
		if st.Mass <= 0 {
			return -1, &dynamo.ConfigError{Detail: fmt.Sprintf("star %q: mass must be positive, got %g", st.Name, st.Mass)}
		}
		idx := len(s.nodes)
		s.nodes = append(s.nodes, node{
			kind:     kindStar,
			parent:   parent,
			children: [2]int{-1, -1},
			star:     len(s.stars),
			orbit:    -1,
			mass:     st.Mass,
		})
		s.stars = append(s.stars, Star(st))
		s.starNode = append(s.starNode, idx)
		return idx, nil
	}

	o := n.Orbit
	if err := validateOrbit(o); err != nil {
		return -1, err
	}

	idx := len(s.nodes)
	s.nodes = append(s.nodes, node{
		kind:     kindOrbit,
		parent:   parent,
		children: [2]int{-1, -1},
		star:     -1,
		orbit:    len(s.orbits),
	})
	s.orbits = append(s.orbits, Orbit{
		Period:    o.Period,
		SMA:       o.SMA,
		Ecc:       o.Ecc,
		Incl:      o.Incl * math.Pi / 180,
		LongAN:    o.LongAN * math.Pi / 180,
		Per0:      o.Per0 * math.Pi / 180,
		T0Perpass: o.T0Perpass,
	})

	for slot := 0; slot < 2; slot++ {
		child, err := s.build(&o.Children[slot], idx)
		if err != nil {
			return -1, err
		}
		s.nodes[idx].children[slot] = child
		s.nodes[idx].mass += s.nodes[child].mass
	}

	orb := &s.orbits[s.nodes[idx].orbit]
	m0 := s.nodes[s.nodes[idx].children[0]].mass
	m1 := s.nodes[s.nodes[idx].children[1]].mass
	orb.ChildMass = [2]float64{m0, m1}
	orb.ChildFrac = [2]float64{m1 / (m0 + m1), m0 / (m0 + m1)}
	return idx, nil
}

func validateOrbit(o *OrbitSpec) error {
	if len(o.Children) != 2 {
		return &dynamo.ConfigError{Detail: fmt.Sprintf("orbit must have exactly 2 children, got %d", len(o.Children))}
	}
	if o.Period <= 0 {
		return &dynamo.ConfigError{Detail: fmt.Sprintf("orbit period must be positive, got %g", o.Period)}
	}
	if o.SMA <= 0 {
		return &dynamo.ConfigError{Detail: fmt.Sprintf("orbit sma must be positive, got %g", o.SMA)}
	}
	if o.Ecc < 0 || o.Ecc >= 1 {
		return &dynamo.ConfigError{Detail: fmt.Sprintf("orbit eccentricity must be in [0,1), got %g", o.Ecc)}
	}
	return nil
}

// Stars returns the flattened star list. The slice is shared; callers
// must treat it as read-only.
func (s *System) Stars() []Star { return s.stars }

// StarNames returns the star names in flattened order.
func (s *System) StarNames() []string {
	names := make([]string, len(s.stars))
	for i, st := range s.stars {
		names[i] = st.Name
	}
	return names
}

func (s *System) NumStars() int      { return len(s.stars) }
func (s *System) NumOrbits() int     { return len(s.orbits) }
func (s *System) TotalMass() float64 { return s.totalMass }

// Epoch is the reference time at which the N-body method derives its
// initial conditions from the osculating elements.
func (s *System) Epoch() float64 { return s.epoch }

// Masses returns the star masses in flattened order.
func (s *System) Masses() []float64 {
	m := make([]float64, len(s.stars))
	for i, st := range s.stars {
		m[i] = st.Mass
	}
	return m
}

// Chain returns the ancestor orbits of a star, root first.
func (s *System) Chain(star int) []ChainLink {
	var rev []ChainLink
	idx := s.starNode[star]
	for s.nodes[idx].parent >= 0 {
		p := s.nodes[idx].parent
		slot := 0
		if s.nodes[p].children[1] == idx {
			slot = 1
		}
		rev = append(rev, ChainLink{Orbit: &s.orbits[s.nodes[p].orbit], Slot: slot})
		idx = p
	}
	chain := make([]ChainLink, len(rev))
	for i := range rev {
		chain[i] = rev[len(rev)-1-i]
	}
	return chain
}

// Walk visits every node in arena order, which is parent-before-child.
// For orbit nodes fn receives the orbit and the arena indices of its two
// children; star nodes report the star index instead. Offsets composed
// during the walk reach each star through exactly its ancestor chain.
func (s *System) Walk(fn func(idx int, orbit *Orbit, children [2]int, star int)) {
	for idx := range s.nodes {
		n := &s.nodes[idx]
		if n.kind == kindOrbit {
			fn(idx, &s.orbits[n.orbit], n.children, -1)
		} else {
			fn(idx, nil, [2]int{-1, -1}, n.star)
		}
	}
}

// Root returns the arena index of the root node (always 0).
func (s *System) Root() int { return 0 }

// NumNodes returns the arena size.
func (s *System) NumNodes() int { return len(s.nodes) }

// Extent is the sum of all orbital semi-major axes, an upper bound on
// any star's distance from the barycenter used to pad the integration
// span for light-time corrections.
func (s *System) Extent() float64 {
	sum := 0.0
	for i := range s.orbits {
		sum += s.orbits[i].SMA
	}
	return sum
}

// MinPeriod returns the shortest orbital period in the hierarchy, which
// bounds the integrator's step size so dense output stays accurate.
func (s *System) MinPeriod() float64 {
	min := s.orbits[0].Period
	for _, o := range s.orbits[1:] {
		if o.Period < min {
			min = o.Period
		}
	}
	return min
}

// SemiMajorAxis returns the relative-orbit semi-major axis consistent
// with Kepler's third law for the given period (days) and total pair
// mass (solMass). Presets and tests use it so the analytic and N-body
// methods describe the same dynamical system.
func SemiMajorAxis(period, totalMass float64) float64 {
	return math.Cbrt(dynamo.GMSun * totalMass * period * period / (4 * math.Pi * math.Pi))
}
