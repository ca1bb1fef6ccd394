package hierarchy

// Spec is the static description of a multi-star system: a nested tree
// of orbits and stars plus the reference epoch at which the N-body
// method takes its initial conditions. Angles are degrees, periods and
// epochs days, lengths solar radii, masses solar masses; the conversion
// to radians happens exactly once, in New, so every consumer sees the
// same values.
type Spec struct {
	Root Node    `yaml:"system"`
	T0   float64 `yaml:"t0"`
}

// Node is either a star leaf or an orbit with exactly two children.
// Setting both (or neither) is a configuration error.
type Node struct {
	Star  *StarSpec  `yaml:"star,omitempty"`
	Orbit *OrbitSpec `yaml:"orbit,omitempty"`
}

type StarSpec struct {
	Name   string  `yaml:"name"`
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
}

type OrbitSpec struct {
	Period    float64 `yaml:"period"`     // days
	SMA       float64 `yaml:"sma"`        // solRad, semi-major axis of the relative orbit
	Ecc       float64 `yaml:"ecc"`        // [0, 1)
	Incl      float64 `yaml:"incl"`       // deg
	LongAN    float64 `yaml:"long_an"`    // deg, longitude of the ascending node
	Per0      float64 `yaml:"per0"`       // deg, argument of periastron
	T0Perpass float64 `yaml:"t0_perpass"` // days, time of periastron passage
	Children  []Node  `yaml:"children"`
}
