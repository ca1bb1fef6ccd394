package config

import "github.com/san-kum/stardyn/internal/hierarchy"

// DefaultConfig is the stock detached binary: two suns in a one-day
// circular orbit, semi-major axis consistent with Kepler's third law so
// both dynamics methods describe the same system.
func DefaultConfig() *Config {
	return GetPreset("binary")
}

func star(name string, mass, radius float64) hierarchy.Node {
	return hierarchy.Node{Star: &hierarchy.StarSpec{Name: name, Mass: mass, Radius: radius}}
}

// GetPreset returns a named example system, or nil.
func GetPreset(name string) *Config {
	compute := ComputeConfig{
		Method: DefaultMethod,
		Times:  TimesConfig{Start: DefaultStart, Stop: DefaultStop, Num: DefaultNum},
	}

	switch name {
	case "binary":
		return &Config{
			System: hierarchy.Node{Orbit: &hierarchy.OrbitSpec{
				Period:   1.0,
				SMA:      hierarchy.SemiMajorAxis(1.0, 2.0),
				Incl:     90,
				Children: []hierarchy.Node{star("primary", 1.0, 1.0), star("secondary", 1.0, 1.0)},
			}},
			Compute: compute,
		}

	case "eccentric":
		return &Config{
			System: hierarchy.Node{Orbit: &hierarchy.OrbitSpec{
				Period:   2.5,
				SMA:      hierarchy.SemiMajorAxis(2.5, 1.8),
				Ecc:      0.3,
				Incl:     85,
				Per0:     45,
				Children: []hierarchy.Node{star("primary", 1.2, 1.1), star("secondary", 0.6, 0.7)},
			}},
			Compute: compute,
		}

	case "triple":
		// Inner one-day pair orbited by a distant tertiary; the outer
		// elements use the full system mass.
		inner := hierarchy.Node{Orbit: &hierarchy.OrbitSpec{
			Period:   1.0,
			SMA:      hierarchy.SemiMajorAxis(1.0, 2.0),
			Incl:     88,
			Children: []hierarchy.Node{star("Aa", 1.0, 1.0), star("Ab", 1.0, 1.0)},
		}}
		return &Config{
			System: hierarchy.Node{Orbit: &hierarchy.OrbitSpec{
				Period:   200.0,
				SMA:      hierarchy.SemiMajorAxis(200.0, 2.8),
				Ecc:      0.1,
				Incl:     90,
				Children: []hierarchy.Node{inner, star("B", 0.8, 0.9)},
			}},
			Compute: compute,
		}
	}
	return nil
}

// ListPresets names the built-in systems.
func ListPresets() []string {
	return []string{"binary", "eccentric", "triple"}
}
