package kepler

import (
	"math"

	"github.com/san-kum/stardyn/internal/hierarchy"
)

// Vec3 is a Cartesian vector in the sky frame: u, v in the plane of the
// sky, w along the line of sight pointing away from the observer.
type Vec3 struct {
	U, V, W float64
}

func (a Vec3) Add(b Vec3) Vec3      { return Vec3{a.U + b.U, a.V + b.V, a.W + b.W} }
func (a Vec3) Scale(f float64) Vec3 { return Vec3{a.U * f, a.V * f, a.W * f} }

// relativeState evaluates the relative orbit (child 1 minus child 0) of
// one hierarchy level at time t: solve Kepler's equation for the
// eccentric anomaly, convert to true anomaly and perifocal
// position/velocity via the two-body relations, then rotate into the
// sky frame with the 3-1-3 composition Rz(longAN)*Rx(incl)*Rz(per0).
func relativeState(o *hierarchy.Orbit, t, tol float64, maxIter int) (pos, vel Vec3, err error) {
	n := 2 * math.Pi / o.Period
	meanAnom := wrapMean(n * (t - o.T0Perpass))

	ea, err := SolveEccentric(meanAnom, o.Ecc, tol, maxIter)
	if err != nil {
		return Vec3{}, Vec3{}, err
	}

	sinE, cosE := math.Sin(ea), math.Cos(ea)
	beta := math.Sqrt(1 - o.Ecc*o.Ecc)

	// True anomaly and radius from the eccentric anomaly.
	sinNu := beta * sinE / (1 - o.Ecc*cosE)
	cosNu := (cosE - o.Ecc) / (1 - o.Ecc*cosE)
	r := o.SMA * (1 - o.Ecc*cosE)

	// Perifocal frame: x toward periastron.
	px := r * cosNu
	py := r * sinNu
	vscale := n * o.SMA / beta
	pvx := -vscale * sinNu
	pvy := vscale * (o.Ecc + cosNu)

	pos = rotate(px, py, o)
	vel = rotate(pvx, pvy, o)
	return pos, vel, nil
}

// rotate maps perifocal (x, y) into the sky frame.
func rotate(x, y float64, o *hierarchy.Orbit) Vec3 {
	sinw, cosw := math.Sin(o.Per0), math.Cos(o.Per0)
	sini, cosi := math.Sin(o.Incl), math.Cos(o.Incl)
	sino, coso := math.Sin(o.LongAN), math.Cos(o.LongAN)

	x1 := x*cosw - y*sinw
	y1 := x*sinw + y*cosw

	y2 := y1 * cosi
	z2 := y1 * sini

	return Vec3{
		U: x1*coso - y2*sino,
		V: x1*sino + y2*coso,
		W: z2,
	}
}
