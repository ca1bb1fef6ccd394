package kepler

import (
	"github.com/san-kum/stardyn/internal/dynamo"
	"github.com/san-kum/stardyn/internal/hierarchy"
	"github.com/san-kum/stardyn/internal/ltte"
)

// Propagator is the analytic hierarchical-orbit method. It holds only
// the hierarchy and solver settings, so one instance per call keeps
// concurrent invocations independent.
type Propagator struct {
	sys     *hierarchy.System
	Tol     float64
	MaxIter int
}

func NewPropagator(sys *hierarchy.System) *Propagator {
	return &Propagator{
		sys:     sys,
		Tol:     DefaultTol,
		MaxIter: DefaultMaxIter,
	}
}

// StateAt returns every star's barycentric position and velocity at
// time t, composed top-down: each orbit level contributes its relative
// offset scaled by the sibling mass fraction, so nested orbits add
// without re-deriving the tree per star.
func (p *Propagator) StateAt(t float64) (pos, vel []Vec3, err error) {
	nodes := p.sys.NumNodes()
	nodePos := make([]Vec3, nodes)
	nodeVel := make([]Vec3, nodes)
	pos = make([]Vec3, p.sys.NumStars())
	vel = make([]Vec3, p.sys.NumStars())

	var walkErr error
	p.sys.Walk(func(idx int, orbit *hierarchy.Orbit, children [2]int, star int) {
		if walkErr != nil {
			return
		}
		if star >= 0 {
			pos[star] = nodePos[idx]
			vel[star] = nodeVel[idx]
			return
		}
		relPos, relVel, rerr := relativeState(orbit, t, p.Tol, p.MaxIter)
		if rerr != nil {
			walkErr = rerr
			return
		}
		// Child 0 sits opposite the relative vector, child 1 along it,
		// each scaled by the other child's share of the pair mass.
		nodePos[children[0]] = nodePos[idx].Add(relPos.Scale(-orbit.ChildFrac[0]))
		nodeVel[children[0]] = nodeVel[idx].Add(relVel.Scale(-orbit.ChildFrac[0]))
		nodePos[children[1]] = nodePos[idx].Add(relPos.Scale(orbit.ChildFrac[1]))
		nodeVel[children[1]] = nodeVel[idx].Add(relVel.Scale(orbit.ChildFrac[1]))
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}
	return pos, vel, nil
}

// starState evaluates a single star by walking only its ancestor chain,
// used by the light-time fixed point where just one body moves in time.
func (p *Propagator) starState(star int, t float64) (pos, vel Vec3, err error) {
	for _, link := range p.sys.Chain(star) {
		relPos, relVel, rerr := relativeState(link.Orbit, t, p.Tol, p.MaxIter)
		if rerr != nil {
			return Vec3{}, Vec3{}, rerr
		}
		f := link.Orbit.ChildFrac[link.Slot]
		if link.Slot == 0 {
			f = -f
		}
		pos = pos.Add(relPos.Scale(f))
		vel = vel.Add(relVel.Scale(f))
	}
	return pos, vel, nil
}

// Propagate evaluates every star over the requested times. With the
// light-time correction enabled, each star's states are evaluated at
// its emission times and those times are reported per body; otherwise
// the per-body times are exactly the requested times.
func (p *Propagator) Propagate(times []float64, correct bool) (*dynamo.Result, error) {
	res := dynamo.NewResult(p.sys.StarNames(), times)

	for ti, t := range times {
		if !correct {
			pos, vel, err := p.StateAt(t)
			if err != nil {
				return nil, err
			}
			for ci := range pos {
				res.BodyTimes[ci][ti] = t
				fill(res, ci, ti, pos[ci], vel[ci])
			}
			continue
		}

		for ci := 0; ci < p.sys.NumStars(); ci++ {
			temit, err := ltte.EmissionTime(t, func(tt float64) (float64, error) {
				sp, _, serr := p.starState(ci, tt)
				return sp.W, serr
			}, ltte.DefaultTol, ltte.DefaultMaxIter)
			if err != nil {
				return nil, err
			}
			sp, sv, err := p.starState(ci, temit)
			if err != nil {
				return nil, err
			}
			res.BodyTimes[ci][ti] = temit
			fill(res, ci, ti, sp, sv)
		}
	}

	return res, nil
}

func fill(res *dynamo.Result, ci, ti int, pos, vel Vec3) {
	res.U[ci][ti] = pos.U
	res.V[ci][ti] = pos.V
	res.W[ci][ti] = pos.W
	res.VU[ci][ti] = vel.U
	res.VV[ci][ti] = vel.V
	res.VW[ci][ti] = vel.W
}
