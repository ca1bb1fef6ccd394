package nbody

import (
	"math"

	"github.com/san-kum/stardyn/internal/dynamo"
	"github.com/san-kum/stardyn/internal/hierarchy"
	"github.com/san-kum/stardyn/internal/kepler"
	"github.com/san-kum/stardyn/internal/ltte"
)

// Propagator runs the numerical method: Keplerian osculating elements
// give the Cartesian state of every star at the hierarchy's reference
// epoch, the gravitational ODEs are integrated across the requested
// span, and the dense trajectory is sampled at the requested (or
// light-time corrected) times.
type Propagator struct {
	sys     *hierarchy.System
	stepper dynamo.Stepper
	Cfg     Config
}

func NewPropagator(sys *hierarchy.System, stepper dynamo.Stepper) *Propagator {
	return &Propagator{
		sys:     sys,
		stepper: stepper,
		Cfg:     DefaultConfig(sys.MinPeriod()),
	}
}

// initialState converts the hierarchy's elements at the epoch into the
// flat [u, v, w, vu, vv, vw] per-body vector the ODE system uses.
func (p *Propagator) initialState() (dynamo.State, error) {
	pos, vel, err := kepler.NewPropagator(p.sys).StateAt(p.sys.Epoch())
	if err != nil {
		return nil, err
	}
	x := make(dynamo.State, p.sys.NumStars()*6)
	for i := range pos {
		x[i*6] = pos[i].U
		x[i*6+1] = pos[i].V
		x[i*6+2] = pos[i].W
		x[i*6+3] = vel[i].U
		x[i*6+4] = vel[i].V
		x[i*6+5] = vel[i].W
	}
	return x, nil
}

// Propagate evaluates every star over the requested times. Times may
// arrive in any order; the integrated span covers them all, padded when
// the light-time correction needs emission times slightly outside the
// requested range.
func (p *Propagator) Propagate(times []float64, correct bool) (*dynamo.Result, error) {
	grav := NewSystem(p.sys.Masses())

	x0, err := p.initialState()
	if err != nil {
		return nil, err
	}

	epoch := p.sys.Epoch()
	tMin, tMax := epoch, epoch
	for _, t := range times {
		tMin = math.Min(tMin, t)
		tMax = math.Max(tMax, t)
	}
	if correct {
		pad := 4 * p.sys.Extent() / dynamo.CLight
		tMin -= pad
		tMax += pad
	}
	if tMin == epoch && tMax == epoch {
		// Every requested time is the epoch itself; integrate one step
		// so the dense span is non-degenerate.
		tMax = epoch + p.Cfg.MaxStep
	}

	traj, err := integrate(grav, x0, epoch, tMin, tMax, p.stepper, p.Cfg)
	if err != nil {
		return nil, err
	}

	res := dynamo.NewResult(p.sys.StarNames(), times)
	for ti, t := range times {
		if !correct {
			x, err := traj.Eval(t)
			if err != nil {
				return nil, err
			}
			for ci := 0; ci < p.sys.NumStars(); ci++ {
				res.BodyTimes[ci][ti] = t
				fillBody(res, ci, ti, x)
			}
			continue
		}

		for ci := 0; ci < p.sys.NumStars(); ci++ {
			temit, err := ltte.EmissionTime(t, func(tt float64) (float64, error) {
				x, eerr := traj.Eval(tt)
				if eerr != nil {
					return 0, eerr
				}
				return x[ci*6+2], nil
			}, ltte.DefaultTol, ltte.DefaultMaxIter)
			if err != nil {
				return nil, err
			}
			x, err := traj.Eval(temit)
			if err != nil {
				return nil, err
			}
			res.BodyTimes[ci][ti] = temit
			fillBody(res, ci, ti, x)
		}
	}

	res.EnergyDrift = p.energyDrift(grav, x0, traj)
	return res, nil
}

// energyDrift reports the worst relative energy deviation at the span
// edges against the epoch energy.
func (p *Propagator) energyDrift(grav *System, x0 dynamo.State, traj *Trajectory) float64 {
	e0 := grav.Energy(x0)
	if e0 == 0 {
		return 0
	}
	lo, hi := traj.Span()
	drift := 0.0
	for _, t := range []float64{lo, hi} {
		x, err := traj.Eval(t)
		if err != nil {
			continue
		}
		drift = math.Max(drift, math.Abs((grav.Energy(x)-e0)/e0))
	}
	return drift
}

func fillBody(res *dynamo.Result, ci, ti int, x dynamo.State) {
	res.U[ci][ti] = x[ci*6]
	res.V[ci][ti] = x[ci*6+1]
	res.W[ci][ti] = x[ci*6+2]
	res.VU[ci][ti] = x[ci*6+3]
	res.VV[ci][ti] = x[ci*6+4]
	res.VW[ci][ti] = x[ci*6+5]
}
