// Package dynamo provides the core primitives shared by the orbital
// dynamics propagators:
//
//   - [State]: flat vector of body positions and velocities
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Stepper]: adaptive single-step integrator interface
//   - [Result]: per-star trajectory arrays returned by every method
//
// All quantities are expressed in days, solar radii, and solar masses;
// the conversion constants live in constants.go. The w axis points away
// from the observer, so a positive w velocity means the star is receding.
//
// # Thread Safety
//
// Nothing in this package holds mutable state between calls. Propagators
// built on these primitives allocate fresh working buffers per invocation
// and are safe to run concurrently from independent call sites.
package dynamo
