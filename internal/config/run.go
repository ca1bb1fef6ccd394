package config

import (
	"github.com/san-kum/stardyn/internal/dynamics"
	"github.com/san-kum/stardyn/internal/dynamo"
)

// RunCompute is the configuration-driven entry point. It builds the
// hierarchy from the config and invokes the dynamics facade with
// exactly the values the config holds; the returned arrays are
// bit-for-bit those of a direct facade call with equivalent inputs.
func RunCompute(cfg *Config) (*dynamo.Result, error) {
	sys, err := cfg.Hierarchy()
	if err != nil {
		return nil, err
	}
	method, err := dynamics.ParseMethod(cfg.Compute.Method)
	if err != nil {
		return nil, err
	}
	times := cfg.Compute.Times.Expand()
	return dynamics.Compute(sys, times, dynamics.Options{Method: method, LTTE: cfg.Compute.LTTE})
}
