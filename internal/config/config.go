package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/stardyn/internal/hierarchy"
)

const (
	DefaultMethod = "keplerian"
	DefaultStart  = 0.0
	DefaultStop   = 10.0
	DefaultNum    = 1001
)

// Config is the file-facing description of a computation: the system
// tree plus the compute options. It carries exactly the values the
// engine consumes; RunCompute forwards them without reconversion so
// the config path and a direct engine call produce identical arrays.
type Config struct {
	System  hierarchy.Node `yaml:"system"`
	T0      float64        `yaml:"t0"`
	Compute ComputeConfig  `yaml:"compute"`
}

type ComputeConfig struct {
	Method string      `yaml:"method"` // keplerian | rk45 | bs
	LTTE   bool        `yaml:"ltte"`
	Times  TimesConfig `yaml:"times"`
}

// TimesConfig is either an explicit list or a uniform grid; the list
// wins when both are set.
type TimesConfig struct {
	Start float64   `yaml:"start"`
	Stop  float64   `yaml:"stop"`
	Num   int       `yaml:"num"`
	List  []float64 `yaml:"list,omitempty"`
}

// Expand materializes the time grid. The uniform grid is computed the
// same single way for every caller, so there is no drift between the
// config path and tests that build the same grid.
func (tc *TimesConfig) Expand() []float64 {
	if len(tc.List) > 0 {
		return append([]float64(nil), tc.List...)
	}
	n := tc.Num
	if n < 2 {
		return []float64{tc.Start}
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = tc.Start + (tc.Stop-tc.Start)*float64(i)/float64(n-1)
	}
	return out
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Hierarchy validates and builds the arena tree for this config.
func (c *Config) Hierarchy() (*hierarchy.System, error) {
	return hierarchy.New(&hierarchy.Spec{Root: c.System, T0: c.T0})
}
