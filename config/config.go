// Package config loads the optional YAML run configuration.
package config

import (
	"fmt"
	"os"

	"github.com/Nydauron/elo2bracket/bracket"
	"github.com/Nydauron/elo2bracket/sim"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables that stay fixed for a run. Every field has a
// working default, so a config file only needs to name what it overrides.
type Config struct {
	// KFactor is the ELO K-factor applied after every game.
	KFactor float64 `yaml:"k_factor"`

	// SemifinalPairs names which region winners meet in the two national
	// semifinals, e.g.
	//
	//   semifinal_pairs:
	//     - [East, West]
	//     - [South, Midwest]
	//
	// Region names are matched case-insensitively.
	SemifinalPairs [2][2]string `yaml:"semifinal_pairs"`
}

// Default returns the configuration used when no file is given: K=20 and
// the East/West, South/Midwest semifinal convention.
func Default() Config {
	var pairs [2][2]string
	for i, pair := range bracket.DefaultTopology().SemifinalPairs {
		for j, region := range pair {
			pairs[i][j] = string(region)
		}
	}
	return Config{KFactor: sim.DefaultK, SemifinalPairs: pairs}
}

// Load reads a YAML config file over the defaults and validates the
// result.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.KFactor <= 0 {
		return fmt.Errorf("k_factor must be positive, got %g", c.KFactor)
	}
	_, err := c.Topology()
	return err
}

// Topology converts the configured semifinal pairing into a bracket
// topology, normalizing region names.
func (c Config) Topology() (bracket.Topology, error) {
	var t bracket.Topology
	for i, pair := range c.SemifinalPairs {
		for j, name := range pair {
			region, err := bracket.ParseRegion(name)
			if err != nil {
				return bracket.Topology{}, fmt.Errorf("semifinal pair %d: %w", i+1, err)
			}
			t.SemifinalPairs[i][j] = region
		}
	}
	if err := t.Validate(); err != nil {
		return bracket.Topology{}, err
	}
	return t, nil
}
