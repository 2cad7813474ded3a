// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config carries the few numeric knobs the pipeline treats as engineering
// constants: the per-axis position cap used as the allocation-failure
// guard, and the merge-abut tolerances used by the grid-line harvester.
type Config struct {
	// MaxGridPositionsPerAxis bounds the cell-grid allocation. Divider
	// inference producing more positions than this on either axis fails
	// with ErrGridTooLarge rather than allocating an unbounded grid.
	MaxGridPositionsPerAxis int `mapstructure:"max_grid_positions_per_axis" validate:"gte=3"`

	// RuleMergeEpsilon is the fixed-axis tolerance, in page units, for
	// treating two candidate rules as the same drawn ruling.
	RuleMergeEpsilon float64 `mapstructure:"rule_merge_epsilon" validate:"gt=0"`

	// RuleGapTolerance is the span-axis gap, in page units, two candidate
	// rules may leave between them and still be merged.
	RuleGapTolerance float64 `mapstructure:"rule_gap_tolerance" validate:"gt=0"`

	// Debug enables verbose zerolog stage tracing.
	Debug bool `mapstructure:"debug"`
}

// DefaultConfig returns the engine's built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxGridPositionsPerAxis: 4096,
		RuleMergeEpsilon:        mergeEps,
		RuleGapTolerance:        gapTolerance,
	}
}

var validate = validator.New()

// Validate checks the config's struct-tag constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("tabledetect: invalid config: %w", err)
	}
	return nil
}

// LoadConfig reads configuration from an optional YAML file plus
// TABLEDETECT_*-prefixed environment overrides, in the style of the
// pack's own viper-based config loading, falling back to DefaultConfig
// for any unset field.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TABLEDETECT")
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("max_grid_positions_per_axis", def.MaxGridPositionsPerAxis)
	v.SetDefault("rule_merge_epsilon", def.RuleMergeEpsilon)
	v.SetDefault("rule_gap_tolerance", def.RuleGapTolerance)
	v.SetDefault("debug", def.Debug)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("tabledetect: read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("tabledetect: unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkBudget enforces MaxGridPositionsPerAxis against the position
// counts produced by divider inference, before the cell grid is
// allocated.
func (c *Config) checkBudget(xCount, yCount int) error {
	if xCount > c.MaxGridPositionsPerAxis || yCount > c.MaxGridPositionsPerAxis {
		return ErrGridTooLarge
	}
	return nil
}
