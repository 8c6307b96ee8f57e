// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the selection engine.
type Config struct {
	// RecencyWindowDays is how far back a watch counts as "recent" when
	// preferring unwatched episodes.
	// Default: 30.
	RecencyWindowDays int `json:"recency_window_days"`

	// Seed seeds the engine's random source.
	// If zero, the source is seeded from the clock.
	Seed int64 `json:"seed"`

	// ParallelEvaluation evaluates shows concurrently. Precedence still
	// follows the shuffled order.
	// Default: false.
	ParallelEvaluation bool `json:"parallel_evaluation"`

	// MaxConcurrency bounds concurrent show evaluations in parallel mode.
	// Default: 4.
	MaxConcurrency int `json:"max_concurrency"`

	// ShowTimeout bounds the evaluation of a single show. Zero disables it.
	// Default: 10s.
	ShowTimeout time.Duration `json:"show_timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RecencyWindowDays:  30,
		Seed:               0,
		ParallelEvaluation: false,
		MaxConcurrency:     4,
		ShowTimeout:        10 * time.Second,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.RecencyWindowDays < 0 {
		return fmt.Errorf("recency_window_days must be non-negative, got %d", c.RecencyWindowDays)
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be positive, got %d", c.MaxConcurrency)
	}
	if c.ShowTimeout < 0 {
		return fmt.Errorf("show_timeout must be non-negative, got %v", c.ShowTimeout)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
