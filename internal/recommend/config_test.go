// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.RecencyWindowDays != 30 {
		t.Errorf("RecencyWindowDays = %d, want 30", cfg.RecencyWindowDays)
	}
	if cfg.ParallelEvaluation {
		t.Error("ParallelEvaluation should default to false")
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed = %d, want 0 (clock seeded)", cfg.Seed)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero window", func(c *Config) { c.RecencyWindowDays = 0 }, false},
		{"negative window", func(c *Config) { c.RecencyWindowDays = -1 }, true},
		{"zero concurrency", func(c *Config) { c.MaxConcurrency = 0 }, true},
		{"negative timeout", func(c *Config) { c.ShowTimeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.RecencyWindowDays = 7

	if cfg.RecencyWindowDays == 7 {
		t.Error("Clone() shares state with the original")
	}
}
