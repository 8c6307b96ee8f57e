// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Logging     LoggingConfig     `koanf:"logging"`
	Store       StoreConfig       `koanf:"store"`
	Providers   ProvidersConfig   `koanf:"providers"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	LookupCache LookupCacheConfig `koanf:"lookup_cache"`
	Security    SecurityConfig    `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production, console for development.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Store backends
const (
	StoreBackendBadger = "badger"
	StoreBackendDuckDB = "duckdb"
)

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	// Backend is "badger" (key-value, default) or "duckdb" (SQL).
	Backend string `koanf:"backend"`

	// Path is the Badger data directory or the DuckDB database file.
	// An empty path runs Badger in memory.
	Path string `koanf:"path"`

	// DuckDB only
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// ProvidersConfig holds the outbound metadata provider settings.
type ProvidersConfig struct {
	Cinemeta ProviderConfig `koanf:"cinemeta"`
	TVMaze   ProviderConfig `koanf:"tvmaze"`
}

// ProviderConfig configures one outbound HTTP provider.
type ProviderConfig struct {
	Enabled bool          `koanf:"enabled"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the sustained request rate per second, 0 disables throttling.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	RetryAttempts uint          `koanf:"retry_attempts"`
	RetryDelay    time.Duration `koanf:"retry_delay"`
}

// RecommendConfig holds the selection engine settings.
type RecommendConfig struct {
	RecencyWindowDays  int           `koanf:"recency_window_days"`
	Seed               int64         `koanf:"seed"`
	ParallelEvaluation bool          `koanf:"parallel_evaluation"`
	MaxConcurrency     int           `koanf:"max_concurrency"`
	ShowTimeout        time.Duration `koanf:"show_timeout"`
}

// LookupCacheConfig bounds the show id resolution cache.
type LookupCacheConfig struct {
	Capacity int           `koanf:"capacity"`
	TTL      time.Duration `koanf:"ttl"`

	// SweepInterval is how often expired entries are purged; 0 disables it.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// SecurityConfig holds CORS and inbound rate limiting settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// Load reads configuration from defaults, the config file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
