// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reruns/config.yaml",
	"/etc/reruns/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8099,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Store: StoreConfig{
			Backend:   StoreBackendBadger,
			Path:      "/data/reruns",
			MaxMemory: "512MB",
			Threads:   0, // 0 = DuckDB default
		},
		Providers: ProvidersConfig{
			Cinemeta: ProviderConfig{
				Enabled:       true,
				BaseURL:       "https://v3-cinemeta.strem.io",
				Timeout:       10 * time.Second,
				RateLimit:     10,
				RateBurst:     10,
				RetryAttempts: 3,
				RetryDelay:    250 * time.Millisecond,
			},
			// TVmaze allows 20 calls per 10 seconds per IP
			TVMaze: ProviderConfig{
				Enabled:       true,
				BaseURL:       "https://api.tvmaze.com",
				Timeout:       10 * time.Second,
				RateLimit:     2,
				RateBurst:     5,
				RetryAttempts: 2,
				RetryDelay:    500 * time.Millisecond,
			},
		},
		Recommend: RecommendConfig{
			RecencyWindowDays:  30,
			Seed:               0, // 0 = seed from clock
			ParallelEvaluation: false,
			MaxConcurrency:     4,
			ShowTimeout:        10 * time.Second,
		},
		LookupCache: LookupCacheConfig{
			Capacity:      1024,
			TTL:           24 * time.Hour,
			SweepInterval: time.Hour,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Store
	"store_backend":     "store.backend",
	"store_path":        "store.path",
	"duckdb_max_memory": "store.max_memory",
	"duckdb_threads":    "store.threads",

	// Providers
	"cinemeta_enabled":        "providers.cinemeta.enabled",
	"cinemeta_url":            "providers.cinemeta.base_url",
	"cinemeta_timeout":        "providers.cinemeta.timeout",
	"cinemeta_rate_limit":     "providers.cinemeta.rate_limit",
	"cinemeta_rate_burst":     "providers.cinemeta.rate_burst",
	"cinemeta_retry_attempts": "providers.cinemeta.retry_attempts",
	"cinemeta_retry_delay":    "providers.cinemeta.retry_delay",
	"tvmaze_enabled":          "providers.tvmaze.enabled",
	"tvmaze_url":              "providers.tvmaze.base_url",
	"tvmaze_timeout":          "providers.tvmaze.timeout",
	"tvmaze_rate_limit":       "providers.tvmaze.rate_limit",
	"tvmaze_rate_burst":       "providers.tvmaze.rate_burst",
	"tvmaze_retry_attempts":   "providers.tvmaze.retry_attempts",
	"tvmaze_retry_delay":      "providers.tvmaze.retry_delay",

	// Selection engine
	"reruns_recency_window_days": "recommend.recency_window_days",
	"reruns_seed":                "recommend.seed",
	"reruns_parallel_evaluation": "recommend.parallel_evaluation",
	"reruns_max_concurrency":     "recommend.max_concurrency",
	"reruns_show_timeout":        "recommend.show_timeout",

	// Lookup cache
	"lookup_cache_capacity": "lookup_cache.capacity",
	"lookup_cache_ttl":      "lookup_cache.ttl",
	"lookup_cache_sweep":    "lookup_cache.sweep_interval",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - CINEMETA_URL -> providers.cinemeta.base_url
//   - RERUNS_RECENCY_WINDOW_DAYS -> recommend.recency_window_days
//
// Unmapped variables return "" so koanf skips them.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
