// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateStore,
		c.validateProviders,
		c.validateRecommend,
		c.validateLookupCache,
		c.validateRateLimits,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validStoreBackends defines the allowed store backends
var validStoreBackends = map[string]bool{
	StoreBackendBadger: true,
	StoreBackendDuckDB: true,
}

func (c *Config) validateStore() error {
	if !validStoreBackends[c.Store.Backend] {
		return fmt.Errorf("STORE_BACKEND must be one of: badger, duckdb")
	}
	if c.Store.Backend == StoreBackendDuckDB && c.Store.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative")
	}
	return nil
}

// validateProviders validates the outbound providers. Cinemeta is the
// primary metadata source and cannot be disabled.
func (c *Config) validateProviders() error {
	if !c.Providers.Cinemeta.Enabled {
		return fmt.Errorf("CINEMETA_ENABLED cannot be false: it is the primary metadata source")
	}
	if err := validateProvider(&c.Providers.Cinemeta, "CINEMETA"); err != nil {
		return err
	}
	if !c.Providers.TVMaze.Enabled {
		return nil
	}
	return validateProvider(&c.Providers.TVMaze, "TVMAZE")
}

func validateProvider(p *ProviderConfig, prefix string) error {
	if p.BaseURL == "" {
		return fmt.Errorf("%s_URL is required", prefix)
	}
	if err := validateHTTPURL(p.BaseURL, prefix+"_URL"); err != nil {
		return fmt.Errorf("%s_URL is invalid: %w", prefix, err)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("%s_TIMEOUT must be positive", prefix)
	}
	if p.RateLimit < 0 {
		return fmt.Errorf("%s_RATE_LIMIT must be non-negative", prefix)
	}
	if p.RateLimit > 0 && p.RateBurst < 1 {
		return fmt.Errorf("%s_RATE_BURST must be at least 1 when rate limiting is enabled", prefix)
	}
	if p.RetryAttempts < 1 {
		return fmt.Errorf("%s_RETRY_ATTEMPTS must be at least 1", prefix)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.RecencyWindowDays < 0 {
		return fmt.Errorf("RERUNS_RECENCY_WINDOW_DAYS must be non-negative")
	}
	if r.MaxConcurrency < 1 {
		return fmt.Errorf("RERUNS_MAX_CONCURRENCY must be at least 1")
	}
	if r.ShowTimeout < 0 {
		return fmt.Errorf("RERUNS_SHOW_TIMEOUT must be non-negative")
	}
	return nil
}

func (c *Config) validateLookupCache() error {
	if c.LookupCache.Capacity < 1 {
		return fmt.Errorf("LOOKUP_CACHE_CAPACITY must be at least 1")
	}
	if c.LookupCache.TTL <= 0 {
		return fmt.Errorf("LOOKUP_CACHE_TTL must be positive")
	}
	if c.LookupCache.SweepInterval < 0 {
		return fmt.Errorf("LOOKUP_CACHE_SWEEP must not be negative")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
