// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

/*
Package config provides centralized configuration management for Reruns.

Configuration is layered with Koanf v2:
 1. Defaults: built-in values from defaultConfig()
 2. Config File: optional YAML file (CONFIG_PATH, ./config.yaml, /etc/reruns/config.yaml)
 3. Environment Variables: override any setting

# Sections

  - server: HTTP listen address and timeouts
  - logging: zerolog level, format and caller annotation
  - store: persistence backend (badger or duckdb) and its path
  - providers: Cinemeta and TVmaze base URLs, timeouts, throttling, retries
  - recommend: selection engine tuning (recency window, seed, parallelism)
  - lookup_cache: show id resolution cache bounds
  - security: CORS origins and inbound rate limiting

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8099)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include caller file:line (default: false)

Store:
  - STORE_BACKEND: badger or duckdb (default: badger)
  - STORE_PATH: data directory or database file (default: /data/reruns)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 512MB)
  - DUCKDB_THREADS: DuckDB worker threads, 0 for runtime default

Providers:
  - CINEMETA_URL, CINEMETA_TIMEOUT, CINEMETA_RATE_LIMIT, CINEMETA_RATE_BURST
  - CINEMETA_RETRY_ATTEMPTS, CINEMETA_RETRY_DELAY
  - TVMAZE_ENABLED, TVMAZE_URL, TVMAZE_TIMEOUT, TVMAZE_RATE_LIMIT, TVMAZE_RATE_BURST
  - TVMAZE_RETRY_ATTEMPTS, TVMAZE_RETRY_DELAY

Selection:
  - RERUNS_RECENCY_WINDOW_DAYS: days an episode counts as recently watched (default: 30)
  - RERUNS_SEED: fixed shuffle seed, 0 seeds from the clock
  - RERUNS_PARALLEL_EVALUATION: evaluate shows concurrently (default: false)
  - RERUNS_MAX_CONCURRENCY: concurrent show evaluations (default: 4)
  - RERUNS_SHOW_TIMEOUT: per-show evaluation timeout (default: 10s)

Lookup cache:
  - LOOKUP_CACHE_CAPACITY (default: 1024)
  - LOOKUP_CACHE_TTL (default: 24h)
  - LOOKUP_CACHE_SWEEP: expired entry purge interval, 0 disables (default: 1h)

Security:
  - CORS_ORIGINS: comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Config is immutable after Load() and safe for concurrent read access.
*/
package config
