// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reruns/internal/metrics"
)

// Expirer is a cache that can purge its expired entries on demand and
// report its counters.
type Expirer interface {
	CleanupExpired() int
	Stats() (hits, misses int64, size int)
}

// CacheJanitorService periodically sweeps expired entries out of the
// lookup caches. Expired entries are already invisible to readers; the
// sweep only returns their memory.
type CacheJanitorService struct {
	caches   map[string]Expirer
	interval time.Duration
	logger   zerolog.Logger
}

// NewCacheJanitorService creates a janitor over the named caches. A
// non-positive interval falls back to one hour.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(caches map[string]Expirer, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CacheJanitorService{
		caches:   caches,
		interval: interval,
		logger:   logger.With().Str("service", "cache-janitor").Logger(),
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	s.logger.Debug().
		Dur("interval", s.interval).
		Int("caches", len(s.caches)).
		Msg("cache janitor starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep purges every cache once, publishes the remaining sizes and returns
// the total entries removed.
func (s *CacheJanitorService) Sweep() int {
	total := 0
	for name, c := range s.caches {
		n := c.CleanupExpired()
		hits, misses, size := c.Stats()
		metrics.RecordCacheEntries(name, size)
		if n > 0 {
			s.logger.Debug().
				Str("cache", name).
				Int("removed", n).
				Int("remaining", size).
				Int64("hits", hits).
				Int64("misses", misses).
				Msg("expired cache entries purged")
		}
		total += n
	}
	return total
}

func (s *CacheJanitorService) String() string {
	return "cache-janitor"
}
