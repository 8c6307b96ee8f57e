// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reruns/internal/cache"
	"github.com/tomtom215/reruns/internal/metrics"
)

type countingExpirer struct {
	calls   atomic.Int32
	removed int
}

func (c *countingExpirer) CleanupExpired() int {
	c.calls.Add(1)
	return c.removed
}

func (c *countingExpirer) Stats() (hits, misses int64, size int) {
	return 0, 0, 7
}

func TestCacheJanitorService_Sweep(t *testing.T) {
	t.Parallel()

	a := &countingExpirer{removed: 2}
	b := &countingExpirer{removed: 3}
	svc := NewCacheJanitorService(map[string]Expirer{"a": a, "b": b}, time.Minute, zerolog.Nop())

	if got := svc.Sweep(); got != 5 {
		t.Errorf("Sweep() = %d, want 5", got)
	}
	if a.calls.Load() != 1 || b.calls.Load() != 1 {
		t.Error("each cache should be swept exactly once")
	}
}

func TestCacheJanitorService_SweepsRealLRU(t *testing.T) {
	t.Parallel()

	lru := cache.NewLRU[string](10, 10*time.Millisecond)
	lru.Add("tvmaze:1", "tt0000001")
	lru.Add("tvmaze:2", "tt0000002")
	time.Sleep(25 * time.Millisecond)

	svc := NewCacheJanitorService(map[string]Expirer{"janitor-real-lru": lru}, time.Minute, zerolog.Nop())
	if got := svc.Sweep(); got != 2 {
		t.Errorf("Sweep() = %d, want 2", got)
	}
	if lru.Len() != 0 {
		t.Errorf("Len() = %d after sweep, want 0", lru.Len())
	}
	if got := testutil.ToFloat64(metrics.LookupCacheEntries.WithLabelValues("janitor-real-lru")); got != 0 {
		t.Errorf("entries gauge = %v, want 0", got)
	}
}

func TestCacheJanitorService_PublishesSizes(t *testing.T) {
	t.Parallel()

	svc := NewCacheJanitorService(map[string]Expirer{"janitor-sizes": &countingExpirer{}}, time.Minute, zerolog.Nop())
	svc.Sweep()

	if got := testutil.ToFloat64(metrics.LookupCacheEntries.WithLabelValues("janitor-sizes")); got != 7 {
		t.Errorf("entries gauge = %v, want 7", got)
	}
}

func TestCacheJanitorService_ServeTicks(t *testing.T) {
	t.Parallel()

	exp := &countingExpirer{}
	svc := NewCacheJanitorService(map[string]Expirer{"x": exp}, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for exp.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if exp.calls.Load() < 2 {
		t.Fatalf("expected at least 2 sweeps, got %d", exp.calls.Load())
	}
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestCacheJanitorService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewCacheJanitorService(nil, 0, zerolog.Nop())
	if svc.interval != time.Hour {
		t.Errorf("interval = %v, want 1h", svc.interval)
	}
	if svc.String() != "cache-janitor" {
		t.Errorf("String() = %q", svc.String())
	}
	if svc.Sweep() != 0 {
		t.Error("sweep of no caches should remove nothing")
	}
}
