// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Collectors are registered on the default registry at init via promauto.
// Callers use the Record* helpers rather than touching the vectors directly
// so that label values stay consistent.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pick outcomes
const (
	OutcomeUnwatched = "unwatched"
	OutcomeRewatch   = "rewatch"
	OutcomeEmpty     = "empty"
	OutcomeError     = "error"
)

var (
	// Selection Metrics
	PicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reruns_picks_total",
			Help: "Total number of pick requests by outcome",
		},
		[]string{"outcome"}, // "unwatched", "rewatch", "empty", "error"
	)

	PickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reruns_pick_duration_seconds",
			Help:    "Duration of pick requests in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// Provider Metrics
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reruns_provider_requests_total",
			Help: "Total number of outbound metadata provider requests",
		},
		[]string{"provider", "status"}, // status: "ok", "not_found", "error"
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reruns_provider_request_duration_seconds",
			Help:    "Outbound metadata provider request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Lookup Cache Metrics
	LookupCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reruns_lookup_cache_hits_total",
			Help: "Total number of show id resolution cache hits",
		},
	)

	LookupCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reruns_lookup_cache_misses_total",
			Help: "Total number of show id resolution cache misses",
		},
	)

	LookupCacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reruns_lookup_cache_entries",
			Help: "Entries held by each lookup cache after the last sweep",
		},
		[]string{"cache"},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reruns_store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reruns_store_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"backend", "operation"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordPick records a pick request and its outcome.
func RecordPick(outcome string, duration time.Duration) {
	PicksTotal.WithLabelValues(outcome).Inc()
	PickDuration.Observe(duration.Seconds())
}

// RecordProviderRequest records one outbound provider request.
func RecordProviderRequest(provider, status string, duration time.Duration) {
	ProviderRequestsTotal.WithLabelValues(provider, status).Inc()
	ProviderRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordLookupCache records a resolution cache hit or miss.
func RecordLookupCache(hit bool) {
	if hit {
		LookupCacheHits.Inc()
		return
	}
	LookupCacheMisses.Inc()
}

// RecordCacheEntries sets the entry count of a named lookup cache.
func RecordCacheEntries(cache string, entries int) {
	LookupCacheEntries.WithLabelValues(cache).Set(float64(entries))
}

// RecordStoreOperation records a store call and counts it as failed when err is set.
func RecordStoreOperation(backend, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(backend, operation).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
