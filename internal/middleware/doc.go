// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

// Package middleware provides HTTP instrumentation shared by the API router.
//
// PrometheusMetrics counts requests by method, chi route pattern and status
// code, observes latency, and tracks in-flight requests:
//
//	r := chi.NewRouter()
//	r.Use(middleware.PrometheusMetrics)
package middleware
