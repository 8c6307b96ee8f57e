// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

/*
Package metadata implements the outbound metadata providers.

  - Cinemeta: series metadata (GET {base}/meta/series/{id}.json) and catalog
    search (GET {base}/catalog/series/top/search={query}.json). It is the
    MetadataProvider consumed by the selection engine.
  - TVMaze: secondary episode summaries (lookup by IMDb id, then
    episodebynumber) and external id resolution. It is the SummaryProvider
    consumed by the description resolver.
  - Lookup: search passthrough and show id resolution with an LRU cache.

# Resilience

Every provider request goes through the same pipeline:

	circuit breaker (sony/gobreaker) -> retry (avast/retry-go) -> rate limiter (x/time/rate) -> HTTP

A 404 is reported as ErrNotFound, never retried and never counted as a
breaker failure. Other 4xx responses are not retried. 429 and 5xx responses
and transport errors are retried up to the configured attempts. While the
breaker is open, calls fail fast with ErrCircuitOpen.

Absence is not an error at the provider boundary: SeriesMeta returns nil, nil
for unknown shows and EpisodeSummary returns "" for unknown episodes.
*/
package metadata
