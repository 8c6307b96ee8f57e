// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

/*
Package api provides the HTTP REST API for Reruns.

Routes (chi):

	GET    /api/v1/health/live
	GET    /api/v1/health/ready
	GET    /api/v1/search?q=
	GET    /api/v1/episodes/{episodeID}
	GET    /api/v1/users/{userID}/shows
	POST   /api/v1/users/{userID}/shows
	DELETE /api/v1/users/{userID}/shows/{showID}
	GET    /api/v1/users/{userID}/shows/{showID}/seasons
	PUT    /api/v1/users/{userID}/shows/{showID}/seasons
	GET    /api/v1/users/{userID}/pick?show=
	GET    /api/v1/users/{userID}/history?limit=
	DELETE /api/v1/users/{userID}/history
	GET    /metrics

Every JSON response uses the models.APIResponse envelope. Errors carry a
machine-readable code:

	VALIDATION_ERROR      path, query or body failed validation
	INVALID_BODY          body is not valid JSON
	INVALID_EPISODE_ID    episode id failed to parse
	NOT_FOUND             show not tracked, or unknown route
	SHOW_NOT_FOUND        provider has no such show
	EPISODE_NOT_FOUND     show has no such episode
	NO_EPISODE_AVAILABLE  no eligible episode to pick
	STORE_ERROR           registry or history failure
	PROVIDER_ERROR        upstream metadata request failed
	PROVIDER_UNAVAILABLE  upstream circuit breaker is open
	PICK_FAILED           selection was cancelled
	TOO_MANY_REQUESTS     rate limit exceeded

Middleware order: request id and logging context, real IP, panic recovery,
request logging, CORS, Prometheus metrics, then per-group rate limiting and
security headers.
*/
package api
