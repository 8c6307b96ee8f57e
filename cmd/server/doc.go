// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

/*
Command server runs the Reruns HTTP API.

Reruns tracks the TV shows each user likes and, on request, picks a random
episode to rewatch. Episodes not watched within the recency window are
preferred; when every eligible episode was watched recently, a rewatch is
picked instead. Show and episode metadata come from Cinemeta, with TVmaze
as an optional source of episode summaries and external id resolution.

# Startup

 1. Configuration: koanf v2, defaults then config file then environment
 2. Logging: zerolog, configured from LOG_LEVEL and LOG_FORMAT
 3. Store: Badger (default) or DuckDB, selected by STORE_BACKEND
 4. Providers: Cinemeta client, optional TVmaze client, id lookup cache
 5. Engine and API: selection engine, description resolver, chi router
 6. Supervision: suture v4 tree running the HTTP server and cache janitor

# Signals

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for up to HTTP_SHUTDOWN_TIMEOUT before the store is
closed.

# Example

	export STORE_BACKEND=duckdb
	export STORE_PATH=/var/lib/reruns/reruns.duckdb
	export TVMAZE_ENABLED=true
	./reruns

The default listen address is 0.0.0.0:8099.
*/
package main
