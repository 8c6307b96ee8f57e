// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

// Package services holds the suture.Service implementations run by the
// Reruns supervisor tree.
//
//   - HTTPServerService runs the API listener and shuts it down gracefully
//     when its context is canceled.
//   - CacheJanitorService periodically purges expired entries from the
//     show id lookup caches.
//
// Each service returns ctx.Err() on a requested stop so suture does not
// count it as a failure, and a wrapped error otherwise so it is restarted
// with backoff.
package services
