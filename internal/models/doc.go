// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

/*
Package models defines data structures shared across the Reruns service.

Model Categories:

1. Registry Models:
  - Show: A tracked show as stored in a user's registry
  - SeasonFilter: Enabled seasons for one (user, show) pair

2. History Models:
  - WatchHistoryEntry: One watched episode per (user, episode id)

3. Provider Models:
  - SeriesMeta: Show-level metadata returned by the metadata provider
  - Video: A raw per-episode record with optional numbering fields
  - SearchResult: A show search hit passed through from the provider

4. Presentation Models:
  - EpisodeDisplay: The outward-facing episode record

5. API Request/Response Models:
  - APIResponse: Standard response wrapper
  - APIError: Error details
  - Metadata: Response metadata (timestamp, query time)

Provider models tolerate missing and loosely-typed fields: numbering fields on
Video decode from JSON numbers or numeric strings and stay nil otherwise.
*/
package models
