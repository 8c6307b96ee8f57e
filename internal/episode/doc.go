// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

// Package episode implements the canonical episode identifier and the
// normalization of raw provider episode records.
//
// # Canonical Identifier
//
// An episode is identified by "<showId>:<season>:<episode>", where showId is
// a provider id of the form "tt" followed by digits:
//
//	tt0903747:5:14
//
// Identifiers returned to callers are a wire contract. They must parse with
// ParseID and must come back unchanged from BuildID when supplied as the
// fallback id.
//
// # Normalization
//
// Provider records carry numbering inconsistently. DeriveSeasonEpisode
// resolves each of season and episode independently through three tiers:
//
//  1. The explicit numeric field (episode falls back to "number")
//  2. The numbers embedded in the record's own identifier
//  3. Zero
//
// Normalize then builds the canonical id, preserving an already well-formed
// provider id verbatim even when its embedded numbers differ from the
// derived ones.
package episode
