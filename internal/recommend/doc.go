// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

// Package recommend implements the episode selection engine.
//
// # Algorithm
//
// Given a user's show pool (optionally restricted to one show), the engine:
//
//  1. Shuffles the pool with its random source. The shuffle decides search
//     order only.
//  2. Walks the shuffled shows and stops at the first one with a non-empty
//     eligible episode set.
//  3. For a show, normalizes every provider episode and keeps the
//     streamable ones (season > 0 and episode > 0) unless none exist.
//  4. Applies the user's season filter, ignoring it when it would leave
//     nothing.
//  5. Prefers episodes not watched within the recency window; when every
//     episode was watched recently the whole set stays eligible.
//  6. Draws one episode uniformly at random.
//
// # Fairness
//
// Selection is uniform over episodes within the winning show only. A pool in
// which several shows are eligible does not yield a uniform distribution over
// shows across calls beyond what the shuffle provides; this matches the
// behavior users already rely on and is kept on purpose.
//
// # Failure Semantics
//
// Missing data never produces an error. A metadata, season filter or history
// failure for one show is logged and treated as that show contributing
// nothing (or, for filters and history, as no restriction). Pick returns a nil
// pick when nothing is available and an error only when the caller's context
// is done.
//
// # Determinism
//
// The engine draws from a single *rand.Rand guarded by a mutex. Tests inject
// a fixed seed with WithRand. In parallel mode show evaluation runs
// concurrently but the winner is still the earliest eligible show in shuffled
// order, and the final draw happens after evaluation, so a seeded engine
// returns the same pick in both modes.
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, recommend.Collaborators{
//	    Registry: store,
//	    History:  store,
//	    Metadata: cinemeta,
//	}, logger)
//
//	pick, err := engine.PickForUser(ctx, userID, "")
//	if pick == nil {
//	    // nothing available
//	}
package recommend
