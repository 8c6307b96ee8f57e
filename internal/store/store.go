// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

/*
Package store persists the show registry and watch history.

Two embedded backends implement Store:
  - badger: key-value storage, the default. Keys are prefixed per record kind
    and user; values are JSON.
  - duckdb: SQL tables with the recency window evaluated in the query.

Open selects the backend from config.StoreConfig. The returned Store owns its
database handle and must be closed by the caller:

	st, err := store.Open(&cfg.Store, logger)
	if err != nil {
		return err
	}
	defer st.Close()
*/
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reruns/internal/config"
	"github.com/tomtom215/reruns/internal/episode"
	"github.com/tomtom215/reruns/internal/metrics"
	"github.com/tomtom215/reruns/internal/models"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when a show is not tracked by the user.
	ErrNotFound = errors.New("store: not found")

	// ErrUserIDRequired is returned when an operation is called with an empty user id.
	ErrUserIDRequired = errors.New("store: user id is required")

	// ErrShowIDRequired is returned when an operation is called with an empty show id.
	ErrShowIDRequired = errors.New("store: show id is required")

	// ErrEpisodeIDRequired is returned when a watch entry has no episode id.
	ErrEpisodeIDRequired = errors.New("store: episode id is required")

	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("store: unknown backend")
)

// Store is the show registry and watch history of every user.
// Implementations are safe for concurrent use.
type Store interface {
	// ShowsForUser returns the user's tracked shows ordered by AddedAt.
	ShowsForUser(ctx context.Context, userID string) ([]models.Show, error)

	// AddShow tracks a show. Adding a tracked show again updates its
	// descriptive fields and keeps the original AddedAt.
	AddShow(ctx context.Context, userID string, show models.Show) error

	// RemoveShow stops tracking a show and deletes its season filter.
	// Returns ErrNotFound when the show is not tracked.
	RemoveShow(ctx context.Context, userID, showID string) error

	// SeasonFilter returns the enabled seasons for a show, ascending.
	// An empty result means every season is eligible.
	SeasonFilter(ctx context.Context, userID, showID string) ([]int, error)

	// SetSeasonFilter replaces the enabled seasons and returns the stored list.
	// Non-positive values are dropped and duplicates collapsed; an empty list
	// clears the filter. Returns ErrNotFound when the show is not tracked.
	SetSeasonFilter(ctx context.Context, userID, showID string, seasons []int) ([]int, error)

	// RecordWatch upserts a watch entry keyed by (UserID, EpisodeID).
	RecordWatch(ctx context.Context, entry models.WatchHistoryEntry) error

	// RecentWatchedIDs returns the episode ids of a show watched within the
	// last windowDays days. A window of zero or less yields an empty set.
	RecentWatchedIDs(ctx context.Context, userID, showID string, windowDays int) (map[string]struct{}, error)

	// RecentHistory returns up to limit entries, newest first.
	RecentHistory(ctx context.Context, userID string, limit int) ([]models.WatchHistoryEntry, error)

	// ClearHistory deletes every watch entry of the user and returns the count.
	ClearHistory(ctx context.Context, userID string) (int, error)

	// Ping verifies the backend is usable.
	Ping(ctx context.Context) error

	// Close releases the underlying database.
	Close() error
}

// Open creates the store selected by cfg.Backend.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg *config.StoreConfig, logger zerolog.Logger) (Store, error) {
	if cfg == nil {
		return nil, errors.New("store: config is required")
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = config.StoreBackendBadger
	}
	logger = logger.With().Str("component", "store").Str("backend", backend).Logger()

	switch backend {
	case config.StoreBackendBadger:
		return OpenBadger(cfg.Path, logger)
	case config.StoreBackendDuckDB:
		return OpenDuckDB(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// DefaultHistoryLimit is used by RecentHistory when limit is not positive.
const DefaultHistoryLimit = 50

// normalizeSeasons keeps positive season numbers, de-duplicated and sorted.
func normalizeSeasons(seasons []int) []int {
	seen := make(map[int]struct{}, len(seasons))
	out := make([]int, 0, len(seasons))
	for _, s := range seasons {
		if s <= 0 {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// prepareWatch validates an entry and fills derivable fields.
func prepareWatch(entry *models.WatchHistoryEntry, now time.Time) error {
	if entry.UserID == "" {
		return ErrUserIDRequired
	}
	if entry.EpisodeID == "" {
		return ErrEpisodeIDRequired
	}
	if entry.ShowID == "" {
		if id, ok := episode.ParseID(entry.EpisodeID); ok {
			entry.ShowID = id.ShowID
		}
	}
	if entry.ShowID == "" {
		return ErrShowIDRequired
	}
	if entry.WatchedAt.IsZero() {
		entry.WatchedAt = now
	}
	entry.WatchedAt = entry.WatchedAt.UTC()
	return nil
}

// windowStart returns the earliest watch time that still counts as recent.
func windowStart(now time.Time, windowDays int) time.Time {
	return now.Add(-time.Duration(windowDays) * 24 * time.Hour)
}

func requireIDs(userID, showID string) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	if showID == "" {
		return ErrShowIDRequired
	}
	return nil
}

// observe records operation latency and failure for a backend.
// Call it deferred with a pointer to the named error result.
func observe(backend, operation string, start time.Time, errp *error) {
	var err error
	if errp != nil && !errors.Is(*errp, ErrNotFound) {
		err = *errp
	}
	metrics.RecordStoreOperation(backend, operation, time.Since(start), err)
}
