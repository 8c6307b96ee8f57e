// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package recommend

import (
	"context"

	"github.com/tomtom215/reruns/internal/models"
)

// ShowRegistry provides a user's tracked shows and season settings.
type ShowRegistry interface {
	// ShowsForUser returns the user's tracked shows. Order is not significant.
	ShowsForUser(ctx context.Context, userID string) ([]models.Show, error)

	// SeasonFilter returns the enabled seasons for a show.
	// An empty result means every season is eligible.
	SeasonFilter(ctx context.Context, userID, showID string) ([]int, error)
}

// WatchHistory answers recency queries over a user's watch history.
type WatchHistory interface {
	// RecentWatchedIDs returns canonical episode ids of the show the user
	// watched within the last windowDays days.
	RecentWatchedIDs(ctx context.Context, userID, showID string, windowDays int) (map[string]struct{}, error)
}

// MetadataProvider fetches show metadata including the episode list.
type MetadataProvider interface {
	// SeriesMeta returns the show's metadata, or nil when the provider has none.
	SeriesMeta(ctx context.Context, showID string) (*models.SeriesMeta, error)
}

// Collaborators bundles the engine's data sources.
type Collaborators struct {
	Registry ShowRegistry
	History  WatchHistory
	Metadata MetadataProvider
}

// Pick is the result of one selection.
type Pick struct {
	Show         models.Show
	SeriesMeta   *models.SeriesMeta
	EpisodeID    string
	Season       int
	Episode      int
	Video        models.Video
	WasUnwatched bool
}

// Stats holds engine counters since construction.
type Stats struct {
	Requests       int64 `json:"requests"`
	Picks          int64 `json:"picks"`
	Empty          int64 `json:"empty"`
	ShowsEvaluated int64 `json:"shows_evaluated"`
	ProviderErrors int64 `json:"provider_errors"`
}
