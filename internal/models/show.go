// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package models

import "time"

// Show is a tracked show in a user's registry.
// The ID is unique per user and lives in the metadata provider's id space (tt-prefixed).
type Show struct {
	ID         string    `json:"id" validate:"required"`
	Name       string    `json:"name"`
	Poster     string    `json:"poster,omitempty"`
	Background string    `json:"background,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}

// SeasonFilter lists the enabled seasons for one (user, show) pair.
// An empty EnabledSeasons means every season is eligible.
type SeasonFilter struct {
	ShowID         string `json:"show_id"`
	EnabledSeasons []int  `json:"enabled_seasons"`
}

// WatchHistoryEntry records one watched episode.
// There is at most one entry per (UserID, EpisodeID); recording the same
// episode again overwrites WatchedAt and the descriptive fields.
type WatchHistoryEntry struct {
	UserID      string    `json:"user_id"`
	EpisodeID   string    `json:"episode_id"`
	ShowID      string    `json:"show_id"`
	Season      int       `json:"season"`
	Episode     int       `json:"episode"`
	ShowName    string    `json:"show_name"`
	EpisodeName string    `json:"episode_name"`
	Poster      string    `json:"poster,omitempty"`
	WatchedAt   time.Time `json:"watched_at"`
}
