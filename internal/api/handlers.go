// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package api

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reruns/internal/models"
	"github.com/tomtom215/reruns/internal/recommend"
	"github.com/tomtom215/reruns/internal/store"
)

// Picker selects the next episode for a user.
type Picker interface {
	PickForUser(ctx context.Context, userID, targetShowID string) (*recommend.Pick, error)
}

// Describer chooses an episode's description.
type Describer interface {
	Resolve(ctx context.Context, meta *models.SeriesMeta, v *models.Video, season, episode int) string
}

// SeriesSource fetches show metadata.
type SeriesSource interface {
	SeriesMeta(ctx context.Context, showID string) (*models.SeriesMeta, error)
}

// ShowLookup searches shows and resolves external identifiers.
type ShowLookup interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
	Resolve(ctx context.Context, id string) (string, error)
}

// CircuitReporter exposes a provider circuit breaker state.
type CircuitReporter interface {
	CircuitState() string
}

// Dependencies bundles the collaborators served over HTTP. Circuits is
// optional and only feeds the readiness report.
type Dependencies struct {
	Store     store.Store
	Picker    Picker
	Describer Describer
	Series    SeriesSource
	Lookup    ShowLookup
	Circuits  map[string]CircuitReporter
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness
//   - handlers_shows.go: show registry and season filters
//   - handlers_episodes.go: search, direct episode lookup, pick
//   - handlers_history.go: watch history
type Handler struct {
	store     store.Store
	picker    Picker
	describer Describer
	series    SeriesSource
	lookup    ShowLookup
	circuits  map[string]CircuitReporter
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates a new API handler. Every dependency is required.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(deps Dependencies, logger zerolog.Logger) (*Handler, error) {
	switch {
	case deps.Store == nil:
		return nil, errors.New("api: store is required")
	case deps.Picker == nil:
		return nil, errors.New("api: picker is required")
	case deps.Describer == nil:
		return nil, errors.New("api: describer is required")
	case deps.Series == nil:
		return nil, errors.New("api: series source is required")
	case deps.Lookup == nil:
		return nil, errors.New("api: show lookup is required")
	}

	return &Handler{
		store:     deps.Store,
		picker:    deps.Picker,
		describer: deps.Describer,
		series:    deps.Series,
		lookup:    deps.Lookup,
		circuits:  deps.Circuits,
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
	}, nil
}
