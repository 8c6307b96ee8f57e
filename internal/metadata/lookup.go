// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package metadata

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reruns/internal/cache"
	"github.com/tomtom215/reruns/internal/episode"
	"github.com/tomtom215/reruns/internal/metrics"
	"github.com/tomtom215/reruns/internal/models"
)

// Searcher runs a show catalog search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// ExternalResolver maps a foreign show id to an IMDb id.
type ExternalResolver interface {
	IMDBForExternal(ctx context.Context, source, id string) (string, error)
}

// Lookup answers show searches and resolves user-supplied show ids to the
// canonical IMDb form.
type Lookup struct {
	search   Searcher
	external ExternalResolver
	resolved *cache.LRU[string]
	logger   zerolog.Logger
}

// NewLookup creates a Lookup. external may be nil, in which case only IMDb
// ids resolve.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLookup(search Searcher, external ExternalResolver, resolved *cache.LRU[string], logger zerolog.Logger) *Lookup {
	return &Lookup{
		search:   search,
		external: external,
		resolved: resolved,
		logger:   logger.With().Str("component", "lookup").Logger(),
	}
}

// Search passes the query through to the catalog, preserving result order.
func (l *Lookup) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	return l.search.Search(ctx, query)
}

// Resolve maps id to an IMDb show id. "tt…" ids map to themselves;
// "tvmaze:<n>" and "tvdb:<n>" are resolved through the external resolver
// and cached.
func (l *Lookup) Resolve(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if episode.IsShowID(id) {
		return id, nil
	}

	source, foreignID, ok := splitExternalID(id)
	if !ok || l.external == nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedID, id)
	}

	key := source + ":" + foreignID
	if imdbID, hit := l.resolved.Get(key); hit {
		metrics.RecordLookupCache(true)
		return imdbID, nil
	}
	metrics.RecordLookupCache(false)

	imdbID, err := l.external.IMDBForExternal(ctx, source, foreignID)
	if err != nil {
		return "", err
	}

	l.resolved.Add(key, imdbID)
	l.logger.Debug().Str("from", key).Str("to", imdbID).Msg("resolved external show id")
	return imdbID, nil
}

// splitExternalID splits "source:digits" for the supported sources.
func splitExternalID(id string) (source, foreignID string, ok bool) {
	source, foreignID, found := strings.Cut(id, ":")
	if !found || foreignID == "" {
		return "", "", false
	}
	source = strings.ToLower(source)
	if source != SourceTVMaze && source != SourceTVDB {
		return "", "", false
	}
	for _, r := range foreignID {
		if r < '0' || r > '9' {
			return "", "", false
		}
	}
	return source, foreignID, true
}
