// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reruns/internal/cache"
	"github.com/tomtom215/reruns/internal/config"
	"github.com/tomtom215/reruns/internal/episode"
)

// External id sources understood by TVMaze.IMDBForExternal.
const (
	SourceTVMaze = "tvmaze"
	SourceTVDB   = "tvdb"
)

// TVMaze supplies secondary episode summaries and external id resolution.
type TVMaze struct {
	client *httpClient

	// IMDb id -> TVmaze show id
	showIDs *cache.LRU[int]
}

// NewTVMaze creates a TVmaze client. Show id lookups are cached with the
// given bounds.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTVMaze(cfg *config.ProviderConfig, cacheCfg config.LookupCacheConfig, logger zerolog.Logger) *TVMaze {
	return &TVMaze{
		client:  newHTTPClient("tvmaze", cfg, logger),
		showIDs: cache.NewLRU[int](cacheCfg.Capacity, cacheCfg.TTL),
	}
}

// CleanupExpired drops expired show id mappings and returns how many were
// removed.
func (t *TVMaze) CleanupExpired() int {
	return t.showIDs.CleanupExpired()
}

// Stats reports the hit, miss and size counters of the show id cache.
func (t *TVMaze) Stats() (hits, misses int64, size int) {
	return t.showIDs.Stats()
}

// CircuitState reports the provider's circuit breaker state.
func (t *TVMaze) CircuitState() string {
	return t.client.breaker.State()
}

type tvmazeShow struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Externals struct {
		IMDB    string `json:"imdb"`
		TheTVDB int    `json:"thetvdb"`
	} `json:"externals"`
}

type tvmazeEpisode struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Season  int    `json:"season"`
	Number  int    `json:"number"`
	Summary string `json:"summary"`
}

// EpisodeSummary returns the TVmaze summary (HTML) for an episode of the
// show identified by its IMDb id. Unknown shows or episodes yield "".
func (t *TVMaze) EpisodeSummary(ctx context.Context, showID string, season, ep int) (string, error) {
	if !episode.IsShowID(showID) || season < 0 || ep < 0 {
		return "", nil
	}

	tvmazeID, err := t.showIDForIMDB(ctx, showID)
	if err != nil {
		return "", err
	}
	if tvmazeID == 0 {
		return "", nil
	}

	query := url.Values{}
	query.Set("season", strconv.Itoa(season))
	query.Set("number", strconv.Itoa(ep))

	var out tvmazeEpisode
	err = t.client.getJSON(ctx, "/shows/"+strconv.Itoa(tvmazeID)+"/episodebynumber", query, &out)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("episode %s S%dE%d: %w", showID, season, ep, err)
	}
	return out.Summary, nil
}

// showIDForIMDB maps an IMDb id to a TVmaze show id, 0 when unknown.
func (t *TVMaze) showIDForIMDB(ctx context.Context, imdbID string) (int, error) {
	if id, ok := t.showIDs.Get(imdbID); ok {
		return id, nil
	}

	query := url.Values{}
	query.Set("imdb", imdbID)

	var show tvmazeShow
	err := t.client.getJSON(ctx, "/lookup/shows", query, &show)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup show %s: %w", imdbID, err)
	}

	if show.ID > 0 {
		t.showIDs.Add(imdbID, show.ID)
	}
	return show.ID, nil
}

// IMDBForExternal maps a TVmaze or TheTVDB show id to its IMDb id.
// ErrNotFound is returned when the show is unknown or has no IMDb link.
func (t *TVMaze) IMDBForExternal(ctx context.Context, source, id string) (string, error) {
	var (
		path  string
		query url.Values
	)
	switch source {
	case SourceTVMaze:
		path = "/shows/" + url.PathEscape(id)
	case SourceTVDB:
		path = "/lookup/shows"
		query = url.Values{}
		query.Set("thetvdb", id)
	default:
		return "", fmt.Errorf("%w: source %q", ErrUnsupportedID, source)
	}

	var show tvmazeShow
	if err := t.client.getJSON(ctx, path, query, &show); err != nil {
		return "", fmt.Errorf("resolve %s:%s: %w", source, id, err)
	}
	if !episode.IsShowID(show.Externals.IMDB) {
		return "", fmt.Errorf("resolve %s:%s: %w", source, id, ErrNotFound)
	}

	if show.ID > 0 {
		t.showIDs.Add(show.Externals.IMDB, show.ID)
	}
	return show.Externals.IMDB, nil
}
