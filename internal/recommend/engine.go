// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/tomtom215/reruns/internal/episode"
	"github.com/tomtom215/reruns/internal/models"
)

// ErrMissingCollaborator is returned by NewEngine when a data source is nil.
var ErrMissingCollaborator = errors.New("recommend: missing collaborator")

// Engine selects the next episode to play. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	registry ShowRegistry
	history  WatchHistory
	metadata MetadataProvider

	// Random source (protected by rngMu for concurrent access)
	rng   *rand.Rand
	rngMu sync.Mutex

	requestCount   atomic.Int64
	pickCount      atomic.Int64
	emptyCount     atomic.Int64
	evaluatedCount atomic.Int64
	providerErrors atomic.Int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand replaces the engine's random source. Use a fixed seed in tests.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// eligibleSet is the pick pool produced by evaluating one show.
type eligibleSet struct {
	show      models.Show
	meta      *models.SeriesMeta
	episodes  []episode.Normalized
	unwatched bool
}

// NewEngine creates a new selection engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, deps Collaborators, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch {
	case deps.Registry == nil:
		return nil, fmt.Errorf("%w: registry", ErrMissingCollaborator)
	case deps.History == nil:
		return nil, fmt.Errorf("%w: history", ErrMissingCollaborator)
	case deps.Metadata == nil:
		return nil, fmt.Errorf("%w: metadata", ErrMissingCollaborator)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		registry: deps.Registry,
		history:  deps.History,
		metadata: deps.Metadata,
		rng:      rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for episode shuffling
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// PickForUser loads the user's show pool from the registry and picks from it.
// A registry failure is returned as an error since there is no pool to search.
func (e *Engine) PickForUser(ctx context.Context, userID, targetShowID string) (*Pick, error) {
	shows, err := e.registry.ShowsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load show pool: %w", err)
	}
	return e.Pick(ctx, userID, shows, targetShowID)
}

// Pick selects one episode from showPool. When targetShowID is non-empty only
// that show is considered. A nil pick with a nil error means nothing is
// available; the error is non-nil only when ctx is done.
func (e *Engine) Pick(ctx context.Context, userID string, showPool []models.Show, targetShowID string) (*Pick, error) {
	start := time.Now()
	e.requestCount.Add(1)

	logger := e.logger.With().
		Str("user_id", userID).
		Str("target_show", targetShowID).
		Logger()

	candidates := filterPool(showPool, targetShowID)
	if len(candidates) == 0 {
		e.emptyCount.Add(1)
		logger.Debug().Int("pool", len(showPool)).Msg("empty show pool")
		return nil, nil
	}

	order := e.shuffle(candidates)

	var (
		set *eligibleSet
		err error
	)
	if e.config.ParallelEvaluation && len(order) > 1 {
		set, err = e.firstEligibleParallel(ctx, userID, order)
	} else {
		set, err = e.firstEligible(ctx, userID, order)
	}
	if err != nil {
		return nil, err
	}

	if set == nil {
		e.emptyCount.Add(1)
		logger.Debug().
			Int("shows", len(order)).
			Dur("latency", time.Since(start)).
			Msg("no eligible episode")
		return nil, nil
	}

	pick := e.draw(set)
	e.pickCount.Add(1)

	logger.Debug().
		Str("show_id", pick.Show.ID).
		Str("episode_id", pick.EpisodeID).
		Bool("was_unwatched", pick.WasUnwatched).
		Int("pool_size", len(set.episodes)).
		Dur("latency", time.Since(start)).
		Msg("episode picked")

	return pick, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:       e.requestCount.Load(),
		Picks:          e.pickCount.Load(),
		Empty:          e.emptyCount.Load(),
		ShowsEvaluated: e.evaluatedCount.Load(),
		ProviderErrors: e.providerErrors.Load(),
	}
}

// filterPool restricts shows to targetShowID when one is given.
func filterPool(shows []models.Show, targetShowID string) []models.Show {
	if targetShowID == "" {
		return shows
	}
	for i := range shows {
		if shows[i].ID == targetShowID {
			return []models.Show{shows[i]}
		}
	}
	return nil
}

// shuffle returns a uniformly permuted copy of shows.
func (e *Engine) shuffle(shows []models.Show) []models.Show {
	out := make([]models.Show, len(shows))
	copy(out, shows)

	e.rngMu.Lock()
	e.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	e.rngMu.Unlock()

	return out
}

// intn draws from the shared random source.
func (e *Engine) intn(n int) int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(n)
}

// firstEligible evaluates shows in order and stops at the first eligible one.
func (e *Engine) firstEligible(ctx context.Context, userID string, order []models.Show) (*eligibleSet, error) {
	for i := range order {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pick canceled: %w", err)
		}
		if set := e.evaluate(ctx, userID, order[i]); set != nil {
			return set, nil
		}
	}
	return nil, nil
}

// firstEligibleParallel evaluates all shows concurrently and returns the
// earliest eligible one in shuffled order, regardless of completion order.
func (e *Engine) firstEligibleParallel(ctx context.Context, userID string, order []models.Show) (*eligibleSet, error) {
	results := make([]*eligibleSet, len(order))

	p := pool.New().WithMaxGoroutines(e.config.MaxConcurrency)
	for i := range order {
		p.Go(func() {
			if ctx.Err() != nil {
				return
			}
			results[i] = e.evaluate(ctx, userID, order[i])
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pick canceled: %w", err)
	}

	for _, set := range results {
		if set != nil {
			return set, nil
		}
	}
	return nil, nil
}

// evaluate builds the pick pool for one show, or nil if it has none.
func (e *Engine) evaluate(ctx context.Context, userID string, show models.Show) *eligibleSet {
	e.evaluatedCount.Add(1)

	if e.config.ShowTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.ShowTimeout)
		defer cancel()
	}

	logger := e.logger.With().Str("user_id", userID).Str("show_id", show.ID).Logger()

	meta, err := e.metadata.SeriesMeta(ctx, show.ID)
	if err != nil {
		e.providerErrors.Add(1)
		logger.Warn().Err(err).Msg("metadata fetch failed, skipping show")
		return nil
	}
	if meta == nil || len(meta.Videos) == 0 {
		logger.Debug().Msg("show has no episodes")
		return nil
	}
	if meta.ID == "" {
		withID := *meta
		withID.ID = show.ID
		meta = &withID
	}

	working := streamableOrAll(episode.NormalizeAll(meta))
	working = e.applySeasonFilter(ctx, logger, userID, show.ID, working)

	watched := e.recentlyWatched(ctx, logger, userID, show.ID)
	unwatched := make([]episode.Normalized, 0, len(working))
	for i := range working {
		if _, seen := watched[working[i].ID]; !seen {
			unwatched = append(unwatched, working[i])
		}
	}

	if len(unwatched) > 0 {
		return &eligibleSet{show: show, meta: meta, episodes: unwatched, unwatched: true}
	}
	return &eligibleSet{show: show, meta: meta, episodes: working, unwatched: false}
}

// streamableOrAll keeps streamable episodes, or everything when none are.
func streamableOrAll(all []episode.Normalized) []episode.Normalized {
	streamable := make([]episode.Normalized, 0, len(all))
	for i := range all {
		if all[i].Streamable() {
			streamable = append(streamable, all[i])
		}
	}
	if len(streamable) > 0 {
		return streamable
	}
	return all
}

// applySeasonFilter restricts working to the user's enabled seasons. A filter
// that would leave nothing, or that cannot be loaded, is ignored.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) applySeasonFilter(ctx context.Context, logger zerolog.Logger, userID, showID string, working []episode.Normalized) []episode.Normalized {
	seasons, err := e.registry.SeasonFilter(ctx, userID, showID)
	if err != nil {
		logger.Warn().Err(err).Msg("season filter unavailable, using all seasons")
		return working
	}
	if len(seasons) == 0 {
		return working
	}

	enabled := make(map[int]struct{}, len(seasons))
	for _, s := range seasons {
		enabled[s] = struct{}{}
	}

	filtered := make([]episode.Normalized, 0, len(working))
	for i := range working {
		if _, ok := enabled[working[i].Season]; ok {
			filtered = append(filtered, working[i])
		}
	}

	if len(filtered) == 0 {
		logger.Debug().Ints("seasons", seasons).Msg("season filter matched nothing, ignoring it")
		return working
	}
	return filtered
}

// recentlyWatched loads recent episode ids, treating failures as no history.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) recentlyWatched(ctx context.Context, logger zerolog.Logger, userID, showID string) map[string]struct{} {
	ids, err := e.history.RecentWatchedIDs(ctx, userID, showID, e.config.RecencyWindowDays)
	if err != nil {
		logger.Warn().Err(err).Msg("watch history unavailable, treating all episodes as unwatched")
		return nil
	}
	return ids
}

// draw picks one episode uniformly from set.
func (e *Engine) draw(set *eligibleSet) *Pick {
	chosen := set.episodes[e.intn(len(set.episodes))]

	return &Pick{
		Show:         set.show,
		SeriesMeta:   set.meta,
		EpisodeID:    chosen.ID,
		Season:       chosen.Season,
		Episode:      chosen.Episode,
		Video:        chosen.Source,
		WasUnwatched: set.unwatched,
	}
}
