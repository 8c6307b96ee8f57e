// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

// Package describe chooses the description shown for an episode.
//
// Providers frequently fill an episode's overview with the series blurb. An
// episode description that matches the show description (ignoring case and
// whitespace) is treated as missing, and a secondary provider is consulted
// before falling back to whatever text is available.
package describe

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/tomtom215/reruns/internal/models"
)

// SummaryProvider fetches an episode summary from a secondary source.
// The returned text may contain HTML markup and entities.
type SummaryProvider interface {
	EpisodeSummary(ctx context.Context, showID string, season, episode int) (string, error)
}

// Resolver picks the best available episode description. It is safe for
// concurrent use.
type Resolver struct {
	summaries SummaryProvider
	logger    zerolog.Logger
}

// NewResolver creates a resolver. summaries may be nil, in which case the
// secondary provider step is skipped.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResolver(summaries SummaryProvider, logger zerolog.Logger) *Resolver {
	return &Resolver{
		summaries: summaries,
		logger:    logger.With().Str("component", "describe").Logger(),
	}
}

// Resolve returns the description for one episode. It never fails: secondary
// provider errors are logged and treated as no result.
//
// Order of preference:
//  1. The episode description, when it differs from the show description
//  2. The secondary provider's summary, HTML stripped
//  3. The episode description, even if it repeats the show's
//  4. The show description (possibly empty)
func (r *Resolver) Resolve(ctx context.Context, meta *models.SeriesMeta, v *models.Video, season, episode int) string {
	var showDesc, showID string
	if meta != nil {
		showDesc = meta.Description
		showID = meta.ID
	}

	var epDesc string
	if v != nil {
		epDesc = v.Summary()
	}

	epNorm := normalizeText(epDesc)
	if epNorm != "" && epNorm != normalizeText(showDesc) {
		return epDesc
	}

	if text := r.secondary(ctx, showID, season, episode); text != "" {
		return text
	}

	if strings.TrimSpace(epDesc) != "" {
		return epDesc
	}
	return showDesc
}

// secondary queries the secondary provider, swallowing failures.
func (r *Resolver) secondary(ctx context.Context, showID string, season, episode int) string {
	if r.summaries == nil || showID == "" {
		return ""
	}

	raw, err := r.summaries.EpisodeSummary(ctx, showID, season, episode)
	if err != nil {
		r.logger.Debug().
			Err(err).
			Str("show_id", showID).
			Int("season", season).
			Int("episode", episode).
			Msg("secondary summary lookup failed")
		return ""
	}

	return PlainText(raw)
}

// normalizeText collapses whitespace and case-folds s for comparison.
// A Caser is stateful, so one is created per call.
func normalizeText(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	if collapsed == "" {
		return ""
	}
	return cases.Fold().String(collapsed)
}
