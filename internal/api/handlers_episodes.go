// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reruns/internal/episode"
	"github.com/tomtom215/reruns/internal/metrics"
	"github.com/tomtom215/reruns/internal/models"
	"github.com/tomtom215/reruns/internal/present"
	"github.com/tomtom215/reruns/internal/recommend"
)

// Search passes the provider's catalog search results through in order.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := SearchRequest{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	results, err := h.lookup.Search(r.Context(), req.Query)
	if err != nil {
		respondProviderError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, results, start)
}

// GetEpisode renders one episode by canonical id.
func (h *Handler) GetEpisode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := EpisodeRequest{EpisodeID: chi.URLParam(r, "episodeID")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, "INVALID_EPISODE_ID", apiErr.Message, nil)
		return
	}
	id, ok := episode.ParseID(req.EpisodeID)
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_EPISODE_ID", "EpisodeID must be an episode id in the form tt0903747:1:1", nil)
		return
	}

	meta, err := h.series.SeriesMeta(r.Context(), id.ShowID)
	if err != nil {
		respondProviderError(w, err)
		return
	}
	if meta == nil {
		respondError(w, http.StatusNotFound, "SHOW_NOT_FOUND", "Show not found", nil)
		return
	}

	n, found := episode.Find(meta, id)
	if !found {
		respondError(w, http.StatusNotFound, "EPISODE_NOT_FOUND", "Episode not found", nil)
		return
	}

	display := h.render(r, meta, n.ID, n.Season, n.Episode, &n.Source)
	respondSuccess(w, http.StatusOK, display, start)
}

// Pick selects the next episode for the user, renders it and records the
// watch. The show query parameter restricts the pick to one tracked show.
// An empty pool answers 404 NO_EPISODE_AVAILABLE.
func (h *Handler) Pick(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := PickRequest{
		UserID: chi.URLParam(r, "userID"),
		Show:   strings.TrimSpace(r.URL.Query().Get("show")),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	pick, err := h.picker.PickForUser(r.Context(), req.UserID, req.Show)
	if err != nil {
		metrics.RecordPick(metrics.OutcomeError, time.Since(start))
		respondError(w, http.StatusInternalServerError, "PICK_FAILED", "Failed to pick an episode", err)
		return
	}
	if pick == nil {
		metrics.RecordPick(metrics.OutcomeEmpty, time.Since(start))
		respondError(w, http.StatusNotFound, "NO_EPISODE_AVAILABLE", "No episode available", nil)
		return
	}

	display := h.render(r, pick.SeriesMeta, pick.EpisodeID, pick.Season, pick.Episode, &pick.Video)
	h.recordWatch(r, req.UserID, pick, &display)

	outcome := metrics.OutcomeRewatch
	if pick.WasUnwatched {
		outcome = metrics.OutcomeUnwatched
	}
	metrics.RecordPick(outcome, time.Since(start))

	respondSuccess(w, http.StatusOK, PickResponse{Episode: &display, WasUnwatched: pick.WasUnwatched}, start)
}

func (h *Handler) render(r *http.Request, meta *models.SeriesMeta, episodeID string, season, ep int, v *models.Video) models.EpisodeDisplay {
	description := h.describer.Resolve(r.Context(), meta, v, season, ep)
	return present.BuildDisplay(meta, episodeID, season, ep, v, description)
}

// recordWatch persists the pick. A failure is logged and does not fail the
// request; the pick has already been made.
func (h *Handler) recordWatch(r *http.Request, userID string, pick *recommend.Pick, display *models.EpisodeDisplay) {
	entry := models.WatchHistoryEntry{
		UserID:      userID,
		EpisodeID:   pick.EpisodeID,
		ShowID:      pick.Show.ID,
		Season:      pick.Season,
		Episode:     pick.Episode,
		ShowName:    display.SeriesName,
		EpisodeName: display.EpisodeTitle,
		Poster:      display.Poster,
		WatchedAt:   time.Now().UTC(),
	}
	if entry.ShowName == "" {
		entry.ShowName = pick.Show.Name
	}
	if entry.Poster == "" {
		entry.Poster = pick.Show.Poster
	}

	if err := h.store.RecordWatch(r.Context(), entry); err != nil {
		h.logger.Warn().Err(err).
			Str("user_id", sanitizeLogValue(userID)).
			Str("episode_id", pick.EpisodeID).
			Msg("Failed to record watch")
	}
}
