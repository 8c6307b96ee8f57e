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

	"github.com/tomtom215/reruns/internal/models"
)

// ListShows returns the user's tracked shows.
func (h *Handler) ListShows(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := UserRequest{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	shows, err := h.store.ShowsForUser(r.Context(), req.UserID)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondSuccess(w, http.StatusOK, shows, start)
}

// AddShow tracks a show for the user. External ids are resolved to show ids
// first; when the body has no name the provider metadata fills the display
// fields.
func (h *Handler) AddShow(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	user := UserRequest{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&user); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	var req AddShowRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	showID, err := h.lookup.Resolve(r.Context(), req.ID)
	if err != nil {
		respondProviderError(w, err)
		return
	}

	show := models.Show{
		ID:         showID,
		Name:       strings.TrimSpace(req.Name),
		Poster:     req.Poster,
		Background: req.Background,
	}
	if show.Name == "" {
		meta, err := h.series.SeriesMeta(r.Context(), showID)
		if err != nil {
			respondProviderError(w, err)
			return
		}
		if meta == nil {
			respondError(w, http.StatusNotFound, "SHOW_NOT_FOUND", "Show not found", nil)
			return
		}
		show.Name = meta.Name
		if show.Poster == "" {
			show.Poster = meta.Poster
		}
		if show.Background == "" {
			show.Background = meta.Background
		}
	}

	if err := h.store.AddShow(r.Context(), user.UserID, show); err != nil {
		respondStoreError(w, err, "")
		return
	}

	h.logger.Info().
		Str("user_id", sanitizeLogValue(user.UserID)).
		Str("show_id", showID).
		Msg("Show added")

	respondSuccess(w, http.StatusCreated, show, start)
}

// RemoveShow stops tracking a show. Its season filter is deleted with it.
func (h *Handler) RemoveShow(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := ShowPathRequest{UserID: chi.URLParam(r, "userID"), ShowID: chi.URLParam(r, "showID")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.store.RemoveShow(r.Context(), req.UserID, req.ShowID); err != nil {
		respondStoreError(w, err, "Show is not tracked")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"removed": req.ShowID}, start)
}

// GetSeasons returns the show's enabled seasons. An empty list means all.
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := ShowPathRequest{UserID: chi.URLParam(r, "userID"), ShowID: chi.URLParam(r, "showID")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	seasons, err := h.store.SeasonFilter(r.Context(), req.UserID, req.ShowID)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondSuccess(w, http.StatusOK, models.SeasonFilter{ShowID: req.ShowID, EnabledSeasons: seasons}, start)
}

// SetSeasons replaces the show's enabled seasons.
func (h *Handler) SetSeasons(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	path := ShowPathRequest{UserID: chi.URLParam(r, "userID"), ShowID: chi.URLParam(r, "showID")}
	if apiErr := validateRequest(&path); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	var req SetSeasonsRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	stored, err := h.store.SetSeasonFilter(r.Context(), path.UserID, path.ShowID, req.Seasons)
	if err != nil {
		respondStoreError(w, err, "Show is not tracked")
		return
	}
	respondSuccess(w, http.StatusOK, models.SeasonFilter{ShowID: path.ShowID, EnabledSeasons: stored}, start)
}
