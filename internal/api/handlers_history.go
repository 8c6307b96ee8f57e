// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const defaultHistoryLimit = 20

// History returns the user's most recent watch entries, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := HistoryRequest{
		UserID: chi.URLParam(r, "userID"),
		Limit:  getIntParam(r, "limit", defaultHistoryLimit),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	entries, err := h.store.RecentHistory(r.Context(), req.UserID, req.Limit)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondSuccess(w, http.StatusOK, entries, start)
}

// ClearHistory deletes every watch entry of the user.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := UserRequest{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	n, err := h.store.ClearHistory(r.Context(), req.UserID)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}

	h.logger.Info().Str("user_id", sanitizeLogValue(req.UserID)).Int("deleted", n).Msg("History cleared")
	respondSuccess(w, http.StatusOK, ClearHistoryResponse{Deleted: n}, start)
}
