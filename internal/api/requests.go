// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package api

import "github.com/tomtom215/reruns/internal/models"

// UserRequest carries the user id path parameter.
type UserRequest struct {
	UserID string `validate:"required,userid"`
}

// ShowPathRequest carries the user and show path parameters.
type ShowPathRequest struct {
	UserID string `validate:"required,userid"`
	ShowID string `validate:"required,showid"`
}

// SearchRequest represents the validated query for GET /search.
type SearchRequest struct {
	Query string `validate:"required,min=1,max=200"`
}

// EpisodeRequest represents the episode id path parameter of GET /episodes/{episodeID}.
type EpisodeRequest struct {
	EpisodeID string `validate:"required,episodeid"`
}

// AddShowRequest is the body of POST /users/{userID}/shows.
// ID may be a show id or an external id; Name, Poster and Background are
// fetched from the metadata provider when Name is omitted.
type AddShowRequest struct {
	ID         string `json:"id" validate:"required,lookupid"`
	Name       string `json:"name,omitempty" validate:"max=500"`
	Poster     string `json:"poster,omitempty" validate:"omitempty,url,max=2048"`
	Background string `json:"background,omitempty" validate:"omitempty,url,max=2048"`
}

// SetSeasonsRequest is the body of PUT /users/{userID}/shows/{showID}/seasons.
// Non-positive and duplicate seasons are dropped by the store.
type SetSeasonsRequest struct {
	Seasons []int `json:"seasons" validate:"max=500"`
}

// PickRequest represents the validated parameters of GET /users/{userID}/pick.
type PickRequest struct {
	UserID string `validate:"required,userid"`
	Show   string `validate:"omitempty,showid"`
}

// HistoryRequest represents the validated parameters of GET /users/{userID}/history.
type HistoryRequest struct {
	UserID string `validate:"required,userid"`
	Limit  int    `validate:"min=1,max=500"`
}

// PickResponse is the data of a successful pick.
type PickResponse struct {
	Episode      *models.EpisodeDisplay `json:"episode"`
	WasUnwatched bool                   `json:"was_unwatched"`
}

// ClearHistoryResponse is the data of DELETE /users/{userID}/history.
type ClearHistoryResponse struct {
	Deleted int `json:"deleted"`
}
