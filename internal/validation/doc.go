// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

// Package validation provides struct validation using go-playground/validator v10.
//
// A singleton validator (created with WithRequiredStructEnabled) carries the
// service's identifier validators:
//
//   - showid: a provider show id, "tt" followed by digits
//   - episodeid: a canonical episode id, "<showid>:<season>:<episode>"
//   - lookupid: a show id or an external id ("tvmaze:<n>", "tvdb:<n>")
//   - userid: an opaque user id that fits in one URL path segment
//
// ValidateStruct returns a *RequestValidationError whose ToAPIError produces
// the VALIDATION_ERROR envelope used by the HTTP layer:
//
//	type AddShowRequest struct {
//	    ID   string `validate:"required,lookupid"`
//	    Name string `validate:"max=500"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// The validator caches struct metadata and is safe for concurrent use.
package validation
