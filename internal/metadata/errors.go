// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package metadata

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a provider answers 404.
	ErrNotFound = errors.New("metadata: not found")

	// ErrCircuitOpen is returned while a provider's circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("metadata: circuit open")

	// ErrUnsupportedID is returned by Lookup.Resolve for ids it cannot map.
	ErrUnsupportedID = errors.New("metadata: unsupported show id")
)

// StatusError reports an unexpected HTTP status from a provider.
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
}

// Retryable reports whether the request may succeed if repeated.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
