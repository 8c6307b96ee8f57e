// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package episode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// showIDPrefix is the two-letter prefix of provider show ids.
const showIDPrefix = "tt"

// ID is a parsed canonical episode identifier.
type ID struct {
	ShowID  string
	Season  int
	Episode int
}

// String renders the identifier in canonical form.
func (id ID) String() string {
	return fmt.Sprintf("%s:%d:%d", id.ShowID, id.Season, id.Episode)
}

// IsShowID reports whether s has the provider show id shape ("tt" + digits).
func IsShowID(s string) bool {
	if len(s) <= len(showIDPrefix) || !strings.HasPrefix(s, showIDPrefix) {
		return false
	}
	for _, r := range s[len(showIDPrefix):] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseID parses a canonical episode identifier.
// It reports false for anything other than exactly "<tt+digits>:<int>:<int>".
func ParseID(text string) (ID, bool) {
	parts := strings.Split(text, ":")
	if len(parts) != 3 || !IsShowID(parts[0]) {
		return ID{}, false
	}

	season, ok := parseSegment(parts[1])
	if !ok {
		return ID{}, false
	}
	ep, ok := parseSegment(parts[2])
	if !ok {
		return ID{}, false
	}

	return ID{ShowID: parts[0], Season: season, Episode: ep}, true
}

// parseSegment parses one numeric id segment. Only plain decimal digits are
// accepted so that a parsed id always re-renders to the same text.
func parseSegment(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsValidID reports whether text is a well-formed canonical identifier.
func IsValidID(text string) bool {
	_, ok := ParseID(text)
	return ok
}

// BuildID returns the canonical identifier for an episode.
//
// A well-formed fallbackID is returned unchanged regardless of season and
// episode, so upstream canonical ids survive local re-derivation. Otherwise
// the id is synthesized from seriesID; with no seriesID the fallback is
// returned as-is, possibly empty.
func BuildID(seriesID string, season, episode int, fallbackID string) string {
	if IsValidID(fallbackID) {
		return fallbackID
	}
	if seriesID == "" {
		return fallbackID
	}
	return fmt.Sprintf("%s:%d:%d", seriesID, season, episode)
}

// number is the set of numeric types FormatLabel accepts.
type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// FormatLabel renders "SxxEyy" with at least two digits per field.
// NaN, infinities and negative values render as 0.
func FormatLabel[S, E number](season S, episode E) string {
	return fmt.Sprintf("S%02dE%02d", labelPart(float64(season)), labelPart(float64(episode)))
}

func labelPart(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int64(math.Trunc(f))
}
