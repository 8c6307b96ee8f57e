// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

// Package present builds display-ready episode records.
package present

import (
	"strings"
	"time"

	"github.com/tomtom215/reruns/internal/episode"
	"github.com/tomtom215/reruns/internal/models"
)

// displayType is the record type reported to callers.
const displayType = "episode"

// BuildDisplay assembles the outward-facing record for one episode. It has no
// side effects and never fails; absent optional fields are left empty.
func BuildDisplay(meta *models.SeriesMeta, episodeID string, season, ep int, v *models.Video, description string) models.EpisodeDisplay {
	if meta == nil {
		meta = &models.SeriesMeta{}
	}
	if v == nil {
		v = &models.Video{}
	}

	label := episode.FormatLabel(season, ep)
	epTitle := v.EpisodeTitle()

	return models.EpisodeDisplay{
		ID:           episodeID,
		Type:         displayType,
		Series:       meta.ID,
		SeriesName:   meta.Name,
		Title:        composeTitle(meta.Name, epTitle, label),
		EpisodeTitle: epTitle,
		Label:        label,
		Season:       season,
		Episode:      ep,
		Description:  description,
		Poster:       meta.Poster,
		Background:   meta.Background,
		Logo:         meta.Logo,
		Thumbnail:    v.Thumbnail,
		Rating:       meta.IMDBRating,
		Runtime:      meta.Runtime,
		ReleaseInfo:  releaseInfo(v.ReleaseDate(), meta.ReleaseInfo),
		Released:     v.ReleaseDate(),
		Genres:       meta.Genres,
		Cast:         meta.Cast,
		Director:     meta.Director,
		Writer:       meta.Writer,
		Links:        meta.Links,
	}
}

// composeTitle renders "{show} — {episode title} ({label})", dropping the
// episode title when there is none.
func composeTitle(showName, epTitle, label string) string {
	var b strings.Builder
	b.WriteString(showName)
	b.WriteString(" — ")
	if epTitle != "" {
		b.WriteString(epTitle)
		b.WriteByte(' ')
	}
	b.WriteString("(")
	b.WriteString(label)
	b.WriteString(")")
	return b.String()
}

// releaseInfo returns the episode's release year when its date is usable,
// otherwise the show-level release info.
func releaseInfo(released, showRelease string) string {
	if year := releaseYear(released); year != "" {
		return year
	}
	return showRelease
}

// releaseYear extracts a four-digit year from a provider date string.
func releaseYear(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006")
		}
	}
	if len(s) >= 4 && isDigits(s[:4]) && (len(s) == 4 || !isDigit(s[4])) {
		return s[:4]
	}
	return ""
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
