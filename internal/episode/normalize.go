// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package episode

import (
	"github.com/tomtom215/reruns/internal/models"
)

// Normalized is a provider record in the uniform internal shape.
//
// ID equals "<showId>:<Season>:<Episode>" unless the source already carried a
// well-formed canonical id, which is kept verbatim. Callers must not assume ID
// and (Season, Episode) are always mutually derivable.
type Normalized struct {
	ID      string
	Season  int
	Episode int
	Source  models.Video
}

// Streamable reports whether the episode has real numbering (season and
// episode both positive). Specials and extras are not streamable.
func (n *Normalized) Streamable() bool {
	return n.Season > 0 && n.Episode > 0
}

// DeriveSeasonEpisode resolves season and episode numbers for a raw record.
// Each field independently falls through explicit field, embedded id, then 0.
func DeriveSeasonEpisode(v *models.Video) (season, episode int) {
	parsed, parsedOK := ParseID(v.ID)

	switch {
	case usable(v.Season):
		season = *v.Season
	case parsedOK:
		season = parsed.Season
	}

	switch {
	case usable(v.Episode):
		episode = *v.Episode
	case usable(v.Number):
		episode = *v.Number
	case parsedOK:
		episode = parsed.Episode
	}

	return season, episode
}

// usable reports whether an explicit numbering field can be used as-is.
func usable(n *int) bool {
	return n != nil && *n >= 0
}

// Normalize converts one raw record of the given show into the uniform shape.
// It performs no I/O.
func Normalize(meta *models.SeriesMeta, v *models.Video) Normalized {
	season, ep := DeriveSeasonEpisode(v)

	var seriesID string
	if meta != nil {
		seriesID = meta.ID
	}

	return Normalized{
		ID:      BuildID(seriesID, season, ep, v.ID),
		Season:  season,
		Episode: ep,
		Source:  *v,
	}
}

// NormalizeAll normalizes every video of meta in provider order.
func NormalizeAll(meta *models.SeriesMeta) []Normalized {
	if meta == nil || len(meta.Videos) == 0 {
		return nil
	}

	out := make([]Normalized, 0, len(meta.Videos))
	for i := range meta.Videos {
		out = append(out, Normalize(meta, &meta.Videos[i]))
	}
	return out
}

// Find returns the normalized episode of meta matching id.
// An exact canonical id match wins; otherwise the first episode whose derived
// season and episode equal those encoded in id is returned.
func Find(meta *models.SeriesMeta, id ID) (Normalized, bool) {
	all := NormalizeAll(meta)
	canonical := id.String()

	for i := range all {
		if all[i].ID == canonical {
			return all[i], true
		}
	}
	for i := range all {
		if all[i].Season == id.Season && all[i].Episode == id.Episode {
			return all[i], true
		}
	}
	return Normalized{}, false
}
