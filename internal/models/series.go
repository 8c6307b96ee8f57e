// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package models

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// SeriesMeta is the show-level record returned by the metadata provider.
type SeriesMeta struct {
	ID          string   `json:"id"`
	Type        string   `json:"type,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Poster      string   `json:"poster,omitempty"`
	Background  string   `json:"background,omitempty"`
	Logo        string   `json:"logo,omitempty"`
	ReleaseInfo string   `json:"releaseInfo,omitempty"`
	IMDBRating  string   `json:"imdbRating,omitempty"`
	Runtime     string   `json:"runtime,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Cast        []string `json:"cast,omitempty"`
	Director    []string `json:"director,omitempty"`
	Writer      []string `json:"writer,omitempty"`
	Links       []Link   `json:"links,omitempty"`
	Videos      []Video  `json:"videos,omitempty"`
}

// Link is a provider cross-reference such as a genre, cast or IMDb link.
type Link struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	URL      string `json:"url"`
}

// Video is a raw per-episode record from the metadata provider.
//
// Providers disagree on shape: numbering may arrive as season/episode, as a
// season/number pair, or only inside ID. Every numbering field is therefore
// optional and nil when absent or unusable.
type Video struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Name        string `json:"name,omitempty"`
	Season      *int   `json:"season,omitempty"`
	Episode     *int   `json:"episode,omitempty"`
	Number      *int   `json:"number,omitempty"`
	Released    string `json:"released,omitempty"`
	FirstAired  string `json:"firstAired,omitempty"`
	Overview    string `json:"overview,omitempty"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

// EpisodeTitle returns the episode's title, falling back to its name.
func (v *Video) EpisodeTitle() string {
	if t := strings.TrimSpace(v.Title); t != "" {
		return t
	}
	return strings.TrimSpace(v.Name)
}

// Summary returns the episode-level description, preferring overview.
func (v *Video) Summary() string {
	if v.Overview != "" {
		return v.Overview
	}
	return v.Description
}

// ReleaseDate returns the raw release timestamp, if any.
func (v *Video) ReleaseDate() string {
	if v.Released != "" {
		return v.Released
	}
	return v.FirstAired
}

// UnmarshalJSON decodes a Video, accepting numbering fields as JSON numbers or
// numeric strings. Values that are not integers decode as nil.
func (v *Video) UnmarshalJSON(data []byte) error {
	// Fields are listed explicitly: goccy/go-json cannot populate an embedded
	// pointer to an unexported alias type.
	var raw struct {
		ID          string          `json:"id"`
		Title       string          `json:"title"`
		Name        string          `json:"name"`
		Season      json.RawMessage `json:"season"`
		Episode     json.RawMessage `json:"episode"`
		Number      json.RawMessage `json:"number"`
		Released    string          `json:"released"`
		FirstAired  string          `json:"firstAired"`
		Overview    string          `json:"overview"`
		Description string          `json:"description"`
		Thumbnail   string          `json:"thumbnail"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*v = Video{
		ID:          raw.ID,
		Title:       raw.Title,
		Name:        raw.Name,
		Season:      looseInt(raw.Season),
		Episode:     looseInt(raw.Episode),
		Number:      looseInt(raw.Number),
		Released:    raw.Released,
		FirstAired:  raw.FirstAired,
		Overview:    raw.Overview,
		Description: raw.Description,
		Thumbnail:   raw.Thumbnail,
	}
	return nil
}

// looseInt converts a raw JSON number or numeric string to an int pointer.
func looseInt(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	text := string(raw)
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			return nil
		}
		text = strings.TrimSpace(unquoted)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}

	n := int(f)
	return &n
}

// SearchResult is a show search hit, passed through from the provider in order.
type SearchResult struct {
	ID          string `json:"id"`
	Type        string `json:"type,omitempty"`
	Name        string `json:"name"`
	Poster      string `json:"poster,omitempty"`
	ReleaseInfo string `json:"releaseInfo,omitempty"`
}
