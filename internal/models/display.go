// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package models

// EpisodeDisplay is the display-ready episode record returned to callers.
// Optional fields are omitted when the provider did not supply them.
type EpisodeDisplay struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Series       string   `json:"series"`
	SeriesName   string   `json:"series_name"`
	Title        string   `json:"title"`
	EpisodeTitle string   `json:"episode_title,omitempty"`
	Label        string   `json:"label"`
	Season       int      `json:"season"`
	Episode      int      `json:"episode"`
	Description  string   `json:"description"`
	Poster       string   `json:"poster,omitempty"`
	Background   string   `json:"background,omitempty"`
	Logo         string   `json:"logo,omitempty"`
	Thumbnail    string   `json:"thumbnail,omitempty"`
	Rating       string   `json:"rating,omitempty"`
	Runtime      string   `json:"runtime,omitempty"`
	ReleaseInfo  string   `json:"release_info,omitempty"`
	Released     string   `json:"released,omitempty"`
	Genres       []string `json:"genres,omitempty"`
	Cast         []string `json:"cast,omitempty"`
	Director     []string `json:"director,omitempty"`
	Writer       []string `json:"writer,omitempty"`
	Links        []Link   `json:"links,omitempty"`
}
