// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package episode

import (
	"testing"

	"github.com/tomtom215/reruns/internal/models"
)

func intPtr(n int) *int { return &n }

func TestDeriveSeasonEpisode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		video       models.Video
		wantSeason  int
		wantEpisode int
	}{
		{
			name:        "explicit fields",
			video:       models.Video{Season: intPtr(2), Episode: intPtr(7)},
			wantSeason:  2,
			wantEpisode: 7,
		},
		{
			name:        "number alias",
			video:       models.Video{Season: intPtr(3), Number: intPtr(4)},
			wantSeason:  3,
			wantEpisode: 4,
		},
		{
			name:        "episode preferred over number",
			video:       models.Video{Season: intPtr(1), Episode: intPtr(5), Number: intPtr(50)},
			wantSeason:  1,
			wantEpisode: 5,
		},
		{
			name:        "id only",
			video:       models.Video{ID: "tt100:6:9"},
			wantSeason:  6,
			wantEpisode: 9,
		},
		{
			name:        "mixed tiers",
			video:       models.Video{ID: "tt100:6:9", Episode: intPtr(2)},
			wantSeason:  6,
			wantEpisode: 2,
		},
		{
			name:        "negative explicit falls back to id",
			video:       models.Video{ID: "tt100:4:1", Season: intPtr(-1), Episode: intPtr(3)},
			wantSeason:  4,
			wantEpisode: 3,
		},
		{
			name:        "nothing resolvable",
			video:       models.Video{ID: "garbage"},
			wantSeason:  0,
			wantEpisode: 0,
		},
		{
			name:        "season only",
			video:       models.Video{Season: intPtr(8)},
			wantSeason:  8,
			wantEpisode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			season, ep := DeriveSeasonEpisode(&tt.video)
			if season != tt.wantSeason || ep != tt.wantEpisode {
				t.Errorf("DeriveSeasonEpisode() = (%d, %d), want (%d, %d)",
					season, ep, tt.wantSeason, tt.wantEpisode)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	meta := &models.SeriesMeta{ID: "tt0903747", Name: "Breaking Bad"}

	t.Run("synthesizes id", func(t *testing.T) {
		t.Parallel()

		n := Normalize(meta, &models.Video{ID: "bb-pilot", Season: intPtr(1), Episode: intPtr(1)})
		if n.ID != "tt0903747:1:1" {
			t.Errorf("ID = %q, want tt0903747:1:1", n.ID)
		}
		if !n.Streamable() {
			t.Error("expected streamable episode")
		}
		if n.Source.ID != "bb-pilot" {
			t.Errorf("Source.ID = %q, want bb-pilot", n.Source.ID)
		}
	})

	t.Run("preserves provider canonical id", func(t *testing.T) {
		t.Parallel()

		n := Normalize(meta, &models.Video{ID: "tt0903747:2:3", Season: intPtr(5), Episode: intPtr(5)})
		if n.ID != "tt0903747:2:3" {
			t.Errorf("ID = %q, want tt0903747:2:3", n.ID)
		}
		if n.Season != 5 || n.Episode != 5 {
			t.Errorf("numbering = (%d, %d), want (5, 5)", n.Season, n.Episode)
		}
	})

	t.Run("special is not streamable", func(t *testing.T) {
		t.Parallel()

		n := Normalize(meta, &models.Video{Season: intPtr(0), Episode: intPtr(1)})
		if n.Streamable() {
			t.Error("season 0 episode should not be streamable")
		}
	})

	t.Run("nil meta keeps fallback", func(t *testing.T) {
		t.Parallel()

		n := Normalize(nil, &models.Video{ID: "loose"})
		if n.ID != "loose" {
			t.Errorf("ID = %q, want loose", n.ID)
		}
	})
}

func TestNormalize_RoundTrip(t *testing.T) {
	t.Parallel()

	meta := &models.SeriesMeta{ID: "tt42"}
	videos := []models.Video{
		{Season: intPtr(1), Episode: intPtr(2)},
		{ID: "tt42:3:4"},
		{ID: "tt42:9:9", Season: intPtr(1), Number: intPtr(1)},
		{ID: "no-structure"},
	}

	for i := range videos {
		n := Normalize(meta, &videos[i])
		if again := BuildID(meta.ID, n.Season, n.Episode, n.ID); again != n.ID {
			t.Errorf("video %d: BuildID(.., %q) = %q", i, n.ID, again)
		}
	}
}

func TestNormalizeAll(t *testing.T) {
	t.Parallel()

	if got := NormalizeAll(nil); got != nil {
		t.Errorf("NormalizeAll(nil) = %v, want nil", got)
	}

	meta := &models.SeriesMeta{
		ID: "tt7",
		Videos: []models.Video{
			{Season: intPtr(1), Episode: intPtr(1)},
			{Season: intPtr(1), Episode: intPtr(2)},
		},
	}
	all := NormalizeAll(meta)
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[1].ID != "tt7:1:2" {
		t.Errorf("all[1].ID = %q, want tt7:1:2", all[1].ID)
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	meta := &models.SeriesMeta{
		ID: "tt7",
		Videos: []models.Video{
			{ID: "tt7:1:1", Season: intPtr(1), Episode: intPtr(1), Title: "Pilot"},
			{Season: intPtr(2), Episode: intPtr(3), Title: "Derived"},
			{ID: "tt7:9:9", Season: intPtr(4), Episode: intPtr(4), Title: "Passthrough"},
		},
	}

	tests := []struct {
		id        string
		wantTitle string
		found     bool
	}{
		{"tt7:1:1", "Pilot", true},
		{"tt7:2:3", "Derived", true},
		{"tt7:9:9", "Passthrough", true},
		{"tt7:4:4", "Passthrough", true},
		{"tt7:5:5", "", false},
	}

	for _, tt := range tests {
		id, ok := ParseID(tt.id)
		if !ok {
			t.Fatalf("ParseID(%q) failed", tt.id)
		}
		got, found := Find(meta, id)
		if found != tt.found {
			t.Errorf("Find(%q) found = %v, want %v", tt.id, found, tt.found)
			continue
		}
		if found && got.Source.Title != tt.wantTitle {
			t.Errorf("Find(%q) title = %q, want %q", tt.id, got.Source.Title, tt.wantTitle)
		}
	}
}
