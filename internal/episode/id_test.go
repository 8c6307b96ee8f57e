// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package episode

import (
	"math"
	"testing"
)

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  ID
		ok    bool
	}{
		{"well formed", "tt0903747:5:14", ID{ShowID: "tt0903747", Season: 5, Episode: 14}, true},
		{"zero numbering", "tt1:0:0", ID{ShowID: "tt1", Season: 0, Episode: 0}, true},
		{"missing prefix", "0903747:5:14", ID{}, false},
		{"wrong prefix", "nm0903747:5:14", ID{}, false},
		{"prefix only", "tt:1:2", ID{}, false},
		{"letters in show id", "tt09a3:1:2", ID{}, false},
		{"two parts", "tt0903747:5", ID{}, false},
		{"one part", "tt0903747", ID{}, false},
		{"four parts", "tt0903747:5:14:1", ID{}, false},
		{"non numeric season", "tt0903747:x:14", ID{}, false},
		{"non numeric episode", "tt0903747:5:NaN", ID{}, false},
		{"empty segment", "tt0903747::14", ID{}, false},
		{"negative season", "tt0903747:-1:14", ID{}, false},
		{"decimal episode", "tt0903747:1:1.5", ID{}, false},
		{"empty", "", ID{}, false},
		{"overflow", "tt1:99999999999999999999999:1", ID{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseID(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseID(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseID(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseID_RendersBack(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"tt0903747:5:14", "tt1:0:0", "tt42:10:100"} {
		id, ok := ParseID(s)
		if !ok {
			t.Fatalf("ParseID(%q) failed", s)
		}
		if id.String() != s {
			t.Errorf("ParseID(%q).String() = %q", s, id.String())
		}
	}
}

func TestBuildID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		seriesID string
		season   int
		episode  int
		fallback string
		want     string
	}{
		{"synthesized", "tt100", 2, 3, "", "tt100:2:3"},
		{"well formed fallback wins", "tt100", 2, 3, "tt100:9:9", "tt100:9:9"},
		{"fallback from other show kept", "tt100", 1, 1, "tt200:1:1", "tt200:1:1"},
		{"malformed fallback ignored", "tt100", 2, 3, "tt100-2-3", "tt100:2:3"},
		{"no series uses fallback", "", 2, 3, "custom-id", "custom-id"},
		{"no series no fallback", "", 2, 3, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := BuildID(tt.seriesID, tt.season, tt.episode, tt.fallback); got != tt.want {
				t.Errorf("BuildID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildID_Idempotent(t *testing.T) {
	t.Parallel()

	first := BuildID("tt555", 4, 7, "")
	second := BuildID("tt555", 4, 7, first)
	if second != first {
		t.Errorf("BuildID not idempotent: %q then %q", first, second)
	}

	// Re-supplying with different numbers must not rewrite the id.
	third := BuildID("tt555", 1, 1, first)
	if third != first {
		t.Errorf("BuildID rewrote canonical fallback: %q", third)
	}
}

func TestFormatLabel(t *testing.T) {
	t.Parallel()

	if got := FormatLabel(1, 5); got != "S01E05" {
		t.Errorf("FormatLabel(1, 5) = %q, want S01E05", got)
	}
	if got := FormatLabel(12, 104); got != "S12E104" {
		t.Errorf("FormatLabel(12, 104) = %q, want S12E104", got)
	}
	if got := FormatLabel(math.NaN(), math.NaN()); got != "S00E00" {
		t.Errorf("FormatLabel(NaN, NaN) = %q, want S00E00", got)
	}
	if got := FormatLabel(math.Inf(1), 3.0); got != "S00E03" {
		t.Errorf("FormatLabel(+Inf, 3) = %q, want S00E03", got)
	}
	if got := FormatLabel(-1, 2); got != "S00E02" {
		t.Errorf("FormatLabel(-1, 2) = %q, want S00E02", got)
	}
}

func TestIsShowID(t *testing.T) {
	t.Parallel()

	valid := []string{"tt1", "tt0903747"}
	invalid := []string{"", "tt", "t1", "TT123", "tt12a", "123"}

	for _, s := range valid {
		if !IsShowID(s) {
			t.Errorf("IsShowID(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsShowID(s) {
			t.Errorf("IsShowID(%q) = true, want false", s)
		}
	}
}
