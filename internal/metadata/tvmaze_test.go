// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reruns/internal/config"
)

var testCacheConfig = config.LookupCacheConfig{Capacity: 16, TTL: time.Hour}

type tvmazeFixture struct {
	lookups  atomic.Int32
	episodes atomic.Int32
	srv      *httptest.Server
}

func newTVMazeFixture(t *testing.T) *tvmazeFixture {
	t.Helper()

	f := &tvmazeFixture{}
	mux := http.NewServeMux()
	mux.HandleFunc("/lookup/shows", func(w http.ResponseWriter, r *http.Request) {
		f.lookups.Add(1)
		q := r.URL.Query()
		switch {
		case q.Get("imdb") == "tt0000001", q.Get("thetvdb") == "81189":
			_, _ = w.Write([]byte(`{"id": 169, "name": "Test Show", "externals": {"imdb": "tt0000001", "thetvdb": 81189}}`))
		case q.Get("thetvdb") == "5":
			_, _ = w.Write([]byte(`{"id": 5, "name": "No Link", "externals": {"imdb": null}}`))
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/shows/169", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": 169, "externals": {"imdb": "tt0000001"}}`))
	})
	mux.HandleFunc("/shows/169/episodebynumber", func(w http.ResponseWriter, r *http.Request) {
		f.episodes.Add(1)
		q := r.URL.Query()
		if q.Get("season") != "1" || q.Get("number") != "2" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"id": 12, "name": "Second", "season": 1, "number": 2, "summary": "<p>The <b>second</b> one.</p>"}`))
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *tvmazeFixture) client() *TVMaze {
	return NewTVMaze(testProviderConfig(f.srv.URL), testCacheConfig, zerolog.Nop())
}

func TestTVMaze_EpisodeSummary(t *testing.T) {
	t.Parallel()

	f := newTVMazeFixture(t)
	tv := f.client()

	summary, err := tv.EpisodeSummary(context.Background(), "tt0000001", 1, 2)
	if err != nil {
		t.Fatalf("EpisodeSummary() error = %v", err)
	}
	if summary != "<p>The <b>second</b> one.</p>" {
		t.Errorf("summary = %q", summary)
	}

	// second call reuses the cached show id
	if _, err := tv.EpisodeSummary(context.Background(), "tt0000001", 1, 2); err != nil {
		t.Fatalf("second EpisodeSummary() error = %v", err)
	}
	if f.lookups.Load() != 1 {
		t.Errorf("lookups = %d, want 1", f.lookups.Load())
	}
	if f.episodes.Load() != 2 {
		t.Errorf("episode requests = %d, want 2", f.episodes.Load())
	}

	hits, misses, size := tv.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("Stats() = %d, %d, %d; want 1, 1, 1", hits, misses, size)
	}
	if got := tv.CircuitState(); got != "closed" {
		t.Errorf("CircuitState() = %q, want closed", got)
	}
}

func TestTVMaze_EpisodeSummaryAbsent(t *testing.T) {
	t.Parallel()

	f := newTVMazeFixture(t)
	tv := f.client()

	tests := []struct {
		name    string
		showID  string
		season  int
		episode int
	}{
		{name: "unknown show", showID: "tt9999999", season: 1, episode: 1},
		{name: "unknown episode", showID: "tt0000001", season: 9, episode: 9},
		{name: "not an imdb id", showID: "tvmaze:169", season: 1, episode: 2},
		{name: "negative numbers", showID: "tt0000001", season: -1, episode: 2},
	}
	for _, tt := range tests {
		summary, err := tv.EpisodeSummary(context.Background(), tt.showID, tt.season, tt.episode)
		if err != nil {
			t.Errorf("%s: error = %v", tt.name, err)
		}
		if summary != "" {
			t.Errorf("%s: summary = %q, want empty", tt.name, summary)
		}
	}
}

func TestTVMaze_IMDBForExternal(t *testing.T) {
	t.Parallel()

	f := newTVMazeFixture(t)
	tv := f.client()

	tests := []struct {
		name    string
		source  string
		id      string
		want    string
		wantErr error
	}{
		{name: "tvmaze id", source: SourceTVMaze, id: "169", want: "tt0000001"},
		{name: "tvdb id", source: SourceTVDB, id: "81189", want: "tt0000001"},
		{name: "unknown tvdb id", source: SourceTVDB, id: "1", wantErr: ErrNotFound},
		{name: "show without imdb link", source: SourceTVDB, id: "5", wantErr: ErrNotFound},
		{name: "unsupported source", source: "anidb", id: "1", wantErr: ErrUnsupportedID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tv.IMDBForExternal(context.Background(), tt.source, tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IMDBForExternal() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, ok := tv.showIDs.Get("tt0000001"); !ok {
		t.Error("resolution should prime the show id cache")
	}
}
