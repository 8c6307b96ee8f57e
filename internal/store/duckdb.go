// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reruns/internal/config"
	"github.com/tomtom215/reruns/internal/models"
)

const backendDuckDB = "duckdb"

// Timestamps are stored as UTC TIMESTAMP since extension autoload (ICU) is disabled.
// watch_history has no secondary index: upserts rewrite show_id and watched_at.
const duckdbSchema = `
	CREATE TABLE IF NOT EXISTS shows (
		user_id TEXT NOT NULL,
		show_id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		poster TEXT NOT NULL DEFAULT '',
		background TEXT NOT NULL DEFAULT '',
		added_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, show_id)
	);

	CREATE TABLE IF NOT EXISTS season_filters (
		user_id TEXT NOT NULL,
		show_id TEXT NOT NULL,
		seasons TEXT NOT NULL,
		PRIMARY KEY (user_id, show_id)
	);

	CREATE TABLE IF NOT EXISTS watch_history (
		user_id TEXT NOT NULL,
		episode_id TEXT NOT NULL,
		show_id TEXT NOT NULL,
		season INTEGER NOT NULL,
		episode INTEGER NOT NULL,
		show_name TEXT NOT NULL DEFAULT '',
		episode_name TEXT NOT NULL DEFAULT '',
		poster TEXT NOT NULL DEFAULT '',
		watched_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, episode_id)
	)
`

// DuckDBStore implements Store on an embedded DuckDB database.
type DuckDBStore struct {
	db     *sql.DB
	logger zerolog.Logger
	now    func() time.Time
}

// OpenDuckDB opens (or creates) the DuckDB database at cfg.Path and applies
// the schema. An empty path opens an in-memory database.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenDuckDB(cfg *config.StoreConfig, logger zerolog.Logger) (*DuckDBStore, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "512MB"
	}

	path := cfg.Path
	if path == "" {
		path = ":memory:"
	} else if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, threads, maxMemory)

	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &DuckDBStore{db: db, logger: logger, now: time.Now}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.createSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info().Str("path", path).Int("threads", threads).Str("max_memory", maxMemory).Msg("Store opened")
	return s, nil
}

func (s *DuckDBStore) createSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(duckdbSchema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

// ShowsForUser returns the user's tracked shows ordered by AddedAt.
func (s *DuckDBStore) ShowsForUser(ctx context.Context, userID string) (shows []models.Show, err error) {
	defer observe(backendDuckDB, "shows_for_user", time.Now(), &err)
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT show_id, name, poster, background, added_at
		FROM shows
		WHERE user_id = ?
		ORDER BY added_at, show_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shows: %w", err)
	}
	defer rows.Close()

	shows = []models.Show{}
	for rows.Next() {
		var show models.Show
		if err := rows.Scan(&show.ID, &show.Name, &show.Poster, &show.Background, &show.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan show: %w", err)
		}
		show.AddedAt = show.AddedAt.UTC()
		shows = append(shows, show)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shows: %w", err)
	}
	return shows, nil
}

// AddShow tracks a show for the user. Re-adding keeps the original added_at.
func (s *DuckDBStore) AddShow(ctx context.Context, userID string, show models.Show) (err error) {
	defer observe(backendDuckDB, "add_show", time.Now(), &err)
	if err := requireIDs(userID, show.ID); err != nil {
		return err
	}
	if show.AddedAt.IsZero() {
		show.AddedAt = s.now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO shows (user_id, show_id, name, poster, background, added_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, show_id) DO UPDATE SET
			name = excluded.name,
			poster = excluded.poster,
			background = excluded.background`,
		userID, show.ID, show.Name, show.Poster, show.Background, show.AddedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert show: %w", err)
	}
	return nil
}

// RemoveShow stops tracking a show and deletes its season filter.
func (s *DuckDBStore) RemoveShow(ctx context.Context, userID, showID string) (err error) {
	defer observe(backendDuckDB, "remove_show", time.Now(), &err)
	if err := requireIDs(userID, showID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE user_id = ? AND show_id = ?`, userID, showID)
	if err != nil {
		return fmt.Errorf("failed to delete show: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM season_filters WHERE user_id = ? AND show_id = ?`, userID, showID); err != nil {
		return fmt.Errorf("failed to delete season filter: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit show removal: %w", err)
	}
	return nil
}

// SeasonFilter returns the enabled seasons for a show.
func (s *DuckDBStore) SeasonFilter(ctx context.Context, userID, showID string) (seasons []int, err error) {
	defer observe(backendDuckDB, "season_filter", time.Now(), &err)
	if err := requireIDs(userID, showID); err != nil {
		return nil, err
	}

	var raw string
	err = s.db.QueryRowContext(ctx,
		`SELECT seasons FROM season_filters WHERE user_id = ? AND show_id = ?`, userID, showID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query season filter: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &seasons); err != nil {
		return nil, fmt.Errorf("failed to decode season filter: %w", err)
	}
	if seasons == nil {
		seasons = []int{}
	}
	return seasons, nil
}

// SetSeasonFilter replaces the enabled seasons for a tracked show.
func (s *DuckDBStore) SetSeasonFilter(ctx context.Context, userID, showID string, seasons []int) (stored []int, err error) {
	defer observe(backendDuckDB, "set_season_filter", time.Now(), &err)
	if err := requireIDs(userID, showID); err != nil {
		return nil, err
	}

	var tracked int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shows WHERE user_id = ? AND show_id = ?`, userID, showID).Scan(&tracked)
	if err != nil {
		return nil, fmt.Errorf("failed to query show: %w", err)
	}
	if tracked == 0 {
		return nil, ErrNotFound
	}

	stored = normalizeSeasons(seasons)
	if len(stored) == 0 {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM season_filters WHERE user_id = ? AND show_id = ?`, userID, showID); err != nil {
			return nil, fmt.Errorf("failed to clear season filter: %w", err)
		}
		return stored, nil
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to encode season filter: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO season_filters (user_id, show_id, seasons)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, show_id) DO UPDATE SET seasons = excluded.seasons`,
		userID, showID, string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert season filter: %w", err)
	}
	return stored, nil
}

// RecordWatch upserts a watch entry.
func (s *DuckDBStore) RecordWatch(ctx context.Context, entry models.WatchHistoryEntry) (err error) {
	defer observe(backendDuckDB, "record_watch", time.Now(), &err)
	if err := prepareWatch(&entry, s.now()); err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO watch_history
			(user_id, episode_id, show_id, season, episode, show_name, episode_name, poster, watched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, episode_id) DO UPDATE SET
			show_id = excluded.show_id,
			season = excluded.season,
			episode = excluded.episode,
			show_name = excluded.show_name,
			episode_name = excluded.episode_name,
			poster = excluded.poster,
			watched_at = excluded.watched_at`,
		entry.UserID, entry.EpisodeID, entry.ShowID, entry.Season, entry.Episode,
		entry.ShowName, entry.EpisodeName, entry.Poster, entry.WatchedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert watch entry: %w", err)
	}
	return nil
}

// RecentWatchedIDs returns the show's episode ids watched within the window.
func (s *DuckDBStore) RecentWatchedIDs(ctx context.Context, userID, showID string, windowDays int) (ids map[string]struct{}, err error) {
	defer observe(backendDuckDB, "recent_watched_ids", time.Now(), &err)
	if err := requireIDs(userID, showID); err != nil {
		return nil, err
	}

	ids = make(map[string]struct{})
	if windowDays <= 0 {
		return ids, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT episode_id
		FROM watch_history
		WHERE user_id = ? AND show_id = ? AND watched_at >= ?`,
		userID, showID, windowStart(s.now(), windowDays).UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query recent watches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan episode id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent watches: %w", err)
	}
	return ids, nil
}

// RecentHistory returns up to limit entries, newest first.
func (s *DuckDBStore) RecentHistory(ctx context.Context, userID string, limit int) (entries []models.WatchHistoryEntry, err error) {
	defer observe(backendDuckDB, "recent_history", time.Now(), &err)
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, episode_id, show_id, season, episode, show_name, episode_name, poster, watched_at
		FROM watch_history
		WHERE user_id = ?
		ORDER BY watched_at DESC, episode_id
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries = []models.WatchHistoryEntry{}
	for rows.Next() {
		var e models.WatchHistoryEntry
		if err := rows.Scan(&e.UserID, &e.EpisodeID, &e.ShowID, &e.Season, &e.Episode,
			&e.ShowName, &e.EpisodeName, &e.Poster, &e.WatchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watch entry: %w", err)
		}
		e.WatchedAt = e.WatchedAt.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return entries, nil
}

// ClearHistory deletes every watch entry of the user.
func (s *DuckDBStore) ClearHistory(ctx context.Context, userID string) (count int, err error) {
	defer observe(backendDuckDB, "clear_history", time.Now(), &err)
	if userID == "" {
		return 0, ErrUserIDRequired
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM watch_history WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared entries: %w", err)
	}
	s.logger.Debug().Str("user_id", userID).Int64("deleted", n).Msg("History cleared")
	return int(n), nil
}

// Ping checks the database connection.
func (s *DuckDBStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *DuckDBStore) Close() error {
	return s.db.Close()
}
