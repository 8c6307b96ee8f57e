// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reruns/internal/models"
)

const backendBadger = "badger"

// Key prefixes for BadgerDB storage
const (
	showKeyPrefix    = "show:"
	seasonKeyPrefix  = "season:"
	historyKeyPrefix = "history:"
)

// BadgerStore implements Store on an embedded BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	logger zerolog.Logger
	now    func() time.Time
}

// OpenBadger opens (or creates) a BadgerDB at path.
// An empty path keeps all data in memory.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenBadger(path string, logger zerolog.Logger) (*BadgerStore, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	logger.Info().Str("path", path).Bool("in_memory", path == "").Msg("Store opened")
	return &BadgerStore{db: db, logger: logger, now: time.Now}, nil
}

// keyPart escapes an id so separators inside it cannot collide with ours.
func keyPart(s string) string {
	return url.QueryEscape(s)
}

func showKey(userID, showID string) []byte {
	return []byte(showKeyPrefix + keyPart(userID) + ":" + keyPart(showID))
}

func seasonKey(userID, showID string) []byte {
	return []byte(seasonKeyPrefix + keyPart(userID) + ":" + keyPart(showID))
}

func historyKey(userID, episodeID string) []byte {
	return []byte(historyKeyPrefix + keyPart(userID) + ":" + keyPart(episodeID))
}

func userPrefix(prefix, userID string) []byte {
	return []byte(prefix + keyPart(userID) + ":")
}

// ShowsForUser returns the user's tracked shows ordered by AddedAt.
func (s *BadgerStore) ShowsForUser(ctx context.Context, userID string) (shows []models.Show, err error) {
	defer observe(backendBadger, "shows_for_user", time.Now(), &err)
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	shows = []models.Show{}
	err = s.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, userPrefix(showKeyPrefix, userID), func(val []byte) error {
			var show models.Show
			if err := json.Unmarshal(val, &show); err != nil {
				return fmt.Errorf("unmarshal show: %w", err)
			}
			shows = append(shows, show)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(shows, func(i, j int) bool {
		return shows[i].AddedAt.Before(shows[j].AddedAt)
	})
	return shows, nil
}

// AddShow tracks a show for the user.
func (s *BadgerStore) AddShow(ctx context.Context, userID string, show models.Show) (err error) {
	defer observe(backendBadger, "add_show", time.Now(), &err)
	if err := requireIDs(userID, show.ID); err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		key := showKey(userID, show.ID)

		var existing models.Show
		found, err := getJSON(txn, key, &existing)
		if err != nil {
			return err
		}
		switch {
		case found:
			show.AddedAt = existing.AddedAt
		case show.AddedAt.IsZero():
			show.AddedAt = s.now().UTC()
		}

		data, err := json.Marshal(show)
		if err != nil {
			return fmt.Errorf("marshal show: %w", err)
		}
		return txn.Set(key, data)
	})
	return err
}

// RemoveShow stops tracking a show and deletes its season filter.
func (s *BadgerStore) RemoveShow(ctx context.Context, userID, showID string) (err error) {
	defer observe(backendBadger, "remove_show", time.Now(), &err)
	if err := requireIDs(userID, showID); err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		key := showKey(userID, showID)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get show: %w", err)
		}
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("delete show: %w", err)
		}
		if err := txn.Delete(seasonKey(userID, showID)); err != nil {
			return fmt.Errorf("delete season filter: %w", err)
		}
		return nil
	})
	return err
}

// SeasonFilter returns the enabled seasons for a show.
func (s *BadgerStore) SeasonFilter(ctx context.Context, userID, showID string) (seasons []int, err error) {
	defer observe(backendBadger, "season_filter", time.Now(), &err)
	if err := requireIDs(userID, showID); err != nil {
		return nil, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		_, err := getJSON(txn, seasonKey(userID, showID), &seasons)
		return err
	})
	if err != nil {
		return nil, err
	}
	if seasons == nil {
		seasons = []int{}
	}
	return seasons, nil
}

// SetSeasonFilter replaces the enabled seasons for a tracked show.
func (s *BadgerStore) SetSeasonFilter(ctx context.Context, userID, showID string, seasons []int) (stored []int, err error) {
	defer observe(backendBadger, "set_season_filter", time.Now(), &err)
	if err := requireIDs(userID, showID); err != nil {
		return nil, err
	}

	stored = normalizeSeasons(seasons)
	err = s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(showKey(userID, showID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get show: %w", err)
		}

		key := seasonKey(userID, showID)
		if len(stored) == 0 {
			return txn.Delete(key)
		}
		data, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("marshal season filter: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// RecordWatch upserts a watch entry.
func (s *BadgerStore) RecordWatch(ctx context.Context, entry models.WatchHistoryEntry) (err error) {
	defer observe(backendBadger, "record_watch", time.Now(), &err)
	if err := prepareWatch(&entry, s.now()); err != nil {
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal watch entry: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(historyKey(entry.UserID, entry.EpisodeID), data)
	})
	return err
}

// RecentWatchedIDs returns the show's episode ids watched within the window.
func (s *BadgerStore) RecentWatchedIDs(ctx context.Context, userID, showID string, windowDays int) (ids map[string]struct{}, err error) {
	defer observe(backendBadger, "recent_watched_ids", time.Now(), &err)
	if err := requireIDs(userID, showID); err != nil {
		return nil, err
	}

	ids = make(map[string]struct{})
	if windowDays <= 0 {
		return ids, nil
	}

	since := windowStart(s.now(), windowDays)
	err = s.db.View(func(txn *badger.Txn) error {
		return s.scanHistory(txn, userID, func(entry *models.WatchHistoryEntry) {
			if entry.ShowID == showID && !entry.WatchedAt.Before(since) {
				ids[entry.EpisodeID] = struct{}{}
			}
		})
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// RecentHistory returns up to limit entries, newest first.
func (s *BadgerStore) RecentHistory(ctx context.Context, userID string, limit int) (entries []models.WatchHistoryEntry, err error) {
	defer observe(backendBadger, "recent_history", time.Now(), &err)
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	entries = []models.WatchHistoryEntry{}
	err = s.db.View(func(txn *badger.Txn) error {
		return s.scanHistory(txn, userID, func(entry *models.WatchHistoryEntry) {
			entries = append(entries, *entry)
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].WatchedAt.After(entries[j].WatchedAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// ClearHistory deletes every watch entry of the user.
func (s *BadgerStore) ClearHistory(ctx context.Context, userID string) (count int, err error) {
	defer observe(backendBadger, "clear_history", time.Now(), &err)
	if userID == "" {
		return 0, ErrUserIDRequired
	}

	var keys [][]byte
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := userPrefix(historyKeyPrefix, userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return 0, fmt.Errorf("delete watch entry: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("flush history deletion: %w", err)
	}

	s.logger.Debug().Str("user_id", userID).Int("deleted", len(keys)).Msg("History cleared")
	return len(keys), nil
}

// Ping verifies the database is open.
func (s *BadgerStore) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return errors.New("store: badger db is closed")
	}
	return s.db.View(func(txn *badger.Txn) error { return nil })
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	if s.db.IsClosed() {
		return nil
	}
	return s.db.Close()
}

func (s *BadgerStore) scanHistory(txn *badger.Txn, userID string, fn func(*models.WatchHistoryEntry)) error {
	return scanPrefix(txn, userPrefix(historyKeyPrefix, userID), func(val []byte) error {
		var entry models.WatchHistoryEntry
		if err := json.Unmarshal(val, &entry); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("Skipping unreadable watch entry")
			return nil
		}
		fn(&entry)
		return nil
	})
}

// scanPrefix calls fn with the value of every key under prefix.
func scanPrefix(txn *badger.Txn, prefix []byte, fn func(val []byte) error) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}

// getJSON decodes the value at key into out. It reports false when the key is absent.
func getJSON(txn *badger.Txn, key []byte, out any) (bool, error) {
	item, err := txn.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
	if err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
