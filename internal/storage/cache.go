// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides a best-effort local cache of the conversation
// list. The remote service is the source of truth; the cache exists only so
// the sidebar has something to show when GET /chat/recent is unreachable.
// Writes replace the whole snapshot, never merge.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/bluedash/bluedash-tui/internal/model"
)

var (
	ErrCacheEmpty    = errors.New("conversation cache is empty")
	ErrDatabaseError = errors.New("database error")
)

// Cache is the on-disk conversation list snapshot.
type Cache struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	position     INTEGER PRIMARY KEY,
	id           TEXT NOT NULL UNIQUE,
	title        TEXT NOT NULL,
	last_updated INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Open opens (creating if necessary) the cache database under dir.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := filepath.Join(dir, "cache.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Cache{db: db, path: path}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// SaveSummaries replaces the cached snapshot with the given list, preserving
// its order. Temporary conversations are skipped: they have no server id and
// would be unreachable after a restart anyway.
func (c *Cache) SaveSummaries(summaries []model.Summary) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM conversations"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	pos := 0
	for _, s := range summaries {
		if model.IsTempID(s.ID) {
			continue
		}
		_, err := tx.Exec(`
			INSERT INTO conversations (position, id, title, last_updated)
			VALUES (?, ?, ?, ?)
		`, pos, s.ID, s.Title, s.LastUpdated.Unix())
		if err != nil {
			return fmt.Errorf("failed to insert conversation: %w", err)
		}
		pos++
	}

	if _, err := tx.Exec(`
		INSERT INTO metadata (key, value) VALUES ('saved_at', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to record save time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cache snapshot: %w", err)
	}
	return nil
}

// LoadSummaries returns the cached snapshot in its saved order.
func (c *Cache) LoadSummaries() ([]model.Summary, error) {
	rows, err := c.db.Query(`
		SELECT id, title, last_updated FROM conversations ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var summaries []model.Summary
	for rows.Next() {
		var s model.Summary
		var updated int64
		if err := rows.Scan(&s.ID, &s.Title, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		s.LastUpdated = time.Unix(updated, 0)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	if len(summaries) == 0 {
		return nil, ErrCacheEmpty
	}
	return summaries, nil
}

// SavedAt returns when the snapshot was last written, or the zero time if
// the cache has never been written.
func (c *Cache) SavedAt() time.Time {
	var value string
	err := c.db.QueryRow("SELECT value FROM metadata WHERE key = 'saved_at'").Scan(&value)
	if err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
