// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"

	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/stacklok/prefs/pkg/logger"
	"github.com/stacklok/prefs/pkg/settings"
	"github.com/stacklok/prefs/pkg/storage"
)

// SettingsStore implements storage.Store using SQLite.
type SettingsStore struct {
	wrapper *DB
	db      *sql.DB
}

var _ storage.Store = (*SettingsStore)(nil)

// NewSettingsStore creates a SettingsStore on an open database.
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{wrapper: db, db: db.DB()}
}

// NewSettingsStoreFromPath opens the database at path and wraps it in a
// SettingsStore. An empty path selects DefaultPath.
func NewSettingsStoreFromPath(ctx context.Context, path string) (*SettingsStore, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("unable to fetch database path: %w", err)
		}
	}
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewSettingsStore(db), nil
}

// Close closes the underlying database connection.
func (s *SettingsStore) Close() error {
	return s.wrapper.Close()
}

// Load returns every persisted setting ordered by name. Rows that cannot be
// decoded are skipped with a warning.
func (s *SettingsStore) Load(ctx context.Context) ([]settings.Setting, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, kind, value FROM settings ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []settings.Setting
	for rows.Next() {
		var name, kind, text string
		if err := rows.Scan(&name, &kind, &text); err != nil {
			return nil, fmt.Errorf("scanning setting row: %w", err)
		}
		value, err := settings.ParseValue(settings.Kind(kind), text)
		if err != nil {
			logger.Warnw("skipping persisted setting", "setting", name, "error", err)
			continue
		}
		out = append(out, settings.Setting{Name: name, Value: value})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating setting rows: %w", err)
	}

	return out, nil
}

// Put upserts a single setting.
func (s *SettingsStore) Put(ctx context.Context, setting settings.Setting) error {
	if err := upsert(ctx, s.db, setting); err != nil {
		return classify(err)
	}
	return nil
}

// Replace swaps every stored row for snap in one transaction.
func (s *SettingsStore) Replace(ctx context.Context, snap settings.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", classify(err))
	}
	defer rollback(tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM settings`); err != nil {
		return fmt.Errorf("clearing settings: %w", classify(err))
	}
	for _, name := range slices.Sorted(maps.Keys(snap)) {
		if err := upsert(ctx, tx, snap[name]); err != nil {
			return classify(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", classify(err))
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, ex execer, setting settings.Setting) error {
	if _, err := ex.ExecContext(ctx, `
		INSERT INTO settings (name, kind, value) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			kind = excluded.kind,
			value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		setting.Name,
		string(setting.Value.Kind()),
		setting.Value.String(),
	); err != nil {
		return fmt.Errorf("storing setting %q: %w", setting.Name, err)
	}
	return nil
}

// classify marks lock contention with storage.ErrLocked.
func classify(err error) error {
	if isBusy(err) {
		return fmt.Errorf("%w: %w", storage.ErrLocked, err)
	}
	return err
}

// isBusy checks for SQLite lock contention.
func isBusy(err error) bool {
	var sqliteErr *sqlite3.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code() & 0xff
		return code == sqlite3lib.SQLITE_BUSY || code == sqlite3lib.SQLITE_LOCKED
	}
	return false
}

// rollback rolls back tx, ignoring errors (tx may already be committed).
func rollback(tx *sql.Tx) { _ = tx.Rollback() }
