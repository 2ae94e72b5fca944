// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/wanderhome/wanderhome/lib/sqlitepool"
)

// snapshotKey is the single key holding the serialized projection. The
// blob is versionless: anything unreadable is discarded, never
// migrated.
const snapshotKey = "snapshot"

const schema = `
CREATE TABLE IF NOT EXISTS app_state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
) WITHOUT ROWID;
`

// Config holds the parameters for opening a persistence store.
type Config struct {
	// Path is the SQLite database path. ":memory:" works for tests.
	Path string
	// Logger receives operational messages. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Store reads and writes the persisted projection as a single
// string-serialized blob in a SQLite key-value table.
type Store struct {
	pool   *sqlitepool.Pool
	logger *slog.Logger
}

// Open opens (and if necessary creates) the backing database.
func Open(cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	poolSize := 0
	if cfg.Path == ":memory:" {
		poolSize = 1
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     cfg.Path,
		PoolSize: poolSize,
		Logger:   logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}

	return &Store{pool: pool, logger: logger}, nil
}

// Load reads the persisted projection. ok is false when no snapshot
// exists or the stored blob is unreadable; a corrupted blob is treated
// exactly like an absent one (logged, discarded, never fatal), so a
// bad write can never brick startup.
func (s *Store) Load(ctx context.Context) (projection Projection, ok bool, err error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return Projection{}, false, fmt.Errorf("persist: load: %w", err)
	}
	defer s.pool.Put(conn)

	var blob string
	found := false
	err = sqlitex.Execute(conn, `SELECT value FROM app_state WHERE key = ?`, &sqlitex.ExecOptions{
		Args: []any{snapshotKey},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			blob = stmt.ColumnText(0)
			found = true
			return nil
		},
	})
	if err != nil {
		return Projection{}, false, fmt.Errorf("persist: load: %w", err)
	}
	if !found {
		return Projection{}, false, nil
	}

	if err := json.Unmarshal([]byte(blob), &projection); err != nil {
		s.logger.Warn("discarding unreadable state snapshot",
			"error", err,
			"blob_bytes", len(blob),
		)
		return Projection{}, false, nil
	}
	return projection, true, nil
}

// Save serializes the projection and writes it under the single
// snapshot key, replacing any previous blob.
func (s *Store) Save(ctx context.Context, projection Projection) error {
	blob, err := json.Marshal(projection)
	if err != nil {
		return fmt.Errorf("persist: encoding snapshot: %w", err)
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("persist: save: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, `INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?)`, &sqlitex.ExecOptions{
		Args: []any{snapshotKey, string(blob)},
	})
	if err != nil {
		return fmt.Errorf("persist: save: %w", err)
	}
	return nil
}

// Close closes the backing pool. Call after stopping any Mirror.
func (s *Store) Close() error {
	return s.pool.Close()
}
