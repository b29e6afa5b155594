/*
Package sqlite provides a SQLite-backed ResultCache.

PURPOSE:
  Persists memoized calculator responses in a single table. With the default
  ":memory:" path nothing outlives the process; pointing it at a file keeps
  warm results across restarts. The cache never stores anything that cannot
  be recomputed from the request alone.

INTERFACES IMPLEMENTED:
  engine.ResultCache: Get / Put / Purge

KEY TABLES:
  results: key -> encoded response, with a hit counter and timestamps

EVICTION:
  Rows beyond maxEntries are dropped oldest-first on each Put, the same
  policy as the memory cache.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. ":memory:" is pinned to a single
  connection; every new connection would otherwise get its own empty DB.

WAL MODE:
  File databases are opened with WAL so readers don't block the writer.

USAGE:
  cache, err := sqlite.New("./data/results.db", 10000)
  if err != nil {
      log.Fatal().Err(err).Msg("open cache")
  }
  defer cache.Close()

SEE ALSO:
  - engine/cache.go: Interface definition
  - engine/store/memory.go: In-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tigerkidtools/calc-engine/engine"
)

// DefaultMaxEntries bounds the table when no limit is given.
const DefaultMaxEntries = 10000

// Store implements engine.ResultCache using SQLite.
type Store struct {
	db         *sql.DB
	mu         sync.RWMutex
	maxEntries int
}

var _ engine.ResultCache = (*Store)(nil)

// New opens (or creates) the cache database at dbPath.
// Use ":memory:" for an in-memory database.
func New(dbPath string, maxEntries int) (*Store, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	if dbPath == ":memory:" {
		dsn = dbPath
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	}

	store := &Store{db: db, maxEntries: maxEntries}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT NOT NULL UNIQUE,
		value BLOB NOT NULL,
		hits INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		last_hit_at TEXT
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// engine.ResultCache
// =============================================================================

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM results WHERE key = ?`, key).Scan(&value)
	s.mu.RUnlock()

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read result %s: %w", key, err)
	}

	// Hit bookkeeping is best effort.
	s.mu.Lock()
	_, _ = s.db.ExecContext(ctx,
		`UPDATE results SET hits = hits + 1, last_hit_at = ? WHERE key = ?`,
		time.Now().UTC().Format(time.RFC3339), key)
	s.mu.Unlock()

	return value, true, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// A replaced key moves to the back of the eviction queue.
	if _, err := tx.ExecContext(ctx, `DELETE FROM results WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to replace result %s: %w", key, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO results (key, value, created_at) VALUES (?, ?, ?)`,
		key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to store result %s: %w", key, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM results WHERE seq NOT IN (SELECT seq FROM results ORDER BY seq DESC LIMIT ?)`,
		s.maxEntries); err != nil {
		return fmt.Errorf("failed to evict results: %w", err)
	}

	return tx.Commit()
}

func (s *Store) Purge(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("failed to purge results: %w", err)
	}
	return nil
}

// =============================================================================
// STATS
// =============================================================================

// Stats summarizes cache usage.
type Stats struct {
	Entries int
	Hits    int
}

// Stats returns the entry count and the total hits served.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(hits), 0) FROM results`).Scan(&st.Entries, &st.Hits)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read stats: %w", err)
	}
	return st, nil
}
