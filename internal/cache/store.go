// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache keeps retrieved API payloads in a SQLite database so
// repeated runs with the same query do not hit the network.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/freidok/pkg/types"
)

// timeLayout has fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Entry describes one cached payload.
type Entry struct {
	ID        string    `yaml:"id"`
	Key       string    `yaml:"key"`
	Size      int       `yaml:"size"`
	CreatedAt time.Time `yaml:"created_at"`
	Expired   bool      `yaml:"expired"`
}

// Store is a payload cache keyed by request.
type Store struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens or creates the cache database at cfg.Path.
func Open(cfg types.CacheConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("cache path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	s := &Store{db: db, ttl: cfg.TTL, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS responses (
			id TEXT PRIMARY KEY,
			key TEXT NOT NULL UNIQUE,
			payload BLOB NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_responses_created ON responses(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Get returns the payload stored under key. Expired entries are reported
// as missing.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, created_at FROM responses WHERE key = ?`, key,
	).Scan(&payload, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}
	if s.expired(parseTime(created)) {
		return nil, false, nil
	}
	return payload, true, nil
}

// Put stores payload under key, replacing any earlier entry.
func (s *Store) Put(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO responses (id, key, payload, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET id = excluded.id, payload = excluded.payload, created_at = excluded.created_at`,
		uuid.Must(uuid.NewV7()).String(), key, payload, s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// List returns all entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, key, length(payload), created_at FROM responses ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Key, &e.Size, &created); err != nil {
			return nil, fmt.Errorf("scanning cache entry: %w", err)
		}
		e.CreatedAt = parseTime(created)
		e.Expired = s.expired(e.CreatedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM responses`)
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	return res.RowsAffected()
}

// Prune removes expired entries. Without a TTL nothing expires.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.ttl).UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx, `DELETE FROM responses WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) expired(created time.Time) bool {
	return s.ttl > 0 && s.now().Sub(created) > s.ttl
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}
