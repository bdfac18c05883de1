// Package storage provides key/value persistence for points, game progress
// and won cards, plus a history of card wins.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// CardWin is one first-time card win.
type CardWin struct {
	ID       string
	Profile  string
	Category string
	Card     string
	Game     string
	WonAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if !strings.HasPrefix(dbPath, "file:") && dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Pragmas are per connection; keep a single one.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS card_wins (
			id TEXT PRIMARY KEY,
			profile TEXT NOT NULL,
			category TEXT NOT NULL,
			card TEXT NOT NULL,
			game TEXT NOT NULL,
			won_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_card_wins_profile ON card_wins(profile, won_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value stored at key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return value, nil
}

// Put replaces the value at key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete %s: %w", key, err)
	}
	return nil
}

// RecordWin appends a card win to the history.
func (s *Store) RecordWin(ctx context.Context, w CardWin) error {
	var err error
	if w.WonAt.IsZero() {
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO card_wins (id, profile, category, card, game) VALUES (?, ?, ?, ?, ?)",
			w.ID, w.Profile, w.Category, w.Card, w.Game,
		)
	} else {
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO card_wins (id, profile, category, card, game, won_at) VALUES (?, ?, ?, ?, ?, ?)",
			w.ID, w.Profile, w.Category, w.Card, w.Game, w.WonAt.UTC().Format(timeLayout),
		)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot record win: %w", err)
	}
	return nil
}

// Wins returns the most recent card wins for a profile, newest first.
func (s *Store) Wins(ctx context.Context, profile string, limit int) ([]CardWin, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, profile, category, card, game, won_at
		 FROM card_wins
		 WHERE profile = ?
		 ORDER BY won_at DESC, rowid DESC
		 LIMIT ?`,
		profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query wins: %w", err)
	}
	defer rows.Close()

	var wins []CardWin
	for rows.Next() {
		var w CardWin
		var wonAt any
		if err := rows.Scan(&w.ID, &w.Profile, &w.Category, &w.Card, &w.Game, &wonAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		w.WonAt = parseTime(wonAt)
		wins = append(wins, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return wins, nil
}

// History returns a recorder that stamps every win with profile.
func (s *Store) History(profile string) *History {
	return &History{store: s, profile: profile}
}

// History records card wins for one profile.
type History struct {
	store   *Store
	profile string
}

// RecordWin records w under the history's profile.
func (h *History) RecordWin(ctx context.Context, w CardWin) error {
	w.Profile = h.profile
	return h.store.RecordWin(ctx, w)
}

const timeLayout = "2006-01-02 15:04:05"

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
