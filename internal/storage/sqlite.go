// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/platform-jumper/internal/replay"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	// ErrNotFound is returned when no replay matches an id.
	ErrNotFound = errors.New("storage: replay not found")
	// ErrAmbiguous is returned when an id prefix matches several replays.
	ErrAmbiguous = errors.New("storage: replay id is ambiguous")
)

// Store manages the SQLite database connection for replays.
type Store struct {
	db *sql.DB
}

// ReplayEntry is the listing row of a stored replay.
type ReplayEntry struct {
	ID        string
	Seed      int64
	Score     int
	Level     int
	Frames    uint64
	Phase     string
	CreatedAt time.Time
}

// Order selects how ListReplays sorts its results.
type Order int

const (
	OrderRecent Order = iota
	OrderScore
)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			phase TEXT NOT NULL,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_replays_score ON replays(score DESC);
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

// SaveReplay stores a recording, replacing any replay with the same id.
func (s *Store) SaveReplay(rec replay.Recording) error {
	if rec.ID == "" {
		return errors.New("storage: replay has no id")
	}
	data, err := replay.Marshal(rec)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO replays (id, seed, score, level, frames, phase, data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Seed, rec.Final.Score, rec.Final.Level, int64(rec.Frames), rec.Final.Phase,
		data, createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return nil
}

// Replay loads the recording with the given id.
func (s *Store) Replay(id string) (replay.Recording, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM replays WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return replay.Recording{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return replay.Recording{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	rec, err := replay.Unmarshal(data)
	if err != nil {
		return replay.Recording{}, fmt.Errorf("storage: cannot decode replay %s: %w", id, err)
	}
	return rec, nil
}

// ResolveID expands an id prefix to the full id of exactly one replay.
func (s *Store) ResolveID(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}

	rows, err := s.db.Query(
		"SELECT id FROM replays WHERE substr(id, 1, ?) = ? LIMIT 2",
		len(prefix), prefix,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguous, prefix)
	}
}

// ListReplays returns up to limit replays in the given order.
func (s *Store) ListReplays(order Order, limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	orderBy := "created_at DESC, id"
	if order == OrderScore {
		orderBy = "score DESC, created_at DESC, id"
	}

	rows, err := s.db.Query(
		`SELECT id, seed, score, level, frames, phase, created_at
		 FROM replays
		 ORDER BY `+orderBy+`
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplayEntry
	for rows.Next() {
		var e ReplayEntry
		var frames int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Seed, &e.Score, &e.Level, &frames, &e.Phase, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Frames = uint64(frames)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteReplay removes the replay with the given id.
func (s *Store) DeleteReplay(id string) error {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
