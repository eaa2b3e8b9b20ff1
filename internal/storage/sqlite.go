// Package storage provides SQLite-based persistence for recorded games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a requested replay does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplayRecord is one recorded game: everything needed to re-simulate it
// plus the outcome it reached.
type ReplayRecord struct {
	ID        string
	GameID    string
	Seed      int64
	TickRate  int
	Config    string // YAML of the resolved game config
	Score     int
	Status    string
	Ticks     uint64
	CreatedAt time.Time
	Inputs    []InputRecord // Empty in listings
}

// InputRecord holds the actions of one non-empty tick.
type InputRecord struct {
	Tick    uint64
	Actions string // Comma-separated action names
}

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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			config TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);

		CREATE TABLE IF NOT EXISTS replay_inputs (
			replay_id TEXT NOT NULL REFERENCES replays(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			actions TEXT NOT NULL,
			PRIMARY KEY (replay_id, tick)
		);
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

// SaveReplay stores a replay and its inputs in one transaction. A new ID is
// generated when rec.ID is empty. Returns the ID used.
func (s *Store) SaveReplay(rec ReplayRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	_, err = tx.Exec(
		`INSERT INTO replays (id, game_id, seed, tick_rate, config, score, status, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.GameID, rec.Seed, rec.TickRate, rec.Config, rec.Score, rec.Status, rec.Ticks,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO replay_inputs (replay_id, tick, actions) VALUES (?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for _, in := range rec.Inputs {
		if _, err := stmt.Exec(rec.ID, in.Tick, in.Actions); err != nil {
			return "", fmt.Errorf("storage: cannot save input at tick %d: %w", in.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return rec.ID, nil
}

// Replay retrieves a replay with its inputs. Returns ErrNotFound if no
// replay has the given ID.
func (s *Store) Replay(id string) (*ReplayRecord, error) {
	var rec ReplayRecord
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, game_id, seed, tick_rate, config, score, status, ticks, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.GameID, &rec.Seed, &rec.TickRate, &rec.Config,
		&rec.Score, &rec.Status, &rec.Ticks, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("replay %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	rec.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		`SELECT tick, actions FROM replay_inputs WHERE replay_id = ? ORDER BY tick`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay inputs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var in InputRecord
		if err := rows.Scan(&in.Tick, &in.Actions); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input row: %w", err)
		}
		rec.Inputs = append(rec.Inputs, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &rec, nil
}

// RecentReplays lists the most recent replays without their inputs.
func (s *Store) RecentReplays(limit int) ([]ReplayRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, tick_rate, config, score, status, ticks, created_at
		 FROM replays
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var records []ReplayRecord
	for rows.Next() {
		var rec ReplayRecord
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.GameID, &rec.Seed, &rec.TickRate, &rec.Config,
			&rec.Score, &rec.Status, &rec.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// DeleteReplay removes a replay and its inputs.
func (s *Store) DeleteReplay(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	if _, err := tx.Exec("DELETE FROM replay_inputs WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay inputs: %w", err)
	}
	res, err := tx.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("replay %s: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
