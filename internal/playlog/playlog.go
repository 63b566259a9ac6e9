// Package playlog records play analytics to a local SQLite database: one row
// per session, scene visit, and password attempt. The log is write-only from
// the engine's point of view; nothing is ever restored from it.
package playlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id         TEXT PRIMARY KEY,
    surface    TEXT NOT NULL DEFAULT '',
    started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    ended_at   TIMESTAMP
);

CREATE TABLE IF NOT EXISTS visits (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id  TEXT NOT NULL,
    chapter     TEXT NOT NULL,
    scene       TEXT NOT NULL,
    first_visit INTEGER NOT NULL DEFAULT 0,
    visited_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS attempts (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id   TEXT NOT NULL,
    gate         TEXT NOT NULL,
    accepted     INTEGER NOT NULL DEFAULT 0,
    attempted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS visits_scene ON visits(scene);
`

// Store is a SQLite-backed play log. It is safe for concurrent use; the
// single pooled connection serializes writers.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path, enables WAL mode and a busy
// timeout, and creates the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("playlog: open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("playlog: %s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("playlog: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("playlog: close: %w", err)
	}
	return nil
}

// StartSession records a new session. Starting an id twice is a no-op.
func (s *Store) StartSession(ctx context.Context, id, surface string) error {
	const q = `INSERT INTO sessions (id, surface) VALUES (?, ?) ON CONFLICT(id) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, q, id, surface); err != nil {
		return fmt.Errorf("playlog: start session %q: %w", id, err)
	}
	return nil
}

// EndSession stamps the session's end time.
func (s *Store) EndSession(ctx context.Context, id string) error {
	const q = `UPDATE sessions SET ended_at = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, q, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("playlog: end session %q: %w", id, err)
	}
	return nil
}

// RecordVisit logs a scene entry.
func (s *Store) RecordVisit(ctx context.Context, session, chapter, scene string, first bool) error {
	const q = `INSERT INTO visits (session_id, chapter, scene, first_visit) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, session, chapter, scene, first); err != nil {
		return fmt.Errorf("playlog: record visit %q: %w", scene, err)
	}
	return nil
}

// RecordAttempt logs a password submission. Digits are never stored.
func (s *Store) RecordAttempt(ctx context.Context, session, gate string, accepted bool) error {
	const q = `INSERT INTO attempts (session_id, gate, accepted) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, session, gate, accepted); err != nil {
		return fmt.Errorf("playlog: record attempt on %q: %w", gate, err)
	}
	return nil
}

// SceneCount is one row of TopScenes.
type SceneCount struct {
	Scene    string
	Visits   int
	Sessions int
}

// TopScenes returns the most visited scenes, most visited first.
func (s *Store) TopScenes(ctx context.Context, limit int) ([]SceneCount, error) {
	const q = `
		SELECT scene, COUNT(*), COUNT(DISTINCT session_id)
		FROM visits
		GROUP BY scene
		ORDER BY COUNT(*) DESC, scene ASC
		LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("playlog: top scenes: %w", err)
	}
	defer rows.Close()

	var out []SceneCount
	for rows.Next() {
		var sc SceneCount
		if err := rows.Scan(&sc.Scene, &sc.Visits, &sc.Sessions); err != nil {
			return nil, fmt.Errorf("playlog: scan scene count: %w", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("playlog: top scenes: %w", err)
	}
	return out, nil
}

// GateStats summarizes the attempts on one gate.
type GateStats struct {
	Gate     string
	Attempts int
	Accepted int
}

// Summary is the aggregate view printed by `novella stats`.
type Summary struct {
	Sessions int
	Visits   int
	Gates    []GateStats
}

// Summarize aggregates the whole log.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	var sum Summary
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&sum.Sessions); err != nil {
		return Summary{}, fmt.Errorf("playlog: count sessions: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visits`).Scan(&sum.Visits); err != nil {
		return Summary{}, fmt.Errorf("playlog: count visits: %w", err)
	}

	const q = `
		SELECT gate, COUNT(*), COALESCE(SUM(accepted), 0)
		FROM attempts
		GROUP BY gate
		ORDER BY gate`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return Summary{}, fmt.Errorf("playlog: gate stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var g GateStats
		if err := rows.Scan(&g.Gate, &g.Attempts, &g.Accepted); err != nil {
			return Summary{}, fmt.Errorf("playlog: scan gate stats: %w", err)
		}
		sum.Gates = append(sum.Gates, g)
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("playlog: gate stats: %w", err)
	}
	return sum, nil
}
