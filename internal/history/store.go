// Package history persists build reports to a local SQLite database so
// past builds can be inspected from the CLI.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/site"
)

// Entry is one recorded build, as listed by the CLI.
type Entry struct {
	BuildID  string
	Started  time.Time
	Duration time.Duration
	Outcome  string
	Posts    int
	Pages    int
	Removed  int
}

// Store records and lists build reports.
// Use ":memory:" for an in-memory database, or a file path for
// persistent storage.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens or creates the history database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL UNIQUE,
		started INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		posts INTEGER NOT NULL,
		pages INTEGER NOT NULL,
		removed INTEGER NOT NULL,
		report BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores one finished build.
func (s *Store) Record(ctx context.Context, report *site.BuildReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO builds (build_id, started, duration_ms, outcome, posts, pages, removed, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.BuildID,
		report.Started.Unix(),
		report.Duration.Milliseconds(),
		report.Outcome,
		report.Posts,
		report.Pages,
		len(report.Removed),
		payload,
	)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	return nil
}

// Recent lists the most recent builds, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT build_id, started, duration_ms, outcome, posts, pages, removed
		 FROM builds ORDER BY started DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var started, durationMS int64
		if err := rows.Scan(&e.BuildID, &started, &durationMS, &e.Outcome, &e.Posts, &e.Pages, &e.Removed); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		e.Started = time.Unix(started, 0).UTC()
		e.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return entries, nil
}

// Get loads the full stored report for one build.
func (s *Store) Get(ctx context.Context, buildID string) (*site.BuildReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT report FROM builds WHERE build_id = ?", buildID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("build %s not found", buildID)
	}
	if err != nil {
		return nil, fmt.Errorf("query build: %w", err)
	}

	var report site.BuildReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
