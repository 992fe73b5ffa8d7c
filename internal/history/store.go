package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"renderest/internal/fileutil"
)

// Store manages render session persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Session is one recorded render attempt.
type Session struct {
	ID               string
	Scene            string
	Engine           string
	Mode             string // "single" or "animation"
	Outcome          string // "completed" or "cancelled"
	Frames           int
	EstimatedSeconds float64
	ActualSeconds    float64
	FactorBefore     float64
	FactorAfter      float64
	CreatedAt        time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS render_sessions (
    id                TEXT PRIMARY KEY,
    scene             TEXT NOT NULL,
    engine            TEXT NOT NULL,
    mode              TEXT NOT NULL,
    outcome           TEXT NOT NULL,
    frames            INTEGER NOT NULL,
    estimated_seconds REAL NOT NULL,
    actual_seconds    REAL NOT NULL,
    factor_before     REAL NOT NULL,
    factor_after      REAL NOT NULL,
    created_at        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_render_sessions_created_at
    ON render_sessions(created_at DESC);
`

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open opens (or creates) the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history path is empty")
	}
	if err := fileutil.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	store := &Store{db: db, path: path}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return store, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Record inserts one finished render session.
func (s *Store) Record(ctx context.Context, session Session) error {
	createdAt := session.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	err := s.execWithRetry(
		ctx,
		`INSERT INTO render_sessions
            (id, scene, engine, mode, outcome, frames,
             estimated_seconds, actual_seconds, factor_before, factor_after, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.Scene,
		session.Engine,
		session.Mode,
		session.Outcome,
		session.Frames,
		session.EstimatedSeconds,
		session.ActualSeconds,
		session.FactorBefore,
		session.FactorAfter,
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// Recent returns up to limit sessions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, scene, engine, mode, outcome, frames,
                estimated_seconds, actual_seconds, factor_before, factor_after, created_at
         FROM render_sessions ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var session Session
		var createdAt string
		if err := rows.Scan(
			&session.ID,
			&session.Scene,
			&session.Engine,
			&session.Mode,
			&session.Outcome,
			&session.Frames,
			&session.EstimatedSeconds,
			&session.ActualSeconds,
			&session.FactorBefore,
			&session.FactorAfter,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			session.CreatedAt = parsed
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		_, lastErr = s.db.ExecContext(ctx, query, args...)
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
