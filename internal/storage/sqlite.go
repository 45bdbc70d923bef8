// Package storage provides SQLite-based persistence for host sessions.
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

// Session end states.
const (
	StatusCompleted  = "completed"   // host stopped normally
	StatusInitFailed = "init_failed" // module init returned a non-zero status
	StatusError      = "error"       // host loop failed
)

// Store manages the SQLite database connection for session persistence.
type Store struct {
	db *sql.DB
}

// Session is the summary of one host run.
type Session struct {
	ID        string
	EngineID  string
	User      string // SSH user, empty for local runs
	Status    string
	Ticks     int64
	Frames    int64
	KeyEvents int64
	Errors    int64
	LastTitle string
	StartedAt time.Time
	Duration  time.Duration
	CreatedAt time.Time
}

// EngineStats contains aggregated statistics for an engine.
type EngineStats struct {
	EngineID      string
	Sessions      int
	TotalTicks    int64
	TotalFrames   int64
	TotalDuration time.Duration
	LastPlayed    time.Time
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

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			engine_id TEXT NOT NULL,
			user TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			key_events INTEGER NOT NULL DEFAULT 0,
			errors INTEGER NOT NULL DEFAULT 0,
			last_title TEXT NOT NULL DEFAULT '',
			started_ms INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_engine_id ON sessions(engine_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_ms DESC);
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

// SaveSession records a finished session. A session without an ID gets a
// new random one. Returns the ID.
func (s *Store) SaveSession(sess Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	} else if _, err := uuid.Parse(sess.ID); err != nil {
		return "", fmt.Errorf("storage: invalid session id %q: %w", sess.ID, err)
	}
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions
		 (id, engine_id, user, status, ticks, frames, key_events, errors, last_title, started_ms, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.EngineID,
		sess.User,
		sess.Status,
		sess.Ticks,
		sess.Frames,
		sess.KeyEvents,
		sess.Errors,
		sess.LastTitle,
		sess.StartedAt.UnixMilli(),
		sess.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}
	return sess.ID, nil
}

const sessionColumns = `id, engine_id, user, status, ticks, frames, key_events, errors,
		        last_title, started_ms, duration_ms, created_at`

// SessionByID retrieves a session by its ID. Returns nil if it does not exist.
func (s *Store) SessionByID(id string) (*Session, error) {
	row := s.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return sess, nil
}

// RecentSessions retrieves the most recent sessions, newest first. An empty
// engineID matches every engine.
func (s *Store) RecentSessions(engineID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE ? = '' OR engine_id = ?
		 ORDER BY started_ms DESC, rowid DESC
		 LIMIT ?`,
		engineID, engineID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, *sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// ClearSessions deletes all sessions for the given engine.
func (s *Store) ClearSessions(engineID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE engine_id = ?", engineID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// EngineSummary retrieves aggregated statistics for a specific engine.
func (s *Store) EngineSummary(engineID string) (*EngineStats, error) {
	stats := &EngineStats{EngineID: engineID}

	var durationMS, lastMS int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(ticks), 0), COALESCE(SUM(frames), 0),
		        COALESCE(SUM(duration_ms), 0), COALESCE(MAX(started_ms), 0)
		 FROM sessions WHERE engine_id = ?`,
		engineID,
	).Scan(&stats.Sessions, &stats.TotalTicks, &stats.TotalFrames, &durationMS, &lastMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get engine stats: %w", err)
	}

	stats.TotalDuration = time.Duration(durationMS) * time.Millisecond
	if lastMS > 0 {
		stats.LastPlayed = time.UnixMilli(lastMS)
	}
	return stats, nil
}

// AllEngineSummaries retrieves statistics for every engine that has sessions.
func (s *Store) AllEngineSummaries() (map[string]*EngineStats, error) {
	rows, err := s.db.Query(
		`SELECT engine_id, COUNT(*), SUM(ticks), SUM(frames), SUM(duration_ms), MAX(started_ms)
		 FROM sessions
		 GROUP BY engine_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get engine stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*EngineStats)
	for rows.Next() {
		var st EngineStats
		var durationMS, lastMS int64
		if err := rows.Scan(&st.EngineID, &st.Sessions, &st.TotalTicks, &st.TotalFrames, &durationMS, &lastMS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.TotalDuration = time.Duration(durationMS) * time.Millisecond
		st.LastPlayed = time.UnixMilli(lastMS)
		stats[st.EngineID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var sess Session
	var startedMS, durationMS int64
	var createdAt any

	if err := row.Scan(
		&sess.ID,
		&sess.EngineID,
		&sess.User,
		&sess.Status,
		&sess.Ticks,
		&sess.Frames,
		&sess.KeyEvents,
		&sess.Errors,
		&sess.LastTitle,
		&startedMS,
		&durationMS,
		&createdAt,
	); err != nil {
		return nil, err
	}

	sess.StartedAt = time.UnixMilli(startedMS)
	sess.Duration = time.Duration(durationMS) * time.Millisecond
	sess.CreatedAt = parseTime(createdAt)
	return &sess, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
