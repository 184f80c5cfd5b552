package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// Session statuses.
const (
	StatusRunning   = "running"
	StatusReported  = "reported"
	StatusExhausted = "exhausted"
	StatusFailed    = "failed"
)

// Session is one archived research run.
type Session struct {
	ID         string
	Topic      string
	Model      string
	Status     string
	Iterations int
	CreatedAt  time.Time
	FinishedAt *time.Time
}

// CreateSession inserts a new running session row.
func (db *DB) CreateSession(ctx context.Context, id, topic, model string) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO sessions (id, topic, model, status) VALUES (?, ?, ?, ?)",
		id, topic, model, StatusRunning,
	)
	return err
}

// FinishSession records the terminal status and iteration count.
func (db *DB) FinishSession(ctx context.Context, id, status string, iterations int) error {
	_, err := db.ExecContext(ctx,
		"UPDATE sessions SET status = ?, iterations = ?, finished_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, iterations, id,
	)
	return err
}

// GetSession returns an archived session by id.
func (db *DB) GetSession(ctx context.Context, id string) (*Session, error) {
	row := db.QueryRowContext(ctx,
		"SELECT id, topic, model, status, iterations, created_at, finished_at FROM sessions WHERE id = ?", id)
	var s Session
	var finished sql.NullTime
	if err := row.Scan(&s.ID, &s.Topic, &s.Model, &s.Status, &s.Iterations, &s.CreatedAt, &finished); err != nil {
		return nil, err
	}
	if finished.Valid {
		s.FinishedAt = &finished.Time
	}
	return &s, nil
}

// InsertMessage archives one transcript message. toolCalls may be nil; it is
// stored as JSON when present.
func (db *DB) InsertMessage(ctx context.Context, sessionID, role, content string, toolCalls interface{}, toolCallID string) error {
	var tcJSON string
	if toolCalls != nil {
		if b, err := json.Marshal(toolCalls); err == nil {
			tcJSON = string(b)
		}
	}
	_, err := db.ExecContext(ctx,
		"INSERT INTO messages (session_id, role, content, tool_calls, tool_call_id) VALUES (?, ?, ?, ?, ?)",
		sessionID, role, content, tcJSON, toolCallID,
	)
	return err
}

// CountMessages returns the number of archived messages for a session.
func (db *DB) CountMessages(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE session_id = ?", sessionID).Scan(&n)
	return n, err
}

// SaveReport stores the session's final report. partial marks the exhaustion
// fallback rather than a model-compiled report.
func (db *DB) SaveReport(ctx context.Context, sessionID, report string, partial bool) error {
	p := 0
	if partial {
		p = 1
	}
	_, err := db.ExecContext(ctx,
		"INSERT OR REPLACE INTO reports (session_id, report, partial) VALUES (?, ?, ?)",
		sessionID, report, p,
	)
	return err
}

// GetReport returns the stored report for a session, plus whether it was the
// partial fallback.
func (db *DB) GetReport(ctx context.Context, sessionID string) (report string, partial bool, err error) {
	var p int
	err = db.QueryRowContext(ctx,
		"SELECT report, partial FROM reports WHERE session_id = ?", sessionID).Scan(&report, &p)
	return report, p == 1, err
}
