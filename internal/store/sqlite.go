// Package store persists research sessions to SQLite. Persistence is
// best-effort session archival; the agent runs fine with a nil *DB.
package store

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

// DB wraps *sql.DB for session storage. Schema is owned by the app.
type DB struct {
	*sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	topic       TEXT NOT NULL,
	model       TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	iterations  INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
	finished_at DATETIME
);

CREATE TABLE IF NOT EXISTS messages (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id   TEXT NOT NULL REFERENCES sessions(id),
	role         TEXT NOT NULL,
	content      TEXT,
	tool_calls   TEXT,
	tool_call_id TEXT,
	created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);

CREATE TABLE IF NOT EXISTS reports (
	session_id TEXT PRIMARY KEY REFERENCES sessions(id),
	report     TEXT NOT NULL,
	partial    INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens the SQLite database at path and applies the schema. Creates the
// file if missing.
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db}, nil
}
