// Package catalog provides the SQLite-backed chord catalogue: the built-in
// progression tables plus chords loaded from library files, with optional
// FTS5 search.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// BuiltinSource is the source recorded for chords from the static tables.
const BuiltinSource = "builtin"

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS sources (
	path       TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	checksum   TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS chords (
	name       TEXT NOT NULL,
	source     TEXT NOT NULL,
	shape      TEXT NOT NULL,
	type       TEXT NOT NULL,
	start_fret INTEGER NOT NULL DEFAULT 1,
	barre_fret INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (name, source)
);

CREATE TABLE IF NOT EXISTS progressions (
	key        TEXT NOT NULL,
	function   TEXT NOT NULL,
	chord_name TEXT NOT NULL,
	PRIMARY KEY (key, function)
);

CREATE INDEX IF NOT EXISTS idx_chords_shape ON chords(shape);
CREATE INDEX IF NOT EXISTS idx_chords_source ON chords(source);
CREATE INDEX IF NOT EXISTS idx_progressions_chord ON progressions(chord_name);
`

// DB wraps a sql.DB with catalogue operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("catalog: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("catalog: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("catalog: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("catalog: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks the database connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}
