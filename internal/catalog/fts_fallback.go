//go:build !sqlite_fts5

package catalog

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses LIKE over the chords table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _, _, _, _ string) error { return nil }

func ftsDeleteSource(_ *sql.Tx, _ string) {}

// Search performs a LIKE-based search over chord names, shapes and types
// (fallback when FTS5 is not compiled in).
func (db *DB) Search(query string, limit int) ([]ChordRow, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT `+chordColumns+`
		FROM chords
		WHERE name LIKE ? OR shape LIKE ? OR type LIKE ?
		ORDER BY name = ? DESC, name, source
		LIMIT ?
	`, like, like, like, query, limit)
	if err != nil {
		return nil, fmt.Errorf("catalog: search: %w", err)
	}
	return collectChords(rows)
}
