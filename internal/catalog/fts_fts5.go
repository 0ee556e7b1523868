//go:build sqlite_fts5

package catalog

import (
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS chords_fts USING fts5(
			name,
			source UNINDEXED,
			shape,
			type,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, name, source, shape, typ string) error {
	_, _ = tx.Exec(`DELETE FROM chords_fts WHERE name = ? AND source = ?`, name, source)
	_, err := tx.Exec(`INSERT INTO chords_fts (name, source, shape, type) VALUES (?, ?, ?, ?)`,
		name, source, shape, typ)
	if err != nil {
		return fmt.Errorf("catalog: upsert fts: %w", err)
	}
	return nil
}

func ftsDeleteSource(tx *sql.Tx, source string) {
	_, _ = tx.Exec(`DELETE FROM chords_fts WHERE source = ?`, source)
}

// Search performs an FTS5 full-text search ranked by relevance.
func (db *DB) Search(query string, limit int) ([]ChordRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT c.name, c.source, c.shape, c.type, c.start_fret, c.barre_fret
		FROM chords_fts f
		JOIN chords c ON c.name = f.name AND c.source = f.source
		WHERE chords_fts MATCH ?
		ORDER BY f.rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("catalog: search: %w", err)
	}
	return collectChords(rows)
}
