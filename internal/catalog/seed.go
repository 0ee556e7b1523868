package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/starford/fretwork/internal/checksum"
	"github.com/starford/fretwork/internal/progression"
)

// SeedBuiltins loads the static chord catalogue and progression tables.
// Running it again replaces the previous built-in rows.
func SeedBuiltins(db *DB) error {
	seen := make(map[string]struct{})
	var rows []ChordRow
	add := func(c progression.Chord) {
		if _, ok := seen[c.Name]; ok {
			return
		}
		seen[c.Name] = struct{}{}
		rows = append(rows, RowFor(c, BuiltinSource))
	}
	for _, c := range progression.Catalogue {
		add(c)
	}
	for _, key := range progression.Keys() {
		fns := make([]string, 0, len(progression.Progressions[key]))
		for fn := range progression.Progressions[key] {
			fns = append(fns, fn)
		}
		sort.Strings(fns)
		for _, fn := range fns {
			add(progression.Progressions[key][fn])
		}
	}

	var sig strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&sig, "%s=%s;", r.Name, r.Shape)
	}
	src := SourceRow{Path: BuiltinSource, Title: "Built-in chords", Checksum: checksum.Sum([]byte(sig.String()))}
	if err := db.UpsertSource(src, rows); err != nil {
		return err
	}
	return db.seedProgressions()
}

func (db *DB) seedProgressions() error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM progressions`); err != nil {
		return fmt.Errorf("catalog: clear progressions: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO progressions (key, function, chord_name) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("catalog: prepare progression insert: %w", err)
	}
	defer stmt.Close()
	for key, prog := range progression.Progressions {
		for fn, c := range prog {
			if _, err := stmt.Exec(key, fn, c.Name); err != nil {
				return fmt.Errorf("catalog: insert progression %s/%s: %w", key, fn, err)
			}
		}
	}
	return tx.Commit()
}
