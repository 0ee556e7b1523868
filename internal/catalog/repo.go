package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/starford/fretwork/internal/apperr"
	"github.com/starford/fretwork/internal/chord"
	"github.com/starford/fretwork/internal/progression"
)

// ChordRow represents a row in the chords table.
type ChordRow struct {
	Name      string                `json:"name"`
	Source    string                `json:"source"`
	Shape     chord.Shape           `json:"shape"`
	Type      progression.ChordType `json:"type"`
	StartFret int                   `json:"start_fret"`
	BarreFret int                   `json:"barre_fret,omitempty"`
}

// SourceRow represents a chord library file (or the built-in tables).
type SourceRow struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
	Chords    int       `json:"chords"`
}

// KeyFunction places a chord within a key's progression table.
type KeyFunction struct {
	Key      string `json:"key"`
	Function string `json:"function"`
	Label    string `json:"label"`
}

// RowFor derives the stored geometry columns of c.
func RowFor(c progression.Chord, source string) ChordRow {
	d := chord.Layout(c.Shape)
	row := ChordRow{
		Name:      c.Name,
		Source:    source,
		Shape:     c.Shape,
		Type:      c.Type,
		StartFret: d.StartFret,
	}
	if d.Barre != nil {
		row.BarreFret = d.Barre.Fret
	}
	return row
}

// UpsertSource replaces a source and all of its chords within a transaction.
func (db *DB) UpsertSource(src SourceRow, chords []ChordRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if src.UpdatedAt.IsZero() {
		src.UpdatedAt = time.Now()
	}
	_, err = tx.Exec(`
		INSERT INTO sources (path, title, checksum, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title      = excluded.title,
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, src.Path, src.Title, src.Checksum, src.UpdatedAt)
	if err != nil {
		return fmt.Errorf("catalog: upsert source: %w", err)
	}

	ftsDeleteSource(tx, src.Path)
	if _, err := tx.Exec(`DELETE FROM chords WHERE source = ?`, src.Path); err != nil {
		return fmt.Errorf("catalog: clear chords: %w", err)
	}
	if len(chords) > 0 {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO chords (name, source, shape, type, start_fret, barre_fret)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("catalog: prepare chord insert: %w", err)
		}
		defer stmt.Close()
		for _, c := range chords {
			if _, err := stmt.Exec(c.Name, src.Path, string(c.Shape), c.Type.String(), c.StartFret, c.BarreFret); err != nil {
				return fmt.Errorf("catalog: insert chord %q: %w", c.Name, err)
			}
			if err := ftsUpsert(tx, c.Name, src.Path, string(c.Shape), c.Type.String()); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// DeleteSource removes a source and its chords.
func (db *DB) DeleteSource(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDeleteSource(tx, path)
	_, _ = tx.Exec(`DELETE FROM chords WHERE source = ?`, path)
	_, _ = tx.Exec(`DELETE FROM sources WHERE path = ?`, path)

	return tx.Commit()
}

// SourceChecksums returns the stored checksum of every library file. The
// built-in source is not included.
func (db *DB) SourceChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM sources WHERE path != ?`, BuiltinSource)
	if err != nil {
		return nil, fmt.Errorf("catalog: source checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// Sources lists every source with its chord count.
func (db *DB) Sources() ([]SourceRow, error) {
	rows, err := db.conn.Query(`
		SELECT s.path, s.title, s.checksum, s.updated_at, count(c.name)
		FROM sources s LEFT JOIN chords c ON c.source = s.path
		GROUP BY s.path
		ORDER BY s.path = ? DESC, s.path
	`, BuiltinSource)
	if err != nil {
		return nil, fmt.Errorf("catalog: sources: %w", err)
	}
	defer rows.Close()
	var out []SourceRow
	for rows.Next() {
		var s SourceRow
		if err := rows.Scan(&s.Path, &s.Title, &s.Checksum, &s.UpdatedAt, &s.Chords); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

const chordColumns = `name, source, shape, type, start_fret, barre_fret`

// Get returns the chord called name. A library chord shadows a built-in one
// of the same name.
func (db *DB) Get(name string) (*ChordRow, error) {
	row := db.conn.QueryRow(`SELECT `+chordColumns+` FROM chords WHERE name = ?
		ORDER BY source = ? ASC, source LIMIT 1`, name, BuiltinSource)
	c, err := scanChord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("catalog: chord %q: %w", name, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: get chord: %w", err)
	}
	return &c, nil
}

// List returns a page of chords ordered by name, optionally filtered by
// type, with the total number of matching rows.
func (db *DB) List(limit, offset int, typ string) ([]ChordRow, int, error) {
	if limit <= 0 {
		limit = 50
	}
	where, args := "", []any{}
	if typ != "" {
		t, err := progression.ParseChordType(typ)
		if err != nil {
			return nil, 0, err
		}
		where, args = ` WHERE type = ?`, append(args, t.String())
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM chords`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("catalog: count chords: %w", err)
	}
	rows, err := db.conn.Query(`SELECT `+chordColumns+` FROM chords`+where+
		` ORDER BY name, source LIMIT ? OFFSET ?`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: list chords: %w", err)
	}
	out, err := collectChords(rows)
	return out, total, err
}

// ByShape returns every chord stored with shape.
func (db *DB) ByShape(shape string) ([]ChordRow, error) {
	rows, err := db.conn.Query(`SELECT `+chordColumns+` FROM chords WHERE shape = ? ORDER BY name, source`, shape)
	if err != nil {
		return nil, fmt.Errorf("catalog: by shape: %w", err)
	}
	return collectChords(rows)
}

// KeysFor lists the keys whose progression table contains the chord.
func (db *DB) KeysFor(name string) ([]KeyFunction, error) {
	rows, err := db.conn.Query(`SELECT key, function FROM progressions WHERE chord_name = ? ORDER BY key, function`, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: keys for: %w", err)
	}
	defer rows.Close()
	var out []KeyFunction
	for rows.Next() {
		var kf KeyFunction
		if err := rows.Scan(&kf.Key, &kf.Function); err != nil {
			return nil, err
		}
		kf.Label = progression.DisplayLabel(kf.Key, kf.Function)
		out = append(out, kf)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanChord(s scanner) (ChordRow, error) {
	var (
		c          ChordRow
		shape, typ string
	)
	if err := s.Scan(&c.Name, &c.Source, &shape, &typ, &c.StartFret, &c.BarreFret); err != nil {
		return ChordRow{}, err
	}
	t, err := progression.ParseChordType(typ)
	if err != nil {
		return ChordRow{}, err
	}
	c.Shape, c.Type = chord.Shape(shape), t
	return c, nil
}

func collectChords(rows *sql.Rows) ([]ChordRow, error) {
	defer rows.Close()
	var out []ChordRow
	for rows.Next() {
		c, err := scanChord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
