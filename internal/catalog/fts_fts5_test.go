//go:build sqlite_fts5

package catalog

import (
	"testing"

	"github.com/starford/fretwork/internal/progression"
)

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM chords_fts`).Scan(&count); err != nil {
		t.Fatalf("chords_fts table missing: %v", err)
	}
}

func TestFTS5_DeleteSourceRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	row := RowFor(progression.Chord{Name: "Vanishing", Shape: "x02210", Type: progression.Minor}, "gone.yaml")
	_ = db.UpsertSource(SourceRow{Path: "gone.yaml", Checksum: "g"}, []ChordRow{row})
	_ = db.DeleteSource("gone.yaml")

	results, _ := db.Search("Vanishing", 10)
	if len(results) != 0 {
		t.Errorf("deleted chord still in FTS index: %+v", results)
	}
}

func TestFTS5_UpsertReplacesContent(t *testing.T) {
	db := testDB(t)
	src := SourceRow{Path: "evo.yaml", Checksum: "1"}
	_ = db.UpsertSource(src, []ChordRow{RowFor(progression.Chord{Name: "Original", Shape: "x32010", Type: progression.Major}, src.Path)})
	src.Checksum = "2"
	_ = db.UpsertSource(src, []ChordRow{RowFor(progression.Chord{Name: "Replacement", Shape: "x32010", Type: progression.Major}, src.Path)})

	results, _ := db.Search("Original", 10)
	if len(results) != 0 {
		t.Error("old FTS content should be gone")
	}
	results, _ = db.Search("Replacement", 10)
	if len(results) != 1 || results[0].Name != "Replacement" {
		t.Errorf("FTS not updated: %+v", results)
	}
}
