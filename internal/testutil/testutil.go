// Package testutil provides shared test helpers for catalogues and diagram
// directories.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/fretwork/internal/catalog"
	"github.com/starford/fretwork/internal/storage"
)

// TestDB creates a temporary SQLite catalogue seeded with the built-in
// chords. It is removed when the test ends.
func TestDB(t *testing.T) *catalog.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "fretwork-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := catalog.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := catalog.SeedBuiltins(db); err != nil {
		t.Fatal(err)
	}
	return db
}

// TestOutput creates a temporary export directory for SVG files.
func TestOutput(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir, "**/*.svg")
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}
