package catalog

// Catalog defines the chord catalogue operations. Consumers should depend
// on this interface rather than the concrete *DB type.
type Catalog interface {
	UpsertSource(src SourceRow, chords []ChordRow) error
	DeleteSource(path string) error
	SourceChecksums() (map[string]string, error)
	Sources() ([]SourceRow, error)
	Get(name string) (*ChordRow, error)
	List(limit, offset int, typ string) ([]ChordRow, int, error)
	ByShape(shape string) ([]ChordRow, error)
	KeysFor(name string) ([]KeyFunction, error)
	Search(query string, limit int) ([]ChordRow, error)
	Close() error
}

var _ Catalog = (*DB)(nil)
