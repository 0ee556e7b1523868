package catalog

import (
	"log/slog"

	"github.com/starford/fretwork/internal/checksum"
	"github.com/starford/fretwork/internal/chordlib"
	"github.com/starford/fretwork/internal/storage"
)

// Sync walks the chord library and brings the catalogue up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the catalogue
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.SourceChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		res, err := indexFile(db, m.Path, data, logger)
		if err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("sync: indexed",
			slog.String("path", m.Path),
			slog.Int("chords", len(res.Chords)),
			slog.Int("skipped", len(res.Invalid)))
	}

	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteSource(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile parses a library file and replaces its chords in the DB. The
// parse result is returned so callers can report skipped entries.
func indexFile(db *DB, path string, data []byte, logger *slog.Logger) (*chordlib.Result, error) {
	res, err := chordlib.Parse(path, data)
	if err != nil {
		return nil, err
	}
	for _, msg := range res.Invalid {
		logger.Warn("sync: skipped entry", slog.String("path", path), slog.String("error", msg))
	}
	rows := make([]ChordRow, 0, len(res.Chords))
	for _, c := range res.Chords {
		rows = append(rows, RowFor(c, path))
	}
	src := SourceRow{Path: path, Title: res.Title, Checksum: checksum.Sum(data)}
	if err := db.UpsertSource(src, rows); err != nil {
		return nil, err
	}
	return res, nil
}
