package catalog

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/fretwork/internal/storage"
)

// Library is a chord library directory.
type Library interface {
	storage.Provider
	// Root is the absolute directory being watched.
	Root() string
	// Matches reports whether a root-relative path is a library file.
	Matches(rel string) bool
}

// EventCallback is called after a watcher-driven catalogue change.
// kind is one of the Event* constants.
type EventCallback func(kind string, path string)

// Watcher event kinds.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
	// EventSkipped follows created/updated when a file had invalid entries.
	EventSkipped = "skipped"
)

const (
	// flushDelay collapses the burst of writes an editor makes per save.
	flushDelay     = 100 * time.Millisecond
	reconcileDelay = 200 * time.Millisecond
)

type watcher struct {
	db     *DB
	lib    Library
	logger *slog.Logger
	cb     EventCallback
	fsw    *fsnotify.Watcher

	// pending maps a library path to the event kind it will be indexed as.
	pending   map[string]string
	flush     *time.Timer
	reconcile *time.Timer
}

// Watch starts an fsnotify watcher on the library root and processes file
// change events until ctx is cancelled. It calls cb (if non-nil) after
// each successful catalogue mutation.
//
// Writes are debounced per file. New directories created at runtime are
// added to the watch list. Rename events trigger a reconciliation pass
// that removes sources whose files no longer exist.
func Watch(ctx context.Context, db *DB, lib Library, logger *slog.Logger, cb EventCallback) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := addDirsRecursive(fsw, lib.Root()); err != nil {
		return err
	}

	w := &watcher{
		db:        db,
		lib:       lib,
		logger:    logger,
		cb:        cb,
		fsw:       fsw,
		pending:   make(map[string]string),
		flush:     stoppedTimer(),
		reconcile: stoppedTimer(),
	}
	defer w.flush.Stop()
	defer w.reconcile.Stop()

	logger.Info("watcher: started", slog.String("root", lib.Root()))
	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil
		case <-w.flush.C:
			w.flushPending()
		case <-w.reconcile.C:
			w.reconcileAll()
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", err.Error()))
		}
	}
}

func stoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return t
}

func (w *watcher) notify(kind, path string) {
	if w.cb != nil {
		w.cb(kind, path)
	}
}

func (w *watcher) handle(ev fsnotify.Event) {
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := addDirsRecursive(w.fsw, ev.Name); err != nil {
				w.logger.Warn("watcher: add new dir failed",
					slog.String("path", ev.Name), slog.String("error", err.Error()))
			}
			w.queueDir(ev.Name)
			return
		}
	}

	rel, err := filepath.Rel(w.lib.Root(), ev.Name)
	if err != nil || !w.lib.Matches(rel) {
		return
	}

	switch {
	case ev.Op&fsnotify.Create != 0:
		w.queue(rel, EventCreated)
	case ev.Op&fsnotify.Write != 0:
		w.queue(rel, EventUpdated)
	case ev.Op&fsnotify.Remove != 0:
		delete(w.pending, rel)
		w.remove(rel)
	case ev.Op&fsnotify.Rename != 0:
		// Rename fires on the old path only; the new path arrives as a
		// Create when it stays under a watched directory.
		delete(w.pending, rel)
		w.remove(rel)
		w.reconcile.Reset(reconcileDelay)
	}
}

// queue schedules rel for indexing. A create followed by writes is still
// reported as a create.
func (w *watcher) queue(rel, kind string) {
	if w.pending[rel] != EventCreated {
		w.pending[rel] = kind
	}
	w.flush.Reset(flushDelay)
}

// queueDir schedules every library file below a newly created directory.
func (w *watcher) queueDir(dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if rel, relErr := filepath.Rel(w.lib.Root(), path); relErr == nil && w.lib.Matches(rel) {
			w.queue(rel, EventCreated)
		}
		return nil
	})
}

func (w *watcher) flushPending() {
	for rel, kind := range w.pending {
		delete(w.pending, rel)
		w.index(rel, kind)
	}
}

func (w *watcher) index(rel, kind string) {
	data, err := w.lib.Read(rel)
	if err != nil {
		// Removed again before the flush; the Remove event handles it.
		w.logger.Debug("watcher: read failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	res, err := indexFile(w.db, rel, data, w.logger)
	if err != nil {
		w.logger.Warn("watcher: index failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	w.logger.Debug("watcher: indexed",
		slog.String("path", rel),
		slog.String("op", kind),
		slog.Int("chords", len(res.Chords)),
		slog.Int("skipped", len(res.Invalid)))
	w.notify(kind, rel)
	if len(res.Invalid) > 0 {
		w.notify(EventSkipped, rel)
	}
}

func (w *watcher) remove(rel string) {
	if err := w.db.DeleteSource(rel); err != nil {
		w.logger.Warn("watcher: delete failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	w.logger.Debug("watcher: deleted", slog.String("path", rel))
	w.notify(EventDeleted, rel)
}

// reconcileAll removes sources without a file on disk and indexes files
// that are missing or stale in the catalogue.
func (w *watcher) reconcileAll() {
	checksums, err := w.db.SourceChecksums()
	if err != nil {
		w.logger.Warn("reconcile: source checksums failed", slog.String("error", err.Error()))
		return
	}
	metas, err := w.lib.List("")
	if err != nil {
		w.logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]string, len(metas))
	for _, m := range metas {
		disk[m.Path] = m.Checksum
	}
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			w.remove(p)
		}
	}
	for p, cs := range disk {
		old, known := checksums[p]
		switch {
		case !known:
			w.index(p, EventCreated)
		case old != cs:
			w.index(p, EventUpdated)
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
