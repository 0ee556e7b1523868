package api

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/fretwork/internal/checksum"
	"github.com/starford/fretwork/internal/storage"
)

// FileHandler serves exported diagram files.
type FileHandler struct {
	store storage.Provider
}

// NewFileHandler creates a handler reading from the export directory.
func NewFileHandler(store storage.Provider) *FileHandler {
	return &FileHandler{store: store}
}

// safeName validates a slash-separated relative file name. Traversal and
// absolute names are rejected here and again by the storage layer.
func safeName(name string) (string, error) {
	if name == "" {
		return "", errors.New("filename is required")
	}
	cleaned := path.Clean(name)
	if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("invalid filename: " + name)
	}
	return cleaned, nil
}

// List handles GET /api/files.
//
//	@Summary		List exported diagram files
//	@Tags			files
//	@Produce		json
//	@Success		200	{array}	models.FileMetadata
//	@Security		BearerAuth
//	@Router			/files [get]
func (h *FileHandler) List(w http.ResponseWriter, _ *http.Request) {
	items, err := h.store.List("")
	if err != nil {
		writeError(w, "list files", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ServeFile handles GET /api/files/*.
//
//	@Summary		Download an exported diagram file
//	@Tags			files
//	@Produce		image/svg+xml
//	@Param			path	path	string	true	"File path relative to the output directory"
//	@Success		200
//	@Success		304
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/files/{path} [get]
func (h *FileHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	name, err := safeName(strings.TrimPrefix(chi.URLParam(r, "*"), "/"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	data, err := h.store.Read(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		slog.Error("serve file failed", slog.String("path", name), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	etag := checksum.ETag(data)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	ct := mime.TypeByExtension(path.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
