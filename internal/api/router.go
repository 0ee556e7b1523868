package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/fretwork/internal/diagramservice"
	"github.com/starford/fretwork/internal/storage"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// files, if non-nil, is the export directory served under /files.
func NewRouter(svc *diagramservice.Service, authEnabled bool, token string, sseHandler http.Handler, files storage.Provider) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Progression tables.
	r.Get("/keys", h.Keys)
	r.Get("/progressions/{key}", h.Progression)
	r.Get("/progressions/{key}/{function}", h.ProgressionChord)

	// Chords.
	r.Get("/chords", h.ListChords)
	r.Get("/chords/named/{name}", h.NamedChord)
	r.Get("/chords/{shape}", h.ChordDiagram)
	r.Get("/chords/{shape}/barre", h.Barre)
	r.Get("/sources", h.Sources)
	r.Get("/search", h.Search)

	// Scales.
	r.Get("/scales/{type}", h.Scales)
	r.Get("/scales/{type}/{index}", h.ScaleDiagram)

	// Page sessions.
	r.Post("/sessions", h.CreateSession)
	r.Get("/sessions/{id}", h.GetSession)
	r.Delete("/sessions/{id}", h.DeleteSession)
	r.Post("/sessions/{id}/events", h.ApplyEvent)
	r.Get("/sessions/{id}/chords", h.SessionChords)
	r.Get("/sessions/{id}/scales", h.SessionScales)

	// Export.
	r.Post("/export", h.Export)
	if files != nil {
		fh := NewFileHandler(files)
		r.Get("/files", fh.List)
		r.Get("/files/*", fh.ServeFile)
	}

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
