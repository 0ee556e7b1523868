package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/fretwork/internal/catalog"
	"github.com/starford/fretwork/internal/diagramservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *diagramservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *diagramservice.Service) *Handler {
	return &Handler{svc: svc}
}

// urlParam returns a decoded path parameter. Chord names carry spaces and
// sharps, which clients send percent-encoded.
func urlParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// Keys handles GET /api/keys.
//
//	@Summary		List supported keys
//	@Tags			progressions
//	@Produce		json
//	@Success		200	{object}	KeysResponse
//	@Security		BearerAuth
//	@Router			/keys [get]
func (h *Handler) Keys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, KeysResponse{Keys: h.svc.Keys(r.Context())})
}

// Progression handles GET /api/progressions/{key}.
//
//	@Summary		Chord groups and example progressions of a key
//	@Tags			progressions
//	@Produce		json
//	@Param			key	path		string	true	"Key, e.g. C or Am"
//	@Success		200	{object}	ProgressionView
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/progressions/{key} [get]
func (h *Handler) Progression(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Progression(r.Context(), urlParam(r, "key"))
	if err != nil {
		writeError(w, "progression", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ProgressionChord handles GET /api/progressions/{key}/{function}.
//
//	@Summary		Chord filling a function in a key
//	@Tags			progressions
//	@Produce		json
//	@Param			key			path		string	true	"Key"
//	@Param			function	path		string	true	"Function label, e.g. IV or vi"
//	@Success		200			{object}	ChordDetail
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/progressions/{key}/{function} [get]
func (h *Handler) ProgressionChord(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.ProgressionChord(r.Context(), urlParam(r, "key"), urlParam(r, "function"))
	if err != nil {
		writeError(w, "progression chord", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ListChords handles GET /api/chords.
//
//	@Summary		List catalogue chords
//	@Tags			chords
//	@Produce		json
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Page offset"
//	@Param			type	query		string	false	"Chord type"	Enums(major, minor, 7th, diminished)
//	@Success		200		{object}	ChordListResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/chords [get]
func (h *Handler) ListChords(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		writeError(w, "list chords", err)
		return
	}
	rows, total, err := h.svc.ListChords(r.Context(), q.Limit, q.Offset, q.Type)
	if err != nil {
		writeError(w, "list chords", err)
		return
	}
	writeJSON(w, http.StatusOK, ChordListResponse{Chords: rows, Total: total})
}

// NamedChord handles GET /api/chords/named/{name}.
//
//	@Summary		Look up a catalogue chord by name
//	@Tags			chords
//	@Produce		json
//	@Param			name	path		string	true	"Chord name"
//	@Success		200		{object}	ChordDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/chords/named/{name} [get]
func (h *Handler) NamedChord(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.LookupChord(r.Context(), urlParam(r, "name"))
	if err != nil {
		writeError(w, "lookup chord", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ChordDiagram handles GET /api/chords/{shape}.
//
//	@Summary		Render a chord diagram
//	@Tags			chords
//	@Produce		image/svg+xml
//	@Param			shape			path		string	true	"Six-character shape, e.g. x32010"
//	@Param			title			query		string	false	"Diagram title"
//	@Param			format			query		string	false	"Output format"	Enums(svg, text)
//	@Param			If-None-Match	header		string	false	"ETag of a cached diagram"
//	@Success		200
//	@Success		304
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/chords/{shape} [get]
func (h *Handler) ChordDiagram(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	d, err := h.svc.RenderChord(r.Context(), urlParam(r, "shape"), q.Get("title"), q.Get("format"))
	if err != nil {
		writeError(w, "render chord", err)
		return
	}
	writeDiagram(w, r, d)
}

// Barre handles GET /api/chords/{shape}/barre.
//
//	@Summary		Barre and geometry of a shape
//	@Tags			chords
//	@Produce		json
//	@Param			shape	path		string	true	"Six-character shape"
//	@Success		200		{object}	ChordInfo
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/chords/{shape}/barre [get]
func (h *Handler) Barre(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.Barre(r.Context(), urlParam(r, "shape"))
	if err != nil {
		writeError(w, "barre", err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Scales handles GET /api/scales/{type}.
//
//	@Summary		All patterns of a scale table
//	@Tags			scales
//	@Produce		json
//	@Param			type		path		string	true	"Pattern table"	Enums(diatonic, pentatonic)
//	@Param			root		query		string	false	"Root note"
//	@Param			highlight	query		string	false	"Highlight mode"	Enums(none, major, minor)
//	@Param			labels		query		bool	false	"Show note labels"
//	@Success		200			{object}	ui.ScaleView
//	@Failure		400			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/scales/{type} [get]
func (h *Handler) Scales(w http.ResponseWriter, r *http.Request) {
	q, err := parseScaleQuery(r.URL.Query())
	if err != nil {
		writeError(w, "scales", err)
		return
	}
	view, err := h.svc.Scales(r.Context(), q.request(urlParam(r, "type")))
	if err != nil {
		writeError(w, "scales", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ScaleDiagram handles GET /api/scales/{type}/{index}.
//
//	@Summary		Render one scale pattern
//	@Tags			scales
//	@Produce		image/svg+xml
//	@Param			type		path		string	true	"Pattern table"
//	@Param			index		path		int		true	"Pattern number, starting at 1"
//	@Param			root		query		string	false	"Root note"
//	@Param			highlight	query		string	false	"Highlight mode"
//	@Param			labels		query		bool	false	"Show note labels"
//	@Param			format		query		string	false	"Output format"	Enums(svg, text)
//	@Success		200
//	@Success		304
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/scales/{type}/{index} [get]
func (h *Handler) ScaleDiagram(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("index must be a number"))
		return
	}
	q, err := parseScaleQuery(r.URL.Query())
	if err != nil {
		writeError(w, "scale", err)
		return
	}
	d, _, err := h.svc.RenderScale(r.Context(), q.request(urlParam(r, "type")), index)
	if err != nil {
		writeError(w, "scale", err)
		return
	}
	writeDiagram(w, r, d)
}

// Search handles GET /api/search.
//
//	@Summary		Search the chord catalogue
//	@Tags			chords
//	@Produce		json
//	@Param			q		query		string	true	"Query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q, "limit")
	if err != nil {
		writeError(w, "search", err)
		return
	}
	rows, err := h.svc.Search(r.Context(), q.Get("q"), limit)
	if err != nil {
		writeError(w, "search", err)
		return
	}
	if rows == nil {
		rows = []catalog.ChordRow{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: rows})
}

// Sources handles GET /api/sources.
//
//	@Summary		List chord sources
//	@Tags			chords
//	@Produce		json
//	@Success		200	{object}	SourcesResponse
//	@Security		BearerAuth
//	@Router			/sources [get]
func (h *Handler) Sources(w http.ResponseWriter, r *http.Request) {
	src, err := h.svc.Sources(r.Context())
	if err != nil {
		writeError(w, "sources", err)
		return
	}
	writeJSON(w, http.StatusOK, SourcesResponse{Sources: src})
}

// CreateSession handles POST /api/sessions.
//
//	@Summary		Start a page session
//	@Tags			sessions
//	@Produce		json
//	@Success		201	{object}	ui.Session
//	@Security		BearerAuth
//	@Router			/sessions [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, h.svc.CreateSession(r.Context()))
}

// GetSession handles GET /api/sessions/{id}.
//
//	@Summary		Get a page session
//	@Tags			sessions
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	ui.Session
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "get session", err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// DeleteSession handles DELETE /api/sessions/{id}.
//
//	@Summary		End a page session
//	@Tags			sessions
//	@Param			id	path	string	true	"Session ID"
//	@Success		204
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id} [delete]
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyEvent handles POST /api/sessions/{id}/events.
//
//	@Summary		Apply a UI event to a session
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Session ID"
//	@Param			body	body		EventRequest	true	"Event"
//	@Success		200		{object}	ui.Session
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id}/events [post]
func (h *Handler) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, "apply event", invalid(err))
		return
	}
	sess, err := h.svc.ApplyEvent(r.Context(), chi.URLParam(r, "id"), req.Type, req.Value)
	if err != nil {
		writeError(w, "apply event", err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// SessionChords handles GET /api/sessions/{id}/chords.
//
//	@Summary		Chord page of a session
//	@Tags			sessions
//	@Produce		json
//	@Param			id		path		string	true	"Session ID"
//	@Param			format	query		string	false	"Card markup format"	Enums(svg, text)
//	@Success		200		{object}	ui.ChordView
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id}/chords [get]
func (h *Handler) SessionChords(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.ChordPage(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, "chord page", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SessionScales handles GET /api/sessions/{id}/scales.
//
//	@Summary		Scale page of a session
//	@Tags			sessions
//	@Produce		json
//	@Param			id		path		string	true	"Session ID"
//	@Param			format	query		string	false	"Card markup format"	Enums(svg, text)
//	@Success		200		{object}	ui.ScaleView
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id}/scales [get]
func (h *Handler) SessionScales(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.ScalePage(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, "scale page", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Export handles POST /api/export.
//
//	@Summary		Write SVG diagrams to the output directory
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ExportRequest	false	"Roots and highlight mode"
//	@Success		200		{object}	models.ExportResult
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/export [post]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, "export", invalid(err))
		return
	}
	res, err := h.svc.Export(r.Context(), diagramservice.ExportOptions{Roots: req.Roots, Highlight: req.Highlight})
	if err != nil {
		writeError(w, "export", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
