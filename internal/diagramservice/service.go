// Package diagramservice coordinates rendering, the chord catalogue, page
// sessions and diagram export.
package diagramservice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/starford/fretwork/internal/apperr"
	"github.com/starford/fretwork/internal/catalog"
	"github.com/starford/fretwork/internal/checksum"
	"github.com/starford/fretwork/internal/chord"
	"github.com/starford/fretwork/internal/metrics"
	"github.com/starford/fretwork/internal/models"
	"github.com/starford/fretwork/internal/progression"
	"github.com/starford/fretwork/internal/render"
	"github.com/starford/fretwork/internal/scale"
	"github.com/starford/fretwork/internal/storage"
	"github.com/starford/fretwork/internal/ui"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatText = "text"
)

// ErrNoOutput is returned by Export when no export target is configured.
var ErrNoOutput = fmt.Errorf("%w: no export target configured", apperr.ErrConflict)

// StatePublisher receives session state after every applied event.
type StatePublisher interface {
	PublishState(session string, state any)
}

// ChordInfo is a chord shape with its geometry and the catalogue entries
// that use it.
type ChordInfo struct {
	Shape   chord.Shape        `json:"shape"`
	Diagram chord.Diagram      `json:"diagram"`
	Barre   *chord.Barre       `json:"barre"`
	Matches []catalog.ChordRow `json:"matches"`
}

// ChordDetail is a named chord with its geometry and key memberships.
type ChordDetail struct {
	catalog.ChordRow
	Diagram chord.Diagram         `json:"diagram"`
	Keys    []catalog.KeyFunction `json:"keys"`
}

// ProgressionView is the chord table of one key.
type ProgressionView struct {
	Key      string                `json:"key"`
	Minor    bool                  `json:"minor"`
	Groups   []progression.Group   `json:"groups"`
	Examples []progression.Example `json:"examples"`
}

// ScaleRequest selects a scale pattern table and how to draw it.
type ScaleRequest struct {
	Type      string
	Root      string
	Highlight string
	Labels    bool
	Format    string
}

// Service coordinates the catalogue, renderers, sessions and export target.
type Service struct {
	catalog  catalog.Catalog
	svg      render.Renderer
	text     render.Renderer
	sessions *ui.Sessions
	output   storage.Provider
	metrics  *metrics.Metrics
	events   StatePublisher
}

// Option configures a Service.
type Option func(*Service)

// WithOutput sets the export target.
func WithOutput(p storage.Provider) Option {
	return func(s *Service) { s.output = p }
}

// WithMetrics sets the render counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithEvents sets the session state publisher.
func WithEvents(p StatePublisher) Option {
	return func(s *Service) { s.events = p }
}

// WithSessions shares an existing session store.
func WithSessions(ss *ui.Sessions) Option {
	return func(s *Service) { s.sessions = ss }
}

// NewService creates a new diagram service.
func NewService(cat catalog.Catalog, opts ...Option) *Service {
	s := &Service{
		catalog: cat,
		svg:     render.NewSVG(),
		text:    render.NewText(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessions == nil {
		s.sessions = ui.NewSessions()
	}
	return s
}

// Sessions exposes the session store.
func (s *Service) Sessions() *ui.Sessions { return s.sessions }

func (s *Service) renderer(format string) (render.Renderer, error) {
	switch strings.ToLower(format) {
	case "", FormatSVG:
		return s.svg, nil
	case FormatText:
		return s.text, nil
	}
	return nil, fmt.Errorf("%w: unknown format %q", apperr.ErrInvalidInput, format)
}

func (s *Service) diagram(kind, title, contentType string, content []byte) *models.Diagram {
	s.metrics.Rendered(kind)
	return &models.Diagram{
		Kind:        kind,
		Title:       title,
		ContentType: contentType,
		Content:     content,
		Checksum:    checksum.Sum(content),
	}
}

// RenderChord draws the chord given by a six-character shape.
func (s *Service) RenderChord(_ context.Context, shape, title, format string) (*models.Diagram, error) {
	r, err := s.renderer(format)
	if err != nil {
		return nil, err
	}
	sh, err := chord.ParseShape(shape)
	if err != nil {
		return nil, err
	}
	out, err := r.Chord(title, chord.Layout(sh))
	if err != nil {
		s.metrics.Failed(metrics.KindChord)
		return nil, fmt.Errorf("diagramservice: render chord: %w", err)
	}
	return s.diagram(metrics.KindChord, title, r.ContentType(), out), nil
}

// RenderNamedChord draws a catalogue chord under its own name.
func (s *Service) RenderNamedChord(ctx context.Context, name, format string) (*models.Diagram, error) {
	row, err := s.catalog.Get(name)
	if err != nil {
		return nil, err
	}
	return s.RenderChord(ctx, row.Shape.String(), row.Name, format)
}

// Barre reports the barre and geometry of a shape.
func (s *Service) Barre(_ context.Context, shape string) (*ChordInfo, error) {
	sh, err := chord.ParseShape(shape)
	if err != nil {
		return nil, err
	}
	d := chord.Layout(sh)
	matches, err := s.catalog.ByShape(sh.String())
	if err != nil {
		return nil, err
	}
	return &ChordInfo{Shape: sh, Diagram: d, Barre: d.Barre, Matches: matches}, nil
}

func scaleState(req ScaleRequest) (ui.State, error) {
	st := ui.DefaultState()
	typ, err := scale.ParseType(req.Type)
	if err != nil {
		return ui.State{}, err
	}
	mode, err := scale.ParseHighlight(req.Highlight)
	if err != nil {
		return ui.State{}, err
	}
	st.ScaleType, st.Highlight, st.LabelsVisible = typ, mode, req.Labels
	if req.Root != "" {
		st.Root = req.Root
	}
	if err := st.Validate(); err != nil {
		return ui.State{}, err
	}
	return st, nil
}

// Scales renders every pattern of the requested table.
func (s *Service) Scales(_ context.Context, req ScaleRequest) (*ui.ScaleView, error) {
	r, err := s.renderer(req.Format)
	if err != nil {
		return nil, err
	}
	st, err := scaleState(req)
	if err != nil {
		return nil, err
	}
	view, err := ui.ScalePage(st, r)
	if err != nil {
		s.metrics.Failed(metrics.KindScale)
		return nil, err
	}
	s.metrics.Rendered(metrics.KindPage)
	return &view, nil
}

// RenderScale draws pattern index (1-based) of the requested table.
func (s *Service) RenderScale(_ context.Context, req ScaleRequest, index int) (*models.Diagram, *scale.Diagram, error) {
	r, err := s.renderer(req.Format)
	if err != nil {
		return nil, nil, err
	}
	st, err := scaleState(req)
	if err != nil {
		return nil, nil, err
	}
	patterns := scale.Patterns(st.ScaleType)
	if index < 1 || index > len(patterns) {
		return nil, nil, fmt.Errorf("%w: %s pattern %d", apperr.ErrNotFound, st.ScaleType, index)
	}
	d, err := scale.Build(patterns[index-1], st.Root, st.Highlight)
	if err != nil {
		return nil, nil, err
	}
	out, err := r.Scale(d.Name, d, render.ScaleOptions{ShowNoteLabels: st.LabelsVisible})
	if err != nil {
		s.metrics.Failed(metrics.KindScale)
		return nil, nil, fmt.Errorf("diagramservice: render scale: %w", err)
	}
	return s.diagram(metrics.KindScale, d.Name, r.ContentType(), out), &d, nil
}

// Keys lists the supported keys.
func (s *Service) Keys(_ context.Context) []string {
	return progression.Keys()
}

// Progression returns the chord groups and examples of key.
func (s *Service) Progression(_ context.Context, key string) (*ProgressionView, error) {
	groups, ok := progression.Groups(key)
	if !ok {
		return nil, fmt.Errorf("%w: unknown key %q", apperr.ErrNotFound, key)
	}
	return &ProgressionView{
		Key:      key,
		Minor:    progression.IsMinorKey(key),
		Groups:   groups,
		Examples: progression.Examples(key),
	}, nil
}

// ProgressionChord returns the chord filling function in key.
func (s *Service) ProgressionChord(ctx context.Context, key, function string) (*ChordDetail, error) {
	if _, ok := progression.Progressions[key]; !ok {
		return nil, fmt.Errorf("%w: unknown key %q", apperr.ErrNotFound, key)
	}
	c, ok := progression.Lookup(key, function)
	if !ok {
		return nil, fmt.Errorf("%w: no %s chord in %s", apperr.ErrNotFound, function, key)
	}
	return s.detail(ctx, catalog.RowFor(c, catalog.BuiltinSource))
}

// LookupChord returns a catalogue chord by name.
func (s *Service) LookupChord(ctx context.Context, name string) (*ChordDetail, error) {
	row, err := s.catalog.Get(name)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, *row)
}

func (s *Service) detail(_ context.Context, row catalog.ChordRow) (*ChordDetail, error) {
	keys, err := s.catalog.KeysFor(row.Name)
	if err != nil {
		return nil, err
	}
	return &ChordDetail{ChordRow: row, Diagram: chord.Layout(row.Shape), Keys: keys}, nil
}

// ListChords returns a page of the catalogue.
func (s *Service) ListChords(_ context.Context, limit, offset int, typ string) ([]catalog.ChordRow, int, error) {
	return s.catalog.List(limit, offset, typ)
}

// Search finds catalogue chords by name, shape or type.
func (s *Service) Search(_ context.Context, query string, limit int) ([]catalog.ChordRow, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", apperr.ErrInvalidInput)
	}
	return s.catalog.Search(query, limit)
}

// Sources lists the chord sources in the catalogue.
func (s *Service) Sources(_ context.Context) ([]catalog.SourceRow, error) {
	return s.catalog.Sources()
}

func parseSessionID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: session id %q", apperr.ErrInvalidInput, id)
	}
	return u, nil
}

// CreateSession starts a page session in the default state.
func (s *Service) CreateSession(_ context.Context) ui.Session {
	return s.sessions.Create()
}

// Session returns a page session.
func (s *Service) Session(_ context.Context, id string) (ui.Session, error) {
	u, err := parseSessionID(id)
	if err != nil {
		return ui.Session{}, err
	}
	return s.sessions.Get(u)
}

// DeleteSession ends a page session.
func (s *Service) DeleteSession(_ context.Context, id string) error {
	u, err := parseSessionID(id)
	if err != nil {
		return err
	}
	if _, err := s.sessions.Get(u); err != nil {
		return err
	}
	s.sessions.Delete(u)
	return nil
}

// ApplyEvent decodes and applies a UI event to a session and publishes the
// resulting state.
func (s *Service) ApplyEvent(_ context.Context, id, name, value string) (ui.Session, error) {
	u, err := parseSessionID(id)
	if err != nil {
		return ui.Session{}, err
	}
	e, err := ui.DecodeEvent(name, value)
	if err != nil {
		return ui.Session{}, err
	}
	sess, err := s.sessions.Apply(u, e)
	if err != nil {
		return sess, err
	}
	if s.events != nil {
		s.events.PublishState(sess.ID.String(), sess.State)
	}
	return sess, nil
}

// ChordPage renders the chord page of a session.
func (s *Service) ChordPage(ctx context.Context, id, format string) (*ui.ChordView, error) {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.ChordPageFor(ctx, sess.State, format)
}

// ChordPageFor renders the chord page of an explicit state.
func (s *Service) ChordPageFor(_ context.Context, st ui.State, format string) (*ui.ChordView, error) {
	r, err := s.renderer(format)
	if err != nil {
		return nil, err
	}
	view, err := ui.ChordPage(st, r)
	if err != nil {
		s.metrics.Failed(metrics.KindPage)
		return nil, err
	}
	s.metrics.Rendered(metrics.KindPage)
	return &view, nil
}

// ScalePage renders the scale page of a session.
func (s *Service) ScalePage(ctx context.Context, id, format string) (*ui.ScaleView, error) {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := s.renderer(format)
	if err != nil {
		return nil, err
	}
	view, err := ui.ScalePage(sess.State, r)
	if err != nil {
		s.metrics.Failed(metrics.KindPage)
		return nil, err
	}
	s.metrics.Rendered(metrics.KindPage)
	return &view, nil
}

// ExportOptions selects what Export writes.
type ExportOptions struct {
	// Roots are the scale roots to export; empty means C only.
	Roots     []string
	Highlight string
}

// Export writes an SVG for every catalogue chord and every scale pattern in
// each requested root. Files whose content is unchanged are not rewritten.
func (s *Service) Export(ctx context.Context, opts ExportOptions) (*models.ExportResult, error) {
	if s.output == nil {
		return nil, ErrNoOutput
	}
	mode, err := scale.ParseHighlight(opts.Highlight)
	if err != nil {
		return nil, err
	}
	roots := opts.Roots
	if len(roots) == 0 {
		roots = []string{"C"}
	}
	res := &models.ExportResult{}

	const page = 200
	for offset := 0; ; offset += page {
		rows, total, err := s.catalog.List(page, offset, "")
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			d, err := s.RenderChord(ctx, row.Shape.String(), row.Name, FormatSVG)
			if err != nil {
				return res, err
			}
			if err := s.write(res, "chords/"+Slug(row.Name)+".svg", d.Content); err != nil {
				return res, err
			}
		}
		if offset+page >= total {
			break
		}
	}

	for _, root := range roots {
		for _, typ := range []scale.Type{scale.Diatonic, scale.Pentatonic} {
			req := ScaleRequest{Type: string(typ), Root: root, Highlight: string(mode), Labels: true}
			for i := range scale.Patterns(typ) {
				if err := ctx.Err(); err != nil {
					return res, err
				}
				d, _, err := s.RenderScale(ctx, req, i+1)
				if err != nil {
					return res, err
				}
				path := fmt.Sprintf("scales/%s/%s/%s.svg", Slug(root), typ, Slug(d.Title))
				if err := s.write(res, path, d.Content); err != nil {
					return res, err
				}
			}
		}
	}
	return res, nil
}

func (s *Service) write(res *models.ExportResult, path string, content []byte) error {
	existing, err := s.output.Read(path)
	switch {
	case err == nil && checksum.Sum(existing) == checksum.Sum(content):
		res.Unchanged = append(res.Unchanged, path)
		return nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return err
	}
	if err := s.output.Write(path, content); err != nil {
		return fmt.Errorf("diagramservice: export %s: %w", path, err)
	}
	res.Written = append(res.Written, path)
	return nil
}

var slugReplacer = strings.NewReplacer("#", "-sharp", "/", "-", " ", "-")

// Slug turns a chord or pattern name into a file name.
func Slug(name string) string {
	return strings.Trim(strings.ToLower(slugReplacer.Replace(strings.TrimSpace(name))), "-")
}
