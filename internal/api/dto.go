package api

import (
	"fmt"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/fretwork/internal/apperr"
	"github.com/starford/fretwork/internal/catalog"
	"github.com/starford/fretwork/internal/diagramservice"
	"github.com/starford/fretwork/internal/music"
	"github.com/starford/fretwork/internal/progression"
	"github.com/starford/fretwork/internal/scale"
	"github.com/starford/fretwork/internal/ui"
)

// EventRequest is the request body for applying a UI event to a session.
type EventRequest struct {
	Type  string `json:"type" example:"key_selected" validate:"required"`
	Value string `json:"value,omitempty" example:"G"`
}

// Validate checks the event type against the known events.
func (r EventRequest) Validate() error {
	names := make([]any, len(ui.EventNames))
	for i, n := range ui.EventNames {
		names[i] = n
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type, validation.Required, validation.In(names...)),
	)
}

// ExportRequest is the request body for exporting diagrams.
type ExportRequest struct {
	Roots     []string `json:"roots,omitempty" example:"C,G"`
	Highlight string   `json:"highlight,omitempty" example:"major"`
}

// Validate checks the roots and highlight mode.
func (r ExportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Roots, validation.Length(0, 12), validation.Each(validation.By(knownRoot))),
		validation.Field(&r.Highlight, validation.By(knownHighlight)),
	)
}

// KeysResponse lists the supported keys.
type KeysResponse struct {
	Keys []string `json:"keys" validate:"required"`
}

// ChordListResponse wraps paginated catalogue listings.
type ChordListResponse struct {
	Chords []catalog.ChordRow `json:"chords" validate:"required"`
	Total  int                `json:"total" example:"42" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []catalog.ChordRow `json:"results" validate:"required"`
}

// SourcesResponse lists the chord sources of the catalogue.
type SourcesResponse struct {
	Sources []catalog.SourceRow `json:"sources" validate:"required"`
}

// ChordDetail is a catalogue chord with geometry (aliased from the domain layer).
type ChordDetail = diagramservice.ChordDetail

// ChordInfo is a shape with its barre and matches (aliased from the domain layer).
type ChordInfo = diagramservice.ChordInfo

// ProgressionView is the chord table of a key (aliased from the domain layer).
type ProgressionView = diagramservice.ProgressionView

// listQuery holds the pagination parameters of GET /chords.
type listQuery struct {
	Limit  int
	Offset int
	Type   string
}

func (q listQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Limit, validation.Min(0), validation.Max(500)),
		validation.Field(&q.Offset, validation.Min(0)),
		validation.Field(&q.Type, validation.By(knownChordType)),
	)
}

// scaleQuery holds the drawing parameters of the scale endpoints.
type scaleQuery struct {
	Root      string
	Highlight string
	Labels    bool
	Format    string
}

func (q scaleQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Root, validation.By(knownRoot)),
		validation.Field(&q.Highlight, validation.By(knownHighlight)),
		validation.Field(&q.Format, validation.In(diagramservice.FormatSVG, diagramservice.FormatText)),
	)
}

func (q scaleQuery) request(typ string) diagramservice.ScaleRequest {
	return diagramservice.ScaleRequest{
		Type:      typ,
		Root:      q.Root,
		Highlight: q.Highlight,
		Labels:    q.Labels,
		Format:    q.Format,
	}
}

func parseListQuery(v url.Values) (listQuery, error) {
	var q listQuery
	var err error
	if q.Limit, err = intParam(v, "limit"); err != nil {
		return q, err
	}
	if q.Offset, err = intParam(v, "offset"); err != nil {
		return q, err
	}
	q.Type = v.Get("type")
	return q, invalid(q.Validate())
}

func parseScaleQuery(v url.Values) (scaleQuery, error) {
	q := scaleQuery{
		Root:      v.Get("root"),
		Highlight: v.Get("highlight"),
		Labels:    true,
		Format:    v.Get("format"),
	}
	if s := v.Get("labels"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return q, fmt.Errorf("%w: labels: %q is not a boolean", apperr.ErrInvalidInput, s)
		}
		q.Labels = b
	}
	return q, invalid(q.Validate())
}

func intParam(v url.Values, name string) (int, error) {
	s := v.Get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a number", apperr.ErrInvalidInput, name, s)
	}
	return n, nil
}

// invalid marks validation failures as bad input.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
}

func knownRoot(v any) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	_, err := music.ParseRoot(s)
	return err
}

func knownHighlight(v any) error {
	s, _ := v.(string)
	_, err := scale.ParseHighlight(s)
	return err
}

func knownChordType(v any) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	_, err := progression.ParseChordType(s)
	return err
}
