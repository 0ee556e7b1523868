package scale

import (
	"fmt"
	"strings"

	"github.com/starford/fretwork/internal/apperr"
	"github.com/starford/fretwork/internal/music"
)

// authoredRoot is the key every pattern is written in.
const authoredRoot = "C"

// HighlightMode selects which tonic is highlighted.
type HighlightMode string

const (
	HighlightNone  HighlightMode = "none"
	HighlightMajor HighlightMode = "major"
	HighlightMinor HighlightMode = "minor"
)

// ParseHighlight resolves a highlight mode. Empty, "false" and "off" mean none.
func ParseHighlight(s string) (HighlightMode, error) {
	switch strings.ToLower(s) {
	case "", "none", "false", "off":
		return HighlightNone, nil
	case "major":
		return HighlightMajor, nil
	case "minor":
		return HighlightMinor, nil
	}
	return "", fmt.Errorf("%w: unknown highlight mode %q", apperr.ErrInvalidInput, s)
}

// Note is one displayed note.
type Note struct {
	Row         int    `json:"row"`
	Column      int    `json:"column"`
	Name        string `json:"name"`
	Highlighted bool   `json:"highlighted"`
}

// FretLabel is the starting fret number, drawn once beside Row.
type FretLabel struct {
	Row  int `json:"row"`
	Fret int `json:"fret"`
}

// Diagram is the geometric description of a transposed scale pattern. Rows
// are drawn top to bottom and columns left to right.
type Diagram struct {
	Name    string        `json:"name"`
	Root    string        `json:"root"`
	Mode    HighlightMode `json:"mode"`
	Rows    int           `json:"rows"`
	Columns int           `json:"columns"`
	Notes   []Note        `json:"notes"`
	Label   *FretLabel    `json:"label,omitempty"`
	// OpenPosition is set when no row starts with a note; the diagram then
	// has no fret label and no top boundary line.
	OpenPosition bool `json:"open_position"`
}

// Build transposes p from C to root and computes its diagram. root may use a
// sharp or flat spelling; flat keys spell accidentals with flats.
func Build(p Pattern, root string, mode HighlightMode) (Diagram, error) {
	cells, err := p.Cells()
	if err != nil {
		return Diagram{}, err
	}
	canonicalRoot, err := music.ParseRoot(root)
	if err != nil {
		return Diagram{}, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}
	if mode == "" {
		mode = HighlightNone
	}
	interval, err := music.Interval(authoredRoot, canonicalRoot)
	if err != nil {
		return Diagram{}, err
	}

	var tonic string
	switch mode {
	case HighlightMajor:
		tonic = canonicalRoot
	case HighlightMinor:
		tonic = music.Transpose(canonicalRoot, -3)
	}

	d := Diagram{
		Name:    p.Name,
		Root:    root,
		Mode:    mode,
		Rows:    len(cells),
		Columns: len(cells[0]),
	}

	for r, row := range cells {
		for c, cell := range row {
			if cell == "" {
				continue
			}
			transposed := music.Transpose(cell, interval)
			d.Notes = append(d.Notes, Note{
				Row:         r,
				Column:      c,
				Name:        music.ChooseEnharmonic(transposed, root),
				Highlighted: tonic != "" && music.SameClass(transposed, tonic),
			})
		}
	}

	d.Label = startingFret(cells, interval)
	d.OpenPosition = d.Label == nil
	return d, nil
}

// startingFret finds the first row whose first cell holds a note and maps it
// to its low-E fret in the transposed key, folded to at most 12.
func startingFret(cells [][]string, interval int) *FretLabel {
	for r, row := range cells {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		fret := music.SixthStringFret(row[0]) + interval
		for fret > 12 {
			fret -= 12
		}
		return &FretLabel{Row: r, Fret: fret}
	}
	return nil
}
