package chord

import (
	"fmt"

	"github.com/starford/fretwork/internal/apperr"
)

// WindowFrets is the number of frets shown in a chord diagram.
const WindowFrets = 5

// MarkerKind classifies what is drawn for a string.
type MarkerKind int

const (
	Muted MarkerKind = iota
	Open
	Fretted
)

func (k MarkerKind) String() string {
	switch k {
	case Muted:
		return "muted"
	case Open:
		return "open"
	case Fretted:
		return "fretted"
	default:
		return "unknown"
	}
}

// MarshalText lets markers serialise their kind by name.
func (k MarkerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind written by MarshalText.
func (k *MarkerKind) UnmarshalText(b []byte) error {
	for _, c := range []MarkerKind{Muted, Open, Fretted} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("%w: unknown marker kind %q", apperr.ErrInvalidInput, b)
}

// Marker is the symbol drawn for one string. Row is 1-based within the
// window and only meaningful for fretted strings.
type Marker struct {
	String int        `json:"string"`
	Kind   MarkerKind `json:"kind"`
	Fret   int        `json:"fret,omitempty"`
	Row    int        `json:"row,omitempty"`
	// OutOfWindow is set when Row falls below the last window row, which
	// happens for shapes spanning more than WindowFrets frets.
	OutOfWindow bool `json:"out_of_window,omitempty"`
}

// Diagram is the geometric description of a chord diagram over a 6-string by
// 5-fret window.
type Diagram struct {
	Shape     Shape `json:"shape"`
	StartFret int   `json:"start_fret"`
	// TopLine is false when the window does not start at the nut.
	TopLine bool `json:"top_line"`
	// HeavyNut draws the top line with the thicker nut stroke.
	HeavyNut      bool     `json:"heavy_nut"`
	ShowFretLabel bool     `json:"show_fret_label"`
	Markers       []Marker `json:"markers"`
	Barre         *Barre   `json:"barre,omitempty"`
	BarreRow      int      `json:"barre_row,omitempty"`
}

// Layout computes the diagram geometry for s.
func Layout(s Shape) Diagram {
	start := 1
	if mf := s.MinFret(); mf >= WindowFrets {
		start = mf
	}

	d := Diagram{
		Shape:         s,
		StartFret:     start,
		TopLine:       start < 2,
		HeavyNut:      start < 3,
		ShowFretLabel: start != 1,
		Markers:       make([]Marker, 0, len(s)),
	}

	frets := s.Frets()
	for i := 0; i < len(s); i++ {
		m := Marker{String: i}
		switch s[i] {
		case 'x':
			m.Kind = Muted
		case '0':
			m.Kind = Open
		default:
			m.Kind = Fretted
			m.Fret = frets[i]
			m.Row = rowFor(frets[i], start)
			m.OutOfWindow = m.Row > WindowFrets
		}
		d.Markers = append(d.Markers, m)
	}

	if b := DetectBarre(s); b != nil {
		d.Barre = b
		d.BarreRow = rowFor(b.Fret, start)
	}
	return d
}

// rowFor places fret f in the 1-based window row starting at start.
func rowFor(f, start int) int {
	return f - start + 1
}
