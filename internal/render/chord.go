package render

import (
	"html"
	"strconv"

	"github.com/starford/fretwork/internal/chord"
)

// Chord diagram constants.
const (
	chordStringGap  = 20.0
	chordFretGap    = 20.0
	chordDotRadius  = 5.0
	chordTopPadding = 30.0
	chordSidePad    = 20.0
	chordLabelSpace = 20.0
	nutStroke       = 3.0
)

// SVG renders diagrams as standalone SVG documents.
type SVG struct{}

// NewSVG returns an SVG renderer.
func NewSVG() *SVG { return &SVG{} }

// ContentType is the media type of rendered documents.
func (*SVG) ContentType() string { return "image/svg+xml" }

// Chord renders a chord diagram.
func (*SVG) Chord(title string, d chord.Diagram) ([]byte, error) {
	if err := checkChord(d); err != nil {
		return nil, err
	}
	width := chordSidePad*2 + chordStringGap*(chord.Strings-1)
	gridBottom := chordTopPadding + chordFretGap*chord.WindowFrets

	c := newCanvas(width, gridBottom+chordLabelSpace, "chord-svg")
	if title != "" {
		c.buf.WriteString("<title>" + html.EscapeString(title) + "</title>")
	}

	for i := 0; i < chord.Strings; i++ {
		x := chordSidePad + float64(i)*chordStringGap
		c.line(x, chordTopPadding, x, gridBottom, "black", 1)
	}

	for i := 0; i <= chord.WindowFrets; i++ {
		if i == 0 && !d.TopLine {
			continue
		}
		stroke := 1.0
		if i == 0 && d.HeavyNut {
			stroke = nutStroke
		}
		y := chordTopPadding + float64(i)*chordFretGap
		c.line(chordSidePad, y, width-chordSidePad, y, "black", stroke)
	}

	if d.ShowFretLabel {
		c.text(chordSidePad-20, chordTopPadding+chordFretGap*0.6, strconv.Itoa(d.StartFret), textAttrs{size: 14})
	}

	for _, m := range d.Markers {
		x := stringX(m.String)
		switch m.Kind {
		case chord.Muted:
			c.text(x-chordDotRadius/2-2, chordTopPadding-10, "X", textAttrs{class: "muted", size: 14})
		case chord.Open:
			c.text(x-chordDotRadius/2-2, chordTopPadding-10, "O", textAttrs{class: "open", size: 14})
		case chord.Fretted:
			c.circle(x, rowY(m.Row), chordDotRadius, "black")
		}
	}

	if d.Barre != nil {
		x1, x2 := stringX(d.Barre.StartString), stringX(d.Barre.EndString)
		y := rowY(d.BarreRow)
		c.rect(x1, y-chordDotRadius, x2-x1, chordDotRadius*2, "black")
	}

	return c.bytes(), nil
}

func stringX(s int) float64 {
	return chordSidePad + float64(s)*chordStringGap
}

// rowY centres a 1-based window row between its fret lines.
func rowY(row int) float64 {
	return chordTopPadding + float64(row)*chordFretGap - chordFretGap/2
}

var _ Renderer = (*SVG)(nil)
