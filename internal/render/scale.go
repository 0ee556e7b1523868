package render

import (
	"html"
	"strconv"

	"github.com/starford/fretwork/internal/scale"
)

// Scale diagram constants.
const (
	scaleGap        = 20.0
	scaleDotRadius  = 7.0
	scaleTopPadding = 20.0
	scaleSidePad    = 20.0
	scaleLeftOffset = 18.0
	scaleFill       = "#4CAF50"
	scaleTonicFill  = "#FF5722"
	scaleGridStroke = "#666"
)

// Scale renders a scale diagram. Columns are drawn as vertical lines and
// rows as the spaces between horizontal lines.
func (*SVG) Scale(title string, d scale.Diagram, opts ScaleOptions) ([]byte, error) {
	if err := checkScale(d); err != nil {
		return nil, err
	}
	cols := max(d.Columns, 1)
	left := scaleLeftOffset + scaleSidePad
	right := left + float64(cols-1)*scaleGap
	bottom := scaleTopPadding + float64(d.Rows)*scaleGap
	width := right + scaleSidePad

	c := newCanvas(width, bottom+2, "scale-svg")
	if title != "" {
		c.buf.WriteString("<title>" + html.EscapeString(title) + "</title>")
	}

	for i := 0; i < cols; i++ {
		x := left + float64(i)*scaleGap
		c.line(x, scaleTopPadding, x, bottom, scaleGridStroke, 1)
	}
	for i := 0; i <= d.Rows; i++ {
		if i == 0 && d.OpenPosition {
			continue
		}
		y := scaleTopPadding + float64(i)*scaleGap
		c.line(left, y, right, y, scaleGridStroke, 1)
	}

	for _, n := range d.Notes {
		x := left + float64(n.Column)*scaleGap
		y := scaleRowY(n.Row)
		fill := scaleFill
		if n.Highlighted {
			fill = scaleTonicFill
		}
		c.circle(x, y, scaleDotRadius, fill)
		c.text(x, y+3, n.Name, textAttrs{
			class:  "scale-note-label",
			anchor: "middle",
			size:   9,
			fill:   "white",
			bold:   true,
			hidden: !opts.ShowNoteLabels,
		})
	}

	if d.Label != nil {
		c.text(left-12, scaleRowY(d.Label.Row)+3, strconv.Itoa(d.Label.Fret), textAttrs{
			class:  "fret-label",
			anchor: "end",
			size:   12,
			fill:   "#333",
			bold:   true,
		})
	}

	return c.bytes(), nil
}

func scaleRowY(row int) float64 {
	return scaleTopPadding + (float64(row)+0.5)*scaleGap
}
