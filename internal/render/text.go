package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/fretwork/internal/chord"
	"github.com/starford/fretwork/internal/scale"
)

// Terminal palette, shared with the SVG fills.
var (
	noteColor  = lipgloss.Color(scaleFill)
	tonicColor = lipgloss.Color(scaleTonicFill)
	labelColor = lipgloss.Color("#9E9E9E")
)

// Text renders diagrams as box-drawn text for terminals.
type Text struct {
	title lipgloss.Style
	label lipgloss.Style
	note  lipgloss.Style
	tonic lipgloss.Style
	frame lipgloss.Style
}

// NewText returns a terminal renderer. Colours degrade to plain text when
// the output is not a colour terminal.
func NewText() *Text {
	return &Text{
		title: lipgloss.NewStyle().Bold(true),
		label: lipgloss.NewStyle().Foreground(labelColor),
		note:  lipgloss.NewStyle().Foreground(noteColor),
		tonic: lipgloss.NewStyle().Foreground(tonicColor).Bold(true),
		frame: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// ContentType is the media type of rendered output.
func (*Text) ContentType() string { return "text/plain; charset=utf-8" }

const gutter = 3

// Chord renders a chord diagram, one text line per fret row.
func (r *Text) Chord(title string, d chord.Diagram) ([]byte, error) {
	if err := checkChord(d); err != nil {
		return nil, err
	}
	var lines []string

	head := make([]string, chord.Strings)
	for i, m := range d.Markers {
		switch m.Kind {
		case chord.Muted:
			head[i] = "x"
		case chord.Open:
			head[i] = "o"
		default:
			head[i] = " "
		}
	}
	lines = append(lines, pad("")+strings.Join(head, " "))

	switch {
	case d.HeavyNut:
		lines = append(lines, pad("")+"╒"+strings.Repeat("═╤", chord.Strings-2)+"═╕")
	case d.TopLine:
		lines = append(lines, pad("")+"┌"+strings.Repeat("─┬", chord.Strings-2)+"─┐")
	default:
		lines = append(lines, "")
	}

	for row := 1; row <= chord.WindowFrets; row++ {
		var b strings.Builder
		prefix := ""
		if row == 1 && d.ShowFretLabel {
			prefix = strconv.Itoa(d.StartFret)
		}
		b.WriteString(r.label.Render(pad(prefix)))
		for s := 0; s < chord.Strings; s++ {
			underBarre := d.Barre != nil && d.BarreRow == row && s >= d.Barre.StartString && s <= d.Barre.EndString
			if m := d.Markers[s]; underBarre || (m.Kind == chord.Fretted && m.Row == row) {
				b.WriteString("●")
			} else {
				b.WriteString("│")
			}
			if s == chord.Strings-1 {
				break
			}
			if underBarre && s < d.Barre.EndString {
				b.WriteString("━")
			} else {
				b.WriteString(" ")
			}
		}
		lines = append(lines, b.String())
		if row < chord.WindowFrets {
			lines = append(lines, pad("")+"├"+strings.Repeat("─┼", chord.Strings-2)+"─┤")
		} else {
			lines = append(lines, pad("")+"└"+strings.Repeat("─┴", chord.Strings-2)+"─┘")
		}
	}
	if below := r.belowWindow(d); below != "" {
		lines = append(lines, below)
	}

	return r.wrap(title, lines), nil
}

// belowWindow marks strings fretted past the last window row with an arrow
// and lists their frets. It returns "" when every marker fits.
func (r *Text) belowWindow(d chord.Diagram) string {
	arrows := make([]string, chord.Strings)
	var frets []string
	for i, m := range d.Markers {
		arrows[i] = " "
		if m.Kind == chord.Fretted && m.OutOfWindow {
			arrows[i] = "↓"
			frets = append(frets, strconv.Itoa(m.Fret))
		}
	}
	if len(frets) == 0 {
		return ""
	}
	return pad("") + strings.Join(arrows, " ") + "  " + r.label.Render("fret "+strings.Join(frets, ","))
}

// Scale renders a scale diagram. Hidden labels are drawn as dots.
func (r *Text) Scale(title string, d scale.Diagram, opts ScaleOptions) ([]byte, error) {
	if err := checkScale(d); err != nil {
		return nil, err
	}
	cells := make([][]*scale.Note, d.Rows)
	for i := range cells {
		cells[i] = make([]*scale.Note, d.Columns)
	}
	for i := range d.Notes {
		n := &d.Notes[i]
		cells[n.Row][n.Column] = n
	}

	rule := pad("") + strings.Repeat("───", max(d.Columns, 1))
	var lines []string
	if !d.OpenPosition {
		lines = append(lines, rule)
	}
	for row := 0; row < d.Rows; row++ {
		var b strings.Builder
		prefix := ""
		if d.Label != nil && d.Label.Row == row {
			prefix = strconv.Itoa(d.Label.Fret)
		}
		b.WriteString(r.label.Render(pad(prefix)))
		for col := 0; col < d.Columns; col++ {
			n := cells[row][col]
			if n == nil {
				b.WriteString(" │ ")
				continue
			}
			glyph := "●"
			if opts.ShowNoteLabels {
				glyph = n.Name
			}
			glyph = fmt.Sprintf("%-3s", glyph)
			if n.Highlighted {
				b.WriteString(r.tonic.Render(glyph))
			} else {
				b.WriteString(r.note.Render(glyph))
			}
		}
		lines = append(lines, b.String(), rule)
	}

	return r.wrap(title, lines), nil
}

func (r *Text) wrap(title string, lines []string) []byte {
	body := strings.Join(lines, "\n")
	if title != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, r.title.Render(title), body)
	}
	return []byte(r.frame.Render(body) + "\n")
}

func pad(s string) string {
	return fmt.Sprintf("%*s ", gutter-1, s)
}

var _ Renderer = (*Text)(nil)
