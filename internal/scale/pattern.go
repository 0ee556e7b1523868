// Package scale holds the scale pattern tables and computes scale diagram
// geometry for a chosen root.
package scale

import (
	"fmt"

	"github.com/starford/fretwork/internal/apperr"
)

// Rows is the number of rows in every pattern.
const Rows = 6

// Placeholder marks a cell without a note.
const Placeholder = '_'

// ErrInvalidPattern is returned for malformed pattern rows.
var ErrInvalidPattern = fmt.Errorf("%w: invalid scale pattern", apperr.ErrInvalidInput)

// Pattern is a scale shape authored in the key of C. Each row is a sequence
// of cells aligned by column; a cell is either the placeholder or a note
// letter optionally followed by '#'.
type Pattern struct {
	Name string   `json:"name" yaml:"name"`
	Rows []string `json:"pattern" yaml:"pattern"`
}

// Cells splits every row into cells. Placeholder cells are empty strings.
func (p Pattern) Cells() ([][]string, error) {
	if len(p.Rows) != Rows {
		return nil, fmt.Errorf("%w: %q has %d rows, want %d", ErrInvalidPattern, p.Name, len(p.Rows), Rows)
	}
	out := make([][]string, len(p.Rows))
	width := -1
	for i, row := range p.Rows {
		cells, err := splitRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %q row %d: %v", ErrInvalidPattern, p.Name, i, err)
		}
		if width < 0 {
			width = len(cells)
		} else if len(cells) != width {
			return nil, fmt.Errorf("%w: %q row %d has %d cells, want %d", ErrInvalidPattern, p.Name, i, len(cells), width)
		}
		out[i] = cells
	}
	if width == 0 {
		return nil, fmt.Errorf("%w: %q has empty rows", ErrInvalidPattern, p.Name)
	}
	return out, nil
}

// Validate reports whether the pattern is well formed.
func (p Pattern) Validate() error {
	_, err := p.Cells()
	return err
}

func splitRow(row string) ([]string, error) {
	var cells []string
	for i := 0; i < len(row); i++ {
		c := row[i]
		switch {
		case c == Placeholder:
			cells = append(cells, "")
		case c >= 'A' && c <= 'G':
			if i+1 < len(row) && row[i+1] == '#' {
				cells = append(cells, row[i:i+2])
				i++
				continue
			}
			cells = append(cells, string(c))
		default:
			return nil, fmt.Errorf("unexpected symbol %q at offset %d", c, i)
		}
	}
	return cells, nil
}
