// Package render turns chord and scale diagram geometry into markup.
package render

import (
	"fmt"

	"github.com/starford/fretwork/internal/chord"
	"github.com/starford/fretwork/internal/scale"
)

// ScaleOptions tune scale rendering.
type ScaleOptions struct {
	ShowNoteLabels bool
}

// Renderer serialises diagram geometry.
type Renderer interface {
	Chord(title string, d chord.Diagram) ([]byte, error)
	Scale(title string, d scale.Diagram, opts ScaleOptions) ([]byte, error)
	ContentType() string
}

func checkChord(d chord.Diagram) error {
	if len(d.Markers) != chord.Strings {
		return fmt.Errorf("render: chord %q has %d markers, want %d", d.Shape, len(d.Markers), chord.Strings)
	}
	return nil
}

func checkScale(d scale.Diagram) error {
	for _, n := range d.Notes {
		if n.Row < 0 || n.Row >= d.Rows || n.Column < 0 || n.Column >= d.Columns {
			return fmt.Errorf("render: scale %q note %s at (%d,%d) outside %dx%d grid",
				d.Name, n.Name, n.Row, n.Column, d.Rows, d.Columns)
		}
	}
	return nil
}
