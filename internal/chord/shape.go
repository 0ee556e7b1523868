// Package chord validates chord shapes and computes chord diagram geometry.
package chord

import (
	"fmt"

	"github.com/starford/fretwork/internal/apperr"
)

// Strings is the number of guitar strings in a shape.
const Strings = 6

// ErrInvalidShapeFormat is returned for shapes of the wrong length or with
// symbols outside {x, 0-9}.
var ErrInvalidShapeFormat = fmt.Errorf("%w: invalid shape format", apperr.ErrInvalidInput)

// Shape is a validated fret-position string, one symbol per string from low
// to high: 'x' muted, '0' open, '1'-'9' fretted.
type Shape string

// ParseShape validates s and returns it as a Shape.
func ParseShape(s string) (Shape, error) {
	if len(s) != Strings {
		return "", fmt.Errorf("%w: %q has %d symbols, want %d", ErrInvalidShapeFormat, s, len(s), Strings)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != 'x' && (c < '0' || c > '9') {
			return "", fmt.Errorf("%w: %q has invalid symbol %q at string %d", ErrInvalidShapeFormat, s, c, i)
		}
	}
	return Shape(s), nil
}

// MustParseShape is like ParseShape but panics on error. Intended for static tables.
func MustParseShape(s string) Shape {
	sh, err := ParseShape(s)
	if err != nil {
		panic(err)
	}
	return sh
}

// Frets returns the numeric fret per string; muted and open strings are 0.
func (s Shape) Frets() []int {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != 'x' {
			out[i] = int(s[i] - '0')
		}
	}
	return out
}

// MinFret returns the lowest fretted position, or 1 if nothing is fretted.
func (s Shape) MinFret() int {
	lowest := 0
	for _, f := range s.Frets() {
		if f > 0 && (lowest == 0 || f < lowest) {
			lowest = f
		}
	}
	if lowest == 0 {
		return 1
	}
	return lowest
}

func (s Shape) String() string { return string(s) }
