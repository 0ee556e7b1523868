// Package progression provides static chord progression tables per key and
// the lookups built on them.
package progression

import (
	"fmt"
	"strings"

	"github.com/starford/fretwork/internal/apperr"
	"github.com/starford/fretwork/internal/chord"
)

// ChordType is the quality of a chord.
type ChordType int

const (
	Major ChordType = iota + 1
	Minor
	Seventh
	Diminished
)

// ParseChordType resolves the textual chord type used in tables and files.
func ParseChordType(s string) (ChordType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "7th", "seventh":
		return Seventh, nil
	case "diminished", "dim":
		return Diminished, nil
	}
	return 0, fmt.Errorf("%w: unknown chord type %q", apperr.ErrInvalidInput, s)
}

func (t ChordType) String() string {
	switch t {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Seventh:
		return "7th"
	case Diminished:
		return "diminished"
	default:
		return "unknown"
	}
}

// Class is the style class attached to a rendered chord card.
func (t ChordType) Class() string {
	switch t {
	case Major, Minor, Diminished:
		return t.String()
	case Seventh:
		return "seventh"
	default:
		return ""
	}
}

// BadgeColor is the fill of the function label badge.
func (t ChordType) BadgeColor() string {
	switch t {
	case Minor:
		return "#2196F3"
	case Seventh:
		return "#9C27B0"
	case Major, Diminished:
		return "#4CAF50"
	default:
		return "#4CAF50"
	}
}

// MarshalText encodes the type by name.
func (t ChordType) MarshalText() ([]byte, error) {
	if t < Major || t > Diminished {
		return nil, fmt.Errorf("progression: invalid chord type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name.
func (t *ChordType) UnmarshalText(b []byte) error {
	v, err := ParseChordType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Chord is a named chord shape.
type Chord struct {
	Name  string      `json:"name"`
	Shape chord.Shape `json:"shape"`
	Type  ChordType   `json:"type"`
}

var keyOrder = []string{"C", "D", "E", "F", "G", "A", "B", "Am", "Em", "Dm", "Gm", "Cm", "Fm", "Bm"}

// functionOrder fixes iteration order over a key's labels.
var functionOrder = []string{"I", "IV", "V", "V7", "ii", "iii", "vi", "III", "VI"}

// Keys returns the supported keys, major keys first.
func Keys() []string {
	return append([]string(nil), keyOrder...)
}

// IsMinorKey reports whether key names a minor key.
func IsMinorKey(key string) bool {
	return strings.HasSuffix(key, "m")
}

// BaseKey strips the minor marker from key.
func BaseKey(key string) string {
	if IsMinorKey(key) {
		return strings.TrimSuffix(key, "m")
	}
	return key
}

// Lookup returns the chord filling function in key. Labels match exactly.
// Minor keys also match case-insensitively, since their labels are shown
// lowercased; in major keys case separates functions (VI is not vi).
func Lookup(key, function string) (Chord, bool) {
	prog, ok := Progressions[key]
	if !ok {
		return Chord{}, false
	}
	if c, ok := prog[function]; ok {
		return c, true
	}
	if !IsMinorKey(key) {
		return Chord{}, false
	}
	for _, fn := range functionOrder {
		if c, ok := prog[fn]; ok && strings.EqualFold(fn, function) {
			return c, true
		}
	}
	return Chord{}, false
}

// DisplayLabel is the label shown for function in key.
func DisplayLabel(key, function string) string {
	if IsMinorKey(key) {
		return strings.ToLower(function)
	}
	return function
}

// FunctionLabel returns the display label of chordName within key, or "" if
// the chord is not part of the key.
func FunctionLabel(key, chordName string) string {
	prog, ok := Progressions[key]
	if !ok {
		return ""
	}
	for _, fn := range functionOrder {
		if c, ok := prog[fn]; ok && c.Name == chordName {
			return DisplayLabel(key, fn)
		}
	}
	return ""
}

// Slot is one chord within a group.
type Slot struct {
	Function string `json:"function"`
	Label    string `json:"label"`
	Chord    Chord  `json:"chord"`
}

// Group is a titled set of chords shown together.
type Group struct {
	Title string `json:"title"`
	Class string `json:"class"`
	Slots []Slot `json:"slots"`
}

// Groups splits a key's chords into the primary progression and common
// secondary chords. Missing functions are skipped.
func Groups(key string) ([]Group, bool) {
	if _, ok := Progressions[key]; !ok {
		return nil, false
	}
	primaryTitle := "Primary Progression (I-IV-V)"
	secondary := []string{"ii", "iii", "vi"}
	if IsMinorKey(key) {
		primaryTitle = "Primary Progression (i-iv-V)"
		secondary = []string{"III", "VI", "ii"}
	}
	return []Group{
		{Title: primaryTitle, Class: "primary-group", Slots: slots(key, []string{"I", "IV", "V", "V7"})},
		{Title: "Common Secondary Chords", Class: "secondary-group", Slots: slots(key, secondary)},
	}, true
}

func slots(key string, functions []string) []Slot {
	out := make([]Slot, 0, len(functions))
	for _, fn := range functions {
		c, ok := Progressions[key][fn]
		if !ok {
			continue
		}
		out = append(out, Slot{Function: fn, Label: DisplayLabel(key, fn), Chord: c})
	}
	return out
}

// Example is a well-known progression offered for highlighting.
type Example struct {
	Label     string   `json:"label"`
	Name      string   `json:"name"`
	Functions []string `json:"functions"`
}

// Examples returns the common progressions for the key's mode.
func Examples(key string) []Example {
	if IsMinorKey(key) {
		return []Example{
			newExample("i-iv-V", "Minor Blues"),
			newExample("i-VI-III-VII", "Minor Pop"),
			newExample("iiø-V-i", "Minor Jazz"),
		}
	}
	return []Example{
		newExample("I-IV-V", "Classic Blues"),
		newExample("I-V-vi-IV", "Pop Progression"),
		newExample("ii-V-I", "Jazz Turnaround"),
	}
}

func newExample(label, name string) Example {
	return Example{Label: label, Name: name, Functions: strings.Split(label, "-")}
}

// Highlight returns the names of the chords of key that take part in the
// progression given by functions. Half-diminished and diminished marks on
// labels are ignored.
func Highlight(key string, functions []string) map[string]bool {
	out := make(map[string]bool, len(functions))
	for _, fn := range functions {
		fn = strings.NewReplacer("ø", "", "°", "").Replace(strings.TrimSpace(fn))
		if c, ok := Lookup(key, fn); ok {
			out[c.Name] = true
		}
	}
	return out
}
