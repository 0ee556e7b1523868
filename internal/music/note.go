// Package music maps note names to semitones and handles transposition and
// enharmonic spelling for diagram labels.
package music

import (
	"fmt"
	"log/slog"

	"github.com/starford/fretwork/internal/apperr"
)

// ErrUnknownNote is returned when a note name is not one of the twelve
// canonical (sharp) names.
var ErrUnknownNote = fmt.Errorf("%w: unknown note", apperr.ErrInvalidInput)

// Notes lists the canonical pitch-class names in semitone order (C = 0).
var Notes = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var noteToSemitone = map[string]int{
	"C": 0, "C#": 1, "D": 2, "D#": 3, "E": 4, "F": 5,
	"F#": 6, "G": 7, "G#": 8, "A": 9, "A#": 10, "B": 11,
}

// flatOf maps sharp names to their flat spelling.
var flatOf = map[string]string{
	"C#": "Db",
	"D#": "Eb",
	"F#": "Gb",
	"G#": "Ab",
	"A#": "Bb",
}

// sharpOf is the inverse of flatOf.
var sharpOf = map[string]string{
	"Db": "C#",
	"Eb": "D#",
	"Gb": "F#",
	"Ab": "G#",
	"Bb": "A#",
}

// flatKeys are keys that are traditionally spelled with flats.
var flatKeys = map[string]struct{}{
	"F": {}, "Bb": {}, "Eb": {}, "Ab": {}, "Db": {}, "Gb": {}, "Cb": {},
}

// Open low-E string fret for each pitch class.
var sixthStringFret = map[string]int{
	"E": 0, "F": 1, "F#": 2, "G": 3, "G#": 4, "A": 5,
	"A#": 6, "B": 7, "C": 8, "C#": 9, "D": 10, "D#": 11,
}

// Semitone returns the semitone value (0-11) of a canonical note name.
func Semitone(note string) (int, bool) {
	s, ok := noteToSemitone[note]
	return s, ok
}

// Transpose shifts note by semitones, wrapping into the twelve canonical
// names. An unrecognised note is returned unchanged.
func Transpose(note string, semitones int) string {
	s, ok := noteToSemitone[note]
	if !ok {
		slog.Warn("music: transpose unknown note",
			slog.String("note", note),
			slog.Int("semitones", semitones))
		return note
	}
	return Notes[mod12(s+semitones)]
}

// Interval returns the upward semitone distance from root to target, in [0,11].
func Interval(root, target string) (int, error) {
	r, ok := noteToSemitone[root]
	if !ok {
		return 0, fmt.Errorf("music: interval root %q: %w", root, ErrUnknownNote)
	}
	t, ok := noteToSemitone[target]
	if !ok {
		return 0, fmt.Errorf("music: interval target %q: %w", target, ErrUnknownNote)
	}
	return (t - r + 12) % 12, nil
}

// SameClass reports whether a and b name the same pitch class. Flat and sharp
// spellings of the same class compare equal.
func SameClass(a, b string) bool {
	sa, ok := noteToSemitone[canonical(a)]
	if !ok {
		return false
	}
	sb, ok := noteToSemitone[canonical(b)]
	return ok && sa == sb
}

// ChooseEnharmonic spells note for display in key. Sharp classes with a flat
// alternative use the flat name when key prefers flats.
func ChooseEnharmonic(note, key string) string {
	sharp := canonical(note)
	flat, ok := flatOf[sharp]
	if !ok {
		return note
	}
	if IsFlatKey(key) {
		return flat
	}
	return sharp
}

// IsFlatKey reports whether key belongs to the flat-key set.
func IsFlatKey(key string) bool {
	_, ok := flatKeys[key]
	return ok
}

// ParseRoot normalises a root name to its canonical sharp spelling. Flat
// spellings such as "Bb" are accepted.
func ParseRoot(name string) (string, error) {
	if _, ok := noteToSemitone[name]; ok {
		return name, nil
	}
	if sharp, ok := sharpOf[name]; ok {
		return sharp, nil
	}
	return "", fmt.Errorf("music: root %q: %w", name, ErrUnknownNote)
}

// SixthStringFret returns the fret of note on the open low-E string, or 0
// for unknown notes.
func SixthStringFret(note string) int {
	return sixthStringFret[canonical(note)]
}

func canonical(note string) string {
	if sharp, ok := sharpOf[note]; ok {
		return sharp
	}
	return note
}

func mod12(n int) int {
	n %= 12
	if n < 0 {
		n += 12
	}
	return n
}
