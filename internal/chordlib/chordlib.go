// Package chordlib parses chord library files: YAML documents that add
// named chord shapes to the catalogue.
package chordlib

import (
	"fmt"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/fretwork/internal/apperr"
	"github.com/starford/fretwork/internal/chord"
	"github.com/starford/fretwork/internal/progression"
)

// Entry is one chord as written in a library file.
type Entry struct {
	Name  string `yaml:"name"`
	Shape string `yaml:"shape"`
	Type  string `yaml:"type"`
}

// Validate checks the entry fields.
func (e Entry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required, validation.Length(1, 64)),
		validation.Field(&e.Shape, validation.Required, validation.By(validShape)),
		validation.Field(&e.Type, validation.Required, validation.By(validType)),
	)
}

func validShape(v any) error {
	s, _ := v.(string)
	_, err := chord.ParseShape(s)
	return err
}

func validType(v any) error {
	s, _ := v.(string)
	_, err := progression.ParseChordType(s)
	return err
}

type document struct {
	Title  string   `yaml:"title"`
	Tags   []string `yaml:"tags"`
	Chords []Entry  `yaml:"chords"`
}

// Result holds the output of parsing a library file.
type Result struct {
	Title  string
	Tags   []string
	Chords []progression.Chord
	// Invalid describes entries that were skipped.
	Invalid []string
}

// Parse decodes a library file. name is used as the title when the file
// has none. Invalid entries are skipped and reported in Result.Invalid;
// later duplicates of a chord name are dropped.
func Parse(name string, data []byte) (*Result, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: chordlib: %s: %v", apperr.ErrInvalidInput, name, err)
	}

	res := &Result{
		Title: deriveTitle(doc.Title, name),
		Tags:  dedupe(doc.Tags),
	}
	seen := make(map[string]struct{}, len(doc.Chords))
	for i, e := range doc.Chords {
		e.Name = strings.TrimSpace(e.Name)
		e.Shape = strings.ToLower(strings.TrimSpace(e.Shape))
		if err := e.Validate(); err != nil {
			res.Invalid = append(res.Invalid, fmt.Sprintf("chords[%d]: %v", i, err))
			continue
		}
		if _, dup := seen[e.Name]; dup {
			res.Invalid = append(res.Invalid, fmt.Sprintf("chords[%d]: duplicate name %q", i, e.Name))
			continue
		}
		seen[e.Name] = struct{}{}
		typ, _ := progression.ParseChordType(e.Type)
		res.Chords = append(res.Chords, progression.Chord{
			Name:  e.Name,
			Shape: chord.Shape(e.Shape),
			Type:  typ,
		})
	}
	return res, nil
}

// Encode writes chords in library file form.
func Encode(title string, chords []progression.Chord) ([]byte, error) {
	doc := document{Title: title, Chords: make([]Entry, 0, len(chords))}
	for _, c := range chords {
		doc.Chords = append(doc.Chords, Entry{Name: c.Name, Shape: string(c.Shape), Type: c.Type.String()})
	}
	return yaml.Marshal(doc)
}

// deriveTitle returns title if set, otherwise the file name without its
// extension.
func deriveTitle(title, name string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
