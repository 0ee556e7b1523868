// Package ui holds the explicit view state of the chord and scale pages and
// the pure transitions driven by user events.
package ui

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/fretwork/internal/apperr"
	"github.com/starford/fretwork/internal/music"
	"github.com/starford/fretwork/internal/progression"
	"github.com/starford/fretwork/internal/scale"
)

// State is everything the pages need to render.
type State struct {
	SelectedKey   string              `json:"selected_key"`
	ScaleType     scale.Type          `json:"scale_type"`
	Root          string              `json:"root"`
	Highlight     scale.HighlightMode `json:"highlight"`
	LabelsVisible bool                `json:"labels_visible"`
	// Progression is the example label (e.g. "I-V-vi-IV") whose chords are
	// highlighted on the chord page. Empty means none.
	Progression string `json:"progression,omitempty"`
}

// DefaultState is the state of a fresh page load.
func DefaultState() State {
	return State{
		SelectedKey:   "C",
		ScaleType:     scale.Diatonic,
		Root:          "C",
		Highlight:     scale.HighlightNone,
		LabelsVisible: true,
	}
}

// Validate checks that every field names something known.
func (s State) Validate() error {
	err := validation.ValidateStruct(&s,
		validation.Field(&s.SelectedKey, validation.Required, validation.By(knownKey)),
		validation.Field(&s.ScaleType, validation.Required, validation.In(scale.Diatonic, scale.Pentatonic)),
		validation.Field(&s.Root, validation.Required, validation.By(knownRoot)),
		validation.Field(&s.Highlight, validation.In(scale.HighlightNone, scale.HighlightMajor, scale.HighlightMinor)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}
	return nil
}

// ProgressionFunctions splits the selected progression label.
func (s State) ProgressionFunctions() []string {
	if s.Progression == "" {
		return nil
	}
	return strings.Split(s.Progression, "-")
}

func knownKey(v any) error {
	key, _ := v.(string)
	if _, ok := progression.Progressions[key]; !ok {
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func knownRoot(v any) error {
	root, _ := v.(string)
	_, err := music.ParseRoot(root)
	return err
}
