package ui

import (
	"fmt"
	"strings"

	"github.com/starford/fretwork/internal/apperr"
	"github.com/starford/fretwork/internal/chord"
	"github.com/starford/fretwork/internal/progression"
	"github.com/starford/fretwork/internal/render"
	"github.com/starford/fretwork/internal/scale"
)

// ChordCard is one rendered chord on the chord page.
type ChordCard struct {
	Name        string                `json:"name"`
	Function    string                `json:"function"`
	Type        progression.ChordType `json:"type"`
	Class       string                `json:"class"`
	Badge       string                `json:"badge"`
	Shape       chord.Shape           `json:"shape"`
	Barre       *chord.Barre          `json:"barre,omitempty"`
	Markup      string                `json:"markup"`
	Highlighted bool                  `json:"highlighted"`
	Dimmed      bool                  `json:"dimmed"`
}

// ChordGroup is a titled row of chord cards.
type ChordGroup struct {
	Title string      `json:"title"`
	Class string      `json:"class"`
	Cards []ChordCard `json:"cards"`
}

// ChordView is the chord page for the selected key.
type ChordView struct {
	Key           string                `json:"key"`
	Groups        []ChordGroup          `json:"groups"`
	ExamplesTitle string                `json:"examples_title"`
	Examples      []progression.Example `json:"examples"`
	Progression   string                `json:"progression,omitempty"`
}

// ChordPage renders the chord groups and progression examples of s.
func ChordPage(s State, r render.Renderer) (ChordView, error) {
	groups, ok := progression.Groups(s.SelectedKey)
	if !ok {
		return ChordView{}, fmt.Errorf("%w: unknown key %q", apperr.ErrNotFound, s.SelectedKey)
	}
	var highlighted map[string]bool
	if fns := s.ProgressionFunctions(); len(fns) > 0 {
		highlighted = progression.Highlight(s.SelectedKey, fns)
	}

	view := ChordView{
		Key:           s.SelectedKey,
		ExamplesTitle: "Common Progressions in " + s.SelectedKey,
		Examples:      progression.Examples(s.SelectedKey),
		Progression:   s.Progression,
	}
	for _, g := range groups {
		out := ChordGroup{Title: g.Title, Class: "chord-group " + g.Class}
		for _, slot := range g.Slots {
			card, err := chordCard(s.SelectedKey, slot.Chord, r, highlighted)
			if err != nil {
				return ChordView{}, err
			}
			out.Cards = append(out.Cards, card)
		}
		view.Groups = append(view.Groups, out)
	}
	return view, nil
}

func chordCard(key string, c progression.Chord, r render.Renderer, highlighted map[string]bool) (ChordCard, error) {
	d := chord.Layout(c.Shape)
	markup, err := r.Chord(c.Name, d)
	if err != nil {
		return ChordCard{}, fmt.Errorf("ui: chord %s: %w", c.Name, err)
	}
	card := ChordCard{
		Name:     c.Name,
		Function: progression.FunctionLabel(key, c.Name),
		Type:     c.Type,
		Badge:    c.Type.BadgeColor(),
		Shape:    c.Shape,
		Barre:    d.Barre,
		Markup:   string(markup),
	}
	classes := []string{"chord-diagram"}
	if card.Function != "" {
		classes = append(classes, "progression-chord", c.Type.Class())
	}
	if highlighted != nil {
		card.Highlighted = highlighted[c.Name]
		card.Dimmed = !card.Highlighted
	}
	switch {
	case card.Highlighted:
		classes = append(classes, "highlighted")
	case card.Dimmed:
		classes = append(classes, "dimmed")
	}
	card.Class = strings.Join(classes, " ")
	return card, nil
}

// ScaleCard is one rendered pattern on the scale page.
type ScaleCard struct {
	Name    string        `json:"name"`
	Diagram scale.Diagram `json:"diagram"`
	Markup  string        `json:"markup"`
}

// ScaleView is the scale page for the selected root and pattern table.
type ScaleView struct {
	Title         string              `json:"title"`
	Type          scale.Type          `json:"type"`
	Root          string              `json:"root"`
	Highlight     scale.HighlightMode `json:"highlight"`
	LabelsVisible bool                `json:"labels_visible"`
	Cards         []ScaleCard         `json:"cards"`
}

// ScalePage renders every pattern of the selected table in s.Root.
func ScalePage(s State, r render.Renderer) (ScaleView, error) {
	view := ScaleView{
		Title:         s.ScaleType.Title(),
		Type:          s.ScaleType,
		Root:          s.Root,
		Highlight:     s.Highlight,
		LabelsVisible: s.LabelsVisible,
	}
	opts := render.ScaleOptions{ShowNoteLabels: s.LabelsVisible}
	for _, p := range scale.Patterns(s.ScaleType) {
		d, err := scale.Build(p, s.Root, s.Highlight)
		if err != nil {
			return ScaleView{}, err
		}
		markup, err := r.Scale(d.Name, d, opts)
		if err != nil {
			return ScaleView{}, fmt.Errorf("ui: scale %s: %w", d.Name, err)
		}
		view.Cards = append(view.Cards, ScaleCard{Name: d.Name, Diagram: d, Markup: string(markup)})
	}
	return view, nil
}
