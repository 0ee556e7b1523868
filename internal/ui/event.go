package ui

import (
	"fmt"
	"strings"

	"github.com/starford/fretwork/internal/apperr"
	"github.com/starford/fretwork/internal/music"
	"github.com/starford/fretwork/internal/progression"
	"github.com/starford/fretwork/internal/scale"
)

// Event is a user action on a page.
type Event interface {
	event()
	// Name is the wire name of the event.
	Name() string
}

// KeySelected picks the key of the chord page.
type KeySelected struct{ Key string }

// RootSelected picks the root of the scale page.
type RootSelected struct{ Root string }

// ScaleTypeToggled switches between diatonic and pentatonic patterns.
type ScaleTypeToggled struct{}

// LabelsToggled shows or hides scale note names.
type LabelsToggled struct{}

// MajorHighlightToggled presses the major tonic button.
type MajorHighlightToggled struct{}

// MinorHighlightToggled presses the minor tonic button.
type MinorHighlightToggled struct{}

// ProgressionSelected highlights the chords of an example progression.
type ProgressionSelected struct{ Label string }

func (KeySelected) event()           {}
func (RootSelected) event()          {}
func (ScaleTypeToggled) event()      {}
func (LabelsToggled) event()         {}
func (MajorHighlightToggled) event() {}
func (MinorHighlightToggled) event() {}
func (ProgressionSelected) event()   {}

func (KeySelected) Name() string           { return "key_selected" }
func (RootSelected) Name() string          { return "root_selected" }
func (ScaleTypeToggled) Name() string      { return "scale_type_toggled" }
func (LabelsToggled) Name() string         { return "labels_toggled" }
func (MajorHighlightToggled) Name() string { return "major_highlight_toggled" }
func (MinorHighlightToggled) Name() string { return "minor_highlight_toggled" }
func (ProgressionSelected) Name() string   { return "progression_selected" }

// EventNames lists the accepted wire names.
var EventNames = []string{
	KeySelected{}.Name(),
	RootSelected{}.Name(),
	ScaleTypeToggled{}.Name(),
	LabelsToggled{}.Name(),
	MajorHighlightToggled{}.Name(),
	MinorHighlightToggled{}.Name(),
	ProgressionSelected{}.Name(),
}

// DecodeEvent builds an event from its wire form. value is ignored by the
// toggles.
func DecodeEvent(name, value string) (Event, error) {
	switch name {
	case KeySelected{}.Name():
		return KeySelected{Key: value}, nil
	case RootSelected{}.Name():
		return RootSelected{Root: value}, nil
	case ScaleTypeToggled{}.Name():
		return ScaleTypeToggled{}, nil
	case LabelsToggled{}.Name():
		return LabelsToggled{}, nil
	case MajorHighlightToggled{}.Name():
		return MajorHighlightToggled{}, nil
	case MinorHighlightToggled{}.Name():
		return MinorHighlightToggled{}, nil
	case ProgressionSelected{}.Name():
		return ProgressionSelected{Label: value}, nil
	}
	return nil, fmt.Errorf("%w: unknown event %q (want one of %s)",
		apperr.ErrInvalidInput, name, strings.Join(EventNames, ", "))
}

// Apply returns the state after e. s is not modified; on error the returned
// state equals s.
func Apply(s State, e Event) (State, error) {
	switch e := e.(type) {
	case KeySelected:
		if _, ok := progression.Progressions[e.Key]; !ok {
			return s, fmt.Errorf("%w: unknown key %q", apperr.ErrNotFound, e.Key)
		}
		s.SelectedKey = e.Key
		s.Progression = ""
	case RootSelected:
		if _, err := music.ParseRoot(e.Root); err != nil {
			return s, err
		}
		s.Root = e.Root
	case ScaleTypeToggled:
		s.ScaleType = s.ScaleType.Toggle()
	case LabelsToggled:
		s.LabelsVisible = !s.LabelsVisible
	case MajorHighlightToggled:
		s.Highlight = press(s.Highlight, scale.HighlightMajor)
	case MinorHighlightToggled:
		s.Highlight = press(s.Highlight, scale.HighlightMinor)
	case ProgressionSelected:
		label := strings.TrimSpace(e.Label)
		if label == "" {
			return s, fmt.Errorf("%w: empty progression", apperr.ErrInvalidInput)
		}
		s.Progression = label
	default:
		return s, fmt.Errorf("%w: unhandled event %T", apperr.ErrInvalidInput, e)
	}
	return s, nil
}

// press toggles a highlight button: the active button clears, the other
// one switches over.
func press(current, button scale.HighlightMode) scale.HighlightMode {
	if current == button {
		return scale.HighlightNone
	}
	return button
}

// Replay folds events over s, stopping at the first failure with its index.
func Replay(s State, events ...Event) (State, error) {
	for i, e := range events {
		next, err := Apply(s, e)
		if err != nil {
			return s, fmt.Errorf("event %d: %w", i, err)
		}
		s = next
	}
	return s, nil
}
