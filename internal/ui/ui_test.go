package ui

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/fretwork/internal/apperr"
	"github.com/starford/fretwork/internal/render"
	"github.com/starford/fretwork/internal/scale"
)

func TestDefaultStateIsValid(t *testing.T) {
	s := DefaultState()
	require.NoError(t, s.Validate())
	assert.Equal(t, "C", s.SelectedKey)
	assert.Equal(t, scale.Diatonic, s.ScaleType)
	assert.Equal(t, scale.HighlightNone, s.Highlight)
	assert.True(t, s.LabelsVisible)
}

func TestValidateRejectsUnknownFields(t *testing.T) {
	s := DefaultState()
	s.SelectedKey = "H"
	assert.True(t, errors.Is(s.Validate(), apperr.ErrInvalidInput))

	s = DefaultState()
	s.Root = "Cb"
	assert.Error(t, s.Validate())

	s = DefaultState()
	s.ScaleType = "chromatic"
	assert.Error(t, s.Validate())
}

func TestHighlightButtons(t *testing.T) {
	s := DefaultState()

	s, err := Apply(s, MajorHighlightToggled{})
	require.NoError(t, err)
	assert.Equal(t, scale.HighlightMajor, s.Highlight)

	s, err = Apply(s, MinorHighlightToggled{})
	require.NoError(t, err)
	assert.Equal(t, scale.HighlightMinor, s.Highlight, "pressing the other button switches")

	s, err = Apply(s, MinorHighlightToggled{})
	require.NoError(t, err)
	assert.Equal(t, scale.HighlightNone, s.Highlight, "pressing the active button clears")
}

func TestApplyIsPure(t *testing.T) {
	before := DefaultState()
	after, err := Apply(before, ScaleTypeToggled{})
	require.NoError(t, err)
	assert.Equal(t, scale.Diatonic, before.ScaleType)
	assert.Equal(t, scale.Pentatonic, after.ScaleType)

	after, err = Apply(after, ScaleTypeToggled{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestApplyRejectsBadValues(t *testing.T) {
	s := DefaultState()

	got, err := Apply(s, KeySelected{Key: "H"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Equal(t, s, got)

	_, err = Apply(s, RootSelected{Root: "Q"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = Apply(s, ProgressionSelected{Label: "  "})
	assert.Error(t, err)
}

func TestKeySelectionClearsProgression(t *testing.T) {
	s, err := Replay(DefaultState(),
		ProgressionSelected{Label: "ii-V-I"},
		KeySelected{Key: "Am"},
		RootSelected{Root: "Bb"},
		LabelsToggled{},
	)
	require.NoError(t, err)
	assert.Equal(t, "Am", s.SelectedKey)
	assert.Empty(t, s.Progression)
	assert.Equal(t, "Bb", s.Root)
	assert.False(t, s.LabelsVisible)
}

func TestReplayStopsAtFailure(t *testing.T) {
	s, err := Replay(DefaultState(), LabelsToggled{}, KeySelected{Key: "nope"}, LabelsToggled{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event 1")
	assert.False(t, s.LabelsVisible)
}

func TestDecodeEvent(t *testing.T) {
	for _, name := range EventNames {
		e, err := DecodeEvent(name, "G")
		require.NoError(t, err, name)
		assert.Equal(t, name, e.Name())
	}
	e, err := DecodeEvent("key_selected", "Em")
	require.NoError(t, err)
	assert.Equal(t, KeySelected{Key: "Em"}, e)

	_, err = DecodeEvent("explode", "")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestChordPage(t *testing.T) {
	s := DefaultState()
	view, err := ChordPage(s, render.NewSVG())
	require.NoError(t, err)

	require.Len(t, view.Groups, 2)
	assert.Equal(t, "Common Progressions in C", view.ExamplesTitle)
	assert.Len(t, view.Examples, 3)

	first := view.Groups[0].Cards[0]
	assert.Equal(t, "C Major", first.Name)
	assert.Equal(t, "I", first.Function)
	assert.Equal(t, "chord-diagram progression-chord major", first.Class)
	assert.True(t, strings.HasPrefix(first.Markup, "<svg"))
	assert.False(t, first.Highlighted || first.Dimmed)

	f := view.Groups[0].Cards[1]
	require.NotNil(t, f.Barre)
	assert.Equal(t, 1, f.Barre.Fret)
}

func TestChordPageHighlightsProgression(t *testing.T) {
	s, err := Apply(DefaultState(), ProgressionSelected{Label: "ii-V-I"})
	require.NoError(t, err)
	view, err := ChordPage(s, render.NewSVG())
	require.NoError(t, err)

	lit := map[string]bool{}
	for _, g := range view.Groups {
		for _, c := range g.Cards {
			assert.NotEqual(t, c.Highlighted, c.Dimmed, c.Name)
			if c.Highlighted {
				lit[c.Name] = true
				assert.True(t, strings.HasSuffix(c.Class, " highlighted"))
			}
		}
	}
	assert.Equal(t, map[string]bool{"D Minor": true, "G Major": true, "C Major": true}, lit)
}

func TestChordPageMinorLabels(t *testing.T) {
	s, err := Apply(DefaultState(), KeySelected{Key: "Am"})
	require.NoError(t, err)
	view, err := ChordPage(s, render.NewText())
	require.NoError(t, err)

	assert.Equal(t, "i", view.Groups[0].Cards[0].Function)
	assert.Equal(t, "v7", view.Groups[0].Cards[3].Function)
	assert.Equal(t, "#9C27B0", view.Groups[0].Cards[3].Badge)
	assert.Equal(t, "Minor Blues", view.Examples[0].Name)
}

func TestScalePage(t *testing.T) {
	s, err := Replay(DefaultState(), ScaleTypeToggled{}, RootSelected{Root: "A"}, MinorHighlightToggled{}, LabelsToggled{})
	require.NoError(t, err)

	view, err := ScalePage(s, render.NewSVG())
	require.NoError(t, err)
	assert.Equal(t, "Pentatonic Scale Patterns", view.Title)
	assert.Len(t, view.Cards, 5)
	for _, c := range view.Cards {
		assert.Contains(t, c.Markup, `visibility="hidden"`, c.Name)
		assert.Equal(t, "A", c.Diagram.Root)
		for _, n := range c.Diagram.Notes {
			if n.Highlighted {
				assert.Equal(t, "F#", n.Name)
			}
		}
	}
}

func TestSessions(t *testing.T) {
	store := NewSessions()
	sess := store.Create()
	assert.NotEqual(t, uuid.Nil, sess.ID)
	assert.Equal(t, 1, store.Len())

	got, err := store.Apply(sess.ID, KeySelected{Key: "G"})
	require.NoError(t, err)
	assert.Equal(t, "G", got.State.SelectedKey)

	_, err = store.Apply(sess.ID, KeySelected{Key: "nope"})
	require.Error(t, err)
	got, err = store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "G", got.State.SelectedKey, "failed event leaves state untouched")

	store.Delete(sess.ID)
	_, err = store.Get(sess.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestSessionsPrune(t *testing.T) {
	store := NewSessions()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	old := store.Create()
	now = now.Add(time.Hour)
	fresh := store.Create()

	assert.Equal(t, 1, store.Prune(30*time.Minute))
	_, err := store.Get(old.ID)
	assert.Error(t, err)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestSessionsConcurrentApply(t *testing.T) {
	store := NewSessions()
	sess := store.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Apply(sess.ID, LabelsToggled{})
		}()
	}
	wg.Wait()

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.True(t, got.State.LabelsVisible, "an even number of toggles restores the flag")
}
