package scale

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/fretwork/internal/apperr"
)

func TestPatternTablesAreValid(t *testing.T) {
	for _, typ := range []Type{Diatonic, Pentatonic} {
		ps := Patterns(typ)
		require.Len(t, ps, 5, typ)
		for _, p := range ps {
			assert.NoError(t, p.Validate(), "%s %s", typ, p.Name)
		}
	}
}

func TestPatternsReturnsCopy(t *testing.T) {
	ps := Patterns(Diatonic)
	ps[0].Rows[0] = "______"
	assert.Equal(t, "EADGBE", Patterns(Diatonic)[0].Rows[0])
}

func TestCells_SharpBelongsToCell(t *testing.T) {
	p := Pattern{Name: "sharp", Rows: []string{"C#_____", "______", "______", "______", "______", "______"}}
	cells, err := p.Cells()
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"C#", "", "", "", "", ""}, cells[0]); diff != "" {
		t.Errorf("row 0 mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_SharpCellTransposes(t *testing.T) {
	p := Pattern{Name: "sharp", Rows: []string{"C#_C___", "______", "______", "______", "______", "______"}}

	d, err := Build(p, "D", HighlightMajor)
	require.NoError(t, err)
	assert.Equal(t, 6, d.Columns)
	want := []Note{
		{Row: 0, Column: 0, Name: "D#"},
		{Row: 0, Column: 2, Name: "D", Highlighted: true},
	}
	if diff := cmp.Diff(want, d.Notes); diff != "" {
		t.Errorf("notes mismatch (-want +got):\n%s", diff)
	}
	require.NotNil(t, d.Label)
	assert.Equal(t, FretLabel{Row: 0, Fret: 11}, *d.Label)

	d, err = Build(p, "Eb", HighlightNone)
	require.NoError(t, err)
	require.Len(t, d.Notes, 2)
	assert.Equal(t, "E", d.Notes[0].Name)
	assert.Equal(t, "Eb", d.Notes[1].Name)
	assert.Equal(t, 12, d.Label.Fret)
}

func TestCells_Invalid(t *testing.T) {
	tests := map[string][]string{
		"too few rows":  {"EADGBE", "______"},
		"bad symbol":    {"EADGBH", "______", "______", "______", "______", "______"},
		"ragged widths": {"EADGBE", "____", "______", "______", "______", "______"},
		"empty rows":    {"", "", "", "", "", ""},
	}
	for name, rows := range tests {
		err := Pattern{Name: name, Rows: rows}.Validate()
		require.Error(t, err, name)
		assert.ErrorIs(t, err, ErrInvalidPattern, name)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput, name)
	}
}

func TestBuild_AuthoredKey(t *testing.T) {
	p := Patterns(Diatonic)[0]
	d, err := Build(p, "C", HighlightNone)
	require.NoError(t, err)

	assert.Equal(t, 6, d.Rows)
	assert.Equal(t, 6, d.Columns)
	require.NotNil(t, d.Label)
	assert.Equal(t, FretLabel{Row: 0, Fret: 0}, *d.Label)
	assert.False(t, d.OpenPosition)

	var first []string
	for _, n := range d.Notes {
		if n.Row == 0 {
			first = append(first, n.Name)
		}
		assert.False(t, n.Highlighted)
	}
	assert.Equal(t, []string{"E", "A", "D", "G", "B", "E"}, first)
}

func TestBuild_MajorHighlight(t *testing.T) {
	d, err := Build(Patterns(Diatonic)[0], "G", HighlightMajor)
	require.NoError(t, err)

	highlighted := 0
	for _, n := range d.Notes {
		if n.Highlighted {
			highlighted++
			assert.Equal(t, "G", n.Name)
		} else {
			assert.NotEqual(t, "G", n.Name)
		}
	}
	assert.Positive(t, highlighted)
	require.NotNil(t, d.Label)
	assert.Equal(t, 7, d.Label.Fret)
}

func TestBuild_MinorHighlightUsesRelativeMinor(t *testing.T) {
	d, err := Build(Patterns(Diatonic)[0], "A", HighlightMinor)
	require.NoError(t, err)

	highlighted := 0
	for _, n := range d.Notes {
		if n.Highlighted {
			highlighted++
			assert.Equal(t, "F#", n.Name)
		}
		if n.Name == "A" {
			assert.False(t, n.Highlighted, "tonic A must not be highlighted in minor mode")
		}
	}
	assert.Positive(t, highlighted)
}

func TestBuild_FlatKeySpelling(t *testing.T) {
	d, err := Build(Patterns(Diatonic)[0], "F", HighlightNone)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, n := range d.Notes {
		names[n.Name] = true
		assert.False(t, strings.Contains(n.Name, "#"), "flat key should not spell %q", n.Name)
	}
	assert.True(t, names["Bb"])
}

func TestBuild_FlatRootHighlightsByClass(t *testing.T) {
	d, err := Build(Patterns(Pentatonic)[0], "Bb", HighlightMajor)
	require.NoError(t, err)

	highlighted := 0
	for _, n := range d.Notes {
		if n.Highlighted {
			highlighted++
			assert.Equal(t, "Bb", n.Name)
		}
	}
	assert.Positive(t, highlighted)
}

func TestBuild_LabelFoldsAboveTwelve(t *testing.T) {
	// Pattern 3 first starts a row with A: fret 5 + 9 = 14.
	d, err := Build(Patterns(Diatonic)[2], "A", HighlightNone)
	require.NoError(t, err)
	require.NotNil(t, d.Label)
	assert.Equal(t, FretLabel{Row: 1, Fret: 2}, *d.Label)
}

func TestBuild_OpenPosition(t *testing.T) {
	p := Pattern{Name: "inner", Rows: []string{"_AD___", "______", "__E___", "______", "______", "______"}}
	d, err := Build(p, "D", HighlightNone)
	require.NoError(t, err)
	assert.Nil(t, d.Label)
	assert.True(t, d.OpenPosition)
	assert.Len(t, d.Notes, 3)
}

func TestBuild_UnknownRoot(t *testing.T) {
	_, err := Build(Patterns(Diatonic)[0], "H", HighlightNone)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestParseHighlight(t *testing.T) {
	for in, want := range map[string]HighlightMode{
		"": HighlightNone, "false": HighlightNone, "major": HighlightMajor, "MINOR": HighlightMinor,
	} {
		got, err := ParseHighlight(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseHighlight("dorian")
	assert.Error(t, err)
}

func TestTypeToggle(t *testing.T) {
	assert.Equal(t, Pentatonic, Diatonic.Toggle())
	assert.Equal(t, Diatonic, Pentatonic.Toggle())
	assert.Equal(t, "Pentatonic Scale Patterns", Pentatonic.Title())
}
