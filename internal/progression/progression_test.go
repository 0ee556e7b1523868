package progression

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/fretwork/internal/chord"
)

func TestTablesHoldValidShapes(t *testing.T) {
	for key, prog := range Progressions {
		for fn, c := range prog {
			_, err := chord.ParseShape(string(c.Shape))
			assert.NoError(t, err, "%s %s", key, fn)
			assert.NotEqual(t, "unknown", c.Type.String(), "%s %s", key, fn)
		}
	}
	for _, c := range Catalogue {
		_, err := chord.ParseShape(string(c.Shape))
		assert.NoError(t, err, c.Name)
	}
	assert.Len(t, Keys(), len(Progressions))
}

func TestLookup(t *testing.T) {
	c, ok := Lookup("Am", "V7")
	require.True(t, ok)
	assert.Equal(t, "E7", c.Name)

	c, ok = Lookup("C", "ii")
	require.True(t, ok)
	assert.Equal(t, "D Minor", c.Name)

	c, ok = Lookup("Am", "vi")
	require.True(t, ok, "lowercase minor label should resolve")
	assert.Equal(t, "F Major", c.Name)

	_, ok = Lookup("C", "VII")
	assert.False(t, ok)
	_, ok = Lookup("H", "I")
	assert.False(t, ok)
}

func TestFunctionLabel(t *testing.T) {
	assert.Equal(t, "V7", FunctionLabel("C", "G7"))
	assert.Equal(t, "v7", FunctionLabel("Am", "E7"))
	assert.Equal(t, "iii", FunctionLabel("Am", "C Major"))
	assert.Equal(t, "", FunctionLabel("C", "B7"))
	assert.Equal(t, "", FunctionLabel("nope", "C Major"))
}

func TestKeyHelpers(t *testing.T) {
	assert.True(t, IsMinorKey("Am"))
	assert.False(t, IsMinorKey("A"))
	assert.Equal(t, "F", BaseKey("Fm"))
	assert.Equal(t, "F", BaseKey("F"))
}

func TestGroups(t *testing.T) {
	groups, ok := Groups("C")
	require.True(t, ok)
	require.Len(t, groups, 2)
	assert.Equal(t, "Primary Progression (I-IV-V)", groups[0].Title)
	require.Len(t, groups[0].Slots, 4)
	assert.Equal(t, "G7", groups[0].Slots[3].Chord.Name)
	require.Len(t, groups[1].Slots, 3)
	assert.Equal(t, "vi", groups[1].Slots[2].Label)

	groups, ok = Groups("Am")
	require.True(t, ok)
	assert.Equal(t, "Primary Progression (i-iv-V)", groups[0].Title)
	assert.Equal(t, "iv", groups[0].Slots[1].Label)
	require.Len(t, groups[1].Slots, 3)
	assert.Equal(t, "B Diminished", groups[1].Slots[2].Chord.Name)

	_, ok = Groups("X")
	assert.False(t, ok)
}

func TestExamples(t *testing.T) {
	major := Examples("G")
	require.Len(t, major, 3)
	assert.Equal(t, []string{"I", "V", "vi", "IV"}, major[1].Functions)

	minor := Examples("Em")
	assert.Equal(t, "Minor Jazz", minor[2].Name)
}

func TestHighlight(t *testing.T) {
	got := Highlight("C", []string{"ii", "V", "I"})
	assert.Equal(t, map[string]bool{"D Minor": true, "G Major": true, "C Major": true}, got)

	got = Highlight("Am", Examples("Am")[2].Functions)
	assert.Equal(t, map[string]bool{"B Diminished": true, "E Minor": true, "A Minor": true}, got)

	got = Highlight("Am", []string{"i", "VI", "III", "VII"})
	assert.Len(t, got, 3)
}

func TestChordTypeText(t *testing.T) {
	b, err := json.Marshal(Chord{Name: "G7", Shape: "320001", Type: Seventh})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"G7","shape":"320001","type":"7th"}`, string(b))

	var c Chord
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Bdim","shape":"x2323x","type":"diminished"}`), &c))
	assert.Equal(t, Diminished, c.Type)

	_, err = ParseChordType("sus4")
	assert.Error(t, err)
	assert.Equal(t, "#2196F3", Minor.BadgeColor())
	assert.Equal(t, "seventh", Seventh.Class())
}

func TestLookup_MajorKeyCaseSeparatesFunctions(t *testing.T) {
	for _, fn := range []string{"VI", "II", "III", "i", "v"} {
		c, ok := Lookup("C", fn)
		assert.False(t, ok, "Lookup(C, %s) = %s, want not found", fn, c.Name)
	}

	got := Highlight("C", []string{"I", "VI"})
	assert.Equal(t, map[string]bool{"C Major": true}, got)
}
