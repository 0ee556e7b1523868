package music

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspose(t *testing.T) {
	tests := []struct {
		note      string
		semitones int
		want      string
	}{
		{"C", 0, "C"},
		{"C", 12, "C"},
		{"B", 1, "C"},
		{"C", -1, "B"},
		{"A", -3, "F#"},
		{"E", 7, "B"},
		{"F#", -30, "C"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Transpose(tt.note, tt.semitones), "Transpose(%q, %d)", tt.note, tt.semitones)
	}
}

func TestTranspose_UnknownNoteUnchanged(t *testing.T) {
	assert.Equal(t, "H", Transpose("H", 3))
	assert.Equal(t, "Db", Transpose("Db", 1))
}

func TestTranspose_RoundTrip(t *testing.T) {
	for _, note := range Notes {
		for n := -24; n <= 24; n++ {
			got := Transpose(Transpose(note, n), -n)
			require.Equal(t, note, got, "round trip %s by %d", note, n)
		}
	}
}

func TestInterval(t *testing.T) {
	for _, root := range Notes {
		d, err := Interval(root, root)
		require.NoError(t, err)
		assert.Zero(t, d, "Interval(%s, %s)", root, root)
	}

	d, err := Interval("C", "G")
	require.NoError(t, err)
	assert.Equal(t, 7, d)

	d, err = Interval("G", "C")
	require.NoError(t, err)
	assert.Equal(t, 5, d)

	_, err = Interval("C", "Q")
	assert.ErrorIs(t, err, ErrUnknownNote)
}

func TestChooseEnharmonic(t *testing.T) {
	assert.Equal(t, "Db", ChooseEnharmonic("C#", "F"))
	assert.Equal(t, "C#", ChooseEnharmonic("C#", "C"))
	assert.Equal(t, "Bb", ChooseEnharmonic("A#", "Eb"))
	assert.Equal(t, "A#", ChooseEnharmonic("Bb", "G"))
	assert.Equal(t, "E", ChooseEnharmonic("E", "F"))
}

func TestSameClass(t *testing.T) {
	assert.True(t, SameClass("C#", "Db"))
	assert.True(t, SameClass("A", "A"))
	assert.False(t, SameClass("A", "F#"))
	assert.False(t, SameClass("X", "X"))
}

func TestParseRoot(t *testing.T) {
	got, err := ParseRoot("Bb")
	require.NoError(t, err)
	assert.Equal(t, "A#", got)

	got, err = ParseRoot("G")
	require.NoError(t, err)
	assert.Equal(t, "G", got)

	_, err = ParseRoot("Cb")
	assert.ErrorIs(t, err, ErrUnknownNote)
}

func TestSixthStringFret(t *testing.T) {
	assert.Equal(t, 0, SixthStringFret("E"))
	assert.Equal(t, 8, SixthStringFret("C"))
	assert.Equal(t, 6, SixthStringFret("Bb"))
	assert.Equal(t, 0, SixthStringFret("?"))
}
