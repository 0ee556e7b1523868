package chord

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/fretwork/internal/apperr"
)

func TestParseShape(t *testing.T) {
	for _, s := range []string{"x32010", "133211", "xxxxxx", "999999"} {
		_, err := ParseShape(s)
		assert.NoError(t, err, s)
	}

	for _, s := range []string{"13321", "1332111", "", "x3201o", "X32010", "13-211"} {
		_, err := ParseShape(s)
		require.Error(t, err, s)
		assert.True(t, errors.Is(err, ErrInvalidShapeFormat), "%q: %v", s, err)
		assert.True(t, errors.Is(err, apperr.ErrInvalidInput), "%q should be invalid input", s)
	}
}

func TestMinFret(t *testing.T) {
	assert.Equal(t, 1, MustParseShape("x32010").MinFret())
	assert.Equal(t, 6, MustParseShape("x68876").MinFret())
	assert.Equal(t, 1, MustParseShape("xx0000").MinFret())
}

func TestDetectBarre(t *testing.T) {
	tests := []struct {
		shape string
		want  *Barre
	}{
		{"133211", &Barre{StartString: 0, EndString: 5, Fret: 1}},
		{"x13331", &Barre{StartString: 1, EndString: 5, Fret: 1}},
		{"355333", &Barre{StartString: 0, EndString: 5, Fret: 3}},
		{"x46654", &Barre{StartString: 1, EndString: 5, Fret: 4}},
		{"x32010", nil},
		{"022100", nil},
		// Fret 3 spans the shape but 2 is lower.
		{"320003", nil},
		{"xx0000", nil},
		{"xxxxxx", nil},
		// Differently fretted strings do not end the run.
		{"1x2x1x", &Barre{StartString: 0, EndString: 4, Fret: 1}},
	}
	for _, tt := range tests {
		got := DetectBarre(MustParseShape(tt.shape))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("DetectBarre(%q) mismatch (-want +got):\n%s", tt.shape, diff)
		}
	}
}

func TestDetectBarre_Invariants(t *testing.T) {
	symbols := "x0123456789"
	// Walk a deterministic sample of the shape space.
	for i := 0; i < 20000; i++ {
		buf := make([]byte, Strings)
		n := i * 7919
		for j := range buf {
			buf[j] = symbols[n%len(symbols)]
			n /= len(symbols)
		}
		s := MustParseShape(string(buf))
		b := DetectBarre(s)
		if b == nil {
			continue
		}
		require.GreaterOrEqual(t, b.EndString-b.StartString, 3, string(buf))
		require.Equal(t, s.MinFret(), b.Fret, string(buf))
	}
}

func TestLayout_OpenChord(t *testing.T) {
	got := Layout(MustParseShape("x32010"))
	want := Diagram{
		Shape:     "x32010",
		StartFret: 1,
		TopLine:   true,
		HeavyNut:  true,
		Markers: []Marker{
			{String: 0, Kind: Muted},
			{String: 1, Kind: Fretted, Fret: 3, Row: 3},
			{String: 2, Kind: Fretted, Fret: 2, Row: 2},
			{String: 3, Kind: Open},
			{String: 4, Kind: Fretted, Fret: 1, Row: 1},
			{String: 5, Kind: Open},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Layout mismatch (-want +got):\n%s", diff)
	}
}

func TestLayout_HighPosition(t *testing.T) {
	d := Layout(MustParseShape("x68876"))
	assert.Equal(t, 6, d.StartFret)
	assert.False(t, d.TopLine)
	assert.False(t, d.HeavyNut)
	assert.True(t, d.ShowFretLabel)
	assert.Equal(t, 1, d.Markers[1].Row)
	assert.Equal(t, 3, d.Markers[2].Row)
	require.NotNil(t, d.Barre)
	assert.Equal(t, 1, d.BarreRow)
}

func TestLayout_LowPositionStaysAtNut(t *testing.T) {
	d := Layout(MustParseShape("466444"))
	assert.Equal(t, 1, d.StartFret)
	assert.True(t, d.TopLine)
	require.NotNil(t, d.Barre)
	assert.Equal(t, 4, d.BarreRow)
}

func TestLayout_StretchBeyondWindow(t *testing.T) {
	d := Layout(MustParseShape("1xxxx9"))
	assert.Equal(t, 1, d.StartFret)

	first, last := d.Markers[0], d.Markers[5]
	assert.Equal(t, 1, first.Row)
	assert.False(t, first.OutOfWindow)
	assert.Equal(t, 9, last.Row)
	assert.True(t, last.OutOfWindow)

	for _, m := range Layout(MustParseShape("x32010")).Markers {
		assert.False(t, m.OutOfWindow, "string %d", m.String)
	}
}
