package scale

import (
	"fmt"
	"strings"

	"github.com/starford/fretwork/internal/apperr"
)

// Type selects a pattern table.
type Type string

const (
	Diatonic   Type = "diatonic"
	Pentatonic Type = "pentatonic"
)

// ParseType resolves a pattern table name.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(s)) {
	case Diatonic:
		return Diatonic, nil
	case Pentatonic:
		return Pentatonic, nil
	}
	return "", fmt.Errorf("%w: unknown scale type %q", apperr.ErrInvalidInput, s)
}

// Title is the heading shown above a pattern set.
func (t Type) Title() string {
	switch t {
	case Pentatonic:
		return "Pentatonic Scale Patterns"
	default:
		return "Diatonic Scale Patterns"
	}
}

// Toggle returns the other pattern table.
func (t Type) Toggle() Type {
	if t == Pentatonic {
		return Diatonic
	}
	return Pentatonic
}

var diatonic = []Pattern{
	{Name: "Pattern 1", Rows: []string{"EADGBE", "F___CF", "_BEA__", "GCF_DG", "______", "______"}},
	{Name: "Pattern 2", Rows: []string{"_BEA__", "GCF_DG", "___B__", "ADGCEA", "____F_", "______"}},
	{Name: "Pattern 3", Rows: []string{"___B__", "ADGCEA", "____F_", "BEAD_B", "CF__GC", "______"}},
	{Name: "Pattern 4", Rows: []string{"BEAD_B", "CF__GC", "__BE__", "DGCFAD", "______", "______"}},
	{Name: "Pattern 5", Rows: []string{"__BE__", "DGCFAD", "______", "EADGBE", "F___CF", "______"}},
}

// Pentatonic patterns are the diatonic ones with B and F removed.
var pentatonic = []Pattern{
	{Name: "Pattern 1", Rows: []string{"EADG_E", "____C_", "__EA__", "GC__DG", "______", "______"}},
	{Name: "Pattern 2", Rows: []string{"__EA__", "GC__DG", "______", "ADGCEA", "______", "______"}},
	{Name: "Pattern 3", Rows: []string{"______", "ADGCEA", "______", "_EAD__", "C___GC", "______"}},
	{Name: "Pattern 4", Rows: []string{"_EAD__", "C___GC", "___E__", "DGC_AD", "______", "______"}},
	{Name: "Pattern 5", Rows: []string{"___E__", "DGC_AD", "______", "EADG_E", "____C_", "______"}},
}

// Patterns returns a copy of the pattern table for t.
func Patterns(t Type) []Pattern {
	src := diatonic
	if t == Pentatonic {
		src = pentatonic
	}
	out := make([]Pattern, len(src))
	for i, p := range src {
		out[i] = Pattern{Name: p.Name, Rows: append([]string(nil), p.Rows...)}
	}
	return out
}
