package chord

// Barre marks one finger held across several strings at the same fret.
type Barre struct {
	StartString int `json:"start_string"`
	EndString   int `json:"end_string"`
	Fret        int `json:"fret"`
}

// minBarreSpan is the minimum index distance between the first and last
// string of a barre (four strings).
const minBarreSpan = 3

// DetectBarre returns the barre of s, or nil if s has none.
//
// The first fretted string fixes the candidate fret. Later strings at exactly
// that fret move the end of the barre; strings at other frets are skipped
// without ending the scan, so "1x2x1x" style shapes report a barre running
// across the differently fretted string. The candidate is accepted only when
// it spans at least four strings and is the lowest fretted position.
func DetectBarre(s Shape) *Barre {
	frets := s.Frets()
	start, end, fret := -1, -1, 0
	for i, f := range frets {
		if f <= 0 {
			continue
		}
		switch {
		case start < 0:
			start, end, fret = i, i, f
		case f == fret:
			end = i
		}
	}
	if start < 0 || end-start < minBarreSpan {
		return nil
	}
	for _, f := range frets {
		if f > 0 && f < fret {
			return nil
		}
	}
	return &Barre{StartString: start, EndString: end, Fret: fret}
}
