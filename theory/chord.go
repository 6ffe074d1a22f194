package theory

// ChordQuality is the closed set spec.md 3 names.
type ChordQuality int

const (
	QMajor ChordQuality = iota
	QMinor
	QDiminished
	QAugmented
	QDominant7
	QMinor7
	QHalfDim7
	QDiminished7
)

// Degree is a Roman-numeral functional label. It is a plain string type (not
// an enum) because the label set is open-ended (V_of_V, V_of_IV, ...) the
// way the teacher's chord.Symbol strings are.
type Degree string

const (
	DegreeI      Degree = "I"
	DegreeII     Degree = "ii"
	DegreeIV     Degree = "IV"
	DegreeV      Degree = "V"
	DegreeVofV   Degree = "V/V"
	DegreeVofIV  Degree = "V/IV"
	DegreeVI     Degree = "vi"
	DegreeViiDim Degree = "viidim"
)

// Chord is a root pitch class plus quality plus functional label.
type Chord struct {
	Root    int
	Quality ChordQuality
	Degree  Degree
}

// thirdInterval, fifthInterval, seventhInterval implement the derivation
// rule from spec.md 3: "Intervals above the root are derived from quality."
func thirdInterval(q ChordQuality) int {
	switch q {
	case QMinor, QDiminished, QMinor7, QHalfDim7, QDiminished7:
		return 3
	default:
		return 4
	}
}

func fifthInterval(q ChordQuality) int {
	switch q {
	case QDiminished, QHalfDim7, QDiminished7:
		return 6
	case QAugmented:
		return 8
	default:
		return 7
	}
}

// hasSeventh reports whether the quality carries a seventh at all.
func hasSeventh(q ChordQuality) bool {
	switch q {
	case QDominant7, QMinor7, QHalfDim7, QDiminished7:
		return true
	default:
		return false
	}
}

func seventhInterval(q ChordQuality) int {
	switch q {
	case QDominant7, QHalfDim7:
		return 10
	case QMinor7:
		return 10
	case QDiminished7:
		return 9
	default:
		return 11
	}
}

// Tones returns the chord's pitch classes (root first, ascending).
func (c Chord) Tones() []int {
	tones := []int{c.Root, (c.Root + thirdInterval(c.Quality)) % 12, (c.Root + fifthInterval(c.Quality)) % 12}
	if hasSeventh(c.Quality) {
		tones = append(tones, (c.Root+seventhInterval(c.Quality))%12)
	}
	return tones
}

// ContainsPitchClass reports whether pc (0-11) is a chord tone.
func (c Chord) ContainsPitchClass(pc int) bool {
	pc = ((pc % 12) + 12) % 12
	for _, t := range c.Tones() {
		if t == pc {
			return true
		}
	}
	return false
}

// NearestChordTone finds the chord tone (any octave) nearest to pitch,
// preferring the lower candidate on an exact tie -- grounded on the
// teacher's midi.chooseChordTone minimal-distance search.
func (c Chord) NearestChordTone(pitch int) int {
	tones := c.Tones()
	best := pitch
	bestDist := 1 << 30
	base := (pitch / 12) * 12
	for oct := -1; oct <= 1; oct++ {
		for _, t := range tones {
			cand := base + oct*12 + t
			d := cand - pitch
			if d < 0 {
				d = -d
			}
			if d < bestDist {
				bestDist = d
				best = cand
			}
		}
	}
	return best
}

// NearestChordToneInRange is NearestChordTone clamped to search only
// candidates within [low, high]; falls back to the unclamped nearest tone if
// nothing in range qualifies.
func (c Chord) NearestChordToneInRange(pitch, low, high int) int {
	tones := c.Tones()
	best := 0
	bestDist := 1 << 30
	found := false
	base := (pitch / 12) * 12
	for oct := -2; oct <= 2; oct++ {
		for _, t := range tones {
			cand := base + oct*12 + t
			if cand < low || cand > high {
				continue
			}
			d := cand - pitch
			if d < 0 {
				d = -d
			}
			if d < bestDist {
				bestDist = d
				best = cand
				found = true
			}
		}
	}
	if !found {
		return clamp(c.NearestChordTone(pitch), low, high)
	}
	return best
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
