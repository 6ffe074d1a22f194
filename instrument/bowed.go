package instrument

// bowed implements the violin/cello family: range, a string-crossing-aware
// playability cost, and double-stop feasibility (adjacent strings,
// reachable position). Grounded on
// original_source/src/instrument/bowed/{violin,cello}_model.cpp.
type bowed struct {
	kind      Kind
	low, high int
	// openStrings are the instrument's open-string pitches, low to high.
	openStrings []int
}

func (b bowed) Kind() Kind        { return b.kind }
func (b bowed) LowestPitch() int  { return b.low }
func (b bowed) HighestPitch() int { return b.high }

func (b bowed) IsPitchPlayable(pitch int) bool {
	return pitch >= b.low && pitch <= b.high
}

// stringFor returns the index of the highest open string at or below pitch
// (the natural string a player would choose), or -1.
func (b bowed) stringFor(pitch int) int {
	best := -1
	for i, open := range b.openStrings {
		if open <= pitch {
			best = i
		}
	}
	return best
}

func (b bowed) PlayabilityCost(pitch int) float64 {
	if !b.IsPitchPlayable(pitch) {
		return 1000
	}
	si := b.stringFor(pitch)
	if si < 0 {
		return 1000
	}
	positionSemitones := pitch - b.openStrings[si]
	// First position (0-4 semitones) is cheap; thumb position or beyond the
	// top of the fingerboard costs more.
	switch {
	case positionSemitones <= 4:
		return 0
	case positionSemitones <= 9:
		return 0.3
	case positionSemitones <= 14:
		return 0.6
	default:
		return 1.0
	}
}

func (b bowed) MaxSimultaneous() int { return 2 }

// IsDoubleStopFeasible requires both pitches to lie on adjacent strings at a
// reachable position (within two octaves of the open string). Two pitches
// whose natural string (see stringFor) is the same count as adjacent when a
// lower string exists to take the lower pitch.
func (b bowed) IsDoubleStopFeasible(a, bb int) bool {
	if !b.IsPitchPlayable(a) || !b.IsPitchPlayable(bb) {
		return false
	}
	sa, sb := b.stringFor(a), b.stringFor(bb)
	if sa < 0 || sb < 0 {
		return false
	}
	diff := sa - sb
	if diff < 0 {
		diff = -diff
	}
	if diff > 1 || (diff == 0 && sa == 0) {
		return false
	}
	if a-b.openStrings[sa] > 24 || bb-b.openStrings[sb] > 24 {
		return false
	}
	return true
}

func (b bowed) SuggestPlayableVoicing(pitches []int) []int { return pitches } // not a keyboard concern

func newViolin() ModelEnsemble {
	return bowed{kind: Violin, low: 55, high: 103, openStrings: []int{55, 62, 69, 76}}
}

func newCello() ModelEnsemble {
	return bowed{kind: Cello, low: 36, high: 84, openStrings: []int{36, 43, 50, 57}}
}
