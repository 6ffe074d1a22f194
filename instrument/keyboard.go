package instrument

import "sort"

// keyboard implements the keyboard family shared by organ, harpsichord, and
// piano: a declared range, a simple proximity-based playability cost, and a
// two-hand span constraint used for SuggestPlayableVoicing. Grounded on
// original_source/src/instrument/keyboard/{organ,harpsichord,piano}_model.cpp
// and src/organ/manual.cpp.
type keyboard struct {
	kind      Kind
	low, high int
	// handSpan is the widest comfortable single-hand reach in semitones;
	// two hands together can comfortably cover handSpan*2 when the two
	// clusters don't overlap awkwardly.
	handSpan int
	// pedalLow/pedalHigh bound the organ pedalboard's ideal range, narrower
	// than the manual range low/high; zero on instruments with no separate
	// pedal division. Notes outside [pedalLow, pedalHigh] aren't rejected,
	// only penalized: pedalPenalty per semitone of distance from the
	// nearer boundary. Grounded on
	// original_source/src/organ/pedal_constraints.h.
	pedalLow, pedalHigh int
	pedalPenalty        float64
}

func (k keyboard) Kind() Kind         { return k.kind }
func (k keyboard) LowestPitch() int   { return k.low }
func (k keyboard) HighestPitch() int  { return k.high }

func (k keyboard) IsPitchPlayable(pitch int) bool {
	return pitch >= k.low && pitch <= k.high
}

func (k keyboard) PlayabilityCost(pitch int) float64 {
	if !k.IsPitchPlayable(pitch) {
		return 1000
	}
	// Mild cost rise toward the extremes of the range.
	mid := (k.low + k.high) / 2
	span := k.high - k.low
	if span == 0 {
		return 0
	}
	d := pitch - mid
	if d < 0 {
		d = -d
	}
	return float64(d) / float64(span)
}

// PedalPenalty is the soft cost of sounding pitch on the organ pedalboard:
// zero inside [pedalLow, pedalHigh], rising linearly outside it. Zero on
// keyboards with no separate pedal division (harpsichord, piano). Grounded
// on original_source/src/organ/pedal_constraints.h's
// calculatePedalPenalty, which the original's manual.cpp/organ_techniques.cpp
// consult before settling a pedal line into its working range.
func (k keyboard) PedalPenalty(pitch int) float64 {
	if k.pedalHigh == 0 {
		return 0
	}
	switch {
	case pitch >= k.pedalLow && pitch <= k.pedalHigh:
		return 0
	case pitch < k.pedalLow:
		return float64(k.pedalLow-pitch) * k.pedalPenalty
	default:
		return float64(pitch-k.pedalHigh) * k.pedalPenalty
	}
}

func (k keyboard) MaxSimultaneous() int { return 10 } // reach-limited, not count-limited

func (k keyboard) IsDoubleStopFeasible(a, b int) bool { return true } // not a bowed concern

// SuggestPlayableVoicing returns a playable subset of pitches: sorted, with
// inner notes dropped until the outer span fits within a two-hand reach
// (handSpan*2), preserving the bass and soprano voices.
func (k keyboard) SuggestPlayableVoicing(pitches []int) []int {
	if len(pitches) <= 1 {
		return pitches
	}
	sorted := append([]int(nil), pitches...)
	sort.Ints(sorted)

	maxSpan := k.handSpan * 2
	for sorted[len(sorted)-1]-sorted[0] > maxSpan && len(sorted) > 2 {
		// Drop the note closest to the middle of the remaining cluster.
		mid := len(sorted) / 2
		sorted = append(sorted[:mid], sorted[mid+1:]...)
	}
	return sorted
}

func newOrgan(k Kind) ModelEnsemble {
	return keyboard{
		kind: k, low: 36, high: 96, handSpan: 13,
		pedalLow: 24, pedalHigh: 50, pedalPenalty: 5,
	}
}

func newHarpsichord() ModelEnsemble {
	return keyboard{kind: Harpsichord, low: 29, high: 89, handSpan: 12}
}

func newPiano() ModelEnsemble {
	return keyboard{kind: Piano, low: 21, high: 108, handSpan: 14}
}
