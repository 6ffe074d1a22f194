package validate

import (
	"bachgen/score"
	"bachgen/timeline"
)

// nonHarmonicTonePass implements spec.md 4.6.1's three-part classification:
// a chord tone is always accepted; a bar-downbeat non-chord tone is accepted
// unless it forms a minor second, major second, or tritone against the
// simultaneously-sounding bass, in which case it is snapped to the nearest
// chord tone; a weak-beat non-chord tone is accepted if it classifies as a
// passing tone, neighbor tone, anticipation, or escape tone against its
// immediate neighbors in the same voice, and otherwise falls back to the
// same bass-dissonance check the downbeat case uses. Grounded on
// original_source's non_harmonic_tone_repair.
func nonHarmonicTonePass(byVoice map[int][]score.NoteEvent, tl *timeline.Timeline) map[int][]score.NoteEvent {
	if tl == nil {
		return byVoice
	}
	voices := voiceIndices(byVoice)
	for _, voice := range voices {
		notes := byVoice[voice]
		for i := range notes {
			n := &notes[i]
			ev, ok := tl.GetAt(n.StartTick)
			if !ok {
				continue
			}
			if ev.Chord.ContainsPitchClass(simpleMod(n.Pitch)) {
				continue // chord tone: always accepted
			}

			downbeat := n.StartTick%timeline.TicksPerBar == 0
			if !downbeat {
				if classifyWeakBeatNCT(notes, i) {
					continue // passing, neighbor, anticipation, or escape tone: accepted
				}
			}

			bassVoice, _, bassPitch, hasBass := lowestSoundingAt(byVoice, voices, n.StartTick)
			if !hasBass || bassVoice == voice {
				continue // no other (bass) voice sounding to judge against: accepted
			}
			if !isSecondOrTritoneAgainstBass(n.Pitch, bassPitch) {
				continue // not harshly dissonant with the bass: accepted
			}

			allowed, octaveOnly := canShift(n.Protection())
			if !allowed || octaveOnly {
				continue // an octave shift cannot turn a non-chord tone into a chord tone
			}
			n.Pitch = ev.Chord.NearestChordTone(n.Pitch)
			n.ModifiedBy |= score.ModNonHarmonic
		}
		byVoice[voice] = notes
	}
	return byVoice
}

// classifyWeakBeatNCT reports whether the note at index i reads as a
// passing tone, neighbor tone, anticipation, or escape tone against its
// immediate predecessor and successor in the same voice (spec.md 4.6.1).
// A note with no neighbor on either side cannot be classified.
func classifyWeakBeatNCT(notes []score.NoteEvent, i int) bool {
	if i == 0 || i+1 >= len(notes) {
		return false
	}
	prev, cur, next := notes[i-1].Pitch, notes[i].Pitch, notes[i+1].Pitch
	into := cur - prev
	out := next - cur
	stepIn := into != 0 && abs(into) <= 2
	stepOut := out != 0 && abs(out) <= 2
	leapOut := abs(out) >= 3

	if stepIn && stepOut && signOf(into) == signOf(out) {
		return true // passing tone: stepwise through in one direction
	}
	if stepIn && stepOut && next == prev {
		return true // neighbor tone: steps away and back
	}
	if cur == next {
		return true // anticipation: arrives early at the next note's pitch
	}
	if stepIn && leapOut && signOf(into) != signOf(out) {
		return true // escape tone: stepwise approach, leap away in the other direction
	}
	return false
}

func signOf(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// isSecondOrTritoneAgainstBass reports whether pitch forms a minor second,
// major second, or tritone (in either inversion) against bassPitch -- the
// harshness test spec.md 4.6.1 names for both the downbeat and weak-beat
// bass-dissonance checks.
func isSecondOrTritoneAgainstBass(pitch, bassPitch int) bool {
	switch simpleMod(pitch - bassPitch) {
	case 1, 2, 6, 10, 11:
		return true
	default:
		return false
	}
}
