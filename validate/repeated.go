package validate

import "bachgen/score"

// repeatedPitchPass rewrites any note whose pitch equals the immediately
// preceding note's pitch within the same voice (spec.md 4.6.7: even a
// single back-to-back repeat reads as a generation artifact, not idiomatic
// writing), biasing the shift toward the voice's range center -- estimated
// here as the mean pitch of the voice's own notes, since this pass has no
// access to the voice's assigned instrument register. Grounded on
// original_source's repeated_pitch_repair.
func repeatedPitchPass(byVoice map[int][]score.NoteEvent) map[int][]score.NoteEvent {
	for voice, notes := range byVoice {
		center := voiceCenter(notes)
		for i := 1; i < len(notes); i++ {
			if notes[i].Pitch != notes[i-1].Pitch {
				continue
			}
			allowed, octaveOnly := canShift(notes[i].Protection())
			if !allowed || octaveOnly {
				continue
			}
			if notes[i].Pitch <= center {
				notes[i].Pitch += 2
			} else {
				notes[i].Pitch -= 2
			}
			notes[i].ModifiedBy |= score.ModRepeated
		}
		byVoice[voice] = notes
	}
	return byVoice
}

// voiceCenter estimates a voice's range center as the mean pitch of its own
// notes, falling back to middle C when the voice is empty.
func voiceCenter(notes []score.NoteEvent) int {
	if len(notes) == 0 {
		return 60
	}
	sum := 0
	for _, n := range notes {
		sum += n.Pitch
	}
	return sum / len(notes)
}
