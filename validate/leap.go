package validate

import "bachgen/score"

// leapResolutionPass requires that any melodic leap of a perfect fourth or
// larger (>=5 semitones) be followed by a step in the opposite direction or
// by a repeated pitch (which the repeated-pitch pass then handles); when it
// isn't, the following note is moved to one step from the leap's landing
// note, toward the leap's origin. Notes limited to octave shifts are left
// alone. Grounded on original_source's leap_resolution_repair.
func leapResolutionPass(byVoice map[int][]score.NoteEvent) map[int][]score.NoteEvent {
	const leapThreshold = 5
	for voice, notes := range byVoice {
		for i := 1; i+1 < len(notes); i++ {
			leap := notes[i].Pitch - notes[i-1].Pitch
			if abs(leap) < leapThreshold {
				continue
			}
			next := &notes[i+1]
			allowed, octaveOnly := canShift(next.Protection())
			if !allowed || octaveOnly {
				continue
			}
			following := next.Pitch - notes[i].Pitch
			sameDir := (leap > 0 && following > 0) || (leap < 0 && following < 0)
			if !sameDir && abs(following) <= 2 {
				continue // already resolves by a contrary step (or a repeat)
			}
			if leap > 0 {
				next.Pitch = notes[i].Pitch - 2
			} else {
				next.Pitch = notes[i].Pitch + 2
			}
			next.ModifiedBy |= score.ModLeap
		}
		byVoice[voice] = notes
	}
	return byVoice
}
