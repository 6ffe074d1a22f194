package validate

import "bachgen/score"

// voiceSeparationPass enforces that voices remain in their assigned register
// order (lower-numbered voice index sounds no lower than a higher-numbered
// one at any simultaneity) -- what spec.md 4.6 calls voice crossing. A
// crossing note with sufficient protection headroom is shifted an octave to
// restore order; otherwise it is left and will be counted by the analyzer.
// Grounded on original_source's voice_separation_repair.
func voiceSeparationPass(byVoice map[int][]score.NoteEvent, report *score.CounterpointReport) map[int][]score.NoteEvent {
	voices := voiceIndices(byVoice)
	for i := 0; i+1 < len(voices); i++ {
		upper := byVoice[voices[i]]
		lower := byVoice[voices[i+1]]
		n := len(upper)
		if len(lower) < n {
			n = len(lower)
		}
		for k := 0; k < n; k++ {
			if upper[k].StartTick != lower[k].StartTick {
				continue
			}
			if upper[k].Pitch >= lower[k].Pitch {
				continue
			}
			// crossing: upper voice sounds below lower voice.
			if report != nil {
				report.VoiceCrossingCount++
			}
			if allowed, _ := canShift(upper[k].Protection()); allowed && upper[k].Pitch+12 >= lower[k].Pitch {
				upper[k].Pitch += 12
				upper[k].ModifiedBy |= score.ModSeparation
				continue
			}
			if allowed, _ := canShift(lower[k].Protection()); allowed {
				lower[k].Pitch -= 12
				lower[k].ModifiedBy |= score.ModSeparation
			}
		}
		byVoice[voices[i]] = upper
		byVoice[voices[i+1]] = lower
	}
	return byVoice
}
