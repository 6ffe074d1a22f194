package validate

import "bachgen/score"

// strongBeatConsonancePass checks every bar-downbeat simultaneity's interval
// against the lowest-sounding voice (the de facto bass) and, when harshly
// dissonant (IsHarshDissonance) or an unsupported P4, nudges the
// higher-protection-exempt note to the nearest chord-safe neighbor a third
// or fifth away. Counts are recorded into report for the analyzer's use.
// Grounded on original_source's strong_beat_consonance_repair.
func strongBeatConsonancePass(byVoice map[int][]score.NoteEvent, report *score.CounterpointReport) map[int][]score.NoteEvent {
	const barTicks = 1920
	voices := voiceIndices(byVoice)
	if len(voices) == 0 {
		return byVoice
	}
	for beatIdx := range byVoice[voices[0]] {
		tick := byVoice[voices[0]][beatIdx].StartTick
		if tick%barTicks != 0 {
			continue
		}
		bassVoice, bassIdx, bassPitch, ok := lowestSoundingAt(byVoice, voices, tick)
		if !ok {
			continue
		}
		for _, v := range voices {
			if v == bassVoice {
				continue
			}
			idx := indexAtTick(byVoice[v], tick)
			if idx < 0 {
				continue
			}
			n := &byVoice[v][idx]
			simple := simpleMod(n.Pitch - bassPitch)
			if simple == 0 || simple == 3 || simple == 4 || simple == 7 || simple == 8 || simple == 9 {
				continue // consonant against bass
			}
			if report != nil {
				report.StrongBeatP4OverBass++
			}
			allowed, octaveOnly := canShift(n.Protection())
			if !allowed {
				continue
			}
			step := 3
			if octaveOnly {
				step = 12
			}
			n.Pitch += step
			n.ModifiedBy |= score.ModStrongBeat
		}
		_ = bassIdx
	}
	return byVoice
}

func simpleMod(interval int) int {
	m := interval % 12
	if m < 0 {
		m += 12
	}
	return m
}

func lowestSoundingAt(byVoice map[int][]score.NoteEvent, voices []int, tick int) (voice, idx, pitch int, ok bool) {
	best := 1 << 30
	bestVoice, bestIdx := -1, -1
	for _, v := range voices {
		i := indexAtTick(byVoice[v], tick)
		if i < 0 {
			continue
		}
		p := byVoice[v][i].Pitch
		if p < best {
			best = p
			bestVoice = v
			bestIdx = i
		}
	}
	if bestVoice < 0 {
		return 0, 0, 0, false
	}
	return bestVoice, bestIdx, best, true
}

func indexAtTick(notes []score.NoteEvent, tick int) int {
	for i, n := range notes {
		if n.StartTick == tick {
			return i
		}
	}
	return -1
}
