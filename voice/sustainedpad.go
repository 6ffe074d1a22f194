package voice

import "bachgen/score"

// SustainedPad holds one note per harmonic event for its full duration,
// choosing the chord tone nearest the voice's register center -- the
// slow-moving inner-voice texture spec.md 4.4 asks for alongside the
// faster primitives. Grounded on the teacher's midi.chooseChordTone used
// for sustained pad voicing.
func SustainedPad(c Context) []score.NoteEvent {
	var out []score.NoteEvent
	center := (c.Register[0] + c.Register[1]) / 2
	for _, ev := range c.Timeline.Events {
		start := ev.Tick
		end := ev.EndTick
		if end <= c.StartTick || start >= c.EndTick {
			continue
		}
		if start < c.StartTick {
			start = c.StartTick
		}
		if end > c.EndTick {
			end = c.EndTick
		}
		pitch := ev.Chord.NearestChordTone(center)
		out = append(out, note(c, start, end-start, pitch))
	}
	return out
}
