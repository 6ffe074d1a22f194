package voice

import (
	"bachgen/catalog"
	"bachgen/rng"
	"bachgen/score"
)

// MotifFortspinnung states motif once, then spins it out through a chain of
// sequenced restatements (each transposed by a scale step from the last)
// until [StartTick, EndTick) is filled -- the call-then-spin-out phrase
// shape, grounded on the teacher's generateCallPhrase/generateResolutionPhrase
// pair, generalized from its two fixed phrases into an arbitrary-length
// sequence chain.
func MotifFortspinnung(c Context, motif catalog.Motif, src *rng.Source) []score.NoteEvent {
	ev, ok := c.Timeline.GetAt(c.StartTick)
	if !ok {
		return nil
	}
	if len(motif.DegreeSequence) == 0 {
		return nil
	}
	scale := scaleOf(ev.Key)
	anchor := c.Register[0] + 7
	sequenceStep := 0

	var out []score.NoteEvent
	tick := c.StartTick
	for tick < c.EndTick {
		pitches := degreesToPitches(scale, motif.DegreeSequence, anchor+sequenceStep)
		for _, pitch := range pitches {
			if tick >= c.EndTick {
				break
			}
			dur := motif.NoteTicks
			if tick+dur > c.EndTick {
				dur = c.EndTick - tick
			}
			out = append(out, note(c, tick, dur, pitch))
			tick += motif.NoteTicks
		}
		if src.Bool(0.5) {
			sequenceStep -= 2 // descending sequence, the common fortspinnung direction
		} else {
			sequenceStep -= 1
		}
	}
	return out
}
