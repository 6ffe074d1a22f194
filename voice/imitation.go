package voice

import (
	"bachgen/catalog"
	"bachgen/score"
)

// Transform is one of the four restatement kinds spec.md 4.4's Imitation
// primitive supports, grounded on the distinct subject-restatement
// functions scattered across original_source's chorale_prelude.cpp and
// toccata_affinity.cpp (answer-at-the-fifth, contrary motion, augmentation,
// diminution) and unified here into one enum-dispatched primitive.
type Transform int

const (
	TransformExact Transform = iota
	TransformInversion
	TransformAugmentation
	TransformDiminution
)

// Imitation restates motif starting at StartTick under the given Transform,
// entering at entryDelay ticks after StartTick (the canonic-entry offset a
// following voice imitates at).
func Imitation(c Context, motif catalog.Motif, tr Transform, entryDelay int) []score.NoteEvent {
	ev, ok := c.Timeline.GetAt(c.StartTick)
	if !ok {
		return nil
	}
	scale := scaleOf(ev.Key)
	anchor := c.Register[0] + 7

	degrees := motif.DegreeSequence
	noteTicks := motif.NoteTicks
	switch tr {
	case TransformInversion:
		degrees = catalog.Invert(degrees)
	case TransformAugmentation:
		noteTicks = catalog.Augment(noteTicks)
	case TransformDiminution:
		noteTicks = catalog.Diminish(noteTicks)
	}

	pitches := degreesToPitches(scale, degrees, anchor)
	var out []score.NoteEvent
	tick := c.StartTick + entryDelay
	for _, pitch := range pitches {
		if tick >= c.EndTick {
			break
		}
		dur := noteTicks
		if tick+dur > c.EndTick {
			dur = c.EndTick - tick
		}
		out = append(out, note(c, tick, dur, pitch))
		tick += noteTicks
	}
	return out
}
