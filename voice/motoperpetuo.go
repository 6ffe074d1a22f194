package voice

import (
	"bachgen/rng"
	"bachgen/score"
)

// MotoPerpetuo fills [StartTick, EndTick) with an unbroken run of
// subdivisionTicks notes, each the nearest scale tone one or two steps from
// the last -- the toccata's continuous-sixteenth texture, grounded on
// original_source/.../toccata_perpetuus.cpp's unbroken-subdivision loop.
func MotoPerpetuo(c Context, subdivisionTicks int, src *rng.Source) []score.NoteEvent {
	var out []score.NoteEvent
	tick := c.StartTick
	degree := 0
	for tick < c.EndTick {
		ev, ok := c.Timeline.GetAt(tick)
		if !ok {
			break
		}
		scale := scaleOf(ev.Key)
		step := 1
		if src.Bool(0.2) {
			step = 2
		}
		if src.Bool(0.5) {
			step = -step
		}
		degree += step
		anchor := c.Register[0] + 7
		pitch := scale.AbsoluteDegreeToPitch(scale.PitchToAbsoluteDegree(anchor) + degree)
		dur := subdivisionTicks
		if tick+dur > c.EndTick {
			dur = c.EndTick - tick
		}
		out = append(out, note(c, tick, dur, pitch))
		tick += subdivisionTicks
	}
	return out
}
