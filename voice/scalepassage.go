package voice

import (
	"bachgen/rng"
	"bachgen/score"
)

// ScalePassage fills [StartTick, EndTick) with stepwise scale motion at
// noteTicks resolution, each step chosen by a short random walk (one scale
// step on in the current direction, which reverses with probability 0.3),
// folded by octaves into the voice's register. Grounded
// on the teacher's midi.GenerateMelody scale-step walk.
func ScalePassage(c Context, noteTicks int, src *rng.Source) []score.NoteEvent {
	var out []score.NoteEvent
	tick := c.StartTick
	degree := 0
	dir := 1
	for tick < c.EndTick {
		ev, ok := c.Timeline.GetAt(tick)
		if !ok {
			break
		}
		scale := scaleOf(ev.Key)
		if src.Bool(0.3) {
			dir = -dir
		}
		degree += dir
		pitch := scale.AbsoluteDegreeToPitch(scale.PitchToAbsoluteDegree(c.Register[0]+7) + degree)
		dur := noteTicks
		if tick+dur > c.EndTick {
			dur = c.EndTick - tick
		}
		out = append(out, note(c, tick, dur, pitch))
		tick += noteTicks
	}
	return out
}
