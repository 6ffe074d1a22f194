package voice

import (
	"bachgen/catalog"
	"bachgen/rng"
	"bachgen/score"
)

// WalkingBass fills each harmonic event with quarter-note steps: chord
// root on the downbeat, then scale or chromatic approach-tone motion
// toward the next event's root, the "walking"/"swing_walking" pattern
// grounded on the teacher's midi.GenerateBassLine.
func WalkingBass(c Context, src *rng.Source) []score.NoteEvent {
	const step = 480
	var out []score.NoteEvent
	for i, ev := range c.Timeline.Events {
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
		nextRootPitch := ev.Bass
		if i+1 < len(c.Timeline.Events) {
			nextRootPitch = c.Timeline.Events[i+1].Bass
		}
		tick := start
		beat := 0
		for tick < end {
			dur := step
			if tick+dur > end {
				dur = end - tick
			}
			pitch := ev.Bass
			switch {
			case beat == 0:
				pitch = ev.Bass
			case tick+step >= end:
				pitch = approachTone(ev.Bass, nextRootPitch, src)
			default:
				pitch = ev.Chord.NearestChordTone(ev.Bass + src.Range(-4, 4))
			}
			out = append(out, note(c, tick, dur, pitch))
			tick += step
			beat++
		}
	}
	return out
}

// approachTone picks a chromatic or diatonic step toward target, the
// penultimate-beat approach-note convention walking bass lines use.
func approachTone(from, target int, src *rng.Source) int {
	if target == from {
		return from
	}
	if target > from {
		if src.Bool(0.5) {
			return target - 1
		}
		return target - 2
	}
	if src.Bool(0.5) {
		return target + 1
	}
	return target + 2
}

// ThematicBass restates a catalog motif in the bass register, either
// augmented (doubled durations, spanning more of the timeline) or
// transposed down an octave from its melodic statement -- the ground-bass
// companion voice spec.md 4.4 and 5.2's Passacaglia lean on. Grounded on
// original_source's thematic_bass generator, which performs the same
// augment-or-transpose choice.
func ThematicBass(c Context, motif catalog.Motif, augmented bool, src *rng.Source) []score.NoteEvent {
	ev, ok := c.Timeline.GetAt(c.StartTick)
	if !ok {
		return nil
	}
	scale := scaleOf(ev.Key)
	anchor := c.Register[0] + 7
	pitches := degreesToPitches(scale, motif.DegreeSequence, anchor)
	ticks := motif.NoteTicks
	if augmented {
		ticks = catalog.Augment(ticks)
	}

	var out []score.NoteEvent
	tick := c.StartTick
	i := 0
	for tick < c.EndTick {
		dur := ticks
		if tick+dur > c.EndTick {
			dur = c.EndTick - tick
		}
		pitch := pitches[i%len(pitches)]
		if src.Bool(0.05) {
			pitch -= 12 // occasional octave drop keeps a long restatement grounded
		}
		out = append(out, note(c, tick, dur, pitch))
		tick += ticks
		i++
	}
	return out
}
