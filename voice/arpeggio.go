package voice

import (
	"bachgen/rng"
	"bachgen/score"
)

// Arpeggio breaks each harmonic event's chord into a repeating
// root-third-fifth[-seventh] figure at noteTicks resolution. Grounded on
// the teacher's midi.GenerateArpeggios broken-chord pattern.
func Arpeggio(c Context, noteTicks int, src *rng.Source) []score.NoteEvent {
	var out []score.NoteEvent
	tick := c.StartTick
	patternIdx := 0
	for tick < c.EndTick {
		ev, ok := c.Timeline.GetAt(tick)
		if !ok {
			break
		}
		tones := ev.Chord.Tones()
		pc := tones[patternIdx%len(tones)]
		anchor := c.Register[0] + 7
		pitch := nearestPitchForClass(anchor, pc)
		dur := noteTicks
		if tick+dur > c.EndTick {
			dur = c.EndTick - tick
		}
		out = append(out, note(c, tick, dur, pitch))
		tick += noteTicks
		patternIdx++
		if src.Bool(0.1) {
			patternIdx++ // occasional skip keeps the figure from feeling mechanical
		}
	}
	return out
}

// nearestPitchForClass finds the octave of pitch class pc nearest anchor.
func nearestPitchForClass(anchor, pc int) int {
	base := (anchor/12)*12 + pc
	best := base
	bestDist := abs(base - anchor)
	for _, cand := range []int{base - 12, base + 12} {
		if d := abs(cand - anchor); d < bestDist {
			best = cand
			bestDist = d
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
