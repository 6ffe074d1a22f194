// Package voice implements the melodic/bass primitives form generators
// compose into full voices: ScalePassage, Arpeggio, SustainedPad,
// WalkingBass, ThematicBass, MotoPerpetuo, MotifFortspinnung, and
// Imitation (spec.md 4.4). Each primitive consumes a harmonic context
// ([start_tick, end_tick), voice id, RNG) and returns a StartTick-sorted
// NoteEvent list. Grounded on the teacher's midi package melody/bass
// generators (GenerateMelody, GenerateBassLine, GenerateArpeggios),
// generalized from its song-specific note tables into timeline-driven
// generation.
package voice

import (
	"bachgen/score"
	"bachgen/theory"
	"bachgen/timeline"
)

// Context is the shared input every primitive reads from.
type Context struct {
	Timeline  *timeline.Timeline
	StartTick int
	EndTick   int
	Voice     int
	Register  [2]int // [low, high] comfortable pitch range for this voice
	Source    score.Source
}

func (c Context) clampToRegister(pitch int) int {
	for pitch < c.Register[0] {
		pitch += 12
	}
	for pitch > c.Register[1] {
		pitch -= 12
	}
	return pitch
}

func eventsIn(tl *timeline.Timeline, start, end int) []timeline.Event {
	var out []timeline.Event
	for _, ev := range tl.Events {
		if ev.EndTick <= start || ev.Tick >= end {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func scaleOf(key theory.Key) theory.Scale {
	t := theory.Major
	if key.Minor {
		t = theory.HarmonicMinor
	}
	return theory.Scale{Tonic: key.Tonic, Type: t}
}

func note(c Context, tick, dur, pitch int) score.NoteEvent {
	return score.NoteEvent{
		StartTick: tick,
		Duration:  dur,
		Pitch:     c.clampToRegister(pitch),
		Velocity:  defaultVelocity,
		Voice:     c.Voice,
		Source:    c.Source,
	}
}

const defaultVelocity = 80

// degreesToPitches realizes a catalog degree sequence against a scale,
// anchored so the first degree lands near anchor.
func degreesToPitches(scale theory.Scale, degrees []int, anchor int) []int {
	base := scale.PitchToAbsoluteDegree(anchor) - degrees[0]
	out := make([]int, len(degrees))
	for i, d := range degrees {
		out[i] = scale.AbsoluteDegreeToPitch(base + d)
	}
	return out
}
