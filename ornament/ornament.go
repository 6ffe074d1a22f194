// Package ornament expands eligible notes into trills, turns, mordents, and
// the harmonically-chosen compound ornaments after the main validation
// pass, per spec.md 4.7. Grounded on the teacher's midi.applyOrnamentation
// pass (probability-gated embellishment keyed off note duration),
// generalized from its fixed swing-eighth cases to the tempo-derived
// trill-speed rule and harmonic-context selection table spec.md specifies.
package ornament

import (
	"bachgen/rng"
	"bachgen/score"
	"bachgen/timeline"
)

// Kind enumerates the ornament shapes spec.md 4.7 names, including its two
// compound forms (trill+nachschlag, turn+trill).
type Kind int

const (
	KindTrill Kind = iota
	KindTurn
	KindMordent
	KindVorschlag
	KindTrillNachschlag
	KindTurnTrill
)

// Config controls ornament density and tempo-derived micro-note duration.
type Config struct {
	BeatsPerMinute float64
	Probability    float64 // chance any single eligible note is ornamented
}

// eligible reports whether a note is a candidate: its voice role is not
// Ground, its duration is at least an eighth note, and it isn't already
// ornamented (spec.md 4.7's eligibility rule).
func eligible(n score.NoteEvent) bool {
	return n.VoiceRole != score.Ground &&
		n.Duration >= timeline.TicksPerBeat/2 &&
		!n.ModifiedBy.Has(score.ModOrnamented)
}

// trillTickLength derives the micro-note duration from tempo: a 32nd note
// (60 ticks) at 96 BPM, scaled by 96/BPM so faster tempi yield shorter
// micro-notes in tick terms (more alternations per note), never shorter
// than 30 ticks (spec.md 4.7's tempo-derived speed rule).
func trillTickLength(bpm float64) int {
	if bpm <= 0 {
		bpm = 96
	}
	base := timeline.TicksPerBeat / 8
	scaled := int(float64(base) * (96.0 / bpm))
	if scaled < 30 {
		scaled = 30
	}
	return scaled
}

// Apply walks notes and, for each eligible one that the source RNG selects,
// expands it in place into its chosen ornament shape. The original note's
// StartTick is always preserved as the first micro-note's StartTick (an
// explicit invariant spec.md 4.7 calls out). tl supplies the harmonic
// context the selection table consults; a nil tl falls back to the
// metric-position defaults only, per spec.md 4.7.
func Apply(notes []score.NoteEvent, cfg Config, src *rng.Source, tl *timeline.Timeline) []score.NoteEvent {
	microTick := trillTickLength(cfg.BeatsPerMinute)
	out := make([]score.NoteEvent, 0, len(notes))
	for _, n := range notes {
		if !eligible(n) || !src.Bool(cfg.Probability) {
			out = append(out, n)
			continue
		}
		kind := selectKind(n, tl)
		out = append(out, expand(n, kind, microTick)...)
	}
	return out
}

// selectKind implements spec.md 4.7's selection table. When a harmonic
// context is available at the note's start tick, chord-tone membership and
// strong/weak beat position together pick the ornament; otherwise only the
// metric-position defaults apply.
func selectKind(n score.NoteEvent, tl *timeline.Timeline) Kind {
	strong := isStrongBeat(n.StartTick)
	if tl == nil {
		return metricDefault(n, strong)
	}
	ev, ok := tl.GetAt(n.StartTick)
	if !ok {
		return metricDefault(n, strong)
	}
	chordTone := ev.Chord.ContainsPitchClass(pitchClass(n.Pitch))
	switch {
	case chordTone && !strong:
		return KindTrill
	case chordTone && strong && n.Duration >= timeline.TicksPerBeat:
		return KindTrillNachschlag
	case !chordTone && strong:
		return KindVorschlag
	case !chordTone && !strong && n.Duration >= timeline.TicksPerBeat:
		return KindTurnTrill
	default:
		return metricDefault(n, strong)
	}
}

// metricDefault applies spec.md 4.7's fallback: strong beats prefer trill,
// weak beats prefer mordent, with turn as the fallback for a weak-beat note
// shorter than an eighth note.
func metricDefault(n score.NoteEvent, strong bool) Kind {
	if strong {
		return KindTrill
	}
	if n.Duration >= timeline.TicksPerBeat/2 {
		return KindMordent
	}
	return KindTurn
}

// isStrongBeat reports whether tick falls on beat 0 or beat 2 of a 4/4 bar
// (spec.md's glossary definition of "strong beat").
func isStrongBeat(tick int) bool {
	return tick%(2*timeline.TicksPerBeat) == 0
}

func pitchClass(pitch int) int {
	pc := pitch % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

// expand produces the micro-note sequence for one ornament, all tagged
// ModOrnamented and carrying the parent note's Source/Voice/Velocity.
func expand(n score.NoteEvent, kind Kind, microTick int) []score.NoteEvent {
	switch kind {
	case KindTrill:
		return trillNotes(n, microTick)
	case KindTurn:
		return turnNotes(n, microTick)
	case KindVorschlag:
		return vorschlagNotes(n, microTick)
	case KindTrillNachschlag:
		return trillNachschlagNotes(n, microTick)
	case KindTurnTrill:
		return turnTrillNotes(n, microTick)
	default:
		return mordentNotes(n, microTick)
	}
}

func micro(n score.NoteEvent, tick, pitch, dur int) score.NoteEvent {
	m := n
	m.StartTick = tick
	m.Pitch = pitch
	m.Duration = dur
	m.ModifiedBy |= score.ModOrnamented
	return m
}

// trillNotes alternates principal/upper-neighbor notes to fill the parent's
// duration, preserving the final micro-note's end tick against the parent's.
func trillNotes(n score.NoteEvent, microTick int) []score.NoteEvent {
	var out []score.NoteEvent
	tick := n.StartTick
	end := n.EndTick()
	upper := true
	for tick+microTick <= end {
		pitch := n.Pitch
		if upper {
			pitch = n.Pitch + 2
		}
		out = append(out, micro(n, tick, pitch, microTick))
		tick += microTick
		upper = !upper
	}
	if tick < end {
		out = append(out, micro(n, tick, n.Pitch, end-tick))
	}
	if len(out) == 0 {
		return []score.NoteEvent{n}
	}
	return out
}

// turnNotes plays upper-neighbor, principal, lower-neighbor, principal in
// four equal slices of the parent's duration.
func turnNotes(n score.NoteEvent, microTick int) []score.NoteEvent {
	slice := n.Duration / 4
	if slice < microTick {
		return []score.NoteEvent{n}
	}
	offsets := []int{2, 0, -1, 0}
	out := make([]score.NoteEvent, 0, 4)
	tick := n.StartTick
	for i, off := range offsets {
		dur := slice
		if i == 3 {
			dur = n.EndTick() - tick
		}
		out = append(out, micro(n, tick, n.Pitch+off, dur))
		tick += slice
	}
	return out
}

// mordentNotes plays principal, lower-neighbor, principal as a fast
// opening gesture followed by the remainder of the parent's duration.
func mordentNotes(n score.NoteEvent, microTick int) []score.NoteEvent {
	if n.Duration < microTick*3 {
		return []score.NoteEvent{n}
	}
	tick := n.StartTick
	out := []score.NoteEvent{
		micro(n, tick, n.Pitch, microTick),
		micro(n, tick+microTick, n.Pitch-1, microTick),
	}
	remaining := n.EndTick() - (tick + 2*microTick)
	out = append(out, micro(n, tick+2*microTick, n.Pitch, remaining))
	return out
}

// vorschlagNotes is a single accented grace note a step above the
// principal, taking a small slice of time from the front of the note
// (spec.md 4.7: non-chord tones on strong beats).
func vorschlagNotes(n score.NoteEvent, microTick int) []score.NoteEvent {
	if n.Duration < microTick*2 {
		return []score.NoteEvent{n}
	}
	return []score.NoteEvent{
		micro(n, n.StartTick, n.Pitch+1, microTick),
		micro(n, n.StartTick+microTick, n.Pitch, n.Duration-microTick),
	}
}

// trillNachschlagNotes plays a trill across the first three quarters of the
// note's duration, then closes with a two-note nachschlag turn (upper
// neighbor, principal) in the final quarter (spec.md 4.7: chord tones on
// strong beats at least a beat long).
func trillNachschlagNotes(n score.NoteEvent, microTick int) []score.NoteEvent {
	trillDur := n.Duration * 3 / 4
	if trillDur < microTick || n.Duration-trillDur < microTick*2 {
		return trillNotes(n, microTick)
	}
	trillPart := n
	trillPart.Duration = trillDur
	tailStart := n.StartTick + trillDur
	tailDur := n.EndTick() - tailStart
	half := tailDur / 2
	out := trillNotes(trillPart, microTick)
	out = append(out,
		micro(n, tailStart, n.Pitch+1, half),
		micro(n, tailStart+half, n.Pitch, tailDur-half),
	)
	return out
}

// turnTrillNotes plays a turn across the first third of the note's
// duration, then a trill for the remainder (spec.md 4.7: non-chord tones
// on weak beats with long duration).
func turnTrillNotes(n score.NoteEvent, microTick int) []score.NoteEvent {
	turnDur := n.Duration / 3
	if turnDur < microTick*4 {
		return turnNotes(n, microTick)
	}
	turnPart := n
	turnPart.Duration = turnDur
	trillPart := n
	trillPart.StartTick = n.StartTick + turnDur
	trillPart.Duration = n.EndTick() - trillPart.StartTick
	out := turnNotes(turnPart, microTick)
	out = append(out, trillNotes(trillPart, microTick)...)
	return out
}
