// Package validate implements the ordered, idempotent repair-pass pipeline
// spec.md 4.6 specifies: non-harmonic-tone repair, parallel-perfect repair,
// leap resolution, voice separation, diatonic enforcement, strong-beat
// consonance, and repeated-pitch avoidance. Each pass only rewrites notes up
// to the protection level their provenance allows. Grounded on the ad-hoc
// "post-validate" passes the spec.md 9 design note says the original
// scatters across form generators, collected here into one named, ordered
// policy, and on original_source's corresponding *_repair functions cited
// per-file below.
package validate

import (
	"bachgen/score"
	"bachgen/timeline"
)

// ByVoice groups a flat note list by voice index, each sub-slice sorted by
// start tick -- the shape most passes operate on.
func ByVoice(notes []score.NoteEvent) map[int][]score.NoteEvent {
	out := map[int][]score.NoteEvent{}
	for _, n := range notes {
		out[n.Voice] = append(out[n.Voice], n)
	}
	for v := range out {
		sortByTick(out[v])
	}
	return out
}

func sortByTick(notes []score.NoteEvent) {
	for i := 1; i < len(notes); i++ {
		for j := i; j > 0 && notes[j-1].StartTick > notes[j].StartTick; j-- {
			notes[j-1], notes[j] = notes[j], notes[j-1]
		}
	}
}

func flatten(byVoice map[int][]score.NoteEvent) []score.NoteEvent {
	var out []score.NoteEvent
	for _, notes := range byVoice {
		out = append(out, notes...)
	}
	return out
}

// Stack is the fixed-order validation pipeline. MajorMode gates the
// diatonic-enforcement pass (spec.md 4.6.5: minor-mode pieces skip it).
type Stack struct {
	MajorMode bool
	MaxIterations int // parallel-perfect repair iteration bound, default 3 when 0
	Report    *score.CounterpointReport
}

// Run executes all seven passes, in order, once.
func (st *Stack) Run(notes []score.NoteEvent, tl *timeline.Timeline) []score.NoteEvent {
	byVoice := ByVoice(notes)
	byVoice = nonHarmonicTonePass(byVoice, tl)
	byVoice = parallelPerfectPass(byVoice, st.maxIter(), st.Report)
	byVoice = leapResolutionPass(byVoice)
	byVoice = voiceSeparationPass(byVoice, st.Report)
	if st.MajorMode {
		byVoice = diatonicEnforcementPass(byVoice, tl)
	}
	byVoice = strongBeatConsonancePass(byVoice, st.Report)
	byVoice = repeatedPitchPass(byVoice)
	return flatten(byVoice)
}

// RerunAfterOrnaments runs the subset spec.md 4.7 requires after ornament
// expansion: parallel repair, leap resolution, and strong-beat consonance.
func (st *Stack) RerunAfterOrnaments(notes []score.NoteEvent) []score.NoteEvent {
	byVoice := ByVoice(notes)
	byVoice = parallelPerfectPass(byVoice, st.maxIter(), st.Report)
	byVoice = leapResolutionPass(byVoice)
	byVoice = strongBeatConsonancePass(byVoice, st.Report)
	return flatten(byVoice)
}

func (st *Stack) maxIter() int {
	if st.MaxIterations <= 0 {
		return 3
	}
	return st.MaxIterations
}

// canShift reports whether a pitch-changing pass may act at all, and
// whether it may only shift by octave (degree shift forbidden) under the
// protection-level gating table of spec.md 4.6.
func canShift(p score.Protection) (allowed, octaveOnly bool) {
	switch p {
	case score.Immutable:
		return false, false
	case score.SemiImmutable:
		return true, true
	case score.Structural:
		return true, true // octave shifts only; no pass here applies a degree shift to these notes
	default:
		return true, false
	}
}
