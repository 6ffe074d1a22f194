// Package guard implements the impossibility guard: a final pass ensuring
// no instrument is asked to play something it physically cannot, per
// spec.md 4.8. Grounded on original_source/src/instrument/common/
// impossibility_guard.cpp, which runs the same two-stage range-then-
// simultaneous-sounding sweep before handing a score to the renderer.
package guard

import (
	"sort"

	"bachgen/instrument"
	"bachgen/score"
	"bachgen/timeline"
	"bachgen/warn"
)

// Report counts what the guard had to repair, surfaced for callers that
// want to know how aggressively a voice assignment had to be corrected.
type Report struct {
	RangeRepairs      int
	SoundingConflicts int
	Dropped           int
}

// Run repairs a score's notes (all voices together, as the form generators
// pass them) against one instrument model: out-of-
// range notes are octave-transposed into range (dropped if no octave fits),
// then a sweep-line pass enforces the instrument family's simultaneous-
// sounding rule (spec.md 4.8).
func Run(notes []score.NoteEvent, model instrument.ModelEnsemble, rep *Report) []score.NoteEvent {
	notes = rangePass(notes, model, rep)
	notes = simultaneousPass(notes, model, rep)
	return notes
}

// rangePass octave-shifts any note the model can't sound into range;
// notes that still don't fit after a bounded octave search are dropped
// with a warning, grounded on the original's drop-and-warn fallback. Pedal-
// sourced notes get a second, softer pass: if the model distinguishes a
// narrower pedal range (organs), a note that's technically playable but
// sits outside that ideal range is nudged toward it rather than left put.
func rangePass(notes []score.NoteEvent, model instrument.ModelEnsemble, rep *Report) []score.NoteEvent {
	pedal, _ := model.(instrument.PedalAware)
	out := make([]score.NoteEvent, 0, len(notes))
	for _, n := range notes {
		if !model.IsPitchPlayable(n.Pitch) {
			allowed, _ := canShift(n.Protection())
			if !allowed {
				warn.Emit("guard", "leaving unplayable immutable note intact pitch=%d voice=%d", n.Pitch, n.Voice)
				out = append(out, n) // immutable notes pass through unrepaired
				continue
			}
			fixed, ok := nearestPlayableOctave(n.Pitch, model)
			if !ok {
				warn.Emit("guard", "dropping unplayable note pitch=%d voice=%d", n.Pitch, n.Voice)
				if rep != nil {
					rep.Dropped++
				}
				continue
			}
			n.Pitch = fixed
			n.ModifiedBy |= score.ModGuardRange
			if rep != nil {
				rep.RangeRepairs++
			}
			out = append(out, n)
			continue
		}
		if pedal != nil && isPedalVoice(n) {
			n = settlePedalRange(n, model, pedal, rep)
		}
		out = append(out, n)
	}
	return out
}

// isPedalVoice reports whether a note's provenance marks it as belonging to
// the pedal line, the only voice kind the pedal's narrower ideal range
// applies to.
func isPedalVoice(n score.NoteEvent) bool {
	return n.Source == score.SourcePedalPoint || n.Source == score.SourceGroundBass
}

// settlePedalRange nudges a pedal note that already passes the hard
// playability check toward the pedalboard's softly-penalized ideal range
// (spec.md's adaptation of pedal_constraints.h): it octave-shifts to
// whichever playable candidate minimizes the penalty, leaving the note
// alone if nothing nearby is better or the note can't be shifted.
func settlePedalRange(n score.NoteEvent, model instrument.ModelEnsemble, pedal instrument.PedalAware, rep *Report) score.NoteEvent {
	cost := pedal.PedalPenalty(n.Pitch)
	if cost == 0 {
		return n
	}
	allowed, _ := canShift(n.Protection())
	if !allowed {
		return n
	}
	best, bestCost := n.Pitch, cost
	for oct := 1; oct <= 4; oct++ {
		for _, cand := range [2]int{n.Pitch + 12*oct, n.Pitch - 12*oct} {
			if !model.IsPitchPlayable(cand) {
				continue
			}
			if c := pedal.PedalPenalty(cand); c < bestCost {
				best, bestCost = cand, c
			}
		}
	}
	if best != n.Pitch {
		n.Pitch = best
		n.ModifiedBy |= score.ModGuardRange
		if rep != nil {
			rep.RangeRepairs++
		}
	}
	return n
}

func nearestPlayableOctave(pitch int, model instrument.ModelEnsemble) (int, bool) {
	for oct := 1; oct <= 6; oct++ {
		if up := pitch + 12*oct; model.IsPitchPlayable(up) {
			return up, true
		}
		if down := pitch - 12*oct; model.IsPitchPlayable(down) {
			return down, true
		}
	}
	return 0, false
}

func canShift(p score.Protection) (bool, bool) {
	switch p {
	case score.Immutable:
		return false, false
	default:
		return true, true
	}
}

// simultaneousPass sweeps start ticks in order and, at each boundary where
// the family-specific feasibility rule is violated, repairs the sounding
// group in spec.md 4.8's stated order: drop Flexible notes ascending by
// protection, then fall through to the family-specific strategy (bowed
// double-stop octave shift or tiny-offset arpeggiation, keyboard suggested
// voicing).
func simultaneousPass(notes []score.NoteEvent, model instrument.ModelEnsemble, rep *Report) []score.NoteEvent {
	sorted := append([]score.NoteEvent(nil), notes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StartTick < sorted[j].StartTick })

	family := model.Kind().Family()
	dropped := map[int]bool{}
	for i := range sorted {
		if dropped[i] {
			continue
		}
		active := []int{i}
		for j := i + 1; j < len(sorted); j++ {
			if dropped[j] {
				continue
			}
			if sorted[j].StartTick >= sorted[i].EndTick() {
				break
			}
			active = append(active, j)
		}
		if len(active) <= 1 {
			continue
		}
		repairGroup(sorted, active, dropped, family, model, rep)
	}

	out := make([]score.NoteEvent, 0, len(sorted))
	for i, n := range sorted {
		if dropped[i] {
			continue
		}
		out = append(out, n)
	}
	return out
}

func pitchesOf(sorted []score.NoteEvent, idxs []int) []int {
	out := make([]int, len(idxs))
	for i, idx := range idxs {
		out[i] = sorted[idx].Pitch
	}
	return out
}

// violatesFamily reports whether the given simultaneously-sounding pitch
// set breaks the instrument family's feasibility rule (spec.md 4.8).
func violatesFamily(family instrument.Family, model instrument.ModelEnsemble, pitches []int) bool {
	switch family {
	case instrument.FamilyBowed:
		switch {
		case len(pitches) > 2:
			return true
		case len(pitches) == 2:
			return !model.IsDoubleStopFeasible(pitches[0], pitches[1])
		default:
			return false
		}
	case instrument.FamilyKeyboard:
		if len(pitches) <= 1 {
			return false
		}
		return len(model.SuggestPlayableVoicing(pitches)) < len(pitches)
	default: // fretted and anything else: a flat simultaneous-note count
		return len(pitches) > model.MaxSimultaneous()
	}
}

// repairGroup applies spec.md 4.8's repair order to one sounding group:
// drop Flexible notes ascending by protection until the violation clears,
// then escalate to the instrument family's specific strategy.
func repairGroup(sorted []score.NoteEvent, active []int, dropped map[int]bool, family instrument.Family, model instrument.ModelEnsemble, rep *Report) {
	remaining := append([]int(nil), active...)
	if !violatesFamily(family, model, pitchesOf(sorted, remaining)) {
		return
	}

	sort.SliceStable(remaining, func(a, b int) bool {
		return sorted[remaining[a]].Protection() < sorted[remaining[b]].Protection()
	})
	for len(remaining) > 1 && sorted[remaining[0]].Protection() == score.Flexible &&
		violatesFamily(family, model, pitchesOf(sorted, remaining)) {
		idx := remaining[0]
		dropped[idx] = true
		remaining = remaining[1:]
		if rep != nil {
			rep.SoundingConflicts++
			rep.Dropped++
		}
	}
	if !violatesFamily(family, model, pitchesOf(sorted, remaining)) {
		markRepaired(sorted, remaining)
		return
	}

	switch family {
	case instrument.FamilyBowed:
		repairBowed(sorted, remaining, dropped, model, rep)
	case instrument.FamilyKeyboard:
		repairKeyboard(sorted, remaining, dropped, model, rep)
	default:
		dropExcess(sorted, remaining, dropped, rep, model.MaxSimultaneous())
	}
}

// repairBowed implements spec.md 4.8's steps 2-3 for bowed instruments: an
// infeasible two-note double stop is repaired by octave-shifting the
// lower-priority note; three or more sounding notes are converted into a
// tiny-offset arpeggio, skipping structural-or-higher notes sitting on a
// beat head. Either strategy falling through drops the lowest-priority
// excess instead.
func repairBowed(sorted []score.NoteEvent, remaining []int, dropped map[int]bool, model instrument.ModelEnsemble, rep *Report) {
	if len(remaining) == 2 {
		pitches := pitchesOf(sorted, remaining)
		if !model.IsDoubleStopFeasible(pitches[0], pitches[1]) {
			target := remaining[0] // lowest protection, sorted ascending above
			if allowed, _ := canShift(sorted[target].Protection()); allowed {
				if shifted, ok := nearestPlayableOctave(sorted[target].Pitch, model); ok {
					sorted[target].Pitch = shifted
					sorted[target].ModifiedBy |= score.ModGuardSounding
					if rep != nil {
						rep.SoundingConflicts++
					}
					return
				}
			}
			dropExcess(sorted, remaining, dropped, rep, 1)
		}
		return
	}

	offsets := []int{1, 2, 3}
	applied := 0
	for _, idx := range remaining {
		if applied >= len(offsets) {
			break
		}
		n := &sorted[idx]
		onBeatHead := n.StartTick%timeline.TicksPerBeat == 0
		if onBeatHead && n.Protection() >= score.Structural {
			continue
		}
		n.StartTick += offsets[applied]
		n.ModifiedBy |= score.ModGuardSounding
		applied++
	}
	if applied == 0 {
		dropExcess(sorted, remaining, dropped, rep, 2)
		return
	}
	if rep != nil {
		rep.SoundingConflicts++
	}
}

// repairKeyboard implements spec.md 4.8's step 4: request a suggested
// playable voicing from the keyboard model, then map its surviving pitches
// back onto the existing notes in ascending-pitch order, dropping whatever
// didn't survive.
func repairKeyboard(sorted []score.NoteEvent, remaining []int, dropped map[int]bool, model instrument.ModelEnsemble, rep *Report) {
	voiced := model.SuggestPlayableVoicing(pitchesOf(sorted, remaining))
	keep := map[int]int{}
	for _, p := range voiced {
		keep[p]++
	}

	byPitch := append([]int(nil), remaining...)
	sort.SliceStable(byPitch, func(a, b int) bool { return sorted[byPitch[a]].Pitch < sorted[byPitch[b]].Pitch })
	for _, idx := range byPitch {
		p := sorted[idx].Pitch
		if keep[p] > 0 {
			keep[p]--
			sorted[idx].ModifiedBy |= score.ModGuardSounding
			continue
		}
		dropped[idx] = true
		if rep != nil {
			rep.SoundingConflicts++
			rep.Dropped++
		}
	}
}

// dropExcess drops remaining[:len(remaining)-limit] (remaining is already
// sorted ascending by protection, so the lowest-priority notes go first)
// and marks the survivors repaired.
func dropExcess(sorted []score.NoteEvent, remaining []int, dropped map[int]bool, rep *Report, limit int) {
	if limit < 0 {
		limit = 0
	}
	if len(remaining) <= limit {
		markRepaired(sorted, remaining)
		return
	}
	for _, idx := range remaining[:len(remaining)-limit] {
		dropped[idx] = true
		if rep != nil {
			rep.SoundingConflicts++
			rep.Dropped++
		}
	}
	markRepaired(sorted, remaining[len(remaining)-limit:])
}

func markRepaired(sorted []score.NoteEvent, idxs []int) {
	for _, idx := range idxs {
		sorted[idx].ModifiedBy |= score.ModGuardSounding
	}
}
