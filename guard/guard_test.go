package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bachgen/guard"
	"bachgen/instrument"
	"bachgen/score"
)

func TestRangePassTransposesOutOfRangeNote(t *testing.T) {
	model := instrument.ForKind(instrument.ChurchOrgan)
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 10, Voice: 0, Source: score.SourceFreeCounterpoint},
	}
	rep := &guard.Report{}
	out := guard.Run(notes, model, rep)
	require.Len(t, out, 1)
	assert.True(t, model.IsPitchPlayable(out[0].Pitch))
	assert.Equal(t, 1, rep.RangeRepairs)
}

func TestRangePassLeavesImmutableNotesAlone(t *testing.T) {
	model := instrument.ForKind(instrument.Violin)
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 5, Voice: 0, Source: score.SourceGroundBass},
	}
	rep := &guard.Report{}
	out := guard.Run(notes, model, rep)
	require.Len(t, out, 1)
	assert.Equal(t, 5, out[0].Pitch)
}

func TestSimultaneousPassDropsExcessOnFretted(t *testing.T) {
	model := instrument.ForKind(instrument.Guitar)
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 52, Voice: 0, Source: score.SourceFreeCounterpoint},
		{StartTick: 0, Duration: 480, Pitch: 59, Voice: 1, Source: score.SourceFreeCounterpoint},
	}
	rep := &guard.Report{}
	out := guard.Run(notes, model, rep)
	assert.LessOrEqual(t, len(out), model.MaxSimultaneous())
	assert.Greater(t, rep.SoundingConflicts, 0)
}

func TestRangePassSettlesPedalNoteTowardIdealRange(t *testing.T) {
	model := instrument.ForKind(instrument.ChurchOrgan)
	// pitch 60 is a fully playable manual pitch but sits outside the organ's
	// ideal pedal range [24, 50]; an octave down (48) lands inside it with
	// zero penalty, so the soft pedal-range pass should prefer it even
	// though the hard playability check alone would leave 60 untouched.
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 60, Voice: 0, Source: score.SourcePedalPoint},
	}
	rep := &guard.Report{}
	out := guard.Run(notes, model, rep)
	require.Len(t, out, 1)
	assert.Equal(t, 48, out[0].Pitch)
	assert.True(t, out[0].ModifiedBy.Has(score.ModGuardRange))
	assert.Equal(t, 1, rep.RangeRepairs)
}

func TestRangePassLeavesNonPedalNoteOutsidePedalRangeAlone(t *testing.T) {
	model := instrument.ForKind(instrument.ChurchOrgan)
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 60, Voice: 0, Source: score.SourceFreeCounterpoint},
	}
	rep := &guard.Report{}
	out := guard.Run(notes, model, rep)
	require.Len(t, out, 1)
	assert.Equal(t, 60, out[0].Pitch)
	assert.Equal(t, 0, rep.RangeRepairs)
}

func TestSimultaneousPassOctaveShiftsInfeasibleBowedDoubleStop(t *testing.T) {
	model := instrument.ForKind(instrument.Violin)
	// pitch 55 sits on the open low string, pitch 90 on the top string three
	// strings above -- not adjacent, so IsDoubleStopFeasible rejects the pairing. Structural
	// protection keeps the Flexible-drop step from resolving this first,
	// so the double-stop-specific octave shift (spec.md 4.8 step 2) runs.
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 55, Voice: 0, Source: score.SourcePedalPoint},
		{StartTick: 0, Duration: 480, Pitch: 90, Voice: 1, Source: score.SourcePedalPoint},
	}
	rep := &guard.Report{}
	out := guard.Run(notes, model, rep)
	require.Len(t, out, 2)
	assert.Greater(t, rep.SoundingConflicts, 0)
	shifted := false
	for _, n := range out {
		if n.ModifiedBy.Has(score.ModGuardSounding) {
			shifted = true
			assert.NotEqual(t, 55, n.Pitch, "the shifted note must have moved off its original pitch")
		}
	}
	assert.True(t, shifted)
}

func TestSimultaneousPassKeyboardVoicingDropsInnerNote(t *testing.T) {
	model := instrument.ForKind(instrument.Piano)
	// span 40-80 exceeds the piano's two-hand reach, and a piano has no pedal
	// range for the range pass to pull these PedalPoint notes into first.
	// Structural protection keeps the Flexible-drop step out of the way so SuggestPlayableVoicing
	// (spec.md 4.8 step 4) is what decides which note goes.
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 40, Voice: 0, Source: score.SourcePedalPoint},
		{StartTick: 0, Duration: 480, Pitch: 60, Voice: 1, Source: score.SourcePedalPoint},
		{StartTick: 0, Duration: 480, Pitch: 80, Voice: 2, Source: score.SourcePedalPoint},
	}
	rep := &guard.Report{}
	out := guard.Run(notes, model, rep)
	require.Len(t, out, 2)
	pitches := []int{out[0].Pitch, out[1].Pitch}
	assert.Contains(t, pitches, 40)
	assert.Contains(t, pitches, 80)
	assert.NotContains(t, pitches, 60)
}
