package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bachgen/score"
	"bachgen/theory"
	"bachgen/timeline"
	"bachgen/validate"
)

func cMajorTimeline(t *testing.T, bars int) *timeline.Timeline {
	t.Helper()
	key := theory.Key{Tonic: 0, Minor: false}
	return timeline.CreateStandard(key, bars*timeline.TicksPerBar, timeline.ResolutionBar)
}

func TestNonHarmonicToneSnapsStrongBeat(t *testing.T) {
	tl := cMajorTimeline(t, 1)
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 61, Voice: 0, Source: score.SourceFreeCounterpoint},
		{StartTick: 0, Duration: 1920, Pitch: 36, Voice: 1, Source: score.SourcePedalPoint},
	}
	st := &validate.Stack{MajorMode: true, Report: &score.CounterpointReport{}}
	out := st.Run(notes, tl)
	require.Len(t, out, 2)
	ev, _ := tl.GetAt(0)
	byVoice := validate.ByVoice(out)
	assert.True(t, ev.Chord.ContainsPitchClass(byVoice[0][0].Pitch%12))
}

func TestNonHarmonicToneAcceptsPassingToneOnWeakBeat(t *testing.T) {
	tl := cMajorTimeline(t, 1)
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 240, Pitch: 60, Voice: 0, Source: score.SourceFreeCounterpoint},
		{StartTick: 240, Duration: 240, Pitch: 62, Voice: 0, Source: score.SourceFreeCounterpoint},
		{StartTick: 480, Duration: 240, Pitch: 64, Voice: 0, Source: score.SourceFreeCounterpoint},
		{StartTick: 0, Duration: 1920, Pitch: 36, Voice: 1, Source: score.SourcePedalPoint},
	}
	st := &validate.Stack{MajorMode: true, Report: &score.CounterpointReport{}}
	out := st.Run(notes, tl)
	byVoice := validate.ByVoice(out)
	assert.Equal(t, 62, byVoice[0][1].Pitch, "a diatonic passing tone between two chord tones is left alone")
}

func TestParallelFifthsAreBroken(t *testing.T) {
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 60, Voice: 0, Source: score.SourceFreeCounterpoint},
		{StartTick: 480, Duration: 480, Pitch: 62, Voice: 0, Source: score.SourceFreeCounterpoint},
		{StartTick: 0, Duration: 480, Pitch: 67, Voice: 1, Source: score.SourceFreeCounterpoint},
		{StartTick: 480, Duration: 480, Pitch: 69, Voice: 1, Source: score.SourceFreeCounterpoint},
	}
	report := &score.CounterpointReport{}
	st := &validate.Stack{MajorMode: true, Report: report}
	tl := cMajorTimeline(t, 1)
	out := st.Run(notes, tl)
	byVoice := validate.ByVoice(out)
	v0 := byVoice[0]
	v1 := byVoice[1]
	interval := ((v1[1].Pitch - v0[1].Pitch) % 12 + 12) % 12
	assert.NotEqual(t, 0, interval)
	assert.Greater(t, report.ParallelPerfectCount, 0)
}

func TestRepeatedPitchRunIsBroken(t *testing.T) {
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 64, Voice: 0, Source: score.SourceFreeCounterpoint},
		{StartTick: 480, Duration: 480, Pitch: 64, Voice: 0, Source: score.SourceFreeCounterpoint},
		{StartTick: 960, Duration: 480, Pitch: 64, Voice: 0, Source: score.SourceFreeCounterpoint},
		{StartTick: 1440, Duration: 480, Pitch: 64, Voice: 0, Source: score.SourceFreeCounterpoint},
	}
	st := &validate.Stack{Report: &score.CounterpointReport{}}
	out := st.Run(notes, cMajorTimeline(t, 1))
	require.Len(t, out, 4)
	assert.NotEqual(t, out[0].Pitch, out[1].Pitch, "a back-to-back repeat must already be broken on the second note")
	assert.NotEqual(t, out[1].Pitch, out[2].Pitch)
	assert.NotEqual(t, out[2].Pitch, out[3].Pitch)
}

func TestRepeatedPitchShiftBiasesTowardVoiceCenter(t *testing.T) {
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 50, Voice: 0, Source: score.SourceFreeCounterpoint},
		{StartTick: 480, Duration: 480, Pitch: 72, Voice: 0, Source: score.SourceFreeCounterpoint},
		{StartTick: 960, Duration: 480, Pitch: 72, Voice: 0, Source: score.SourceFreeCounterpoint},
	}
	st := &validate.Stack{Report: &score.CounterpointReport{}}
	out := st.Run(notes, cMajorTimeline(t, 1))
	byVoice := validate.ByVoice(out)
	// center of {50, 72, 72} is well below 72, so the repeated note should
	// be pulled down, not nudged further up.
	assert.Less(t, byVoice[0][2].Pitch, 72)
}

func TestImmutableNotesAreNeverShifted(t *testing.T) {
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 61, Voice: 0, Source: score.SourceGroundBass},
	}
	st := &validate.Stack{MajorMode: true, Report: &score.CounterpointReport{}}
	out := st.Run(notes, cMajorTimeline(t, 1))
	require.Len(t, out, 1)
	assert.Equal(t, 61, out[0].Pitch)
}

func TestVoiceSeparationFixesCrossing(t *testing.T) {
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 55, Voice: 0, Source: score.SourceFreeCounterpoint},
		{StartTick: 0, Duration: 480, Pitch: 60, Voice: 1, Source: score.SourceFreeCounterpoint},
	}
	report := &score.CounterpointReport{}
	st := &validate.Stack{Report: report}
	result := st.Run(notes, cMajorTimeline(t, 1))
	byResult := validate.ByVoice(result)
	assert.GreaterOrEqual(t, byResult[0][0].Pitch, byResult[1][0].Pitch)
	assert.Greater(t, report.VoiceCrossingCount, 0)
}
