package voice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bachgen/catalog"
	"bachgen/rng"
	"bachgen/score"
	"bachgen/theory"
	"bachgen/timeline"
	"bachgen/voice"
)

func testTimeline(t *testing.T) *timeline.Timeline {
	t.Helper()
	key := theory.Key{Tonic: 0, Minor: false}
	return timeline.CreateStandard(key, 2*timeline.TicksPerBar, timeline.ResolutionBar)
}

func baseContext(tl *timeline.Timeline) voice.Context {
	return voice.Context{
		Timeline:  tl,
		StartTick: 0,
		EndTick:   2 * timeline.TicksPerBar,
		Voice:     0,
		Register:  [2]int{55, 79},
		Source:    score.SourceFreeCounterpoint,
	}
}

func assertSorted(t *testing.T, notes []score.NoteEvent) {
	t.Helper()
	for i := 1; i < len(notes); i++ {
		assert.LessOrEqual(t, notes[i-1].StartTick, notes[i].StartTick)
	}
}

func TestScalePassageFillsRangeAndStaysInRegister(t *testing.T) {
	tl := testTimeline(t)
	c := baseContext(tl)
	out := voice.ScalePassage(c, 240, rng.New(1))
	require.NotEmpty(t, out)
	assertSorted(t, out)
	for _, n := range out {
		assert.GreaterOrEqual(t, n.Pitch, c.Register[0]-12)
		assert.LessOrEqual(t, n.Pitch, c.Register[1]+12)
	}
}

func TestArpeggioUsesChordTones(t *testing.T) {
	tl := testTimeline(t)
	c := baseContext(tl)
	out := voice.Arpeggio(c, 480, rng.New(2))
	require.NotEmpty(t, out)
	for _, n := range out {
		ev, ok := tl.GetAt(n.StartTick)
		require.True(t, ok)
		assert.True(t, ev.Chord.ContainsPitchClass(n.Pitch%12))
	}
}

func TestSustainedPadOneNotePerEvent(t *testing.T) {
	tl := testTimeline(t)
	c := baseContext(tl)
	out := voice.SustainedPad(c)
	assert.Len(t, out, len(tl.Events))
}

func TestWalkingBassStepsQuarterNotes(t *testing.T) {
	tl := testTimeline(t)
	c := baseContext(tl)
	c.Register = [2]int{28, 52}
	out := voice.WalkingBass(c, rng.New(3))
	require.NotEmpty(t, out)
	assertSorted(t, out)
	for _, n := range out {
		assert.LessOrEqual(t, n.Duration, 480)
	}
}

func TestThematicBassAugmentedIsSlower(t *testing.T) {
	tl := testTimeline(t)
	c := baseContext(tl)
	c.Register = [2]int{28, 52}
	motif := catalog.MotifForSeed(0)
	plain := voice.ThematicBass(c, motif, false, rng.New(4))
	augmented := voice.ThematicBass(c, motif, true, rng.New(4))
	require.NotEmpty(t, plain)
	require.NotEmpty(t, augmented)
	assert.Greater(t, len(plain), len(augmented))
}

func TestMotoPerpetuoIsUnbroken(t *testing.T) {
	tl := testTimeline(t)
	c := baseContext(tl)
	out := voice.MotoPerpetuo(c, 120, rng.New(5))
	require.NotEmpty(t, out)
	for i := 1; i < len(out); i++ {
		assert.Equal(t, out[i-1].StartTick+out[i-1].Duration, out[i].StartTick)
	}
}

func TestMotifFortspinnungFillsRange(t *testing.T) {
	tl := testTimeline(t)
	c := baseContext(tl)
	motif := catalog.MotifForSeed(1)
	out := voice.MotifFortspinnung(c, motif, rng.New(6))
	require.NotEmpty(t, out)
	assert.Less(t, out[len(out)-1].StartTick, c.EndTick)
}

func TestImitationTransformsChangeDuration(t *testing.T) {
	tl := testTimeline(t)
	c := baseContext(tl)
	motif := catalog.MotifForSeed(2)
	exact := voice.Imitation(c, motif, voice.TransformExact, 0)
	augmented := voice.Imitation(c, motif, voice.TransformAugmentation, 0)
	diminished := voice.Imitation(c, motif, voice.TransformDiminution, 0)
	require.NotEmpty(t, exact)
	require.NotEmpty(t, augmented)
	require.NotEmpty(t, diminished)
	assert.Greater(t, augmented[0].Duration, exact[0].Duration)
	assert.Less(t, diminished[0].Duration, exact[0].Duration)
}

func TestImitationInversionReflectsContour(t *testing.T) {
	tl := testTimeline(t)
	c := baseContext(tl)
	motif := catalog.Motif{Name: "test", DegreeSequence: []int{0, 2, 4}, NoteTicks: 240}
	exact := voice.Imitation(c, motif, voice.TransformExact, 0)
	inverted := voice.Imitation(c, motif, voice.TransformInversion, 0)
	require.Len(t, exact, 3)
	require.Len(t, inverted, 3)
	assert.Equal(t, exact[0].Pitch, inverted[0].Pitch)
	assert.Less(t, inverted[2].Pitch, inverted[0].Pitch)
}
