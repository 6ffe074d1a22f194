package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bachgen/form"
	"bachgen/instrument"
	"bachgen/score"
	"bachgen/theory"
)

func cMajor() theory.Key  { return theory.Key{Tonic: 0, Minor: false} }
func gMinor() theory.Key  { return theory.Key{Tonic: 7, Minor: true} }
func cMinor() theory.Key  { return theory.Key{Tonic: 0, Minor: true} }

// S1
func TestChoralePreludeTrackShapeAndNaming(t *testing.T) {
	res, err := form.ChoralePrelude(form.Config{Key: cMajor(), Seed: 42})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.Tracks, 4)

	channels := []int{0, 1, 0, 3}
	programs := []int{instrument.ChurchOrgan.GMProgram(), instrument.ReedOrgan.GMProgram(), instrument.ChurchOrgan.GMProgram(), instrument.ChurchOrgan.GMProgram()}
	names := []string{"Counterpoint (Great)", "Cantus Firmus (Swell)", "Inner Voice (Great)", "Pedal"}
	for i, tr := range res.Tracks {
		assert.Equal(t, channels[i], tr.Channel, "track %d channel", i)
		assert.Equal(t, programs[i], tr.Program, "track %d program", i)
		assert.Equal(t, names[i], tr.Name, "track %d name", i)
	}
}

// S2
func TestChoralePreludeSeedModThreeSelectsChorale(t *testing.T) {
	res0, err := form.ChoralePrelude(form.Config{Key: cMajor(), Seed: 0})
	require.NoError(t, err)
	res1, err := form.ChoralePrelude(form.Config{Key: cMajor(), Seed: 1})
	require.NoError(t, err)
	res2, err := form.ChoralePrelude(form.Config{Key: cMajor(), Seed: 2})
	require.NoError(t, err)
	res3, err := form.ChoralePrelude(form.Config{Key: cMajor(), Seed: 3})
	require.NoError(t, err)

	assert.Equal(t, res0.TotalDurationTicks, res3.TotalDurationTicks)
	d0, d1, d2 := res0.TotalDurationTicks, res1.TotalDurationTicks, res2.TotalDurationTicks
	assert.True(t, d0 != d1 || d1 != d2 || d0 != d2, "at least two of seeds 0/1/2 should differ in duration")
}

// S3
func TestPassacagliaGroundBassRepeatsEveryVariation(t *testing.T) {
	res, err := form.Passacaglia(form.Config{
		Key: cMinor(), Seed: 42, NumVariations: 12, GroundBassBars: 8, NumVoices: 4,
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.Tracks, 4)

	pedal := res.Tracks[len(res.Tracks)-1]
	var groundNotes []score.NoteEvent
	for _, n := range pedal.Notes {
		if n.Source == score.SourceGroundBass {
			groundNotes = append(groundNotes, n)
		}
	}
	require.Len(t, groundNotes, 96)

	for v := 1; v < 12; v++ {
		for i := 0; i < 8; i++ {
			assert.Equal(t, groundNotes[i].Pitch, groundNotes[v*8+i].Pitch, "variation %d note %d", v, i)
		}
	}
}

// S7
func TestGroundBassStandaloneShape(t *testing.T) {
	notes := form.GroundBass(theory.Key{Tonic: 4, Minor: false}, 8)
	require.Len(t, notes, 8)

	for _, n := range notes {
		assert.Equal(t, 1920, n.Duration, "every ground bass note is a whole note")
		assert.True(t, n.Pitch >= 20 && n.Pitch <= 55, "pitch %d out of pedal range", n.Pitch)
	}
	assert.Equal(t, 4, notes[0].Pitch%12, "first note is tonic pitch class")
	assert.Equal(t, 4, ((notes[len(notes)-1].Pitch%12)+12)%12, "last note is tonic pitch class")

	for i := 0; i < len(notes)-2; i++ {
		interval := notes[i+1].Pitch - notes[i].Pitch
		if interval < 0 {
			interval = -interval
		}
		assert.LessOrEqual(t, interval, 9, "interior leap too large at note %d", i)
	}
	tail := notes[len(notes)-1].Pitch - notes[len(notes)-2].Pitch
	if tail < 0 {
		tail = -tail
	}
	assert.LessOrEqual(t, tail, 12, "cadential tail leap too large")
}

// S4
func TestFantasiaDurationDistributionByVoice(t *testing.T) {
	res, err := form.Fantasia(form.Config{Key: gMinor(), Seed: 42, NumVoices: 4, SectionBars: 32})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.Tracks, 4)
	assert.Equal(t, 32*1920, res.TotalDurationTicks)

	for i, tr := range res.Tracks {
		assert.Equal(t, i, tr.Channel)
	}

	pad := res.Tracks[1]
	longCount := 0
	for _, n := range pad.Notes {
		if n.Duration >= 960 {
			longCount++
		}
	}
	assert.GreaterOrEqual(t, float64(longCount)/float64(len(pad.Notes)), 0.70)

	melody := res.Tracks[0]
	shortCount := 0
	for _, n := range melody.Notes {
		if n.Duration <= 480 {
			shortCount++
		}
	}
	assert.GreaterOrEqual(t, float64(shortCount)/float64(len(melody.Notes)), 0.80)
}

// S5
func TestPreludePerpetualTopVoiceOutpacesMiddle(t *testing.T) {
	res, err := form.Prelude(form.Config{
		Key: cMajor(), Seed: 42, PreludeKind: form.PreludePerpetual, NumVoices: 3, TotalBars: 12,
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 12*1920, res.TotalDurationTicks)

	top := res.Tracks[0]
	middle := res.Tracks[1]
	assert.Greater(t, len(top.Notes), len(middle.Notes))

	steps := 0
	for i := 1; i < len(top.Notes); i++ {
		interval := top.Notes[i].Pitch - top.Notes[i-1].Pitch
		if interval < 0 {
			interval = -interval
		}
		if interval <= 2 {
			steps++
		}
	}
	ratio := float64(steps) / float64(len(top.Notes)-1)
	assert.GreaterOrEqual(t, ratio, 0.30)
	assert.LessOrEqual(t, ratio, 0.95)
}

// S6
func TestTrioSonataMovementsAndKeys(t *testing.T) {
	res, err := form.TrioSonata(form.Config{Key: cMajor(), Seed: 42, BPMFast: 120, BPMSlow: 60})
	require.NoError(t, err)
	require.Len(t, res.Movements, 3)

	for _, mv := range res.Movements {
		require.Len(t, mv.Tracks, 3)
		channels := []int{0, 1, 3}
		programs := []int{instrument.ChurchOrgan.GMProgram(), instrument.ReedOrgan.GMProgram(), instrument.ChurchOrgan.GMProgram()}
		for i, tr := range mv.Tracks {
			assert.Equal(t, channels[i], tr.Channel)
			assert.Equal(t, programs[i], tr.Program)
		}
	}
	assert.Equal(t, cMajor(), res.Movements[0].Timeline.Events[0].Key)
	assert.Equal(t, cMajor().Relative(), res.Movements[1].Timeline.Events[0].Key)
	assert.Equal(t, cMajor(), res.Movements[2].Timeline.Events[0].Key)
}

func TestToccataPerpetuusProducesThreeSections(t *testing.T) {
	res, err := form.Toccata(form.Config{Key: cMajor(), Seed: 7, ToccataKind: form.ToccataPerpetuusArchetype, TotalBars: 20})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.Tracks, 3)
	require.Len(t, res.Aux.SectionBoundaries, 4)
	for _, tr := range res.Tracks {
		assert.NotEmpty(t, tr.Notes)
	}
}

func TestToccataSectionalisProducesFiveSections(t *testing.T) {
	res, err := form.Toccata(form.Config{Key: gMinor(), Seed: 11, ToccataKind: form.ToccataSectionalisArchetype, TotalBars: 24})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.Tracks, 3)
	require.Len(t, res.Aux.SectionBoundaries, 6)
	for _, tr := range res.Tracks {
		assert.NotEmpty(t, tr.Notes)
	}
}
