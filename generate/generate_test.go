package generate_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bachgen/form"
	"bachgen/generate"
	"bachgen/instrument"
	"bachgen/score"
	"bachgen/theory"
)

func configs() map[generate.Kind]form.Config {
	cMajor := theory.Key{Tonic: 0, Minor: false}
	gMinor := theory.Key{Tonic: 7, Minor: true}
	return map[generate.Kind]form.Config{
		generate.KindChoralePrelude: {Key: cMajor, Seed: 42},
		generate.KindPassacaglia:    {Key: cMajor.Relative(), Seed: 17, NumVariations: 6, GroundBassBars: 8, NumVoices: 4},
		generate.KindFantasia:       {Key: gMinor, Seed: 9, NumVoices: 4, SectionBars: 16},
		generate.KindPrelude:        {Key: cMajor, Seed: 3, PreludeKind: form.PreludePerpetual, NumVoices: 3, TotalBars: 8},
		generate.KindToccata:        {Key: gMinor, Seed: 5, ToccataKind: form.ToccataSectionalisArchetype, TotalBars: 24},
	}
}

// Property 1: determinism.
func TestDeterminism(t *testing.T) {
	for kind, cfg := range configs() {
		a, err := generate.Generate(kind, cfg)
		require.NoError(t, err)
		b, err := generate.Generate(kind, cfg)
		require.NoError(t, err)
		assert.True(t, reflect.DeepEqual(a.Tracks, b.Tracks), "kind %d: repeated runs diverged", kind)
	}
}

// Properties 2, 3, 5: sort order, positive duration, organ velocity 80.
func TestSortPositivityAndVelocity(t *testing.T) {
	for kind, cfg := range configs() {
		res, err := generate.Generate(kind, cfg)
		require.NoError(t, err)
		require.True(t, res.Success)
		for _, tr := range res.Tracks {
			assert.True(t, sortedByTickThenPitch(tr.Notes), "kind %d track %q not sorted", kind, tr.Name)
			for _, n := range tr.Notes {
				assert.Positive(t, n.Duration, "kind %d track %q: non-positive duration", kind, tr.Name)
				assert.Equal(t, instrument.OrganVelocity, n.Velocity, "kind %d track %q: velocity drift", kind, tr.Name)
			}
		}
	}
}

// Property 4: range -- every note fits within the church-organ model's
// playable span (the only instrument these form generators target).
func TestRangeCompliance(t *testing.T) {
	model := instrument.ForKind(instrument.ChurchOrgan)
	for kind, cfg := range configs() {
		res, err := generate.Generate(kind, cfg)
		require.NoError(t, err)
		for _, tr := range res.Tracks {
			for _, n := range tr.Notes {
				assert.True(t, n.Pitch >= model.LowestPitch() && n.Pitch <= model.HighestPitch(),
					"kind %d track %q pitch %d out of range [%d,%d]", kind, tr.Name, n.Pitch, model.LowestPitch(), model.HighestPitch())
			}
		}
	}
}

// Property 6, 7, 8: immutability and periodicity of protected material.
func TestGroundBassAndCantusImmutability(t *testing.T) {
	pCfg := form.Config{Key: theory.Key{Tonic: 0, Minor: true}, Seed: 42, NumVariations: 12, GroundBassBars: 8, NumVoices: 4}
	res, err := form.Passacaglia(pCfg)
	require.NoError(t, err)
	pedal := res.Tracks[len(res.Tracks)-1]
	var ground []score.NoteEvent
	for _, n := range pedal.Notes {
		if n.Source == score.SourceGroundBass {
			ground = append(ground, n)
		}
	}
	require.Len(t, ground, 96)
	for v := 1; v < 12; v++ {
		for i := 0; i < 8; i++ {
			assert.Equal(t, ground[i].Pitch, ground[v*8+i].Pitch)
			assert.Equal(t, ground[i].Duration, ground[v*8+i].Duration)
		}
	}
	assert.Equal(t, ground[0].Pitch%12, ((ground[len(ground)-1].Pitch%12)+12)%12)

	cRes, err := form.ChoralePrelude(form.Config{Key: theory.Key{Tonic: 0, Minor: false}, Seed: 42})
	require.NoError(t, err)
	cantus := cRes.Tracks[1]
	for _, n := range cantus.Notes {
		assert.Equal(t, score.SourceCantusFixed, n.Source)
	}
}

// Properties 10, 11: voice-crossing and strong-beat dissonance bounds for
// the chorale prelude.
func TestChoralePreludeCounterpointBounds(t *testing.T) {
	res, err := form.ChoralePrelude(form.Config{Key: theory.Key{Tonic: 0, Minor: false}, Seed: 42})
	require.NoError(t, err)
	report := res.Aux.Counterpoint

	total := 0
	for _, tr := range res.Tracks {
		total += len(tr.Notes)
	}
	require.Positive(t, total)
	assert.Less(t, float64(report.VoiceCrossingCount)/float64(total), 0.05)
	assert.Less(t, float64(report.StrongBeatP4OverBass)/float64(total), 0.30)
}

func sortedByTickThenPitch(notes []score.NoteEvent) bool {
	for i := 1; i < len(notes); i++ {
		prev, cur := notes[i-1], notes[i]
		if cur.StartTick < prev.StartTick {
			return false
		}
		if cur.StartTick == prev.StartTick && cur.Pitch < prev.Pitch {
			return false
		}
	}
	return true
}
