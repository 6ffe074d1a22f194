package instrument_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bachgen/instrument"
)

func TestFamilyMapping(t *testing.T) {
	assert.Equal(t, instrument.FamilyKeyboard, instrument.ChurchOrgan.Family())
	assert.Equal(t, instrument.FamilyBowed, instrument.Violin.Family())
	assert.Equal(t, instrument.FamilyFretted, instrument.Guitar.Family())
}

func TestGMProgramMapping(t *testing.T) {
	assert.Equal(t, instrument.ProgramChurchOrgan, instrument.ChurchOrgan.GMProgram())
	assert.Equal(t, instrument.ProgramReedOrgan, instrument.ReedOrgan.GMProgram())
}

func TestOrganRangeAndVelocity(t *testing.T) {
	m := instrument.ForKind(instrument.ChurchOrgan)
	assert.True(t, m.IsPitchPlayable(60))
	assert.False(t, m.IsPitchPlayable(10))
	assert.Equal(t, 80, instrument.OrganVelocity)
}

func TestViolinDoubleStop(t *testing.T) {
	m := instrument.ForKind(instrument.Violin)
	assert.True(t, m.IsDoubleStopFeasible(55, 62))  // adjacent open strings
	assert.False(t, m.IsDoubleStopFeasible(55, 76)) // non-adjacent strings
	assert.Equal(t, 2, m.MaxSimultaneous())
}

func TestGuitarSingleVoiceIdiom(t *testing.T) {
	m := instrument.ForKind(instrument.Guitar)
	assert.Equal(t, 1, m.MaxSimultaneous())
	assert.True(t, m.IsPitchPlayable(40))
	assert.False(t, m.IsPitchPlayable(200))
}

func TestKeyboardVoicingSuggestion(t *testing.T) {
	m := instrument.ForKind(instrument.Piano)
	wide := []int{40, 50, 60, 70, 90, 100}
	got := m.SuggestPlayableVoicing(wide)
	assert.LessOrEqual(t, got[len(got)-1]-got[0], 28)
}

func TestOrganPedalRangeIsNarrowerThanManualRange(t *testing.T) {
	m := instrument.ForKind(instrument.ChurchOrgan)
	pedal, ok := m.(instrument.PedalAware)
	require.True(t, ok, "church organ must expose a pedal range distinct from its manual range")

	assert.Zero(t, pedal.PedalPenalty(30))  // inside [24, 50]
	assert.Zero(t, pedal.PedalPenalty(50))  // upper boundary
	assert.Greater(t, pedal.PedalPenalty(60), 0.0) // above the pedalboard's reach, still a playable manual pitch
	assert.Greater(t, pedal.PedalPenalty(10), 0.0)
	assert.True(t, m.IsPitchPlayable(60), "the manual range must still accept the pitch even though the pedal penalizes it")
}

func TestHarpsichordHasNoPedalDivision(t *testing.T) {
	m := instrument.ForKind(instrument.Harpsichord)
	pedal, ok := m.(instrument.PedalAware)
	require.True(t, ok)
	assert.Zero(t, pedal.PedalPenalty(40))
	assert.Zero(t, pedal.PedalPenalty(100))
}
