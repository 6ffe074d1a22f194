// Package instrument models the physical constraints of each target
// instrument: playable range, a playability cost function, and the
// multi-note feasibility rules the impossibility guard enforces (double
// stops for bowed instruments, two-hand reach for keyboards, single-voice
// idiom for fretted instruments). Spec.md 9 asks for the original's virtual
// base class hierarchy to be rephrased as "a tagged variant of instrument
// kinds + a trait for quoting a playability cost" -- that is exactly the
// Kind/Model split below. Grounded on original_source/src/instrument/*
// (organ_model, harpsichord_model, piano_model, violin_model, cello_model,
// guitar_model) and, for the Guitar model's fret layout, the teacher's
// theory.GuitarTuning / midi/voicings.go chord-shape data.
package instrument

// Kind is the tagged variant of supported instruments.
type Kind int

const (
	ChurchOrgan Kind = iota
	ReedOrgan
	Harpsichord
	Piano
	Violin
	Cello
	Guitar
)

// Family groups kinds by the multi-note feasibility rule the guard applies.
type Family int

const (
	FamilyKeyboard Family = iota
	FamilyBowed
	FamilyFretted
)

func (k Kind) Family() Family {
	switch k {
	case Violin, Cello:
		return FamilyBowed
	case Guitar:
		return FamilyFretted
	default:
		return FamilyKeyboard
	}
}

// GM program numbers, fixed by spec.md 6.
const (
	ProgramChurchOrgan = 19
	ProgramReedOrgan   = 20
	ProgramHarpsichord = 6
	ProgramPiano       = 0
	ProgramViolin      = 40
	ProgramCello       = 42
	ProgramGuitar      = 24
)

func (k Kind) GMProgram() int {
	switch k {
	case ChurchOrgan:
		return ProgramChurchOrgan
	case ReedOrgan:
		return ProgramReedOrgan
	case Harpsichord:
		return ProgramHarpsichord
	case Piano:
		return ProgramPiano
	case Violin:
		return ProgramViolin
	case Cello:
		return ProgramCello
	case Guitar:
		return ProgramGuitar
	default:
		return ProgramChurchOrgan
	}
}

// OrganVelocity is the fixed velocity every organ note carries -- pipe
// organs are not velocity-sensitive (spec.md 6).
const OrganVelocity = 80

// Model answers single-note playability questions for one instrument kind.
type Model interface {
	Kind() Kind
	LowestPitch() int
	HighestPitch() int
	// PlayabilityCost is 0 for a trivially playable pitch and rises with
	// physical awkwardness (far position shifts, thumb use, etc). It is a
	// relative ranking, not an absolute unit.
	PlayabilityCost(pitch int) float64
	IsPitchPlayable(pitch int) bool
}

// Ensemble answers multi-note (simultaneous) feasibility questions, the
// trait spec.md 9 asks to keep separate from per-kind Model implementations
// since the cost structure (range + cost) is fixed across variants but the
// simultaneous-sounding rule differs sharply by family.
type Ensemble interface {
	// MaxSimultaneous is the largest number of simultaneous notes that is
	// never automatically a violation (2 for bowed, 1 for fretted, a large
	// number for keyboard where reach rather than count is the limit).
	MaxSimultaneous() int
	// IsDoubleStopFeasible is meaningful only for bowed instruments.
	IsDoubleStopFeasible(a, b int) bool
	// SuggestPlayableVoicing is meaningful only for keyboards: given a set
	// of simultaneous pitches, return a playable subset (may drop inner
	// notes), preserving the outer voices where possible.
	SuggestPlayableVoicing(pitches []int) []int
}

// ForKind returns the combined Model+Ensemble for a kind.
func ForKind(k Kind) ModelEnsemble {
	switch k {
	case ChurchOrgan, ReedOrgan:
		return newOrgan(k)
	case Harpsichord:
		return newHarpsichord()
	case Piano:
		return newPiano()
	case Violin:
		return newViolin()
	case Cello:
		return newCello()
	case Guitar:
		return newGuitar()
	default:
		return newOrgan(ChurchOrgan)
	}
}

// ModelEnsemble is the full per-kind implementation.
type ModelEnsemble interface {
	Model
	Ensemble
}

// PedalAware is implemented by every keyboard; only the organ gives it a
// non-zero pedal range, so harpsichord and piano report zero penalty
// everywhere (no pedal division). The guard uses it to nudge pedal-sourced
// notes toward the working range with a soft penalty rather than a hard
// rejection. Grounded on original_source/src/organ/pedal_constraints.h.
type PedalAware interface {
	PedalPenalty(pitch int) float64
}
