// Package score holds the pipeline's atomic output types -- NoteEvent,
// Track, and the Result record returned by generate.Generate -- plus the
// score aggregator that assembles per-voice note lists into channel/program
// assigned, sorted tracks. Grounded on the teacher's midi.MelodyNote /
// midi.BassNote / midi.ChordEvent family of small timed-note structs,
// unified here into the single NoteEvent shape spec.md 3 specifies.
package score

// Source tags a note's provenance, which drives the protection level used
// by repair passes and the impossibility guard (spec.md 3).
type Source int

const (
	SourceUnknown Source = iota
	SourceFreeCounterpoint
	SourceGroundBass
	SourceGoldbergBass
	SourceCantusFixed
	SourcePedalPoint
)

// Protection is the degree to which a pass may alter a note.
type Protection int

const (
	Flexible Protection = iota
	Structural
	SemiImmutable
	Immutable
)

// ProtectionOf maps a provenance tag to its protection level (spec.md 3's
// table).
func ProtectionOf(s Source) Protection {
	switch s {
	case SourceGroundBass, SourceGoldbergBass, SourceCantusFixed:
		return Immutable
	case SourcePedalPoint:
		return Structural
	default:
		return Flexible
	}
}

// VoiceRole is a voice's contrapuntal function within a fugue-family form
// (spec.md 4.5): Assert states the subject, Respond answers it, Propel
// drives the middle texture, and Ground carries the bass line. The Ground
// role must never receive ornaments.
type VoiceRole int

const (
	Assert VoiceRole = iota
	Respond
	Propel
	Ground
)

// ModifiedBy is a bitset recording which repair/ornament passes touched a
// note. Retained per spec.md 9 as the side-channel passes use to observe
// each other's work without sharing mutable pass state.
type ModifiedBy uint16

const (
	ModNonHarmonic ModifiedBy = 1 << iota
	ModParallel
	ModLeap
	ModSeparation
	ModDiatonic
	ModStrongBeat
	ModRepeated
	ModOrnamented
	ModGuardRange
	ModGuardSounding
)

// Has reports whether bit is set.
func (m ModifiedBy) Has(bit ModifiedBy) bool { return m&bit != 0 }

// NoteEvent is the atomic output unit of the pipeline.
type NoteEvent struct {
	StartTick  int
	Duration   int
	Pitch      int
	Velocity   int
	Voice      int
	Source     Source
	VoiceRole  VoiceRole
	ModifiedBy ModifiedBy
}

// EndTick is StartTick + Duration.
func (n NoteEvent) EndTick() int { return n.StartTick + n.Duration }

// Protection returns the protection level implied by the note's source.
func (n NoteEvent) Protection() Protection { return ProtectionOf(n.Source) }
