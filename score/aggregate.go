package score

import "bachgen/instrument"

// Role identifies which manual/voice a logical voice index plays on, which
// in turn drives the fixed channel/program assignment of spec.md 6.
type Role int

const (
	RoleGreat Role = iota
	RoleSwell
	RolePositiv
	RolePedal
	RoleGeneric // non-organ instruments: single channel 0 + the chosen kind's program
)

// channelFor implements the fixed MIDI-channel table from spec.md 6.
func channelFor(role Role) int {
	switch role {
	case RoleGreat:
		return 0
	case RoleSwell:
		return 1
	case RolePositiv:
		return 2
	case RolePedal:
		return 3
	default:
		return 0
	}
}

// programFor implements the fixed GM-program table from spec.md 6. For an
// organ kind the Swell role plays Reed Organ and every other role Church
// Organ; any other kind (piano/harpsichord) plays its own program on every
// role. The channel comes from the role alone (channelFor).
func programFor(role Role, kind instrument.Kind) int {
	switch kind {
	case ChurchOrganKind, ReedOrganKind:
		switch role {
		case RoleSwell:
			return instrument.ProgramReedOrgan
		default:
			return instrument.ProgramChurchOrgan
		}
	default:
		return kind.GMProgram()
	}
}

// Aliases so this package doesn't need a direct instrument. prefix at every
// call site in form generators that only care about the organ-vs-other
// distinction.
const (
	ChurchOrganKind = instrument.ChurchOrgan
	ReedOrganKind   = instrument.ReedOrgan
)

// VoiceSpec describes one logical voice to be assembled into a Track.
type VoiceSpec struct {
	Voice int
	Role  Role
	Name  string
	Notes []NoteEvent
}

// Aggregate assembles voice note lists into channel/program-assigned,
// sorted tracks, per spec.md 6's fixed MIDI-channel/program mapping.
// Grounded on midi.GenerateFromTrack's track-assembly loop (per-track
// program assignment, sorted emission).
func Aggregate(specs []VoiceSpec, kind instrument.Kind) []Track {
	tracks := make([]Track, 0, len(specs))
	for _, s := range specs {
		t := Track{
			Channel: channelFor(s.Role),
			Program: programFor(s.Role, kind),
			Name:    s.Name,
			Notes:   append([]NoteEvent(nil), s.Notes...),
		}
		t.SortNotes()
		tracks = append(tracks, t)
	}
	return tracks
}
