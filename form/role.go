package form

import "bachgen/score"

// roleAssign maps a voice index to its fugue-family contrapuntal role
// (spec.md 4.5): voice 0 asserts, voice 1 responds, voice 2 propels the
// middle texture, voice 3 and beyond grounds the bass. Shared across every
// fugue-family form -- ChoralePrelude, Passacaglia, Prelude, Fantasia, and
// both Toccata archetypes. TrioSonata's three independent equal voices are
// spec.md's own carve-out from the fugue-family roster and never call this.
func roleAssign(voice int) score.VoiceRole {
	switch voice {
	case 0:
		return score.Assert
	case 1:
		return score.Respond
	case 2:
		return score.Propel
	default:
		return score.Ground
	}
}

// stampRoles sets each note's VoiceRole from its Voice index in place and
// returns the same slice, so the ornament engine can enforce "the Ground
// role must never receive ornaments" as an actual role check instead of an
// incidental protection-tag coincidence.
func stampRoles(notes []score.NoteEvent) []score.NoteEvent {
	for i := range notes {
		notes[i].VoiceRole = roleAssign(notes[i].Voice)
	}
	return notes
}
