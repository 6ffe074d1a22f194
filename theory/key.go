// Package theory implements the scale, key, and chord algebra the rest of
// the pipeline is built on: pitch <-> scale-degree mapping, consonance
// classification, key relationships, and chord-tone derivation. Grounded on
// the teacher's theory/theory.go (NewScale, ParseKey, GetChordTones) and on
// original_source/src/harmony/key.cpp for the key-relationship functions
// spec.md names directly (dominant, subdominant, relative, parallel,
// circle-of-fifths distance).
package theory

// Key is a tonic pitch class (0-11, C=0) paired with a mode flag.
type Key struct {
	Tonic int
	Minor bool
}

// NoteNames mirrors the teacher's theory.NoteNames display table.
var NoteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Dominant returns the key a perfect fifth above, same mode.
func (k Key) Dominant() Key {
	return Key{Tonic: (k.Tonic + 7) % 12, Minor: k.Minor}
}

// Subdominant returns the key a perfect fourth above, same mode.
func (k Key) Subdominant() Key {
	return Key{Tonic: (k.Tonic + 5) % 12, Minor: k.Minor}
}

// Relative flips the mode: relative major is 3 semitones up from a minor
// tonic, relative minor is 3 semitones down (+9 mod 12) from a major tonic.
func (k Key) Relative() Key {
	if k.Minor {
		return Key{Tonic: (k.Tonic + 3) % 12, Minor: false}
	}
	return Key{Tonic: (k.Tonic + 9) % 12, Minor: true}
}

// Parallel keeps the tonic, flips the mode.
func (k Key) Parallel() Key {
	return Key{Tonic: k.Tonic, Minor: !k.Minor}
}

// fifthsDistance is the minimum number of circle-of-fifths steps (forward or
// backward) between two tonics, ignoring mode.
func fifthsDistance(a, b int) int {
	forward := 0
	cur := a
	for step := 0; step <= 6; step++ {
		if cur == b {
			forward = step
			break
		}
		cur = (cur + 7) % 12
		forward = step + 1
	}
	backward := 0
	cur = a
	for step := 0; step <= 6; step++ {
		if cur == b {
			backward = step
			break
		}
		cur = (cur + 5) % 12
		backward = step + 1
	}
	if forward < backward {
		return forward
	}
	return backward
}

// CircleOfFifthsDistance returns 0..6. Same-mode keys are measured directly;
// different-mode keys are routed through the relative key, which has
// distance 0 from its source by convention.
func (k Key) CircleOfFifthsDistance(other Key) int {
	if k.Minor == other.Minor {
		return fifthsDistance(k.Tonic, other.Tonic)
	}
	converted := k.Relative()
	return fifthsDistance(converted.Tonic, other.Tonic)
}

// Name renders the key for diagnostics, e.g. "C major", "A minor".
func (k Key) Name() string {
	mode := "major"
	if k.Minor {
		mode = "minor"
	}
	return NoteNames[k.Tonic%12] + " " + mode
}
