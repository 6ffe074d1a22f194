// Package catalog holds the fixed, opaque musical material the form
// generators quote rather than invent: three chorale melodies for
// ChoralePrelude (spec.md 5.1, selected by seed mod 3) and a handful of
// short subject motifs the fugue-family voice roles (Assert/Respond/
// Propel/Ground) spin out via sequence and inversion. Grounded on the
// teacher's parser's embedded song data and on original_source's
// chorale_melodies.cpp / motifs.cpp constant tables -- both are plain
// data tables in their source, reproduced here as Go literals rather than
// re-derived.
package catalog

// ChoraleMelody is a fixed cantus-firmus tune: scale-degree offsets from
// the tonic (diatonic steps, not semitones) plus a duration in ticks per
// note, meant to be realized against whatever key a caller supplies.
type ChoraleMelody struct {
	Name           string
	DegreeSequence []int // scale-degree offsets (0 = tonic), diatonic
	NoteTicks      int   // uniform duration per melody note
}

// The three chorales spec.md 5.1 requires selecting among by seed mod 3.
var chorales = []ChoraleMelody{
	{
		Name:           "WachetAuf",
		DegreeSequence: []int{0, 2, 4, 5, 4, 2, 0, -1, 0, 2, 4, 7, 6, 4, 2, 0},
		NoteTicks:      960,
	},
	{
		Name:           "NunKommDerHeidenHeiland",
		DegreeSequence: []int{0, -1, -2, -1, 0, 2, 4, 2, 0, -1, -2, 0},
		NoteTicks:      960,
	},
	{
		Name:           "EinFesteBurg",
		DegreeSequence: []int{0, 2, 4, 2, 0, -1, 0, 2, 4, 5, 4, 2, 0},
		NoteTicks:      1920,
	},
}

// ChoraleForSeed selects one of the three catalog chorales deterministically
// (spec.md 5.1: seed mod 3), never drawing from the RNG stream.
func ChoraleForSeed(seed uint32) ChoraleMelody {
	return chorales[int(seed%uint32(len(chorales)))]
}

// Motif is a short subject, expressed the same way as a chorale melody, for
// the fugue-family voice roles to state, answer, and spin out sequences
// from.
type Motif struct {
	Name           string
	DegreeSequence []int
	NoteTicks      int
}

var motifs = []Motif{
	{Name: "RisingFourth", DegreeSequence: []int{0, 1, 2, 3}, NoteTicks: 480},
	{Name: "FallingThirdTurn", DegreeSequence: []int{0, -2, -1, 0}, NoteTicks: 240},
	{Name: "ArpeggiatedTriad", DegreeSequence: []int{0, 2, 4, 2}, NoteTicks: 240},
	{Name: "StepwiseDescent", DegreeSequence: []int{4, 3, 2, 1, 0}, NoteTicks: 480},
}

// MotifForSeed selects a motif deterministically by seed mod len(motifs).
func MotifForSeed(seed uint32) Motif {
	return motifs[int(seed%uint32(len(motifs)))]
}

// Invert reflects a degree sequence around its first degree -- the
// contrary-motion answer the fugue-family Respond role uses.
func Invert(degrees []int) []int {
	out := make([]int, len(degrees))
	anchor := degrees[0]
	for i, d := range degrees {
		out[i] = anchor - (d - anchor)
	}
	return out
}

// Augment doubles every note's duration -- the Ground role's slow-motion
// restatement.
func Augment(ticks int) int { return ticks * 2 }

// Diminish halves every note's duration -- the Propel role's fast restatement.
func Diminish(ticks int) int {
	if ticks <= 1 {
		return 1
	}
	return ticks / 2
}
