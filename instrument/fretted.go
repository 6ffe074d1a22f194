package instrument

import "bachgen/theory"

// fretted implements the single-voice guitar idiom (spec.md 4.8: more than
// one simultaneous note on a fretted instrument is a violation here --
// chordal fretted writing is out of this pipeline's scope). Grounded on the
// teacher's theory.GuitarTuning / midi/voicings.go fret-shape data, adapted
// from a display table into a fret-reach playability query.
type fretted struct {
	kind    Kind
	tuning  theory.Tuning
	maxFret int
}

func (f fretted) Kind() Kind { return f.kind }

func (f fretted) LowestPitch() int { return f.tuning.Notes[0] }

func (f fretted) HighestPitch() int {
	last := len(f.tuning.Notes) - 1
	return f.tuning.Notes[last] + f.maxFret
}

func (f fretted) IsPitchPlayable(pitch int) bool {
	return len(f.tuning.FretsForPitch(pitch, f.maxFret)) > 0
}

func (f fretted) PlayabilityCost(pitch int) float64 {
	positions := f.tuning.FretsForPitch(pitch, f.maxFret)
	if len(positions) == 0 {
		return 1000
	}
	best := 1000.0
	for _, pos := range positions {
		fret := pos[1]
		cost := 0.0
		switch {
		case fret == 0:
			cost = 0 // open string
		case fret <= 4:
			cost = 0.2
		case fret <= 9:
			cost = 0.5
		default:
			cost = 0.8
		}
		if cost < best {
			best = cost
		}
	}
	return best
}

func (f fretted) MaxSimultaneous() int { return 1 }

func (f fretted) IsDoubleStopFeasible(a, b int) bool { return false } // single-voice idiom

func (f fretted) SuggestPlayableVoicing(pitches []int) []int { return pitches }

func newGuitar() ModelEnsemble {
	return fretted{kind: Guitar, tuning: theory.StandardGuitarTuning, maxFret: 19}
}
