package theory

// Tuning is an ordered set of open-string MIDI pitches, low to high.
// Grounded on the teacher's theory.GuitarTuning / theory.GuitarStringNames
// tables, now consumed by instrument.Guitar's fret-reach playability model
// instead of by fretboard display.
type Tuning struct {
	Notes       []int
	StringNames []string
}

// StandardGuitarTuning is standard 6-string guitar tuning (E2 A2 D3 G3 B3 E4).
var StandardGuitarTuning = Tuning{
	Notes:       []int{40, 45, 50, 55, 59, 64},
	StringNames: []string{"E", "A", "D", "G", "B", "e"},
}

// FretPitch returns the MIDI pitch sounded at a given string/fret, or -1 for
// an invalid string index.
func (tu Tuning) FretPitch(stringIdx, fret int) int {
	if stringIdx < 0 || stringIdx >= len(tu.Notes) || fret < 0 {
		return -1
	}
	return tu.Notes[stringIdx] + fret
}

// FretsForPitch returns every (string, fret) pair up to maxFret that sounds
// pitch, ascending by string index -- used by the guard's fretted-instrument
// repair to find a reachable position for a note.
func (tu Tuning) FretsForPitch(pitch, maxFret int) [][2]int {
	var out [][2]int
	for i, open := range tu.Notes {
		fret := pitch - open
		if fret >= 0 && fret <= maxFret {
			out = append(out, [2]int{i, fret})
		}
	}
	return out
}
