package score

import "sort"

// Track is a MIDI channel, GM program, display name, and the sorted note
// sequence for one logical voice.
type Track struct {
	Channel int
	Program int
	Name    string
	Notes   []NoteEvent
}

// SortNotes enforces the (start_tick, pitch) ordering invariant spec.md 3
// requires on every track.
func (t *Track) SortNotes() {
	sort.Slice(t.Notes, func(i, j int) bool {
		if t.Notes[i].StartTick != t.Notes[j].StartTick {
			return t.Notes[i].StartTick < t.Notes[j].StartTick
		}
		return t.Notes[i].Pitch < t.Notes[j].Pitch
	})
}

// IsSorted reports whether Notes already satisfies the (start_tick, pitch)
// ordering -- used by property tests.
func (t Track) IsSorted() bool {
	for i := 1; i < len(t.Notes); i++ {
		a, b := t.Notes[i-1], t.Notes[i]
		if a.StartTick > b.StartTick {
			return false
		}
		if a.StartTick == b.StartTick && a.Pitch > b.Pitch {
			return false
		}
	}
	return true
}
