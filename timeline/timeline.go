// Package timeline implements the harmonic skeleton the rest of the
// pipeline reads from: an ordered, contiguous, non-overlapping sequence of
// HarmonicEvents covering a piece's total duration, with O(log N) lookup by
// tick. Grounded on the chord-progression-over-bars model in the teacher's
// parser.ChordProgression / midi.GenerateChordRhythm (each chord holding a
// bar count, laid out end to end) generalized into the explicit
// [tick, end_tick) interval model spec.md 3 specifies.
package timeline

import (
	"fmt"
	"sort"

	"bachgen/theory"
)

// TicksPerBeat and TicksPerBar are the fixed musical-grid constants from
// spec.md's glossary: a quarter note is 480 ticks, a bar is 1920 ticks.
const (
	TicksPerBeat = 480
	TicksPerBar  = TicksPerBeat * 4
)

// Resolution controls how densely CreateStandard/CreateProgression lay
// down events.
type Resolution int

const (
	ResolutionBeat Resolution = iota
	ResolutionBar
)

// ProgressionType selects a built-in harmonic phrase template.
type ProgressionType int

const (
	DescendingFifths ProgressionType = iota
	CircleOfFifths
	ChromaticCircle
	Subdominant
	BorrowedChord
)

// CadenceKind selects how ApplyCadence rewrites the final two events.
type CadenceKind int

const (
	CadencePerfect CadenceKind = iota
	CadenceHalf
	CadenceDeceptive
)

// Event is a half-open tick interval governed by a key/chord pair.
type Event struct {
	Tick     int
	EndTick  int
	Key      theory.Key
	Chord    theory.Chord
	Bass     int // explicit bass pitch, clamped to the pedal/bass register
	Weight   float64
}

// Timeline is an ordered, contiguous, non-overlapping event sequence
// covering [0, TotalDuration).
type Timeline struct {
	Events        []Event
	TotalDuration int
}

// GetAt returns the event covering tick t via binary search, O(log N).
func (tl *Timeline) GetAt(t int) (Event, bool) {
	if len(tl.Events) == 0 {
		return Event{}, false
	}
	idx := sort.Search(len(tl.Events), func(i int) bool {
		return tl.Events[i].EndTick > t
	})
	if idx >= len(tl.Events) {
		return Event{}, false
	}
	ev := tl.Events[idx]
	if t < ev.Tick {
		return Event{}, false
	}
	return ev, true
}

// AddEvent appends ev, enforcing the contiguity invariant; a non-contiguous
// event is rejected with an error rather than silently spliced (Open
// Question 4 in spec.md 9 -- resolved in DESIGN.md).
func (tl *Timeline) AddEvent(ev Event) error {
	if len(tl.Events) > 0 {
		last := tl.Events[len(tl.Events)-1]
		if ev.Tick != last.EndTick {
			return fmt.Errorf("timeline: non-contiguous event at tick %d, expected %d", ev.Tick, last.EndTick)
		}
	} else if ev.Tick != 0 {
		return fmt.Errorf("timeline: first event must start at tick 0, got %d", ev.Tick)
	}
	if ev.EndTick <= ev.Tick {
		return fmt.Errorf("timeline: event end_tick %d must exceed tick %d", ev.EndTick, ev.Tick)
	}
	tl.Events = append(tl.Events, ev)
	if ev.EndTick > tl.TotalDuration {
		tl.TotalDuration = ev.EndTick
	}
	return nil
}

func bassForKey(key theory.Key, chord theory.Chord) int {
	// Clamp bass pitch into a comfortable pedal/bass register (E1..E3:
	// MIDI 28..52) around the chord root's pitch class.
	base := 36 + chord.Root
	for base < 28 {
		base += 12
	}
	for base > 52 {
		base -= 12
	}
	return base
}

// CreateStandard emits a plain I-IV-V-I backbone covering totalDuration at
// the requested resolution.
func CreateStandard(key theory.Key, totalDuration int, res Resolution) *Timeline {
	degrees := []theory.Degree{theory.DegreeI, theory.DegreeIV, theory.DegreeV, theory.DegreeI}
	roots := []int{0, 5, 7, 0}
	quals := standardQualities(key)

	step := TicksPerBar
	if res == ResolutionBeat {
		step = TicksPerBeat
	}

	tl := &Timeline{}
	tick := 0
	i := 0
	for tick < totalDuration {
		end := tick + step
		if end > totalDuration {
			end = totalDuration
		}
		idx := i % len(degrees)
		chord := theory.Chord{Root: (key.Tonic + roots[idx]) % 12, Quality: quals[idx], Degree: degrees[idx]}
		_ = tl.AddEvent(Event{Tick: tick, EndTick: end, Key: key, Chord: chord, Bass: bassForKey(key, chord), Weight: 1})
		tick = end
		i++
	}
	return tl
}

func standardQualities(key theory.Key) []theory.ChordQuality {
	if key.Minor {
		return []theory.ChordQuality{theory.QMinor, theory.QMinor, theory.QDominant7, theory.QMinor}
	}
	return []theory.ChordQuality{theory.QMajor, theory.QMajor, theory.QDominant7, theory.QMajor}
}

// progressionStep is one entry of a progression template: scale-degree
// root offset (semitones from tonic) and quality.
type progressionStep struct {
	rootOffset int
	quality    theory.ChordQuality
	degree     theory.Degree
}

func progressionTemplate(pt ProgressionType, minor bool) []progressionStep {
	switch pt {
	case DescendingFifths:
		return []progressionStep{
			{0, qualFor(minor, theory.QMajor, theory.QMinor), theory.DegreeI},
			{5, qualFor(minor, theory.QMajor, theory.QMinor), theory.DegreeIV},
			{10, theory.QMajor, theory.DegreeVofIV},
			{3, qualFor(minor, theory.QMajor, theory.QMinor), "bVII"},
			{7, theory.QDominant7, theory.DegreeV},
			{0, qualFor(minor, theory.QMajor, theory.QMinor), theory.DegreeI},
		}
	case CircleOfFifths:
		return []progressionStep{
			{9, theory.QMinor, theory.DegreeVI},
			{2, theory.QMinor, theory.DegreeII},
			{7, theory.QDominant7, theory.DegreeV},
			{0, qualFor(minor, theory.QMajor, theory.QMinor), theory.DegreeI},
		}
	case ChromaticCircle:
		return []progressionStep{
			{0, qualFor(minor, theory.QMajor, theory.QMinor), theory.DegreeI},
			{2, theory.QDominant7, theory.DegreeVofV},
			{7, theory.QDominant7, theory.DegreeV},
			{0, qualFor(minor, theory.QMajor, theory.QMinor), theory.DegreeI},
		}
	case Subdominant:
		return []progressionStep{
			{0, qualFor(minor, theory.QMajor, theory.QMinor), theory.DegreeI},
			{5, qualFor(minor, theory.QMajor, theory.QMinor), theory.DegreeIV},
			{0, qualFor(minor, theory.QMajor, theory.QMinor), theory.DegreeI},
			{7, theory.QDominant7, theory.DegreeV},
		}
	case BorrowedChord:
		return []progressionStep{
			{0, qualFor(minor, theory.QMajor, theory.QMinor), theory.DegreeI},
			{8, theory.QMajor, "bVI"},
			{3, theory.QMajor, "bIII"},
			{7, theory.QDominant7, theory.DegreeV},
		}
	default:
		return []progressionStep{{0, qualFor(minor, theory.QMajor, theory.QMinor), theory.DegreeI}}
	}
}

func qualFor(minor bool, majorQ, minorQ theory.ChordQuality) theory.ChordQuality {
	if minor {
		return minorQ
	}
	return majorQ
}

// CreateProgression builds a short phrase from a named template, repeating
// it to cover totalDuration at the given resolution.
func CreateProgression(key theory.Key, totalDuration int, res Resolution, pt ProgressionType) *Timeline {
	steps := progressionTemplate(pt, key.Minor)
	step := TicksPerBar
	if res == ResolutionBeat {
		step = TicksPerBeat
	}

	tl := &Timeline{}
	tick := 0
	i := 0
	for tick < totalDuration {
		end := tick + step
		if end > totalDuration {
			end = totalDuration
		}
		s := steps[i%len(steps)]
		chord := theory.Chord{Root: (key.Tonic + s.rootOffset) % 12, Quality: s.quality, Degree: s.degree}
		_ = tl.AddEvent(Event{Tick: tick, EndTick: end, Key: key, Chord: chord, Bass: bassForKey(key, chord), Weight: 1})
		tick = end
		i++
	}
	return tl
}

// ApplyCadence rewrites the final two events to fit the requested cadence
// kind, leaving every earlier event untouched.
func (tl *Timeline) ApplyCadence(kind CadenceKind, key theory.Key) {
	n := len(tl.Events)
	if n < 2 {
		return
	}
	penultimate := &tl.Events[n-2]
	final := &tl.Events[n-1]

	switch kind {
	case CadencePerfect:
		penultimate.Chord = theory.Chord{Root: (key.Tonic + 7) % 12, Quality: theory.QDominant7, Degree: theory.DegreeV}
		final.Chord = theory.Chord{Root: key.Tonic, Quality: qualFor(key.Minor, theory.QMajor, theory.QMinor), Degree: theory.DegreeI}
	case CadenceHalf:
		final.Chord = theory.Chord{Root: (key.Tonic + 7) % 12, Quality: theory.QDominant7, Degree: theory.DegreeV}
	case CadenceDeceptive:
		penultimate.Chord = theory.Chord{Root: (key.Tonic + 7) % 12, Quality: theory.QDominant7, Degree: theory.DegreeV}
		final.Chord = theory.Chord{Root: (key.Tonic + 9) % 12, Quality: theory.QMinor, Degree: theory.DegreeVI}
	}
	penultimate.Bass = bassForKey(key, penultimate.Chord)
	final.Bass = bassForKey(key, final.Chord)
}
