// Package analyzer produces a post-hoc CounterpointReport over a finished
// score -- the same three counts the validate passes track live
// (parallel-perfect motion, voice crossing, strong-beat P4-over-bass) but
// computed independently over the final note set, for callers (tests,
// fixtures) that want to audit output without threading a live report
// through the pipeline. Grounded on original_source's analyzer.cpp, which
// runs the identical three sweeps as a standalone post-hoc QA step.
package analyzer

import (
	"sort"

	"bachgen/score"
)

// Analyze groups notes by voice and counts the three named violations
// across every voice pair / bar downbeat.
func Analyze(notes []score.NoteEvent) score.CounterpointReport {
	byVoice := groupByVoice(notes)
	voices := sortedVoiceIndices(byVoice)

	var report score.CounterpointReport
	report.ParallelPerfectCount = countParallels(byVoice, voices)
	report.VoiceCrossingCount = countCrossings(byVoice, voices)
	report.StrongBeatP4OverBass = countStrongBeatP4(byVoice, voices)
	return report
}

func groupByVoice(notes []score.NoteEvent) map[int][]score.NoteEvent {
	out := map[int][]score.NoteEvent{}
	for _, n := range notes {
		out[n.Voice] = append(out[n.Voice], n)
	}
	for v := range out {
		sort.SliceStable(out[v], func(i, j int) bool { return out[v][i].StartTick < out[v][j].StartTick })
	}
	return out
}

func sortedVoiceIndices(byVoice map[int][]score.NoteEvent) []int {
	out := make([]int, 0, len(byVoice))
	for v := range byVoice {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func countParallels(byVoice map[int][]score.NoteEvent, voices []int) int {
	count := 0
	for i := 0; i < len(voices); i++ {
		for j := i + 1; j < len(voices); j++ {
			a, b := byVoice[voices[i]], byVoice[voices[j]]
			n := len(a)
			if len(b) < n {
				n = len(b)
			}
			for k := 1; k < n; k++ {
				if a[k-1].StartTick != b[k-1].StartTick || a[k].StartTick != b[k].StartTick {
					continue
				}
				if isPerfectParallel(a[k-1].Pitch, b[k-1].Pitch, a[k].Pitch, b[k].Pitch) {
					count++
				}
			}
		}
	}
	return count
}

func isPerfectParallel(a0, b0, a1, b1 int) bool {
	i0 := mod12(b0 - a0)
	i1 := mod12(b1 - a1)
	if i0 != i1 || (i0 != 0 && i0 != 7) {
		return false
	}
	moved := b1 != b0 || a1 != a0
	sameDir := (b1-b0 > 0) == (a1-a0 > 0)
	return moved && sameDir
}

func countCrossings(byVoice map[int][]score.NoteEvent, voices []int) int {
	count := 0
	for i := 0; i+1 < len(voices); i++ {
		upper, lower := byVoice[voices[i]], byVoice[voices[i+1]]
		n := len(upper)
		if len(lower) < n {
			n = len(lower)
		}
		for k := 0; k < n; k++ {
			if upper[k].StartTick != lower[k].StartTick {
				continue
			}
			if upper[k].Pitch < lower[k].Pitch {
				count++
			}
		}
	}
	return count
}

func countStrongBeatP4(byVoice map[int][]score.NoteEvent, voices []int) int {
	const barTicks = 1920
	count := 0
	if len(voices) == 0 {
		return 0
	}
	for _, n := range byVoice[voices[0]] {
		if n.StartTick%barTicks != 0 {
			continue
		}
		bassPitch, ok := lowestAt(byVoice, voices, n.StartTick)
		if !ok {
			continue
		}
		for _, v := range voices {
			idx := atTick(byVoice[v], n.StartTick)
			if idx < 0 {
				continue
			}
			if mod12(byVoice[v][idx].Pitch-bassPitch) == 5 {
				count++
			}
		}
	}
	return count
}

func lowestAt(byVoice map[int][]score.NoteEvent, voices []int, tick int) (int, bool) {
	best := 1 << 30
	found := false
	for _, v := range voices {
		idx := atTick(byVoice[v], tick)
		if idx < 0 {
			continue
		}
		if byVoice[v][idx].Pitch < best {
			best = byVoice[v][idx].Pitch
			found = true
		}
	}
	return best, found
}

func atTick(notes []score.NoteEvent, tick int) int {
	for i, n := range notes {
		if n.StartTick == tick {
			return i
		}
	}
	return -1
}

func mod12(v int) int {
	m := v % 12
	if m < 0 {
		m += 12
	}
	return m
}
