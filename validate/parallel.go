package validate

import "bachgen/score"

// isPerfectParallel reports whether two voices move in the same direction
// from a perfect unison/fifth/octave (compared mod 12) into the same perfect
// interval -- the consecutive motion counterpoint forbids.
func isPerfectParallel(a0, b0, a1, b1 int) bool {
	i0 := ((b0 - a0) % 12 + 12) % 12
	i1 := ((b1 - a1) % 12 + 12) % 12
	if i0 != i1 {
		return false
	}
	if i0 != 0 && i0 != 7 {
		return false
	}
	sameDir := (b1-b0 > 0) == (a1-a0 > 0)
	moved := b1 != b0 || a1 != a0
	return sameDir && moved
}

// parallelPerfectPass detects consecutive perfect fifths/octaves/unisons
// between every voice pair across adjacent beat-aligned notes and shifts the
// lower-protection voice's second note by octave (or to the nearest
// non-parallel chord-safe neighbor) to break the motion. Runs up to
// maxIterations times since one repair can introduce a new parallel
// elsewhere. Grounded on original_source's parallel_perfect_repair, which
// iterates the same fixed-point loop with a repair-count ceiling.
func parallelPerfectPass(byVoice map[int][]score.NoteEvent, maxIterations int, report *score.CounterpointReport) map[int][]score.NoteEvent {
	voices := voiceIndices(byVoice)
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for vi := 0; vi < len(voices); vi++ {
			for vj := vi + 1; vj < len(voices); vj++ {
				a := byVoice[voices[vi]]
				b := byVoice[voices[vj]]
				n := len(a)
				if len(b) < n {
					n = len(b)
				}
				for k := 1; k < n; k++ {
					if a[k-1].StartTick != b[k-1].StartTick || a[k].StartTick != b[k].StartTick {
						continue
					}
					if !isPerfectParallel(a[k-1].Pitch, b[k-1].Pitch, a[k].Pitch, b[k].Pitch) {
						continue
					}
					if report != nil {
						report.ParallelPerfectCount++
					}
					if repairParallel(&a[k], &b[k]) {
						changed = true
					}
				}
				byVoice[voices[vi]] = a
				byVoice[voices[vj]] = b
			}
		}
		if !changed {
			break
		}
	}
	return byVoice
}

// repairParallel shifts whichever of the two notes has lower protection by
// an octave to break the parallel motion; reports whether it could.
func repairParallel(a, b *score.NoteEvent) bool {
	lower := a
	other := b
	if b.Protection() < a.Protection() {
		lower = b
		other = a
	}
	allowed, _ := canShift(lower.Protection())
	if !allowed {
		return false
	}
	candidateUp := lower.Pitch + 12
	candidateDown := lower.Pitch - 12
	if abs(candidateUp-other.Pitch) >= abs(candidateDown-other.Pitch) && candidateDown > 0 {
		lower.Pitch = candidateDown
	} else {
		lower.Pitch = candidateUp
	}
	lower.ModifiedBy |= score.ModParallel
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func voiceIndices(byVoice map[int][]score.NoteEvent) []int {
	out := make([]int, 0, len(byVoice))
	for v := range byVoice {
		out = append(out, v)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
