package score

import "bachgen/timeline"

// CounterpointReport is the post-hoc metrics record spec.md 6/8 requires:
// parallel-perfect count, voice-crossing count, strong-beat-P4-over-bass
// count, plus RepairFailures / GuardOverflows fields for spec.md 7's error
// taxonomy. No pass increments those two fields, so they are always zero;
// the guard counts the notes it drops in its own guard.Report.
type CounterpointReport struct {
	ParallelPerfectCount   int
	VoiceCrossingCount     int
	StrongBeatP4OverBass   int
	RepairFailures         int
	GuardOverflows         int
}

// AuxData carries form-specific auxiliary output: section boundaries,
// the ground-bass note list (passacaglia), and the counterpoint report.
type AuxData struct {
	SectionBoundaries []int
	GroundBass        []NoteEvent
	Counterpoint      CounterpointReport
}

// Result is the pipeline's output record (spec.md 6).
type Result struct {
	Success             bool
	ErrorMessage        string
	Tracks              []Track
	TotalDurationTicks  int
	Timeline            *timeline.Timeline
	Aux                 AuxData
}

// Fail builds a failed Result carrying only an explanatory message -- no
// partial score is produced, per spec.md 7's configuration-error and
// empty-result-condition taxonomy.
func Fail(message string) *Result {
	return &Result{Success: false, ErrorMessage: message}
}
