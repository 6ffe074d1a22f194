package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bachgen/analyzer"
	"bachgen/score"
)

func TestAnalyzeDetectsParallelFifths(t *testing.T) {
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 60, Voice: 0},
		{StartTick: 480, Duration: 480, Pitch: 62, Voice: 0},
		{StartTick: 0, Duration: 480, Pitch: 67, Voice: 1},
		{StartTick: 480, Duration: 480, Pitch: 69, Voice: 1},
	}
	report := analyzer.Analyze(notes)
	assert.Equal(t, 1, report.ParallelPerfectCount)
}

func TestAnalyzeDetectsVoiceCrossing(t *testing.T) {
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 480, Pitch: 55, Voice: 0},
		{StartTick: 0, Duration: 480, Pitch: 60, Voice: 1},
	}
	report := analyzer.Analyze(notes)
	assert.Equal(t, 1, report.VoiceCrossingCount)
}

func TestAnalyzeCleanScoreHasNoViolations(t *testing.T) {
	notes := []score.NoteEvent{
		{StartTick: 0, Duration: 1920, Pitch: 72, Voice: 0},
		{StartTick: 0, Duration: 1920, Pitch: 67, Voice: 1},
		{StartTick: 0, Duration: 1920, Pitch: 60, Voice: 2},
	}
	report := analyzer.Analyze(notes)
	assert.Equal(t, 0, report.ParallelPerfectCount)
	assert.Equal(t, 0, report.VoiceCrossingCount)
}
