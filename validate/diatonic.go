package validate

import (
	"bachgen/score"
	"bachgen/theory"
	"bachgen/timeline"
)

func scaleFor(key theory.Key) theory.Scale {
	t := theory.Major
	if key.Minor {
		t = theory.HarmonicMinor
	}
	return theory.Scale{Tonic: key.Tonic, Type: t}
}

// diatonicEnforcementPass snaps any note outside the governing key's scale
// to the nearest scale tone; only runs for major-mode pieces (spec.md 4.6:
// minor-mode writing tolerates raised/lowered scale-degree variants this
// pass would otherwise fight). Grounded on original_source's
// diatonic_enforcement_repair's major-only gate.
func diatonicEnforcementPass(byVoice map[int][]score.NoteEvent, tl *timeline.Timeline) map[int][]score.NoteEvent {
	if tl == nil {
		return byVoice
	}
	for voice, notes := range byVoice {
		for i, n := range notes {
			allowed, octaveOnly := canShift(n.Protection())
			if !allowed || octaveOnly {
				continue
			}
			ev, ok := tl.GetAt(n.StartTick)
			if !ok {
				continue
			}
			scale := scaleFor(ev.Key)
			if scale.IsScaleTone(n.Pitch) {
				continue
			}
			notes[i].Pitch = scale.NearestScaleTone(n.Pitch)
			notes[i].ModifiedBy |= score.ModDiatonic
		}
		byVoice[voice] = notes
	}
	return byVoice
}
