package form

import (
	"fmt"

	"bachgen/guard"
	"bachgen/instrument"
	"bachgen/ornament"
	"bachgen/rng"
	"bachgen/score"
	"bachgen/timeline"
	"bachgen/validate"
	"bachgen/voice"
)

// Prelude implements spec.md 4.5/6's two PreludeType archetypes: Perpetual
// (continuous moto perpetuo top voice over a slower middle voice and a
// bass) and FreeForm (a mixed step/leap melody over a sparser
// accompaniment). Grounded on the teacher's prelude-style song entries,
// split here into the two archetypes the spec names.
func Prelude(cfg Config) (*score.Result, error) {
	if err := cfg.Validate(); err != nil {
		return score.Fail(err.Error()), err
	}
	bars := cfg.TotalBars
	if bars <= 0 {
		bars = 12
	}
	numVoices := cfg.NumVoices
	if numVoices <= 0 {
		numVoices = 3
	}
	total := bars * timeline.TicksPerBar
	tl := timeline.CreateStandard(cfg.Key, total, timeline.ResolutionBar)
	if len(tl.Events) == 0 {
		err := fmt.Errorf("form: prelude produced an empty timeline")
		return score.Fail(err.Error()), err
	}

	src := rng.New(cfg.Seed)
	topCtx := voice.Context{Timeline: tl, StartTick: 0, EndTick: total, Voice: 0, Register: [2]int{60, 84}, Source: score.SourceFreeCounterpoint}
	midCtx := voice.Context{Timeline: tl, StartTick: 0, EndTick: total, Voice: 1, Register: [2]int{48, 72}, Source: score.SourceFreeCounterpoint}
	bassCtx := voice.Context{Timeline: tl, StartTick: 0, EndTick: total, Voice: 2, Register: [2]int{28, 52}, Source: score.SourcePedalPoint}

	var top, mid []score.NoteEvent
	switch cfg.PreludeKind {
	case PreludePerpetual:
		top = voice.MotoPerpetuo(topCtx, 120, src)
		mid = voice.Arpeggio(midCtx, 480, src)
	default:
		top = mixedStepLeapMelody(topCtx, src)
		mid = voice.SustainedPad(midCtx)
	}
	bass := voice.WalkingBass(bassCtx, src)

	report := &score.CounterpointReport{}
	st := &validate.Stack{MajorMode: !cfg.Key.Minor, Report: report}
	all := append([]score.NoteEvent{}, top...)
	all = append(all, mid...)
	if numVoices >= 3 {
		all = append(all, bass...)
	}
	all = st.Run(all, tl)
	all = stampRoles(all)
	all = ornament.Apply(all, ornament.Config{BeatsPerMinute: cfg.bpmOrDefault(), Probability: cfg.ornamentProbability()}, src, tl)
	all = st.RerunAfterOrnaments(all)

	model := instrument.ForKind(instrument.ChurchOrgan)
	all = guard.Run(all, model, &guard.Report{})

	byVoice := validate.ByVoice(all)
	specs := []score.VoiceSpec{
		{Voice: 0, Role: score.RoleGreat, Name: "Prelude Melody (Great)", Notes: byVoice[0]},
		{Voice: 1, Role: score.RoleSwell, Name: "Prelude Middle (Swell)", Notes: byVoice[1]},
	}
	if numVoices >= 3 {
		specs = append(specs, score.VoiceSpec{Voice: 2, Role: score.RolePedal, Name: "Prelude Bass (Pedal)", Notes: byVoice[2]})
	}
	tracks := score.Aggregate(specs, instrument.ChurchOrgan)

	return &score.Result{
		Success: true, Tracks: tracks, TotalDurationTicks: total, Timeline: tl,
		Aux: score.AuxData{Counterpoint: *report},
	}, nil
}

// mixedStepLeapMelody mixes stepwise motion with chord-tone leaps so the
// resulting stepwise ratio lands in the lower free-form band (spec.md 8's
// [0.20, 0.75], as opposed to perpetual motion's near-all-stepwise line).
func mixedStepLeapMelody(c voice.Context, src *rng.Source) []score.NoteEvent {
	var out []score.NoteEvent
	tick := c.StartTick
	pitch := c.Register[0] + 7
	for tick < c.EndTick {
		ev, ok := c.Timeline.GetAt(tick)
		if !ok {
			break
		}
		dur := timeline.TicksPerBeat
		if tick+dur > c.EndTick {
			dur = c.EndTick - tick
		}
		if src.Bool(0.45) {
			scale := scaleForKey(ev.Key)
			degree := scale.PitchToAbsoluteDegree(pitch)
			if src.Bool(0.5) {
				degree++
			} else {
				degree--
			}
			pitch = scale.AbsoluteDegreeToPitch(degree)
		} else {
			tones := ev.Chord.Tones()
			pc := rng.Select(src, tones)
			pitch = nearestInRegister(pc, c.Register)
		}
		out = append(out, note(c, tick, dur, pitch))
		tick += dur
	}
	return out
}
