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

// Fantasia implements spec.md 4.5: voice 0 ornamental quarter+eighth
// melody, voice 1 sustained half+whole chord pad, voice 2 an eighth-note
// countermelody, voice 3 a slow whole-note pedal bass. Grounded on the
// teacher's free-fantasia-style song entries, which layer exactly this
// fast-melody / slow-pad / countermelody / pedal texture.
func Fantasia(cfg Config) (*score.Result, error) {
	if err := cfg.Validate(); err != nil {
		return score.Fail(err.Error()), err
	}
	bars := cfg.SectionBars
	if bars <= 0 {
		bars = 16
	}
	total := bars * timeline.TicksPerBar
	tl := timeline.CreateStandard(cfg.Key, total, timeline.ResolutionBar)
	if len(tl.Events) == 0 {
		err := fmt.Errorf("form: fantasia produced an empty timeline")
		return score.Fail(err.Error()), err
	}

	src := rng.New(cfg.Seed)

	melodyCtx := voice.Context{Timeline: tl, StartTick: 0, EndTick: total, Voice: 0, Register: [2]int{60, 84}, Source: score.SourceFreeCounterpoint}
	melody := quarterEighthMelody(melodyCtx, src)

	padCtx := voice.Context{Timeline: tl, StartTick: 0, EndTick: total, Voice: 1, Register: [2]int{48, 72}, Source: score.SourceFreeCounterpoint}
	pad := halfWholePad(padCtx)

	counterCtx := voice.Context{Timeline: tl, StartTick: 0, EndTick: total, Voice: 2, Register: [2]int{55, 79}, Source: score.SourceFreeCounterpoint}
	counter := voice.ScalePassage(counterCtx, timeline.TicksPerBeat/2, src)

	pedalCtx := voice.Context{Timeline: tl, StartTick: 0, EndTick: total, Voice: 3, Register: [2]int{28, 52}, Source: score.SourcePedalPoint}
	pedal := wholeNotePedal(pedalCtx)

	report := &score.CounterpointReport{}
	st := &validate.Stack{MajorMode: !cfg.Key.Minor, Report: report}
	all := append([]score.NoteEvent{}, melody...)
	all = append(all, pad...)
	all = append(all, counter...)
	all = append(all, pedal...)
	all = st.Run(all, tl)
	all = stampRoles(all)

	// Only the fast-moving melody and countermelody voices are eligible for
	// ornamentation; the chord pad and pedal must keep their long note
	// values intact (fixture S4's duration-floor property for voice 1). This
	// is a stricter, form-specific restriction layered on top of the shared
	// role/duration eligibility check (voice 1's Respond role and voice 3's
	// Ground role would otherwise only exclude the pedal).
	byVoice := validate.ByVoice(all)
	ornCfg := ornament.Config{BeatsPerMinute: cfg.bpmOrDefault(), Probability: cfg.ornamentProbability()}
	byVoice[0] = ornament.Apply(byVoice[0], ornCfg, src, tl)
	byVoice[2] = ornament.Apply(byVoice[2], ornCfg, src, tl)
	all = append([]score.NoteEvent{}, byVoice[0]...)
	all = append(all, byVoice[1]...)
	all = append(all, byVoice[2]...)
	all = append(all, byVoice[3]...)
	all = st.RerunAfterOrnaments(all)

	model := instrument.ForKind(instrument.ChurchOrgan)
	all = guard.Run(all, model, &guard.Report{})

	byVoice = validate.ByVoice(all)
	specs := []score.VoiceSpec{
		{Voice: 0, Role: score.RoleGreat, Name: "Melody (Great)", Notes: byVoice[0]},
		{Voice: 1, Role: score.RoleSwell, Name: "Chord Pad (Swell)", Notes: byVoice[1]},
		{Voice: 2, Role: score.RolePositiv, Name: "Countermelody (Positiv)", Notes: byVoice[2]},
		{Voice: 3, Role: score.RolePedal, Name: "Pedal", Notes: byVoice[3]},
	}
	tracks := score.Aggregate(specs, instrument.ChurchOrgan)

	return &score.Result{
		Success: true, Tracks: tracks, TotalDurationTicks: total, Timeline: tl,
		Aux: score.AuxData{Counterpoint: *report},
	}, nil
}

// quarterEighthMelody picks a quarter or an eighth note at random for each
// step and uses no other value, so
// every note is <= a quarter note -- the duration-ceiling property spec.md
// 8's fixture S4 checks for voice 0.
func quarterEighthMelody(c voice.Context, src *rng.Source) []score.NoteEvent {
	var out []score.NoteEvent
	tick := c.StartTick
	degree := 0
	for tick < c.EndTick {
		ev, ok := c.Timeline.GetAt(tick)
		if !ok {
			break
		}
		scale := scaleForKey(ev.Key)
		dur := timeline.TicksPerBeat
		if src.Bool(0.5) {
			dur = timeline.TicksPerBeat / 2
		}
		if tick+dur > c.EndTick {
			dur = c.EndTick - tick
		}
		step := 1
		if src.Bool(0.5) {
			step = -1
		}
		degree += step
		anchor := c.Register[0] + 7
		pitch := scale.AbsoluteDegreeToPitch(scale.PitchToAbsoluteDegree(anchor) + degree)
		out = append(out, note(c, tick, dur, pitch))
		tick += dur
	}
	return out
}

// halfWholePad sustains each harmonic event's nearest chord tone for a half
// note, then a whole note, alternating -- every note is >= a half note, the
// duration-floor property fixture S4 checks for voice 1.
func halfWholePad(c voice.Context) []score.NoteEvent {
	center := (c.Register[0] + c.Register[1]) / 2
	var out []score.NoteEvent
	tick := c.StartTick
	useWhole := false
	for tick < c.EndTick {
		ev, ok := c.Timeline.GetAt(tick)
		if !ok {
			break
		}
		dur := timeline.TicksPerBar / 2
		if useWhole {
			dur = timeline.TicksPerBar
		}
		if tick+dur > c.EndTick {
			dur = c.EndTick - tick
		}
		pitch := ev.Chord.NearestChordTone(center)
		out = append(out, note(c, tick, dur, pitch))
		tick += dur
		useWhole = !useWhole
	}
	return out
}

// wholeNotePedal sustains the chord root for each bar.
func wholeNotePedal(c voice.Context) []score.NoteEvent {
	var out []score.NoteEvent
	tick := c.StartTick
	for tick < c.EndTick {
		ev, ok := c.Timeline.GetAt(tick)
		if !ok {
			break
		}
		dur := timeline.TicksPerBar
		if tick+dur > c.EndTick {
			dur = c.EndTick - tick
		}
		pitch := nearestInRegister(ev.Chord.Root, c.Register)
		out = append(out, note(c, tick, dur, pitch))
		tick += dur
	}
	return out
}

func note(c voice.Context, tick, dur, pitch int) score.NoteEvent {
	return score.NoteEvent{StartTick: tick, Duration: dur, Pitch: pitch, Velocity: instrument.OrganVelocity, Voice: c.Voice, Source: c.Source}
}
