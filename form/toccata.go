package form

import (
	"fmt"

	"bachgen/catalog"
	"bachgen/guard"
	"bachgen/instrument"
	"bachgen/ornament"
	"bachgen/rng"
	"bachgen/score"
	"bachgen/timeline"
	"bachgen/validate"
	"bachgen/voice"
)

// Toccata implements spec.md 4.5's two toccata archetypes: Perpetuus (a
// three-section Ascent/Plateau/Climax arc driven by continuous moto
// perpetuo) and Sectionalis (a five-section Free/QuasiFugal/Free/Cadenza/
// Coda arc with staggered fugal entries). Grounded on
// original_source/.../toccata_perpetuus.cpp and toccata_affinity.cpp.
func Toccata(cfg Config) (*score.Result, error) {
	switch cfg.ToccataKind {
	case ToccataSectionalisArchetype:
		return toccataSectionalis(cfg)
	default:
		return toccataPerpetuus(cfg)
	}
}

func toccataPerpetuus(cfg Config) (*score.Result, error) {
	if err := cfg.Validate(); err != nil {
		return score.Fail(err.Error()), err
	}
	bars := cfg.TotalBars
	if bars <= 0 {
		bars = 20
	}
	total := bars * timeline.TicksPerBar
	tl := timeline.CreateStandard(cfg.Key, total, timeline.ResolutionBar)
	if len(tl.Events) == 0 {
		err := fmt.Errorf("form: toccata perpetuus produced an empty timeline")
		return score.Fail(err.Error()), err
	}

	ascentEnd := total * 35 / 100
	plateauEnd := ascentEnd + total*40/100
	voice1Entry := ascentEnd * 40 / 100 // "enters at 40% of Ascent" -- integer arithmetic, rounds down

	src := rng.New(cfg.Seed)

	v0Ctx := voice.Context{Timeline: tl, StartTick: 0, EndTick: total, Voice: 0, Register: [2]int{60, 84}, Source: score.SourceFreeCounterpoint}
	v0 := voice.MotoPerpetuo(v0Ctx, 120, src)

	var v1 []score.NoteEvent
	padCtx := voice.Context{Timeline: tl, StartTick: voice1Entry, EndTick: ascentEnd, Voice: 1, Register: [2]int{48, 72}, Source: score.SourceFreeCounterpoint}
	v1 = append(v1, voice.SustainedPad(padCtx)...)
	plateauCtx := voice.Context{Timeline: tl, StartTick: ascentEnd, EndTick: plateauEnd, Voice: 1, Register: [2]int{48, 72}, Source: score.SourceFreeCounterpoint}
	v1 = append(v1, voice.MotoPerpetuo(plateauCtx, 240, src)...)

	// pedal enters at Plateau start, i.e. where Ascent ends.
	pedalCtx := voice.Context{Timeline: tl, StartTick: ascentEnd, EndTick: total, Voice: 2, Register: [2]int{28, 52}, Source: score.SourcePedalPoint}
	pedal := voice.WalkingBass(pedalCtx, src)

	report := &score.CounterpointReport{}
	st := &validate.Stack{MajorMode: !cfg.Key.Minor, Report: report}
	all := append([]score.NoteEvent{}, v0...)
	all = append(all, v1...)
	all = append(all, pedal...)
	all = st.Run(all, tl)
	all = stampRoles(all)
	all = ornament.Apply(all, ornament.Config{BeatsPerMinute: cfg.bpmOrDefault(), Probability: cfg.ornamentProbability()}, src, tl)
	all = st.RerunAfterOrnaments(all)

	model := instrument.ForKind(instrument.ChurchOrgan)
	all = guard.Run(all, model, &guard.Report{})

	byVoice := validate.ByVoice(all)
	specs := []score.VoiceSpec{
		{Voice: 0, Role: score.RoleGreat, Name: "Moto Perpetuo (Great)", Notes: byVoice[0]},
		{Voice: 1, Role: score.RoleSwell, Name: "Pad / Perpetuo (Swell)", Notes: byVoice[1]},
		{Voice: 2, Role: score.RolePedal, Name: "Pedal", Notes: byVoice[2]},
	}
	tracks := score.Aggregate(specs, instrument.ChurchOrgan)

	return &score.Result{
		Success: true, Tracks: tracks, TotalDurationTicks: total, Timeline: tl,
		Aux: score.AuxData{
			SectionBoundaries: []int{0, ascentEnd, plateauEnd, total},
			Counterpoint:      *report,
		},
	}, nil
}

func toccataSectionalis(cfg Config) (*score.Result, error) {
	if err := cfg.Validate(); err != nil {
		return score.Fail(err.Error()), err
	}
	bars := cfg.TotalBars
	if bars <= 0 {
		bars = 24
	}
	total := bars * timeline.TicksPerBar
	tl := timeline.CreateStandard(cfg.Key, total, timeline.ResolutionBar)
	if len(tl.Events) == 0 {
		err := fmt.Errorf("form: toccata sectionalis produced an empty timeline")
		return score.Fail(err.Error()), err
	}

	free1End := total * 20 / 100
	quasiFugalEnd := free1End + total*25/100
	free2End := quasiFugalEnd + total*20/100
	cadenzaEnd := free2End + total*15/100

	src := rng.New(cfg.Seed)
	motif := catalog.MotifForSeed(cfg.Seed)

	var voices [3][]score.NoteEvent
	regs := [3][2]int{{60, 84}, {48, 72}, {55, 79}}

	for v := 0; v < 3; v++ {
		c := voice.Context{Timeline: tl, StartTick: 0, EndTick: free1End, Voice: v, Register: regs[v], Source: score.SourceFreeCounterpoint}
		voices[v] = append(voices[v], voice.ScalePassage(c, 480, src)...)
	}

	entryStep := 2 * timeline.TicksPerBar
	for v := 0; v < 3; v++ {
		entry := free1End + v*entryStep
		if entry >= quasiFugalEnd {
			continue
		}
		c := voice.Context{Timeline: tl, StartTick: entry, EndTick: quasiFugalEnd, Voice: v, Register: regs[v], Source: score.SourceFreeCounterpoint}
		voices[v] = append(voices[v], voice.Imitation(c, motif, voice.TransformExact, 0)...)
		rest := voice.Context{Timeline: tl, StartTick: entry + motifLength(motif), EndTick: quasiFugalEnd, Voice: v, Register: regs[v], Source: score.SourceFreeCounterpoint}
		if rest.StartTick < rest.EndTick {
			voices[v] = append(voices[v], voice.ScalePassage(rest, 240, src)...)
		}
	}

	for v := 0; v < 3; v++ {
		c := voice.Context{Timeline: tl, StartTick: quasiFugalEnd, EndTick: free2End, Voice: v, Register: regs[v], Source: score.SourceFreeCounterpoint}
		voices[v] = append(voices[v], voice.ScalePassage(c, 480, src)...)
	}

	cadenzaCtx := voice.Context{Timeline: tl, StartTick: free2End, EndTick: cadenzaEnd, Voice: 2, Register: [2]int{28, 52}, Source: score.SourcePedalPoint}
	voices[2] = append(voices[2], cadenzaPedal(cadenzaCtx, src)...)

	for v := 0; v < 3; v++ {
		c := voice.Context{Timeline: tl, StartTick: cadenzaEnd, EndTick: total, Voice: v, Register: regs[v], Source: score.SourceFreeCounterpoint}
		voices[v] = append(voices[v], voice.MotoPerpetuo(c, 240, src)...)
	}

	report := &score.CounterpointReport{}
	st := &validate.Stack{MajorMode: !cfg.Key.Minor, Report: report}
	all := append([]score.NoteEvent{}, voices[0]...)
	all = append(all, voices[1]...)
	all = append(all, voices[2]...)
	all = st.Run(all, tl)
	all = stampRoles(all)
	all = ornament.Apply(all, ornament.Config{BeatsPerMinute: cfg.bpmOrDefault(), Probability: cfg.ornamentProbability()}, src, tl)
	all = st.RerunAfterOrnaments(all)

	model := instrument.ForKind(instrument.ChurchOrgan)
	all = guard.Run(all, model, &guard.Report{})

	byVoice := validate.ByVoice(all)
	specs := []score.VoiceSpec{
		{Voice: 0, Role: score.RoleGreat, Name: "Section Voice I (Great)", Notes: byVoice[0]},
		{Voice: 1, Role: score.RoleSwell, Name: "Section Voice II (Swell)", Notes: byVoice[1]},
		{Voice: 2, Role: score.RolePedal, Name: "Section Voice III / Pedal", Notes: byVoice[2]},
	}
	tracks := score.Aggregate(specs, instrument.ChurchOrgan)

	return &score.Result{
		Success: true, Tracks: tracks, TotalDurationTicks: total, Timeline: tl,
		Aux: score.AuxData{
			SectionBoundaries: []int{0, free1End, quasiFugalEnd, free2End, cadenzaEnd, total},
			Counterpoint:      *report,
		},
	}, nil
}

func motifLength(m catalog.Motif) int {
	return len(m.DegreeSequence) * m.NoteTicks
}

// cadenzaPedal plays a descending scale, then a dominant-seventh arpeggio,
// then an oscillating trill on the dominant -- the pedal-only cadenza
// gesture spec.md 4.5 describes for the Sectionalis archetype.
func cadenzaPedal(c voice.Context, src *rng.Source) []score.NoteEvent {
	var out []score.NoteEvent
	ev, _ := c.Timeline.GetAt(c.StartTick)
	scale := scaleForKey(ev.Key)
	top, low := scale.PitchToAbsoluteDegree(c.Register[1]), scale.PitchToAbsoluteDegree(c.Register[0])
	dom := nearestInRegister((ev.Key.Tonic+7)%12, c.Register)
	third := (c.EndTick - c.StartTick) / 3
	descentCtx := c
	descentCtx.EndTick = c.StartTick + third
	scaleDescent := voice.MotoPerpetuo(descentCtx, 240, src)
	for i := range scaleDescent {
		scaleDescent[i].Pitch = scale.AbsoluteDegreeToPitch(top - i%max1(top-low))
	}
	out = append(out, scaleDescent...)

	arpCtx := c
	arpCtx.StartTick = descentCtx.EndTick
	arpCtx.EndTick = descentCtx.EndTick + third
	for i, t := 0, arpCtx.StartTick; t < arpCtx.EndTick; i, t = i+1, t+240 {
		out = append(out, note(c, t, min(240, arpCtx.EndTick-t), dom+[]int{0, 4, 7, 10}[i%4]))
	}

	tick := arpCtx.EndTick
	toggle := false
	for tick < c.EndTick {
		dur := 60
		if tick+dur > c.EndTick {
			dur = c.EndTick - tick
		}
		pitch := dom
		if toggle {
			pitch = dom + 2
		}
		out = append(out, note(c, tick, dur, pitch))
		tick += dur
		toggle = !toggle
	}
	return out
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
