package form

import (
	"fmt"

	"bachgen/analyzer"
	"bachgen/catalog"
	"bachgen/guard"
	"bachgen/instrument"
	"bachgen/ornament"
	"bachgen/rng"
	"bachgen/score"
	"bachgen/theory"
	"bachgen/timeline"
	"bachgen/validate"
	"bachgen/voice"
)

// ChoralePrelude implements spec.md 4.5's chorale prelude: a fixed cantus
// firmus on the Swell voice in long values, Great voice weaving 8th/16th
// figuration against it, Pedal sustaining root/fifth bass, and an inner
// voice (a sustained chord-tone pad) filling out a 4th voice. Grounded on the teacher's chorale
// song-entry functions, generalized from one hardcoded tune to the
// seed-selected catalog.
func ChoralePrelude(cfg Config) (*score.Result, error) {
	if err := cfg.Validate(); err != nil {
		return score.Fail(err.Error()), err
	}

	melody := catalog.ChoraleForSeed(cfg.Seed)
	scale := scaleForKey(cfg.Key)
	cantusAnchor := cfg.Key.Tonic + 60
	cantusPitches := realizeMelody(scale, melody.DegreeSequence, cantusAnchor)

	totalDuration := len(cantusPitches) * melody.NoteTicks
	tl := timeline.CreateStandard(cfg.Key, totalDuration, timeline.ResolutionBeat)
	if len(tl.Events) == 0 {
		err := fmt.Errorf("form: chorale prelude produced an empty timeline")
		return score.Fail(err.Error()), err
	}

	cantus := make([]score.NoteEvent, 0, len(cantusPitches))
	tick := 0
	for _, p := range cantusPitches {
		cantus = append(cantus, score.NoteEvent{
			StartTick: tick, Duration: melody.NoteTicks, Pitch: p,
			Velocity: instrument.OrganVelocity, Voice: 1, Source: score.SourceCantusFixed,
		})
		tick += melody.NoteTicks
	}

	src := rng.New(cfg.Seed)

	greatCtx := voice.Context{Timeline: tl, StartTick: 0, EndTick: totalDuration, Voice: 0, Register: [2]int{60, 84}, Source: score.SourceFreeCounterpoint}
	great := figurateAgainstCantus(greatCtx, cantus, src)

	innerCtx := voice.Context{Timeline: tl, StartTick: 0, EndTick: totalDuration, Voice: 2, Register: [2]int{48, 72}, Source: score.SourceFreeCounterpoint}
	inner := voice.SustainedPad(innerCtx)
	for i := range inner {
		inner[i].Voice = 2
	}

	pedalCtx := voice.Context{Timeline: tl, StartTick: 0, EndTick: totalDuration, Voice: 3, Register: [2]int{28, 52}, Source: score.SourcePedalPoint}
	pedal := pedalRootFifth(pedalCtx)

	report := &score.CounterpointReport{}
	st := &validate.Stack{MajorMode: !cfg.Key.Minor, Report: report}

	allNotes := append([]score.NoteEvent{}, great...)
	allNotes = append(allNotes, cantus...)
	allNotes = append(allNotes, inner...)
	allNotes = append(allNotes, pedal...)
	allNotes = st.Run(allNotes, tl)
	allNotes = stampRoles(allNotes)

	allNotes = ornament.Apply(allNotes, ornament.Config{BeatsPerMinute: cfg.bpmOrDefault(), Probability: cfg.ornamentProbability()}, src, tl)
	allNotes = st.RerunAfterOrnaments(allNotes)

	model := instrument.ForKind(instrument.ChurchOrgan)
	gRep := &guard.Report{}
	allNotes = guard.Run(allNotes, model, gRep)

	byVoice := validate.ByVoice(allNotes)
	specs := []score.VoiceSpec{
		{Voice: 0, Role: score.RoleGreat, Name: "Counterpoint (Great)", Notes: byVoice[0]},
		{Voice: 1, Role: score.RoleSwell, Name: "Cantus Firmus (Swell)", Notes: byVoice[1]},
		{Voice: 2, Role: score.RoleGreat, Name: "Inner Voice (Great)", Notes: byVoice[2]},
		{Voice: 3, Role: score.RolePedal, Name: "Pedal", Notes: byVoice[3]},
	}
	tracks := score.Aggregate(specs, instrument.ChurchOrgan)

	*report = analyzer.Analyze(allNotes)

	return &score.Result{
		Success:            true,
		Tracks:             tracks,
		TotalDurationTicks: totalDuration,
		Timeline:           tl,
		Aux: score.AuxData{
			Counterpoint: *report,
		},
	}, nil
}

func scaleForKey(key theory.Key) theory.Scale {
	t := theory.Major
	if key.Minor {
		t = theory.HarmonicMinor
	}
	return theory.Scale{Tonic: key.Tonic, Type: t}
}

func realizeMelody(scale theory.Scale, degrees []int, anchor int) []int {
	base := scale.PitchToAbsoluteDegree(anchor) - degrees[0]
	out := make([]int, len(degrees))
	for i, d := range degrees {
		out[i] = scale.AbsoluteDegreeToPitch(base + d)
	}
	return out
}

// figurateAgainstCantus fills the Great voice with scale-passage figuration
// under each cantus note: eighth notes under a cantus note that starts on a
// bar downbeat, sixteenth notes under one that starts mid-bar (spec.md 4.5:
// "structural rhythm alternates: downbeats carry longer figuration notes
// than midbeats").
func figurateAgainstCantus(c voice.Context, cantus []score.NoteEvent, src *rng.Source) []score.NoteEvent {
	var out []score.NoteEvent
	for _, cn := range cantus {
		noteTicks := 120
		if cn.StartTick%timeline.TicksPerBar == 0 {
			noteTicks = 240
		}
		seg := voice.Context{Timeline: c.Timeline, StartTick: cn.StartTick, EndTick: cn.EndTick(), Voice: c.Voice, Register: c.Register, Source: c.Source}
		out = append(out, voice.ScalePassage(seg, noteTicks, src)...)
	}
	return out
}

// pedalRootFifth takes the harmonic event starting each half-bar span (an
// event a half-bar or longer is its own span) and sustains its root for the
// first half of the span and its fifth for the second half: quarter notes
// over a one-event-per-beat timeline, half notes over a one-event-per-bar one.
func pedalRootFifth(c voice.Context) []score.NoteEvent {
	var out []score.NoteEvent
	for _, ev := range c.Timeline.Events {
		if ev.EndTick <= c.StartTick || ev.Tick >= c.EndTick || ev.Tick%(timeline.TicksPerBar/2) != 0 {
			continue
		}
		end := max(ev.EndTick, min(ev.Tick+timeline.TicksPerBar/2, c.EndTick))
		half := (ev.Tick + end) / 2
		rootPitch := nearestInRegister(ev.Chord.Root, c.Register)
		fifthPC := (ev.Chord.Root + 7) % 12
		fifthPitch := nearestInRegister(fifthPC, c.Register)
		out = append(out, score.NoteEvent{StartTick: ev.Tick, Duration: half - ev.Tick, Pitch: rootPitch, Velocity: instrument.OrganVelocity, Voice: c.Voice, Source: score.SourcePedalPoint})
		if half < end {
			out = append(out, score.NoteEvent{StartTick: half, Duration: end - half, Pitch: fifthPitch, Velocity: instrument.OrganVelocity, Voice: c.Voice, Source: score.SourcePedalPoint})
		}
	}
	return out
}

func nearestInRegister(pc int, register [2]int) int {
	center := (register[0] + register[1]) / 2
	base := (center/12)*12 + pc
	best := base
	bestDist := abs(base - center)
	for _, cand := range []int{base - 12, base + 12} {
		if d := abs(cand - center); d < bestDist {
			best = cand
			bestDist = d
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
