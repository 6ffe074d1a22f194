package form

import (
	"fmt"

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

// GroundBass builds the fixed passacaglia theme: a descending stepwise line
// from the tonic through in-scale pedal-range degrees, cadential tail V->I
// over the last two notes, first and last note's pitch class always the
// tonic, interior intervals <= a major sixth, one whole note per bar. (One
// note per bar, not the two-half-notes-per-bar reading of the prose
// description, to match the bars-equals-note-count fixture contract --
// see DESIGN.md.) Grounded on original_source's ground_bass_builder.
func GroundBass(key theory.Key, bars int) []score.NoteEvent {
	if bars < 1 {
		bars = 8
	}
	scale := scaleForKey(key)
	anchor := key.Tonic + 48 // low pedal register, around C2-ish
	if anchor < 28 {
		anchor += 12
	}

	total := bars
	pitches := make([]int, total)

	tonicDegree := scale.PitchToAbsoluteDegree(anchor)
	for i := 0; i < total-2; i++ {
		pitches[i] = scale.AbsoluteDegreeToPitch(tonicDegree - i)
	}
	pitches[0] = anchor
	if total >= 2 {
		// cadential tail: V -> I, landing back on the tonic pitch class
		// within an octave of the line's last interior note.
		last := anchor
		if total > 2 {
			last = pitches[total-3]
		}
		dominantPC := (key.Tonic + 7) % 12
		pitches[total-2] = nearestInRegister(dominantPC, [2]int{last - 12, last + 12})
		pitches[total-1] = nearestInRegister(key.Tonic, [2]int{pitches[total-2] - 12, pitches[total-2] + 12})
	}

	out := make([]score.NoteEvent, total)
	tick := 0
	for i, p := range pitches {
		out[i] = score.NoteEvent{StartTick: tick, Duration: timeline.TicksPerBar, Pitch: p, Velocity: instrument.OrganVelocity, Voice: 3, Source: score.SourceGroundBass}
		tick += timeline.TicksPerBar
	}
	return out
}

// Passacaglia implements spec.md 4.5/5.2: a ground bass generated once and
// repeated verbatim across every variation, with upper voices progressing
// through four complexity stages. Grounded on the teacher's
// passacaglia-style variation-over-fixed-bass song entries.
func Passacaglia(cfg Config) (*score.Result, error) {
	if err := cfg.Validate(); err != nil {
		return score.Fail(err.Error()), err
	}
	variations := cfg.NumVariations
	if variations <= 0 {
		variations = 12
	}
	groundBars := cfg.GroundBassBars
	if groundBars <= 0 {
		groundBars = 8
	}
	numVoices := cfg.NumVoices
	if numVoices <= 0 {
		numVoices = 4
	}

	theme := GroundBass(cfg.Key, groundBars)
	if len(theme) == 0 {
		err := fmt.Errorf("form: passacaglia ground bass produced no notes")
		return score.Fail(err.Error()), err
	}
	variationDuration := theme[len(theme)-1].EndTick()

	src := rng.New(cfg.Seed)
	tl := timeline.CreateStandard(cfg.Key, variationDuration*variations, timeline.ResolutionBar)

	var pedal []score.NoteEvent
	var upper1, upper2, upper3 []score.NoteEvent
	for v := 0; v < variations; v++ {
		offset := v * variationDuration
		for _, n := range theme {
			cp := n
			cp.StartTick += offset
			pedal = append(pedal, cp)
		}
		stage := v % 4
		ctx := voice.Context{Timeline: tl, StartTick: offset, EndTick: offset + variationDuration, Voice: 0, Register: [2]int{60, 84}, Source: score.SourceFreeCounterpoint}
		switch stage {
		case 0:
			upper1 = append(upper1, voice.SustainedPad(ctx)...)
		case 1:
			upper1 = append(upper1, voice.ScalePassage(ctx, 240, src)...)
		case 2:
			upper1 = append(upper1, voice.Arpeggio(ctx, 240, src)...)
		default:
			upper1 = append(upper1, voice.MotoPerpetuo(ctx, 120, src)...)
		}
		if numVoices >= 4 {
			ctx2 := ctx
			ctx2.Voice = 1
			ctx2.Register = [2]int{55, 79}
			upper2 = append(upper2, voice.SustainedPad(ctx2)...)
		}
		if numVoices >= 5 {
			ctx3 := ctx
			ctx3.Voice = 2
			ctx3.Register = [2]int{48, 72}
			upper3 = append(upper3, voice.ScalePassage(ctx3, 480, src)...)
		}
	}

	report := &score.CounterpointReport{}
	st := &validate.Stack{MajorMode: !cfg.Key.Minor, Report: report}
	all := append([]score.NoteEvent{}, pedal...)
	all = append(all, upper1...)
	all = append(all, upper2...)
	all = append(all, upper3...)
	all = st.Run(all, tl)
	all = stampRoles(all)
	all = ornament.Apply(all, ornament.Config{BeatsPerMinute: cfg.bpmOrDefault(), Probability: cfg.ornamentProbability()}, src, tl)
	all = st.RerunAfterOrnaments(all)

	model := instrument.ForKind(instrument.ChurchOrgan)
	all = guard.Run(all, model, &guard.Report{})

	byVoice := validate.ByVoice(all)
	specs := []score.VoiceSpec{
		{Voice: 0, Role: score.RoleGreat, Name: "Variation I (Great)", Notes: byVoice[0]},
	}
	if numVoices >= 4 {
		specs = append(specs, score.VoiceSpec{Voice: 1, Role: score.RoleSwell, Name: "Variation II (Swell)", Notes: byVoice[1]})
	}
	if numVoices >= 5 {
		specs = append(specs, score.VoiceSpec{Voice: 2, Role: score.RolePositiv, Name: "Variation III (Positiv)", Notes: byVoice[2]})
	}
	specs = append(specs, score.VoiceSpec{Voice: 3, Role: score.RolePedal, Name: "Ground Bass (Pedal)", Notes: byVoice[3]})

	tracks := score.Aggregate(specs, instrument.ChurchOrgan)

	return &score.Result{
		Success:            true,
		Tracks:             tracks,
		TotalDurationTicks: variationDuration * variations,
		Timeline:           tl,
		Aux: score.AuxData{
			GroundBass:   theme,
			Counterpoint: *report,
		},
	}, nil
}
