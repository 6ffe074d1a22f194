package form

import (
	"fmt"

	"golang.org/x/sync/errgroup"

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

// Movement is one of the trio sonata's three fixed movements.
type Movement struct {
	Name string
	Key  theory.Key
	BPM  float64
}

// TrioSonataResult is the auxiliary per-movement breakdown alongside each
// movement's own score.Result.
type TrioSonataResult struct {
	Movements []*score.Result
}

// TrioSonata implements spec.md 4.5/5: three independent, equal voices (RH,
// LH, Pedal) across Allegro (home key) -> Adagio (relative key, mode
// flipped) -> Vivace (home key), each movement run with its own
// deterministically-derived sub-seed (seed, seed+1000, seed+2000) per
// spec.md 5's concurrency contract, concurrently via errgroup since the
// movements are provably independent. Grounded on the teacher's
// multi-movement song-suite entry points and on golang.org/x/sync/errgroup
// as used elsewhere in the example pack for bounded concurrent fan-out.
func TrioSonata(cfg Config) (*TrioSonataResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fast := cfg.BPMFast
	if fast <= 0 {
		fast = 120
	}
	slow := cfg.BPMSlow
	if slow <= 0 {
		slow = 60
	}

	movements := []Movement{
		{Name: "Allegro", Key: cfg.Key, BPM: fast},
		{Name: "Adagio", Key: cfg.Key.Relative(), BPM: slow},
		{Name: "Vivace", Key: cfg.Key, BPM: fast},
	}
	seedOffsets := []uint32{0, 1000, 2000}

	results := make([]*score.Result, len(movements))
	g := new(errgroup.Group)
	for i := range movements {
		i := i
		g.Go(func() error {
			r, err := trioSonataMovement(movements[i], cfg.Seed+seedOffsets[i], cfg)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &TrioSonataResult{Movements: results}, nil
}

func trioSonataMovement(mv Movement, seed uint32, cfg Config) (*score.Result, error) {
	bars := cfg.SectionBars
	if bars <= 0 {
		bars = 16
	}
	total := bars * timeline.TicksPerBar
	tl := timeline.CreateStandard(mv.Key, total, timeline.ResolutionBar)
	if len(tl.Events) == 0 {
		return nil, fmt.Errorf("form: trio sonata movement %s produced an empty timeline", mv.Name)
	}
	src := rng.New(seed)
	rh := voice.Context{Timeline: tl, StartTick: 0, EndTick: total, Voice: 0, Register: [2]int{60, 84}, Source: score.SourceFreeCounterpoint}
	lh := voice.Context{Timeline: tl, StartTick: 0, EndTick: total, Voice: 1, Register: [2]int{48, 72}, Source: score.SourceFreeCounterpoint}
	pedal := voice.Context{Timeline: tl, StartTick: 0, EndTick: total, Voice: 2, Register: [2]int{28, 52}, Source: score.SourcePedalPoint}

	rhNotes := voice.ScalePassage(rh, 240, src)
	lhNotes := voice.Arpeggio(lh, 480, src)
	pedalNotes := voice.WalkingBass(pedal, src)

	report := &score.CounterpointReport{}
	st := &validate.Stack{MajorMode: !mv.Key.Minor, Report: report}
	all := append([]score.NoteEvent{}, rhNotes...)
	all = append(all, lhNotes...)
	all = append(all, pedalNotes...)
	all = st.Run(all, tl)
	all = ornament.Apply(all, ornament.Config{BeatsPerMinute: mv.BPM, Probability: cfg.ornamentProbability()}, src, tl)
	all = st.RerunAfterOrnaments(all)

	model := instrument.ForKind(instrument.ChurchOrgan)
	all = guard.Run(all, model, &guard.Report{})

	byVoice := validate.ByVoice(all)
	specs := []score.VoiceSpec{
		{Voice: 0, Role: score.RoleGreat, Name: mv.Name + " (RH, Great)", Notes: byVoice[0]},
		{Voice: 1, Role: score.RoleSwell, Name: mv.Name + " (LH, Swell)", Notes: byVoice[1]},
		{Voice: 2, Role: score.RolePedal, Name: mv.Name + " (Pedal)", Notes: byVoice[2]},
	}
	tracks := score.Aggregate(specs, instrument.ChurchOrgan)

	return &score.Result{
		Success: true, Tracks: tracks, TotalDurationTicks: total, Timeline: tl,
		Aux: score.AuxData{Counterpoint: *report},
	}, nil
}
