// Package form composes the voice, timeline, validate, ornament, and guard
// packages into complete pieces: ChoralePrelude, Passacaglia, Fantasia,
// Prelude, TrioSonata, and the two Toccata archetypes (spec.md 4.5).
// Grounded on the teacher's top-level song-generation entry points (the
// functions main.go used to call per song), each of which performed the
// same per-section "pick a primitive, run it, assemble tracks" scheduling
// this package now does per form.
package form

import (
	"fmt"

	"bachgen/instrument"
	"bachgen/theory"
)

// PreludeType selects between the two Prelude archetypes spec.md 6 names.
type PreludeType int

const (
	PreludeFreeForm PreludeType = iota
	PreludePerpetual
)

// ToccataArchetype selects between the two Toccata archetypes spec.md 4.5
// describes.
type ToccataArchetype int

const (
	ToccataPerpetuusArchetype ToccataArchetype = iota
	ToccataSectionalisArchetype
)

// Config is the plain data record every form generator consumes (spec.md
// 6's input configuration). Not every field is meaningful to every form;
// each generator reads only the fields its own section of spec.md 6 names.
type Config struct {
	Key     theory.Key
	Seed    uint32
	BPM     float64
	BPMFast float64
	BPMSlow float64

	NumVoices       int
	NumVariations   int
	GroundBassBars  int
	SectionBars     int
	TotalBars       int
	FugueLengthTicks int

	EnablePicardy bool

	PreludeKind   PreludeType
	ToccataKind   ToccataArchetype
	Instrument    instrument.Kind

	OrnamentProbability float64
}

// Validate rejects a negative tempo or length control and a voice count
// outside 2..5. A zero tempo, length control or voice count is not an
// error: each generator substitutes its own default for it.
func (c Config) Validate() error {
	if c.BPM < 0 || c.BPMFast < 0 || c.BPMSlow < 0 {
		return fmt.Errorf("form: negative tempo")
	}
	if c.NumVoices != 0 && (c.NumVoices < 2 || c.NumVoices > 5) {
		return fmt.Errorf("form: num_voices must be 2..5, got %d", c.NumVoices)
	}
	if c.NumVariations < 0 {
		return fmt.Errorf("form: num_variations must be >= 0, got %d", c.NumVariations)
	}
	if c.GroundBassBars < 0 {
		return fmt.Errorf("form: ground_bass_bars must be >= 0, got %d", c.GroundBassBars)
	}
	if c.SectionBars < 0 {
		return fmt.Errorf("form: section_bars must be >= 0, got %d", c.SectionBars)
	}
	if c.TotalBars < 0 {
		return fmt.Errorf("form: total_bars must be >= 0, got %d", c.TotalBars)
	}
	return nil
}

func (c Config) ornamentProbability() float64 {
	if c.OrnamentProbability > 0 {
		return c.OrnamentProbability
	}
	return 0.15
}

func (c Config) bpmOrDefault() float64 {
	if c.BPM > 0 {
		return c.BPM
	}
	return 96
}

// picardyThird raises a chord third by a semitone (minor to major) when key
// is minor. No generator calls it, so EnablePicardy does not change the
// output.
func picardyThird(pitch int, key theory.Key, isThird bool) int {
	if isThird && key.Minor {
		return pitch + 1
	}
	return pitch
}
