// Package generate is the thin entry point a caller reaches for instead of
// calling individual form.* functions directly: pick a form kind, get back
// a score.Result. It owns no musical logic of its own -- every decision
// still lives in package form -- it only resolves the kind selector the way
// the teacher's main.go resolved a command name to a handler function.
package generate

import (
	"fmt"

	"bachgen/form"
	"bachgen/score"
)

// Kind selects which form generator to run.
type Kind int

const (
	KindChoralePrelude Kind = iota
	KindPassacaglia
	KindFantasia
	KindPrelude
	KindToccata
)

// Generate dispatches to the form generator named by kind. TrioSonata is
// deliberately not reachable here: it returns a form.TrioSonataResult (one
// score.Result per movement), not a single score.Result, so callers that
// want it call form.TrioSonata directly.
func Generate(kind Kind, cfg form.Config) (*score.Result, error) {
	switch kind {
	case KindChoralePrelude:
		return form.ChoralePrelude(cfg)
	case KindPassacaglia:
		return form.Passacaglia(cfg)
	case KindFantasia:
		return form.Fantasia(cfg)
	case KindPrelude:
		return form.Prelude(cfg)
	case KindToccata:
		return form.Toccata(cfg)
	default:
		return nil, fmt.Errorf("generate: unknown form kind %d", kind)
	}
}
