// Package pattern expands one pattern definition into beat-relative note
// events.
package pattern

import (
	"fmt"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/notation"
)

// Expand converts a pattern into note events starting at beat 0. Any
// malformed literal fails the whole expansion.
func Expand(p models.Pattern, ctx Context) (Result, error) {
	return expand("", p, &ctx)
}

// ExpandNamed looks a pattern up in ctx.Patterns and expands it
func ExpandNamed(name string, ctx Context) (Result, error) {
	p, ok := ctx.Patterns[name]
	if !ok {
		return Result{}, diag.Missing("pattern", name)
	}
	res, err := expand(name, p, &ctx)
	if err != nil {
		return Result{}, fmt.Errorf("pattern %q: %w", name, err)
	}
	return res, nil
}

func expand(name string, p models.Pattern, ctx *Context) (Result, error) {
	if ctx.Key.Scale == "" {
		ctx.Key = DefaultKey()
	}

	resolved, err := ctx.transforms().ResolvePattern(name, p)
	if err != nil {
		return Result{}, err
	}
	p = resolved

	var res Result
	switch p.Kind() {
	case models.KindNotes:
		res, err = expandNotes(p.Notes, ctx)
	case models.KindChords:
		res, err = expandChords(p.Chords, ctx)
	case models.KindDegrees:
		res, err = expandDegrees(p, ctx)
	case models.KindArpeggio:
		res, err = expandArpeggio(*p.Arpeggio, ctx)
	case models.KindDrums:
		res, err = expandDrums(*p.Drums, ctx)
	case models.KindEuclidean:
		res, err = expandEuclidean(*p.Euclidean, ctx)
	case models.KindTransform, models.KindRest, models.KindEmpty:
		// unresolved transforms and bare rests contribute no events
	}
	if err != nil {
		return Result{}, err
	}

	if p.Rest != "" {
		r, err := notation.ParseRest(p.Rest)
		if err != nil {
			return Result{}, err
		}
		res.TotalBeats += r.Beats
	}

	if p.VelocityEnvelope != nil {
		applyEnvelope(res.Events, *p.VelocityEnvelope, ctx.BeatsPerBar, ctx.Diag)
	}
	if p.ConstrainToScale {
		snapToKey(res.Events, ctx)
	}
	return res, nil
}
