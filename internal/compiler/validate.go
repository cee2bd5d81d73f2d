package compiler

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/notation"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/pattern"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/util"
)

// Validate checks a score for consistency without compiling it and returns
// one human-readable line per problem. An empty result means the score is
// consistent.
func Validate(score models.Score) []string {
	problems := []string{}
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	s := score.Settings
	if s.Tempo < 0 {
		report("settings: tempo %g must be positive", s.Tempo)
	}
	if s.Key != "" {
		if _, err := notation.ParseKey(s.Key); err != nil {
			report("settings: %v", err)
		}
	}
	if s.TimeSignature != "" {
		if _, err := notation.ParseTimeSignature(s.TimeSignature); err != nil {
			report("settings: %v", err)
		}
	}
	if s.Swing < 0 || s.Swing > 1 {
		report("settings: swing %g must be between 0 and 1", s.Swing)
	}

	for _, name := range score.Arrangement {
		if _, ok := score.Sections[name]; !ok {
			report("arrangement references missing section %q", name)
		}
	}

	for _, name := range util.SortedKeys(score.Sections) {
		sec := score.Sections[name]
		if sec.Bars <= 0 {
			report("section %q: bars must be positive", name)
		}
		if sec.Key != "" {
			if _, err := notation.ParseKey(sec.Key); err != nil {
				report("section %q: %v", name, err)
			}
		}
		for _, nt := range sec.Tracks {
			if len(score.Instruments) > 0 {
				if _, ok := score.Instruments[nt.Instrument]; !ok {
					report("section %q: track %q has no registered instrument", name, nt.Instrument)
				}
			}
			for _, ref := range nt.Track.References() {
				if _, ok := score.Patterns[ref]; !ok {
					report("section %q: track %q references missing pattern %q", name, nt.Instrument, ref)
				}
			}
		}
	}

	// expand every pattern once to surface malformed literals, missing
	// transform sources and cycles
	for _, name := range util.SortedKeys(score.Patterns) {
		p := score.Patterns[name]
		if p.Transform != nil {
			if _, ok := score.Patterns[p.Transform.Source]; !ok {
				report("pattern %q: transform source %q not found", name, p.Transform.Source)
				continue
			}
		}
		_, err := pattern.ExpandNamed(name, pattern.Context{
			Patterns: score.Patterns,
			Rand:     rand.New(rand.NewSource(0)),
		})
		switch {
		case err == nil:
		case errors.Is(err, diag.ErrCyclicTransform):
			report("pattern %q: cyclic transform", name)
		default:
			report("%v", err)
		}
	}
	return problems
}
