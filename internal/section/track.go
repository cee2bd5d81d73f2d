// Package section turns the tracks of one section into per-instrument note
// lists sized to the section's length.
package section

import (
	"fmt"
	"math/rand"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/pattern"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/theory"
)

// Context is the section-level state shared by every track
type Context struct {
	Bars        int
	BeatsPerBar float64
	Key         theory.Key
	Tempo       float64
	Swing       float64 // score-wide default, overridden per track
	Patterns    map[string]models.Pattern
	Diag        *diag.Diagnostics
	Rand        *rand.Rand
}

// Length is the section's length in beats
func (c Context) Length() float64 {
	return float64(c.Bars) * c.BeatsPerBar
}

// TrackEvents is the resolved output of one track
type TrackEvents struct {
	Instrument string
	Events     []models.NoteEvent
}

// ResolveTrack expands a track's patterns end to end, applies swing, groove
// and humanization, then fills the result to the section length. Events are
// relative to the start of the section.
func ResolveTrack(instrument string, track models.Track, ctx Context) ([]models.NoteEvent, error) {
	if track.Mute {
		return nil, nil
	}
	names := track.PatternNames()
	if len(names) == 0 {
		ctx.Diag.Warn("track %q plays no patterns", instrument)
		return nil, nil
	}

	rng := ctx.random()
	pctx := pattern.Context{
		Key:         ctx.Key,
		Tempo:       ctx.Tempo,
		Velocity:    track.Velocity,
		Octave:      track.Octave,
		Transpose:   track.Transpose,
		BeatsPerBar: ctx.BeatsPerBar,
		Patterns:    ctx.Patterns,
		Diag:        ctx.Diag,
		Rand:        rng,
	}

	var events []models.NoteEvent
	cursor := 0.0
	for _, name := range names {
		if _, ok := ctx.Patterns[name]; !ok {
			ctx.Diag.WarnErr(fmt.Errorf("track %q: %w", instrument, diag.Missing("pattern", name)))
			continue
		}
		res, err := pattern.ExpandNamed(name, pctx)
		if err != nil {
			return nil, fmt.Errorf("track %q: %w", instrument, err)
		}
		for _, ev := range res.Events {
			ev.StartBeat += cursor
			ev.Instrument = instrument
			events = append(events, ev)
		}
		cursor += res.TotalBeats
	}

	swing := ctx.Swing
	if track.Swing != nil {
		swing = *track.Swing
	}
	applySwing(events, swing)

	if track.Groove != "" {
		if groove, ok := theory.GetGrooveTemplate(track.Groove); ok {
			applyGroove(events, groove)
		} else {
			ctx.Diag.WarnErr(fmt.Errorf("track %q: %w", instrument,
				diag.Unknown("groove", track.Groove, theory.GrooveNames())))
		}
	}

	if track.Humanize > 0 {
		applyHumanize(events, track.Humanize, rng)
	}

	return fill(events, cursor, ctx.Length()), nil
}

// ResolveSection resolves every track of a section in declared order
func ResolveSection(s models.Section, ctx Context) ([]TrackEvents, error) {
	if ctx.Bars == 0 {
		ctx.Bars = s.Bars
	}
	ctx.random()
	out := make([]TrackEvents, 0, len(s.Tracks))
	for _, nt := range s.Tracks {
		events, err := ResolveTrack(nt.Instrument, nt.Track, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, TrackEvents{Instrument: nt.Instrument, Events: events})
	}
	return out, nil
}

// random shares one generator across all tracks of the section
func (c *Context) random() *rand.Rand {
	if c.Rand == nil {
		c.Rand = newRand()
	}
	return c.Rand
}
