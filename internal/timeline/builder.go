// Package timeline assembles beat-positioned events into a time-ordered
// timeline and converts beats to seconds along the tempo path.
package timeline

import (
	"sort"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
)

// DefaultTempo is used when the settings carry none
const DefaultTempo = 120.0

// Builder accumulates events for one compile. It is consumed by Build and
// must not be shared between compiles.
type Builder struct {
	settings    models.Settings
	tempo       float64 // tempo in effect at the last added tempo change
	events      []models.TimelineEvent
	instruments []string
	seen        map[string]bool
	extent      float64
	built       bool
}

// NewBuilder starts a timeline at the settings' tempo
func NewBuilder(settings models.Settings) *Builder {
	if settings.Tempo <= 0 {
		settings.Tempo = DefaultTempo
	}
	return &Builder{
		settings: settings,
		tempo:    settings.Tempo,
		seen:     make(map[string]bool),
	}
}

func (b *Builder) mustBeOpen() {
	if b.built {
		panic("timeline: builder used after Build")
	}
}

func (b *Builder) provisional(beat float64) float64 {
	return beat * 60 / b.tempo
}

func (b *Builder) instrument(name string) {
	if name == "" || b.seen[name] {
		return
	}
	b.seen[name] = true
	b.instruments = append(b.instruments, name)
}

// AddNote appends a note at its absolute start beat
func (b *Builder) AddNote(instrument string, note models.NoteEvent) {
	b.mustBeOpen()
	note.Instrument = instrument
	note.DurationSeconds = note.DurationBeats * 60 / b.tempo
	b.instrument(instrument)
	b.events = append(b.events, models.TimelineEvent{
		Type:        models.EventNote,
		Time:        note.StartBeat,
		TimeSeconds: b.provisional(note.StartBeat),
		Instrument:  instrument,
		Note:        &note,
	})
}

// AddChord appends a chord at its absolute start beat
func (b *Builder) AddChord(instrument string, chord models.ChordEvent) {
	b.mustBeOpen()
	notes := make([]models.NoteEvent, len(chord.Notes))
	for i, n := range chord.Notes {
		n.Instrument = instrument
		notes[i] = n
	}
	chord.Notes = notes
	chord.DurationSeconds = chord.DurationBeats * 60 / b.tempo
	b.instrument(instrument)
	b.events = append(b.events, models.TimelineEvent{
		Type:        models.EventChord,
		Time:        chord.StartBeat,
		TimeSeconds: b.provisional(chord.StartBeat),
		Instrument:  instrument,
		Chord:       &chord,
	})
}

// AddTempoChange switches to bpm from beat onward
func (b *Builder) AddTempoChange(beat, bpm float64) error {
	b.mustBeOpen()
	if bpm <= 0 {
		return diag.Range("tempo", "bpm", bpm)
	}
	b.events = append(b.events, models.TimelineEvent{
		Type:        models.EventTempo,
		Time:        beat,
		TimeSeconds: b.provisional(beat),
		Tempo:       bpm,
	})
	b.tempo = bpm
	return nil
}

// AddKeyChange records a key change at beat
func (b *Builder) AddKeyChange(beat float64, key string) {
	b.mustBeOpen()
	b.events = append(b.events, models.TimelineEvent{
		Type:        models.EventKey,
		Time:        beat,
		TimeSeconds: b.provisional(beat),
		Key:         key,
	})
}

// ExtendTo makes the timeline at least beat long, so trailing silence counts
func (b *Builder) ExtendTo(beat float64) {
	b.mustBeOpen()
	if beat > b.extent {
		b.extent = beat
	}
}

// Build orders the events, then recomputes every seconds field along the
// tempo path. The builder cannot be used afterwards.
func (b *Builder) Build() models.Timeline {
	b.mustBeOpen()
	b.built = true

	events := b.events
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Time != events[j].Time {
			return events[i].Time < events[j].Time
		}
		return rank(events[i].Type) < rank(events[j].Type)
	})

	total := b.extent
	for _, e := range events {
		if end := e.EndBeat(); end > total {
			total = end
		}
	}

	path := newTempoPath(b.settings.Tempo, events)
	for i := range events {
		e := &events[i]
		e.TimeSeconds = path.secondsAt(e.Time)
		switch {
		case e.Note != nil:
			e.Note.DurationSeconds = path.span(e.Note.StartBeat, e.Note.DurationBeats)
		case e.Chord != nil:
			e.Chord.DurationSeconds = path.span(e.Chord.StartBeat, e.Chord.DurationBeats)
			for j := range e.Chord.Notes {
				n := &e.Chord.Notes[j]
				n.DurationSeconds = path.span(n.StartBeat, n.DurationBeats)
			}
		}
	}

	instruments := append([]string{}, b.instruments...)
	sort.Strings(instruments)
	if events == nil {
		events = []models.TimelineEvent{}
	}
	return models.Timeline{
		Events:       events,
		TotalBeats:   total,
		TotalSeconds: path.secondsAt(total),
		Instruments:  instruments,
		Settings:     b.settings,
	}
}

// tempo and key changes sort ahead of sounding events at the same beat
func rank(t models.EventType) int {
	switch t {
	case models.EventTempo:
		return 0
	case models.EventKey:
		return 1
	}
	return 2
}
