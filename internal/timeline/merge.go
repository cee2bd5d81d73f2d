package timeline

import (
	"sort"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
)

// Merge overlays timelines that share a time origin. Settings come from the
// first timeline.
func Merge(timelines ...models.Timeline) (models.Timeline, error) {
	if len(timelines) == 0 {
		return models.Timeline{}, &diag.Error{Kind: diag.EmptyInput, Msg: "merge needs at least one timeline"}
	}

	out := models.Timeline{
		Settings:    timelines[0].Settings,
		Events:      []models.TimelineEvent{},
		Instruments: []string{},
	}
	seen := make(map[string]bool)
	for _, t := range timelines {
		out.Events = append(out.Events, t.Events...)
		out.TotalBeats = max(out.TotalBeats, t.TotalBeats)
		out.TotalSeconds = max(out.TotalSeconds, t.TotalSeconds)
		for _, name := range t.Instruments {
			if !seen[name] {
				seen[name] = true
				out.Instruments = append(out.Instruments, name)
			}
		}
	}
	sort.Strings(out.Instruments)
	sort.SliceStable(out.Events, func(i, j int) bool {
		if out.Events[i].Time != out.Events[j].Time {
			return out.Events[i].Time < out.Events[j].Time
		}
		return rank(out.Events[i].Type) < rank(out.Events[j].Type)
	})
	return out, nil
}

// Offset shifts every event of t later by beats. The inserted lead-in plays
// at the timeline's starting tempo.
func Offset(t models.Timeline, beats float64) models.Timeline {
	tempo := t.Settings.Tempo
	if tempo <= 0 {
		tempo = DefaultTempo
	}
	seconds := beats * 60 / tempo

	events := make([]models.TimelineEvent, len(t.Events))
	for i, e := range t.Events {
		e.Time += beats
		e.TimeSeconds += seconds
		if e.Note != nil {
			n := *e.Note
			n.StartBeat += beats
			e.Note = &n
		}
		if e.Chord != nil {
			c := *e.Chord
			c.StartBeat += beats
			c.Notes = make([]models.NoteEvent, len(e.Chord.Notes))
			for j, n := range e.Chord.Notes {
				n.StartBeat += beats
				c.Notes[j] = n
			}
			e.Chord = &c
		}
		events[i] = e
	}

	t.Events = events
	t.TotalBeats += beats
	t.TotalSeconds += seconds
	return t
}
