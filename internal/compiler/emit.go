package compiler

import (
	"math"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/timeline"
)

// emit feeds section-relative events into the builder at offset. Runs of
// adjacent events that share a chord symbol and onset become one chord event.
func emit(b *timeline.Builder, instrument string, events []models.NoteEvent, offset float64) {
	for i := 0; i < len(events); {
		ev := events[i]
		ev.StartBeat += offset
		if ev.Chord == "" {
			b.AddNote(instrument, ev)
			i++
			continue
		}

		j := i + 1
		for j < len(events) && events[j].Chord == events[i].Chord && events[j].StartBeat == events[i].StartBeat {
			j++
		}
		chord := models.ChordEvent{Symbol: ev.Chord, StartBeat: ev.StartBeat}
		for _, n := range events[i:j] {
			n.StartBeat += offset
			chord.DurationBeats = math.Max(chord.DurationBeats, n.DurationBeats)
			chord.Notes = append(chord.Notes, n)
		}
		b.AddChord(instrument, chord)
		i = j
	}
}
