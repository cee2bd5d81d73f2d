package models

// NoteEvent is one resolved note or drum hit
type NoteEvent struct {
	Pitch           string   `json:"pitch,omitempty"`
	Drum            string   `json:"drum,omitempty"`
	Midi            int      `json:"midi"`
	StartBeat       float64  `json:"startBeat"`
	DurationBeats   float64  `json:"durationBeats"`
	DurationSeconds float64  `json:"durationSeconds"`
	Velocity        float64  `json:"velocity"`
	TimingOffsetMs  int      `json:"timingOffsetMs,omitempty"`
	Probability     *float64 `json:"probability,omitempty"`
	Portamento      bool     `json:"portamento,omitempty"`
	Humanize        float64  `json:"humanize,omitempty"` // amount actually applied
	Chord           string   `json:"chord,omitempty"`    // symbol when the note came from a chord
	Instrument      string   `json:"instrument,omitempty"`
}

// EndBeat is where the note stops sounding
func (n NoteEvent) EndBeat() float64 {
	return n.StartBeat + n.DurationBeats
}

// IsDrum reports whether the event targets a drum rather than a pitch
func (n NoteEvent) IsDrum() bool {
	return n.Drum != ""
}

// ChordEvent groups the notes of one chord sounding together
type ChordEvent struct {
	Symbol          string      `json:"symbol"`
	StartBeat       float64     `json:"startBeat"`
	DurationBeats   float64     `json:"durationBeats"`
	DurationSeconds float64     `json:"durationSeconds"`
	Notes           []NoteEvent `json:"notes"`
}

// EventType tags timeline events
type EventType string

const (
	EventNote  EventType = "note"
	EventChord EventType = "chord"
	EventTempo EventType = "tempo"
	EventKey   EventType = "key"
)

// TimelineEvent is one entry in the compiled timeline. Exactly one of the
// type-specific fields is set, matching Type.
type TimelineEvent struct {
	Type        EventType   `json:"type"`
	Time        float64     `json:"time"` // beats
	TimeSeconds float64     `json:"timeSeconds"`
	Instrument  string      `json:"instrument,omitempty"`
	Note        *NoteEvent  `json:"note,omitempty"`
	Chord       *ChordEvent `json:"chord,omitempty"`
	Tempo       float64     `json:"tempo,omitempty"`
	Key         string      `json:"key,omitempty"`
}

// EndBeat is the last beat the event covers
func (e TimelineEvent) EndBeat() float64 {
	switch {
	case e.Note != nil:
		return e.Time + e.Note.DurationBeats
	case e.Chord != nil:
		return e.Time + e.Chord.DurationBeats
	}
	return e.Time
}

// Timeline is the compiled, time-ordered performance
type Timeline struct {
	Events       []TimelineEvent `json:"events"`
	TotalBeats   float64         `json:"totalBeats"`
	TotalSeconds float64         `json:"totalSeconds"`
	Instruments  []string        `json:"instruments"`
	Settings     Settings        `json:"settings"`
}

// Notes flattens note and chord events into individual notes in time order
func (t Timeline) Notes() []NoteEvent {
	var notes []NoteEvent
	for _, e := range t.Events {
		switch {
		case e.Note != nil:
			notes = append(notes, *e.Note)
		case e.Chord != nil:
			notes = append(notes, e.Chord.Notes...)
		}
	}
	return notes
}
