package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const scoreJSON = `{
  "settings": {"tempo": 96, "key": "A minor"},
  "patterns": {
    "bass": {"degrees": [1, "b3", "5+:8"], "rhythm": ["q"]},
    "pad": {"chords": ["Am7:w"], "velocityEnvelope": "swell"},
    "hat": {"drums": {"steps": "x.x.x.x.", "hits": [{"drum": "crash", "time": 0}]}},
    "ramp": {"notes": ["A4:q"], "velocityEnvelope": [0.2, 1]}
  },
  "sections": {
    "verse": {"bars": 2, "tracks": {"pad": {"pattern": "pad"}, "bass": {"pattern": "bass", "repeat": 2}, "drums": {"pattern": "hat", "mute": true}}}
  },
  "arrangement": ["verse", "verse"]
}`

func TestScoreJSONKeepsTrackOrder(t *testing.T) {
	var s Score
	require.NoError(t, json.Unmarshal([]byte(scoreJSON), &s))

	tracks := s.Sections["verse"].Tracks
	require.Len(t, tracks, 3)
	assert.Equal(t, "pad", tracks[0].Instrument)
	assert.Equal(t, "bass", tracks[1].Instrument)
	assert.Equal(t, "drums", tracks[2].Instrument)
	assert.True(t, tracks[2].Track.Mute)

	assert.Equal(t, []Token{"1", "b3", "5+:8"}, s.Patterns["bass"].Degrees)
	assert.Equal(t, "swell", s.Patterns["pad"].VelocityEnvelope.Preset)
	assert.Equal(t, []float64{0.2, 1}, s.Patterns["ramp"].VelocityEnvelope.Points)
	assert.Equal(t, Token("0"), s.Patterns["hat"].Drums.Hits[0].Time)

	out, err := json.Marshal(s.Sections["verse"].Tracks)
	require.NoError(t, err)
	assert.Regexp(t, `^\{"pad":.*"bass":.*"drums":`, string(out))
}

const scoreYAML = `
settings:
  tempo: 110
  timeSignature: 3/4
patterns:
  lead:
    notes: ["C4:q", "E4:q", "G4:q"]
    velocityEnvelope: crescendo
  arp:
    arpeggio: {chord: Cmaj7, mode: updown, octaves: 2}
sections:
  intro:
    bars: 4
    tracks:
      zither: {pattern: lead}
      alto: {patterns: [lead, arp], velocity: 0.6}
arrangement: [intro]
`

func TestScoreYAMLKeepsTrackOrder(t *testing.T) {
	var s Score
	require.NoError(t, yaml.Unmarshal([]byte(scoreYAML), &s))

	tracks := s.Sections["intro"].Tracks
	require.Len(t, tracks, 2)
	assert.Equal(t, "zither", tracks[0].Instrument)
	assert.Equal(t, "alto", tracks[1].Instrument)
	require.NotNil(t, tracks[1].Track.Velocity)
	assert.InDelta(t, 0.6, *tracks[1].Track.Velocity, 1e-9)
	assert.Equal(t, "3/4", s.Settings.TimeSignature)
	assert.Equal(t, "crescendo", s.Patterns["lead"].VelocityEnvelope.Preset)
	assert.Equal(t, 2, s.Patterns["arp"].Arpeggio.Octaves)

	out, err := yaml.Marshal(s.Sections["intro"])
	require.NoError(t, err)

	var back Section
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, s.Sections["intro"].Tracks, back.Tracks)
}

func TestTrackListRejectsNonObject(t *testing.T) {
	var l TrackList
	assert.Error(t, json.Unmarshal([]byte(`["piano"]`), &l))
	assert.Error(t, yaml.Unmarshal([]byte(`[piano]`), &l))
}

func TestPatternKindPrecedence(t *testing.T) {
	tests := []struct {
		name string
		p    Pattern
		want PatternKind
	}{
		{"empty", Pattern{}, KindEmpty},
		{"rest only", Pattern{Rest: "r:w"}, KindRest},
		{"notes beat chords", Pattern{Notes: []string{"C4:q"}, Chords: []string{"C:q"}}, KindNotes},
		{"chords beat degrees", Pattern{Chords: []string{"C:q"}, Degrees: Tokens("1")}, KindChords},
		{"degrees beat arpeggio", Pattern{Degrees: Tokens("1"), Arpeggio: &Arpeggio{Chord: "C"}}, KindDegrees},
		{"arpeggio beat drums", Pattern{Arpeggio: &Arpeggio{Chord: "C"}, Drums: &Drums{Steps: "x"}}, KindArpeggio},
		{"drums beat euclidean", Pattern{Drums: &Drums{Steps: "x"}, Euclidean: &Euclidean{Hits: 1, Steps: 4}}, KindDrums},
		{"euclidean beat transform", Pattern{Euclidean: &Euclidean{Hits: 1, Steps: 4}, Transform: &Transform{Source: "a"}}, KindEuclidean},
		{"transform", Pattern{Transform: &Transform{Source: "a"}, Rest: "r:q"}, KindTransform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Kind())
		})
	}
}

func TestTrackPatternNames(t *testing.T) {
	assert.Equal(t, []string{"a", "a", "a"}, Track{Pattern: "a", Repeat: 3}.PatternNames())
	assert.Equal(t, []string{"a"}, Track{Pattern: "a"}.PatternNames())
	assert.Equal(t, []string{"x", "y"}, Track{Pattern: "a", Patterns: []string{"x", "y"}, Repeat: 4}.PatternNames())
	assert.Nil(t, Track{}.PatternNames())
	assert.Equal(t, []string{"a", "b"}, Track{Pattern: "a", Patterns: []string{"a", "b", "a"}}.References())
}

func TestTimelineNotes(t *testing.T) {
	n1 := NoteEvent{Pitch: "C4", Midi: 60}
	tl := Timeline{Events: []TimelineEvent{
		{Type: EventTempo, Tempo: 100},
		{Type: EventNote, Note: &n1},
		{Type: EventChord, Chord: &ChordEvent{Symbol: "C", Notes: []NoteEvent{{Midi: 60}, {Midi: 64}}}},
	}}
	assert.Len(t, tl.Notes(), 3)
}
