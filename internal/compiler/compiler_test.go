package compiler

import (
	"errors"
	"testing"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleScore() models.Score {
	return models.Score{
		Settings: models.Settings{Tempo: 120, Key: "C major"},
		Patterns: map[string]models.Pattern{
			"p": {Notes: []string{"C4:q", "D4:q", "E4:q", "F4:q"}},
		},
		Sections: map[string]models.Section{
			"main": {Bars: 1, Tracks: models.TrackList{{Instrument: "piano", Track: models.Track{Pattern: "p"}}}},
		},
		Arrangement: []string{"main"},
	}
}

func TestCompileEndToEnd(t *testing.T) {
	res, err := Compile(simpleScore(), Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	tl := res.Timeline
	require.Len(t, tl.Events, 4)
	for i, e := range tl.Events {
		require.NotNil(t, e.Note)
		assert.Equal(t, models.EventNote, e.Type)
		assert.Equal(t, float64(i), e.Time)
		assert.Equal(t, 1.0, e.Note.DurationBeats)
		assert.InDelta(t, 0.5, e.Note.DurationSeconds, 1e-9)
		assert.Equal(t, "piano", e.Instrument)
	}
	assert.InDelta(t, 2.0, tl.TotalSeconds, 1e-9)
	assert.Equal(t, 4.0, tl.TotalBeats)

	assert.Equal(t, 1, res.Stats.Sections)
	assert.Equal(t, 1, res.Stats.Bars)
	assert.Equal(t, 4, res.Stats.Notes)
	assert.Equal(t, []string{"piano"}, res.Stats.Instruments)
	assert.Equal(t, []string{"p"}, res.Stats.Patterns)
}

func TestCompileSectionChanges(t *testing.T) {
	score := simpleScore()
	score.Sections["slow"] = models.Section{
		Bars:   1,
		Tempo:  60,
		Key:    "A minor",
		Tracks: models.TrackList{{Instrument: "piano", Track: models.Track{Pattern: "p"}}},
	}
	score.Arrangement = []string{"main", "slow", "main"}

	res, err := Compile(score, Options{})
	require.NoError(t, err)

	var controls []models.TimelineEvent
	for _, e := range res.Timeline.Events {
		if e.Type == models.EventTempo || e.Type == models.EventKey {
			controls = append(controls, e)
		}
	}
	require.Len(t, controls, 4)
	assert.Equal(t, 60.0, controls[0].Tempo)
	assert.Equal(t, "A minor", controls[1].Key)
	assert.Equal(t, 8.0, controls[2].Time)
	assert.Equal(t, 120.0, controls[2].Tempo)
	assert.Equal(t, "C major", controls[3].Key)

	// 4 beats at 120, 4 at 60, 4 at 120
	assert.InDelta(t, 8.0, res.Timeline.TotalSeconds, 1e-9)
	assert.Equal(t, 3, res.Stats.Sections)
	assert.Equal(t, 12, res.Stats.Notes)
}

func TestCompileMissingSectionWarns(t *testing.T) {
	score := simpleScore()
	score.Arrangement = []string{"intro", "main"}
	res, err := Compile(score, Options{})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "intro")
	assert.Len(t, res.Timeline.Events, 4)
	assert.Equal(t, 0.0, res.Timeline.Events[0].Time)
}

func TestCompileOptions(t *testing.T) {
	score := simpleScore()
	score.Sections["outro"] = models.Section{Bars: 2, Tracks: models.TrackList{{Instrument: "piano", Track: models.Track{Pattern: "p"}}}}
	score.Arrangement = []string{"main", "outro", "main"}

	res, err := Compile(score, Options{Tempo: 60, StartSection: "outro", EndSection: "outro"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Sections)
	assert.Equal(t, 8.0, res.Timeline.TotalBeats)
	assert.InDelta(t, 8.0, res.Timeline.TotalSeconds, 1e-9)
	assert.Equal(t, 60.0, res.Timeline.Settings.Tempo)

	_, err = Compile(score, Options{StartSection: "bridge"})
	assert.True(t, errors.Is(err, diag.ErrMissingReference))
}

func TestCompileSeedIsReproducible(t *testing.T) {
	score := simpleScore()
	sec := score.Sections["main"]
	sec.Tracks[0].Track.Humanize = 0.8
	score.Sections["main"] = sec

	seed := int64(42)
	a, err := Compile(score, Options{Seed: &seed})
	require.NoError(t, err)
	b, err := Compile(score, Options{Seed: &seed})
	require.NoError(t, err)
	assert.Equal(t, a.Timeline, b.Timeline)
}

func TestCompileGroupsChords(t *testing.T) {
	score := simpleScore()
	score.Patterns["pads"] = models.Pattern{Chords: []string{"C:h", "G:h"}}
	score.Sections["main"] = models.Section{Bars: 1, Tracks: models.TrackList{{Instrument: "keys", Track: models.Track{Pattern: "pads"}}}}

	res, err := Compile(score, Options{})
	require.NoError(t, err)
	require.Len(t, res.Timeline.Events, 2)
	first := res.Timeline.Events[0]
	require.NotNil(t, first.Chord)
	assert.Equal(t, "C", first.Chord.Symbol)
	assert.Len(t, first.Chord.Notes, 3)
	assert.InDelta(t, 1.0, first.Chord.DurationSeconds, 1e-9)
	assert.Equal(t, 6, res.Stats.Notes)
}

func TestCompileMalformedFails(t *testing.T) {
	score := simpleScore()
	score.Patterns["p"] = models.Pattern{Notes: []string{"C4:q", "X9:q"}}
	_, err := Compile(score, Options{})
	assert.True(t, errors.Is(err, diag.ErrMalformedNotation))

	score = simpleScore()
	score.Settings.Key = "C lydian flat"
	_, err = Compile(score, Options{})
	assert.True(t, errors.Is(err, diag.ErrUnknownTheoryName))
}

func TestValidateMissingSection(t *testing.T) {
	score := simpleScore()
	score.Arrangement = []string{"main", "bridge"}
	problems := Validate(score)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "bridge")
}

func TestValidateCollectsProblems(t *testing.T) {
	score := simpleScore()
	score.Instruments = map[string]models.Instrument{"organ": {}}
	score.Patterns["loop"] = models.Pattern{Transform: &models.Transform{Source: "loop", Operation: models.OpRetrograde}}
	score.Patterns["orphan"] = models.Pattern{Transform: &models.Transform{Source: "nowhere", Operation: models.OpRetrograde}}
	score.Patterns["broken"] = models.Pattern{Notes: []string{"C4:x"}}
	sec := score.Sections["main"]
	sec.Tracks = append(sec.Tracks, models.NamedTrack{Instrument: "organ", Track: models.Track{Pattern: "ghost"}})
	score.Sections["main"] = sec

	problems := Validate(score)
	assert.Len(t, problems, 5)
	assert.Contains(t, problems, `section "main": track "piano" has no registered instrument`)
	assert.Contains(t, problems, `section "main": track "organ" references missing pattern "ghost"`)
	assert.Contains(t, problems, `pattern "loop": cyclic transform`)
	assert.Contains(t, problems, `pattern "orphan": transform source "nowhere" not found`)

	assert.Empty(t, Validate(simpleScore()))
}

func TestAnalyze(t *testing.T) {
	score := simpleScore()
	score.Settings.TimeSignature = "3/4"
	score.Sections["slow"] = models.Section{Bars: 2, Tempo: 60, Tracks: models.TrackList{{Instrument: "bass", Track: models.Track{Pattern: "p"}}}}
	score.Arrangement = []string{"main", "slow", "gone"}

	sum, err := Analyze(score)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Sections)
	assert.Equal(t, 3, sum.Bars)
	assert.Equal(t, 9.0, sum.Beats)
	// 3 beats at 120 plus 6 at 60
	assert.InDelta(t, 7.5, sum.EstimatedSeconds, 1e-9)
	assert.Equal(t, []string{"bass", "piano"}, sum.Instruments)
	assert.Equal(t, []string{"gone"}, sum.MissingSections)
	assert.Equal(t, "3/4", sum.TimeSignature)
}
