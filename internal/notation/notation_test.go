package notation

import (
	"errors"
	"testing"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		code   string
		dotted bool
		want   float64
	}{
		{"w", false, 4},
		{"h", false, 2},
		{"q", false, 1},
		{"8", false, 0.5},
		{"16", false, 0.25},
		{"32", false, 0.125},
		{"2", false, 2},
		{"4", false, 1},
		{"q", true, 1.5},
		{"8", true, 0.75},
		{"Q", false, 1},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.code, tt.dotted)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "code %s dotted %v", tt.code, tt.dotted)
	}

	_, err := ParseDuration("3", false)
	assert.True(t, errors.Is(err, diag.ErrMalformedNotation))
}

func TestDurationReencoding(t *testing.T) {
	for _, code := range []string{"w", "h", "q", "8", "16", "32"} {
		for _, dotted := range []bool{false, true} {
			beats, err := ParseDuration(code, dotted)
			require.NoError(t, err)

			want := code
			if dotted {
				want += "."
			}
			assert.Equal(t, want, BeatsToDuration(beats))
		}
	}
}

func TestBeatsToDurationApproximation(t *testing.T) {
	assert.Equal(t, "h", BeatsToDuration(2.5))
	assert.Equal(t, "w", BeatsToDuration(8))
	assert.Equal(t, "32", BeatsToDuration(0.05))
}

func TestParseNote(t *testing.T) {
	n, err := ParseNote("F#3:8.*@0.7+15ms?0.5")
	require.NoError(t, err)

	assert.Equal(t, "F#3", n.Pitch)
	assert.Equal(t, 54, n.Midi)
	assert.Equal(t, "8", n.Duration)
	assert.True(t, n.Dotted)
	assert.InDelta(t, 0.75, n.Beats, 1e-9)
	assert.Equal(t, Staccato, n.Articulation)
	require.NotNil(t, n.Velocity)
	assert.InDelta(t, 0.7, *n.Velocity, 1e-9)
	assert.Equal(t, 15, n.TimingOffset)
	require.NotNil(t, n.Probability)
	assert.InDelta(t, 0.5, *n.Probability, 1e-9)
	assert.Equal(t, "*@0.7+15ms?0.5", n.Suffix)
}

func TestParseNoteVariants(t *testing.T) {
	tests := []struct {
		literal      string
		pitch        string
		beats        float64
		articulation Articulation
		portamento   bool
		offset       int
	}{
		{"C4:q", "C4", 1, Normal, false, 0},
		{"c:h", "C4", 2, Normal, false, 0},
		{"Bb2:w~", "Bb2", 4, Legato, false, 0},
		{"E5:16>", "E5", 0.25, Accent, false, 0},
		{"G4:8^", "G4", 0.5, Marcato, false, 0},
		{"A4:q~>", "A4", 1, Normal, true, 0},
		{"D4:Q-20ms", "D4", 1, Normal, false, -20},
		{"C-1:32", "C-1", 0.125, Normal, false, 0},
		{"C4:4", "C4", 1, Normal, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			n, err := ParseNote(tt.literal)
			require.NoError(t, err)
			assert.Equal(t, tt.pitch, n.Pitch)
			assert.InDelta(t, tt.beats, n.Beats, 1e-9)
			assert.Equal(t, tt.articulation, n.Articulation)
			assert.Equal(t, tt.portamento, n.Portamento)
			assert.Equal(t, tt.offset, n.TimingOffset)
		})
	}
}

func TestParseNoteErrors(t *testing.T) {
	malformed := []string{"", "H4:q", "C4", "C4:z", "C4:q!", "C4:q+10", "C4:q@", "C4:q?x"}
	for _, lit := range malformed {
		_, err := ParseNote(lit)
		assert.True(t, errors.Is(err, diag.ErrMalformedNotation), "literal %q: %v", lit, err)
	}

	outOfRange := []string{"C4:q@1.5", "C4:q?2", "C4:q@-0.2"}
	for _, lit := range outOfRange {
		_, err := ParseNote(lit)
		assert.True(t, errors.Is(err, diag.ErrOutOfRange), "literal %q: %v", lit, err)
	}
}

func TestParseRest(t *testing.T) {
	r, err := ParseRest("r:h.")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, r.Beats, 1e-9)
	assert.True(t, IsRest("R:q"))
	assert.False(t, IsRest("C4:q"))

	_, err = ParseRest("r:q*")
	assert.True(t, errors.Is(err, diag.ErrMalformedNotation))
}

func TestParseChord(t *testing.T) {
	c, err := ParseChord("Cmaj7:w")
	require.NoError(t, err)
	assert.Equal(t, "Cmaj7", c.Symbol)
	assert.Equal(t, []int{60, 64, 67, 71}, c.Pitches)
	assert.InDelta(t, 4.0, c.Beats, 1e-9)

	c, err = ParseChord("F/A:q.")
	require.NoError(t, err)
	assert.Equal(t, "F/A", c.Symbol)
	assert.Equal(t, []int{57, 65, 69, 72}, c.Pitches)
	assert.InDelta(t, 1.5, c.Beats, 1e-9)

	c, err = ParseChord("Am7@drop2:h>")
	require.NoError(t, err)
	assert.Equal(t, []int{64, 69, 72, 79}, c.Pitches)
	assert.Equal(t, Accent, c.Articulation)

	c, err = ParseChord("C@inv1:q")
	require.NoError(t, err)
	assert.Equal(t, []int{64, 67, 72}, c.Pitches)

	c, err = ParseChord("G7b9:8")
	require.NoError(t, err)
	assert.Equal(t, []int{67, 71, 74, 77, 80}, c.Pitches)
}

func TestParseChordErrors(t *testing.T) {
	_, err := ParseChord("Cwat:q")
	assert.True(t, errors.Is(err, diag.ErrUnknownTheoryName))

	for _, lit := range []string{"X:q", "C", "C@sideways:q", "C/H:q", "C:q%"} {
		_, err := ParseChord(lit)
		assert.True(t, errors.Is(err, diag.ErrMalformedNotation), "literal %q: %v", lit, err)
	}
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("F# minor")
	require.NoError(t, err)
	assert.Equal(t, "F#", k.Root)
	assert.Equal(t, 6, k.Tonic)
	assert.Equal(t, "minor", k.Scale)

	k, err = ParseKey("eb")
	require.NoError(t, err)
	assert.Equal(t, "Eb", k.Root)
	assert.Equal(t, "major", k.Scale)

	k, err = ParseKey("A harmonic minor")
	require.NoError(t, err)
	assert.Equal(t, "harmonic_minor", k.Scale)

	_, err = ParseKey("H major")
	assert.True(t, errors.Is(err, diag.ErrMalformedNotation))

	_, err = ParseKey("C wobbly")
	assert.True(t, errors.Is(err, diag.ErrUnknownTheoryName))
}

func TestParseTimeSignature(t *testing.T) {
	ts, err := ParseTimeSignature("6/8")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, ts.BeatsPerBar(), 1e-9)
	assert.Equal(t, "6/8", ts.String())

	ts, err = ParseTimeSignature("3/4")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, ts.BeatsPerBar(), 1e-9)

	for _, lit := range []string{"4", "4/", "/4", "4/0", "4/4x", "a/b"} {
		_, err := ParseTimeSignature(lit)
		assert.True(t, errors.Is(err, diag.ErrMalformedNotation), "literal %q", lit)
	}
}

func TestParseDegree(t *testing.T) {
	tests := []struct {
		literal    string
		degree     int
		accidental int
		shift      int
		beats      float64
	}{
		{"1", 1, 0, 0, 0},
		{"b3", 3, -1, 0, 0},
		{"4#", 4, 1, 0, 0},
		{"5+", 5, 0, 1, 0},
		{"7--:8", 7, 0, -2, 0.5},
		{"#4:q.", 4, 1, 0, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			d, err := ParseDegree(tt.literal)
			require.NoError(t, err)
			assert.Equal(t, tt.degree, d.Degree)
			assert.Equal(t, tt.accidental, d.Accidental)
			assert.Equal(t, tt.shift, d.OctaveShift)
			assert.InDelta(t, tt.beats, d.Beats, 1e-9)
			assert.Equal(t, tt.beats > 0, d.HasDuration())
		})
	}

	for _, lit := range []string{"", "0", "x", "b", "b3#", "3:z", "3+x"} {
		_, err := ParseDegree(lit)
		assert.True(t, errors.Is(err, diag.ErrMalformedNotation), "literal %q", lit)
	}
}

func TestParseTimeExpression(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"0", 0},
		{"1.5", 1.5},
		{"q+8", 1.5},
		{"16+16", 0.5},
		{"h+2", 4},
		{"q.", 1.5},
		{"w + q", 5},
	}

	for _, tt := range tests {
		got, err := ParseTimeExpression(tt.expr)
		require.NoError(t, err, tt.expr)
		assert.InDelta(t, tt.want, got, 1e-9, tt.expr)
	}

	for _, expr := range []string{"", "q+", "x", "-1", "NaN"} {
		_, err := ParseTimeExpression(expr)
		assert.True(t, errors.Is(err, diag.ErrMalformedNotation), "expr %q", expr)
	}
}

func TestNoteRewrites(t *testing.T) {
	n, err := ParseNote("E4:8.>@0.9")
	require.NoError(t, err)
	assert.Equal(t, "G4:8.>@0.9", n.WithPitch("G4"))
	assert.Equal(t, "E4:q.>@0.9", n.WithBeats(1.5))
	assert.Equal(t, "C4:h", FormatNote("C4", 2))
	assert.Equal(t, "r:16", FormatRest(0.25))
}
