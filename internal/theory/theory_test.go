package theory

import (
	"errors"
	"testing"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPitchToMidi(t *testing.T) {
	tests := []struct {
		pitch string
		want  int
	}{
		{"C4", 60},
		{"A4", 69},
		{"C#4", 61},
		{"Db4", 61},
		{"Bb2", 46},
		{"C-1", 0},
		{"G9", 127},
		{"E", 64},
		{"f#3", 54},
		{"Cb4", 59},
		{"B#3", 60},
	}

	for _, tt := range tests {
		t.Run(tt.pitch, func(t *testing.T) {
			got, err := PitchToMidi(tt.pitch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPitchToMidiMalformed(t *testing.T) {
	for _, p := range []string{"", "H4", "C#x", "4"} {
		_, err := PitchToMidi(p)
		assert.True(t, errors.Is(err, diag.ErrMalformedNotation), "pitch %q", p)
	}
}

func TestMidiRoundTripSharps(t *testing.T) {
	for midi := 0; midi <= 127; midi++ {
		p := MidiToPitch(midi)
		back, err := PitchToMidi(p)
		require.NoError(t, err)
		assert.Equal(t, midi, back, "pitch %s", p)
		assert.Equal(t, p, MidiToPitch(back))
	}
}

func TestFlatsRespellAsSharps(t *testing.T) {
	midi, err := PitchToMidi("Eb4")
	require.NoError(t, err)
	assert.Equal(t, "D#4", MidiToPitch(midi))
}

func TestTransposePitch(t *testing.T) {
	got, err := TransposePitch("B3", 1)
	require.NoError(t, err)
	assert.Equal(t, "C4", got)

	got, err = TransposePitch("C4", -13)
	require.NoError(t, err)
	assert.Equal(t, "B2", got)
}

func TestScaleIntervals(t *testing.T) {
	got, err := ScaleIntervals("Natural Minor")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3, 5, 7, 8, 10}, got)

	got, err = ScaleIntervals("harmonic-minor")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3, 5, 7, 8, 11}, got)

	_, err = ScaleIntervals("klingon")
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrUnknownTheoryName))
	assert.Contains(t, err.Error(), "dorian")
}

func TestChordIntervals(t *testing.T) {
	tests := []struct {
		quality string
		want    []int
	}{
		{"", []int{0, 4, 7}},
		{"m", []int{0, 3, 7}},
		{"maj7", []int{0, 4, 7, 11}},
		{"m7", []int{0, 3, 7, 10}},
		{"7b9", []int{0, 4, 7, 10, 13}},
		{"7#9", []int{0, 4, 7, 10, 15}},
		{"7b5", []int{0, 4, 6, 10}},
		{"7#5", []int{0, 4, 8, 10}},
		{"maj7#11", []int{0, 4, 7, 11, 18}},
		{"9b5", []int{0, 4, 6, 10, 14}},
		{"7b9#11", []int{0, 4, 7, 10, 13, 18}},
		{"13b9", []int{0, 4, 7, 10, 13, 21}},
		{"b5", []int{0, 4, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.quality, func(t *testing.T) {
			got, err := ChordIntervals(tt.quality)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChordIntervalsUnknown(t *testing.T) {
	for _, q := range []string{"wat", "zz#9"} {
		_, err := ChordIntervals(q)
		assert.True(t, errors.Is(err, diag.ErrUnknownTheoryName), "quality %q", q)
	}
}

func TestChordIntervalsDoesNotMutateTable(t *testing.T) {
	_, err := ChordIntervals("7b5")
	require.NoError(t, err)
	got, err := ChordIntervals("7")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4, 7, 10}, got)
}

func TestScaleDegreeToNote(t *testing.T) {
	cMajor := Key{Root: "C", Tonic: 0, Scale: "major"}
	aMinor := Key{Root: "A", Tonic: 9, Scale: "minor"}

	tests := []struct {
		name   string
		degree int
		key    Key
		octave int
		want   int
	}{
		{"tonic", 1, cMajor, 4, 60},
		{"fifth", 5, cMajor, 4, 67},
		{"octave above", 8, cMajor, 4, 72},
		{"below tonic", 0, cMajor, 4, 59},
		{"minor third", 3, aMinor, 3, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScaleDegreeToNote(tt.degree, tt.key, tt.octave)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapToScale(t *testing.T) {
	cMajor := Key{Root: "C", Tonic: 0, Scale: "major"}

	assert.Equal(t, 60, SnapToScale(60, cMajor))
	// C#4 is equidistant from C4 and D4 and snaps down
	assert.Equal(t, 60, SnapToScale(61, cMajor))
	// F#4 snaps down to F4
	assert.Equal(t, 65, SnapToScale(66, cMajor))

	cMinorPent := Key{Root: "C", Tonic: 0, Scale: "minor_pentatonic"}
	// B4 stays in the same octave: nearest is A#4
	assert.Equal(t, 70, SnapToScale(71, cMinorPent))
}

func TestKeyString(t *testing.T) {
	k := Key{Root: "Eb", Tonic: 3, Scale: "harmonic_minor"}
	assert.Equal(t, "Eb harmonic minor", k.String())
}

func TestDrumMidi(t *testing.T) {
	n, ok := DrumMidi("Kick")
	assert.True(t, ok)
	assert.Equal(t, 36, n)

	_, ok = DrumMidi("laser")
	assert.False(t, ok)
}

func TestGrooveTemplates(t *testing.T) {
	g, ok := GetGrooveTemplate("laid back")
	require.True(t, ok)
	assert.Equal(t, "laid_back", g.Name)
	assert.Equal(t, 0, g.Step(4.0))
	assert.Equal(t, 1, g.Step(0.25))
	assert.Equal(t, 15, g.Step(3.75))

	_, ok = GetGrooveTemplate("polka")
	assert.False(t, ok)
	assert.Contains(t, GrooveNames(), "mpc")
}
