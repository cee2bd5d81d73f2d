package transform

import (
	"errors"
	"testing"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var melody = []string{"C4:q", "E4:8*", "r:8", "G4:h@0.6", "D#4:16~>"}

func TestRetrogradeInvolution(t *testing.T) {
	got := Retrograde(melody)
	assert.Equal(t, []string{"D#4:16~>", "G4:h@0.6", "r:8", "E4:8*", "C4:q"}, got)
	assert.Equal(t, melody, Retrograde(got))
}

func TestInvert(t *testing.T) {
	got, err := Invert(melody, "")
	require.NoError(t, err)
	// axis C4: E4 -> G#3, G4 -> F3, D#4 -> A3
	assert.Equal(t, []string{"C4:q", "G#3:8*", "r:8", "F3:h@0.6", "A3:16~>"}, got)
}

func TestInvertInvolutionWithFixedAxis(t *testing.T) {
	once, err := Invert(melody, "E4")
	require.NoError(t, err)
	twice, err := Invert(once, "E4")
	require.NoError(t, err)
	assert.Equal(t, melody, twice)
}

func TestInvertWithoutPitches(t *testing.T) {
	got, err := Invert([]string{"r:q", "r:h"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"r:q", "r:h"}, got)
}

func TestTransposeRoundTrip(t *testing.T) {
	for _, n := range []int{-13, -1, 0, 5, 12, 24} {
		up, err := Transpose(melody, n)
		require.NoError(t, err)
		back, err := Transpose(up, -n)
		require.NoError(t, err)
		assert.Equal(t, melody, back, "n=%d", n)
	}
}

func TestTransposeKeepsSuffix(t *testing.T) {
	got, err := Transpose([]string{"B3:q.>@0.9-5ms?0.5"}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"C4:q.>@0.9-5ms?0.5"}, got)
}

func TestOctave(t *testing.T) {
	got, err := Octave([]string{"C4:q", "r:q", "A3:8"}, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"C3:q", "r:q", "A2:8"}, got)
}

func TestAugmentDiminish(t *testing.T) {
	got, err := Augment([]string{"C4:q", "D4:8.", "r:8", "E4:w"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"C4:h", "D4:q.", "r:q", "E4:w"}, got)

	got, err = Diminish([]string{"C4:h", "D4:q*", "r:q"}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"C4:q", "D4:8*", "r:8"}, got)

	got, err = Augment([]string{"C4:q"}, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []string{"C4:q."}, got)
}

func TestMalformedLiteralFails(t *testing.T) {
	_, err := Transpose([]string{"C4:q", "nope"}, 2)
	assert.True(t, errors.Is(err, diag.ErrMalformedNotation))

	_, err = Apply(melody, models.Transform{Operation: "shuffle"})
	assert.True(t, errors.Is(err, diag.ErrUnknownTheoryName))
}

func TestResolverChain(t *testing.T) {
	patterns := map[string]models.Pattern{
		"motif": {Notes: []string{"C4:q", "D4:q"}},
		"up":    {Transform: &models.Transform{Source: "motif", Operation: models.OpTranspose, Semitones: 2}},
		"back":  {Transform: &models.Transform{Source: "up", Operation: models.OpRetrograde}, Rest: "r:h"},
	}
	d := diag.New()
	r := NewResolver(patterns, d)

	got, err := r.Resolve("back")
	require.NoError(t, err)
	assert.Equal(t, models.KindNotes, got.Kind())
	assert.Equal(t, []string{"E4:q", "D4:q"}, got.Notes)
	assert.Equal(t, "r:h", got.Rest)
	assert.Zero(t, d.Len())
}

func TestResolverMissingSourceFallsBack(t *testing.T) {
	patterns := map[string]models.Pattern{
		"ghost": {Transform: &models.Transform{Source: "nowhere", Operation: models.OpRetrograde}},
		"drums": {Drums: &models.Drums{Steps: "x.x."}},
		"echo":  {Transform: &models.Transform{Source: "drums", Operation: models.OpRetrograde}},
	}
	d := diag.New()
	r := NewResolver(patterns, d)

	got, err := r.Resolve("ghost")
	require.NoError(t, err)
	assert.Equal(t, patterns["ghost"], got)

	got, err = r.Resolve("echo")
	require.NoError(t, err)
	assert.Equal(t, patterns["echo"], got)

	require.Equal(t, 2, d.Len())
	assert.Contains(t, d.Warnings()[0], "nowhere")
	assert.Contains(t, d.Warnings()[1], "no notes")
}

func TestResolverDetectsCycles(t *testing.T) {
	patterns := map[string]models.Pattern{
		"a":    {Transform: &models.Transform{Source: "b", Operation: models.OpRetrograde}},
		"b":    {Transform: &models.Transform{Source: "a", Operation: models.OpInvert}},
		"self": {Transform: &models.Transform{Source: "self", Operation: models.OpOctave, Octaves: 1}},
	}
	r := NewResolver(patterns, diag.New())

	_, err := r.Resolve("a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrCyclicTransform))
	assert.Contains(t, err.Error(), "a -> b -> a")

	_, err = r.Resolve("self")
	assert.True(t, errors.Is(err, diag.ErrCyclicTransform))

	_, err = r.Resolve("missing")
	assert.True(t, errors.Is(err, diag.ErrMissingReference))
}
