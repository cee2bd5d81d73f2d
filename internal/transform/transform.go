// Package transform rewrites sequences of note and rest literals (invert,
// retrograde, augment, diminish, transpose, octave) and resolves patterns
// that are defined as a transform of another pattern.
package transform

import (
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/notation"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/theory"
)

// DefaultFactor is used by augment and diminish when no factor is given
const DefaultFactor = 2.0

var operations = []string{
	models.OpInvert, models.OpRetrograde, models.OpAugment,
	models.OpDiminish, models.OpTranspose, models.OpOctave,
}

// Invert reflects every pitch around axis: new = axis - (old - axis).
// An empty axis uses the first pitched note. Rests pass through.
func Invert(literals []string, axis string) ([]string, error) {
	axisMidi, ok, err := invertAxis(literals, axis)
	if err != nil || !ok {
		return copyStrings(literals), err
	}
	return mapPitches(literals, func(midi int) int {
		return 2*axisMidi - midi
	})
}

// Retrograde reverses the sequence, rests included
func Retrograde(literals []string) []string {
	out := make([]string, len(literals))
	for i, lit := range literals {
		out[len(literals)-1-i] = lit
	}
	return out
}

// Augment multiplies every duration by factor and re-derives the nearest
// duration code. A factor <= 0 means DefaultFactor.
func Augment(literals []string, factor float64) ([]string, error) {
	if factor <= 0 {
		factor = DefaultFactor
	}
	out := make([]string, len(literals))
	for i, lit := range literals {
		if notation.IsRest(lit) {
			r, err := notation.ParseRest(lit)
			if err != nil {
				return nil, err
			}
			out[i] = notation.FormatRest(r.Beats * factor)
			continue
		}
		n, err := notation.ParseNote(lit)
		if err != nil {
			return nil, err
		}
		out[i] = n.WithBeats(n.Beats * factor)
	}
	return out, nil
}

// Diminish divides every duration by factor (augment by 1/factor)
func Diminish(literals []string, factor float64) ([]string, error) {
	if factor <= 0 {
		factor = DefaultFactor
	}
	return Augment(literals, 1/factor)
}

// Transpose shifts every pitched note by semitones
func Transpose(literals []string, semitones int) ([]string, error) {
	return mapPitches(literals, func(midi int) int {
		return midi + semitones
	})
}

// Octave shifts every pitched note by whole octaves
func Octave(literals []string, octaves int) ([]string, error) {
	return Transpose(literals, 12*octaves)
}

// Apply runs the operation named by t over literals
func Apply(literals []string, t models.Transform) ([]string, error) {
	switch t.Operation {
	case models.OpInvert:
		return Invert(literals, t.Axis)
	case models.OpRetrograde:
		return Retrograde(literals), nil
	case models.OpAugment:
		return Augment(literals, t.Factor)
	case models.OpDiminish:
		return Diminish(literals, t.Factor)
	case models.OpTranspose:
		return Transpose(literals, t.Semitones)
	case models.OpOctave:
		return Octave(literals, t.Octaves)
	}
	return nil, diag.Unknown("transform operation", t.Operation, operations)
}

// mapPitches rewrites the pitch prefix of each note. A note whose MIDI
// number does not change keeps its original spelling.
func mapPitches(literals []string, fn func(midi int) int) ([]string, error) {
	out := make([]string, len(literals))
	for i, lit := range literals {
		if notation.IsRest(lit) {
			out[i] = lit
			continue
		}
		n, err := notation.ParseNote(lit)
		if err != nil {
			return nil, err
		}
		midi := fn(n.Midi)
		if midi == n.Midi {
			out[i] = lit
			continue
		}
		out[i] = n.WithPitch(theory.MidiToPitch(midi))
	}
	return out, nil
}

func invertAxis(literals []string, axis string) (int, bool, error) {
	if axis != "" {
		midi, err := theory.PitchToMidi(axis)
		if err != nil {
			return 0, false, err
		}
		return midi, true, nil
	}
	for _, lit := range literals {
		if notation.IsRest(lit) {
			continue
		}
		n, err := notation.ParseNote(lit)
		if err != nil {
			return 0, false, err
		}
		return n.Midi, true, nil
	}
	return 0, false, nil
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
