package theory

import (
	"strconv"
	"strings"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
)

// DefaultOctave is used when a pitch literal omits its octave
const DefaultOctave = 4

var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchClass returns the pitch class (0-11) of a note name without octave,
// e.g. "C" -> 0, "F#" -> 6, "Bb" -> 10
func PitchClass(name string) (int, error) {
	pc, rest, err := splitPitchClass(name)
	if err != nil {
		return 0, err
	}
	if rest != "" {
		return 0, diag.Malformed(name, "pitch class like C, F# or Bb")
	}
	return pc, nil
}

// PitchToMidi converts a pitch like "C4", "F#3", "Bb-1" or "E" to its MIDI number.
// MIDI = (octave+1)*12 + class; a missing octave means octave 4.
func PitchToMidi(pitch string) (int, error) {
	pc, rest, err := splitPitchClass(pitch)
	if err != nil {
		return 0, err
	}

	octave := DefaultOctave
	if rest != "" {
		octave, err = strconv.Atoi(rest)
		if err != nil {
			return 0, diag.Malformed(pitch, "pitch like C4, F#3 or Bb-1")
		}
	}

	// pc may be -1 (Cb) or 12 (B#); the formula still gives the right MIDI number
	return (octave+1)*12 + pc, nil
}

// MidiToPitch spells a MIDI number with sharps, e.g. 61 -> "C#4"
func MidiToPitch(midi int) string {
	octave := floorDiv(midi, 12) - 1
	pc := mod(midi, 12)
	return sharpNames[pc] + strconv.Itoa(octave)
}

// PitchClassName spells a pitch class with sharps
func PitchClassName(pc int) string {
	return sharpNames[mod(pc, 12)]
}

// TransposePitch shifts a pitch literal by semitones and respells it with sharps
func TransposePitch(pitch string, semitones int) (string, error) {
	midi, err := PitchToMidi(pitch)
	if err != nil {
		return "", err
	}
	return MidiToPitch(midi + semitones), nil
}

// splitPitchClass reads the letter and optional accidental and returns the remainder
func splitPitchClass(s string) (int, string, error) {
	if s == "" {
		return 0, "", diag.Malformed(s, "pitch letter A-G")
	}
	letter := strings.ToUpper(s[:1])[0]
	pc, ok := letterOffsets[letter]
	if !ok {
		return 0, "", diag.Malformed(s, "pitch letter A-G")
	}

	idx := 1
	if idx < len(s) {
		switch s[idx] {
		case '#':
			pc++
			idx++
		case 'b':
			pc--
			idx++
		}
	}
	return pc, s[idx:], nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
