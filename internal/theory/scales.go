package theory

import (
	"sort"
	"strings"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
)

var scaleIntervals = map[string][]int{
	"major":            {0, 2, 4, 5, 7, 9, 11},
	"minor":            {0, 2, 3, 5, 7, 8, 10},
	"harmonic_minor":   {0, 2, 3, 5, 7, 8, 11},
	"melodic_minor":    {0, 2, 3, 5, 7, 9, 11},
	"dorian":           {0, 2, 3, 5, 7, 9, 10},
	"phrygian":         {0, 1, 3, 5, 7, 8, 10},
	"lydian":           {0, 2, 4, 6, 7, 9, 11},
	"mixolydian":       {0, 2, 4, 5, 7, 9, 10},
	"locrian":          {0, 1, 3, 5, 6, 8, 10},
	"major_pentatonic": {0, 2, 4, 7, 9},
	"minor_pentatonic": {0, 3, 5, 7, 10},
	"blues":            {0, 3, 5, 6, 7, 10},
	"whole_tone":       {0, 2, 4, 6, 8, 10},
	"chromatic":        {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
}

var scaleAliases = map[string]string{
	"ionian":        "major",
	"aeolian":       "minor",
	"natural_minor": "minor",
	"pentatonic":    "major_pentatonic",
	"maj":           "major",
	"min":           "minor",
}

// NormalizeScaleName lowercases a mode name, joins words with underscores
// and resolves aliases such as "aeolian" -> "minor"
func NormalizeScaleName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.Join(strings.FieldsFunc(n, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
	if alias, ok := scaleAliases[n]; ok {
		return alias
	}
	return n
}

// ScaleIntervals returns the semitone offsets of a scale
func ScaleIntervals(name string) ([]int, error) {
	intervals, ok := scaleIntervals[NormalizeScaleName(name)]
	if !ok {
		return nil, diag.Unknown("scale", name, ScaleNames())
	}
	out := make([]int, len(intervals))
	copy(out, intervals)
	return out, nil
}

// ScaleNames lists the known scale names in sorted order
func ScaleNames() []string {
	names := make([]string, 0, len(scaleIntervals))
	for name := range scaleIntervals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Key is a tonic pitch class plus a scale
type Key struct {
	Root  string // spelled root, e.g. "Eb"
	Tonic int    // pitch class 0-11
	Scale string // normalized scale name
}

// String renders the key the way it is written in documents, e.g. "Eb minor"
func (k Key) String() string {
	return k.Root + " " + strings.ReplaceAll(k.Scale, "_", " ")
}

// PitchClasses returns the sorted set of pitch classes in the key
func (k Key) PitchClasses() []int {
	intervals := scaleIntervals[k.Scale]
	pcs := make([]int, 0, len(intervals))
	for _, iv := range intervals {
		pcs = append(pcs, mod(k.Tonic+iv, 12))
	}
	sort.Ints(pcs)
	return pcs
}

// ScaleDegreeToNote resolves a 1-based scale degree in key to a MIDI number.
// Degrees past the scale length continue into higher octaves and degrees
// below 1 into lower ones.
func ScaleDegreeToNote(degree int, key Key, baseOctave int) (int, error) {
	intervals, err := ScaleIntervals(key.Scale)
	if err != nil {
		return 0, err
	}
	n := len(intervals)
	idx := degree - 1
	octaves := floorDiv(idx, n)
	step := mod(idx, n)
	return (baseOctave+1)*12 + key.Tonic + intervals[step] + octaves*12, nil
}

// SnapToScale moves midi to the nearest pitch class of key within the same
// octave. Ties resolve downward.
func SnapToScale(midi int, key Key) int {
	pcs := key.PitchClasses()
	if len(pcs) == 0 {
		return midi
	}
	pc := mod(midi, 12)
	base := midi - pc

	best := pcs[0]
	bestDist := abs(pcs[0] - pc)
	for _, candidate := range pcs[1:] {
		d := abs(candidate - pc)
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return base + best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
