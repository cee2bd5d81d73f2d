package theory

import (
	"regexp"
	"sort"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
)

// Chord quality intervals in semitones from the root. Qualities are case
// sensitive so that "M7" and "m7" stay distinct.
var chordQualities = map[string][]int{
	"":      {0, 4, 7},
	"maj":   {0, 4, 7},
	"M":     {0, 4, 7},
	"m":     {0, 3, 7},
	"min":   {0, 3, 7},
	"-":     {0, 3, 7},
	"dim":   {0, 3, 6},
	"aug":   {0, 4, 8},
	"+":     {0, 4, 8},
	"sus2":  {0, 2, 7},
	"sus4":  {0, 5, 7},
	"sus":   {0, 5, 7},
	"5":     {0, 7},
	"6":     {0, 4, 7, 9},
	"m6":    {0, 3, 7, 9},
	"7":     {0, 4, 7, 10},
	"maj7":  {0, 4, 7, 11},
	"M7":    {0, 4, 7, 11},
	"m7":    {0, 3, 7, 10},
	"min7":  {0, 3, 7, 10},
	"mmaj7": {0, 3, 7, 11},
	"dim7":  {0, 3, 6, 9},
	"m7b5":  {0, 3, 6, 10},
	"aug7":  {0, 4, 8, 10},
	"7sus4": {0, 5, 7, 10},
	"7sus2": {0, 2, 7, 10},
	"add9":  {0, 4, 7, 14},
	"madd9": {0, 3, 7, 14},
	"9":     {0, 4, 7, 10, 14},
	"maj9":  {0, 4, 7, 11, 14},
	"m9":    {0, 3, 7, 10, 14},
	"11":    {0, 4, 7, 10, 14, 17},
	"m11":   {0, 3, 7, 10, 14, 17},
	"13":    {0, 4, 7, 10, 14, 21},
	"maj13": {0, 4, 7, 11, 14, 21},
	"m13":   {0, 3, 7, 10, 14, 21},
}

// base semitone offset of an alterable chord degree
var degreeOffsets = map[string]int{"5": 7, "9": 14, "11": 17, "13": 21}

var alterationPattern = regexp.MustCompile(`([#b])(13|11|9|5)`)

// ChordIntervals resolves a chord quality such as "m7", "7b9" or "maj7#11"
// to its sorted interval set. Alterations flatten or sharpen a degree,
// replacing the unaltered tone when the base quality contains it.
func ChordIntervals(quality string) ([]int, error) {
	if intervals, ok := chordQualities[quality]; ok {
		return copyInts(intervals), nil
	}

	matches := alterationPattern.FindAllStringSubmatchIndex(quality, -1)
	if len(matches) == 0 {
		return nil, diag.Unknown("chord quality", quality, ChordQualities())
	}

	base := alterationPattern.ReplaceAllString(quality, "")
	intervals, ok := chordQualities[base]
	if !ok {
		return nil, diag.Unknown("chord quality", quality, ChordQualities())
	}
	intervals = copyInts(intervals)

	for _, m := range matches {
		accidental := quality[m[2]:m[3]]
		degree := quality[m[4]:m[5]]
		natural := degreeOffsets[degree]
		altered := natural + 1
		if accidental == "b" {
			altered = natural - 1
		}

		replaced := false
		for i, iv := range intervals {
			if iv == natural {
				intervals[i] = altered
				replaced = true
				break
			}
		}
		if !replaced {
			intervals = append(intervals, altered)
		}
	}

	return sortUnique(intervals), nil
}

// ChordQualities lists the known base chord qualities in sorted order
func ChordQualities() []string {
	names := make([]string, 0, len(chordQualities))
	for name := range chordQualities {
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func copyInts(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	return out
}

func sortUnique(in []int) []int {
	sort.Ints(in)
	out := in[:0]
	for _, v := range in {
		if len(out) > 0 && v == out[len(out)-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}
