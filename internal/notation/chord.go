package notation

import (
	"sort"
	"strings"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/theory"
)

const chordShape = "chord like Cmaj7:w, Am7@drop2:h, F/A:q or G7b9:8.*"

// ChordRootOctave is the octave chord roots are voiced in; slash basses sit one below
const ChordRootOctave = 4

// Chord voicings
const (
	VoicingClose = "close"
	VoicingOpen  = "open"
	VoicingDrop2 = "drop2"
	VoicingDrop3 = "drop3"
	VoicingInv1  = "inv1"
	VoicingInv2  = "inv2"
	VoicingInv3  = "inv3"
)

var voicings = []string{VoicingClose, VoicingOpen, VoicingDrop2, VoicingDrop3, VoicingInv1, VoicingInv2, VoicingInv3}

// Chord is one parsed chord literal
type Chord struct {
	Literal      string
	Symbol       string // root, quality and slash bass, e.g. "Am7/G"
	Root         string
	Quality      string
	Intervals    []int
	Voicing      string
	Bass         string
	Duration     string
	Dotted       bool
	Beats        float64
	Articulation Articulation
	Pitches      []int // MIDI numbers, lowest first
}

// ParseChord parses a chord literal and resolves its pitches
func ParseChord(literal string) (Chord, error) {
	s := newScanner(strings.TrimSpace(literal))
	c := Chord{Literal: literal, Articulation: Normal, Voicing: VoicingClose}

	letter, ok := s.accept("ABCDEFGabcdefg")
	if !ok {
		return Chord{}, diag.Malformed(literal, chordShape)
	}
	c.Root = strings.ToUpper(string(letter))
	if acc, ok := s.accept("#b"); ok {
		c.Root += string(acc)
	}

	c.Quality = s.until("@/:")
	intervals, err := theory.ChordIntervals(c.Quality)
	if err != nil {
		return Chord{}, err
	}
	c.Intervals = intervals

	if _, ok := s.accept("@"); ok {
		c.Voicing = strings.ToLower(s.until("/:"))
		if !isVoicing(c.Voicing) {
			return Chord{}, diag.Malformed(literal, "voicing one of "+strings.Join(voicings, ", "))
		}
	}

	if _, ok := s.accept("/"); ok {
		bass := s.until(":")
		if _, err := theory.PitchClass(bass); err != nil {
			return Chord{}, diag.Malformed(literal, chordShape)
		}
		c.Bass = strings.ToUpper(bass[:1]) + bass[1:]
	}

	if _, ok := s.accept(":"); !ok {
		return Chord{}, diag.Malformed(literal, chordShape)
	}
	code, dotted, ok := scanDuration(s)
	if !ok {
		return Chord{}, diag.Malformed(literal, chordShape)
	}
	c.Duration, c.Dotted = code, dotted
	c.Beats, _ = ParseDuration(code, dotted)

	if a, ok := s.accept("*~>^"); ok {
		c.Articulation = articulationFor(a)
	}
	if !s.eof() {
		return Chord{}, diag.Malformed(literal, chordShape)
	}

	c.Symbol = c.Root + c.Quality
	if c.Bass != "" {
		c.Symbol += "/" + c.Bass
	}
	c.Pitches = c.resolve()
	return c, nil
}

func (c Chord) resolve() []int {
	rootPC, _ := theory.PitchClass(c.Root)
	rootMidi := (ChordRootOctave+1)*12 + rootPC

	pitches := make([]int, len(c.Intervals))
	for i, iv := range c.Intervals {
		pitches[i] = rootMidi + iv
	}
	pitches = applyVoicing(pitches, c.Voicing)

	if c.Bass != "" {
		bassPC, _ := theory.PitchClass(c.Bass)
		pitches = append([]int{ChordRootOctave*12 + bassPC}, pitches...)
	}
	return pitches
}

func applyVoicing(pitches []int, voicing string) []int {
	out := make([]int, len(pitches))
	copy(out, pitches)
	n := len(out)

	switch voicing {
	case VoicingOpen:
		if n >= 3 {
			out[1] += 12
		}
	case VoicingDrop2:
		if n >= 3 {
			out[n-2] -= 12
		}
	case VoicingDrop3:
		if n >= 4 {
			out[n-3] -= 12
		}
	case VoicingInv1, VoicingInv2, VoicingInv3:
		steps := int(voicing[3] - '0')
		for i := 0; i < steps && i < n-1; i++ {
			sort.Ints(out)
			out[0] += 12
		}
	}
	sort.Ints(out)
	return out
}

func isVoicing(v string) bool {
	for _, known := range voicings {
		if v == known {
			return true
		}
	}
	return false
}

func articulationFor(c byte) Articulation {
	switch c {
	case '*':
		return Staccato
	case '~':
		return Legato
	case '>':
		return Accent
	case '^':
		return Marcato
	}
	return Normal
}
