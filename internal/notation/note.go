package notation

import (
	"strconv"
	"strings"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/theory"
)

// Articulation tags
type Articulation string

const (
	Normal   Articulation = "normal"
	Staccato Articulation = "staccato"
	Legato   Articulation = "legato"
	Accent   Articulation = "accent"
	Marcato  Articulation = "marcato"
)

const (
	noteShape = "note like C4:q, F#3:8.*, Bb:h@0.7, E4:16+10ms?0.5"
	restShape = "rest like r:q or r:8."
)

// Note is one parsed note literal
type Note struct {
	Literal      string
	Pitch        string // normalized, octave always present, e.g. "F#3"
	Midi         int
	Duration     string // canonical code without dot
	Dotted       bool
	Beats        float64
	Articulation Articulation
	Velocity     *float64
	Probability  *float64
	TimingOffset int // milliseconds, 0 when absent
	Portamento   bool

	// Suffix is the literal text after the duration (articulation, velocity,
	// timing and probability), kept so rewrites can preserve it verbatim
	Suffix string
}

// Rest is one parsed rest literal
type Rest struct {
	Literal  string
	Duration string
	Dotted   bool
	Beats    float64
}

// IsRest reports whether a literal uses the rest marker
func IsRest(literal string) bool {
	return len(literal) >= 2 && (literal[0] == 'r' || literal[0] == 'R') && literal[1] == ':'
}

// ParseNote parses a note literal
func ParseNote(literal string) (Note, error) {
	s := newScanner(strings.TrimSpace(literal))
	n := Note{Literal: literal, Articulation: Normal}

	pitch, midi, ok := scanPitch(s)
	if !ok {
		return Note{}, diag.Malformed(literal, noteShape)
	}
	n.Pitch, n.Midi = pitch, midi

	if _, ok := s.accept(":"); !ok {
		return Note{}, diag.Malformed(literal, noteShape)
	}
	code, dotted, ok := scanDuration(s)
	if !ok {
		return Note{}, diag.Malformed(literal, noteShape)
	}
	n.Duration, n.Dotted = code, dotted
	n.Beats, _ = ParseDuration(code, dotted)

	n.Suffix = s.rest()
	if err := scanNoteSuffix(s, literal, &n); err != nil {
		return Note{}, err
	}
	return n, nil
}

// ParseRest parses a rest literal
func ParseRest(literal string) (Rest, error) {
	s := newScanner(strings.TrimSpace(literal))
	if _, ok := s.accept("rR"); !ok {
		return Rest{}, diag.Malformed(literal, restShape)
	}
	if _, ok := s.accept(":"); !ok {
		return Rest{}, diag.Malformed(literal, restShape)
	}
	code, dotted, ok := scanDuration(s)
	if !ok || !s.eof() {
		return Rest{}, diag.Malformed(literal, restShape)
	}
	beats, _ := ParseDuration(code, dotted)
	return Rest{Literal: literal, Duration: code, Dotted: dotted, Beats: beats}, nil
}

// scanPitch reads "<letter><accidental?><octave?>" and normalizes it
func scanPitch(s *scanner) (string, int, bool) {
	letter, ok := s.accept("ABCDEFGabcdefg")
	if !ok {
		return "", 0, false
	}
	name := strings.ToUpper(string(letter))
	if acc, ok := s.accept("#b"); ok {
		name += string(acc)
	}

	octave := theory.DefaultOctave
	start := s.pos
	s.accept("-")
	if d := s.digits(); d != "" {
		octave, _ = strconv.Atoi(s.src[start:s.pos])
	} else if s.pos != start {
		return "", 0, false
	}

	pitch := name + strconv.Itoa(octave)
	midi, err := theory.PitchToMidi(pitch)
	if err != nil {
		return "", 0, false
	}
	return pitch, midi, true
}

// scanNoteSuffix reads [articulation][@velocity][<+|->Nms][?probability]
func scanNoteSuffix(s *scanner, literal string, n *Note) error {
	for {
		if s.acceptLiteral("~>") {
			n.Portamento = true
			continue
		}
		c, ok := s.accept("*~>^")
		if !ok {
			break
		}
		n.Articulation = articulationFor(c)
	}

	if _, ok := s.accept("@"); ok {
		v, err := scanUnit(s, literal, "velocity")
		if err != nil {
			return err
		}
		n.Velocity = &v
	}

	if sign, ok := s.accept("+-"); ok {
		d := s.digits()
		if d == "" || !s.acceptLiteral("ms") {
			return diag.Malformed(literal, noteShape)
		}
		ms, _ := strconv.Atoi(d)
		if sign == '-' {
			ms = -ms
		}
		n.TimingOffset = ms
	}

	if _, ok := s.accept("?"); ok {
		p, err := scanUnit(s, literal, "probability")
		if err != nil {
			return err
		}
		n.Probability = &p
	}

	if !s.eof() {
		return diag.Malformed(literal, noteShape)
	}
	return nil
}

// scanUnit reads a decimal that must lie in [0,1]
func scanUnit(s *scanner, literal, field string) (float64, error) {
	_, negative := s.accept("-")
	text := s.decimal()
	if text == "" {
		return 0, diag.Malformed(literal, noteShape)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, diag.Malformed(literal, noteShape)
	}
	if negative {
		v = -v
	}
	if v < 0 || v > 1 {
		return 0, diag.Range(literal, field, v)
	}
	return v, nil
}
