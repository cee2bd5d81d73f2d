package notation

import (
	"strconv"
	"strings"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/theory"
)

const (
	keyShape           = `key like "C major", "F# minor" or "Bb dorian"`
	timeSignatureShape = "time signature like 4/4 or 6/8"
)

// ParseKey parses "<root> <mode words>"; the mode defaults to major
func ParseKey(literal string) (theory.Key, error) {
	fields := strings.Fields(literal)
	if len(fields) == 0 {
		return theory.Key{}, diag.Malformed(literal, keyShape)
	}

	root := fields[0]
	tonic, err := theory.PitchClass(root)
	if err != nil {
		return theory.Key{}, diag.Malformed(literal, keyShape)
	}
	root = strings.ToUpper(root[:1]) + root[1:]

	mode := "major"
	if len(fields) > 1 {
		mode = strings.Join(fields[1:], "_")
	}
	scale := theory.NormalizeScaleName(mode)
	if _, err := theory.ScaleIntervals(scale); err != nil {
		return theory.Key{}, err
	}

	return theory.Key{Root: root, Tonic: tonic, Scale: scale}, nil
}

// TimeSignature is a numerator over a denominator
type TimeSignature struct {
	Numerator   int
	Denominator int
}

// BeatsPerBar measures a bar in quarter-note beats
func (ts TimeSignature) BeatsPerBar() float64 {
	return float64(ts.Numerator) * 4 / float64(ts.Denominator)
}

func (ts TimeSignature) String() string {
	return strconv.Itoa(ts.Numerator) + "/" + strconv.Itoa(ts.Denominator)
}

// ParseTimeSignature parses "<digits>/<digits>"
func ParseTimeSignature(literal string) (TimeSignature, error) {
	s := newScanner(strings.TrimSpace(literal))
	num := s.digits()
	if _, ok := s.accept("/"); !ok || num == "" {
		return TimeSignature{}, diag.Malformed(literal, timeSignatureShape)
	}
	den := s.digits()
	if den == "" || !s.eof() {
		return TimeSignature{}, diag.Malformed(literal, timeSignatureShape)
	}

	n, _ := strconv.Atoi(num)
	d, _ := strconv.Atoi(den)
	if n == 0 || d == 0 {
		return TimeSignature{}, diag.Malformed(literal, timeSignatureShape)
	}
	return TimeSignature{Numerator: n, Denominator: d}, nil
}
