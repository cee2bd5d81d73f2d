package notation

import (
	"strconv"
	"strings"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
)

const (
	degreeShape   = "scale degree like 1, b3, 5+, 7-:8 or #4:q."
	timeExprShape = "time expression like q+8, 1.5 or h+2"
)

// Degree is one parsed scale-degree token
type Degree struct {
	Literal     string
	Degree      int // 1-based
	Accidental  int // semitones, -1 flat, +1 sharp
	OctaveShift int
	Duration    string // empty when no duration is embedded
	Dotted      bool
	Beats       float64
}

// HasDuration reports whether the token carried its own duration
func (d Degree) HasDuration() bool {
	return d.Duration != ""
}

// ParseDegree parses "<b|#>?<digits><b|#>?<+*|-*>[:<duration><.>?]"
func ParseDegree(literal string) (Degree, error) {
	s := newScanner(strings.TrimSpace(literal))
	d := Degree{Literal: literal}

	if acc, ok := s.accept("b#"); ok {
		d.Accidental = accidentalValue(acc)
	}
	digits := s.digits()
	if digits == "" {
		return Degree{}, diag.Malformed(literal, degreeShape)
	}
	d.Degree, _ = strconv.Atoi(digits)
	if d.Degree == 0 {
		return Degree{}, diag.Malformed(literal, degreeShape)
	}
	if acc, ok := s.accept("b#"); ok {
		if d.Accidental != 0 {
			return Degree{}, diag.Malformed(literal, degreeShape)
		}
		d.Accidental = accidentalValue(acc)
	}

	for {
		if _, ok := s.accept("+"); ok {
			d.OctaveShift++
			continue
		}
		if _, ok := s.accept("-"); ok {
			d.OctaveShift--
			continue
		}
		break
	}

	if _, ok := s.accept(":"); ok {
		code, dotted, ok := scanDuration(s)
		if !ok {
			return Degree{}, diag.Malformed(literal, degreeShape)
		}
		d.Duration, d.Dotted = code, dotted
		d.Beats, _ = ParseDuration(code, dotted)
	}

	if !s.eof() {
		return Degree{}, diag.Malformed(literal, degreeShape)
	}
	return d, nil
}

// ParseTimeExpression sums "+"-joined terms. A term spelled like a canonical
// duration code (w, h, q, 8, 16, 32, optionally dotted) counts as that
// duration; any other number is beats, so "q+8" is 1.5 and "h+3" is 5.
func ParseTimeExpression(expr string) (float64, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return 0, diag.Malformed(expr, timeExprShape)
	}

	total := 0.0
	for _, term := range strings.Split(trimmed, "+") {
		term = strings.TrimSpace(term)
		beats, err := parseTimeTerm(term)
		if err != nil {
			return 0, diag.Malformed(expr, timeExprShape)
		}
		total += beats
	}
	return total, nil
}

func parseTimeTerm(term string) (float64, error) {
	if term == "" {
		return 0, diag.Malformed(term, timeExprShape)
	}
	switch strings.ToLower(strings.TrimSuffix(term, ".")) {
	case "w", "h", "q", "8", "16", "32":
		return ParseDurationLiteral(strings.ToLower(term))
	}
	s := newScanner(term)
	text := s.decimal()
	if text == "" || !s.eof() {
		return 0, diag.Malformed(term, timeExprShape)
	}
	return strconv.ParseFloat(text, 64)
}

func accidentalValue(c byte) int {
	if c == 'b' {
		return -1
	}
	return 1
}
