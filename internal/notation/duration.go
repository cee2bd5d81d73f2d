package notation

import (
	"math"
	"strings"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
)

// DottedMultiplier lengthens a dotted duration
const DottedMultiplier = 1.5

const durationShape = "duration code w|h|q|8|16|32|2|4 with optional dot"

var durationBeats = map[string]float64{
	"w":  4,
	"h":  2,
	"q":  1,
	"8":  0.5,
	"16": 0.25,
	"32": 0.125,
	"2":  2,
	"4":  1,
}

// canonical codes from longest to shortest
var canonicalCodes = []string{"w", "h", "q", "8", "16", "32"}

const beatEpsilon = 1e-9

// ParseDuration returns the beat length of a duration code
func ParseDuration(code string, dotted bool) (float64, error) {
	beats, ok := durationBeats[strings.ToLower(code)]
	if !ok {
		return 0, diag.Malformed(code, durationShape)
	}
	if dotted {
		beats *= DottedMultiplier
	}
	return beats, nil
}

// ParseDurationLiteral parses a code with an optional trailing dot, e.g. "q."
func ParseDurationLiteral(literal string) (float64, error) {
	code, dotted := strings.CutSuffix(literal, ".")
	beats, err := ParseDuration(code, dotted)
	if err != nil {
		return 0, diag.Malformed(literal, durationShape)
	}
	return beats, nil
}

// BeatsToDuration re-derives the nearest representable duration code.
// An exact code wins, then an exact dotted code, then the largest code not
// longer than beats. Anything shorter than a thirty-second floors to "32".
func BeatsToDuration(beats float64) string {
	for _, code := range canonicalCodes {
		if nearlyEqual(durationBeats[code], beats) {
			return code
		}
	}
	for _, code := range canonicalCodes {
		if nearlyEqual(durationBeats[code]*DottedMultiplier, beats) {
			return code + "."
		}
	}
	for _, code := range canonicalCodes {
		if durationBeats[code] <= beats+beatEpsilon {
			return code
		}
	}
	return canonicalCodes[len(canonicalCodes)-1]
}

// scanDuration reads "<code><dot?>" at the cursor
func scanDuration(s *scanner) (code string, dotted bool, ok bool) {
	if c, hit := s.accept("whqWHQ"); hit {
		code = strings.ToLower(string(c))
	} else {
		code = s.digits()
	}
	if _, known := durationBeats[code]; !known {
		return "", false, false
	}
	_, dotted = s.accept(".")
	return code, dotted, true
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < beatEpsilon
}
