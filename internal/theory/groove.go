package theory

import (
	"math"
	"sort"
)

// GrooveSteps is the number of sixteenth-note slots in one groove cycle (one 4/4 bar)
const GrooveSteps = 16

// GrooveTemplate defines per-sixteenth timing and accent patterns
type GrooveTemplate struct {
	Name string
	// Timing offsets in beats, one per sixteenth
	Timing [GrooveSteps]float64
	// Velocity multipliers (1.0 = unchanged), one per sixteenth
	Velocity [GrooveSteps]float64
}

// Groove template constants
const (
	mpcSwing      = 0.04
	pushAhead     = -0.02
	layBack       = 0.025
	shuffleDelay  = 1.0 / 6.0 // straight 8th moved to the last triplet 8th
	ghostAccent   = 0.6
	weakAccent    = 0.75
	mediumAccent  = 0.85
	strongAccent  = 0.95
	neutralAccent = 1.0
)

func flat(v float64) [GrooveSteps]float64 {
	var out [GrooveSteps]float64
	for i := range out {
		out[i] = v
	}
	return out
}

// Predefined groove templates
var grooveTemplates = map[string]GrooveTemplate{
	"straight": {
		Name:     "straight",
		Velocity: flat(neutralAccent),
	},
	"mpc": {
		Name: "mpc",
		Timing: [GrooveSteps]float64{
			0, mpcSwing, 0, mpcSwing, 0, mpcSwing, 0, mpcSwing,
			0, mpcSwing, 0, mpcSwing, 0, mpcSwing, 0, mpcSwing,
		},
		Velocity: [GrooveSteps]float64{
			1.0, ghostAccent, 0.8, ghostAccent, 0.9, ghostAccent, 0.8, ghostAccent,
			strongAccent, ghostAccent, 0.8, ghostAccent, 0.9, ghostAccent, 0.8, ghostAccent,
		},
	},
	"push": {
		Name: "push",
		Timing: [GrooveSteps]float64{
			0, pushAhead, pushAhead, pushAhead, 0, pushAhead, pushAhead, pushAhead,
			0, pushAhead, pushAhead, pushAhead, 0, pushAhead, pushAhead, pushAhead,
		},
		Velocity: flat(neutralAccent),
	},
	"laid_back": {
		Name: "laid_back",
		Timing: [GrooveSteps]float64{
			0, layBack, layBack, layBack, layBack, layBack, layBack, layBack,
			layBack, layBack, layBack, layBack, layBack, layBack, layBack, layBack,
		},
		Velocity: [GrooveSteps]float64{
			1.0, weakAccent, mediumAccent, weakAccent, 0.9, weakAccent, mediumAccent, weakAccent,
			strongAccent, weakAccent, mediumAccent, weakAccent, 0.9, weakAccent, mediumAccent, weakAccent,
		},
	},
	"shuffle": {
		Name: "shuffle",
		Timing: [GrooveSteps]float64{
			0, 0, shuffleDelay, 0, 0, 0, shuffleDelay, 0,
			0, 0, shuffleDelay, 0, 0, 0, shuffleDelay, 0,
		},
		Velocity: [GrooveSteps]float64{
			1.0, 1.0, 0.8, 1.0, 0.9, 1.0, 0.8, 1.0,
			1.0, 1.0, 0.8, 1.0, 0.9, 1.0, 0.8, 1.0,
		},
	},
	// 3+3+2 clave feel: accents on steps 0, 6 and 12
	"bossa": {
		Name: "bossa",
		Velocity: [GrooveSteps]float64{
			1.0, weakAccent, weakAccent, weakAccent, weakAccent, weakAccent, strongAccent, weakAccent,
			mediumAccent, weakAccent, weakAccent, weakAccent, strongAccent, weakAccent, weakAccent, weakAccent,
		},
	},
	"samba": {
		Name: "samba",
		Timing: [GrooveSteps]float64{
			0, 0, 0, 0.01, 0, 0, 0, 0.01,
			0, 0, 0, 0.01, 0, 0, 0, 0.01,
		},
		Velocity: [GrooveSteps]float64{
			1.0, ghostAccent, 0.7, 0.9, 0.85, ghostAccent, 0.7, 0.9,
			strongAccent, ghostAccent, 0.7, 0.9, 0.85, ghostAccent, 0.7, 0.9,
		},
	},
}

// GetGrooveTemplate returns a groove template by name
func GetGrooveTemplate(name string) (GrooveTemplate, bool) {
	tmpl, ok := grooveTemplates[NormalizeScaleName(name)]
	return tmpl, ok
}

// GrooveNames lists the known groove templates in sorted order
func GrooveNames() []string {
	names := make([]string, 0, len(grooveTemplates))
	for name := range grooveTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Step returns the sixteenth slot a beat position falls in
func (g GrooveTemplate) Step(beat float64) int {
	return mod(int(math.Floor(beat*4+1e-9)), GrooveSteps)
}
