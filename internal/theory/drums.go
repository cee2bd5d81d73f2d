package theory

import "strings"

// General MIDI percussion key numbers for canonical drum names
var drumMidi = map[string]int{
	"kick":        36,
	"kick2":       35,
	"snare":       38,
	"snare2":      40,
	"snare_rim":   37,
	"rim":         37,
	"sidestick":   37,
	"clap":        39,
	"hat":         42,
	"hat_closed":  42,
	"hihat":       42,
	"hat_pedal":   44,
	"hat_open":    46,
	"tom_floor":   41,
	"tom_low":     45,
	"tom_mid":     47,
	"tom_high":    50,
	"crash":       49,
	"crash2":      57,
	"ride":        51,
	"ride_bell":   53,
	"china":       52,
	"splash":      55,
	"tambourine":  54,
	"cowbell":     56,
	"shaker":      70,
	"clave":       75,
	"woodblock":   76,
	"conga_high":  62,
	"conga_low":   64,
	"bongo_high":  60,
	"bongo_low":   61,
	"triangle":    81,
	"cabasa":      69,
	"guiro":       73,
	"agogo_high":  67,
	"agogo_low":   68,
	"timbale_hi":  65,
	"timbale_low": 66,
}

// DrumMidi returns the General MIDI key for a drum name
func DrumMidi(name string) (int, bool) {
	n, ok := drumMidi[strings.ToLower(strings.TrimSpace(name))]
	return n, ok
}
