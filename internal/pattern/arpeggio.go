package pattern

import (
	"strings"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/notation"
)

// Arpeggio traversal modes
const (
	ArpUp     = "up"
	ArpDown   = "down"
	ArpUpDown = "updown"
	ArpDownUp = "downup"
	ArpRandom = "random"
)

var arpModes = []string{ArpUp, ArpDown, ArpUpDown, ArpDownUp, ArpRandom}

func expandArpeggio(a models.Arpeggio, ctx *Context) (Result, error) {
	chord, err := arpeggioChord(a.Chord)
	if err != nil {
		return Result{}, err
	}

	octaves := a.Octaves
	if octaves < 1 {
		octaves = 1
	}
	stacked := make([]int, 0, len(chord.Pitches)*octaves)
	for o := 0; o < octaves; o++ {
		for _, midi := range chord.Pitches {
			stacked = append(stacked, midi+12*o)
		}
	}

	mode := strings.ToLower(a.Mode)
	if mode == "" {
		mode = ArpUp
	}
	order, err := arpeggioOrder(len(stacked), mode, a.Steps, ctx)
	if err != nil {
		return Result{}, err
	}

	durCode := a.Duration
	if durCode == "" {
		durCode = DefaultArpDuration
	}
	stepBeats, err := notation.ParseDurationLiteral(durCode)
	if err != nil {
		return Result{}, err
	}
	gate := a.Gate
	if gate <= 0 {
		gate = DefaultArpGate
	}

	var res Result
	for i, idx := range order {
		ev := ctx.pitched(stacked[idx], "", float64(i)*stepBeats, stepBeats*gate, ctx.baseVelocity())
		res.Events = append(res.Events, ev)
	}
	res.TotalBeats = float64(len(order)) * stepBeats
	return res, nil
}

// arpeggioChord accepts a bare symbol ("Cm7") or a chord literal ("Cm7:q")
func arpeggioChord(symbol string) (notation.Chord, error) {
	if strings.Contains(symbol, ":") {
		return notation.ParseChord(symbol)
	}
	return notation.ParseChord(symbol + ":q")
}

// arpeggioOrder builds the index sequence over n stacked pitches. A positive
// steps truncates or cycles the sequence to that length.
func arpeggioOrder(n int, mode string, steps int, ctx *Context) ([]int, error) {
	if n == 0 {
		return nil, nil
	}

	up := make([]int, n)
	for i := range up {
		up[i] = i
	}
	down := reverse(up)

	var cycle []int
	switch mode {
	case ArpUp:
		cycle = up
	case ArpDown:
		cycle = down
	case ArpUpDown:
		cycle = append(append([]int{}, up...), inner(down)...)
	case ArpDownUp:
		cycle = append(append([]int{}, down...), inner(up)...)
	case ArpRandom:
		count := n
		if steps > 0 {
			count = steps
		}
		rng := ctx.random()
		order := make([]int, count)
		for i := range order {
			order[i] = rng.Intn(n)
		}
		return order, nil
	default:
		return nil, diag.Unknown("arpeggio mode", mode, arpModes)
	}

	if steps <= 0 {
		return cycle, nil
	}
	order := make([]int, steps)
	for i := range order {
		order[i] = cycle[i%len(cycle)]
	}
	return order, nil
}

// inner drops the first and last entries so a bounce does not repeat its turning points
func inner(s []int) []int {
	if len(s) <= 2 {
		return nil
	}
	return s[1 : len(s)-1]
}

func reverse(s []int) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
