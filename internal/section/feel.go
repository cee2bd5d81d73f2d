package section

import (
	"math"
	"math/rand"
	"time"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/theory"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/util"
)

// Humanization limits at humanize = 1
const (
	MaxTimingVarianceBeats = 0.02
	MaxVelocityVariance    = 0.15
	MaxDurationVariance    = 0.1
)

const (
	swingDivision    = 0.5 // eighth notes
	minDurationBeats = 1.0 / 64
	epsilon          = 1e-9
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// applySwing delays every off-beat eighth by division/3 scaled by amount
func applySwing(events []models.NoteEvent, amount float64) {
	if amount <= 0 {
		return
	}
	delay := swingDivision / 3 * util.Clamp(amount, 0, 1)
	for i := range events {
		frac := events[i].StartBeat - math.Floor(events[i].StartBeat)
		if math.Abs(frac-swingDivision) < epsilon {
			events[i].StartBeat += delay
		}
	}
}

// applyGroove shifts and scales each event by the template slot of its sixteenth
func applyGroove(events []models.NoteEvent, g theory.GrooveTemplate) {
	for i := range events {
		step := g.Step(events[i].StartBeat)
		events[i].StartBeat = math.Max(0, events[i].StartBeat+g.Timing[step])
		events[i].Velocity = util.Clamp(events[i].Velocity*g.Velocity[step], 0, 1)
	}
}

// applyHumanize perturbs timing, velocity and length independently per note
func applyHumanize(events []models.NoteEvent, amount float64, rng *rand.Rand) {
	jitter := func(limit float64) float64 {
		return (rng.Float64()*2 - 1) * limit * amount
	}
	for i := range events {
		ev := &events[i]
		ev.StartBeat = math.Max(0, ev.StartBeat+jitter(MaxTimingVarianceBeats))
		ev.Velocity = util.Clamp(ev.Velocity+jitter(MaxVelocityVariance), 0, 1)
		ev.DurationBeats = math.Max(minDurationBeats, ev.DurationBeats*(1+jitter(MaxDurationVariance)))
		ev.Humanize = amount
	}
}

// fill tiles events of the given length end to end until target beats are
// covered. Events starting at or past target are dropped, events crossing it
// are clipped.
func fill(events []models.NoteEvent, length, target float64) []models.NoteEvent {
	if target <= 0 {
		return nil
	}
	copies := 1
	if length > epsilon && length < target {
		copies = int(math.Ceil(target/length - epsilon))
	}

	out := make([]models.NoteEvent, 0, len(events)*copies)
	for c := 0; c < copies; c++ {
		shift := float64(c) * length
		for _, ev := range events {
			ev.StartBeat += shift
			if ev.StartBeat >= target-epsilon {
				continue
			}
			if ev.EndBeat() > target {
				ev.DurationBeats = target - ev.StartBeat
			}
			out = append(out, ev)
		}
	}
	return out
}
