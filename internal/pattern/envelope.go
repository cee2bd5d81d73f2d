package pattern

import (
	"math"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/theory"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/util"
)

const (
	envelopeLow       = 0.4
	envelopeHigh      = 1.0
	downbeatBoost     = 0.2
	accentFirstTarget = 1.0

	defaultBeatsPerBar = 4.0
)

var envelopePresets = []string{
	models.EnvelopeCrescendo,
	models.EnvelopeDiminuendo,
	models.EnvelopeSwell,
	models.EnvelopeAccentFirst,
	models.EnvelopeAccentDownbeats,
}

// applyEnvelope overwrites event velocities in place. Curves are evaluated at
// each event's onset, normalized over the span from the first to the last
// onset, so chord tones share one value. Downbeats are the first beat of each
// bar, measured from the pattern start.
func applyEnvelope(events []models.NoteEvent, env models.VelocityEnvelope, beatsPerBar float64, d *diag.Diagnostics) {
	if len(events) == 0 {
		return
	}

	first, last := events[0].StartBeat, events[0].StartBeat
	for _, ev := range events[1:] {
		first = math.Min(first, ev.StartBeat)
		last = math.Max(last, ev.StartBeat)
	}
	position := func(ev models.NoteEvent) float64 {
		if last-first < beatEpsilon {
			return 0
		}
		return (ev.StartBeat - first) / (last - first)
	}

	var curve func(t float64, ev models.NoteEvent) float64
	if env.Preset == "" {
		if len(env.Points) == 0 {
			return
		}
		curve = func(t float64, _ models.NoteEvent) float64 { return interpolate(env.Points, t) }
	} else {
		switch env.Preset {
		case models.EnvelopeCrescendo:
			curve = func(t float64, _ models.NoteEvent) float64 { return util.Lerp(envelopeLow, envelopeHigh, t) }
		case models.EnvelopeDiminuendo:
			curve = func(t float64, _ models.NoteEvent) float64 { return util.Lerp(envelopeHigh, envelopeLow, t) }
		case models.EnvelopeSwell:
			curve = func(t float64, _ models.NoteEvent) float64 {
				return interpolate([]float64{envelopeLow, envelopeHigh, envelopeLow}, t)
			}
		case models.EnvelopeAccentFirst:
			curve = func(_ float64, ev models.NoteEvent) float64 {
				if ev.StartBeat-first < beatEpsilon {
					return accentFirstTarget
				}
				return ev.Velocity
			}
		case models.EnvelopeAccentDownbeats:
			if beatsPerBar <= 0 {
				beatsPerBar = defaultBeatsPerBar
			}
			curve = func(_ float64, ev models.NoteEvent) float64 {
				bars := ev.StartBeat / beatsPerBar
				if math.Abs(bars-math.Round(bars))*beatsPerBar < beatEpsilon {
					return ev.Velocity + downbeatBoost
				}
				return ev.Velocity
			}
		default:
			d.WarnErr(diag.Unknown("velocity envelope", env.Preset, envelopePresets))
			return
		}
	}

	for i := range events {
		events[i].Velocity = util.Clamp(curve(position(events[i]), events[i]), 0, 1)
	}
}

// interpolate reads a piecewise linear curve through evenly spaced points at t in [0,1]
func interpolate(points []float64, t float64) float64 {
	if len(points) == 1 {
		return points[0]
	}
	t = util.Clamp(t, 0, 1)
	x := t * float64(len(points)-1)
	i := int(math.Floor(x))
	if i >= len(points)-1 {
		return points[len(points)-1]
	}
	return util.Lerp(points[i], points[i+1], x-float64(i))
}

// snapToKey moves every pitched event to the nearest in-key pitch class
func snapToKey(events []models.NoteEvent, ctx *Context) {
	for i := range events {
		if events[i].IsDrum() {
			continue
		}
		snapped := theory.SnapToScale(events[i].Midi, ctx.Key)
		if snapped != events[i].Midi {
			events[i].Midi = snapped
			events[i].Pitch = theory.MidiToPitch(snapped)
		}
	}
}
