package pattern

import (
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/notation"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/theory"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/util"
)

// articulation shaping: gate scales the sounded length, boost adds velocity
type shaping struct {
	gate  float64
	boost float64
}

var articulations = map[notation.Articulation]shaping{
	notation.Normal:   {gate: 1.0, boost: 0},
	notation.Staccato: {gate: 0.5, boost: 0},
	notation.Legato:   {gate: 1.0, boost: 0},
	notation.Accent:   {gate: 1.0, boost: 0.2},
	notation.Marcato:  {gate: 0.8, boost: 0.3},
}

func shape(a notation.Articulation) shaping {
	if s, ok := articulations[a]; ok {
		return s
	}
	return articulations[notation.Normal]
}

// pitched builds a pitched event, applying the context's octave and transpose
func (c *Context) pitched(midi int, spelled string, start, beats, velocity float64) models.NoteEvent {
	pitch := spelled
	if off := c.pitchOffset(); off != 0 || pitch == "" {
		midi += off
		pitch = theory.MidiToPitch(midi)
	}
	return models.NoteEvent{
		Pitch:         pitch,
		Midi:          midi,
		StartBeat:     start,
		DurationBeats: beats,
		Velocity:      util.Clamp(velocity, 0, 1),
	}
}

func expandNotes(literals []string, ctx *Context) (Result, error) {
	var res Result
	cursor := 0.0
	for _, lit := range literals {
		if notation.IsRest(lit) {
			r, err := notation.ParseRest(lit)
			if err != nil {
				return Result{}, err
			}
			cursor += r.Beats
			continue
		}

		n, err := notation.ParseNote(lit)
		if err != nil {
			return Result{}, err
		}
		s := shape(n.Articulation)
		velocity := ctx.baseVelocity()
		if n.Velocity != nil {
			velocity = *n.Velocity
		}

		ev := ctx.pitched(n.Midi, n.Pitch, cursor, n.Beats*s.gate, velocity+s.boost)
		ev.TimingOffsetMs = n.TimingOffset
		ev.Probability = n.Probability
		ev.Portamento = n.Portamento
		res.Events = append(res.Events, ev)
		cursor += n.Beats
	}
	res.TotalBeats = cursor
	return res, nil
}

func expandChords(literals []string, ctx *Context) (Result, error) {
	var res Result
	cursor := 0.0
	for _, lit := range literals {
		if notation.IsRest(lit) {
			r, err := notation.ParseRest(lit)
			if err != nil {
				return Result{}, err
			}
			cursor += r.Beats
			continue
		}

		c, err := notation.ParseChord(lit)
		if err != nil {
			return Result{}, err
		}
		s := shape(c.Articulation)
		for _, midi := range c.Pitches {
			ev := ctx.pitched(midi, "", cursor, c.Beats*s.gate, ctx.baseVelocity()+s.boost)
			ev.Chord = c.Symbol
			res.Events = append(res.Events, ev)
		}
		cursor += c.Beats
	}
	res.TotalBeats = cursor
	return res, nil
}

func expandDegrees(p models.Pattern, ctx *Context) (Result, error) {
	rhythm := p.Rhythm
	if len(rhythm) == 0 {
		rhythm = []string{DefaultRhythm}
	}
	octave := DefaultDegreeOctave
	if p.Octave != nil {
		octave = *p.Octave
	}

	var res Result
	cursor := 0.0
	step := 0
	nextRhythm := func() (float64, error) {
		beats, err := notation.ParseDurationLiteral(rhythm[step%len(rhythm)])
		step++
		return beats, err
	}

	for _, tok := range p.Degrees {
		lit := string(tok)
		if notation.IsRest(lit) {
			r, err := notation.ParseRest(lit)
			if err != nil {
				return Result{}, err
			}
			cursor += r.Beats
			continue
		}

		d, err := notation.ParseDegree(lit)
		if err != nil {
			return Result{}, err
		}
		midi, err := theory.ScaleDegreeToNote(d.Degree, ctx.Key, octave)
		if err != nil {
			return Result{}, err
		}
		midi += d.Accidental + 12*d.OctaveShift

		beats := d.Beats
		if !d.HasDuration() {
			if beats, err = nextRhythm(); err != nil {
				return Result{}, err
			}
		}

		res.Events = append(res.Events, ctx.pitched(midi, "", cursor, beats, ctx.baseVelocity()))
		cursor += beats
	}
	res.TotalBeats = cursor
	return res, nil
}
