package pattern

import (
	"math"
	"sort"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/euclid"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/notation"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/theory"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/util"
)

const (
	accentBoost     = 0.2
	ghostMultiplier = 0.5
	drumStepsShape  = "drum steps using x (hit), X or > (accent), o (ghost), . or - (rest), | and spaces ignored"
)

func drumEvent(drum string, start, beats, velocity float64) models.NoteEvent {
	midi, _ := theory.DrumMidi(drum)
	return models.NoteEvent{
		Drum:          drum,
		Midi:          midi,
		StartBeat:     start,
		DurationBeats: beats,
		Velocity:      util.Clamp(velocity, 0, 1),
	}
}

func expandDrums(d models.Drums, ctx *Context) (Result, error) {
	stepCode := d.StepDuration
	if stepCode == "" {
		stepCode = DefaultStepDuration
	}
	stepBeats, err := notation.ParseDurationLiteral(stepCode)
	if err != nil {
		return Result{}, err
	}
	target := d.Drum
	if target == "" {
		target = DefaultDrumTarget
	}
	base := ctx.baseVelocity()

	var res Result
	step := 0
	for _, c := range d.Steps {
		var velocity float64
		switch c {
		case 'x':
			velocity = base
		case 'X', '>':
			velocity = base + accentBoost
		case 'o':
			velocity = base * ghostMultiplier
		case '.', '-':
			step++
			continue
		case ' ', '|':
			continue
		default:
			return Result{}, diag.Malformed(d.Steps, drumStepsShape)
		}
		res.Events = append(res.Events, drumEvent(target, float64(step)*stepBeats, stepBeats, velocity))
		step++
	}
	stepLength := float64(step) * stepBeats

	hitExtent := 0.0
	for _, h := range d.Hits {
		at, err := notation.ParseTimeExpression(string(h.Time))
		if err != nil {
			return Result{}, err
		}
		durCode := h.Duration
		if durCode == "" {
			durCode = DefaultHitDuration
		}
		beats, err := notation.ParseDurationLiteral(durCode)
		if err != nil {
			return Result{}, err
		}
		drum := h.Drum
		if drum == "" {
			drum = target
		}
		velocity := base
		if h.Velocity != nil {
			velocity = *h.Velocity
		}
		res.Events = append(res.Events, drumEvent(drum, at, beats, velocity))
		hitExtent = util.Max(hitExtent, at+beats)
	}

	sort.SliceStable(res.Events, func(i, j int) bool {
		return res.Events[i].StartBeat < res.Events[j].StartBeat
	})

	res.TotalBeats = util.Max(stepLength, util.Max(d.Length, math.Ceil(hitExtent-beatEpsilon)))
	return res, nil
}

func expandEuclidean(e models.Euclidean, ctx *Context) (Result, error) {
	durCode := e.Duration
	if durCode == "" {
		durCode = DefaultStepDuration
	}
	stepBeats, err := notation.ParseDurationLiteral(durCode)
	if err != nil {
		return Result{}, err
	}

	velocity := ctx.baseVelocity()
	if e.Velocity != nil {
		velocity = *e.Velocity
	}

	pitchMidi, pitchName := 0, ""
	if e.Drum == "" {
		pitchName = e.Pitch
		if pitchName == "" {
			pitchName = DefaultEuclidPitch
		}
		if pitchMidi, err = theory.PitchToMidi(pitchName); err != nil {
			return Result{}, err
		}
	}

	var res Result
	rhythm := euclid.Rotate(euclid.Generate(e.Hits, e.Steps), e.Rotation)
	for _, i := range euclid.Steps(rhythm) {
		start := float64(i) * stepBeats
		if e.Drum != "" {
			res.Events = append(res.Events, drumEvent(e.Drum, start, stepBeats, velocity))
			continue
		}
		res.Events = append(res.Events, ctx.pitched(pitchMidi, pitchName, start, stepBeats, velocity))
	}
	res.TotalBeats = float64(len(rhythm)) * stepBeats
	return res, nil
}

const beatEpsilon = 1e-9
