package models

// PatternKind names the generative shape a pattern uses
type PatternKind string

const (
	KindEmpty     PatternKind = "empty"
	KindNotes     PatternKind = "notes"
	KindChords    PatternKind = "chords"
	KindDegrees   PatternKind = "degrees"
	KindArpeggio  PatternKind = "arpeggio"
	KindDrums     PatternKind = "drums"
	KindEuclidean PatternKind = "euclidean"
	KindTransform PatternKind = "transform"
	KindRest      PatternKind = "rest"
)

// Pattern is a reusable musical fragment. Exactly one shape is used per
// pattern; see Kind. Rest is a trailing literal rest appended after the shape.
type Pattern struct {
	Notes     []string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Chords    []string   `json:"chords,omitempty" yaml:"chords,omitempty"`
	Degrees   []Token    `json:"degrees,omitempty" yaml:"degrees,omitempty"`
	Rhythm    []string   `json:"rhythm,omitempty" yaml:"rhythm,omitempty"` // durations for degrees without their own
	Octave    *int       `json:"octave,omitempty" yaml:"octave,omitempty"` // base octave for degrees, default 4
	Arpeggio  *Arpeggio  `json:"arpeggio,omitempty" yaml:"arpeggio,omitempty"`
	Drums     *Drums     `json:"drums,omitempty" yaml:"drums,omitempty"`
	Euclidean *Euclidean `json:"euclidean,omitempty" yaml:"euclidean,omitempty"`
	Transform *Transform `json:"transform,omitempty" yaml:"transform,omitempty"`
	Rest      string     `json:"rest,omitempty" yaml:"rest,omitempty"`

	VelocityEnvelope *VelocityEnvelope `json:"velocityEnvelope,omitempty" yaml:"velocityEnvelope,omitempty"`
	ConstrainToScale bool              `json:"constrainToScale,omitempty" yaml:"constrainToScale,omitempty"`
}

// Kind classifies the pattern. When several shapes are set the first in the
// order notes, chords, degrees, arpeggio, drums, euclidean, transform wins.
func (p Pattern) Kind() PatternKind {
	switch {
	case len(p.Notes) > 0:
		return KindNotes
	case len(p.Chords) > 0:
		return KindChords
	case len(p.Degrees) > 0:
		return KindDegrees
	case p.Arpeggio != nil:
		return KindArpeggio
	case p.Drums != nil:
		return KindDrums
	case p.Euclidean != nil:
		return KindEuclidean
	case p.Transform != nil:
		return KindTransform
	case p.Rest != "":
		return KindRest
	}
	return KindEmpty
}

// Arpeggio steps through the tones of one chord
type Arpeggio struct {
	Chord    string  `json:"chord" yaml:"chord"`                           // chord symbol, e.g. "Cm7"
	Mode     string  `json:"mode,omitempty" yaml:"mode,omitempty"`         // up, down, updown, downup, random
	Octaves  int     `json:"octaves,omitempty" yaml:"octaves,omitempty"`   // default 1
	Gate     float64 `json:"gate,omitempty" yaml:"gate,omitempty"`         // default 0.8
	Steps    int     `json:"steps,omitempty" yaml:"steps,omitempty"`       // truncate or cycle to this many notes
	Duration string  `json:"duration,omitempty" yaml:"duration,omitempty"` // per step, default "16"
}

// Drums is a step string on one drum and/or a list of timed hits
type Drums struct {
	Steps        string    `json:"steps,omitempty" yaml:"steps,omitempty"`
	Drum         string    `json:"drum,omitempty" yaml:"drum,omitempty"`
	StepDuration string    `json:"stepDuration,omitempty" yaml:"stepDuration,omitempty"`
	Hits         []DrumHit `json:"hits,omitempty" yaml:"hits,omitempty"`
	Length       float64   `json:"length,omitempty" yaml:"length,omitempty"` // beats
}

// DrumHit is one explicitly timed hit. Time is a time expression like "q+8".
type DrumHit struct {
	Drum     string   `json:"drum" yaml:"drum"`
	Time     Token    `json:"time" yaml:"time"`
	Velocity *float64 `json:"velocity,omitempty" yaml:"velocity,omitempty"`
	Duration string   `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Euclidean spreads hits evenly over steps
type Euclidean struct {
	Hits     int      `json:"hits" yaml:"hits"`
	Steps    int      `json:"steps" yaml:"steps"`
	Rotation int      `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Pitch    string   `json:"pitch,omitempty" yaml:"pitch,omitempty"`
	Drum     string   `json:"drum,omitempty" yaml:"drum,omitempty"`
	Duration string   `json:"duration,omitempty" yaml:"duration,omitempty"` // per step, default "16"
	Velocity *float64 `json:"velocity,omitempty" yaml:"velocity,omitempty"`
}

// Transform operations
const (
	OpInvert     = "invert"
	OpRetrograde = "retrograde"
	OpAugment    = "augment"
	OpDiminish   = "diminish"
	OpTranspose  = "transpose"
	OpOctave     = "octave"
)

// Transform derives a pattern from another pattern's notes
type Transform struct {
	Source    string  `json:"source" yaml:"source"`
	Operation string  `json:"operation" yaml:"operation"`
	Axis      string  `json:"axis,omitempty" yaml:"axis,omitempty"`           // invert
	Factor    float64 `json:"factor,omitempty" yaml:"factor,omitempty"`       // augment, diminish
	Semitones int     `json:"semitones,omitempty" yaml:"semitones,omitempty"` // transpose
	Octaves   int     `json:"octaves,omitempty" yaml:"octaves,omitempty"`     // octave
}
