package pattern

import (
	"math/rand"
	"time"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/theory"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/transform"
)

// Expansion defaults
const (
	DefaultVelocity     = 0.8
	DefaultDegreeOctave = 4
	DefaultRhythm       = "q"
	DefaultArpDuration  = "16"
	DefaultArpGate      = 0.8
	DefaultStepDuration = "16"
	DefaultHitDuration  = "16"
	DefaultEuclidPitch  = "C4"
	DefaultDrumTarget   = "drum"
)

// Context carries everything an expansion needs besides the pattern itself
type Context struct {
	Key         theory.Key
	Tempo       float64
	Velocity    *float64 // base velocity, DefaultVelocity when nil
	Octave      int      // octave offset for pitched events
	Transpose   int      // semitone offset for pitched events
	BeatsPerBar float64
	Patterns    map[string]models.Pattern
	Diag        *diag.Diagnostics
	Rand        *rand.Rand

	resolver *transform.Resolver
}

// Result is the flat, beat-relative output of one expansion
type Result struct {
	Events     []models.NoteEvent
	TotalBeats float64
}

func (c *Context) baseVelocity() float64 {
	if c.Velocity == nil {
		return DefaultVelocity
	}
	return *c.Velocity
}

func (c *Context) pitchOffset() int {
	return c.Octave*12 + c.Transpose
}

func (c *Context) random() *rand.Rand {
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c.Rand
}

func (c *Context) transforms() *transform.Resolver {
	if c.resolver == nil {
		c.resolver = transform.NewResolver(c.Patterns, c.Diag)
	}
	return c.resolver
}

// DefaultKey is C major
func DefaultKey() theory.Key {
	return theory.Key{Root: "C", Tonic: 0, Scale: "major"}
}
