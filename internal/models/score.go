package models

// Score is a complete composition document
type Score struct {
	Name        string                `json:"name,omitempty" yaml:"name,omitempty"`
	Settings    Settings              `json:"settings" yaml:"settings"`
	Instruments map[string]Instrument `json:"instruments,omitempty" yaml:"instruments,omitempty"`
	Patterns    map[string]Pattern    `json:"patterns" yaml:"patterns"`
	Sections    map[string]Section    `json:"sections" yaml:"sections"`
	Arrangement []string              `json:"arrangement" yaml:"arrangement"`
}

// Settings are the score-wide defaults. Zero values mean "use the compiler default".
type Settings struct {
	Tempo         float64 `json:"tempo,omitempty" yaml:"tempo,omitempty"`
	Key           string  `json:"key,omitempty" yaml:"key,omitempty"`
	TimeSignature string  `json:"timeSignature,omitempty" yaml:"timeSignature,omitempty"`
	Swing         float64 `json:"swing,omitempty" yaml:"swing,omitempty"`
}

// Instrument is an entry in the optional instrument registry. The compiler
// only checks names; the remaining fields are passed through for the
// synthesis back end.
type Instrument struct {
	Type   string   `json:"type,omitempty" yaml:"type,omitempty"`
	Preset string   `json:"preset,omitempty" yaml:"preset,omitempty"`
	Volume *float64 `json:"volume,omitempty" yaml:"volume,omitempty"`
	Pan    *float64 `json:"pan,omitempty" yaml:"pan,omitempty"`
}

// Section is a span of bars with one track per instrument
type Section struct {
	Bars   int       `json:"bars" yaml:"bars"`
	Tracks TrackList `json:"tracks" yaml:"tracks"`
	Tempo  float64   `json:"tempo,omitempty" yaml:"tempo,omitempty"`
	Key    string    `json:"key,omitempty" yaml:"key,omitempty"`
}

// Track plays one or more patterns on an instrument within a section
type Track struct {
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Patterns  []string `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Repeat    int      `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	Octave    int      `json:"octave,omitempty" yaml:"octave,omitempty"`
	Transpose int      `json:"transpose,omitempty" yaml:"transpose,omitempty"`
	Velocity  *float64 `json:"velocity,omitempty" yaml:"velocity,omitempty"`
	Humanize  float64  `json:"humanize,omitempty" yaml:"humanize,omitempty"`
	Mute      bool     `json:"mute,omitempty" yaml:"mute,omitempty"`
	Swing     *float64 `json:"swing,omitempty" yaml:"swing,omitempty"`
	Groove    string   `json:"groove,omitempty" yaml:"groove,omitempty"`
}

// PatternNames lists the patterns the track plays, in order: the explicit
// list if present, otherwise the single pattern repeated Repeat times.
func (t Track) PatternNames() []string {
	if len(t.Patterns) > 0 {
		return t.Patterns
	}
	if t.Pattern == "" {
		return nil
	}
	n := t.Repeat
	if n < 1 {
		n = 1
	}
	names := make([]string, n)
	for i := range names {
		names[i] = t.Pattern
	}
	return names
}

// References lists each distinct pattern name the track refers to
func (t Track) References() []string {
	seen := make(map[string]bool)
	var refs []string
	for _, name := range append([]string{t.Pattern}, t.Patterns...) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		refs = append(refs, name)
	}
	return refs
}
