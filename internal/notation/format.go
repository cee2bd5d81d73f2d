package notation

// FormatNote renders a pitch and beat length as a note literal, e.g. "C4:q."
func FormatNote(pitch string, beats float64) string {
	return pitch + ":" + BeatsToDuration(beats)
}

// FormatRest renders a beat length as a rest literal
func FormatRest(beats float64) string {
	return "r:" + BeatsToDuration(beats)
}

// WithPitch rewrites the literal with another pitch, keeping duration and suffix verbatim
func (n Note) WithPitch(pitch string) string {
	return pitch + ":" + n.durationText() + n.Suffix
}

// WithBeats rewrites the literal with a new length, keeping pitch and suffix
func (n Note) WithBeats(beats float64) string {
	return FormatNote(n.Pitch, beats) + n.Suffix
}

func (n Note) durationText() string {
	if n.Dotted {
		return n.Duration + "."
	}
	return n.Duration
}
