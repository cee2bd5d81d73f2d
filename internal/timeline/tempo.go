package timeline

import (
	"sort"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
)

type tempoSegment struct {
	beat    float64
	bpm     float64
	seconds float64 // elapsed seconds at beat
}

// tempoPath is a piecewise-constant tempo map
type tempoPath struct {
	segments []tempoSegment
}

// newTempoPath builds the path from the initial tempo and the tempo events
// found in events, which must already be sorted by beat
func newTempoPath(initial float64, events []models.TimelineEvent) tempoPath {
	p := tempoPath{segments: []tempoSegment{{beat: 0, bpm: initial}}}
	for _, e := range events {
		if e.Type != models.EventTempo {
			continue
		}
		last := p.segments[len(p.segments)-1]
		if e.Time <= last.beat {
			// a later change at the same beat wins
			p.segments[len(p.segments)-1].bpm = e.Tempo
			continue
		}
		p.segments = append(p.segments, tempoSegment{
			beat:    e.Time,
			bpm:     e.Tempo,
			seconds: last.seconds + (e.Time-last.beat)*60/last.bpm,
		})
	}
	return p
}

// secondsAt converts an absolute beat position to seconds
func (p tempoPath) secondsAt(beat float64) float64 {
	i := sort.Search(len(p.segments), func(i int) bool { return p.segments[i].beat > beat }) - 1
	if i < 0 {
		i = 0
	}
	s := p.segments[i]
	return s.seconds + (beat-s.beat)*60/s.bpm
}

// span is the wall-clock length of beats starting at start
func (p tempoPath) span(start, beats float64) float64 {
	return p.secondsAt(start+beats) - p.secondsAt(start)
}
