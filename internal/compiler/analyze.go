package compiler

import (
	"sort"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
)

// Summary describes a score's shape without expanding any pattern
type Summary struct {
	Name             string   `json:"name,omitempty"`
	Sections         int      `json:"sections"`
	Bars             int      `json:"bars"`
	Beats            float64  `json:"beats"`
	EstimatedSeconds float64  `json:"estimatedSeconds"`
	Tempo            float64  `json:"tempo"`
	Key              string   `json:"key"`
	TimeSignature    string   `json:"timeSignature"`
	Instruments      []string `json:"instruments"`
	Patterns         []string `json:"patterns"`
	MissingSections  []string `json:"missingSections,omitempty"`
}

// Analyze walks the arrangement and sums section lengths, estimating the
// duration from each section's tempo
func Analyze(score models.Score) (Summary, error) {
	cfg, err := resolveSettings(score.Settings, Options{})
	if err != nil {
		return Summary{}, err
	}
	beatsPerBar := cfg.meter.BeatsPerBar()

	sum := Summary{
		Name:          score.Name,
		Tempo:         cfg.raw.Tempo,
		Key:           cfg.key.String(),
		TimeSignature: cfg.meter.String(),
		Instruments:   []string{},
	}
	instruments := make(map[string]bool)
	patterns := make(map[string]bool)

	for _, name := range score.Arrangement {
		sec, ok := score.Sections[name]
		if !ok {
			sum.MissingSections = append(sum.MissingSections, name)
			continue
		}
		tempo := cfg.raw.Tempo
		if sec.Tempo > 0 {
			tempo = sec.Tempo
		}
		beats := float64(sec.Bars) * beatsPerBar

		sum.Sections++
		sum.Bars += sec.Bars
		sum.Beats += beats
		sum.EstimatedSeconds += beats * 60 / tempo

		for _, nt := range sec.Tracks {
			if nt.Track.Mute {
				continue
			}
			if !instruments[nt.Instrument] {
				instruments[nt.Instrument] = true
				sum.Instruments = append(sum.Instruments, nt.Instrument)
			}
			for _, ref := range nt.Track.References() {
				patterns[ref] = true
			}
		}
	}
	sum.Patterns = sortedNames(patterns)
	sort.Strings(sum.Instruments)
	return sum, nil
}
