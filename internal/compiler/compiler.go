// Package compiler turns a score document into a timeline
package compiler

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/notation"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/section"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/theory"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/timeline"
)

// Score-wide defaults
const (
	DefaultTempo         = timeline.DefaultTempo
	DefaultKey           = "C major"
	DefaultTimeSignature = "4/4"
)

// Options override score settings for one compile
type Options struct {
	Tempo        float64 `json:"tempo,omitempty"`
	Key          string  `json:"key,omitempty"`
	StartSection string  `json:"startSection,omitempty"`
	EndSection   string  `json:"endSection,omitempty"`
	Seed         *int64  `json:"seed,omitempty"`
}

// Stats summarizes a compile
type Stats struct {
	Sections        int      `json:"sections"`
	Bars            int      `json:"bars"`
	Notes           int      `json:"notes"`
	Events          int      `json:"events"`
	Instruments     []string `json:"instruments"`
	Patterns        []string `json:"patterns"`
	DurationSeconds float64  `json:"durationSeconds"`
}

// Result is a compiled timeline plus the non-fatal problems found on the way
type Result struct {
	Timeline models.Timeline `json:"timeline"`
	Warnings []string        `json:"warnings"`
	Stats    Stats           `json:"stats"`
}

// settings is the resolved, parsed form of score settings plus options
type settings struct {
	raw   models.Settings
	key   theory.Key
	meter notation.TimeSignature
}

func resolveSettings(s models.Settings, opts Options) (settings, error) {
	if opts.Tempo > 0 {
		s.Tempo = opts.Tempo
	}
	if opts.Key != "" {
		s.Key = opts.Key
	}
	if s.Tempo <= 0 {
		s.Tempo = DefaultTempo
	}
	if s.Key == "" {
		s.Key = DefaultKey
	}
	if s.TimeSignature == "" {
		s.TimeSignature = DefaultTimeSignature
	}

	key, err := notation.ParseKey(s.Key)
	if err != nil {
		return settings{}, fmt.Errorf("settings key: %w", err)
	}
	meter, err := notation.ParseTimeSignature(s.TimeSignature)
	if err != nil {
		return settings{}, fmt.Errorf("settings time signature: %w", err)
	}
	return settings{raw: s, key: key, meter: meter}, nil
}

// Compile resolves every arranged section into one timeline. Missing
// sections and patterns are warnings; malformed notation fails the compile.
func Compile(score models.Score, opts Options) (Result, error) {
	cfg, err := resolveSettings(score.Settings, opts)
	if err != nil {
		return Result{}, err
	}
	d := diag.New()

	arrangement, err := sliceArrangement(score.Arrangement, opts.StartSection, opts.EndSection)
	if err != nil {
		return Result{}, err
	}

	rng := newRand(opts.Seed)
	builder := timeline.NewBuilder(cfg.raw)
	beatsPerBar := cfg.meter.BeatsPerBar()
	runningTempo := cfg.raw.Tempo
	runningKey := cfg.key.String()

	var stats Stats
	used := make(map[string]bool)
	cursor := 0.0

	for _, name := range arrangement {
		sec, ok := score.Sections[name]
		if !ok {
			d.WarnErr(diag.Missing("section", name))
			continue
		}

		tempo := cfg.raw.Tempo
		if sec.Tempo > 0 {
			tempo = sec.Tempo
		}
		if tempo != runningTempo {
			if err := builder.AddTempoChange(cursor, tempo); err != nil {
				return Result{}, fmt.Errorf("section %q: %w", name, err)
			}
			runningTempo = tempo
		}

		key := cfg.key
		if sec.Key != "" {
			if key, err = notation.ParseKey(sec.Key); err != nil {
				return Result{}, fmt.Errorf("section %q key: %w", name, err)
			}
		}
		if key.String() != runningKey {
			builder.AddKeyChange(cursor, key.String())
			runningKey = key.String()
		}

		tracks, err := section.ResolveSection(sec, section.Context{
			Bars:        sec.Bars,
			BeatsPerBar: beatsPerBar,
			Key:         key,
			Tempo:       tempo,
			Swing:       cfg.raw.Swing,
			Patterns:    score.Patterns,
			Diag:        d,
			Rand:        rng,
		})
		if err != nil {
			return Result{}, fmt.Errorf("section %q: %w", name, err)
		}
		for _, tr := range tracks {
			emit(builder, tr.Instrument, tr.Events, cursor)
		}
		for _, nt := range sec.Tracks {
			for _, ref := range nt.Track.References() {
				used[ref] = true
			}
		}

		cursor += float64(sec.Bars) * beatsPerBar
		builder.ExtendTo(cursor)
		stats.Sections++
		stats.Bars += sec.Bars
	}

	tl := builder.Build()
	stats.Notes = len(tl.Notes())
	stats.Events = len(tl.Events)
	stats.Instruments = tl.Instruments
	stats.DurationSeconds = tl.TotalSeconds
	stats.Patterns = sortedNames(used)

	warnings := d.Warnings()
	if warnings == nil {
		warnings = []string{}
	}
	return Result{Timeline: tl, Warnings: warnings, Stats: stats}, nil
}

// sliceArrangement keeps the entries from the first occurrence of start
// through the first following occurrence of end, both inclusive
func sliceArrangement(arrangement []string, start, end string) ([]string, error) {
	from := 0
	if start != "" {
		from = indexOf(arrangement, start, 0)
		if from < 0 {
			return nil, fmt.Errorf("start section: %w", diag.Missing("section", start))
		}
	}
	to := len(arrangement) - 1
	if end != "" {
		to = indexOf(arrangement, end, from)
		if to < 0 {
			return nil, fmt.Errorf("end section: %w", diag.Missing("section", end))
		}
	}
	return arrangement[from : to+1], nil
}

func indexOf(list []string, name string, from int) int {
	for i := from; i < len(list); i++ {
		if list[i] == name {
			return i
		}
	}
	return -1
}

func newRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
