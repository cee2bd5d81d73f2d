// Package script builds score documents from the call-per-statement score
// script language
package script

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/Conceptual-Machines/grammar-school-go/gs"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Parser turns score scripts into scores using Grammar School. A Parser is
// reusable but not safe for concurrent use.
type Parser struct {
	engine *gs.Engine
	dsl    *ScoreDSL
}

// ScoreDSL implements the statement methods. Each call mutates the score
// under construction.
type ScoreDSL struct {
	score        models.Score
	sectionOrder []string
	arranged     bool
}

// NewParser creates a score script parser
func NewParser() (*Parser, error) {
	p := &Parser{dsl: &ScoreDSL{}}

	engine, err := gs.NewEngine(Grammar(), p.dsl, gs.NewLarkParser())
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	p.engine = engine
	return p, nil
}

// Parse executes a script and returns the score it describes. Without an
// arrange() call the sections play once each in definition order.
func (p *Parser) Parse(ctx context.Context, code string) (models.Score, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.Score{}, fmt.Errorf("empty score script")
	}

	p.dsl.reset()
	if err := p.engine.Execute(ctx, code); err != nil {
		return models.Score{}, fmt.Errorf("failed to execute script: %w", err)
	}

	s := p.dsl.score
	if !p.dsl.arranged {
		s.Arrangement = append([]string{}, p.dsl.sectionOrder...)
	}
	log.Printf("✅ Score script: %d patterns, %d sections, %d arranged", len(s.Patterns), len(s.Sections), len(s.Arrangement))
	return s, nil
}

// Parse is a convenience wrapper that builds a one-shot parser
func Parse(ctx context.Context, code string) (models.Score, error) {
	p, err := NewParser()
	if err != nil {
		return models.Score{}, err
	}
	return p.Parse(ctx, code)
}

func (d *ScoreDSL) reset() {
	d.score = models.Score{
		Patterns:    map[string]models.Pattern{},
		Sections:    map[string]models.Section{},
		Arrangement: []string{},
	}
	d.sectionOrder = nil
	d.arranged = false
}

func (d *ScoreDSL) definePattern(call string, args gs.Args, p models.Pattern) error {
	name, err := ident(args, "name")
	if err != nil {
		return fmt.Errorf("%s: %w", call, err)
	}
	if _, exists := d.score.Patterns[name]; exists {
		return fmt.Errorf("%s: pattern %q defined twice", call, name)
	}
	if env := text(args, "envelope"); env != "" {
		p.VelocityEnvelope = &models.VelocityEnvelope{Preset: env}
	}
	p.Rest = text(args, "rest")
	d.score.Patterns[name] = p
	log.Printf("🎼 %s: %s (%s)", call, name, p.Kind())
	return nil
}

// Settings handles settings() calls
func (d *ScoreDSL) Settings(args gs.Args) error {
	s := &d.score.Settings
	if v, ok := number(args, "tempo"); ok {
		s.Tempo = v
	}
	if v := text(args, "key"); v != "" {
		s.Key = v
	}
	if v := text(args, "time"); v != "" {
		s.TimeSignature = v
	}
	if v, ok := number(args, "swing"); ok {
		s.Swing = v
	}
	return nil
}

// Instrument handles instrument() calls
func (d *ScoreDSL) Instrument(args gs.Args) error {
	name, err := ident(args, "name")
	if err != nil {
		return fmt.Errorf("instrument: %w", err)
	}
	inst := models.Instrument{Type: text(args, "type"), Preset: text(args, "preset")}
	if v, ok := number(args, "volume"); ok {
		inst.Volume = &v
	}
	if v, ok := number(args, "pan"); ok {
		inst.Pan = &v
	}
	if d.score.Instruments == nil {
		d.score.Instruments = map[string]models.Instrument{}
	}
	d.score.Instruments[name] = inst
	return nil
}

// Pattern handles pattern() calls: an explicit note sequence
func (d *ScoreDSL) Pattern(args gs.Args) error {
	p := models.Pattern{Notes: strings.Fields(text(args, "notes"))}
	constrain, err := flag(args, "constrain")
	if err != nil {
		return fmt.Errorf("pattern: %w", err)
	}
	p.ConstrainToScale = constrain
	return d.definePattern("pattern", args, p)
}

// Chords handles chords() calls
func (d *ScoreDSL) Chords(args gs.Args) error {
	return d.definePattern("chords", args, models.Pattern{Chords: strings.Fields(text(args, "chords"))})
}

// Degrees handles degrees() calls
func (d *ScoreDSL) Degrees(args gs.Args) error {
	p := models.Pattern{
		Degrees: models.Tokens(strings.Fields(text(args, "degrees"))...),
		Rhythm:  strings.Fields(text(args, "rhythm")),
	}
	if v, ok := number(args, "octave"); ok {
		octave := int(v)
		p.Octave = &octave
	}
	return d.definePattern("degrees", args, p)
}

// Drums handles drums() calls
func (d *ScoreDSL) Drums(args gs.Args) error {
	drums := &models.Drums{
		Steps:        text(args, "steps"),
		Drum:         text(args, "drum"),
		StepDuration: text(args, "step"),
	}
	if v, ok := number(args, "length"); ok {
		drums.Length = v
	}
	return d.definePattern("drums", args, models.Pattern{Drums: drums})
}

// Euclid handles euclid() calls
func (d *ScoreDSL) Euclid(args gs.Args) error {
	e := &models.Euclidean{
		Drum:     text(args, "drum"),
		Pitch:    text(args, "pitch"),
		Duration: text(args, "duration"),
	}
	hits, okHits := number(args, "hits")
	steps, okSteps := number(args, "steps")
	if !okHits || !okSteps {
		return fmt.Errorf("euclid: hits and steps are required")
	}
	e.Hits, e.Steps = int(hits), int(steps)
	if v, ok := number(args, "rotation"); ok {
		e.Rotation = int(v)
	}
	if v, ok := number(args, "velocity"); ok {
		e.Velocity = &v
	}
	return d.definePattern("euclid", args, models.Pattern{Euclidean: e})
}

// Arp handles arp() calls
func (d *ScoreDSL) Arp(args gs.Args) error {
	a := &models.Arpeggio{
		Chord:    text(args, "chord"),
		Mode:     text(args, "mode"),
		Duration: text(args, "duration"),
	}
	if a.Chord == "" {
		return fmt.Errorf("arp: missing chord")
	}
	if v, ok := number(args, "octaves"); ok {
		a.Octaves = int(v)
	}
	if v, ok := number(args, "gate"); ok {
		a.Gate = v
	}
	if v, ok := number(args, "steps"); ok {
		a.Steps = int(v)
	}
	return d.definePattern("arp", args, models.Pattern{Arpeggio: a})
}

// Transform handles transform() calls
func (d *ScoreDSL) Transform(args gs.Args) error {
	t := &models.Transform{
		Source:    text(args, "source"),
		Operation: text(args, "operation"),
		Axis:      text(args, "axis"),
	}
	if t.Source == "" || t.Operation == "" {
		return fmt.Errorf("transform: source and operation are required")
	}
	if v, ok := number(args, "factor"); ok {
		t.Factor = v
	}
	if v, ok := number(args, "semitones"); ok {
		t.Semitones = int(v)
	}
	if v, ok := number(args, "octaves"); ok {
		t.Octaves = int(v)
	}
	return d.definePattern("transform", args, models.Pattern{Transform: t})
}

// Section handles section() calls. Redefining a section keeps its tracks.
func (d *ScoreDSL) Section(args gs.Args) error {
	name, err := ident(args, "name")
	if err != nil {
		return fmt.Errorf("section: %w", err)
	}
	sec, exists := d.score.Sections[name]
	if !exists {
		d.sectionOrder = append(d.sectionOrder, name)
	}
	if v, ok := number(args, "bars"); ok {
		sec.Bars = int(v)
	}
	if v, ok := number(args, "tempo"); ok {
		sec.Tempo = v
	}
	if v := text(args, "key"); v != "" {
		sec.Key = v
	}
	d.score.Sections[name] = sec
	log.Printf("📐 Section: %s (%d bars)", name, sec.Bars)
	return nil
}

// Track handles track() calls
func (d *ScoreDSL) Track(args gs.Args) error {
	secName := text(args, "section")
	sec, ok := d.score.Sections[secName]
	if !ok {
		return fmt.Errorf("track: section %q is not defined", secName)
	}
	instrument, err := ident(args, "instrument")
	if err != nil {
		return fmt.Errorf("track: %w", err)
	}
	if v := text(args, "pattern"); v != "" && !namePattern.MatchString(v) {
		return fmt.Errorf("track: invalid pattern name %q", v)
	}

	tr := models.Track{
		Pattern:  text(args, "pattern"),
		Patterns: strings.Fields(text(args, "patterns")),
		Groove:   text(args, "groove"),
	}
	if v, ok := number(args, "repeat"); ok {
		tr.Repeat = int(v)
	}
	if v, ok := number(args, "octave"); ok {
		tr.Octave = int(v)
	}
	if v, ok := number(args, "transpose"); ok {
		tr.Transpose = int(v)
	}
	if v, ok := number(args, "velocity"); ok {
		tr.Velocity = &v
	}
	if v, ok := number(args, "humanize"); ok {
		tr.Humanize = v
	}
	if v, ok := number(args, "swing"); ok {
		tr.Swing = &v
	}
	mute, err := flag(args, "mute")
	if err != nil {
		return fmt.Errorf("track: %w", err)
	}
	tr.Mute = mute

	sec.Tracks.Set(instrument, tr)
	d.score.Sections[secName] = sec
	return nil
}

// Arrange handles arrange() calls; repeated calls append
func (d *ScoreDSL) Arrange(args gs.Args) error {
	names := strings.Fields(text(args, "sections"))
	if len(names) == 0 {
		return fmt.Errorf("arrange: no sections listed")
	}
	d.score.Arrangement = append(d.score.Arrangement, names...)
	d.arranged = true
	return nil
}

// text reads a bare-word or quoted string argument, without quotes
func text(args gs.Args, key string) string {
	if v, ok := args[key]; ok && v.Kind == gs.ValueString {
		return strings.Trim(v.Str, "\"")
	}
	return ""
}

// ident reads a required bare-word name. A value that is not a single word
// means the parser folded a malformed argument list into it.
func ident(args gs.Args, key string) (string, error) {
	v := text(args, key)
	if v == "" {
		return "", fmt.Errorf("missing %s", key)
	}
	if !namePattern.MatchString(v) {
		return "", fmt.Errorf("invalid %s %q", key, v)
	}
	return v, nil
}

func number(args gs.Args, key string) (float64, bool) {
	if v, ok := args[key]; ok && v.Kind == gs.ValueNumber {
		return v.Num, true
	}
	return 0, false
}

func flag(args gs.Args, key string) (bool, error) {
	if v, ok := args[key]; ok && v.Kind == gs.ValueBool {
		return v.Bool, nil
	}
	switch w := strings.ToLower(text(args, key)); w {
	case "":
		return false, nil
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s must be true or false, got %q", key, w)
	}
}
