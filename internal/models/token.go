package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Token is a notation literal that documents may write as a string or a
// bare number, e.g. a scale degree 5 or a hit time 1.5
type Token string

func (t *Token) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Token(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", data)
	}
	*t = Token(n.String())
	return nil
}

func (t *Token) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a string or number", node.Line)
	}
	*t = Token(node.Value)
	return nil
}

// Tokens converts plain strings to tokens
func Tokens(values ...string) []Token {
	out := make([]Token, len(values))
	for i, v := range values {
		out[i] = Token(v)
	}
	return out
}

// VelocityEnvelope is either a named preset or explicit control points
type VelocityEnvelope struct {
	Preset string
	Points []float64
}

// Velocity envelope presets
const (
	EnvelopeCrescendo       = "crescendo"
	EnvelopeDiminuendo      = "diminuendo"
	EnvelopeSwell           = "swell"
	EnvelopeAccentFirst     = "accent_first"
	EnvelopeAccentDownbeats = "accent_downbeats"
)

func (e *VelocityEnvelope) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &e.Preset)
	}
	if err := json.Unmarshal(data, &e.Points); err != nil {
		return fmt.Errorf("velocityEnvelope: expected a preset name or a list of numbers")
	}
	return nil
}

func (e VelocityEnvelope) MarshalJSON() ([]byte, error) {
	if e.Preset != "" {
		return json.Marshal(e.Preset)
	}
	return json.Marshal(e.Points)
}

func (e *VelocityEnvelope) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if _, err := strconv.ParseFloat(node.Value, 64); err == nil {
			return fmt.Errorf("line %d: velocityEnvelope: expected a preset name or a list of numbers", node.Line)
		}
		e.Preset = node.Value
		return nil
	case yaml.SequenceNode:
		return node.Decode(&e.Points)
	}
	return fmt.Errorf("line %d: velocityEnvelope: expected a preset name or a list of numbers", node.Line)
}

func (e VelocityEnvelope) MarshalYAML() (interface{}, error) {
	if e.Preset != "" {
		return e.Preset, nil
	}
	return e.Points, nil
}
