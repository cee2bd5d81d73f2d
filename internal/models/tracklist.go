package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// NamedTrack pairs an instrument name with its track
type NamedTrack struct {
	Instrument string
	Track      Track
}

// TrackList is an instrument -> track mapping that keeps document order.
// It decodes from a JSON object or YAML mapping.
type TrackList []NamedTrack

// Get returns the track for an instrument
func (l TrackList) Get(instrument string) (Track, bool) {
	for _, nt := range l {
		if nt.Instrument == instrument {
			return nt.Track, true
		}
	}
	return Track{}, false
}

// Set replaces the instrument's track or appends it
func (l *TrackList) Set(instrument string, track Track) {
	for i, nt := range *l {
		if nt.Instrument == instrument {
			(*l)[i].Track = track
			return
		}
	}
	*l = append(*l, NamedTrack{Instrument: instrument, Track: track})
}

// UnmarshalJSON walks the object token by token so key order survives
func (l *TrackList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("tracks: expected an object of instrument -> track")
	}

	var out TrackList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("tracks: expected instrument name")
		}
		var track Track
		if err := dec.Decode(&track); err != nil {
			return fmt.Errorf("tracks.%s: %w", name, err)
		}
		out.Set(name, track)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = out
	return nil
}

// MarshalJSON writes the tracks as an object in list order
func (l TrackList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, nt := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(nt.Instrument)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(nt.Track)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML reads a mapping node pair by pair
func (l *TrackList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("tracks: line %d: expected a mapping of instrument -> track", node.Line)
	}

	var out TrackList
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var track Track
		if err := node.Content[i+1].Decode(&track); err != nil {
			return fmt.Errorf("tracks.%s: %w", name, err)
		}
		out.Set(name, track)
	}

	*l = out
	return nil
}

// MarshalYAML emits a mapping node in list order
func (l TrackList) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, nt := range l {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: nt.Instrument}
		val := &yaml.Node{}
		if err := val.Encode(nt.Track); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}
