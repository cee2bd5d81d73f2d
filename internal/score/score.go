// Package score reads score documents from JSON or YAML
package score

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the encoding from a file extension, falling back to
// the first non-blank byte of the content
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes a score document in the given format
func Parse(data []byte, format Format) (models.Score, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Score{}, &diag.Error{Kind: diag.EmptyInput, Msg: "score document is empty"}
	}

	var s models.Score
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &s); err != nil {
			return models.Score{}, fmt.Errorf("failed to parse JSON score: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return models.Score{}, fmt.Errorf("failed to parse YAML score: %w", err)
		}
	default:
		return models.Score{}, fmt.Errorf("unsupported score format %q", format)
	}
	return s, nil
}

// LoadFile reads and decodes a score document from disk
func LoadFile(path string) (models.Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Score{}, fmt.Errorf("failed to read score: %w", err)
	}
	s, err := Parse(data, DetectFormat(path, data))
	if err != nil {
		return models.Score{}, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Hash is a stable content hash of a score plus any extra inputs that change
// the compiled result
func Hash(s models.Score, extra ...any) (string, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("failed to hash score: %w", err)
	}
	for _, e := range extra {
		if err := enc.Encode(e); err != nil {
			return "", fmt.Errorf("failed to hash score: %w", err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
