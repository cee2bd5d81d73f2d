package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/score"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/script"
)

// ScriptExt marks a file as a score script rather than a score document
const ScriptExt = ".ethd"

// loadScore reads a score document or script. "-" reads a document from stdin.
func loadScore(ctx context.Context, path string, stdin io.Reader) (models.Score, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return models.Score{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return score.Parse(data, score.DetectFormat("", data))
	}

	if !strings.EqualFold(filepath.Ext(path), ScriptExt) {
		return score.LoadFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Score{}, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := script.Parse(ctx, string(data))
	if err != nil {
		return models.Score{}, fmt.Errorf("%s: %w", path, err)
	}
	s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return s, nil
}
