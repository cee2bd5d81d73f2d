package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/compiler"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlScore = `settings:
  tempo: 120
patterns:
  lead:
    notes: ["C4:q", "D4:q", "E4:q", "F4:q"]
sections:
  verse:
    bars: 1
    tracks:
      piano: {pattern: lead}
  chorus:
    bars: 1
    tempo: 60
    tracks:
      piano: {pattern: lead}
arrangement: [verse, chorus]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand(&config.Config{Port: "8080"}, "test")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCompileCommand(t *testing.T) {
	path := writeFile(t, "song.yaml", yamlScore)

	stdout, _, err := run(t, "", "compile", path)
	require.NoError(t, err)

	var res compiler.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, 8, res.Stats.Notes)
	assert.Equal(t, 2, res.Stats.Sections)
	// 2s at 120 then 4s at 60
	assert.InDelta(t, 6.0, res.Timeline.TotalSeconds, 1e-9)
}

func TestCompileCommandFlags(t *testing.T) {
	path := writeFile(t, "song.yaml", yamlScore)
	out := filepath.Join(t.TempDir(), "out.json")

	stdout, _, err := run(t, "", "compile", path, "--start", "chorus", "--tempo", "90", "--seed", "7", "--pretty", "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ")

	var res compiler.Result
	require.NoError(t, json.Unmarshal(data, &res))
	assert.Equal(t, 1, res.Stats.Sections)
	assert.Equal(t, []string{"piano"}, res.Stats.Instruments)
}

func TestCompileCommandWarnings(t *testing.T) {
	path := writeFile(t, "song.yaml", strings.Replace(yamlScore, "[verse, chorus]", "[verse, bridge]", 1))

	_, stderr, err := run(t, "", "compile", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning:")
	assert.Contains(t, stderr, "bridge")
}

func TestCompileScriptFile(t *testing.T) {
	path := writeFile(t, "riff"+ScriptExt, `pattern(name=lead, notes="C4:h G4:h");
section(name=main, bars=1);
track(section=main, instrument=synth, pattern=lead)`)

	stdout, _, err := run(t, "", "compile", path)
	require.NoError(t, err)

	var res compiler.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, 2, res.Stats.Notes)
	assert.Equal(t, []string{"synth"}, res.Stats.Instruments)
}

func TestCompileFromStdin(t *testing.T) {
	stdout, _, err := run(t, yamlScore, "compile", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"totalSeconds":6`)
}

func TestCompileCommandErrors(t *testing.T) {
	_, _, err := run(t, "", "compile")
	assert.Error(t, err)

	_, _, err = run(t, "", "compile", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := writeFile(t, "bad.yaml", strings.Replace(yamlScore, `"C4:q", "D4:q"`, `"C4:q", "Q4:q"`, 1))
	_, _, err = run(t, "", "compile", bad)
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	good := writeFile(t, "good.yaml", yamlScore)
	stdout, _, err := run(t, "", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")

	broken := writeFile(t, "broken.yaml", strings.Replace(yamlScore, "{pattern: lead}", "{pattern: nothing}", 1))
	stdout, _, err = run(t, "", "validate", broken)
	assert.Error(t, err)
	assert.Contains(t, stdout, "nothing")
}

func TestAnalyzeCommand(t *testing.T) {
	path := writeFile(t, "song.yaml", yamlScore)

	stdout, _, err := run(t, "", "analyze", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Score:       song")
	assert.Contains(t, stdout, "Duration:    6.00s")

	stdout, _, err = run(t, "", "analyze", "--json", path)
	require.NoError(t, err)
	var summary compiler.Summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, 2, summary.Bars)
	assert.Equal(t, []string{"lead"}, summary.Patterns)
}

func TestConnectBackendsWithoutConfig(t *testing.T) {
	b, err := connectBackends(context.Background(), &config.Config{Environment: "test"})
	require.NoError(t, err)
	assert.Nil(t, b.DB)
	assert.Nil(t, b.Cache)
	assert.False(t, b.CloudWatch.Enabled())
}
