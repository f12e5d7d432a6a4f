package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const answerScenario = `
members:
  - name: answer
    value: 21
    decorators:
      - name: multipleOf
        args: [2]
      - name: multiply
        args: [2]
steps:
  - get: answer
    expect: 42
  - set: answer
    value: 3
    expect: 42
`

// invoke runs the CLI with an isolated config directory and returns the exit
// code and both output streams.
func invoke(t *testing.T, configDir string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("PROPDECO_CONFIG_DIR", "")
	t.Setenv("PROPDECO_LOG_LEVEL", "")
	t.Setenv("PROPDECO_MODE", "")
	t.Setenv("PROPDECO_OUTPUT", "")
	t.Setenv("PROPDECO_SCENARIO_DIR", "")

	var stdout, stderr bytes.Buffer
	code := Execute(append([]string{"--config-dir", configDir}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeScenario(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	code, out, _ := invoke(t, t.TempDir(), "version")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "propdeco v")
	assert.Contains(t, out, "github.com/mesh-intelligence/propdeco")
}

func TestInitWritesConfigOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	code, out, _ := invoke(t, dir, "init")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "Created")

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "mode: loose")

	code, out, _ = invoke(t, dir, "init")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "already exists")
}

func TestRunPasses(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "answer.yaml", answerScenario)

	code, out, stderr := invoke(t, dir, "run", path)
	assert.Equal(t, exitSuccess, code, stderr)
	assert.Contains(t, out, "scenario answer (object)")
	assert.Contains(t, out, "PASS 2 steps")
}

func TestRunResolvesAgainstScenarioDir(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "answer.yaml", answerScenario)

	code, _, stderr := invoke(t, t.TempDir(), "--scenario-dir", dir, "run", "answer.yaml")
	assert.Equal(t, exitSuccess, code, stderr)
}

func TestRunStrictModeFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "answer.yaml", answerScenario)

	code, out, stderr := invoke(t, dir, "run", "--mode", "strict", path)
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, out, "FAIL 1 of 2 steps")
	assert.Contains(t, stderr, "scenario failed")
}

func TestRunStrictModeFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("mode: strict\n"), 0o644))
	path := writeScenario(t, dir, "answer.yaml", answerScenario)

	code, _, _ := invoke(t, dir, "run", path)
	assert.Equal(t, exitUserError, code)
}

func TestRunJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "answer.yaml", answerScenario)

	code, out, _ := invoke(t, dir, "--json", "run", path)
	require.Equal(t, exitSuccess, code)

	var res struct {
		Scenario string `json:"scenario"`
		Entries  []struct {
			Op    string `json:"op"`
			Value any    `json:"value"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "answer", res.Scenario)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, float64(42), res.Entries[0].Value)
}

func TestRunUserErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeScenario(t, dir, "bad.yaml", "target: struct\n")
	unknown := writeScenario(t, dir, "unknown.yaml", "members:\n  - name: a\n    decorators:\n      - name: frobnicate\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"run", filepath.Join(dir, "nope.yaml")}, "no such file"},
		{"invalid scenario", []string{"run", bad}, "invalid scenario"},
		{"unknown decorator", []string{"run", unknown}, "unknown decorator"},
		{"bad mode flag", []string{"run", "--mode", "lenient", bad}, "unknown validation mode"},
		{"no args", []string{"run"}, "requires at least 1 arg"},
		{"bad log level", []string{"--log-level", "chatty", "decorators"}, "unknown log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := invoke(t, dir, tt.args...)
			assert.Equal(t, exitUserError, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "answer.yaml", answerScenario)

	code, out, _ := invoke(t, dir, "inspect", path)
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, `"answer"`)
	assert.Contains(t, out, `"multipleOf"`)

	code, out, _ = invoke(t, dir, "--json", "inspect", path)
	require.Equal(t, exitSuccess, code)
	var in struct {
		Members []struct {
			Name      string
			Installed string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(out), &in))
	require.Len(t, in.Members, 1)
	assert.Equal(t, "accessor", in.Members[0].Installed)
}

func TestDecorators(t *testing.T) {
	dir := t.TempDir()

	code, out, _ := invoke(t, dir, "decorators")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "convert <from-unit> <to-unit>")

	code, out, _ = invoke(t, dir, "--json", "decorators")
	require.Equal(t, exitSuccess, code)
	var infos []decoratorInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.NotEmpty(t, infos)
	assert.Equal(t, "add", infos[0].Name)
	assert.Equal(t, "transformer", infos[0].Kind)
}

func TestSetupCreatesDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")
	code, _, _ := invoke(t, dir, "decorators")
	require.Equal(t, exitSuccess, code)
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
}
