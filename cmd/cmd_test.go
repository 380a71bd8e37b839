package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sensei/internal/pose"
	"github.com/abhisek/sensei/internal/technique"
)

const mockConfig = `analysis:
  countdown: 0
  capture_sequence: false
  include_image: false
llm:
  provider: mock
speech:
  provider: mock
log:
  level: error
`

// env isolates a test from the user's environment and returns a config
// file and a database path inside a temp dir.
func env(t *testing.T) (configPath, dbPath string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("SENSEI_CONFIG", "")
	t.Setenv("SENSEI_DB", "")
	t.Setenv("SENSEI_LOCALE", "")
	t.Setenv("SENSEI_DEBUG", "")
	t.Setenv("SENSEI_LLM_PROVIDER", "")
	t.Setenv("SENSEI_SPEECH_PROVIDER", "")

	configPath = filepath.Join(dir, "sensei.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(mockConfig), 0o644))
	return configPath, filepath.Join(dir, "sensei.db")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeRecording(t *testing.T) string {
	t.Helper()
	set := make(pose.LandmarkSet, pose.NumLandmarks)
	for i := range set {
		set[i] = &pose.Landmark{X: 0.5, Y: 0.5, Visibility: 0.9}
	}
	set[pose.LeftShoulder] = &pose.Landmark{X: 0.45, Y: 0.30, Visibility: 0.9}
	set[pose.RightShoulder] = &pose.Landmark{X: 0.55, Y: 0.30, Visibility: 0.9}
	set[pose.LeftElbow] = &pose.Landmark{X: 0.42, Y: 0.42, Visibility: 0.9}
	set[pose.RightElbow] = &pose.Landmark{X: 0.58, Y: 0.42, Visibility: 0.9}
	set[pose.LeftWrist] = &pose.Landmark{X: 0.41, Y: 0.53, Visibility: 0.9}
	set[pose.RightWrist] = &pose.Landmark{X: 0.59, Y: 0.53, Visibility: 0.9}
	set[pose.LeftHip] = &pose.Landmark{X: 0.46, Y: 0.55, Visibility: 0.9}
	set[pose.RightHip] = &pose.Landmark{X: 0.54, Y: 0.55, Visibility: 0.9}
	set[pose.LeftAnkle] = &pose.Landmark{X: 0.40, Y: 0.85, Visibility: 0.9}
	set[pose.RightAnkle] = &pose.Landmark{X: 0.60, Y: 0.85, Visibility: 0.9}

	var b strings.Builder
	for i, ms := range []int64{0, 100} {
		line, err := json.Marshal(map[string]any{"t": ms, "landmarks": set})
		require.NoError(t, err, "frame %d", i)
		b.Write(line)
		b.WriteByte('\n')
	}
	path := filepath.Join(t.TempDir(), "session.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	conf, db := env(t)
	out, err := execute(t, "version", "--config", conf, "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "sensei (devel)\n", out)
}

func TestTechniques(t *testing.T) {
	conf, db := env(t)
	out, err := execute(t, "techniques", "--config", conf, "--db", db)
	require.NoError(t, err)
	for _, id := range technique.IDs() {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "Ikkyo (First Principle)")
}

func TestPrompt(t *testing.T) {
	conf, db := env(t)
	rec := writeRecording(t)

	out, err := execute(t, "prompt", "--config", conf, "--db", db,
		"--technique", "ikkyo", "--recording", rec, "--frames", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "**Ikkyo (First Principle)**")
}

func TestPrompt_UnknownTechnique(t *testing.T) {
	conf, db := env(t)
	rec := writeRecording(t)

	_, err := execute(t, "prompt", "--config", conf, "--db", db,
		"--technique", "kote-gaeshi", "--recording", rec, "--frames", "0")
	assert.ErrorIs(t, err, technique.ErrUnknownTechnique)
}

func TestAnalyze_RecordsHistory(t *testing.T) {
	conf, db := env(t)
	rec := writeRecording(t)
	audio := filepath.Join(t.TempDir(), "feedback.mp3")

	out, err := execute(t, "analyze", "--config", conf, "--db", db,
		"--technique", "ikkyo", "--recording", rec, "--audio-out", audio)
	require.NoError(t, err)
	assert.Contains(t, out, "Ikkyo (First Principle)")
	assert.Contains(t, out, "Technical data")

	data, err := os.ReadFile(audio)
	require.NoError(t, err)
	assert.Equal(t, "ID3mock", string(data))

	out, err = execute(t, "history", "list", "--config", conf, "--db", db, "--technique", "")
	require.NoError(t, err)
	assert.Contains(t, out, "ikkyo")
	assert.NotContains(t, out, "No analyses recorded yet.")

	out, err = execute(t, "llm", "stats", "--config", conf, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "feedback")
}

func TestHistory_Empty(t *testing.T) {
	conf, db := env(t)

	out, err := execute(t, "history", "list", "--config", conf, "--db", db, "--technique", "")
	require.NoError(t, err)
	assert.Contains(t, out, "No analyses recorded yet.")

	_, err = execute(t, "history", "view", "missing", "--config", conf, "--db", db)
	assert.ErrorContains(t, err, "not found")
}

func TestLLM_Empty(t *testing.T) {
	conf, db := env(t)

	out, err := execute(t, "llm", "stats", "--config", conf, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No model usage recorded yet.")

	out, err = execute(t, "llm", "list", "--config", conf, "--db", db, "--purpose", "")
	require.NoError(t, err)
	assert.Contains(t, out, "No model requests recorded yet.")
}
