package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsariola/sceneline/arrange"
	"github.com/vsariola/sceneline/editor"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SCENELINE_ENV", "test")
	t.Setenv("SCENELINE_LOG_LEVEL", "disabled")
	t.Setenv("SCENELINE_RECOVERY_FILE", filepath.Join(dir, "recovery.json"))
	path := filepath.Join(dir, "song.yml")
	_, err := run(t, "new", "--file", path, "--tracks", "2")
	require.NoError(t, err)
	return path
}

func load(t *testing.T, path string) *editor.Model {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := editor.DecodeDocument(b)
	require.NoError(t, err)
	return editor.NewModel(editor.WithDocument(doc))
}

func TestEditSession(t *testing.T) {
	path := setup(t)

	out, err := run(t, "pattern", "create", "1", "0", "8", "--file", path)
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = run(t, "pattern", "list", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "T1_P3_001")

	_, err = run(t, "pattern", "move", id, "20", "--file", path)
	require.NoError(t, err)
	out, err = run(t, "scenes", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "\n"))

	_, err = run(t, "step", "set", "T1_P3_001", "0", "0", "velo", "200", "--file", path)
	require.NoError(t, err)
	m := load(t, path)
	s, _ := m.Document().Current()
	assert.Equal(t, 127, s.Patterns["T1_P3_001"].Bars[0].Velo[0])
	refs := arrange.PatternRefs(m.Document())
	require.Len(t, refs, 1)
	assert.Equal(t, 16.0, refs[0].Start)

	_, err = run(t, "track", "rename", "2", "Bass", "--file", path)
	require.NoError(t, err)
	out, err = run(t, "report", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Bass")
}

func TestFailedEditDoesNotWrite(t *testing.T) {
	path := setup(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = run(t, "pattern", "move", "stale-id", "0", "--file", path)
	assert.ErrorIs(t, err, arrange.ErrNotFound)
	_, err = run(t, "scene", "length", "nope", "4", "--file", path)
	assert.Error(t, err)
	_, err = run(t, "step", "set", "p", "0", "0", "volume", "1", "--file", path)
	assert.ErrorIs(t, err, arrange.ErrInvalid)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestNewRefusesToOverwrite(t *testing.T) {
	path := setup(t)
	_, err := run(t, "new", "--file", path)
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	path := setup(t)
	_, err := run(t, "scene", "create", "Intro", "0", "16", "--file", path)
	require.NoError(t, err)
	out, err := run(t, "export", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "songs:")
	assert.Contains(t, out, "Intro:")
	assert.NotContains(t, out, "reactKey")

	// an export can be read back, getting a fresh sidecar
	exported := filepath.Join(filepath.Dir(path), "export.yml")
	require.NoError(t, os.WriteFile(exported, []byte(out), 0o644))
	_, err = run(t, "validate", "--file", exported)
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}
