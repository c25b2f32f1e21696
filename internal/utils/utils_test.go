package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestWriteTOML(t *testing.T) {
	type section struct {
		Name  string `toml:"name"`
		Count int    `toml:"count"`
		On    bool   `toml:"on"`
	}
	type doc struct {
		Main section `toml:"main"`
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "x.toml")
	require.NoError(t, WriteTOML(path, doc{Main: section{Name: "a", Count: 3, On: true}}))

	table, err := ReadTable(path)
	require.NoError(t, err)
	main, ok := table.Sub("main")
	require.True(t, ok)

	var name string
	var count int
	var on bool
	main.StringTo("name", &name)
	main.IntTo("count", &count)
	main.BoolTo("on", &on)
	assert.Equal(t, "a", name)
	assert.Equal(t, 3, count)
	assert.True(t, on)

	// mismatched types leave the destination alone
	main.IntTo("name", &count)
	main.StringTo("count", &name)
	assert.Equal(t, 3, count)
	assert.Equal(t, "a", name)

	_, ok = table.Sub("missing")
	assert.False(t, ok)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestWriteTOMLFailureKeepsOldFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.toml")
	require.NoError(t, os.WriteFile(path, []byte("old = true\n"), 0644))

	// non-string map keys cannot be encoded
	assert.Error(t, WriteTOML(path, map[int]string{1: "a"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old = true\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")

	assert.Error(t, WriteTOML(filepath.Join(dir, "missing", "x.toml"), map[string]int{"a": 1}))
}

func TestWritableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, WritableDir(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.Error(t, WritableDir(file))
}

func TestAbsPath(t *testing.T) {
	assert.True(t, filepath.IsAbs(AbsPath("config.toml")))
	assert.Equal(t, "/etc/morpho", AbsPath("/etc/morpho"))
}

func TestResolveModelDir(t *testing.T) {
	configDir := t.TempDir()
	model := filepath.Join(configDir, "models", "jp")
	require.NoError(t, os.MkdirAll(model, 0755))

	pr, err := NewPathResolver(configDir)
	require.NoError(t, err)

	isDir := func(p string) bool {
		info, err := os.Stat(p)
		return err == nil && info.IsDir()
	}

	assert.Equal(t, model, pr.ResolveModelDir("jp", isDir))
	assert.Equal(t, model, pr.ResolveModelDir(model, isDir))

	missing := pr.ResolveModelDir("no-such-model", isDir)
	assert.Equal(t, pr.Candidates("no-such-model")[0], missing)
}
