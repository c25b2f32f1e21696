package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/morpho/pkg/lexicon"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, lexicon.DefaultCacheSize, config.Lexicon.CacheSize)
	assert.Equal(t, "-", config.Shell.Separator)
	assert.Equal(t, log.WarnLevel, config.LogLevel())
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[lexicon]
cache_size = 128

[shell]
separator = " + "
show_hash = true

[loader]
workers = 2
model_dir = "models/jp"
`)
	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 128, config.Lexicon.CacheSize)
	assert.Equal(t, " + ", config.Shell.Separator)
	assert.True(t, config.Shell.ShowHash)
	assert.True(t, config.Shell.SortResults, "unset keys keep defaults")
	assert.Equal(t, 2, config.Loader.Workers)
	assert.Equal(t, "models/jp", config.Loader.ModelDir)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// cache_size has the wrong type, so strict decoding fails
	path := writeConfig(t, `
[lexicon]
cache_size = "big"

[shell]
separator = "|"

[log]
level = "debug"
`)
	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, lexicon.DefaultCacheSize, config.Lexicon.CacheSize)
	assert.Equal(t, "|", config.Shell.Separator)
	assert.Equal(t, log.DebugLevel, config.LogLevel())
}

func TestLoadConfigGarbage(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "this is [not toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[loader]\nworkers = -1\n"))
	assert.ErrorIs(t, err, errNegativeWorkers)

	_, err = LoadConfig(writeConfig(t, "[log]\nlevel = \"loud\"\n"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MORPHO_SEPARATOR", "~")
	t.Setenv("MORPHO_CACHE_SIZE", "64")
	t.Setenv("MORPHO_SHOW_HASH", "true")

	config, err := LoadConfig(writeConfig(t, "[shell]\nseparator = \"|\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "~", config.Shell.Separator)
	assert.Equal(t, 64, config.Lexicon.CacheSize)
	assert.True(t, config.Shell.ShowHash)
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	config, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config, reloaded)
}

func TestInitConfigValidatesEnv(t *testing.T) {
	t.Setenv("MORPHO_LOG_LEVEL", "bogus")
	_, err := InitConfig(filepath.Join(t.TempDir(), "config.toml"))
	assert.Error(t, err)

	t.Setenv("MORPHO_LOG_LEVEL", "info")
	t.Setenv("MORPHO_WORKERS", "-2")
	path := filepath.Join(t.TempDir(), "config.toml")
	_, err = InitConfig(path)
	assert.ErrorIs(t, err, errNegativeWorkers)
	assert.FileExists(t, path, "defaults are written before env is applied")

	_, _, err = defaultsWithEnv()
	assert.ErrorIs(t, err, errNegativeWorkers)
}

func TestSaveConfigReportsFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.toml")
	assert.Error(t, SaveConfig(DefaultConfig(), path))
	assert.NoFileExists(t, path)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[shell]\nprompt = \"> \"\n")

	config, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "> ", config.Shell.Prompt)
}

func TestGetActiveConfigPath(t *testing.T) {
	assert.Equal(t, "builtin defaults", GetActiveConfigPath(""))
	assert.True(t, filepath.IsAbs(GetActiveConfigPath("config.toml")))
}
