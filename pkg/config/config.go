/*
Package config manages TOML config for morpho.

Values are layered: built-in defaults, then the TOML file, then MORPHO_*
environment variables. A file that fails to parse as a whole is recovered
section by section so that one bad value does not discard the rest.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/morpho/internal/utils"
	"github.com/bastiangx/morpho/pkg/lexicon"
	"github.com/charmbracelet/log"
	"github.com/ilyakaznacheev/cleanenv"
)

// AppName names the config directory.
const AppName = "morpho"

// Config holds the entire config structure
type Config struct {
	Lexicon LexiconConfig `toml:"lexicon"`
	Shell   ShellConfig   `toml:"shell"`
	Loader  LoaderConfig  `toml:"loader"`
	Log     LogConfig     `toml:"log"`
}

// LexiconConfig has lexicon related options.
type LexiconConfig struct {
	CacheSize int `toml:"cache_size" env:"MORPHO_CACHE_SIZE"`
}

// ShellConfig holds interactive shell options.
type ShellConfig struct {
	Separator   string `toml:"separator" env:"MORPHO_SEPARATOR"`
	SortResults bool   `toml:"sort_results" env:"MORPHO_SORT_RESULTS"`
	ShowHash    bool   `toml:"show_hash" env:"MORPHO_SHOW_HASH"`
	Prompt      string `toml:"prompt" env:"MORPHO_PROMPT"`
}

// LoaderConfig holds model loading options.
type LoaderConfig struct {
	Workers  int    `toml:"workers" env:"MORPHO_WORKERS"`
	ModelDir string `toml:"model_dir" env:"MORPHO_MODEL_DIR"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `toml:"level" env:"MORPHO_LOG_LEVEL"`
}

var (
	errNegativeCacheSize = errors.New("lexicon.cache_size must not be negative")
	errNegativeWorkers   = errors.New("loader.workers must not be negative")
	errEmptyPrompt       = errors.New("shell.prompt must not be empty")
)

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.ExecutableDir()
	}
	for _, dir := range []string{
		filepath.Join(homeDir, ".config", AppName),
		filepath.Join(homeDir, "Library", "Application Support", AppName),
	} {
		err := utils.WritableDir(dir)
		if err == nil {
			return dir, nil
		}
		log.Warnf("Cannot use config directory %s: %v", dir, err)
	}
	execDir, err := utils.ExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/morpho/config.toml
// 3. Builtin defaults
//
// Environment overrides apply in every case.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return defaultsWithEnv()
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return defaultsWithEnv()
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

func defaultsWithEnv() (*Config, string, error) {
	config, err := withEnv(DefaultConfig())
	if err != nil {
		return nil, "", err
	}
	return config, "", nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Lexicon: LexiconConfig{
			CacheSize: lexicon.DefaultCacheSize,
		},
		Shell: ShellConfig{
			Separator:   "-",
			SortResults: true,
			ShowHash:    false,
			Prompt:      "[morpho]>> ",
		},
		Loader: LoaderConfig{
			Workers: 4,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		config, _, err := defaultsWithEnv()
		return config, err
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
		} else {
			log.Debugf("Created default config file at: %s", configPath)
		}
		return withEnv(config)
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file and applies environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	md, err := toml.DecodeFile(configPath, config)
	if err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		config = tryPartialParse(configPath)
	} else if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Warnf("Ignoring unknown keys in %s: %v", configPath, undecoded)
	}

	config, err = withEnv(config)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", configPath, err)
	}
	return config, nil
}

// withEnv overrides config with any MORPHO_* variables that are set and
// validates the result.
func withEnv(config *Config) (*Config, error) {
	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate reports the first invalid value.
func (c *Config) Validate() error {
	if c.Lexicon.CacheSize < 0 {
		return errNegativeCacheSize
	}
	if c.Loader.Workers < 0 {
		return errNegativeWorkers
	}
	if c.Shell.Prompt == "" {
		return errEmptyPrompt
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// LogLevel returns the configured log level, or WarnLevel if it does not parse.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// tryPartialParse recovers whatever sections parse from a TOML file.
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	table, err := utils.ReadTable(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if lex, ok := table.Sub("lexicon"); ok {
		lex.IntTo("cache_size", &config.Lexicon.CacheSize)
	}
	if shell, ok := table.Sub("shell"); ok {
		shell.StringTo("separator", &config.Shell.Separator)
		shell.BoolTo("sort_results", &config.Shell.SortResults)
		shell.BoolTo("show_hash", &config.Shell.ShowHash)
		shell.StringTo("prompt", &config.Shell.Prompt)
	}
	if loader, ok := table.Sub("loader"); ok {
		loader.IntTo("workers", &config.Loader.Workers)
		loader.StringTo("model_dir", &config.Loader.ModelDir)
	}
	if l, ok := table.Sub("log"); ok {
		l.StringTo("level", &config.Log.Level)
	}
	return config
}

// RebuildConfigFile force creates a new config.toml at the default path
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(defaultPath), 0755); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.AbsPath(configPath)
}

// SaveConfig saves into a TOML file. The previous file survives a failed
// write.
func SaveConfig(config *Config, configPath string) error {
	if err := utils.WriteTOML(configPath, config); err != nil {
		return fmt.Errorf("save config %s: %w", configPath, err)
	}
	return nil
}
