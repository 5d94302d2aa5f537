// Package config loads devconsole settings from defaults, a devconsole.yaml file,
// .env files, DEVCONSOLE_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"devconsole/internal/logger"
)

// EnvPrefix is the prefix of environment variables read by the console.
const EnvPrefix = "DEVCONSOLE"

// Configuration keys.
const (
	KeyLogLevel         = "log_level"
	KeyLogFile          = "log_file"
	KeyTestMode         = "test_mode"
	KeyPlain            = "plain"
	KeyPrompt           = "prompt"
	KeyHistorySize      = "history_size"
	KeyAllowOverride    = "allow_override"
	KeyScene            = "scene"
	KeyFreezeRegistries = "freeze_registries"
)

// Config holds the resolved settings.
type Config struct {
	LogLevel         string `mapstructure:"log_level"`
	LogFile          string `mapstructure:"log_file"`
	TestMode         bool   `mapstructure:"test_mode"`
	Plain            bool   `mapstructure:"plain"`
	Prompt           string `mapstructure:"prompt"`
	HistorySize      int    `mapstructure:"history_size"`
	AllowOverride    bool   `mapstructure:"allow_override"`
	Scene            string `mapstructure:"scene"`
	FreezeRegistries bool   `mapstructure:"freeze_registries"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:         "info",
		Prompt:           "> ",
		HistorySize:      100,
		FreezeRegistries: true,
	}
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyLogFile, def.LogFile)
	v.SetDefault(KeyTestMode, def.TestMode)
	v.SetDefault(KeyPlain, def.Plain)
	v.SetDefault(KeyPrompt, def.Prompt)
	v.SetDefault(KeyHistorySize, def.HistorySize)
	v.SetDefault(KeyAllowOverride, def.AllowOverride)
	v.SetDefault(KeyScene, def.Scene)
	v.SetDefault(KeyFreezeRegistries, def.FreezeRegistries)
}

// Loader reads configuration into a viper instance.
type Loader struct {
	v          *viper.Viper
	configFile string
	searchDirs []string
	envFiles   []string
}

// Option configures a Loader.
type Option func(*Loader)

// WithConfigFile reads the given file instead of searching for devconsole.yaml.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.configFile = path
	}
}

// WithSearchDirs replaces the directories searched for devconsole.yaml.
func WithSearchDirs(dirs ...string) Option {
	return func(l *Loader) {
		l.searchDirs = dirs
	}
}

// WithEnvFiles replaces the .env files loaded before environment lookup.
func WithEnvFiles(files ...string) Option {
	return func(l *Loader) {
		l.envFiles = files
	}
}

// NewLoader creates a loader backed by v, or by a fresh viper instance when v is nil.
func NewLoader(v *viper.Viper, opts ...Option) *Loader {
	if v == nil {
		v = viper.New()
	}
	l := &Loader{
		v:          v,
		searchDirs: DefaultSearchDirs(),
		envFiles:   DefaultEnvFiles(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Viper returns the underlying viper instance.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load resolves the configuration. Precedence, highest first: bound flags,
// environment, .env files, config file, defaults. In test mode no files are read.
func (l *Loader) Load() (*Config, error) {
	SetDefaults(l.v)
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	l.v.AutomaticEnv()

	if !l.v.GetBool(KeyTestMode) {
		if err := l.loadEnvFiles(); err != nil {
			return nil, err
		}
		if err := l.readConfigFile(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load resolves the configuration from the global viper instance.
func Load(opts ...Option) (*Config, error) {
	return NewLoader(viper.GetViper(), opts...).Load()
}

// loadEnvFiles exports variables from .env files that are not already set.
// Missing files are not an error.
func (l *Loader) loadEnvFiles() error {
	for _, path := range l.envFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to read .env file %s: %w", path, err)
		}

		envMap, err := godotenv.Unmarshal(string(data))
		if err != nil {
			return fmt.Errorf("failed to parse .env file %s: %w", path, err)
		}

		for key, value := range envMap {
			if _, exists := os.LookupEnv(key); exists {
				continue
			}
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to export %s from %s: %w", key, path, err)
			}
		}
		logger.Debug("Loaded .env file", "component", "config", "path", path, "keys", len(envMap))
	}
	return nil
}

func (l *Loader) readConfigFile() error {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	} else {
		l.v.SetConfigName("devconsole")
		l.v.SetConfigType("yaml")
		for _, dir := range l.searchDirs {
			l.v.AddConfigPath(dir)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			logger.Debug("No config file found", "component", "config", "dirs", l.searchDirs)
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	logger.Debug("Loaded config file", "component", "config", "path", l.v.ConfigFileUsed())
	return nil
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.HistorySize < 0 {
		return fmt.Errorf("history_size must not be negative, got %d", c.HistorySize)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// DefaultSearchDirs returns $XDG_CONFIG_HOME/devconsole, ~/.config/devconsole and the working directory.
func DefaultSearchDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "devconsole"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "devconsole"))
	}
	return append(dirs, ".")
}

// DefaultEnvFiles returns the local .env file followed by the one in the user config directory.
// Earlier files win.
func DefaultEnvFiles() []string {
	files := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".config", "devconsole", ".env"))
	}
	return files
}
