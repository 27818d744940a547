package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/viper"

	"github.com/evgfitil/pleasewait/internal/waitdialog"
)

const (
	Dir       = ".config/pleasewait"
	File      = "config.yaml"
	EnvPrefix = "PLEASEWAIT"
)

// Config represents the application configuration
type Config struct {
	Label         string            `mapstructure:"label"`
	Title         string            `mapstructure:"title"`
	CancelEnabled bool              `mapstructure:"cancel_enabled"`
	Timeout       time.Duration     `mapstructure:"timeout"`
	Theme         ThemeConfig       `mapstructure:"theme"`
	Log           LogConfig         `mapstructure:"log"`
	Jobs          map[string]string `mapstructure:"jobs"`
}

// ThemeConfig overrides dialog colors. Empty fields keep the default theme.
type ThemeConfig struct {
	TitleFg  string `mapstructure:"title_fg"`
	TextFg   string `mapstructure:"text_fg"`
	MutedFg  string `mapstructure:"muted_fg"`
	ButtonFg string `mapstructure:"button_fg"`
	ButtonBg string `mapstructure:"button_bg"`
	Border   string `mapstructure:"border"`
	BorderFg string `mapstructure:"border_fg"`
}

// LogConfig controls the debug log. Logging is off when File is empty.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ToTheme merges the overrides into the default dialog theme.
func (c ThemeConfig) ToTheme() waitdialog.Theme {
	t := waitdialog.DefaultTheme()
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&t.TitleFg, c.TitleFg)
	override(&t.TextFg, c.TextFg)
	override(&t.MutedFg, c.MutedFg)
	override(&t.ButtonFg, c.ButtonFg)
	override(&t.ButtonBg, c.ButtonBg)
	override(&t.Border, c.Border)
	override(&t.BorderFg, c.BorderFg)
	return t
}

// JobNames returns the configured job names in sorted order.
func (c *Config) JobNames() []string {
	names := make([]string, 0, len(c.Jobs))
	for name := range c.Jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// configPath returns the full path to the config file
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, Dir, File), nil
}

// Load reads configuration from ~/.config/pleasewait/config.yaml and
// PLEASEWAIT_* environment variables. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("cancel_enabled", true)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.MustBindEnv("label")
	v.MustBindEnv("title")
	v.MustBindEnv("cancel_enabled")
	v.MustBindEnv("timeout")
	v.MustBindEnv("log.level", EnvPrefix+"_LOG_LEVEL")
	v.MustBindEnv("log.file", EnvPrefix+"_LOG_FILE")

	path, err := configPath()
	if err != nil {
		return nil, err
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if readErr := v.ReadInConfig(); readErr != nil {
		if !errors.Is(readErr, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var cfg Config
	if unmarshalErr := v.Unmarshal(&cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %s (in %s)", cfg.Timeout, path)
	}
	for name, command := range cfg.Jobs {
		if command == "" {
			return nil, fmt.Errorf("job %q has an empty command (in %s)", name, path)
		}
	}

	return &cfg, nil
}

// Path returns the path to the config file
func Path() string {
	path, err := configPath()
	if err != nil {
		return filepath.Join("~", Dir, File)
	}
	return path
}
