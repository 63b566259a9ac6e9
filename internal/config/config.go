package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ServeConfig holds configuration for the browser surface.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config holds all runtime configuration for a novella session.
// Values are populated from .novella.yaml, NOVELLA_* env vars, and CLI flags.
type Config struct {
	StoryDir      string      `mapstructure:"story_dir"`
	Locale        string      `mapstructure:"locale"`
	Strict        bool        `mapstructure:"strict"`
	Watch         bool        `mapstructure:"watch"`
	TelemetryPath string      `mapstructure:"telemetry_path"`
	PlaylogPath   string      `mapstructure:"playlog_path"`
	LogFile       string      `mapstructure:"log_file"`
	Verbose       bool        `mapstructure:"verbose"`
	Serve         ServeConfig `mapstructure:"serve"`
}

// Defaults.
const (
	DefaultStoryDir  = "story"
	DefaultLocale    = "ja-JP"
	DefaultServeAddr = "127.0.0.1:8733"
)

// ErrInvalid is wrapped by Load when a value is unusable.
var ErrInvalid = errors.New("config: invalid value")

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("story_dir", DefaultStoryDir)
	viper.SetDefault("locale", DefaultLocale)
	viper.SetDefault("strict", false)
	viper.SetDefault("watch", true)
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("playlog_path", "")
	viper.SetDefault("log_file", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("serve.addr", DefaultServeAddr)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.StoryDir == "" {
		return Config{}, fmt.Errorf("%w: story_dir is empty", ErrInvalid)
	}
	if cfg.Locale == "" {
		return Config{}, fmt.Errorf("%w: locale is empty", ErrInvalid)
	}
	if cfg.Serve.Addr == "" {
		return Config{}, fmt.Errorf("%w: serve.addr is empty", ErrInvalid)
	}
	return cfg, nil
}
