// Package config loads plugtrack settings from
// $XDG_CONFIG_HOME/plugtrack/config.yaml, falling back to defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kk-code-lab/plugtrack/internal/store"
	"github.com/kk-code-lab/plugtrack/internal/textutil"
)

type Config struct {
	Store   store.Config  `mapstructure:"store" yaml:"store"`
	Render  RenderConfig  `mapstructure:"render" yaml:"render"`
	Serve   ServeConfig   `mapstructure:"serve" yaml:"serve"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Preview PreviewConfig `mapstructure:"preview" yaml:"preview"`
}

type RenderConfig struct {
	// SafeLinks drops javascript:, data: and similar link targets.
	SafeLinks bool `mapstructure:"safe_links" yaml:"safe_links"`
}

type ServeConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // panic, fatal, error, warn, info, debug, trace
}

type PreviewConfig struct {
	TabWidth int `mapstructure:"tab_width" yaml:"tab_width"`
}

// Default values.
const (
	DefaultDriver   = "sqlite"
	DefaultAddr     = "127.0.0.1:8417"
	DefaultLogLevel = "info"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", DefaultDriver)
	v.SetDefault("store.path", "")
	v.SetDefault("render.safe_links", true)
	v.SetDefault("serve.addr", DefaultAddr)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("preview.tab_width", textutil.DefaultTabWidth)
}

// Load reads the config file at path. An empty path uses the default
// location; a missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}
	v.SetConfigFile(path)
	v.SetEnvPrefix("PLUGTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Store.Path = expandEnv(cfg.Store.Path)
	cfg.Serve.Addr = expandEnv(cfg.Serve.Addr)
	if cfg.Preview.TabWidth <= 0 {
		cfg.Preview.TabWidth = textutil.DefaultTabWidth
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store:   store.Config{Driver: DefaultDriver},
		Render:  RenderConfig{SafeLinks: true},
		Serve:   ServeConfig{Addr: DefaultAddr},
		Log:     LogConfig{Level: DefaultLogLevel},
		Preview: PreviewConfig{TabWidth: textutil.DefaultTabWidth},
	}
}

// expandEnv expands ${VAR} and $VAR references.
func expandEnv(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	return os.ExpandEnv(s)
}

// GetConfigDir returns the XDG config directory for plugtrack.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "plugtrack"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "plugtrack"), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// Save writes cfg as YAML to path, or to the default location if path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
