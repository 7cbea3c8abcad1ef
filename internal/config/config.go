// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/xonecas/quizedit/internal/auth"
	"github.com/xonecas/quizedit/internal/theme"
)

// Config is the root configuration structure.
type Config struct {
	LogLevel string      `toml:"log_level"`
	UI       UIConfig    `toml:"ui"`
	Store    StoreConfig `toml:"store"`
	User     UserConfig  `toml:"user"`
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma style the UI palette is derived from.
	// Defaults to "vulcan" if unset.
	SyntaxTheme string `toml:"syntax_theme"`
	// WheelLines is how many rows one mouse wheel notch scrolls.
	WheelLines int `toml:"wheel_lines"`
}

// SyntaxThemeOrDefault returns the configured syntax theme or "vulcan" if unset.
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return theme.Default
	}
	return u.SyntaxTheme
}

// WheelLinesOrDefault returns the configured wheel step or 3 if unset.
func (u UIConfig) WheelLinesOrDefault() int {
	if u.WheelLines <= 0 {
		return 3
	}
	return u.WheelLines
}

// StoreConfig holds the record store settings.
type StoreConfig struct {
	Path string `toml:"path"`
}

// PathOrDefault returns the configured database path or quizedit.db in dataDir.
func (s StoreConfig) PathOrDefault(dataDir string) string {
	if s.Path == "" {
		return filepath.Join(dataDir, "quizedit.db")
	}
	return s.Path
}

// UserConfig names the local author.
type UserConfig struct {
	Name string `toml:"name"`
	Role string `toml:"role"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{LogLevel: "info", User: UserConfig{Role: string(auth.RoleAuthor)}}
}

// Load reads configuration from a TOML file and applies environment variable overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("log_level=%q is invalid: %v", c.LogLevel, err))
		}
	}
	if c.UI.SyntaxTheme != "" && !theme.Exists(c.UI.SyntaxTheme) {
		errs = append(errs, fmt.Errorf("ui.syntax_theme=%q is not a known theme", c.UI.SyntaxTheme))
	}
	if c.UI.WheelLines < 0 {
		errs = append(errs, fmt.Errorf("ui.wheel_lines=%d must not be negative", c.UI.WheelLines))
	}
	if c.User.Role != "" && !auth.Role(c.User.Role).Valid() {
		errs = append(errs, fmt.Errorf("user.role=%q must be one of author, admin, viewer", c.User.Role))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Level returns the parsed log level, info when unset.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"QUIZEDIT_DB", func(v string) {
			if v != "" {
				cfg.Store.Path = v
			}
		}},
		{"QUIZEDIT_USER", func(v string) {
			if v != "" {
				cfg.User.Name = v
			}
		}},
		{"QUIZEDIT_ROLE", func(v string) {
			if v != "" {
				cfg.User.Role = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the quizedit data directory (~/.config/quizedit).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "quizedit"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
