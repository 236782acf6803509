// Package config loads the host application configuration from file and
// environment. Env var overrides use prefix INKBAR_.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
	Palette  PaletteConfig
}

// DatabaseConfig holds sqlite settings for the preference store.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds toolbar presentation settings. Multi-word fields carry
// mapstructure tags: the file keys are snake_case and viper's decoder only
// matches field names case-insensitively.
type UIConfig struct {
	Theme       string
	DefaultTool string `mapstructure:"default_tool"`
	Preset      string // full, annotation or diagram
	ReadOnly    bool   `mapstructure:"read_only"`
}

// PaletteConfig optionally replaces the built-in swatch lists. Each list is a
// slice of hex strings; light/dark pairs must be the same length, which the
// palette constructor enforces.
type PaletteConfig struct {
	StrokeLight []string `mapstructure:"stroke_light"`
	StrokeDark  []string `mapstructure:"stroke_dark"`
	FillLight   []string `mapstructure:"fill_light"`
	FillDark    []string `mapstructure:"fill_dark"`
}

// Load reads configuration from file and env.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "inkbar", "inkbar.db"))
	v.SetDefault("ui.theme", "light")
	v.SetDefault("ui.default_tool", "pen")
	v.SetDefault("ui.preset", "full")
	v.SetDefault("ui.read_only", false)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("INKBAR_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "inkbar"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("INKBAR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the demo's theme toggle so the choice survives restarts.
func Save(cfg Config) error {
	path := os.Getenv("INKBAR_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "inkbar", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.default_tool", cfg.UI.DefaultTool)
	v.Set("ui.preset", cfg.UI.Preset)
	v.Set("ui.read_only", cfg.UI.ReadOnly)
	if len(cfg.Palette.StrokeLight) > 0 {
		v.Set("palette.stroke_light", cfg.Palette.StrokeLight)
		v.Set("palette.stroke_dark", cfg.Palette.StrokeDark)
	}
	if len(cfg.Palette.FillLight) > 0 {
		v.Set("palette.fill_light", cfg.Palette.FillLight)
		v.Set("palette.fill_dark", cfg.Palette.FillDark)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
