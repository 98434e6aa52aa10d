// Package config loads the semdoc CLI configuration. Values are layered:
// built-in defaults, then the TOML config file, then SEMDOC_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/bjaus/semdoc"
	"github.com/bjaus/semdoc/roff"
)

// EnvPrefix prefixes environment overrides. SEMDOC_PREVIEW_WIDTH sets
// preview.width.
const EnvPrefix = "SEMDOC_"

// ErrInvalidValue is returned for a configuration value out of its domain.
var ErrInvalidValue = errors.New("invalid configuration value")

// Config is the CLI configuration.
type Config struct {
	Format      string  `koanf:"format"`
	Apostrophes string  `koanf:"apostrophes"`
	Preview     Preview `koanf:"preview"`
	Man         Man     `koanf:"man"`
}

// Preview configures the terminal preview.
type Preview struct {
	Style string `koanf:"style"` // glamour style name or path; "auto" detects
	Width int    `koanf:"width"` // word wrap; 0 keeps glamour's default
}

// Man fills the .TH header corners of documents that set none.
type Man struct {
	Source string `koanf:"source"`
	Manual string `koanf:"manual"`
}

func defaults() map[string]any {
	return map[string]any{
		"format":        string(semdoc.Markdown),
		"apostrophes":   "handle",
		"preview.style": "auto",
		"preview.width": 0,
		"man.source":    "",
		"man.manual":    "",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/semdoc/config.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "semdoc", "config.toml")
}

// Load reads the configuration. An empty path means [DefaultPath]; a
// missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := semdoc.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := c.ApostropheMode(); err != nil {
		return err
	}
	if c.Preview.Width < 0 {
		return fmt.Errorf("%w: preview.width %d", ErrInvalidValue, c.Preview.Width)
	}
	return nil
}

// OutputFormat returns the configured default format.
func (c *Config) OutputFormat() (semdoc.Format, error) {
	return semdoc.ParseFormat(c.Format)
}

// ApostropheMode maps the apostrophes setting to its ROFF mode.
func (c *Config) ApostropheMode() (roff.Apostrophes, error) {
	switch c.Apostrophes {
	case "handle":
		return roff.Handle, nil
	case "dont-handle":
		return roff.DontHandle, nil
	default:
		return 0, fmt.Errorf("%w: apostrophes %q (want handle or dont-handle)", ErrInvalidValue, c.Apostrophes)
	}
}

// HeaderExtra returns the .TH corners taken from the configuration: an
// empty date, then source and manual. Trailing empty values are dropped.
func (c *Config) HeaderExtra() []string {
	extra := []string{"", c.Man.Source, c.Man.Manual}
	for len(extra) > 0 && extra[len(extra)-1] == "" {
		extra = extra[:len(extra)-1]
	}
	return extra
}
