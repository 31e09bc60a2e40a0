package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/apex/log"
	"github.com/jorgegonzalez/rice"
	"github.com/jorgegonzalez/rice/internal/sysinfo"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// DefaultTOML is the commented default configuration, written to the user's
// config directory on first run.
//
//go:embed default.toml
var DefaultTOML []byte

// RelPath is the config file location below the XDG config directory.
const RelPath = "rice/config.toml"

// ErrNotFound is returned when an explicitly requested config file is missing.
var ErrNotFound = errors.New("config file not found")

type Config struct {
	Display  DisplayConfig  `koanf:"display"`
	Info     InfoConfig     `koanf:"info"`
	ASCIIArt ASCIIArtConfig `koanf:"ascii_art"`
	Image    ImageConfig    `koanf:"image"`
}

// DisplayConfig controls the look of the info block.
type DisplayConfig struct {
	ShowLogo              bool              `koanf:"show_logo"`
	ColorValues           bool              `koanf:"color_values"`
	ShowColorsLabel       bool              `koanf:"show_colors_label"`
	DisableStartupMessage bool              `koanf:"disable_startup_message"` // accepted for compatibility, unused
	Gap                   int               `koanf:"gap"`                     // columns between art and info (>= 1)
	Bars                  bool              `koanf:"bars"`                    // usage bars on memory and disk
	FieldColors           map[string]string `koanf:"field_colors"`
}

// InfoConfig selects the fields and their order.
type InfoConfig struct {
	Fields         []string          `koanf:"fields"`
	CustomCommands map[string]string `koanf:"custom_commands"`
	CommandTimeout string            `koanf:"command_timeout"` // Go duration, e.g. "2s"
}

// ASCIIArtConfig selects the art printed next to the info block.
type ASCIIArtConfig struct {
	Source     string `koanf:"source"` // "auto", "builtin", "file", "image" or "none"
	Path       string `koanf:"path"`
	Builtin    string `koanf:"builtin"`
	AutoDetect bool   `koanf:"auto_detect"`
}

// ImageConfig controls raster art.
type ImageConfig struct {
	Filter   string `koanf:"filter"`   // "lanczos", "bilinear" or "nearest"
	Protocol string `koanf:"protocol"` // "auto", "kitty", "iterm2" or "none"
}

// Load reads the configuration. With a custom path the file must exist.
// Otherwise the XDG config file is used, and created from DefaultTOML when
// missing.
func Load(customPath string) (*Config, error) {
	if customPath != "" {
		path := rice.ExpandHome(customPath)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			return nil, err
		}
		return loadFile(path)
	}

	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, DefaultTOML, 0o644); err != nil {
			log.WithError(err).Warnf("could not create default config file at %s", path)
		} else {
			log.Infof("Created default config file at: %s", path)
		}
		return Parse(nil)
	}
	return loadFile(path)
}

// DefaultPath returns $XDG_CONFIG_HOME/rice/config.toml, creating the
// directory if needed.
func DefaultPath() (string, error) {
	path, err := xdg.ConfigFile(RelPath)
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	return path, nil
}

func loadFile(path string) (*Config, error) {
	k, err := defaults()
	if err != nil {
		return nil, err
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return unmarshal(k)
}

// Parse layers data (TOML, may be empty) over the defaults.
func Parse(data []byte) (*Config, error) {
	k, err := defaults()
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	return unmarshal(k)
}

func defaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(DefaultTOML), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse default config: %w", err)
	}
	return k, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.ASCIIArt.Source = strings.ToLower(strings.TrimSpace(cfg.ASCIIArt.Source))
	if cfg.ASCIIArt.Source == "" {
		cfg.ASCIIArt.Source = rice.SourceAuto
	}
	cfg.ASCIIArt.Path = rice.ExpandHome(cfg.ASCIIArt.Path)
	if cfg.Image.Protocol == "" {
		cfg.Image.Protocol = "auto"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, key := range cfg.UnknownFieldColors() {
		log.WithField("field", key).Warnf("unknown color %q, using white", cfg.Display.FieldColors[key])
	}
	for _, key := range cfg.UnknownFields() {
		log.WithField("field", key).Warn("not a builtin field or custom command, skipping")
	}
	return cfg, nil
}

// UnknownFieldColors returns, sorted, the fields whose color name is not
// supported.
func (c *Config) UnknownFieldColors() []string {
	var keys []string
	for key, name := range c.Display.FieldColors {
		if !rice.IsColorName(name) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// UnknownFields returns the configured fields that are neither builtin nor
// backed by a custom command, in configured order.
func (c *Config) UnknownFields() []string {
	builtins := sysinfo.Builtins()
	var keys []string
	for _, key := range c.Info.Fields {
		if _, ok := c.Info.CustomCommands[key]; ok {
			continue
		}
		if !slices.Contains(builtins, key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.ASCIIArt.Source {
	case rice.SourceAuto, rice.SourceBuiltin, rice.SourceFile, rice.SourceImage, rice.SourceNone:
	default:
		return fmt.Errorf("invalid ascii_art.source %q: want auto, builtin, file, image or none", c.ASCIIArt.Source)
	}
	if _, err := rice.ParseFilter(c.Image.Filter); err != nil {
		return fmt.Errorf("invalid image.filter: %w", err)
	}
	if !strings.EqualFold(c.Image.Protocol, "auto") {
		if _, err := rice.ParseProtocol(c.Image.Protocol); err != nil {
			return fmt.Errorf("invalid image.protocol: %w", err)
		}
	}
	if c.Display.Gap < 1 {
		return fmt.Errorf("invalid display.gap %d: must be at least 1", c.Display.Gap)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout parses info.command_timeout.
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Info.CommandTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid info.command_timeout %q: %w", c.Info.CommandTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid info.command_timeout %q: must be positive", c.Info.CommandTimeout)
	}
	return d, nil
}

// Filter returns the configured resize filter.
func (c *Config) Filter() rice.Filter {
	f, _ := rice.ParseFilter(c.Image.Filter)
	return f
}

// ArtConfig converts the [ascii_art] section.
func (c *Config) ArtConfig() rice.ArtConfig {
	return rice.ArtConfig{
		Source:     c.ASCIIArt.Source,
		Path:       c.ASCIIArt.Path,
		Builtin:    c.ASCIIArt.Builtin,
		AutoDetect: c.ASCIIArt.AutoDetect,
	}
}
