// Package storage loads and saves the dialog configuration as YAML or TOML.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"modalkit/internal/core/model"
	"modalkit/internal/logging"
)

const configFileName = "dialog.yaml"

var (
	// ErrUnsupportedFormat is returned for config paths that are neither YAML nor TOML.
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrInvalidColor is returned by ParseColor for malformed hex colors.
	ErrInvalidColor = errors.New("invalid color")
)

type format int

const (
	formatYAML format = iota
	formatTOML
)

type fileSize struct {
	Width     *float32 `yaml:"width,omitempty" toml:"width,omitempty"`
	Height    *float32 `yaml:"height,omitempty" toml:"height,omitempty"`
	MinWidth  *float32 `yaml:"min_width,omitempty" toml:"min_width,omitempty"`
	MaxWidth  *float32 `yaml:"max_width,omitempty" toml:"max_width,omitempty"`
	MinHeight *float32 `yaml:"min_height,omitempty" toml:"min_height,omitempty"`
	MaxHeight *float32 `yaml:"max_height,omitempty" toml:"max_height,omitempty"`
}

type fileOverlay struct {
	Enabled       *bool    `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	PointerEvents string   `yaml:"pointer_events,omitempty" toml:"pointer_events,omitempty"`
	Color         string   `yaml:"color,omitempty" toml:"color,omitempty"`
	Opacity       *float64 `yaml:"opacity,omitempty" toml:"opacity,omitempty"`
}

type fileConfig struct {
	Size                fileSize    `yaml:"size" toml:"size"`
	Overlay             fileOverlay `yaml:"overlay" toml:"overlay"`
	AnimationMillis     *int        `yaml:"animation_ms,omitempty" toml:"animation_ms,omitempty"`
	CloseOnTouchOutside *bool       `yaml:"close_on_touch_outside,omitempty" toml:"close_on_touch_outside,omitempty"`
	Open                bool        `yaml:"open" toml:"open"`
	LegacyTimers        bool        `yaml:"legacy_timers" toml:"legacy_timers"`
}

// Path returns the per-user config path for appName.
func Path(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

// Load reads the per-user config of appName.
// If the config file does not exist, default settings are returned.
func Load(appName string) (model.DialogConfig, error) {
	path, err := Path(appName)
	if err != nil {
		return model.DefaultDialogConfig(), err
	}
	return LoadFile(path)
}

// LoadFile reads a config file, picking the format from its extension.
// Missing files and missing keys fall back to defaults; out of range values
// are logged and replaced by their default.
func LoadFile(path string) (model.DialogConfig, error) {
	config := model.DefaultDialogConfig()
	kind, err := formatOf(path)
	if err != nil {
		return config, err
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read config file: %w", err)
	}

	var fileData fileConfig
	switch kind {
	case formatTOML:
		if _, err := toml.Decode(string(rawData), &fileData); err != nil {
			return config, fmt.Errorf("parse config toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(rawData, &fileData); err != nil {
			return config, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	applyFileConfig(&config, fileData, path)
	return config, nil
}

// Save writes config to the per-user path of appName.
func Save(appName string, config model.DialogConfig) error {
	path, err := Path(appName)
	if err != nil {
		return err
	}
	return SaveFile(path, config)
}

// SaveFile writes config to path in the format named by its extension.
func SaveFile(path string, config model.DialogConfig) error {
	kind, err := formatOf(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := toFileConfig(config)
	var serialized []byte
	switch kind {
	case formatTOML:
		var buffer bytes.Buffer
		if err := toml.NewEncoder(&buffer).Encode(fileData); err != nil {
			return fmt.Errorf("marshal config toml: %w", err)
		}
		serialized = buffer.Bytes()
	default:
		serialized, err = yaml.Marshal(fileData)
		if err != nil {
			return fmt.Errorf("marshal config yaml: %w", err)
		}
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ParseColor parses #rgb, #rrggbb or #rrggbbaa.
func ParseColor(raw string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
	}
	return color.NRGBA{
		R: uint8(value >> 24),
		G: uint8(value >> 16),
		B: uint8(value >> 8),
		A: uint8(value),
	}, nil
}

// FormatColor renders c as #rrggbb, or #rrggbbaa when it is not opaque.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

func applyFileConfig(config *model.DialogConfig, fileData fileConfig, path string) {
	logger := logging.Component("storage").With().Str("path", path).Logger()

	hint := func(name string, target *float32, value *float32) {
		if value == nil {
			return
		}
		if *value < 0 {
			logger.Warn().Str("key", name).Float32("value", *value).Msg("negative size hint ignored")
			return
		}
		*target = *value
	}
	hint("width", &config.Size.Width, fileData.Size.Width)
	hint("height", &config.Size.Height, fileData.Size.Height)
	hint("min_width", &config.Size.MinWidth, fileData.Size.MinWidth)
	hint("max_width", &config.Size.MaxWidth, fileData.Size.MaxWidth)
	hint("min_height", &config.Size.MinHeight, fileData.Size.MinHeight)
	hint("max_height", &config.Size.MaxHeight, fileData.Size.MaxHeight)

	overlay := fileData.Overlay
	if overlay.Enabled != nil {
		config.Overlay.Enabled = *overlay.Enabled
	}
	if overlay.PointerEvents != "" {
		mode := model.PointerEvents(overlay.PointerEvents)
		if mode.Valid() {
			config.Overlay.PointerEvents = mode
		} else {
			logger.Warn().Str("value", overlay.PointerEvents).Msg("unknown pointer events mode ignored")
		}
	}
	if overlay.Color != "" {
		parsed, err := ParseColor(overlay.Color)
		if err != nil {
			logger.Warn().Err(err).Msg("overlay color ignored")
		} else {
			config.Overlay.Color = parsed
		}
	}
	if overlay.Opacity != nil {
		if *overlay.Opacity >= 0 && *overlay.Opacity <= 1 {
			config.Overlay.Opacity = *overlay.Opacity
		} else {
			logger.Warn().Float64("value", *overlay.Opacity).Msg("overlay opacity out of range")
		}
	}

	if fileData.AnimationMillis != nil {
		if *fileData.AnimationMillis >= 0 {
			config.AnimationDuration = time.Duration(*fileData.AnimationMillis) * time.Millisecond
		} else {
			logger.Warn().Int("value", *fileData.AnimationMillis).Msg("negative animation duration ignored")
		}
	}
	if fileData.CloseOnTouchOutside != nil {
		config.CloseOnTouchOutside = *fileData.CloseOnTouchOutside
	}
	config.Open = fileData.Open
	config.LegacyTimers = fileData.LegacyTimers
}

func toFileConfig(config model.DialogConfig) fileConfig {
	size := config.Size
	millis := int(config.AnimationDuration / time.Millisecond)
	return fileConfig{
		Size: fileSize{
			Width:     optional(size.Width),
			Height:    optional(size.Height),
			MinWidth:  optional(size.MinWidth),
			MaxWidth:  optional(size.MaxWidth),
			MinHeight: optional(size.MinHeight),
			MaxHeight: optional(size.MaxHeight),
		},
		Overlay: fileOverlay{
			Enabled:       &config.Overlay.Enabled,
			PointerEvents: string(config.Overlay.PointerEvents),
			Color:         FormatColor(config.Overlay.Color),
			Opacity:       &config.Overlay.Opacity,
		},
		AnimationMillis:     &millis,
		CloseOnTouchOutside: &config.CloseOnTouchOutside,
		Open:                config.Open,
		LegacyTimers:        config.LegacyTimers,
	}
}

func optional(value float32) *float32 {
	return &value
}
