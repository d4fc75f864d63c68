package preferences

import (
	"strconv"
	"strings"
	"time"

	"modalkit/internal/core/model"
	"modalkit/internal/storage"
)

// Settings is the editable text form of a dialog config.
type Settings struct {
	Width     string
	Height    string
	MinWidth  string
	MaxWidth  string
	MinHeight string
	MaxHeight string

	AnimationMillis string
	OverlayColor    string
	OverlayOpacity  float64
	OverlayEnabled  bool
	PointerEvents   model.PointerEvents

	CloseOnTouchOutside bool
	LegacyTimers        bool
}

// FromConfig renders a dialog config into editable settings.
func FromConfig(config model.DialogConfig) Settings {
	return Settings{
		Width:               formatHint(config.Size.Width),
		Height:              formatHint(config.Size.Height),
		MinWidth:            formatHint(config.Size.MinWidth),
		MaxWidth:            formatHint(config.Size.MaxWidth),
		MinHeight:           formatHint(config.Size.MinHeight),
		MaxHeight:           formatHint(config.Size.MaxHeight),
		AnimationMillis:     strconv.Itoa(int(config.AnimationDuration / time.Millisecond)),
		OverlayColor:        storage.FormatColor(config.Overlay.Color),
		OverlayOpacity:      config.Overlay.Opacity,
		OverlayEnabled:      config.Overlay.Enabled,
		PointerEvents:       config.Overlay.PointerEvents,
		CloseOnTouchOutside: config.CloseOnTouchOutside,
		LegacyTimers:        config.LegacyTimers,
	}
}

// Apply merges the settings into base. Fields that do not parse keep the
// value from base; an empty size field clears the hint.
func (settings Settings) Apply(base model.DialogConfig) model.DialogConfig {
	config := base

	parseHint(settings.Width, &config.Size.Width)
	parseHint(settings.Height, &config.Size.Height)
	parseHint(settings.MinWidth, &config.Size.MinWidth)
	parseHint(settings.MaxWidth, &config.Size.MaxWidth)
	parseHint(settings.MinHeight, &config.Size.MinHeight)
	parseHint(settings.MaxHeight, &config.Size.MaxHeight)

	if millis, err := strconv.Atoi(strings.TrimSpace(settings.AnimationMillis)); err == nil && millis >= 0 {
		config.AnimationDuration = time.Duration(millis) * time.Millisecond
	}
	if parsed, err := storage.ParseColor(settings.OverlayColor); err == nil {
		config.Overlay.Color = parsed
	}
	if settings.OverlayOpacity >= 0 && settings.OverlayOpacity <= 1 {
		config.Overlay.Opacity = settings.OverlayOpacity
	}
	if settings.PointerEvents == model.PointerEventsUnset || settings.PointerEvents.Valid() {
		config.Overlay.PointerEvents = settings.PointerEvents
	}

	config.Overlay.Enabled = settings.OverlayEnabled
	config.CloseOnTouchOutside = settings.CloseOnTouchOutside
	config.LegacyTimers = settings.LegacyTimers
	return config
}

func formatHint(value float32) string {
	if value == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(value), 'f', -1, 32)
}

func parseHint(raw string, target *float32) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*target = 0
		return
	}
	parsed, err := strconv.ParseFloat(raw, 32)
	if err != nil || parsed < 0 {
		return
	}
	*target = float32(parsed)
}
