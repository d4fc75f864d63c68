package model

import (
	"image/color"
	"time"
)

// PointerEvents mirrors the touch interception modes of a visual surface.
type PointerEvents string

const (
	PointerEventsUnset   PointerEvents = ""
	PointerEventsAuto    PointerEvents = "auto"
	PointerEventsNone    PointerEvents = "none"
	PointerEventsBoxNone PointerEvents = "box-none"
	PointerEventsBoxOnly PointerEvents = "box-only"
)

// Valid reports whether the mode is one of the recognized values.
func (mode PointerEvents) Valid() bool {
	switch mode {
	case PointerEventsAuto, PointerEventsNone, PointerEventsBoxNone, PointerEventsBoxOnly:
		return true
	}
	return false
}

// Intercepts reports whether a surface without children catches touches in this mode.
func (mode PointerEvents) Intercepts() bool {
	return mode == PointerEventsAuto || mode == PointerEventsBoxOnly
}

// SizeHints holds dialog size constraints. Values strictly between 0 and 1
// are fractions of the viewport axis, anything else is in pixels.
type SizeHints struct {
	Width     float32
	Height    float32
	MinWidth  float32
	MaxWidth  float32
	MinHeight float32
	MaxHeight float32
}

// OverlayConfig defines the dimmed backdrop.
type OverlayConfig struct {
	Enabled       bool
	PointerEvents PointerEvents
	Color         color.NRGBA
	Opacity       float64
}

// DialogConfig contains the data half of the dialog options.
type DialogConfig struct {
	Size                SizeHints
	Overlay             OverlayConfig
	AnimationDuration   time.Duration
	CloseOnTouchOutside bool
	Open                bool

	// LegacyTimers keeps every completion timer alive instead of letting a
	// new transition supersede the pending one.
	LegacyTimers bool
}

const (
	DefaultAnimationDuration = 200 * time.Millisecond
	DefaultOverlayOpacity    = 0.5
)

// SettleDuration returns duration, or DefaultAnimationDuration when it is
// not positive.
func SettleDuration(duration time.Duration) time.Duration {
	if duration <= 0 {
		return DefaultAnimationDuration
	}
	return duration
}

// SettleDuration is the transition length every part of the dialog uses.
func (config DialogConfig) SettleDuration() time.Duration {
	return SettleDuration(config.AnimationDuration)
}

// DefaultDialogConfig returns the stock dialog configuration.
func DefaultDialogConfig() DialogConfig {
	return DialogConfig{
		Size: SizeHints{
			MinWidth:  0.4,
			MinHeight: 0.4,
			MaxHeight: 1.0,
		},
		Overlay: OverlayConfig{
			Enabled: true,
			Color:   color.NRGBA{R: 0, G: 0, B: 0, A: 255},
			Opacity: DefaultOverlayOpacity,
		},
		AnimationDuration:   DefaultAnimationDuration,
		CloseOnTouchOutside: true,
	}
}
