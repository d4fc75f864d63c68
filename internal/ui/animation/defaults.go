package animation

import (
	"time"

	"fyne.io/fyne/v2"
)

// DefaultDuration is the tween length of the stock dialog animation. It is
// shorter than the dialog's settle delay so the panel is at rest when the
// machine reports opened.
const DefaultDuration = 150 * time.Millisecond

// DefaultConfig returns the stock fade and scale animation config.
func DefaultConfig() Config {
	return Config{
		Duration:    DefaultDuration,
		Curve:       fyne.AnimationEaseOut,
		Interpolate: FadeScale(0.9),
	}
}

// NewDefault creates the stock fade and scale animation.
func NewDefault() *Transition {
	return New(DefaultConfig())
}

// NewScale creates an animation that grows the panel from nothing.
func NewScale(duration time.Duration) *Transition {
	return New(Config{Duration: duration, Curve: fyne.AnimationEaseOut, Interpolate: ScaleOnly()})
}

// NewSlide creates an animation that slides the panel in from an edge.
func NewSlide(duration time.Duration, from SlideFrom) *Transition {
	return New(Config{Duration: duration, Curve: fyne.AnimationEaseInOut, Interpolate: Slide(from)})
}
