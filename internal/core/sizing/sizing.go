// Package sizing maps relative dialog size hints to pixels.
package sizing

import "modalkit/internal/core/model"

// Viewport is the drawable area the dialog is centered in.
type Viewport struct {
	Width  float32
	Height float32
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float32
	Height float32
}

// Resolve converts every fractional hint into pixels against the viewport.
// Hints outside the open interval (0, 1) are already absolute and pass through.
func Resolve(hints model.SizeHints, viewport Viewport) model.SizeHints {
	return model.SizeHints{
		Width:     scale(hints.Width, viewport.Width),
		Height:    scale(hints.Height, viewport.Height),
		MinWidth:  scale(hints.MinWidth, viewport.Width),
		MaxWidth:  scale(hints.MaxWidth, viewport.Width),
		MinHeight: scale(hints.MinHeight, viewport.Height),
		MaxHeight: scale(hints.MaxHeight, viewport.Height),
	}
}

// Bounds fits a content size into resolved hints. A zero hint is unset.
// Min wins over max when they conflict; the result never exceeds the viewport.
func Bounds(resolved model.SizeHints, content Size, viewport Viewport) Size {
	return Size{
		Width:  fit(content.Width, resolved.Width, resolved.MinWidth, resolved.MaxWidth, viewport.Width),
		Height: fit(content.Height, resolved.Height, resolved.MinHeight, resolved.MaxHeight, viewport.Height),
	}
}

func scale(value, axis float32) float32 {
	if value > 0 && value < 1 {
		return value * axis
	}
	return value
}

func fit(content, fixed, minimum, maximum, axis float32) float32 {
	value := content
	if fixed > 0 {
		value = fixed
	}
	if maximum > 0 && value > maximum {
		value = maximum
	}
	if minimum > 0 && value < minimum {
		value = minimum
	}
	if axis > 0 && value > axis {
		value = axis
	}
	if value < 0 {
		value = 0
	}
	return value
}
