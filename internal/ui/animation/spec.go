package animation

// Style is the animated appearance of the dialog panel at one instant.
type Style struct {
	Opacity float32 // 0 transparent, 1 opaque
	Scale   float32 // multiplier applied to the panel size
	OffsetX float32 // fraction of the viewport width
	OffsetY float32 // fraction of the viewport height
}

// Resting is the appearance of a fully visible, untransformed panel.
var Resting = Style{Opacity: 1, Scale: 1}

// Interpolator maps animation progress (0 hidden, 1 visible) to a style.
type Interpolator func(progress float32) Style

// SlideFrom is the edge a sliding panel enters from.
type SlideFrom string

const (
	SlideFromTop    SlideFrom = "top"
	SlideFromBottom SlideFrom = "bottom"
	SlideFromLeft   SlideFrom = "left"
	SlideFromRight  SlideFrom = "right"
)

// FadeScale fades the panel in while growing it from minScale to full size.
func FadeScale(minScale float32) Interpolator {
	return func(progress float32) Style {
		return Style{
			Opacity: progress,
			Scale:   minScale + (1-minScale)*progress,
		}
	}
}

// ScaleOnly grows the panel from nothing, fully opaque.
func ScaleOnly() Interpolator {
	return func(progress float32) Style {
		return Style{Opacity: 1, Scale: progress}
	}
}

// Slide moves the panel in from one edge of the viewport.
func Slide(from SlideFrom) Interpolator {
	return func(progress float32) Style {
		remaining := 1 - progress
		style := Style{Opacity: 1, Scale: 1}
		switch from {
		case SlideFromTop:
			style.OffsetY = -remaining
		case SlideFromLeft:
			style.OffsetX = -remaining
		case SlideFromRight:
			style.OffsetX = remaining
		default:
			style.OffsetY = remaining
		}
		return style
	}
}
