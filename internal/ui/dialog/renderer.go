package dialog

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"modalkit/internal/core/sizing"
)

// panelHideOpacity is the animated opacity below which the panel is not drawn,
// since fyne cannot fade arbitrary child content.
const panelHideOpacity = 0.01

type dialogRenderer struct {
	dialog  *Dialog
	objects []fyne.CanvasObject
}

func (renderer *dialogRenderer) Layout(size fyne.Size) {
	dialog := renderer.dialog
	dialog.backdrop.Move(fyne.NewPos(0, 0))
	dialog.backdrop.Resize(size)

	if !dialog.machine.ContentMounted() {
		return
	}

	viewport := sizing.Viewport{Width: size.Width, Height: size.Height}
	resolved := sizing.Resolve(dialog.options.Config.Size, viewport)
	minSize := dialog.panel.MinSize()
	box := sizing.Bounds(resolved, sizing.Size{Width: minSize.Width, Height: minSize.Height}, viewport)

	style := dialog.animation.Style()
	width := box.Width * style.Scale
	height := box.Height * style.Scale
	x := (size.Width-width)/2 + style.OffsetX*size.Width
	y := (size.Height-height)/2 + style.OffsetY*size.Height

	dialog.panel.Resize(fyne.NewSize(width, height))
	dialog.panel.Move(fyne.NewPos(x, y))
}

func (renderer *dialogRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

// Refresh pushes the derived lifecycle values into the collaborators.
func (renderer *dialogRenderer) Refresh() {
	dialog := renderer.dialog
	dialog.backdrop.Apply(dialog.backdropParams())

	if !dialog.machine.ContentMounted() {
		dialog.backdrop.Hide()
		dialog.panel.Hide()
		return
	}
	dialog.backdrop.Show()

	style := dialog.animation.Style()
	dialog.surface.FillColor = fade(dialog.options.Style.Background, style.Opacity)
	if style.Opacity < panelHideOpacity {
		dialog.panel.Hide()
	} else {
		dialog.panel.Show()
	}

	renderer.Layout(dialog.Size())
	canvas.Refresh(dialog.surface)
}

func (renderer *dialogRenderer) Objects() []fyne.CanvasObject {
	return renderer.objects
}

func (renderer *dialogRenderer) Destroy() {
}

func fade(base color.Color, opacity float32) color.Color {
	if opacity >= 1 {
		return base
	}
	if opacity < 0 {
		opacity = 0
	}
	fill := color.NRGBAModel.Convert(base).(color.NRGBA)
	fill.A = uint8(float32(fill.A) * opacity)
	return fill
}
