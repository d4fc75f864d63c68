// Package overlay renders the dimmed, tap-catching surface behind a dialog.
package overlay

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"modalkit/internal/core/model"
)

// Params is everything the dialog tells the backdrop on each refresh.
type Params struct {
	PointerEvents model.PointerEvents
	Visible       bool
	OnPress       func()
	Color         color.NRGBA
	Opacity       float64
	Duration      time.Duration
}

// Backdrop is a full-size dimmed rectangle. Touches reach the press handler
// only while the pointer-events mode intercepts them; otherwise the catcher
// is hidden and taps fall through to whatever is underneath.
type Backdrop struct {
	widget.BaseWidget

	rect    *canvas.Rectangle
	catcher *tapCatcher
	params  Params
	alpha   uint8
	target  uint8
	fade    *fyne.Animation
}

// NewBackdrop creates a transparent, non-intercepting backdrop.
func NewBackdrop() *Backdrop {
	backdrop := &Backdrop{
		rect: canvas.NewRectangle(color.Transparent),
	}
	backdrop.catcher = newTapCatcher(backdrop.press)
	backdrop.catcher.Hide()
	backdrop.ExtendBaseWidget(backdrop)
	return backdrop
}

// Apply updates the backdrop. Alpha changes fade over Params.Duration.
func (backdrop *Backdrop) Apply(params Params) {
	backdrop.params = params

	if params.PointerEvents.Intercepts() {
		backdrop.catcher.Show()
	} else {
		backdrop.catcher.Hide()
	}

	target := uint8(0)
	if params.Visible {
		target = opacityToAlpha(params.Opacity)
	}
	backdrop.fadeTo(target, params.Duration)
}

// Alpha returns the current backdrop alpha.
func (backdrop *Backdrop) Alpha() uint8 {
	return backdrop.alpha
}

// Intercepting reports whether taps currently reach the press handler.
func (backdrop *Backdrop) Intercepting() bool {
	return backdrop.catcher.Visible()
}

// CreateRenderer implements fyne.Widget.
func (backdrop *Backdrop) CreateRenderer() fyne.WidgetRenderer {
	return &backdropRenderer{backdrop: backdrop, objects: []fyne.CanvasObject{backdrop.rect, backdrop.catcher}}
}

func (backdrop *Backdrop) press() {
	if !backdrop.params.PointerEvents.Intercepts() {
		return
	}
	if backdrop.params.OnPress != nil {
		backdrop.params.OnPress()
	}
}

func (backdrop *Backdrop) fadeTo(target uint8, duration time.Duration) {
	if backdrop.fade != nil && backdrop.target == target {
		return
	}
	backdrop.target = target
	if backdrop.fade != nil {
		backdrop.fade.Stop()
		backdrop.fade = nil
	}
	from := backdrop.alpha
	if from == target || duration <= 0 {
		backdrop.setAlpha(target)
		return
	}
	var fade *fyne.Animation
	fade = fyne.NewAnimation(duration, func(step float32) {
		backdrop.setAlpha(uint8(float32(from) + (float32(target)-float32(from))*step))
		if step >= 1 && backdrop.fade == fade {
			backdrop.fade = nil
		}
	})
	fade.Curve = fyne.AnimationLinear
	backdrop.fade = fade
	fade.Start()
}

func (backdrop *Backdrop) setAlpha(alpha uint8) {
	backdrop.alpha = alpha
	fill := backdrop.params.Color
	fill.A = alpha
	backdrop.rect.FillColor = fill
	canvas.Refresh(backdrop.rect)
}

func opacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}

type backdropRenderer struct {
	backdrop *Backdrop
	objects  []fyne.CanvasObject
}

func (renderer *backdropRenderer) Layout(size fyne.Size) {
	for _, object := range renderer.objects {
		object.Move(fyne.NewPos(0, 0))
		object.Resize(size)
	}
}

func (renderer *backdropRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

func (renderer *backdropRenderer) Refresh() {
	canvas.Refresh(renderer.backdrop.rect)
}

func (renderer *backdropRenderer) Objects() []fyne.CanvasObject {
	return renderer.objects
}

func (renderer *backdropRenderer) Destroy() {
	if renderer.backdrop.fade != nil {
		renderer.backdrop.fade.Stop()
	}
}
