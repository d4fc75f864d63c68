// Package dialog provides a modal dialog widget with an animated, dimmed
// backdrop. The widget is meant to be stacked over the page it covers:
//
//	modal := dialog.New(dialog.DefaultOptions(), content, okButton)
//	window.SetContent(container.NewStack(page, modal))
//	modal.SetOpen(true)
package dialog

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"modalkit/internal/core/lifecycle"
	"modalkit/internal/core/model"
	"modalkit/internal/core/schedule"
	"modalkit/internal/ui/animation"
	"modalkit/internal/ui/overlay"
)

// Style defines the panel surface.
type Style struct {
	Background   color.Color
	CornerRadius float32
	StrokeColor  color.Color
	StrokeWidth  float32
}

// DefaultStyle is a white panel with rounded corners.
func DefaultStyle() Style {
	return Style{
		Background:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		CornerRadius: 8,
	}
}

// Options configures a dialog.
type Options struct {
	Config    model.DialogConfig
	Style     Style
	Animation animation.Animator // nil uses animation.NewDefault
	Scheduler schedule.Scheduler // nil uses a wall clock dispatched with fyne.Do
	OnOpened  func()
	OnClosed  func()
}

// DefaultOptions returns options with the stock config and style.
func DefaultOptions() Options {
	return Options{
		Config: model.DefaultDialogConfig(),
		Style:  DefaultStyle(),
	}
}

// Dialog is a modal panel over a dimmed backdrop.
type Dialog struct {
	widget.BaseWidget

	options   Options
	machine   *lifecycle.Machine
	animation animation.Animator
	backdrop  *overlay.Backdrop
	surface   *canvas.Rectangle
	panel     *fyne.Container
	open      bool
}

// New creates a dialog around content, with actions laid out in a row
// beneath it. If options.Config.Open is set the dialog starts opening.
func New(options Options, content fyne.CanvasObject, actions ...fyne.CanvasObject) *Dialog {
	if options.Animation == nil {
		options.Animation = animation.NewDefault()
	}
	if options.Scheduler == nil {
		options.Scheduler = schedule.NewRealtime(fyne.Do)
	}
	if options.Style.Background == nil {
		options.Style.Background = DefaultStyle().Background
	}

	dialog := &Dialog{
		options:   options,
		animation: options.Animation,
		backdrop:  overlay.NewBackdrop(),
		surface:   canvas.NewRectangle(options.Style.Background),
	}
	dialog.panel = container.NewStack(dialog.surface, overlay.NewAbsorber(), buildBody(content, actions))
	dialog.panel.Hide()
	dialog.applyStyle()

	dialog.machine = lifecycle.New(dialog.machineConfig(), options.Animation, options.Scheduler)
	dialog.machine.SetOnChange(func(lifecycle.State) { dialog.Refresh() })
	dialog.animation.SetOnUpdate(dialog.Refresh)
	dialog.ExtendBaseWidget(dialog)

	if options.Config.Open {
		dialog.open = true
		dialog.machine.Open(options.OnOpened)
	}
	return dialog
}

// SetOpen records the owner's desired state. Only a change of the flag
// starts a transition, so calling it repeatedly with the same value is free.
func (dialog *Dialog) SetOpen(open bool) {
	if dialog.open == open {
		return
	}
	dialog.open = open
	if open {
		dialog.machine.Open(dialog.options.OnOpened)
		return
	}
	dialog.machine.Close(dialog.options.OnClosed)
}

// IsOpen returns the owner's desired state as last set.
func (dialog *Dialog) IsOpen() bool {
	return dialog.open
}

// Open starts opening. A nil callback uses Options.OnOpened.
func (dialog *Dialog) Open(callback func()) {
	dialog.machine.Open(callback)
}

// Close starts closing. A nil callback uses Options.OnClosed.
func (dialog *Dialog) Close(callback func()) {
	dialog.machine.Close(callback)
}

// State returns the lifecycle state.
func (dialog *Dialog) State() lifecycle.State {
	return dialog.machine.State()
}

// Machine exposes the lifecycle machine for observers.
func (dialog *Dialog) Machine() *lifecycle.Machine {
	return dialog.machine
}

// UpdateConfig replaces the dialog config. The open flag is not touched; use
// SetOpen for that.
func (dialog *Dialog) UpdateConfig(config model.DialogConfig) {
	config.Open = dialog.options.Config.Open
	dialog.options.Config = config
	dialog.machine.UpdateConfig(dialog.machineConfig())
}

// SetStyle replaces the panel style.
func (dialog *Dialog) SetStyle(style Style) {
	if style.Background == nil {
		style.Background = DefaultStyle().Background
	}
	dialog.options.Style = style
	dialog.applyStyle()
	dialog.Refresh()
}

// Dispose cancels pending completion timers and closes lifecycle observers.
// The dialog must not be used afterwards.
func (dialog *Dialog) Dispose() {
	dialog.machine.Dispose()
	dialog.animation.SetOnUpdate(nil)
}

// CreateRenderer implements fyne.Widget.
func (dialog *Dialog) CreateRenderer() fyne.WidgetRenderer {
	return &dialogRenderer{
		dialog:  dialog,
		objects: []fyne.CanvasObject{dialog.backdrop, dialog.panel},
	}
}

func (dialog *Dialog) machineConfig() lifecycle.Config {
	config := lifecycle.ConfigFrom(dialog.options.Config)
	config.OnOpened = dialog.options.OnOpened
	config.OnClosed = dialog.options.OnClosed
	return config
}

func (dialog *Dialog) backdropParams() overlay.Params {
	config := dialog.options.Config
	return overlay.Params{
		PointerEvents: dialog.machine.PointerEvents(),
		Visible:       dialog.machine.BackdropVisible(),
		OnPress:       dialog.onBackdropPress,
		Color:         config.Overlay.Color,
		Opacity:       config.Overlay.Opacity,
		Duration:      config.SettleDuration(),
	}
}

func (dialog *Dialog) onBackdropPress() {
	if !dialog.options.Config.CloseOnTouchOutside {
		return
	}
	dialog.machine.Close(nil)
}

func (dialog *Dialog) applyStyle() {
	style := dialog.options.Style
	dialog.surface.CornerRadius = style.CornerRadius
	dialog.surface.StrokeWidth = style.StrokeWidth
	if style.StrokeColor != nil {
		dialog.surface.StrokeColor = style.StrokeColor
	}
}

func buildBody(content fyne.CanvasObject, actions []fyne.CanvasObject) fyne.CanvasObject {
	if content == nil {
		content = layout.NewSpacer()
	}
	if len(actions) == 0 {
		return container.NewPadded(content)
	}
	row := make([]fyne.CanvasObject, 0, len(actions)+1)
	row = append(row, layout.NewSpacer())
	row = append(row, actions...)
	return container.NewPadded(container.NewBorder(nil, container.NewHBox(row...), nil, nil, content))
}
