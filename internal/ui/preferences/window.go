package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"modalkit/internal/core/model"
)

const defaultPointerLabel = "default"

var pointerOptions = []string{
	defaultPointerLabel,
	string(model.PointerEventsAuto),
	string(model.PointerEventsNone),
	string(model.PointerEventsBoxNone),
	string(model.PointerEventsBoxOnly),
}

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	config   model.DialogConfig
	onSave   func(model.DialogConfig)
	onCancel func()

	width     *widget.Entry
	height    *widget.Entry
	minWidth  *widget.Entry
	maxWidth  *widget.Entry
	minHeight *widget.Entry
	maxHeight *widget.Entry
	duration  *widget.Entry
	color     *widget.Entry
	opacity   *widget.Slider
	overlay   *widget.Check
	pointer   *widget.Select
	outside   *widget.Check
	legacy    *widget.Check
}

// New creates a preferences window editing config.
func New(app fyne.App, config model.DialogConfig, onSave func(model.DialogConfig)) *Window {
	window := app.NewWindow("Dialog Settings")

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		width:     widget.NewEntry(),
		height:    widget.NewEntry(),
		minWidth:  widget.NewEntry(),
		maxWidth:  widget.NewEntry(),
		minHeight: widget.NewEntry(),
		maxHeight: widget.NewEntry(),
		duration:  widget.NewEntry(),
		color:     widget.NewEntry(),
		opacity:   widget.NewSlider(0, 1),
		overlay:   widget.NewCheck("Dim the page behind the dialog", nil),
		pointer:   widget.NewSelect(pointerOptions, nil),
		outside:   widget.NewCheck("Close on tap outside", nil),
		legacy:    widget.NewCheck("Legacy completion timers", nil),
	}
	prefs.opacity.Step = 0.05
	prefs.width.SetPlaceHolder("content")
	prefs.height.SetPlaceHolder("content")

	form := widget.NewForm(
		widget.NewFormItem("Width", prefs.width),
		widget.NewFormItem("Height", prefs.height),
		widget.NewFormItem("Min width", prefs.minWidth),
		widget.NewFormItem("Max width", prefs.maxWidth),
		widget.NewFormItem("Min height", prefs.minHeight),
		widget.NewFormItem("Max height", prefs.maxHeight),
		widget.NewFormItem("Animation (ms)", prefs.duration),
		widget.NewFormItem("Overlay color", prefs.color),
		widget.NewFormItem("Overlay opacity", prefs.opacity),
		widget.NewFormItem("Overlay touches", prefs.pointer),
	)

	body := container.NewVBox(
		widget.NewLabelWithStyle("Sizes below 1 are fractions of the window", fyne.TextAlignLeading, fyne.TextStyle{Italic: true}),
		form,
		prefs.overlay,
		prefs.outside,
		prefs.legacy,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", prefs.handleCancel)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, body))
	window.Resize(fyne.NewSize(420, 520))

	prefs.UpdateConfig(config)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetOnCancel registers a handler for the cancel button.
func (prefs *Window) SetOnCancel(handler func()) {
	prefs.onCancel = handler
}

// UpdateConfig replaces window values.
func (prefs *Window) UpdateConfig(config model.DialogConfig) {
	prefs.config = config
	settings := FromConfig(config)

	prefs.width.SetText(settings.Width)
	prefs.height.SetText(settings.Height)
	prefs.minWidth.SetText(settings.MinWidth)
	prefs.maxWidth.SetText(settings.MaxWidth)
	prefs.minHeight.SetText(settings.MinHeight)
	prefs.maxHeight.SetText(settings.MaxHeight)
	prefs.duration.SetText(settings.AnimationMillis)
	prefs.color.SetText(settings.OverlayColor)
	prefs.opacity.SetValue(settings.OverlayOpacity)
	prefs.overlay.SetChecked(settings.OverlayEnabled)
	prefs.outside.SetChecked(settings.CloseOnTouchOutside)
	prefs.legacy.SetChecked(settings.LegacyTimers)
	if settings.PointerEvents == model.PointerEventsUnset {
		prefs.pointer.SetSelected(defaultPointerLabel)
	} else {
		prefs.pointer.SetSelected(string(settings.PointerEvents))
	}
}

func (prefs *Window) settings() Settings {
	pointer := model.PointerEvents(prefs.pointer.Selected)
	if prefs.pointer.Selected == defaultPointerLabel {
		pointer = model.PointerEventsUnset
	}
	return Settings{
		Width:               prefs.width.Text,
		Height:              prefs.height.Text,
		MinWidth:            prefs.minWidth.Text,
		MaxWidth:            prefs.maxWidth.Text,
		MinHeight:           prefs.minHeight.Text,
		MaxHeight:           prefs.maxHeight.Text,
		AnimationMillis:     prefs.duration.Text,
		OverlayColor:        prefs.color.Text,
		OverlayOpacity:      prefs.opacity.Value,
		OverlayEnabled:      prefs.overlay.Checked,
		PointerEvents:       pointer,
		CloseOnTouchOutside: prefs.outside.Checked,
		LegacyTimers:        prefs.legacy.Checked,
	}
}

func (prefs *Window) handleCancel() {
	prefs.window.Hide()
	prefs.UpdateConfig(prefs.config)
	if prefs.onCancel != nil {
		prefs.onCancel()
	}
}

func (prefs *Window) handleSave() {
	config := prefs.settings().Apply(prefs.config)
	prefs.config = config
	if prefs.onSave != nil {
		prefs.onSave(config)
	}
	prefs.window.Hide()
}
