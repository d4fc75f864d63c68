package preferences

import (
	"image/color"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modalkit/internal/core/model"
)

func TestSettingsRoundTripDefaults(t *testing.T) {
	config := model.DefaultDialogConfig()
	settings := FromConfig(config)

	assert.Equal(t, "0.4", settings.MinWidth)
	assert.Equal(t, "1", settings.MaxHeight)
	assert.Empty(t, settings.Width)
	assert.Equal(t, "200", settings.AnimationMillis)
	assert.Equal(t, "#000000", settings.OverlayColor)
	assert.Equal(t, config, settings.Apply(config))
}

func TestApplyKeepsBaseOnInvalidInput(t *testing.T) {
	base := model.DefaultDialogConfig()
	settings := FromConfig(base)
	settings.MinWidth = "wide"
	settings.MaxWidth = "-4"
	settings.AnimationMillis = "soon"
	settings.OverlayColor = "#nope"
	settings.OverlayOpacity = 7
	settings.PointerEvents = "sideways"

	config := settings.Apply(base)

	assert.Equal(t, base, config)
}

func TestApplyParsesEdits(t *testing.T) {
	base := model.DefaultDialogConfig()
	settings := FromConfig(base)
	settings.Width = "0.5"
	settings.MinHeight = ""
	settings.AnimationMillis = "75"
	settings.OverlayColor = "#ff0000"
	settings.PointerEvents = model.PointerEventsBoxNone
	settings.LegacyTimers = true

	config := settings.Apply(base)

	assert.Equal(t, float32(0.5), config.Size.Width)
	assert.Zero(t, config.Size.MinHeight)
	assert.Equal(t, 75*time.Millisecond, config.AnimationDuration)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, config.Overlay.Color)
	assert.Equal(t, model.PointerEventsBoxNone, config.Overlay.PointerEvents)
	assert.True(t, config.LegacyTimers)
}

func TestWindowSavesEditedConfig(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved *model.DialogConfig
	prefs := New(app, model.DefaultDialogConfig(), func(config model.DialogConfig) { saved = &config })
	assert.Equal(t, defaultPointerLabel, prefs.pointer.Selected)

	prefs.maxWidth.SetText("480")
	prefs.outside.SetChecked(false)
	prefs.pointer.SetSelected(string(model.PointerEventsAuto))
	prefs.handleSave()

	require.NotNil(t, saved)
	assert.Equal(t, float32(480), saved.Size.MaxWidth)
	assert.False(t, saved.CloseOnTouchOutside)
	assert.Equal(t, model.PointerEventsAuto, saved.Overlay.PointerEvents)
}

func TestWindowCancelRestoresFields(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	saved := false
	cancelled := false
	prefs := New(app, model.DefaultDialogConfig(), func(model.DialogConfig) { saved = true })
	prefs.SetOnCancel(func() { cancelled = true })

	prefs.maxWidth.SetText("999")
	prefs.handleCancel()

	assert.True(t, cancelled)
	assert.False(t, saved)
	assert.Empty(t, prefs.maxWidth.Text)
}
