package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"

	"modalkit/internal/core/lifecycle"
	"modalkit/internal/core/model"
	"modalkit/internal/logging"
	"modalkit/internal/storage"
	"modalkit/internal/ui/animation"
	"modalkit/internal/ui/dialog"
	"modalkit/internal/ui/preferences"
	"modalkit/internal/ui/tray"
	"modalkit/resources"
)

const appName = "modalkit"

type runOptions struct {
	configPath   string
	logLevel     string
	logFile      string
	legacyTimers bool
	animation    string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	options := runOptions{}
	command := &cobra.Command{
		Use:   appName,
		Short: "Modal dialog demo",
		Long: `modalkit shows an animated modal dialog over a page.

The dialog config is read from --config (YAML or TOML, chosen by extension),
defaulting to dialog.yaml in the user config directory. Saving from the
settings window writes back to the same file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(options)
		},
	}

	flags := command.Flags()
	flags.StringVar(&options.configPath, "config", "", "dialog config file (.yaml, .yml or .toml)")
	flags.StringVar(&options.logLevel, "log-level", "info", "log level: debug, info, warn, error, off")
	flags.StringVar(&options.logFile, "log-file", "", "also write JSON logs to this file")
	flags.BoolVar(&options.legacyTimers, "legacy-timers", false, "let every completion timer fire instead of superseding")
	flags.StringVar(&options.animation, "animation", "fade", "panel animation: fade, scale or slide")
	return command
}

func run(options runOptions) error {
	if err := logging.Setup(logging.Config{Path: options.logFile, Level: options.logLevel, Console: true}); err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer func() {
		_ = logging.Close()
	}()
	logger := logging.Component("main")

	animator, err := newAnimator(options.animation)
	if err != nil {
		return err
	}

	config, err := loadConfig(options.configPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", options.configPath).Msg("using default dialog config")
	}
	if options.legacyTimers {
		config.LegacyTimers = true
	}

	fyneApp := app.NewWithID("io.modalkit.demo")
	icon := resources.MustIcon(resources.AppIcon)
	fyneApp.SetIcon(icon)

	window := fyneApp.NewWindow("modalkit")
	window.SetMaster()

	status := widget.NewLabel(statusText(lifecycle.StateClosed))

	var modal *dialog.Dialog
	dialogOptions := dialog.DefaultOptions()
	dialogOptions.Config = config
	dialogOptions.Animation = animator
	dialogOptions.OnOpened = func() {
		logger.Info().Msg("dialog opened")
	}
	dialogOptions.OnClosed = func() {
		logger.Info().Msg("dialog closed")
		modal.SetOpen(false)
	}

	var prefsWindow *preferences.Window
	modal = dialog.New(dialogOptions,
		widget.NewLabelWithStyle("Hello from modalkit", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewButton("Settings", func() { prefsWindow.Show() }),
		widget.NewButton("Close", func() { modal.SetOpen(false) }),
	)

	prefsWindow = preferences.New(fyneApp, config, func(updated model.DialogConfig) {
		config = updated
		modal.UpdateConfig(updated)
		if err := saveConfig(options.configPath, updated); err != nil {
			logger.Error().Err(err).Str("path", options.configPath).Msg("save dialog config")
			return
		}
		logger.Info().Str("path", options.configPath).Msg("dialog config saved")
	})
	prefsWindow.SetOnCancel(func() {
		logger.Debug().Msg("dialog settings discarded")
	})

	watchStatus(modal.Machine().Subscribe(8), status)

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		desktopApp.SetSystemTrayIcon(icon)
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnToggle:      func() { modal.SetOpen(!modal.IsOpen()) },
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		trayManager.Watch(modal.Machine().Subscribe(8))
	} else {
		logger.Debug().Msg("system tray unsupported on this platform")
	}

	page := container.NewBorder(nil, status, nil, nil, container.NewCenter(container.NewVBox(
		widget.NewLabel("Tap the button to present the dialog."),
		widget.NewButton("Open dialog", func() { modal.SetOpen(true) }),
	)))

	window.SetContent(container.NewStack(page, modal))
	window.SetOnClosed(modal.Dispose)
	window.Resize(fyne.NewSize(640, 480))
	window.ShowAndRun()
	return nil
}

// loadConfig reads path, or the per-user config when path is empty.
func loadConfig(path string) (model.DialogConfig, error) {
	if path == "" {
		return storage.Load(appName)
	}
	return storage.LoadFile(path)
}

func saveConfig(path string, config model.DialogConfig) error {
	if path == "" {
		return storage.Save(appName, config)
	}
	return storage.SaveFile(path, config)
}

func newAnimator(name string) (animation.Animator, error) {
	switch name {
	case "", "fade":
		return animation.NewDefault(), nil
	case "scale":
		return animation.NewScale(animation.DefaultDuration), nil
	case "slide":
		return animation.NewSlide(animation.DefaultDuration, animation.SlideFromBottom), nil
	}
	return nil, fmt.Errorf("unknown animation %q", name)
}

func watchStatus(events <-chan lifecycle.Event, label *widget.Label) {
	go func() {
		for event := range events {
			if event.Type == lifecycle.EventSuperseded {
				continue
			}
			text := statusText(event.State)
			fyne.Do(func() { label.SetText(text) })
		}
	}()
}

func statusText(state lifecycle.State) string {
	return fmt.Sprintf("Dialog state: %s", state)
}
