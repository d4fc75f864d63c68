package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"modalkit/internal/core/lifecycle"
)

// MenuSetter is the part of desktop.App the tray needs.
type MenuSetter interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle      func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        MenuSetter
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	callbacks  Callbacks
	state      lifecycle.State
}

// New creates a tray manager with the provided callbacks.
func New(app MenuSetter, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		state:     lifecycle.StateClosed,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	manager.SetState(lifecycle.StateClosed)
	return manager
}

// SetState updates the status and toggle labels.
func (manager *Manager) SetState(state lifecycle.State) {
	manager.state = state
	manager.statusItem.Label = fmt.Sprintf("Dialog: %s", state)
	if state == lifecycle.StateOpened || state == lifecycle.StateOpening {
		manager.toggleItem.Label = "Close dialog"
	} else {
		manager.toggleItem.Label = "Open dialog"
	}
	manager.refreshMenu()
}

// State returns the last state shown.
func (manager *Manager) State() lifecycle.State {
	return manager.state
}

// Watch applies lifecycle events on the UI thread until events is closed.
func (manager *Manager) Watch(events <-chan lifecycle.Event) {
	go func() {
		for event := range events {
			if event.Type == lifecycle.EventSuperseded {
				continue
			}
			state := event.State
			fyne.Do(func() { manager.SetState(state) })
		}
	}()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("modalkit",
		manager.statusItem,
		manager.toggleItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
