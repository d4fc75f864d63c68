// Package lifecycle implements the open/close state machine of a modal dialog.
package lifecycle

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"modalkit/internal/core/model"
	"modalkit/internal/core/schedule"
	"modalkit/internal/logging"
)

// Animator receives the animation target for every transition.
type Animator interface {
	SetTarget(value float64)
}

// Config contains runtime options for the machine.
type Config struct {
	AnimationDuration time.Duration
	HaveOverlay       bool
	PointerEvents     model.PointerEvents
	LegacyTimers      bool
	OnOpened          func()
	OnClosed          func()
}

// ConfigFrom copies the machine fields out of a dialog config.
func ConfigFrom(dialog model.DialogConfig) Config {
	return Config{
		AnimationDuration: dialog.SettleDuration(),
		HaveOverlay:       dialog.Overlay.Enabled,
		PointerEvents:     dialog.Overlay.PointerEvents,
		LegacyTimers:      dialog.LegacyTimers,
	}
}

// Machine owns the dialog state and its completion timers.
type Machine struct {
	mu        sync.Mutex
	config    Config
	animator  Animator
	scheduler schedule.Scheduler
	state     State
	pending   map[schedule.Task]struct{}
	onChange  func(State)
	events    []chan Event
	logger    zerolog.Logger
}

// New creates a closed machine. A nil animator is allowed.
func New(config Config, animator Animator, scheduler schedule.Scheduler) *Machine {
	config.AnimationDuration = model.SettleDuration(config.AnimationDuration)
	if scheduler == nil {
		scheduler = schedule.NewRealtime(nil)
	}
	return &Machine{
		config:    config,
		animator:  animator,
		scheduler: scheduler,
		state:     StateClosed,
		pending:   make(map[schedule.Task]struct{}),
		logger:    logging.Component("lifecycle"),
	}
}

// State returns the current state.
func (machine *Machine) State() State {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.state
}

// PointerEvents returns the backdrop interception mode for the current state.
func (machine *Machine) PointerEvents() model.PointerEvents {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return PointerEventsFor(machine.state, machine.config.PointerEvents)
}

// BackdropVisible reports whether the backdrop is shown in the current state.
func (machine *Machine) BackdropVisible() bool {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return BackdropVisible(machine.state, machine.config.HaveOverlay)
}

// ContentMounted reports whether the panel is mounted in the current state.
func (machine *Machine) ContentMounted() bool {
	return ContentMounted(machine.State())
}

// Pending returns the number of completion timers still armed.
func (machine *Machine) Pending() int {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return len(machine.pending)
}

// SetOnChange registers a synchronous state change handler.
func (machine *Machine) SetOnChange(handler func(State)) {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	machine.onChange = handler
}

// Subscribe registers a new observer channel. Slow observers drop events.
func (machine *Machine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	machine.mu.Lock()
	machine.events = append(machine.events, ch)
	machine.mu.Unlock()
	return ch
}

// UpdateConfig replaces the runtime configuration. Pending timers keep the
// duration they were armed with.
func (machine *Machine) UpdateConfig(config Config) {
	config.AnimationDuration = model.SettleDuration(config.AnimationDuration)
	machine.mu.Lock()
	machine.config = config
	state := machine.state
	handler := machine.onChange
	machine.mu.Unlock()

	if handler != nil {
		handler(state)
	}
}

// Open starts the transition to opened. A nil callback falls back to OnOpened.
func (machine *Machine) Open(callback func()) {
	if callback == nil {
		machine.mu.Lock()
		callback = machine.config.OnOpened
		machine.mu.Unlock()
	}
	machine.Request(Request{TargetOpen: true, OnSettled: callback})
}

// Close starts the transition to closed. A nil callback falls back to OnClosed.
func (machine *Machine) Close(callback func()) {
	if callback == nil {
		machine.mu.Lock()
		callback = machine.config.OnClosed
		machine.mu.Unlock()
	}
	machine.Request(Request{TargetOpen: false, OnSettled: callback})
}

// Request enters the transient state synchronously and arms the completion timer.
func (machine *Machine) Request(request Request) {
	machine.mu.Lock()
	previous := machine.state
	next, effects := Begin(previous, request, machine.config.AnimationDuration, !machine.config.LegacyTimers)
	machine.state = next
	// Superseded timers leave pending together with the state change, so one
	// firing on another goroutine sees itself cancelled when it settles.
	var superseded []schedule.Task
	if cancelsPending(effects) {
		superseded = machine.takePendingLocked()
	}
	machine.mu.Unlock()

	machine.logger.Debug().
		Str("from", string(previous)).
		Str("to", string(next)).
		Msg("dialog transition")

	machine.apply(effects, superseded)
	machine.notify(Event{Type: EventTransition, State: next, Previous: previous, At: machine.scheduler.Now()})
}

// Dispose cancels every pending timer and closes observer channels.
func (machine *Machine) Dispose() {
	machine.mu.Lock()
	tasks := machine.takePendingLocked()
	events := machine.events
	machine.events = nil
	machine.onChange = nil
	machine.mu.Unlock()

	for _, task := range tasks {
		task.Stop()
	}
	for _, ch := range events {
		close(ch)
	}
}

func (machine *Machine) apply(effects []Effect, superseded []schedule.Task) {
	for _, effect := range effects {
		switch effect.Kind {
		case EffectSetTarget:
			if machine.animator != nil {
				machine.animator.SetTarget(effect.Target)
			}
		case EffectCancelPending:
			machine.stopSuperseded(superseded)
		case EffectStartTimer:
			machine.startTimer(effect)
		case EffectInvokeCallback:
			if effect.Callback != nil {
				effect.Callback()
			}
		}
	}
}

func (machine *Machine) stopSuperseded(tasks []schedule.Task) {
	state := machine.State()
	stopped := 0
	for _, task := range tasks {
		if task.Stop() {
			stopped++
		}
	}
	if stopped > 0 {
		machine.logger.Debug().Int("timers", stopped).Msg("superseded pending completion")
		machine.emit(Event{Type: EventSuperseded, State: state, At: machine.scheduler.Now()})
	}
}

func (machine *Machine) startTimer(effect Effect) {
	var task schedule.Task
	armed := make(chan struct{})
	task = machine.scheduler.AfterFunc(effect.Delay, func() {
		<-armed
		machine.settle(task, effect.SettleOpen, effect.Callback)
	})

	machine.mu.Lock()
	machine.pending[task] = struct{}{}
	machine.mu.Unlock()
	close(armed)
}

func (machine *Machine) settle(task schedule.Task, open bool, callback func()) {
	machine.mu.Lock()
	if _, ok := machine.pending[task]; !ok {
		machine.mu.Unlock()
		return
	}
	delete(machine.pending, task)
	previous := machine.state
	next, effects := Settle(previous, open, callback)
	machine.state = next
	machine.mu.Unlock()

	machine.logger.Debug().
		Str("from", string(previous)).
		Str("to", string(next)).
		Msg("dialog settled")

	machine.notify(Event{Type: EventSettled, State: next, Previous: previous, At: machine.scheduler.Now()})
	machine.apply(effects, nil)
}

func cancelsPending(effects []Effect) bool {
	for _, effect := range effects {
		if effect.Kind == EffectCancelPending {
			return true
		}
	}
	return false
}

func (machine *Machine) takePendingLocked() []schedule.Task {
	tasks := make([]schedule.Task, 0, len(machine.pending))
	for task := range machine.pending {
		tasks = append(tasks, task)
	}
	machine.pending = make(map[schedule.Task]struct{})
	return tasks
}

func (machine *Machine) notify(event Event) {
	machine.mu.Lock()
	handler := machine.onChange
	machine.mu.Unlock()
	if handler != nil {
		handler(event.State)
	}
	machine.emit(event)
}

func (machine *Machine) emit(event Event) {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	for _, ch := range machine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
