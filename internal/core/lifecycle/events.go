package lifecycle

import "time"

// State is the dialog lifecycle position.
type State string

const (
	StateClosed  State = "closed"
	StateOpening State = "opening"
	StateOpened  State = "opened"
	StateClosing State = "closing"
)

// Transient reports whether the state settles on its own after a delay.
func (state State) Transient() bool {
	return state == StateOpening || state == StateClosing
}

// EventType defines the type of lifecycle event.
type EventType string

const (
	EventTransition EventType = "transition"
	EventSettled    EventType = "settled"
	EventSuperseded EventType = "superseded"
)

// Event represents a lifecycle update for observers.
type Event struct {
	Type     EventType
	State    State
	Previous State
	At       time.Time
}
