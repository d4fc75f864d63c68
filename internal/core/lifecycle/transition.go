package lifecycle

import (
	"time"

	"modalkit/internal/core/model"
)

// Animation targets handed to the animator.
const (
	TargetHidden  = 0.0
	TargetVisible = 1.0
)

// Request asks the machine to move toward the open or closed rest state.
type Request struct {
	TargetOpen bool
	OnSettled  func()
}

// EffectKind identifies a side effect produced by a transition.
type EffectKind int

const (
	EffectSetTarget EffectKind = iota
	EffectCancelPending
	EffectStartTimer
	EffectInvokeCallback
)

func (kind EffectKind) String() string {
	switch kind {
	case EffectSetTarget:
		return "set_target"
	case EffectCancelPending:
		return "cancel_pending"
	case EffectStartTimer:
		return "start_timer"
	case EffectInvokeCallback:
		return "invoke_callback"
	default:
		return "unknown"
	}
}

// Effect is an instruction for the machine to carry out.
type Effect struct {
	Kind       EffectKind
	Target     float64       // EffectSetTarget
	Delay      time.Duration // EffectStartTimer
	SettleOpen bool          // EffectStartTimer
	Callback   func()        // EffectStartTimer, EffectInvokeCallback
}

// Begin computes the transient state for a request. Any state accepts any
// request, so a repeated open restarts the timing. Pending timers are
// cancelled before anything else runs.
func Begin(current State, request Request, duration time.Duration, supersede bool) (State, []Effect) {
	next := StateClosing
	target := TargetHidden
	if request.TargetOpen {
		next = StateOpening
		target = TargetVisible
	}

	effects := make([]Effect, 0, 3)
	if supersede {
		effects = append(effects, Effect{Kind: EffectCancelPending})
	}
	effects = append(effects, Effect{Kind: EffectSetTarget, Target: target})
	effects = append(effects, Effect{
		Kind:       EffectStartTimer,
		Delay:      duration,
		SettleOpen: request.TargetOpen,
		Callback:   request.OnSettled,
	})
	return next, effects
}

// Settle computes the rest state reached when a completion timer fires. The
// timer decides the outcome regardless of the current state.
func Settle(current State, open bool, callback func()) (State, []Effect) {
	next := StateClosed
	if open {
		next = StateOpened
	}
	if callback == nil {
		return next, nil
	}
	return next, []Effect{{Kind: EffectInvokeCallback, Callback: callback}}
}

// PointerEventsFor returns the backdrop interception mode. A recognized
// override always wins; otherwise only a fully opened dialog catches touches.
func PointerEventsFor(state State, override model.PointerEvents) model.PointerEvents {
	if override.Valid() {
		return override
	}
	if state == StateOpened {
		return model.PointerEventsAuto
	}
	return model.PointerEventsNone
}

// BackdropVisible reports whether the dimmed surface should be shown.
func BackdropVisible(state State, haveOverlay bool) bool {
	return haveOverlay && (state == StateOpening || state == StateOpened)
}

// ContentMounted reports whether the panel exists at all.
func ContentMounted(state State) bool {
	return state != StateClosed
}
