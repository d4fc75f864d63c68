// Package animation drives the dialog panel between its hidden and visible
// appearance.
package animation

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Animator is the transition collaborator consumed by the dialog.
type Animator interface {
	SetTarget(value float64)
	Style() Style
	SetOnUpdate(handler func())
}

// Config contains animation timing values.
type Config struct {
	Duration    time.Duration
	Curve       fyne.AnimationCurve
	Interpolate Interpolator
}

// Transition tweens a progress value between 0 and 1 with fyne animations.
type Transition struct {
	mu        sync.Mutex
	config    Config
	progress  float32
	target    float32
	animation *fyne.Animation
	onUpdate  func()
}

// New creates a hidden transition.
func New(config Config) *Transition {
	if config.Duration <= 0 {
		config.Duration = DefaultDuration
	}
	if config.Curve == nil {
		config.Curve = fyne.AnimationEaseInOut
	}
	if config.Interpolate == nil {
		config.Interpolate = FadeScale(0.9)
	}
	return &Transition{config: config}
}

// SetTarget starts tweening from the current progress toward value,
// replacing any running tween. Values are clamped to [0, 1].
func (transition *Transition) SetTarget(value float64) {
	target := clamp(float32(value))

	transition.mu.Lock()
	if transition.animation != nil {
		transition.animation.Stop()
		transition.animation = nil
	}
	transition.target = target
	from := transition.progress
	if from == target {
		transition.mu.Unlock()
		transition.notify()
		return
	}
	animation := fyne.NewAnimation(transition.config.Duration, func(step float32) {
		transition.tick(from, target, step)
	})
	animation.Curve = transition.config.Curve
	transition.animation = animation
	transition.mu.Unlock()

	animation.Start()
}

// Target returns the last requested target.
func (transition *Transition) Target() float32 {
	transition.mu.Lock()
	defer transition.mu.Unlock()
	return transition.target
}

// Progress returns the current tween value.
func (transition *Transition) Progress() float32 {
	transition.mu.Lock()
	defer transition.mu.Unlock()
	return transition.progress
}

// Style returns the current animated style snapshot.
func (transition *Transition) Style() Style {
	transition.mu.Lock()
	progress := transition.progress
	interpolate := transition.config.Interpolate
	transition.mu.Unlock()
	return interpolate(progress)
}

// SetOnUpdate sets a handler fired after every tick.
func (transition *Transition) SetOnUpdate(handler func()) {
	transition.mu.Lock()
	defer transition.mu.Unlock()
	transition.onUpdate = handler
}

// Stop halts a running tween where it is.
func (transition *Transition) Stop() {
	transition.mu.Lock()
	defer transition.mu.Unlock()
	if transition.animation != nil {
		transition.animation.Stop()
		transition.animation = nil
	}
}

func (transition *Transition) tick(from, to, step float32) {
	transition.mu.Lock()
	transition.progress = from + (to-from)*step
	if step >= 1 {
		transition.progress = to
	}
	transition.mu.Unlock()
	transition.notify()
}

func (transition *Transition) notify() {
	transition.mu.Lock()
	handler := transition.onUpdate
	transition.mu.Unlock()
	if handler != nil {
		handler()
	}
}

func clamp(value float32) float32 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
