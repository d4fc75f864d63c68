package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"modalkit/internal/core/model"
	"modalkit/internal/core/schedule"
)

const duration = 200 * time.Millisecond

type recordingAnimator struct {
	targets []float64
}

func (animator *recordingAnimator) SetTarget(value float64) {
	animator.targets = append(animator.targets, value)
}

func newTestMachine(config Config) (*Machine, *schedule.Manual, *recordingAnimator) {
	if config.AnimationDuration == 0 {
		config.AnimationDuration = duration
	}
	clock := schedule.NewManual()
	animator := &recordingAnimator{}
	return New(config, animator, clock), clock, animator
}

func TestMachineStartsClosed(t *testing.T) {
	machine, _, _ := newTestMachine(Config{HaveOverlay: true})

	assert.Equal(t, StateClosed, machine.State())
	assert.False(t, machine.ContentMounted())
	assert.False(t, machine.BackdropVisible())
	assert.Equal(t, model.PointerEventsNone, machine.PointerEvents())
}

func TestOpenSettlesAfterDuration(t *testing.T) {
	machine, clock, animator := newTestMachine(Config{HaveOverlay: true})
	calls := 0

	machine.Open(func() { calls++ })

	assert.Equal(t, StateOpening, machine.State())
	assert.Equal(t, []float64{TargetVisible}, animator.targets)
	assert.True(t, machine.ContentMounted())
	assert.True(t, machine.BackdropVisible())
	assert.Equal(t, model.PointerEventsNone, machine.PointerEvents())

	clock.Advance(duration - time.Millisecond)
	assert.Equal(t, StateOpening, machine.State())
	assert.Zero(t, calls)

	clock.Advance(time.Millisecond)
	assert.Equal(t, StateOpened, machine.State())
	assert.Equal(t, 1, calls)
	assert.Equal(t, model.PointerEventsAuto, machine.PointerEvents())

	clock.Advance(time.Second)
	assert.Equal(t, 1, calls)
}

func TestCloseSettlesAfterDuration(t *testing.T) {
	machine, clock, animator := newTestMachine(Config{HaveOverlay: true})
	machine.Open(nil)
	clock.Advance(duration)
	require.Equal(t, StateOpened, machine.State())

	closed := false
	machine.Close(func() { closed = true })

	assert.Equal(t, StateClosing, machine.State())
	assert.Equal(t, []float64{TargetVisible, TargetHidden}, animator.targets)
	assert.False(t, machine.BackdropVisible())
	assert.True(t, machine.ContentMounted())

	clock.Advance(duration)
	assert.Equal(t, StateClosed, machine.State())
	assert.True(t, closed)
	assert.False(t, machine.ContentMounted())
}

func TestDefaultCallbacks(t *testing.T) {
	opened, closed := 0, 0
	machine, clock, _ := newTestMachine(Config{
		OnOpened: func() { opened++ },
		OnClosed: func() { closed++ },
	})

	machine.Open(nil)
	clock.Advance(duration)
	machine.Close(nil)
	clock.Advance(duration)

	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, closed)

	explicit := false
	machine.Open(func() { explicit = true })
	clock.Advance(duration)
	assert.True(t, explicit)
	assert.Equal(t, 1, opened)
}

func TestRepeatedOpenRestartsTiming(t *testing.T) {
	machine, clock, _ := newTestMachine(Config{})
	var fired []string

	machine.Open(func() { fired = append(fired, "first") })
	clock.Advance(150 * time.Millisecond)
	machine.Open(func() { fired = append(fired, "second") })

	assert.Equal(t, 1, machine.Pending())

	clock.Advance(150 * time.Millisecond)
	assert.Equal(t, StateOpening, machine.State(), "first timer must not settle a superseded request")
	assert.Empty(t, fired)

	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, StateOpened, machine.State())
	assert.Equal(t, []string{"second"}, fired)
	assert.Equal(t, 350*time.Millisecond, clock.Elapsed())
}

func TestOpenedOpenStillRetriggers(t *testing.T) {
	machine, clock, animator := newTestMachine(Config{})
	machine.Open(nil)
	clock.Advance(duration)

	machine.Open(nil)

	assert.Equal(t, StateOpening, machine.State())
	assert.Len(t, animator.targets, 2)
	clock.Advance(duration)
	assert.Equal(t, StateOpened, machine.State())
}

func TestCloseSupersedesOpen(t *testing.T) {
	machine, clock, _ := newTestMachine(Config{})
	opened, closed := false, false

	machine.Open(func() { opened = true })
	clock.Advance(100 * time.Millisecond)
	machine.Close(func() { closed = true })

	clock.Advance(time.Second)

	assert.Equal(t, StateClosed, machine.State())
	assert.False(t, opened)
	assert.True(t, closed)
}

// hookAnimator runs onHide while the machine is handing it the hidden target.
type hookAnimator struct {
	onHide func()
}

func (animator *hookAnimator) SetTarget(value float64) {
	if value == TargetHidden && animator.onHide != nil {
		animator.onHide()
	}
}

func TestSupersededTimerCannotFireDuringTransition(t *testing.T) {
	clock := schedule.NewManual()
	animator := &hookAnimator{}
	machine := New(Config{AnimationDuration: duration}, animator, clock)
	opened := 0

	machine.Open(func() { opened++ })
	clock.Advance(100 * time.Millisecond)

	// the open timer comes due while the close is still being applied
	animator.onHide = func() { clock.Advance(duration) }
	machine.Close(nil)
	animator.onHide = nil
	assert.Equal(t, StateClosing, machine.State())

	clock.Advance(duration)
	assert.Equal(t, StateClosed, machine.State())
	assert.Zero(t, opened)
}

// slowAnimator blocks while hiding, leaving room for timers on other goroutines.
type slowAnimator struct {
	delay time.Duration
}

func (animator *slowAnimator) SetTarget(value float64) {
	if value == TargetHidden {
		time.Sleep(animator.delay)
	}
}

func TestSupersededCallbackNeverRunsWithWallClock(t *testing.T) {
	machine := New(Config{AnimationDuration: 20 * time.Millisecond}, &slowAnimator{delay: 30 * time.Millisecond}, nil)
	opened := atomic.NewInt32(0)

	machine.Open(func() { opened.Inc() })
	time.Sleep(10 * time.Millisecond)
	machine.Close(nil)

	assert.Eventually(t, func() bool { return machine.State() == StateClosed }, time.Second, 5*time.Millisecond)
	assert.Zero(t, opened.Load())
}

func TestEventsStampedFromScheduler(t *testing.T) {
	machine, clock, _ := newTestMachine(Config{})
	events := machine.Subscribe(4)
	start := clock.Now()

	machine.Open(nil)
	clock.Advance(duration)

	first := <-events
	second := <-events
	assert.Equal(t, start, first.At)
	assert.Equal(t, start.Add(duration), second.At)
}

func TestLegacyTimersLastFiredWins(t *testing.T) {
	machine, clock, _ := newTestMachine(Config{LegacyTimers: true})
	var fired []string

	machine.Open(func() { fired = append(fired, "open") })
	clock.Advance(100 * time.Millisecond)
	machine.Close(func() { fired = append(fired, "close") })
	assert.Equal(t, 2, machine.Pending())

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, StateOpened, machine.State(), "stale open timer overwrites the closing state")
	assert.Equal(t, []string{"open"}, fired)

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, StateClosed, machine.State())
	assert.Equal(t, []string{"open", "close"}, fired)
}

func TestLegacyRepeatedOpenSettlesEarly(t *testing.T) {
	machine, clock, _ := newTestMachine(Config{LegacyTimers: true})
	calls := 0

	machine.Open(func() { calls++ })
	clock.Advance(150 * time.Millisecond)
	machine.Open(func() { calls++ })
	clock.Advance(50 * time.Millisecond)

	assert.Equal(t, StateOpened, machine.State())
	assert.Equal(t, 1, calls)

	clock.Advance(150 * time.Millisecond)
	assert.Equal(t, StateOpened, machine.State())
	assert.Equal(t, 2, calls)
}

func TestRapidTogglesConverge(t *testing.T) {
	for _, legacy := range []bool{false, true} {
		machine, clock, _ := newTestMachine(Config{LegacyTimers: legacy})

		machine.Open(nil)
		clock.Advance(30 * time.Millisecond)
		machine.Close(nil)
		clock.Advance(30 * time.Millisecond)
		machine.Open(nil)
		clock.Advance(30 * time.Millisecond)
		assert.True(t, machine.ContentMounted())

		clock.Advance(duration)
		assert.Equal(t, StateOpened, machine.State(), "legacy=%v", legacy)
		assert.True(t, machine.ContentMounted(), "legacy=%v", legacy)
		assert.Zero(t, machine.Pending(), "legacy=%v", legacy)

		machine.Close(nil)
		clock.Advance(10 * time.Millisecond)
		machine.Open(nil)
		clock.Advance(10 * time.Millisecond)
		machine.Close(nil)
		clock.Advance(duration)
		assert.Equal(t, StateClosed, machine.State(), "legacy=%v", legacy)
		assert.False(t, machine.ContentMounted(), "legacy=%v", legacy)
	}
}

func TestPointerEventsOverride(t *testing.T) {
	machine, clock, _ := newTestMachine(Config{PointerEvents: model.PointerEventsAuto})
	assert.Equal(t, model.PointerEventsAuto, machine.PointerEvents())

	machine.Open(nil)
	assert.Equal(t, model.PointerEventsAuto, machine.PointerEvents())

	machine.UpdateConfig(Config{AnimationDuration: duration, PointerEvents: "bogus"})
	assert.Equal(t, model.PointerEventsNone, machine.PointerEvents())
	clock.Advance(duration)
	assert.Equal(t, model.PointerEventsAuto, machine.PointerEvents())
}

func TestOnChangeSeesTransientBeforeRest(t *testing.T) {
	machine, clock, _ := newTestMachine(Config{})
	var seen []State
	machine.SetOnChange(func(state State) { seen = append(seen, state) })

	machine.Open(nil)
	clock.Advance(duration)
	machine.Close(nil)
	clock.Advance(duration)

	assert.Equal(t, []State{StateOpening, StateOpened, StateClosing, StateClosed}, seen)
}

func TestSubscribe(t *testing.T) {
	machine, clock, _ := newTestMachine(Config{})
	events := machine.Subscribe(8)

	machine.Open(nil)
	clock.Advance(50 * time.Millisecond)
	machine.Open(nil)
	clock.Advance(duration)

	var got []EventType
	for len(events) > 0 {
		got = append(got, (<-events).Type)
	}
	assert.Equal(t, []EventType{EventTransition, EventSuperseded, EventTransition, EventSettled}, got)

	machine.Dispose()
	_, ok := <-events
	assert.False(t, ok)
}

func TestDisposeCancelsPending(t *testing.T) {
	machine, clock, _ := newTestMachine(Config{})
	called := false
	machine.Open(func() { called = true })

	machine.Dispose()
	clock.Advance(time.Second)

	assert.False(t, called)
	assert.Equal(t, StateOpening, machine.State())
	assert.Zero(t, clock.Pending())
}

func TestNilAnimatorAndDefaults(t *testing.T) {
	clock := schedule.NewManual()
	machine := New(Config{}, nil, clock)

	machine.Open(nil)
	clock.Advance(model.DefaultAnimationDuration)

	assert.Equal(t, StateOpened, machine.State())
}

func TestConfigFrom(t *testing.T) {
	dialog := model.DefaultDialogConfig()
	dialog.Overlay.PointerEvents = model.PointerEventsBoxOnly
	dialog.LegacyTimers = true

	config := ConfigFrom(dialog)

	assert.Equal(t, Config{
		AnimationDuration: 200 * time.Millisecond,
		HaveOverlay:       true,
		PointerEvents:     model.PointerEventsBoxOnly,
		LegacyTimers:      true,
	}, config)
}
