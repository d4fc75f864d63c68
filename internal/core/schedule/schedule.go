// Package schedule provides cancellable fire-once tasks.
package schedule

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/atomic"
)

// Task is a pending fire-once callback.
type Task interface {
	// Stop prevents the task from running. It reports whether the task was
	// still pending.
	Stop() bool
}

// Scheduler runs a callback once after a delay and tells the time it
// schedules against.
type Scheduler interface {
	AfterFunc(delay time.Duration, fn func()) Task
	Now() time.Time
}

// Dispatcher runs fn on the thread that owns the UI state.
type Dispatcher func(fn func())

// Realtime schedules on the wall clock and hands firing to a dispatcher.
type Realtime struct {
	clock    clockwork.Clock
	dispatch Dispatcher
}

// NewRealtime creates a wall-clock scheduler. A nil dispatcher runs
// callbacks on the timer goroutine.
func NewRealtime(dispatch Dispatcher) *Realtime {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Realtime{clock: clockwork.NewRealClock(), dispatch: dispatch}
}

// Now returns the wall-clock time.
func (scheduler *Realtime) Now() time.Time {
	return scheduler.clock.Now()
}

// AfterFunc arms a timer for fn.
func (scheduler *Realtime) AfterFunc(delay time.Duration, fn func()) Task {
	task := &realtimeTask{}
	task.timer = scheduler.clock.AfterFunc(delay, func() {
		scheduler.dispatch(func() {
			// Stop may land between the timer firing and the dispatch running.
			if task.done.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return task
}

type realtimeTask struct {
	timer clockwork.Timer
	done  atomic.Bool
}

func (task *realtimeTask) Stop() bool {
	task.timer.Stop()
	return task.done.CompareAndSwap(false, true)
}

// fakeClock is the part of clockwork's fake clock Manual drives.
type fakeClock interface {
	clockwork.Clock
	Advance(delta time.Duration)
}

// Manual is a fake clock. Tasks fire only when Advance moves time past them,
// and they run on the goroutine calling Advance.
type Manual struct {
	clock fakeClock
	start time.Time

	mu    sync.Mutex
	seq   uint64
	tasks map[*manualTask]struct{}
}

// NewManual creates a manual scheduler at time zero.
func NewManual() *Manual {
	clock := clockwork.NewFakeClock()
	return &Manual{
		clock: clock,
		start: clock.Now(),
		tasks: make(map[*manualTask]struct{}),
	}
}

type manualTask struct {
	owner *Manual
	due   time.Time
	seq   uint64
	fn    func()
	timer clockwork.Timer
	fired chan struct{}
}

// AfterFunc queues fn to run once Advance reaches now+delay.
func (manual *Manual) AfterFunc(delay time.Duration, fn func()) Task {
	if delay < 0 {
		delay = 0
	}
	task := &manualTask{
		owner: manual,
		due:   manual.clock.Now().Add(delay),
		fn:    fn,
		fired: make(chan struct{}),
	}
	task.timer = manual.clock.AfterFunc(delay, func() { close(task.fired) })

	manual.mu.Lock()
	manual.seq++
	task.seq = manual.seq
	manual.tasks[task] = struct{}{}
	manual.mu.Unlock()
	return task
}

func (task *manualTask) Stop() bool {
	task.timer.Stop()
	return task.owner.remove(task)
}

// Now returns the fake time.
func (manual *Manual) Now() time.Time {
	return manual.clock.Now()
}

// Elapsed returns how far the clock has been advanced.
func (manual *Manual) Elapsed() time.Duration {
	return manual.clock.Now().Sub(manual.start)
}

// Pending returns the number of queued tasks.
func (manual *Manual) Pending() int {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return len(manual.tasks)
}

// Advance moves the clock forward and runs every task that became due, in
// due order. Tasks due at the same instant run in scheduling order. Tasks
// scheduled by a running task are picked up if they fall inside the window.
func (manual *Manual) Advance(delta time.Duration) {
	target := manual.clock.Now().Add(delta)

	for {
		task := manual.nextDue(target)
		if task == nil {
			break
		}
		wait := task.due.Sub(manual.clock.Now())
		if wait < 0 {
			wait = 0
		}
		// a zero advance still expires timers due right now
		manual.clock.Advance(wait)
		<-task.fired
		if manual.remove(task) {
			task.fn()
		}
	}

	if rest := target.Sub(manual.clock.Now()); rest > 0 {
		manual.clock.Advance(rest)
	}
}

func (manual *Manual) nextDue(target time.Time) *manualTask {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	var next *manualTask
	for task := range manual.tasks {
		if task.due.After(target) {
			continue
		}
		if next == nil || task.due.Before(next.due) || (task.due.Equal(next.due) && task.seq < next.seq) {
			next = task
		}
	}
	return next
}

func (manual *Manual) remove(task *manualTask) bool {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	if _, ok := manual.tasks[task]; !ok {
		return false
	}
	delete(manual.tasks, task)
	return true
}
