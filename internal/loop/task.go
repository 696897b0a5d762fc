package loop

import (
	"sync/atomic"
	"time"
)

// Scheduler defers a callback. The callback is guaranteed to be called from the same
// goroutine every other loop callback is called from.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) *Task
}

// Task is a handle of a deferred callback. Cancelling it guarantees the callback won't
// be called, unless it already was.
type Task struct {
	fn        func()
	timer     *time.Timer
	cancelled atomic.Bool
	done      atomic.Bool
}

func newTask(fn func()) *Task {
	return &Task{fn: fn}
}

// Cancel prevents the callback from being called. Returns false if it's too late, or
// the task was already cancelled. Nil task is never cancellable.
func (t *Task) Cancel() bool {
	if t == nil || t.done.Load() || t.cancelled.Swap(true) {
		return false
	}

	if t.timer != nil {
		t.timer.Stop()
	}

	return true
}

func (t *Task) Cancelled() bool {
	return t != nil && t.cancelled.Load()
}

// Done reports whether the callback was already called.
func (t *Task) Done() bool {
	return t != nil && t.done.Load()
}

func (t *Task) run() {
	if t.cancelled.Load() || t.done.Swap(true) {
		return
	}

	t.fn()
}
