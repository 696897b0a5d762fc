// Package loop implements a single-goroutine cooperative event loop. Everything posted
// into it runs sequentially, so the state touched only from the loop needs no locking.
package loop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Loop struct {
	queue    chan func()
	quit     chan struct{}
	stopOnce sync.Once
	log      logrus.FieldLogger
}

func New(queueSize int, log logrus.FieldLogger) *Loop {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Loop{
		queue: make(chan func(), queueSize),
		quit:  make(chan struct{}),
		log:   log,
	}
}

// Run processes posted callbacks until the context is done or Stop is called. It must
// be called at most once.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.quit:
			return nil
		case fn := <-l.queue:
			l.call(fn)
		}
	}
}

// Stop makes the loop exit. Callbacks posted but not yet processed are dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.quit)
	})
}

// Stopped returns a channel, closed as soon as the loop is stopped.
func (l *Loop) Stopped() <-chan struct{} {
	return l.quit
}

// Post enqueues the callback. Blocks while the queue is full. Returns false if the
// loop is stopped, meaning the callback won't ever be called.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.quit:
		return false
	default:
	}

	select {
	case l.queue <- fn:
		return true
	case <-l.quit:
		return false
	}
}

// Do posts the callback and waits until it's done. Returns false if the loop stopped
// before the callback was called. Must never be called from the loop itself.
func (l *Loop) Do(fn func()) bool {
	done := make(chan struct{})
	posted := l.Post(func() {
		defer close(done)
		fn()
	})
	if !posted {
		return false
	}

	select {
	case <-done:
		return true
	case <-l.quit:
		// the callback might have completed right before the stop
		select {
		case <-done:
			return true
		default:
			return false
		}
	}
}

// AfterFunc posts the callback into the loop after at least d passes.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Task {
	task := newTask(fn)
	task.timer = time.AfterFunc(d, func() {
		l.Post(task.run)
	})

	return task
}

func (l *Loop) call(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.WithField("panic", fmt.Sprint(r)).Error("loop: recovered from a panic in a callback")
		}
	}()

	fn()
}
