// Package delivery hands a reassembled request body to the application, either at
// once or fragment by fragment.
package delivery

import (
	"fmt"

	"github.com/indigo-web/asyncjson/config"
	"github.com/indigo-web/asyncjson/internal/body"
	"github.com/indigo-web/asyncjson/internal/loop"
	"github.com/indigo-web/asyncjson/jsondoc"
)

// Fragment receives a piece of the body starting at offset of a body, which is total
// bytes long. The text is valid only during the call.
type Fragment func(text *jsondoc.Text, offset, total int)

// Owner is whoever the body belongs to. Once it isn't alive anymore, the delivery stops
// without calling anything.
type Owner interface {
	Alive() bool
}

// Strategy hands the pending body to fn and calls done afterwards, releasing the body.
// The body must be buffered. Both callbacks are called from the event loop.
type Strategy interface {
	Deliver(owner Owner, pending *body.Pending, fn Fragment, done func()) *Sequence
}

// New returns the strategy chosen by the config. TimeSliced strategy defers its
// continuations via the scheduler.
func New(cfg config.Delivery, sched loop.Scheduler) (Strategy, error) {
	switch cfg.Strategy {
	case config.SingleShot:
		return SingleShot{}, nil
	case config.TimeSliced:
		if sched == nil {
			return nil, fmt.Errorf("delivery: %s strategy requires a scheduler", cfg.Strategy)
		}

		return TimeSliced{
			SliceSize: cfg.SliceSize,
			Delay:     cfg.Delay,
			Scheduler: sched,
		}, nil
	default:
		return nil, fmt.Errorf("delivery: unknown strategy %q", cfg.Strategy)
	}
}

// Sequence is a handle of a delivery. It's finished either when the last fragment was
// delivered, or when it was cancelled.
type Sequence struct {
	task     *loop.Task
	pending  *body.Pending
	finished bool
}

// Cancel stops the delivery: no more fragments are delivered, done isn't called and the
// body is released. Returns false if the sequence is already finished.
func (s *Sequence) Cancel() bool {
	if s == nil || s.finished {
		return false
	}

	s.task.Cancel()
	s.finish()
	return true
}

func (s *Sequence) Finished() bool {
	return s == nil || s.finished
}

func (s *Sequence) finish() {
	s.finished = true
	s.task = nil
	s.pending.Release()
}
