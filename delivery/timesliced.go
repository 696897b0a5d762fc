package delivery

import (
	"time"

	"github.com/indigo-web/asyncjson/config"
	"github.com/indigo-web/asyncjson/internal/body"
	"github.com/indigo-web/asyncjson/internal/loop"
	"github.com/indigo-web/asyncjson/jsondoc"
)

// TimeSliced hands the body in SliceSize fragments, yielding to the event loop for Delay
// between every two of them. This bounds how long a single callback may occupy the loop,
// at the cost of the overall latency. The first fragment is delivered immediately.
type TimeSliced struct {
	SliceSize int
	Delay     time.Duration
	Scheduler loop.Scheduler
}

func (t TimeSliced) Deliver(owner Owner, pending *body.Pending, fn Fragment, done func()) *Sequence {
	size := len(pending.Bytes())
	if t.SliceSize > 0 {
		size = min(t.SliceSize, size)
	}

	c := &cursor{
		seq:   &Sequence{pending: pending},
		owner: owner,
		fn:    fn,
		done:  done,
		size:  size,
		delay: t.Delay,
		sched: t.Scheduler,
		// the scratch is owned by this very delivery and reused by its every fragment
		scratch: jsondoc.NewText(config.Buffer{
			Default: size,
			Maximal: size,
			Growth:  config.Growth{Policy: config.Doubling},
		}),
	}
	c.step()

	return c.seq
}

// cursor is the state of a single time-sliced delivery.
type cursor struct {
	seq     *Sequence
	owner   Owner
	fn      Fragment
	done    func()
	offset  int
	size    int
	delay   time.Duration
	sched   loop.Scheduler
	scratch *jsondoc.Text
}

func (c *cursor) step() {
	if c.seq.finished {
		return
	}

	if !c.owner.Alive() {
		c.seq.finish()
		return
	}

	data := c.seq.pending.Bytes()
	if c.offset < len(data) {
		n := min(c.size, len(data)-c.offset)
		c.scratch.Reset()
		// can't fail, as the scratch is exactly the slice size
		_ = c.scratch.AppendRaw(data[c.offset : c.offset+n])
		c.fn(c.scratch, c.offset, len(data))
		c.offset += n
	}

	if c.seq.finished {
		// cancelled from inside the callback
		return
	}

	if c.offset >= len(data) {
		c.seq.finish()
		c.scratch = nil
		c.done()
		return
	}

	c.seq.task = c.sched.AfterFunc(c.delay, c.step)
}
