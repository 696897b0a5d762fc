package delivery

import (
	"github.com/indigo-web/asyncjson/internal/body"
	"github.com/indigo-web/asyncjson/jsondoc"
)

// SingleShot hands the whole body to the application in one call. The body isn't
// copied: the fragment wraps the accumulated buffer.
type SingleShot struct{}

func (SingleShot) Deliver(owner Owner, pending *body.Pending, fn Fragment, done func()) *Sequence {
	seq := &Sequence{pending: pending}
	if !owner.Alive() {
		seq.finish()
		return seq
	}

	data := pending.Bytes()
	fn(jsondoc.Wrap(data), 0, len(data))
	seq.finish()
	done()

	return seq
}
