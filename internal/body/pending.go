package body

import (
	"github.com/indigo-web/asyncjson/http/status"
	"github.com/indigo-web/asyncjson/internal/alloc"
)

// Pending reassembles a request body out of partial deliveries into a single buffer.
// The buffer is allocated lazily on the first delivery, sized exactly to the declared
// total length, and exists if and only if 0 < total < maxAllowed and the allocation
// succeeded.
//
// Pending is owned by a single request and must be used from the event loop only.
type Pending struct {
	budget     *alloc.Budget
	buff       []byte
	total      uint64
	maxAllowed uint64
	started    bool
	released   bool
}

func NewPending(maxAllowed uint64, budget *alloc.Budget) *Pending {
	return &Pending{
		budget:     budget,
		maxAllowed: maxAllowed,
	}
}

// Deliver accepts a partial body: chunk is a contiguous piece starting at index of a
// body, which is total bytes long. Total is recorded on the first call and is never
// changed after.
//
// Deliveries may arrive in any order. The transport is responsible for them to not
// overlap and to cover the whole body, however a delivery sticking out of the buffer
// is clamped to it. If there's no buffer (the body is empty or too large), the call is
// accepted, but stores nothing.
func (p *Pending) Deliver(chunk []byte, index, total uint64) {
	if !p.started {
		p.started = true
		p.total = total

		if total > 0 && total < p.maxAllowed {
			p.buff = p.budget.Alloc(total)
		}
	}

	if p.buff == nil || index >= uint64(len(p.buff)) {
		return
	}

	copy(p.buff[index:], chunk)
}

// Started reports whether at least one delivery has happened.
func (p *Pending) Started() bool {
	return p.started
}

// Buffered reports whether the body is being stored.
func (p *Pending) Buffered() bool {
	return p.buff != nil
}

// Discarding reports whether the rest of the body won't be stored anyway, so the
// transport may stop reading it.
func (p *Pending) Discarding() bool {
	return p.started && p.buff == nil
}

// Total returns the declared length of the body.
func (p *Pending) Total() uint64 {
	return p.total
}

// Oversize reports whether the declared length meets or exceeds the limit.
func (p *Pending) Oversize() bool {
	return p.total >= p.maxAllowed
}

// Bytes returns the buffer. The slice is valid until Release is called.
func (p *Pending) Bytes() []byte {
	return p.buff
}

// Err tells why the body can't be handed to the application, or nil if it can. Failed
// allocation is indistinguishable from a too large body.
func (p *Pending) Err() error {
	switch {
	case p.buff != nil:
		return nil
	case p.released:
		return status.ErrInternalServerError
	case p.total == 0:
		return status.ErrEmptyBody
	default:
		return status.ErrBodyTooLarge
	}
}

// Release drops the buffer, returning its memory back to the budget. Repeated calls
// are no-op.
func (p *Pending) Release() {
	if p.buff == nil {
		return
	}

	p.budget.Free(uint64(len(p.buff)))
	p.buff = nil
	p.released = true
}

// Reset releases the buffer and makes the instance ready for a new body.
func (p *Pending) Reset() {
	p.Release()
	p.total = 0
	p.started = false
	p.released = false
}
