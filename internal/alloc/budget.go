package alloc

// Budget accounts memory handed out for request bodies. It's a way to model a device
// with a fixed amount of heap: once the budget is spent, allocations fail instead of
// growing the process. Budget isn't safe for concurrent use and is intended to be used
// from the event loop only.
type Budget struct {
	limit, used uint64
}

// NewBudget returns a budget of limit bytes. Use math.MaxUint64 in order to disable
// the limit.
func NewBudget(limit uint64) *Budget {
	return &Budget{limit: limit}
}

// Alloc returns a zeroed slice of exactly n bytes, or nil if it doesn't fit into what's
// left. Nil budget allocates unconditionally.
func (b *Budget) Alloc(n uint64) []byte {
	if b == nil {
		return make([]byte, n)
	}

	if n > b.limit-b.used {
		return nil
	}

	b.used += n
	return make([]byte, n)
}

// Free returns n bytes back to the budget.
func (b *Budget) Free(n uint64) {
	if b == nil {
		return
	}

	if n > b.used {
		n = b.used
	}

	b.used -= n
}

// Used returns the amount of bytes currently allocated.
func (b *Budget) Used() uint64 {
	if b == nil {
		return 0
	}

	return b.used
}
