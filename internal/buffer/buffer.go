package buffer

// Grow returns the new capacity for a buffer of the current capacity, which must host
// at least required bytes. Result less than required is treated as required.
type Grow func(capacity, required int) int

// Double doubles the capacity until the required amount fits.
func Double(capacity, required int) int {
	if capacity == 0 {
		return required
	}

	for capacity < required {
		capacity *= 2
	}

	return capacity
}

// Chunks grows the capacity by a whole number of step-sized chunks.
func Chunks(step int) Grow {
	if step <= 0 {
		return Double
	}

	return func(capacity, required int) int {
		lack := required - capacity
		return capacity + (lack+step-1)/step*step
	}
}

// Buffer is an append-only slice of data, growing by an explicit policy instead of the
// runtime's append heuristics, and never beyond maxSize.
type Buffer struct {
	memory  []byte
	maxSize int
	grow    Grow
}

func New(initialSize, maxSize int, grow Grow) Buffer {
	if grow == nil {
		grow = Double
	}

	return Buffer{
		memory:  make([]byte, 0, min(initialSize, maxSize)),
		maxSize: maxSize,
		grow:    grow,
	}
}

// From returns a buffer already hosting the data, which is used without copying. The
// buffer can't grow beyond the data's length.
func From(data []byte) Buffer {
	return Buffer{
		memory:  data,
		maxSize: len(data),
		grow:    Double,
	}
}

// Append writes data, checking whether the new amount of elements (bytes) doesn't exceed the
// limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(elements []byte) (ok bool) {
	if len(b.memory)+len(elements) > b.maxSize {
		return false
	}

	b.reserve(len(b.memory) + len(elements))
	b.memory = append(b.memory, elements...)
	return true
}

// AppendString is Append, but for strings.
func (b *Buffer) AppendString(str string) (ok bool) {
	if len(b.memory)+len(str) > b.maxSize {
		return false
	}

	b.reserve(len(b.memory) + len(str))
	b.memory = append(b.memory, str...)
	return true
}

// AppendByte writes a single byte, checking whether it won't exceed the limit.
func (b *Buffer) AppendByte(c byte) (ok bool) {
	if len(b.memory)+1 > b.maxSize {
		return false
	}

	b.reserve(len(b.memory) + 1)
	b.memory = append(b.memory, c)
	return true
}

func (b *Buffer) reserve(required int) {
	if required <= cap(b.memory) {
		return
	}

	newcap := min(max(b.grow(cap(b.memory), required), required), b.maxSize)
	memory := make([]byte, len(b.memory), newcap)
	copy(memory, b.memory)
	b.memory = memory
}

// Bytes returns the written data without copying.
func (b *Buffer) Bytes() []byte {
	return b.memory
}

func (b *Buffer) Len() int {
	return len(b.memory)
}

func (b *Buffer) Cap() int {
	return cap(b.memory)
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
