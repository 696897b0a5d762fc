// Package window restricts a byte stream to a sub-range of it.
package window

// Sink accepts a stream of bytes, but copies into its destination only the ones
// falling into the [skip, skip+write) range of the stream. Bytes before the range are
// consumed silently, so an upstream source counting written bytes stays unaware of
// the windowing. Once the range is exhausted, every byte is refused.
//
// Sink never errors: a full sink simply stops copying, so the caller is responsible
// for knowing when to stop offering bytes.
type Sink struct {
	dst         []byte
	skip, write int
	pos         int
}

// New returns a sink over dst. The write budget is clamped to len(dst), so the
// destination is never overrun.
func New(dst []byte, skip, write int) *Sink {
	return &Sink{
		dst:   dst,
		skip:  max(skip, 0),
		write: max(min(write, len(dst)), 0),
	}
}

// Put offers a single byte. It returns 1 if the byte was consumed (either
// skipped or copied) and 0 if the sink is full.
func (s *Sink) Put(c byte) (n int) {
	switch {
	case s.skip > 0:
		s.skip--
		return 1
	case s.write > 0:
		s.write--
		s.dst[s.pos] = c
		s.pos++
		return 1
	default:
		return 0
	}
}

// Write offers the bytes one by one, exactly as repeated Put calls would do. It
// implements io.Writer, however n may be less than len(p) with nil error, meaning the
// rest was refused.
func (s *Sink) Write(p []byte) (n int, err error) {
	for _, c := range p {
		consumed := s.Put(c)
		if consumed == 0 {
			break
		}

		n += consumed
	}

	return n, nil
}

// Written returns how many bytes were copied into the destination.
func (s *Sink) Written() int {
	return s.pos
}

// Full reports whether the write budget is spent.
func (s *Sink) Full() bool {
	return s.skip == 0 && s.write == 0
}
