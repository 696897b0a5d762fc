package window

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func feed(t *testing.T, data string, skip, write int) (window string, consumed int) {
	dst := make([]byte, write)
	sink := New(dst, skip, write)
	n, err := sink.Write([]byte(data))
	require.NoError(t, err)

	return string(dst[:sink.Written()]), n
}

func TestSink(t *testing.T) {
	const sample = "Hello, world!"

	t.Run("window inside the stream", func(t *testing.T) {
		for skip := 0; skip <= len(sample); skip++ {
			for write := 0; skip+write <= len(sample); write++ {
				window, consumed := feed(t, sample, skip, write)
				require.Equal(t, sample[skip:skip+write], window)
				require.Equal(t, skip+write, consumed)
			}
		}
	})

	t.Run("window past the end", func(t *testing.T) {
		for skip := 0; skip <= len(sample); skip++ {
			write := len(sample) - skip + 5
			window, consumed := feed(t, sample, skip, write)
			require.Equal(t, sample[skip:], window)
			require.Equal(t, len(sample), consumed)
		}
	})

	t.Run("skip beyond the stream", func(t *testing.T) {
		window, consumed := feed(t, sample, 100, 10)
		require.Empty(t, window)
		require.Equal(t, len(sample), consumed)
	})

	t.Run("byte by byte", func(t *testing.T) {
		dst := make([]byte, 3)
		sink := New(dst, 2, 3)
		var reports []int
		for _, c := range []byte("abcdefg") {
			reports = append(reports, sink.Put(c))
		}

		require.Equal(t, []int{1, 1, 1, 1, 1, 0, 0}, reports)
		require.Equal(t, "cde", string(dst))
		require.True(t, sink.Full())
	})

	t.Run("partial acceptance across writes", func(t *testing.T) {
		dst := make([]byte, 4)
		sink := New(dst, 3, 4)
		var total int
		for _, piece := range strings.SplitAfter(sample, " ") {
			n, err := sink.Write([]byte(piece))
			require.NoError(t, err)
			total += n
		}

		require.Equal(t, "lo, ", string(dst))
		require.Equal(t, 7, total)
	})

	t.Run("budget clamped to destination", func(t *testing.T) {
		dst := make([]byte, 2)
		sink := New(dst, 0, 10)
		n, _ := sink.Write([]byte(sample))
		require.Equal(t, 2, n)
		require.Equal(t, "He", string(dst))
	})
}
