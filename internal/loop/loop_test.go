package loop

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func runLoop(t *testing.T) (*Loop, context.CancelFunc) {
	l := New(16, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan error)
	go func() {
		stopped <- l.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-stopped)
	})

	return l, cancel
}

func TestLoop(t *testing.T) {
	t.Run("sequential order", func(t *testing.T) {
		l, _ := runLoop(t)
		var order []int
		for i := range 10 {
			require.True(t, l.Post(func() {
				order = append(order, i)
			}))
		}

		var got []int
		require.True(t, l.Do(func() {
			got = append(got, order...)
		}))
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
	})

	t.Run("after func", func(t *testing.T) {
		l, _ := runLoop(t)
		called := make(chan time.Time, 1)
		start := time.Now()
		l.AfterFunc(20*time.Millisecond, func() {
			called <- time.Now()
		})

		select {
		case at := <-called:
			require.GreaterOrEqual(t, at.Sub(start), 20*time.Millisecond)
		case <-time.After(time.Second):
			require.Fail(t, "the task wasn't called")
		}
	})

	t.Run("cancel", func(t *testing.T) {
		l, _ := runLoop(t)
		called := make(chan struct{}, 1)
		task := l.AfterFunc(20*time.Millisecond, func() {
			called <- struct{}{}
		})
		require.True(t, task.Cancel())
		require.False(t, task.Cancel())
		require.True(t, task.Cancelled())

		select {
		case <-called:
			require.Fail(t, "cancelled task was called")
		case <-time.After(60 * time.Millisecond):
		}
	})

	t.Run("survives a panic", func(t *testing.T) {
		l, _ := runLoop(t)
		l.Post(func() {
			panic("oops")
		})

		var ok bool
		require.True(t, l.Do(func() {
			ok = true
		}))
		require.True(t, ok)
	})

	t.Run("stopped", func(t *testing.T) {
		l, cancel := runLoop(t)
		cancel()
		<-l.Stopped()
		require.False(t, l.Post(func() {}))
		require.False(t, l.Do(func() {}))
	})
}

func TestManual(t *testing.T) {
	t.Run("advance in deadline order", func(t *testing.T) {
		m := NewManual()
		var order []string
		m.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })
		m.AfterFunc(5*time.Millisecond, func() { order = append(order, "a") })
		m.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })

		require.Equal(t, 2, m.Advance(10*time.Millisecond))
		require.Equal(t, []string{"a", "b"}, order)
		require.Equal(t, 1, m.Pending())
		require.Equal(t, 1, m.Drain())
		require.Equal(t, []string{"a", "b", "c"}, order)
		require.Equal(t, 30*time.Millisecond, m.Elapsed())
	})

	t.Run("rescheduling", func(t *testing.T) {
		m := NewManual()
		var calls int
		var step func()
		step = func() {
			calls++
			if calls < 5 {
				m.AfterFunc(5*time.Millisecond, step)
			}
		}
		m.AfterFunc(5*time.Millisecond, step)

		require.Equal(t, 5, m.Drain())
		require.Equal(t, 25*time.Millisecond, m.Elapsed())
	})

	t.Run("cancelled", func(t *testing.T) {
		m := NewManual()
		task := m.AfterFunc(time.Millisecond, func() {
			require.Fail(t, "cancelled task was called")
		})
		require.True(t, task.Cancel())
		require.Zero(t, m.Pending())
		require.Zero(t, m.Drain())
	})
}
