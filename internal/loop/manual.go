package loop

import (
	"slices"
	"time"
)

// Manual is a Scheduler driven by hand: deferred callbacks are only called on Advance
// or Drain. It's meant for tests and for embedding the components into a foreign loop.
type Manual struct {
	now   time.Duration
	tasks []manualEntry
}

type manualEntry struct {
	at   time.Duration
	task *Task
}

func NewManual() *Manual {
	return new(Manual)
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) *Task {
	task := newTask(fn)
	m.tasks = append(m.tasks, manualEntry{at: m.now + d, task: task})
	return task
}

// Pending returns the number of tasks neither called nor cancelled.
func (m *Manual) Pending() (n int) {
	for _, entry := range m.tasks {
		if !entry.task.Cancelled() && !entry.task.Done() {
			n++
		}
	}

	return n
}

// Advance moves the clock forward by d, calling every task due by then in order of
// their deadlines. Returns the number of called tasks.
func (m *Manual) Advance(d time.Duration) (called int) {
	deadline := m.now + d

	for {
		i := m.next()
		if i == -1 || m.tasks[i].at > deadline {
			break
		}

		entry := m.tasks[i]
		m.tasks = slices.Delete(m.tasks, i, i+1)
		m.now = entry.at
		if !entry.task.Cancelled() {
			entry.task.run()
			called++
		}
	}

	m.now = deadline
	return called
}

// Drain calls tasks until there are none left, including those scheduled by the called
// ones. Returns the number of called tasks.
func (m *Manual) Drain() (called int) {
	for {
		i := m.next()
		if i == -1 {
			return called
		}

		called += m.Advance(m.tasks[i].at - m.now)
	}
}

// Elapsed returns the manual clock's reading.
func (m *Manual) Elapsed() time.Duration {
	return m.now
}

func (m *Manual) next() int {
	best := -1
	for i, entry := range m.tasks {
		if best == -1 || entry.at < m.tasks[best].at {
			best = i
		}
	}

	return best
}
