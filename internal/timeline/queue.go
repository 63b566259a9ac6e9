package timeline

import (
	"sync"
	"sync/atomic"
	"time"
)

// Queue is a Scheduler backed by wall-clock timers. Fired callbacks are not
// run on the timer goroutine; they are posted to Ready and the owning actor
// runs them, so engine state is only touched from one goroutine.
type Queue struct {
	ready chan func()
	done  chan struct{}
	once  sync.Once
}

// NewQueue creates a Queue with a small buffer of fired callbacks.
func NewQueue() *Queue {
	return &Queue{
		ready: make(chan func(), 32),
		done:  make(chan struct{}),
	}
}

// After schedules fn to be posted to Ready after d.
func (q *Queue) After(d time.Duration, fn func()) Timer {
	qt := &queueTimer{}
	qt.t = time.AfterFunc(d, func() {
		select {
		case q.ready <- func() {
			if qt.stopped.Load() {
				return
			}
			fn()
		}:
		case <-q.done:
		}
	})
	return qt
}

// Ready delivers fired callbacks. The receiver must invoke each one.
func (q *Queue) Ready() <-chan func() { return q.ready }

// Close releases timer goroutines blocked on delivery. Callbacks that fire
// after Close are dropped.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

type queueTimer struct {
	t       *time.Timer
	stopped atomic.Bool
}

// Stop marks the timer stopped. A callback already posted to Ready but not
// yet run becomes a no-op.
func (qt *queueTimer) Stop() bool {
	wasPending := !qt.stopped.Swap(true)
	return qt.t.Stop() && wasPending
}
