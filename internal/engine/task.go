package engine

import "time"

// task is the cancellation token for one scheduled sequence. Starting a new
// beat or entering a scene supersedes the current task, and callbacks bound
// to a superseded task are dropped.
type task struct {
	c  *Controller
	id uint64
}

// begin cancels everything outstanding and returns a fresh task.
func (c *Controller) begin() task {
	c.cancel()
	return c.current()
}

func (c *Controller) current() task {
	return task{c: c, id: c.st.token}
}

func (c *Controller) cancel() {
	c.st.token++
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = c.timers[:0]
	c.tw.Cancel()
}

func (t task) live() bool { return t.c.st.token == t.id }

func (t task) after(d time.Duration, fn func()) {
	tm := t.c.sched.After(d, func() {
		if t.live() {
			fn()
		}
	})
	t.c.timers = append(t.c.timers, tm)
}

func (t task) guard(fn func()) func() {
	return func() {
		if t.live() {
			fn()
		}
	}
}
