package timeline

import "time"

// Manual is a Scheduler driven by explicit Advance calls. It is used by
// tests and by headless runs that replay input against virtual time.
type Manual struct {
	now     time.Duration
	seq     int
	pending []*manualTimer
}

// NewManual returns a Manual clock at virtual time zero.
func NewManual() *Manual { return &Manual{} }

type manualTimer struct {
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// After schedules fn at now+d.
func (m *Manual) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{at: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Now reports the elapsed virtual time.
func (m *Manual) Now() time.Duration { return m.now }

// Pending reports the number of live timers.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, firing every timer due within
// the window in deadline order. Timers scheduled by a firing callback run
// in the same call if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		m.now = t.at
		t.stopped = true
		t.fn()
	}
	m.now = target
}

func (m *Manual) popDue(target time.Duration) *manualTimer {
	best := -1
	live := m.pending[:0]
	for _, t := range m.pending {
		if !t.stopped {
			live = append(live, t)
		}
	}
	m.pending = live
	for i, t := range m.pending {
		if t.at > target {
			continue
		}
		if best < 0 || t.at < m.pending[best].at || (t.at == m.pending[best].at && t.seq < m.pending[best].seq) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	t := m.pending[best]
	m.pending = append(m.pending[:best], m.pending[best+1:]...)
	return t
}
