// Package typewriter reveals text one grapheme cluster at a time on a fixed
// cadence.
package typewriter

import (
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/papapumpkin/novella/internal/timeline"
)

// Interval is the delay between two revealed units.
const Interval = 25 * time.Millisecond

// Typewriter emits units of a string through a Scheduler. Only one reveal is
// active at a time; starting a new one cancels the previous reveal without
// calling its completion.
type Typewriter struct {
	sched timeline.Scheduler

	units      []string
	next       int
	onUnit     func(string)
	onComplete func()
	timer      timeline.Timer
	active     bool
}

// New creates a Typewriter that schedules its ticks on s.
func New(s timeline.Scheduler) *Typewriter {
	return &Typewriter{sched: s}
}

// Split breaks text into the units a reveal emits: user-perceived
// characters, so combining marks and emoji sequences never appear half drawn.
func Split(text string) []string {
	var units []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		units = append(units, g.Str())
	}
	return units
}

// Reveal starts emitting text. The first unit is emitted immediately and
// onComplete runs on the tick after the last unit. Empty text completes
// immediately with no units emitted.
func (tw *Typewriter) Reveal(text string, onUnit func(string), onComplete func()) {
	tw.Cancel()

	units := Split(text)
	if len(units) == 0 {
		if onComplete != nil {
			onComplete()
		}
		return
	}

	tw.units = units
	tw.next = 0
	tw.onUnit = onUnit
	tw.onComplete = onComplete
	tw.active = true
	tw.tick()
}

func (tw *Typewriter) tick() {
	tw.timer = nil
	if tw.next >= len(tw.units) {
		tw.finish()
		return
	}
	tw.emit(tw.units[tw.next])
	tw.next++
	tw.timer = tw.sched.After(Interval, tw.tick)
}

// Skip emits the remainder of the active reveal at once and completes it.
// It is a no-op when nothing is being revealed.
func (tw *Typewriter) Skip() {
	if !tw.active {
		return
	}
	tw.stopTimer()
	if tw.next < len(tw.units) {
		rest := strings.Join(tw.units[tw.next:], "")
		tw.next = len(tw.units)
		tw.emit(rest)
	}
	tw.finish()
}

// Cancel abandons the active reveal without completing it.
func (tw *Typewriter) Cancel() {
	tw.stopTimer()
	tw.reset()
}

// IsActive reports whether a reveal is in progress.
func (tw *Typewriter) IsActive() bool { return tw.active }

func (tw *Typewriter) emit(unit string) {
	if tw.onUnit != nil {
		tw.onUnit(unit)
	}
}

func (tw *Typewriter) finish() {
	done := tw.onComplete
	tw.reset()
	if done != nil {
		done()
	}
}

func (tw *Typewriter) stopTimer() {
	if tw.timer != nil {
		tw.timer.Stop()
		tw.timer = nil
	}
}

func (tw *Typewriter) reset() {
	tw.units = nil
	tw.next = 0
	tw.onUnit = nil
	tw.onComplete = nil
	tw.active = false
}
