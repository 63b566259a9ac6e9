// Package timeline provides the single cooperative timeline that owns all
// playback state. Callbacks scheduled through a Scheduler always run on the
// actor that drains it, never concurrently with input handling.
package timeline

import "time"

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// callback was still pending.
	Stop() bool
}

// Scheduler schedules callbacks on the owning actor.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}
