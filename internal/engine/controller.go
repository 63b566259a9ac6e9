// Package engine runs a visual-novel session: a linear player for beat
// lists, a scene-graph player for exploration, and the controller that owns
// the playback state and drives an abstract Display.
//
// A Controller is not safe for concurrent use. Input methods and scheduler
// callbacks must all run on one goroutine; timeline.Queue and
// timeline.Manual both satisfy that.
package engine

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/papapumpkin/novella/internal/gate"
	"github.com/papapumpkin/novella/internal/script"
	"github.com/papapumpkin/novella/internal/timeline"
	"github.com/papapumpkin/novella/internal/typewriter"
)

// Fixed timings.
const (
	DefaultWait       = 1000 * time.Millisecond
	BackgroundGrace   = 2000 * time.Millisecond
	TransitionTimeout = 800 * time.Millisecond
	RampDuration      = 800 * time.Millisecond
)

// DefaultRejectMessage is used when Options.RejectMessage is empty.
const DefaultRejectMessage = "Incorrect password"

// GateID selects one of the two password gates.
type GateID int

const (
	GateFirst GateID = iota
	GateFinal
)

func (g GateID) String() string {
	if g == GateFinal {
		return "final"
	}
	return "first"
}

// Options configures a Controller.
type Options struct {
	Loader    *script.Loader
	Manifest  script.Manifest
	Display   Display
	Scheduler timeline.Scheduler
	// RejectMessage is returned with every rejected password.
	RejectMessage string
	Logger        io.Writer   // optional; nil = os.Stderr
	OnEvent       func(Event) // optional
}

// Controller coordinates the two players and owns the PlaybackState.
type Controller struct {
	loader   *script.Loader
	manifest script.Manifest
	display  Display
	sched    timeline.Scheduler
	logger   io.Writer
	onEvent  func(Event)

	tw    *typewriter.Typewriter
	gates [2]gate.Gate

	st         PlaybackState
	beats      []script.Beat
	graph      script.SceneGraph
	timers     []timeline.Timer
	visible    [numControls]bool
	overlay    *overlay
	directions []script.Direction
}

// New validates the gate secrets and creates a Controller. Call Start to
// begin the session.
func New(opts Options) (*Controller, error) {
	reject := opts.RejectMessage
	if reject == "" {
		reject = DefaultRejectMessage
	}
	first, err := gate.New(opts.Manifest.Gates.First, reject)
	if err != nil {
		return nil, fmt.Errorf("engine: first gate: %w", err)
	}
	final, err := gate.New(opts.Manifest.Gates.Final, reject)
	if err != nil {
		return nil, fmt.Errorf("engine: final gate: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = os.Stderr
	}
	return &Controller{
		loader:   opts.Loader,
		manifest: opts.Manifest,
		display:  opts.Display,
		sched:    opts.Scheduler,
		logger:   logger,
		onEvent:  opts.OnEvent,
		tw:       typewriter.New(opts.Scheduler),
		gates:    [2]gate.Gate{first, final},
		st:       newState(),
	}, nil
}

// GateLen returns the number of digits gate id expects.
func (c *Controller) GateLen(id GateID) int { return c.gates[id].Len() }

// Manifest returns the manifest the session runs with.
func (c *Controller) Manifest() script.Manifest { return c.manifest }

// Start begins a new session at the manifest's start chapter, discarding
// any previous state.
func (c *Controller) Start() {
	c.cancel()
	c.st = newState()
	c.beats = nil
	c.graph = nil
	c.overlay = nil
	c.directions = nil
	c.emit(Event{Kind: EventStart})

	ch := c.manifest.Chapters.Start
	if ch == c.manifest.Chapters.Scene {
		c.enterGraph()
		return
	}
	beats, err := c.loader.LoadLinear(ch)
	if err != nil && len(beats) == 0 {
		c.logf("start chapter %q unavailable, showing fallback text: %v", ch, err)
		c.emit(Event{Kind: EventDataUnavailable, Chapter: ch, Err: err})
		beats = []script.Beat{script.TextBeat{Content: c.manifest.FallbackText}}
	}
	c.beats = beats
	c.st.Chapter = ch
	c.linearLayout()
	c.emit(Event{Kind: EventChapter, Chapter: ch})
	c.startBeat(0)
}

// Reload restarts the session from scratch.
func (c *Controller) Reload() { c.Start() }

// Refresh re-reads the active chapter after its source changed. A failed
// read keeps the current data. Linear playback restarts the current beat;
// graph playback picks up the new scenes on the next entry.
func (c *Controller) Refresh() {
	switch c.st.Mode {
	case ModeGraph:
		g, err := c.loader.LoadGraph(c.st.Chapter)
		if err != nil {
			c.logf("refresh %q: %v", c.st.Chapter, err)
			return
		}
		c.graph = g
	default:
		beats, err := c.loader.LoadLinear(c.st.Chapter)
		if err != nil {
			c.logf("refresh %q: %v", c.st.Chapter, err)
			return
		}
		c.beats = beats
		c.startBeat(min(c.st.Beat, len(beats)-1))
	}
}

// Advance is the single "next" input: it completes an in-flight reveal,
// otherwise moves to the next beat or page.
func (c *Controller) Advance() {
	if c.st.Mode == ModeGraph {
		c.advanceGraph()
		return
	}
	c.advanceLinear()
}

// Skip jumps from linear playback straight to the scene chapter.
func (c *Controller) Skip() {
	if c.st.Mode != ModeLinear {
		return
	}
	c.begin()
	c.display.SetText("")
	c.enterGraph()
}

func (c *Controller) emit(e Event) {
	if c.onEvent != nil {
		c.onEvent(e)
	}
}

func (c *Controller) logf(format string, args ...any) {
	fmt.Fprintf(c.logger, "engine: "+format+"\n", args...)
}
