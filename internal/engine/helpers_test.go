package engine

import (
	"bytes"
	"maps"
	"testing"
	"testing/fstest"
	"time"

	"github.com/papapumpkin/novella/internal/script"
	"github.com/papapumpkin/novella/internal/timeline"
)

const testPrologue = `{"texts": [
	"Hello",
	{"cmd": "wait", "ms": 300},
	{"cmd": "bg", "src": "b.png", "transition": true},
	"After bg",
	{"cmd": "bogus"},
	"After bogus",
	{"cmd": "nextChapter"}
]}`

const testChapter1 = `{"texts": ["Chapter one", {"cmd": "nextChapter", "chapter": "chapter2"}]}`

const testChapter2 = `{"scenes": {
	"room-front": {
		"bg": "front.png",
		"firstVisitText": "Front first",
		"text": "Front",
		"directions": {"left": "room-tv", "right": "window-curtain", "up": "display-zoomin", "down": "door-open"}
	},
	"room-front-on": {"text": "Front lit", "directions": {"left": "room-tv"}},
	"room-tv": {
		"text": "TV",
		"directions": {
			"right": "room-front",
			"up": {"action": "focus", "text": "Static", "wait": 500, "next": "room-front"},
			"down": {"action": "escape"},
			"left": "ghost"
		}
	},
	"room-tv-on": {"text": "TV on", "directions": {"right": "room-front"}},
	"window-curtain": {"action": "curtain", "firstVisitText": "Curtain", "directions": {"down": "room-front"}},
	"window-hint": {"alwaysShowText": true, "firstVisitText": "Hint first", "text": "Hint", "directions": {"down": "room-front"}},
	"display-zoomin": {"firstVisitText": ["Page A", "Page B"], "text": "Zoom", "directions": {"down": "room-front"}},
	"display-zoomin-on": {"action": "finalPassword", "firstVisitText": ["Cleared A", "Cleared B"], "text": "Cleared", "directions": {"down": "room-tv"}},
	"door-open": {"text": "Door", "directions": {"up": "escape"}},
	"escape": {"bg": "escape.png"}
}}`

func testFiles() fstest.MapFS {
	return fstest.MapFS{
		"prologue.json": {Data: []byte(testPrologue)},
		"chapter1.json": {Data: []byte(testChapter1)},
		"chapter2.json": {Data: []byte(testChapter2)},
	}
}

// fakeDisplay records everything the engine draws.
type fakeDisplay struct {
	text       string
	appended   []string
	background string
	transition bool
	brightness []float64
	visible    map[ControlID]bool
	directions []script.Direction
	message    string
	messageOn  bool
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{visible: make(map[ControlID]bool)}
}

func (d *fakeDisplay) SetText(text string) { d.text = text }
func (d *fakeDisplay) AppendText(units string) {
	d.text += units
	d.appended = append(d.appended, units)
}
func (d *fakeDisplay) SetBackground(image string, transition bool) {
	d.background, d.transition = image, transition
}
func (d *fakeDisplay) SetBrightness(level float64)           { d.brightness = append(d.brightness, level) }
func (d *fakeDisplay) SetVisible(id ControlID, visible bool) { d.visible[id] = visible }
func (d *fakeDisplay) SetDirections(available []script.Direction) {
	d.directions = available
}
func (d *fakeDisplay) ShowMessage(text string) { d.message, d.messageOn = text, true }
func (d *fakeDisplay) HideMessage()            { d.messageOn = false }

func (d *fakeDisplay) lastBrightness() float64 {
	if len(d.brightness) == 0 {
		return -1
	}
	return d.brightness[len(d.brightness)-1]
}

func (d *fakeDisplay) visibleCopy() map[ControlID]bool { return maps.Clone(d.visible) }

type harness struct {
	c      *Controller
	d      *fakeDisplay
	clock  *timeline.Manual
	events []Event
	log    bytes.Buffer
}

func newHarness(t *testing.T, files fstest.MapFS) *harness {
	t.Helper()
	h := &harness{d: newFakeDisplay(), clock: timeline.NewManual()}
	loader := script.NewLoader(script.FSSource{FS: files, Label: "test"}, nil)
	loader.Logger = &h.log
	c, err := New(Options{
		Loader:    loader,
		Manifest:  script.DefaultManifest(),
		Display:   h.d,
		Scheduler: h.clock,
		Logger:    &h.log,
		OnEvent:   func(e Event) { h.events = append(h.events, e) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.c = c
	return h
}

// toGraph starts a session and skips to the start scene, past its
// background transition.
func (h *harness) toGraph() {
	h.c.Start()
	h.c.Skip()
	h.clock.Advance(TransitionTimeout)
}

// finish lets the active reveal run to completion on the clock.
func (h *harness) finish() {
	for h.c.tw.IsActive() {
		h.clock.Advance(10 * time.Millisecond)
	}
}

// finishAll reveals every remaining page of the current scene.
func (h *harness) finishAll() {
	h.finish()
	for h.c.st.Page+1 < len(h.c.st.Pages) {
		h.c.Advance()
		h.finish()
	}
}

func (h *harness) countEvents(kind EventKind) int {
	n := 0
	for _, e := range h.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
