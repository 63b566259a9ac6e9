package engine

import (
	"testing"

	"github.com/papapumpkin/novella/internal/script"
)

// clearFirstGate plays to the password scene and opens the first gate.
func clearFirstGate(t *testing.T, h *harness) {
	t.Helper()
	h.toGraph()
	h.finish()
	h.c.Choose(script.DirUp)
	h.finishAll()
	if res := h.c.SubmitPassword(GateFirst, h.c.Manifest().Gates.First); !res.Accepted {
		t.Fatalf("SubmitPassword(first): rejected with %q", res.Message)
	}
}

func TestSubmitPassword_RejectKeepsState(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testFiles())
	h.toGraph()
	h.finish()
	h.c.Choose(script.DirUp)
	h.finishAll()
	before := h.c.Snapshot()

	for _, digits := range []string{"000000", "123", "63357a", ""} {
		res := h.c.SubmitPassword(GateFirst, digits)
		if res.Accepted {
			t.Fatalf("SubmitPassword(%q) accepted", digits)
		}
		if res.Message != DefaultRejectMessage {
			t.Errorf("SubmitPassword(%q) message = %q, want %q", digits, res.Message, DefaultRejectMessage)
		}
	}

	after := h.c.Snapshot()
	if after.Scene != before.Scene || after.Cleared || !after.Visible[ControlPassword] {
		t.Errorf("rejection changed state: scene=%q cleared=%v password=%v", after.Scene, after.Cleared, after.Visible[ControlPassword])
	}
}

func TestSubmitPassword_HiddenGateIgnored(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testFiles())
	h.toGraph()
	h.finish()

	res := h.c.SubmitPassword(GateFirst, h.c.Manifest().Gates.First)
	if res.Accepted {
		t.Fatal("first gate accepted outside the password scene")
	}
	if h.c.Snapshot().Cleared {
		t.Error("cleared set by a hidden gate")
	}
	if h.countEvents(EventPassword) != 0 {
		t.Errorf("password events = %d, want 0", h.countEvents(EventPassword))
	}
}

func TestSubmitPassword_FirstGateClears(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testFiles())
	clearFirstGate(t, h)

	snap := h.c.Snapshot()
	if !snap.Cleared || snap.Scene != "display-zoomin-on" {
		t.Fatalf("cleared=%v scene=%q, want cleared display-zoomin-on", snap.Cleared, snap.Scene)
	}
	if snap.Visible[ControlPassword] {
		t.Error("first password control still visible")
	}
	if snap.Visible[ControlDirections] || snap.Visible[ControlFinalPassword] {
		t.Error("directions and final password should wait for the text")
	}

	h.finishAll()
	snap = h.c.Snapshot()
	if !snap.Visible[ControlDirections] || !snap.Visible[ControlFinalPassword] {
		t.Error("directions and final password not released after the last page")
	}
	if snap.Visible[ControlSearch] {
		t.Error("search offered in the final password scene")
	}
}

func TestCleared_RemapsScenes(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testFiles())
	clearFirstGate(t, h)
	h.finishAll()

	h.c.Choose(script.DirDown)
	if got := h.c.Snapshot().Scene; got != "room-tv-on" {
		t.Fatalf("scene = %q, want room-tv-on", got)
	}
	h.finish()
	h.c.Choose(script.DirRight)
	snap := h.c.Snapshot()
	if snap.Scene != "room-front-on" {
		t.Errorf("scene = %q, want room-front-on", snap.Scene)
	}
	if !snap.Cleared {
		t.Error("cleared flag reverted")
	}
}

func TestSubmitPassword_FinalGateLocksSearch(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testFiles())
	clearFirstGate(t, h)

	if res := h.c.SubmitPassword(GateFinal, h.c.Manifest().Gates.Final); res.Accepted {
		t.Fatal("final gate accepted before its control was released")
	}
	h.finishAll()
	if res := h.c.SubmitPassword(GateFinal, "0000"); res.Accepted {
		t.Fatal("final gate accepted a wrong code")
	}
	if res := h.c.SubmitPassword(GateFinal, h.c.Manifest().Gates.Final); !res.Accepted {
		t.Fatalf("SubmitPassword(final): rejected with %q", res.Message)
	}

	snap := h.c.Snapshot()
	if snap.Scene != "door-open" || !snap.SearchLocked {
		t.Fatalf("scene=%q locked=%v, want door-open locked", snap.Scene, snap.SearchLocked)
	}
	if snap.Visible[ControlSearch] || snap.Visible[ControlFinalPassword] {
		t.Error("search or final password still visible")
	}
}

func TestEscape_RampThenHideAll(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testFiles())
	clearFirstGate(t, h)
	h.finishAll()
	h.c.SubmitPassword(GateFinal, h.c.Manifest().Gates.Final)
	h.finish()

	mark := len(h.d.brightness)
	h.c.Choose(script.DirUp)
	h.clock.Advance(RampDuration / 2)
	if got := h.c.Snapshot().Scene; got != "door-open" {
		t.Fatalf("scene mid-ramp = %q, want door-open", got)
	}
	h.clock.Advance(RampDuration / 2)

	levels := h.d.brightness[mark:]
	if len(levels) < rampSteps {
		t.Fatalf("ramp produced %d levels, want at least %d", len(levels), rampSteps)
	}
	if levels[0] != DimBrightness {
		t.Errorf("ramp started at %v, want %v", levels[0], DimBrightness)
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] < levels[i-1] {
			t.Fatalf("brightness fell from %v to %v during the ramp", levels[i-1], levels[i])
		}
	}

	snap := h.c.Snapshot()
	if snap.Scene != "escape" {
		t.Fatalf("scene = %q, want escape", snap.Scene)
	}
	if h.d.lastBrightness() != 1 {
		t.Errorf("brightness = %v, want 1", h.d.lastBrightness())
	}
	if h.d.background != "escape.png" || h.d.transition {
		t.Errorf("background = %q transition=%v, want escape.png without transition", h.d.background, h.d.transition)
	}
	for id, v := range snap.Visible {
		if v {
			t.Errorf("%s visible in the escape scene", id)
		}
	}
	if h.countEvents(EventEscape) != 1 {
		t.Errorf("escape events = %d, want 1", h.countEvents(EventEscape))
	}
}
