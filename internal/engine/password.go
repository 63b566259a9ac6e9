package engine

import "github.com/papapumpkin/novella/internal/gate"

// SubmitPassword checks digits against gate id. Submissions are only taken
// while that gate's control is showing; others are rejected without
// effect. A rejection never changes state.
//
// The first gate's success clears the story and enters the cleared scene.
// The final gate's success locks search for the rest of the session and
// enters the end scene.
func (c *Controller) SubmitPassword(id GateID, digits string) gate.Result {
	ctl := ControlPassword
	if id == GateFinal {
		ctl = ControlFinalPassword
	}
	g := c.gates[id]
	if c.st.Mode != ModeGraph || c.st.Search || c.st.MessageOpen || !c.visible[ctl] {
		return g.Submit("")
	}

	res := g.Submit(digits)
	c.emit(Event{Kind: EventPassword, Chapter: c.st.Chapter, Scene: c.st.Scene, Gate: id, Accepted: res.Accepted})
	if !res.Accepted {
		return res
	}

	c.begin()
	c.setVisible(ctl, false)
	c.setVisible(ControlTextbox, false)
	c.display.SetText("")
	switch id {
	case GateFirst:
		c.st.Cleared = true
		c.enter(c.manifest.Scenes.Cleared)
	case GateFinal:
		c.st.SearchLocked = true
		c.setVisible(ControlSearch, false)
		c.enter(c.manifest.Scenes.End)
	}
	return res
}
