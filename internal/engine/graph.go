package engine

import (
	"slices"

	"github.com/papapumpkin/novella/internal/script"
)

// target applies the cleared remap to id and reports whether the result is
// a scene of the loaded graph.
func (c *Controller) target(id string) (string, bool) {
	if c.st.Cleared {
		if v, ok := c.manifest.ClearedVariant(c.graph, id); ok {
			id = v
		}
	}
	_, ok := c.graph[id]
	return id, ok
}

// enter moves to scene id. Unknown ids are logged and leave the state
// untouched.
func (c *Controller) enter(id string) {
	id, ok := c.target(id)
	if !ok {
		c.logf("unknown scene %q", id)
		c.emit(Event{Kind: EventUnknownScene, Chapter: c.st.Chapter, Scene: id})
		return
	}
	scene := c.graph[id]
	t := c.begin()

	first := !c.st.Visited[id]
	if first {
		c.st.Visited[id] = true
	}

	roles := c.manifest.Scenes
	if id == roles.Curtain && !first && roles.Hint != roles.Curtain {
		c.enter(roles.Hint)
		return
	}

	c.st.Mode = ModeGraph
	c.st.Scene = id
	c.st.Pages, c.st.Page = nil, 0
	clear(c.st.Pending)
	// No direction is live until present lays the scene out.
	c.directions = nil
	c.display.SetDirections(nil)
	c.setVisible(ControlDirections, false)
	c.emit(Event{Kind: EventScene, Chapter: c.st.Chapter, Scene: id, FirstVisit: first})

	bg := scene.Background
	if bg == "" && id == roles.Escape {
		bg = c.manifest.EscapeImage
	}
	present := func() { c.present(t, scene, first) }
	if bg != "" {
		c.changeBackground(t, bg, id != roles.Escape, present)
		return
	}
	present()
}

// present lays out a scene once its background is in place.
func (c *Controller) present(t task, scene script.Scene, first bool) {
	c.dropOverlay()
	c.st.Search = false

	if scene.ID == c.manifest.Scenes.Escape {
		c.display.SetBrightness(1)
		c.display.SetText("")
		c.st.Message = ""
		for _, id := range Controls() {
			c.setVisible(id, false)
		}
		c.emit(Event{Kind: EventEscape, Chapter: c.st.Chapter, Scene: scene.ID})
		return
	}
	c.applyFilter()

	pages := scene.DisplayText(first).Pages()
	hasText := len(pages) > 0
	c.st.Pages, c.st.Page = pages, 0

	c.setVisible(ControlTextbox, hasText)
	c.setVisible(ControlSkip, false)
	c.directions = scene.Available()
	c.display.SetDirections(c.directions)

	show := func(id ControlID) { c.setVisible(id, true) }
	hide := func(id ControlID) { c.setVisible(id, false) }
	later := func(id ControlID) {
		c.setVisible(id, false)
		c.st.Pending[id] = true
	}

	switch scene.Action {
	case script.ActionCurtain:
		hide(ControlFinalPassword)
		if first && hasText {
			later(ControlCurtain)
		} else {
			show(ControlCurtain)
		}
		hide(ControlDirections)
		hide(ControlSearch)
	case script.ActionFinalPassword:
		hide(ControlCurtain)
		hide(ControlSearch)
		switch {
		case !hasText:
			show(ControlFinalPassword)
			show(ControlDirections)
		case first:
			later(ControlFinalPassword)
			later(ControlDirections)
		default:
			later(ControlFinalPassword)
			later(ControlSearch)
			show(ControlDirections)
		}
	default:
		hide(ControlCurtain)
		hide(ControlFinalPassword)
		show(ControlDirections)
		c.setVisible(ControlSearch, c.searchAllowed())
	}

	if scene.ID == c.manifest.Scenes.Password && !c.st.Cleared {
		if first && hasText {
			later(ControlPassword)
		} else {
			show(ControlPassword)
		}
	} else {
		hide(ControlPassword)
	}

	if !scene.AlwaysShowText && !first && !scene.FirstVisitText.IsEmpty() {
		c.st.Message = scene.FirstVisitText.Join("\n\n")
		show(ControlMessage)
	} else {
		c.st.Message = ""
		hide(ControlMessage)
	}

	if hasText {
		c.reveal(t, pages[0])
		return
	}
	c.display.SetText("")
}

// searchAllowed reports whether the current scene may offer search.
func (c *Controller) searchAllowed() bool {
	roles := c.manifest.Scenes
	return !c.st.SearchLocked && c.st.Scene != roles.Door && c.st.Scene != roles.Escape
}

// pageRevealed runs when a reveal finishes. On the last page it releases
// every deferred control.
func (c *Controller) pageRevealed() {
	if c.st.Mode != ModeGraph || c.st.Page < len(c.st.Pages)-1 {
		return
	}
	for _, id := range Controls() {
		if !c.st.Pending[id] {
			continue
		}
		delete(c.st.Pending, id)
		if id == ControlSearch && !c.searchAllowed() {
			continue
		}
		c.setVisible(id, true)
	}
}

func (c *Controller) advanceGraph() {
	if c.st.Search || c.st.MessageOpen {
		return
	}
	if c.tw.IsActive() {
		c.tw.Skip()
		return
	}
	if c.st.Page+1 < len(c.st.Pages) {
		c.st.Page++
		c.reveal(c.current(), c.st.Pages[c.st.Page])
	}
}

// Choose follows the current scene's edge in direction dir. It is a no-op
// when the scene has no such direction, when directions are hidden or not yet
// offered, or when the edge leads nowhere.
func (c *Controller) Choose(dir script.Direction) {
	if c.st.Mode != ModeGraph || c.st.Search || c.st.MessageOpen || !c.visible[ControlDirections] {
		return
	}
	if !slices.Contains(c.directions, dir) {
		return
	}
	edge, ok := c.graph[c.st.Scene].Directions[dir]
	if !ok {
		return
	}

	if ae, ok := edge.(script.ActionEdge); ok {
		t := c.begin()
		c.clearTransient()
		c.runEdgeAction(t, ae)
		return
	}

	next, ok := script.Resolve(edge, c.st.Cleared)
	if !ok {
		c.logf("scene %q: edge %q leads nowhere", c.st.Scene, dir)
		c.emit(Event{Kind: EventMalformedBeat, Chapter: c.st.Chapter, Scene: c.st.Scene})
		return
	}
	resolved, ok := c.target(next)
	if !ok {
		c.logf("scene %q: edge %q: unknown scene %q", c.st.Scene, dir, next)
		c.emit(Event{Kind: EventUnknownScene, Chapter: c.st.Chapter, Scene: next})
		return
	}

	t := c.begin()
	c.clearTransient()
	if resolved == c.manifest.Scenes.Escape {
		c.ramp(t, func() { c.enter(next) })
		return
	}
	c.enter(next)
}

func (c *Controller) runEdgeAction(t task, ae script.ActionEdge) {
	switch ae.Kind {
	case script.EdgeFocus:
		c.display.SetText(ae.Text)
		c.setVisible(ControlTextbox, ae.Text != "")
		wait := ae.Wait
		if wait <= 0 {
			wait = DefaultWait
		}
		next, ok := script.Resolve(ae, c.st.Cleared)
		t.after(wait, func() {
			if ok {
				c.enter(next)
			}
		})
	case script.EdgeEscape:
		c.display.SetBackground(c.manifest.EscapeImage, false)
		c.setVisible(ControlTextbox, false)
		c.emit(Event{Kind: EventEscape, Chapter: c.st.Chapter, Scene: c.st.Scene})
	}
}

// clearTransient hides the text surface and every scene control before a
// transition so stale content never flashes.
func (c *Controller) clearTransient() {
	for _, id := range []ControlID{
		ControlTextbox, ControlDirections, ControlSearch, ControlCurtain,
		ControlPassword, ControlFinalPassword, ControlMessage,
	} {
		c.setVisible(id, false)
	}
	c.display.SetText("")
	c.st.Pages, c.st.Page = nil, 0
	clear(c.st.Pending)
}

// Curtain opens the curtain in the curtain scene, moving to the hint scene.
func (c *Controller) Curtain() {
	if c.st.Mode != ModeGraph || c.st.Search || c.st.MessageOpen {
		return
	}
	if c.st.Scene != c.manifest.Scenes.Curtain || !c.visible[ControlCurtain] {
		return
	}
	c.begin()
	c.clearTransient()
	c.enter(c.manifest.Scenes.Hint)
}
