package engine

// overlay records the visibility of the controls an open search or message
// overlay hides. Visibility changes made while the overlay is open, such as
// a deferred control being released, land in saved and are applied when the
// overlay closes.
type overlay struct {
	saved map[ControlID]bool
}

func (o *overlay) hides(id ControlID) bool {
	_, ok := o.saved[id]
	return ok
}

// Controls hidden by the search overlay. The search control stays so the
// player can toggle back.
var searchHides = []ControlID{
	ControlTextbox, ControlDirections, ControlCurtain, ControlPassword, ControlFinalPassword,
}

var messageHides = []ControlID{
	ControlTextbox, ControlDirections, ControlSearch, ControlCurtain, ControlPassword, ControlFinalPassword,
}

func (c *Controller) setVisible(id ControlID, v bool) {
	if c.overlay != nil && c.overlay.hides(id) {
		c.overlay.saved[id] = v
		return
	}
	c.visible[id] = v
	c.display.SetVisible(id, v)
}

func (c *Controller) isVisible(id ControlID) bool { return c.visible[id] }

func (c *Controller) openOverlay(hides []ControlID) {
	o := &overlay{saved: make(map[ControlID]bool, len(hides))}
	for _, id := range hides {
		o.saved[id] = c.visible[id]
		c.visible[id] = false
		c.display.SetVisible(id, false)
	}
	c.overlay = o
}

func (c *Controller) closeOverlay() {
	o := c.overlay
	if o == nil {
		return
	}
	c.overlay = nil
	for _, id := range Controls() {
		if v, ok := o.saved[id]; ok {
			c.setVisible(id, v)
		}
	}
}

// dropOverlay discards any open overlay without restoring it. Scene entry
// lays out every control afresh.
func (c *Controller) dropOverlay() {
	c.overlay = nil
	if c.st.MessageOpen {
		c.st.MessageOpen = false
		c.display.HideMessage()
	}
}

// ToggleSearch flips search mode in graph mode. Searching brightens the
// background and hides the text surface and scene controls; turning it off
// restores them, including controls released while searching.
func (c *Controller) ToggleSearch() {
	if c.st.Mode != ModeGraph || c.st.MessageOpen {
		return
	}
	if !c.st.Search && (!c.visible[ControlSearch] || c.st.SearchLocked) {
		return
	}
	c.st.Search = !c.st.Search
	c.applyFilter()
	if c.st.Search {
		c.openOverlay(searchHides)
		return
	}
	c.closeOverlay()
}

// ToggleMessage opens or closes the replay of the scene's first-visit text.
func (c *Controller) ToggleMessage() {
	if c.st.Mode != ModeGraph || c.st.Search {
		return
	}
	if c.st.MessageOpen {
		c.st.MessageOpen = false
		c.display.HideMessage()
		c.closeOverlay()
		return
	}
	if c.st.Message == "" || !c.visible[ControlMessage] {
		return
	}
	c.st.MessageOpen = true
	c.openOverlay(messageHides)
	c.display.ShowMessage(c.st.Message)
}
