package engine

import "github.com/papapumpkin/novella/internal/script"

// startBeat cancels outstanding work and dispatches beat i.
func (c *Controller) startBeat(i int) {
	t := c.begin()
	c.st.Beat = i
	if i < 0 || i >= len(c.beats) {
		return
	}

	switch b := c.beats[i].(type) {
	case script.TextBeat:
		c.reveal(t, b.Content)
	case script.BackgroundBeat:
		c.display.SetText("")
		c.changeBackground(t, b.Image, b.Transition, func() {
			t.after(BackgroundGrace, func() { c.nextBeat(i) })
		})
	case script.WaitBeat:
		c.display.SetText("")
		d := b.Duration
		if d <= 0 {
			d = DefaultWait
		}
		t.after(d, func() { c.nextBeat(i) })
	case script.ChapterBeat:
		c.display.SetText("")
		c.switchChapter(b.Chapter)
	default:
		c.logf("chapter %q beat %d: skipping %#v", c.st.Chapter, i, b)
		c.emit(Event{Kind: EventMalformedBeat, Chapter: c.st.Chapter})
		c.nextBeat(i)
	}
}

// nextBeat starts the beat after i. The last beat is terminal.
func (c *Controller) nextBeat(i int) {
	if i+1 < len(c.beats) {
		c.startBeat(i + 1)
	}
}

func (c *Controller) advanceLinear() {
	if c.tw.IsActive() {
		c.tw.Skip()
		return
	}
	i := c.st.Beat
	if i < 0 || i >= len(c.beats) {
		return
	}
	if _, ok := c.beats[i].(script.ChapterBeat); ok {
		// The switch failed earlier; try it again.
		c.startBeat(i)
		return
	}
	c.nextBeat(i)
}

// switchChapter loads the next chapter. The scene chapter switches to graph
// mode; any other chapter restarts linear playback at its first beat. A
// chapter that cannot be loaded leaves playback where it is.
func (c *Controller) switchChapter(ch string) {
	if ch == "" {
		ch = c.manifest.Chapters.DefaultNext
	}
	if ch == c.manifest.Chapters.Scene {
		c.enterGraph()
		return
	}
	beats, err := c.loader.LoadLinear(ch)
	if err != nil {
		c.logf("chapter %q unavailable, holding: %v", ch, err)
		c.emit(Event{Kind: EventDataUnavailable, Chapter: ch, Err: err})
		return
	}
	c.beats = beats
	c.st.Mode = ModeLinear
	c.st.Chapter = ch
	c.linearLayout()
	c.emit(Event{Kind: EventChapter, Chapter: ch})
	c.startBeat(0)
}

func (c *Controller) linearLayout() {
	c.st.Pages, c.st.Page = nil, 0
	c.st.Scene = ""
	c.directions = nil
	c.display.SetDirections(nil)
	for _, id := range Controls() {
		c.setVisible(id, id == ControlTextbox || id == ControlSkip)
	}
}

// enterGraph switches to graph mode at the start scene.
func (c *Controller) enterGraph() {
	ch := c.manifest.Chapters.Scene
	g, err := c.loader.LoadGraph(ch)
	if err != nil {
		c.logf("scene chapter %q unavailable, holding: %v", ch, err)
		c.emit(Event{Kind: EventDataUnavailable, Chapter: ch, Err: err})
		return
	}
	c.graph = g
	c.beats = nil
	c.st.Mode = ModeGraph
	c.st.Chapter = ch
	c.st.Beat = 0
	c.setVisible(ControlTextbox, false)
	c.setVisible(ControlSkip, false)
	c.emit(Event{Kind: EventChapter, Chapter: ch})
	c.enter(c.manifest.Scenes.Start)
}

// reveal types text onto a cleared text surface.
func (c *Controller) reveal(t task, text string) {
	c.display.SetText("")
	c.tw.Reveal(text, c.display.AppendText, t.guard(c.pageRevealed))
}
