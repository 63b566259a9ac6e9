package script

import "time"

// Beat is one unit of linear-mode script content. The concrete types are
// TextBeat, BackgroundBeat, WaitBeat, ChapterBeat and MalformedBeat.
type Beat interface {
	beat()
}

// TextBeat is a line revealed by the typewriter.
type TextBeat struct {
	Content string
}

// BackgroundBeat swaps the background image.
type BackgroundBeat struct {
	Image      string
	Transition bool
}

// WaitBeat pauses playback. A zero Duration means the default wait.
type WaitBeat struct {
	Duration time.Duration
}

// ChapterBeat switches to another chapter. An empty Chapter means the
// manifest's default next chapter.
type ChapterBeat struct {
	Chapter string
}

// MalformedBeat is an entry whose command tag is not recognized. Playback
// steps over it.
type MalformedBeat struct {
	Cmd string
}

func (TextBeat) beat()       {}
func (BackgroundBeat) beat() {}
func (WaitBeat) beat()       {}
func (ChapterBeat) beat()    {}
func (MalformedBeat) beat()  {}
