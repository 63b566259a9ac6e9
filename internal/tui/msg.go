package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/novella/internal/watch"
)

// MsgTimer carries a fired timeline callback to Update.
type MsgTimer struct {
	Fn func()
}

// MsgStoryChanged is sent when the story directory changed on disk.
type MsgStoryChanged struct {
	Change watch.Change
}

// waitForTimer blocks until the timeline posts a callback.
func waitForTimer(ready <-chan func()) tea.Cmd {
	if ready == nil {
		return nil
	}
	return func() tea.Msg {
		fn, ok := <-ready
		if !ok {
			return nil
		}
		return MsgTimer{Fn: fn}
	}
}

// waitForChange blocks until the watcher reports a change.
func waitForChange(changes <-chan watch.Change) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-changes
		if !ok {
			return nil
		}
		return MsgStoryChanged{Change: c}
	}
}
