package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/novella/internal/engine"
	"github.com/papapumpkin/novella/internal/i18n"
	"github.com/papapumpkin/novella/internal/script"
	"github.com/papapumpkin/novella/internal/session"
	"github.com/papapumpkin/novella/internal/watch"
)

// Default dimensions before the first WindowSizeMsg.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model is the root bubbletea model. It is the only goroutine that touches
// the controller: key presses, fired timers and story changes all arrive as
// messages.
type Model struct {
	session *session.Session
	ctl     *engine.Controller
	screen  *Screen
	printer *i18n.Printer
	keys    KeyMap

	ready   <-chan func()
	changes <-chan watch.Change

	prompt   *PasswordPrompt
	viewport viewport.Model
	notice   string
	width    int
	height   int
}

// NewModel creates a model for s, which must draw on screen. ready delivers
// fired timeline callbacks; changes, when non-nil, delivers story edits.
func NewModel(s *session.Session, screen *Screen, ready <-chan func(), changes <-chan watch.Change) Model {
	return Model{
		session:  s,
		ctl:      s.Controller,
		screen:   screen,
		printer:  s.Printer,
		keys:     DefaultKeyMap(s.Printer),
		ready:    ready,
		changes:  changes,
		viewport: viewport.New(defaultWidth-8, defaultHeight/2),
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// Init starts the session and begins draining timers and story changes.
func (m Model) Init() tea.Cmd {
	m.ctl.Start()
	return tea.Batch(waitForTimer(m.ready), waitForChange(m.changes))
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = max(msg.Width-8, 20)
		m.viewport.Height = max(msg.Height/2, 5)
		return m, nil

	case MsgTimer:
		msg.Fn()
		m.closeStalePrompt()
		return m, waitForTimer(m.ready)

	case MsgStoryChanged:
		m.handleChange(msg.Change)
		return m, waitForChange(m.changes)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	switch {
	case m.prompt != nil:
		return m.handlePromptKey(msg)
	case m.screen.messageOn:
		return m.handleMessageKey(msg)
	}

	km := m.keys
	switch {
	case key.Matches(msg, km.Quit):
		return m.quit()
	case key.Matches(msg, km.Advance):
		m.ctl.Advance()
	case key.Matches(msg, km.Up):
		m.ctl.Choose(script.DirUp)
	case key.Matches(msg, km.Down):
		m.ctl.Choose(script.DirDown)
	case key.Matches(msg, km.Left):
		m.ctl.Choose(script.DirLeft)
	case key.Matches(msg, km.Right):
		m.ctl.Choose(script.DirRight)
	case key.Matches(msg, km.Search):
		m.ctl.ToggleSearch()
	case key.Matches(msg, km.Skip):
		m.ctl.Skip()
	case key.Matches(msg, km.Curtain):
		m.ctl.Curtain()
	case key.Matches(msg, km.Password):
		return m.openPrompt()
	case key.Matches(msg, km.Message):
		m.toggleMessage()
	case key.Matches(msg, km.Reload):
		m.session.Reload()
		m.notice = ""
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.prompt = nil
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		res := m.ctl.SubmitPassword(m.prompt.Gate, m.prompt.Value())
		if res.Accepted {
			m.prompt = nil
			return m, nil
		}
		m.prompt.Reject(res.Message)
		return m, nil
	}
	return m, m.prompt.Update(msg)
}

func (m Model) handleMessageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Message), key.Matches(msg, m.keys.Cancel):
		m.toggleMessage()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// openPrompt shows the keypad for whichever gate is on screen.
func (m Model) openPrompt() (tea.Model, tea.Cmd) {
	id, ok := m.visibleGate()
	if !ok {
		return m, nil
	}
	n := m.ctl.GateLen(id)
	m.prompt = NewPasswordPrompt(id, n, m.printer.Text("password.prompt", n))
	return m, nil
}

func (m Model) visibleGate() (engine.GateID, bool) {
	switch {
	case m.screen.Visible(engine.ControlFinalPassword):
		return engine.GateFinal, true
	case m.screen.Visible(engine.ControlPassword):
		return engine.GateFirst, true
	}
	return 0, false
}

// closeStalePrompt drops the keypad when its gate left the screen.
func (m *Model) closeStalePrompt() {
	if m.prompt == nil {
		return
	}
	if id, ok := m.visibleGate(); !ok || id != m.prompt.Gate {
		m.prompt = nil
	}
}

func (m *Model) toggleMessage() {
	m.ctl.ToggleMessage()
	if m.screen.messageOn {
		m.viewport.SetContent(m.screen.message)
		m.viewport.GotoTop()
	}
}

func (m *Model) handleChange(c watch.Change) {
	switch {
	case c.Kind == watch.ChangeManifest:
		m.notice = fmt.Sprintf("%s changed; press r to restart", script.ManifestFile)
	case c.Chapter == m.ctl.Snapshot().Chapter:
		m.ctl.Refresh()
		m.notice = fmt.Sprintf("reloaded %s", c.Chapter)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.session.Close(context.Background())
	return m, tea.Quit
}
