package tui

import (
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/novella/internal/engine"
	"github.com/papapumpkin/novella/internal/script"
)

const backdropHeight = 5

var directionGlyphs = map[script.Direction]string{
	script.DirUp:    "↑",
	script.DirDown:  "↓",
	script.DirLeft:  "←",
	script.DirRight: "→",
}

// View renders the current frame.
func (m Model) View() string {
	footer := Footer{Width: m.width, Bindings: m.footerBindings()}.View()

	var overlay string
	switch {
	case m.prompt != nil:
		overlay = m.prompt.View()
	case m.screen.messageOn:
		overlay = styleOverlay.Render(m.viewport.View())
	}
	if overlay != "" {
		h := max(m.height-lipgloss.Height(footer), 1)
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, overlay),
			footer,
		)
	}

	sections := []string{m.statusBar(), m.backdrop()}
	if m.screen.Visible(engine.ControlTextbox) {
		sections = append(sections, styleTextBox.Width(max(m.width-2, 10)).Render(m.screen.text))
	}
	if row := m.directionRow(); row != "" {
		sections = append(sections, row)
	}
	if row := m.controlRow(); row != "" {
		sections = append(sections, row)
	}
	if m.notice != "" {
		sections = append(sections, styleNotice.Render(m.notice))
	}
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) statusBar() string {
	snap := m.ctl.Snapshot()
	mode := m.printer.Text("mode.linear")
	where := snap.Chapter
	if snap.Mode == engine.ModeGraph {
		mode = m.printer.Text("mode.graph")
		where = snap.Scene
	}
	parts := []string{
		styleStatusLabel.Render(m.ctl.Manifest().Title),
		styleStatusValue.Render(mode + " · " + where),
	}
	if snap.Search {
		parts = append(parts, styleStatusFlag.Render(m.printer.Text("status.searching")))
	}
	if snap.SearchLocked {
		parts = append(parts, styleStatusFlag.Render(m.printer.Text("status.locked")))
	}
	return styleStatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}

// backdrop draws the background as a shaded band labelled with the image.
func (m Model) backdrop() string {
	image, level := m.screen.Background()
	label := "·"
	if image != "" {
		label = path.Base(image)
	}
	if m.screen.transition {
		label = "~ " + label + " ~"
	}
	fg := shade(1 - level)
	return lipgloss.NewStyle().
		Width(m.width).
		Height(backdropHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Background(shade(level)).
		Foreground(fg).
		Render(label)
}

func (m Model) directionRow() string {
	if !m.screen.Visible(engine.ControlDirections) {
		return ""
	}
	var parts []string
	for _, d := range script.Directions {
		glyph := directionGlyphs[d]
		if m.screen.Offers(d) {
			parts = append(parts, styleDirection.Render(glyph))
		} else {
			parts = append(parts, styleDirectionOff.Render(glyph))
		}
	}
	return m.printer.Text("control.directions") + " " + strings.Join(parts, " ")
}

func (m Model) controlRow() string {
	labels := []struct {
		id  engine.ControlID
		key string
	}{
		{engine.ControlSearch, "control.search"},
		{engine.ControlSkip, "control.skip"},
		{engine.ControlCurtain, "control.curtain"},
		{engine.ControlPassword, "control.password"},
		{engine.ControlFinalPassword, "control.final_password"},
		{engine.ControlMessage, "control.message"},
	}
	var parts []string
	for _, l := range labels {
		if m.screen.Visible(l.id) {
			parts = append(parts, styleControl.Render("["+m.printer.Text(l.key)+"]"))
		}
	}
	return strings.Join(parts, " ")
}
