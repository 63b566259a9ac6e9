package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/papapumpkin/novella/internal/engine"
)

// CompactWidth switches the footer to key-only hints.
const CompactWidth = 60

// Footer renders context-sensitive keybinding hints.
type Footer struct {
	Width    int
	Bindings []key.Binding
}

// View renders the footer as a single line of keybinding hints.
// In compact mode (narrow terminals), shows only key hints without descriptions.
func (f Footer) View() string {
	compact := f.Width < CompactWidth

	var parts []string
	for _, b := range f.Bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		part := styleFooterKey.Render(help.Key)
		if !compact {
			part += styleFooterSep.Render(":") + styleFooterDesc.Render(help.Desc)
		}
		parts = append(parts, part)
	}
	sep := styleFooterSep.Render("  ")
	if compact {
		sep = styleFooterSep.Render(" ")
	}
	return styleFooter.Width(f.Width).Render(strings.Join(parts, sep))
}

// footerBindings returns the bindings that do something right now.
func (m Model) footerBindings() []key.Binding {
	km := m.keys
	switch {
	case m.prompt != nil:
		return []key.Binding{km.Submit, km.Cancel}
	case m.screen.messageOn:
		return []key.Binding{km.Up, km.Down, km.Message, km.Cancel}
	}

	out := []key.Binding{km.Advance}
	if m.screen.Visible(engine.ControlDirections) {
		out = append(out, km.Up, km.Down, km.Left, km.Right)
	}
	for _, c := range []struct {
		id engine.ControlID
		b  key.Binding
	}{
		{engine.ControlSearch, km.Search},
		{engine.ControlSkip, km.Skip},
		{engine.ControlCurtain, km.Curtain},
		{engine.ControlMessage, km.Message},
	} {
		if m.screen.Visible(c.id) {
			out = append(out, c.b)
		}
	}
	if m.screen.Visible(engine.ControlPassword) || m.screen.Visible(engine.ControlFinalPassword) {
		out = append(out, km.Password)
	}
	return append(out, km.Reload, km.Quit)
}
