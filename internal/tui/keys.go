package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/papapumpkin/novella/internal/i18n"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Advance  key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Search   key.Binding
	Skip     key.Binding
	Curtain  key.Binding
	Password key.Binding
	Message  key.Binding
	Reload   key.Binding
	Quit     key.Binding
	Submit   key.Binding
	Cancel   key.Binding
}

// DefaultKeyMap returns the default keybinding configuration with help text
// from p.
func DefaultKeyMap(p *i18n.Printer) KeyMap {
	return KeyMap{
		Advance: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", p.Text("help.advance")),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "right"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", p.Text("control.search")),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", p.Text("control.skip")),
		),
		Curtain: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", p.Text("control.curtain")),
		),
		Password: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", p.Text("control.password")),
		),
		Message: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", p.Text("control.message")),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", p.Text("help.quit")),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}
