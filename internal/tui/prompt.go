package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/novella/internal/engine"
	"github.com/papapumpkin/novella/internal/gate"
)

// PasswordPrompt is the modal keypad for one gate. It stays open after a
// rejection so the player can retry.
type PasswordPrompt struct {
	Gate  engine.GateID
	Title string
	Input textinput.Model
	Error string
}

// NewPasswordPrompt creates a focused prompt that takes n digits.
func NewPasswordPrompt(id engine.GateID, n int, title string) *PasswordPrompt {
	ti := textinput.New()
	ti.Prompt = "▸ "
	ti.Placeholder = strings.Repeat("0", n)
	ti.CharLimit = n
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Focus()
	return &PasswordPrompt{Gate: id, Title: title, Input: ti}
}

// Update feeds a key to the input. Non-digit runes are dropped.
func (p *PasswordPrompt) Update(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyRunes && !gate.Digits(string(msg.Runes)) {
		return nil
	}
	var cmd tea.Cmd
	p.Input, cmd = p.Input.Update(msg)
	return cmd
}

// Value returns the digits typed so far.
func (p *PasswordPrompt) Value() string { return p.Input.Value() }

// Reject records a failed attempt and clears the input.
func (p *PasswordPrompt) Reject(message string) {
	p.Error = message
	p.Input.Reset()
}

// View renders the prompt box without placement.
func (p PasswordPrompt) View() string {
	var b strings.Builder
	b.WriteString(styleOverlayTitle.Render(p.Title))
	b.WriteString("\n\n")
	b.WriteString(p.Input.View())
	if p.Error != "" {
		b.WriteString("\n\n")
		b.WriteString(styleOverlayError.Render(p.Error))
	}
	return styleOverlay.Render(b.String())
}
