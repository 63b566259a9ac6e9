// Package tui is the terminal display surface: a bubbletea program that
// renders the engine's Display calls and turns key presses into
// controller input.
package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/novella/internal/session"
	"github.com/papapumpkin/novella/internal/watch"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a program for s on the alternate screen.
func NewProgram(s *session.Session, screen *Screen, ready <-chan func(), changes <-chan watch.Change, opts ...tea.ProgramOption) *Program {
	allOpts := []tea.ProgramOption{tea.WithAltScreen()}
	allOpts = append(allOpts, opts...)
	return tea.NewProgram(NewModel(s, screen, ready, changes), allOpts...)
}

// Run runs the program until the player quits.
func Run(p *Program) error {
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// WithOutput returns a program option that directs TUI output to the given writer.
// Useful for testing or redirecting output.
func WithOutput(w io.Writer) tea.ProgramOption {
	return tea.WithOutput(w)
}
