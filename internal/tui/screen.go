package tui

import (
	"github.com/papapumpkin/novella/internal/engine"
	"github.com/papapumpkin/novella/internal/script"
)

// Screen is the terminal rendition of engine.Display. The controller draws
// on it from Update; View reads it back.
type Screen struct {
	text       string
	background string
	transition bool
	brightness float64
	visible    map[engine.ControlID]bool
	directions []script.Direction
	message    string
	messageOn  bool
}

// NewScreen returns an empty Screen at full brightness.
func NewScreen() *Screen {
	return &Screen{brightness: 1, visible: make(map[engine.ControlID]bool)}
}

func (s *Screen) SetText(text string)     { s.text = text }
func (s *Screen) AppendText(units string) { s.text += units }

func (s *Screen) SetBackground(image string, transition bool) {
	s.background, s.transition = image, transition
}

func (s *Screen) SetBrightness(level float64)                  { s.brightness = level }
func (s *Screen) SetVisible(id engine.ControlID, visible bool) { s.visible[id] = visible }

func (s *Screen) SetDirections(available []script.Direction) {
	s.directions = available
}

func (s *Screen) ShowMessage(text string) { s.message, s.messageOn = text, true }
func (s *Screen) HideMessage()            { s.messageOn = false }

// Visible reports whether control id is currently shown.
func (s *Screen) Visible(id engine.ControlID) bool { return s.visible[id] }

// Text returns the text surface content.
func (s *Screen) Text() string { return s.text }

// Background returns the current background image and brightness.
func (s *Screen) Background() (string, float64) { return s.background, s.brightness }

// Offers reports whether the current scene offers direction d.
func (s *Screen) Offers(d script.Direction) bool {
	for _, have := range s.directions {
		if have == d {
			return true
		}
	}
	return false
}
