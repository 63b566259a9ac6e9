package web

import (
	"encoding/json"

	"github.com/papapumpkin/novella/internal/engine"
	"github.com/papapumpkin/novella/internal/script"
)

// frame is one outbound message. Payload fields are omitted when unused.
type frame struct {
	Type       string   `json:"type"`
	Text       string   `json:"text,omitempty"`
	Image      string   `json:"image,omitempty"`
	Transition bool     `json:"transition,omitempty"`
	Level      *float64 `json:"level,omitempty"`
	Control    string   `json:"control,omitempty"`
	Visible    *bool    `json:"visible,omitempty"`
	Available  []string `json:"available,omitempty"`
	Accepted   *bool    `json:"accepted,omitempty"`
	Scene      string   `json:"scene,omitempty"`
	Mode       string   `json:"mode,omitempty"`
}

// inboundMessage is one message from the browser.
type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type choosePayload struct {
	Direction string `json:"direction"`
}

type passwordPayload struct {
	Gate   string `json:"gate"`
	Digits string `json:"digits"`
}

// frameDisplay buffers Display calls as frames until the actor flushes them.
type frameDisplay struct {
	pending []frame
}

func (d *frameDisplay) push(f frame) { d.pending = append(d.pending, f) }

func (d *frameDisplay) take() []frame {
	out := d.pending
	d.pending = nil
	return out
}

func (d *frameDisplay) SetText(text string) { d.push(frame{Type: "text", Text: text}) }

func (d *frameDisplay) AppendText(units string) {
	// Coalesce consecutive appends into one frame.
	if n := len(d.pending); n > 0 && d.pending[n-1].Type == "append" {
		d.pending[n-1].Text += units
		return
	}
	d.push(frame{Type: "append", Text: units})
}

func (d *frameDisplay) SetBackground(image string, transition bool) {
	d.push(frame{Type: "background", Image: image, Transition: transition})
}

func (d *frameDisplay) SetBrightness(level float64) {
	d.push(frame{Type: "brightness", Level: &level})
}

func (d *frameDisplay) SetVisible(id engine.ControlID, visible bool) {
	d.push(frame{Type: "visible", Control: id.String(), Visible: &visible})
}

func (d *frameDisplay) SetDirections(available []script.Direction) {
	names := make([]string, len(available))
	for i, dir := range available {
		names[i] = string(dir)
	}
	d.push(frame{Type: "directions", Available: names})
}

func (d *frameDisplay) ShowMessage(text string) {
	open := true
	d.push(frame{Type: "message", Text: text, Visible: &open})
}

func (d *frameDisplay) HideMessage() {
	open := false
	d.push(frame{Type: "message", Visible: &open})
}
