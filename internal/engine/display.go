package engine

import "github.com/papapumpkin/novella/internal/script"

// ControlID names an auxiliary control whose visibility the engine drives.
type ControlID int

const (
	ControlTextbox ControlID = iota
	ControlDirections
	ControlSearch
	ControlSkip
	ControlCurtain
	ControlPassword
	ControlFinalPassword
	ControlMessage
	numControls
)

var controlNames = [...]string{
	ControlTextbox:       "textbox",
	ControlDirections:    "directions",
	ControlSearch:        "search",
	ControlSkip:          "skip",
	ControlCurtain:       "curtain",
	ControlPassword:      "password",
	ControlFinalPassword: "final_password",
	ControlMessage:       "message",
}

func (id ControlID) String() string {
	if id >= 0 && id < numControls {
		return controlNames[id]
	}
	return "unknown"
}

// Controls returns every control id in declaration order.
func Controls() []ControlID {
	ids := make([]ControlID, 0, numControls)
	for id := ControlID(0); id < numControls; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Display is the host surface the engine draws on. All calls are made from
// the goroutine that drives the Controller.
type Display interface {
	// SetText replaces the text surface content.
	SetText(text string)
	// AppendText adds revealed units to the text surface.
	AppendText(units string)
	// SetBackground swaps the background image, cross-fading when
	// transition is set.
	SetBackground(image string, transition bool)
	// SetBrightness sets the background brightness in [0, 1].
	SetBrightness(level float64)
	SetVisible(id ControlID, visible bool)
	// SetDirections lists the directions the current scene offers.
	SetDirections(available []script.Direction)
	ShowMessage(text string)
	HideMessage()
}
