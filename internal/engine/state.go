package engine

import (
	"maps"
	"slices"

	"github.com/papapumpkin/novella/internal/script"
)

// Mode is the active player.
type Mode int

const (
	ModeLinear Mode = iota
	ModeGraph
)

func (m Mode) String() string {
	if m == ModeGraph {
		return "graph"
	}
	return "linear"
}

// PlaybackState is the session state. It is created by Start, mutated only
// by Controller methods and discarded by the next Start.
type PlaybackState struct {
	Mode    Mode
	Chapter string
	// Cleared only goes from false to true, on the first gate's success.
	Cleared bool
	Scene   string
	// Visited only grows.
	Visited      map[string]bool
	Search       bool
	SearchLocked bool
	Beat         int
	Pages        []string
	Page         int
	// Pending holds controls waiting for the last page to finish revealing.
	Pending     map[ControlID]bool
	Message     string
	MessageOpen bool

	token uint64
}

func newState() PlaybackState {
	return PlaybackState{
		Visited: make(map[string]bool),
		Pending: make(map[ControlID]bool),
	}
}

// Snapshot is a read-only copy of the session for display surfaces and
// tests.
type Snapshot struct {
	Mode         Mode
	Chapter      string
	Cleared      bool
	Scene        string
	Visited      []string
	Search       bool
	SearchLocked bool
	Beat         int
	Pages        []string
	Page         int
	Pending      []ControlID
	Message      string
	MessageOpen  bool
	Typing       bool
	Visible      map[ControlID]bool
	Directions   []script.Direction
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Mode:         c.st.Mode,
		Chapter:      c.st.Chapter,
		Cleared:      c.st.Cleared,
		Scene:        c.st.Scene,
		Visited:      slices.Sorted(maps.Keys(c.st.Visited)),
		Search:       c.st.Search,
		SearchLocked: c.st.SearchLocked,
		Beat:         c.st.Beat,
		Pages:        slices.Clone(c.st.Pages),
		Page:         c.st.Page,
		Message:      c.st.Message,
		MessageOpen:  c.st.MessageOpen,
		Typing:       c.tw.IsActive(),
		Visible:      make(map[ControlID]bool, numControls),
		Directions:   slices.Clone(c.directions),
	}
	for _, id := range Controls() {
		if c.st.Pending[id] {
			s.Pending = append(s.Pending, id)
		}
		s.Visible[id] = c.isVisible(id)
	}
	return s
}
