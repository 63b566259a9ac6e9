package script

import (
	"slices"
	"strings"
	"time"
)

// Direction names a directional choice out of a scene.
type Direction string

// Known directions. Documents may use others; validation reports them.
const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Directions lists the known directions in display order.
var Directions = [...]Direction{DirUp, DirLeft, DirRight, DirDown}

// Known reports whether d is one of the known directions.
func (d Direction) Known() bool {
	return slices.Contains(Directions[:], d)
}

// Action is a scene-level behavior.
type Action int

const (
	ActionNone Action = iota
	ActionCurtain
	ActionFinalPassword
)

func (a Action) String() string {
	switch a {
	case ActionCurtain:
		return "curtain"
	case ActionFinalPassword:
		return "finalPassword"
	default:
		return "none"
	}
}

// TextKind discriminates TextContent.
type TextKind int

const (
	TextEmpty TextKind = iota
	TextSingle
	TextPaged
)

// TextContent is scene text: nothing, one string, or an ordered list of pages.
type TextContent struct {
	kind  TextKind
	pages []string
}

// Single returns one-page text. Whitespace-only strings are empty.
func Single(s string) TextContent {
	if strings.TrimSpace(s) == "" {
		return TextContent{}
	}
	return TextContent{kind: TextSingle, pages: []string{s}}
}

// Paged returns multi-page text. No pages means empty.
func Paged(pages ...string) TextContent {
	if len(pages) == 0 {
		return TextContent{}
	}
	return TextContent{kind: TextPaged, pages: slices.Clone(pages)}
}

func (t TextContent) Kind() TextKind { return t.kind }
func (t TextContent) IsEmpty() bool  { return t.kind == TextEmpty }

// Pages returns the pages to reveal, one for Single and none for Empty.
func (t TextContent) Pages() []string { return slices.Clone(t.pages) }

// Join concatenates the pages with sep.
func (t TextContent) Join(sep string) string { return strings.Join(t.pages, sep) }

// Scene is one node of the scene graph.
type Scene struct {
	ID             string
	Background     string
	Text           TextContent
	FirstVisitText TextContent
	AlwaysShowText bool
	Action         Action
	// ActionTag holds the raw action value when it was not recognized.
	ActionTag  string
	Directions map[Direction]Edge
	// ClearedVariant, when set, replaces this scene once the story is cleared.
	ClearedVariant string
}

// DisplayText picks the text shown on entry.
func (s Scene) DisplayText(firstVisit bool) TextContent {
	if firstVisit && !s.FirstVisitText.IsEmpty() {
		return s.FirstVisitText
	}
	return s.Text
}

// Available lists the scene's directions in display order, known directions
// first.
func (s Scene) Available() []Direction {
	var out []Direction
	for _, d := range Directions {
		if _, ok := s.Directions[d]; ok {
			out = append(out, d)
		}
	}
	var extra []Direction
	for d := range s.Directions {
		if !d.Known() {
			extra = append(extra, d)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// SceneGraph maps scene ids to scenes.
type SceneGraph map[string]Scene

// IDs returns the scene ids in sorted order.
func (g SceneGraph) IDs() []string {
	ids := make([]string, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Edge is a transition out of a scene. The concrete types are DirectEdge,
// NextEdge, ConditionalEdge, ActionEdge and MalformedEdge.
type Edge interface {
	edge()
}

// DirectEdge leads to one scene.
type DirectEdge struct {
	Scene string
}

// NextEdge leads to one scene and wins over any default or cleared target
// declared alongside it.
type NextEdge struct {
	Scene string
}

// ConditionalEdge leads to OnCleared once the story is cleared, and to
// Default otherwise or when OnCleared is empty.
type ConditionalEdge struct {
	Default   string
	OnCleared string
}

// EdgeAction is the kind of an ActionEdge.
type EdgeAction int

const (
	EdgeFocus EdgeAction = iota
	EdgeEscape
)

// ActionEdge runs an effect instead of a plain transition. Focus shows Text
// for Wait and then follows Then; escape swaps in the terminal image.
type ActionEdge struct {
	Kind EdgeAction
	Text string
	Wait time.Duration
	Then Edge
}

// MalformedEdge carries an unrecognized edge shape or action tag.
type MalformedEdge struct {
	Tag string
}

func (DirectEdge) edge()      {}
func (NextEdge) edge()        {}
func (ConditionalEdge) edge() {}
func (ActionEdge) edge()      {}
func (MalformedEdge) edge()   {}

// Resolve returns the scene an edge leads to given the cleared flag.
// Escape and malformed edges resolve to nothing.
func Resolve(e Edge, cleared bool) (string, bool) {
	switch e := e.(type) {
	case DirectEdge:
		return e.Scene, e.Scene != ""
	case NextEdge:
		return e.Scene, e.Scene != ""
	case ConditionalEdge:
		if cleared && e.OnCleared != "" {
			return e.OnCleared, true
		}
		return e.Default, e.Default != ""
	case ActionEdge:
		if e.Kind == EdgeFocus && e.Then != nil {
			return Resolve(e.Then, cleared)
		}
	}
	return "", false
}

// targets lists every scene id an edge can lead to, for validation.
func targets(e Edge) []string {
	switch e := e.(type) {
	case DirectEdge:
		return []string{e.Scene}
	case NextEdge:
		return []string{e.Scene}
	case ConditionalEdge:
		if e.OnCleared != "" {
			return []string{e.Default, e.OnCleared}
		}
		return []string{e.Default}
	case ActionEdge:
		if e.Then != nil {
			return targets(e.Then)
		}
	}
	return nil
}
