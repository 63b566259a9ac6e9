package script

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Format is the serialization of a script document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// ParseLinear decodes a linear document: {"texts": [ ... ]}. Each element is
// a string or an object tagged by "cmd" ("bg", "wait", "nextChapter").
// Unrecognized tags decode to MalformedBeat.
func ParseLinear(data []byte, f Format) ([]Beat, error) {
	doc, err := decodeDocument(data, f)
	if err != nil {
		return nil, err
	}
	raw, ok := doc["texts"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: texts must be a list", ErrMalformedDocument)
	}
	beats := make([]Beat, 0, len(raw))
	for _, v := range raw {
		beats = append(beats, decodeBeat(v))
	}
	return beats, nil
}

// ParseGraph decodes a scene document: {"scenes": {id: scene, ...}}.
func ParseGraph(data []byte, f Format) (SceneGraph, error) {
	doc, err := decodeDocument(data, f)
	if err != nil {
		return nil, err
	}
	raw, ok := doc["scenes"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: scenes must be a mapping", ErrMalformedDocument)
	}
	g := make(SceneGraph, len(raw))
	for id, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: scene %q is not a mapping", ErrMalformedDocument, id)
		}
		g[id] = decodeScene(id, m)
	}
	return g, nil
}

func decodeDocument(data []byte, f Format) (map[string]any, error) {
	var doc map[string]any
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedDocument)
	}
	return doc, nil
}

func decodeBeat(v any) Beat {
	switch v := v.(type) {
	case map[string]any:
		cmd := str(v["cmd"])
		switch cmd {
		case "bg":
			return BackgroundBeat{Image: str(v["src"]), Transition: truthy(v["transition"])}
		case "wait":
			return WaitBeat{Duration: millis(v["ms"])}
		case "nextChapter":
			return ChapterBeat{Chapter: str(v["chapter"])}
		default:
			return MalformedBeat{Cmd: cmd}
		}
	case []any:
		return MalformedBeat{}
	default:
		return TextBeat{Content: str(v)}
	}
}

func decodeScene(id string, m map[string]any) Scene {
	s := Scene{
		ID:             id,
		Background:     str(m["bg"]),
		Text:           decodeText(m["text"]),
		FirstVisitText: decodeText(m["firstVisitText"]),
		AlwaysShowText: truthy(m["alwaysShowText"]),
		ClearedVariant: str(m["clearedVariant"]),
	}
	switch tag := str(m["action"]); tag {
	case "":
	case "curtain":
		s.Action = ActionCurtain
	case "finalPassword":
		s.Action = ActionFinalPassword
	default:
		s.ActionTag = tag
	}
	if dirs, ok := m["directions"].(map[string]any); ok {
		s.Directions = make(map[Direction]Edge, len(dirs))
		for d, e := range dirs {
			if e == nil {
				continue
			}
			s.Directions[Direction(d)] = decodeEdge(e)
		}
	}
	return s
}

func decodeText(v any) TextContent {
	switch v := v.(type) {
	case nil:
		return TextContent{}
	case []any:
		pages := make([]string, 0, len(v))
		for _, p := range v {
			pages = append(pages, str(p))
		}
		return Paged(pages...)
	default:
		return Single(str(v))
	}
}

func decodeEdge(v any) Edge {
	switch v := v.(type) {
	case string:
		return DirectEdge{Scene: v}
	case map[string]any:
		if tag, ok := v["action"]; ok {
			switch str(tag) {
			case "focus":
				ae := ActionEdge{Kind: EdgeFocus, Text: str(v["text"]), Wait: millis(v["wait"])}
				if next, ok := v["next"]; ok && next != nil {
					ae.Then = decodeEdge(next)
				}
				return ae
			case "escape":
				return ActionEdge{Kind: EdgeEscape}
			default:
				return MalformedEdge{Tag: str(tag)}
			}
		}
		if next := str(v["next"]); next != "" {
			return NextEdge{Scene: next}
		}
		if def := str(v["default"]); def != "" {
			return ConditionalEdge{Default: def, OnCleared: str(v["cleared"])}
		}
		return MalformedEdge{}
	default:
		return MalformedEdge{}
	}
}

// str coerces a decoded scalar to a string. Absent values become "".
func str(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func truthy(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case int:
		return v != 0
	default:
		return v != nil
	}
}

// millis reads a millisecond count. Missing or unparsable values are zero.
func millis(v any) time.Duration {
	var ms float64
	switch v := v.(type) {
	case float64:
		ms = v
	case int:
		ms = float64(v)
	case int64:
		ms = float64(v)
	case uint64:
		ms = float64(v)
	case string:
		ms, _ = strconv.ParseFloat(v, 64)
	}
	if ms <= 0 || math.IsNaN(ms) {
		return 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}
