package script

import (
	"errors"
	"testing"
	"time"
)

func TestParseLinear_JSON(t *testing.T) {
	t.Parallel()

	doc := `{"texts": [
		"first line",
		{"cmd": "bg", "src": "asset/images/room.png", "transition": true},
		{"cmd": "wait", "ms": 1500},
		{"cmd": "wait"},
		{"cmd": "nextChapter", "chapter": "chapter2"},
		{"cmd": "shake"},
		42
	]}`
	beats, err := ParseLinear([]byte(doc), FormatJSON)
	if err != nil {
		t.Fatalf("ParseLinear: %v", err)
	}
	if len(beats) != 7 {
		t.Fatalf("len(beats) = %d, want 7", len(beats))
	}

	if got, ok := beats[0].(TextBeat); !ok || got.Content != "first line" {
		t.Errorf("beats[0] = %#v, want TextBeat{first line}", beats[0])
	}
	if got, ok := beats[1].(BackgroundBeat); !ok || got.Image != "asset/images/room.png" || !got.Transition {
		t.Errorf("beats[1] = %#v, want BackgroundBeat with transition", beats[1])
	}
	if got, ok := beats[2].(WaitBeat); !ok || got.Duration != 1500*time.Millisecond {
		t.Errorf("beats[2] = %#v, want WaitBeat{1500ms}", beats[2])
	}
	if got, ok := beats[3].(WaitBeat); !ok || got.Duration != 0 {
		t.Errorf("beats[3] = %#v, want WaitBeat{0}", beats[3])
	}
	if got, ok := beats[4].(ChapterBeat); !ok || got.Chapter != "chapter2" {
		t.Errorf("beats[4] = %#v, want ChapterBeat{chapter2}", beats[4])
	}
	if got, ok := beats[5].(MalformedBeat); !ok || got.Cmd != "shake" {
		t.Errorf("beats[5] = %#v, want MalformedBeat{shake}", beats[5])
	}
	if got, ok := beats[6].(TextBeat); !ok || got.Content != "42" {
		t.Errorf("beats[6] = %#v, want TextBeat{42}", beats[6])
	}
}

func TestParseLinear_YAML(t *testing.T) {
	t.Parallel()

	doc := `texts:
  - こんにちは
  - cmd: wait
    ms: 250
  - cmd: nextChapter
`
	beats, err := ParseLinear([]byte(doc), FormatYAML)
	if err != nil {
		t.Fatalf("ParseLinear: %v", err)
	}
	if len(beats) != 3 {
		t.Fatalf("len(beats) = %d, want 3", len(beats))
	}
	if got, ok := beats[1].(WaitBeat); !ok || got.Duration != 250*time.Millisecond {
		t.Errorf("beats[1] = %#v, want WaitBeat{250ms}", beats[1])
	}
	if got, ok := beats[2].(ChapterBeat); !ok || got.Chapter != "" {
		t.Errorf("beats[2] = %#v, want ChapterBeat with empty chapter", beats[2])
	}
}

func TestParseLinear_MissingTexts(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{`{"scenes": {}}`, `{"texts": "nope"}`, `null`} {
		_, err := ParseLinear([]byte(doc), FormatJSON)
		if !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("ParseLinear(%s) error = %v, want ErrMalformedDocument", doc, err)
		}
	}
}

func TestParseGraph_SceneShapes(t *testing.T) {
	t.Parallel()

	doc := `{"scenes": {
		"room-front": {
			"bg": "asset/images/room-front.png",
			"firstVisitText": ["Page A", "Page B"],
			"text": "   ",
			"directions": {
				"left": "room-tv",
				"right": {"default": "desk", "cleared": "desk-on"},
				"down": {"next": "door", "default": "ignored"},
				"up": {"action": "focus", "text": "Look closer", "wait": 500, "next": {"default": "shelf"}}
			}
		},
		"window-curtain": {"action": "curtain", "alwaysShowText": true, "text": "curtain"},
		"display-zoomin-on": {"action": "finalPassword", "clearedVariant": "x"},
		"odd": {"action": "dance", "directions": {"up": {"action": "escape"}, "down": {"action": "warp"}}}
	}}`
	g, err := ParseGraph([]byte(doc), FormatJSON)
	if err != nil {
		t.Fatalf("ParseGraph: %v", err)
	}

	front := g["room-front"]
	if front.ID != "room-front" || front.Background != "asset/images/room-front.png" {
		t.Errorf("room-front = %+v", front)
	}
	if front.FirstVisitText.Kind() != TextPaged || len(front.FirstVisitText.Pages()) != 2 {
		t.Errorf("firstVisitText = %+v, want two pages", front.FirstVisitText)
	}
	if !front.Text.IsEmpty() {
		t.Errorf("whitespace text should be empty, got %+v", front.Text)
	}

	tests := []struct {
		dir     Direction
		cleared bool
		want    string
	}{
		{DirLeft, false, "room-tv"},
		{DirRight, false, "desk"},
		{DirRight, true, "desk-on"},
		{DirDown, true, "door"},
		{DirUp, false, "shelf"},
	}
	for _, tt := range tests {
		got, ok := Resolve(front.Directions[tt.dir], tt.cleared)
		if !ok || got != tt.want {
			t.Errorf("Resolve(%s, cleared=%v) = %q, %v; want %q", tt.dir, tt.cleared, got, ok, tt.want)
		}
	}
	focus, ok := front.Directions[DirUp].(ActionEdge)
	if !ok || focus.Kind != EdgeFocus || focus.Text != "Look closer" || focus.Wait != 500*time.Millisecond {
		t.Errorf("up edge = %#v, want focus edge", front.Directions[DirUp])
	}

	if g["window-curtain"].Action != ActionCurtain || !g["window-curtain"].AlwaysShowText {
		t.Errorf("window-curtain = %+v", g["window-curtain"])
	}
	if g["display-zoomin-on"].Action != ActionFinalPassword || g["display-zoomin-on"].ClearedVariant != "x" {
		t.Errorf("display-zoomin-on = %+v", g["display-zoomin-on"])
	}

	odd := g["odd"]
	if odd.Action != ActionNone || odd.ActionTag != "dance" {
		t.Errorf("odd action = %v tag %q, want none/dance", odd.Action, odd.ActionTag)
	}
	if e, ok := odd.Directions[DirUp].(ActionEdge); !ok || e.Kind != EdgeEscape {
		t.Errorf("odd up = %#v, want escape edge", odd.Directions[DirUp])
	}
	if _, ok := Resolve(odd.Directions[DirUp], false); ok {
		t.Error("escape edge resolved to a scene")
	}
	if e, ok := odd.Directions[DirDown].(MalformedEdge); !ok || e.Tag != "warp" {
		t.Errorf("odd down = %#v, want MalformedEdge{warp}", odd.Directions[DirDown])
	}
}

func TestParseGraph_YAMLPages(t *testing.T) {
	t.Parallel()

	doc := `scenes:
  hall:
    text:
      - one
      - two
    directions:
      up: stairs
  stairs:
    text: top
`
	g, err := ParseGraph([]byte(doc), FormatYAML)
	if err != nil {
		t.Fatalf("ParseGraph: %v", err)
	}
	if pages := g["hall"].Text.Pages(); len(pages) != 2 || pages[1] != "two" {
		t.Errorf("hall pages = %v, want [one two]", pages)
	}
	if g["stairs"].Text.Kind() != TextSingle {
		t.Errorf("stairs text kind = %v, want TextSingle", g["stairs"].Text.Kind())
	}
	if avail := g["hall"].Available(); len(avail) != 1 || avail[0] != DirUp {
		t.Errorf("Available() = %v, want [up]", avail)
	}
}

func TestParseGraph_NonMappingScene(t *testing.T) {
	t.Parallel()

	_, err := ParseGraph([]byte(`{"scenes": {"a": "b"}}`), FormatJSON)
	if !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("error = %v, want ErrMalformedDocument", err)
	}
}

func TestScene_DisplayText(t *testing.T) {
	t.Parallel()

	s := Scene{Text: Single("again"), FirstVisitText: Single("hello")}
	if got := s.DisplayText(true).Join(""); got != "hello" {
		t.Errorf("first visit = %q, want hello", got)
	}
	if got := s.DisplayText(false).Join(""); got != "again" {
		t.Errorf("revisit = %q, want again", got)
	}
	s.FirstVisitText = TextContent{}
	if got := s.DisplayText(true).Join(""); got != "again" {
		t.Errorf("first visit without firstVisitText = %q, want again", got)
	}
}
