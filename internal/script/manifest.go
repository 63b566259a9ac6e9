package script

import (
	"fmt"
	"slices"

	toml "github.com/pelletier/go-toml/v2"
)

// Manifest names the chapters and scenes that carry special behavior, the
// gate secrets, and the scenes that swap to a variant once cleared. It is
// read from story.toml; omitted fields keep their defaults.
type Manifest struct {
	Title        string            `toml:"title"`
	FallbackText string            `toml:"fallback_text"`
	EscapeImage  string            `toml:"escape_image"`
	Chapters     ChapterRoles      `toml:"chapters"`
	Scenes       SceneRoles        `toml:"scenes"`
	Gates        GateSecrets       `toml:"gates"`
	ClearedMap   map[string]string `toml:"cleared_variants"`
}

// ChapterRoles designates chapter ids.
type ChapterRoles struct {
	Start       string `toml:"start"`
	Scene       string `toml:"scene"`
	DefaultNext string `toml:"default_next"`
}

// SceneRoles designates scene ids.
type SceneRoles struct {
	Start    string `toml:"start"`
	Curtain  string `toml:"curtain"`
	Hint     string `toml:"hint"`
	Escape   string `toml:"escape"`
	Door     string `toml:"door"`
	Password string `toml:"password"`
	Cleared  string `toml:"cleared"`
	End      string `toml:"end"`
}

// GateSecrets holds the two numeric codes.
type GateSecrets struct {
	First string `toml:"first"`
	Final string `toml:"final"`
}

// DefaultManifest returns the built-in roles.
func DefaultManifest() Manifest {
	return Manifest{
		FallbackText: "KD専門学校に入学して、3年という月日が経ってしまった。",
		EscapeImage:  "asset/images/escape.png",
		Chapters: ChapterRoles{
			Start:       "prologue",
			Scene:       "chapter2",
			DefaultNext: "chapter1",
		},
		Scenes: SceneRoles{
			Start:    "room-front",
			Curtain:  "window-curtain",
			Hint:     "window-hint",
			Escape:   "escape",
			Door:     "door-open",
			Password: "display-zoomin",
			Cleared:  "display-zoomin-on",
			End:      "door-open",
		},
		Gates: GateSecrets{First: "633574", Final: "8753"},
		ClearedMap: map[string]string{
			"room-front": "room-front-on",
			"room-tv":    "room-tv-on",
		},
	}
}

// ParseManifest decodes story.toml and fills omitted fields from
// DefaultManifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing story.toml: %w", err)
	}
	m.fill(DefaultManifest())
	return m, nil
}

func (m *Manifest) fill(d Manifest) {
	def := func(v *string, fallback string) {
		if *v == "" {
			*v = fallback
		}
	}
	def(&m.FallbackText, d.FallbackText)
	def(&m.EscapeImage, d.EscapeImage)
	def(&m.Chapters.Start, d.Chapters.Start)
	def(&m.Chapters.Scene, d.Chapters.Scene)
	def(&m.Chapters.DefaultNext, d.Chapters.DefaultNext)
	def(&m.Scenes.Start, d.Scenes.Start)
	def(&m.Scenes.Curtain, d.Scenes.Curtain)
	def(&m.Scenes.Hint, d.Scenes.Hint)
	def(&m.Scenes.Escape, d.Scenes.Escape)
	def(&m.Scenes.Door, d.Scenes.Door)
	def(&m.Scenes.Password, d.Scenes.Password)
	def(&m.Scenes.Cleared, d.Scenes.Cleared)
	def(&m.Scenes.End, d.Scenes.End)
	def(&m.Gates.First, d.Gates.First)
	def(&m.Gates.Final, d.Gates.Final)
	if m.ClearedMap == nil {
		m.ClearedMap = d.ClearedMap
	}
}

// ClearedVariant returns the scene that replaces id once the story is
// cleared. A scene's own clearedVariant wins over the manifest map.
func (m Manifest) ClearedVariant(g SceneGraph, id string) (string, bool) {
	if s, ok := g[id]; ok && s.ClearedVariant != "" {
		return s.ClearedVariant, true
	}
	v, ok := m.ClearedMap[id]
	return v, ok && v != ""
}

// ChapterIDs lists the chapters the manifest names, start first.
func (m Manifest) ChapterIDs() []string {
	var ids []string
	for _, c := range []string{m.Chapters.Start, m.Chapters.DefaultNext, m.Chapters.Scene} {
		if c != "" && !slices.Contains(ids, c) {
			ids = append(ids, c)
		}
	}
	return ids
}
