package script

import (
	"fmt"
	"slices"
)

// ValidateLinear reports beats with unrecognized command tags.
func ValidateLinear(chapter string, beats []Beat) []ValidationError {
	var errs []ValidationError
	for i, b := range beats {
		if mb, ok := b.(MalformedBeat); ok {
			errs = append(errs, ValidationError{
				Category: ValCatMalformedBeat,
				Chapter:  chapter,
				Field:    fmt.Sprintf("texts[%d]", i),
				Err:      fmt.Errorf("%w: cmd %q", ErrMalformedBeat, mb.Cmd),
			})
		}
	}
	return errs
}

// ValidateGraph reports unknown actions, malformed edges, unknown
// directions and edges that lead to scenes absent from the graph.
func ValidateGraph(chapter string, g SceneGraph) []ValidationError {
	var errs []ValidationError
	for _, id := range g.IDs() {
		s := g[id]
		if s.ActionTag != "" {
			errs = append(errs, ValidationError{
				Category: ValCatUnknownAction,
				Chapter:  chapter,
				SceneID:  id,
				Field:    "action",
				Err:      fmt.Errorf("%w: action %q", ErrMalformedBeat, s.ActionTag),
			})
		}
		if s.ClearedVariant != "" {
			if _, ok := g[s.ClearedVariant]; !ok {
				errs = append(errs, unknownScene(chapter, id, "clearedVariant", s.ClearedVariant))
			}
		}
		for _, d := range s.Available() {
			field := "directions." + string(d)
			if !d.Known() {
				errs = append(errs, ValidationError{
					Category: ValCatUnknownDirection,
					Chapter:  chapter,
					SceneID:  id,
					Field:    field,
					Err:      fmt.Errorf("unknown direction %q", d),
				})
			}
			e := s.Directions[d]
			if me, ok := e.(MalformedEdge); ok {
				errs = append(errs, ValidationError{
					Category: ValCatMalformedBeat,
					Chapter:  chapter,
					SceneID:  id,
					Field:    field,
					Err:      fmt.Errorf("%w: edge tag %q", ErrMalformedBeat, me.Tag),
				})
				continue
			}
			for _, target := range targets(e) {
				if _, ok := g[target]; !ok {
					errs = append(errs, unknownScene(chapter, id, field, target))
				}
			}
		}
	}
	return errs
}

// ValidateRoles checks that every scene role and cleared remap in m names a
// scene of g, and that both gate secrets are numeric.
func ValidateRoles(m Manifest, g SceneGraph) []ValidationError {
	var errs []ValidationError
	chapter := m.Chapters.Scene
	roles := []struct {
		field string
		id    string
	}{
		{"scenes.start", m.Scenes.Start},
		{"scenes.curtain", m.Scenes.Curtain},
		{"scenes.hint", m.Scenes.Hint},
		{"scenes.escape", m.Scenes.Escape},
		{"scenes.door", m.Scenes.Door},
		{"scenes.password", m.Scenes.Password},
		{"scenes.cleared", m.Scenes.Cleared},
		{"scenes.end", m.Scenes.End},
	}
	for _, r := range roles {
		if _, ok := g[r.id]; !ok {
			errs = append(errs, ValidationError{
				Category: ValCatMissingRole,
				Chapter:  chapter,
				Field:    r.field,
				Err:      fmt.Errorf("%w: %q", ErrUnknownScene, r.id),
			})
		}
	}
	for _, from := range sortedKeys(m.ClearedMap) {
		to := m.ClearedMap[from]
		if _, ok := g[to]; !ok {
			errs = append(errs, unknownScene(chapter, from, "cleared_variants", to))
		}
	}
	for _, s := range []struct{ field, secret string }{
		{"gates.first", m.Gates.First},
		{"gates.final", m.Gates.Final},
	} {
		if !numeric(s.secret) {
			errs = append(errs, ValidationError{
				Category: ValCatInvalidSecret,
				Chapter:  ManifestFile,
				Field:    s.field,
				Err:      ErrInvalidSecret,
			})
		}
	}
	return errs
}

func unknownScene(chapter, id, field, target string) ValidationError {
	return ValidationError{
		Category: ValCatUnknownScene,
		Chapter:  chapter,
		SceneID:  id,
		Field:    field,
		Err:      fmt.Errorf("%w: %q", ErrUnknownScene, target),
	}
}

func numeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ValidateStory checks every chapter of src reachable from its manifest,
// following chapter beats from the start chapter. It returns the chapters
// it visited in order. Documents that cannot be read or decoded are
// reported as ValCatUnreadable.
func ValidateStory(src Source) ([]string, []ValidationError) {
	var errs []ValidationError
	m := DefaultManifest()
	if data, err := src.Manifest(); err == nil {
		pm, perr := ParseManifest(data)
		if perr != nil {
			errs = append(errs, ValidationError{Category: ValCatUnreadable, Chapter: ManifestFile, Err: perr})
		} else {
			m = pm
		}
	}

	l := &Loader{}
	seen := make(map[string]bool)
	var visited []string
	queue := m.ChapterIDs()
	for len(queue) > 0 {
		ch := queue[0]
		queue = queue[1:]
		if ch == "" || seen[ch] {
			continue
		}
		seen[ch] = true
		visited = append(visited, ch)

		if ch == m.Chapters.Scene {
			g, err := l.graphFrom(src, ch)
			if err != nil {
				errs = append(errs, ValidationError{Category: ValCatUnreadable, Chapter: ch, Err: err})
				continue
			}
			errs = append(errs, ValidateGraph(ch, g)...)
			errs = append(errs, ValidateRoles(m, g)...)
			continue
		}

		beats, err := l.linearFrom(src, ch)
		if err != nil {
			errs = append(errs, ValidationError{Category: ValCatUnreadable, Chapter: ch, Err: err})
			continue
		}
		errs = append(errs, ValidateLinear(ch, beats)...)
		for _, b := range beats {
			if cb, ok := b.(ChapterBeat); ok {
				next := cb.Chapter
				if next == "" {
					next = m.Chapters.DefaultNext
				}
				queue = append(queue, next)
			}
		}
	}
	return visited, errs
}
