package script

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Loader reads chapters from a primary Source and, when that fails, from a
// fallback Source. When both fail it returns the data it last loaded
// successfully together with an error wrapping ErrDataUnavailable.
//
// A Loader is owned by one session and is not safe for concurrent use.
type Loader struct {
	Primary  Source
	Fallback Source    // optional
	Strict   bool      // reject documents that fail validation
	Logger   io.Writer // optional; nil = os.Stderr

	linear []Beat
	graph  SceneGraph
}

// NewLoader creates a Loader over primary with an optional fallback.
func NewLoader(primary, fallback Source) *Loader {
	return &Loader{Primary: primary, Fallback: fallback}
}

func (l *Loader) logger() io.Writer {
	if l.Logger != nil {
		return l.Logger
	}
	return os.Stderr
}

func (l *Loader) sources() []Source {
	var out []Source
	for _, s := range []Source{l.Primary, l.Fallback} {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// LoadLinear returns the beats of chapter.
func (l *Loader) LoadLinear(chapter string) ([]Beat, error) {
	var errs []error
	for _, src := range l.sources() {
		beats, err := l.linearFrom(src, chapter)
		if err == nil {
			l.linear = beats
			return beats, nil
		}
		fmt.Fprintf(l.logger(), "script: %v\n", err)
		errs = append(errs, err)
	}
	return l.linear, fmt.Errorf("script: chapter %q: %w: %w", chapter, ErrDataUnavailable, errors.Join(errs...))
}

// LoadGraph returns the scene graph of chapter.
func (l *Loader) LoadGraph(chapter string) (SceneGraph, error) {
	var errs []error
	for _, src := range l.sources() {
		g, err := l.graphFrom(src, chapter)
		if err == nil {
			l.graph = g
			return g, nil
		}
		fmt.Fprintf(l.logger(), "script: %v\n", err)
		errs = append(errs, err)
	}
	return l.graph, fmt.Errorf("script: chapter %q: %w: %w", chapter, ErrDataUnavailable, errors.Join(errs...))
}

// LoadManifest returns the first story.toml that parses, or
// DefaultManifest with an error wrapping ErrNoManifest.
func (l *Loader) LoadManifest() (Manifest, error) {
	for _, src := range l.sources() {
		data, err := src.Manifest()
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(l.logger(), "script: %v\n", err)
			}
			continue
		}
		m, err := ParseManifest(data)
		if err != nil {
			fmt.Fprintf(l.logger(), "script: %s: %v\n", src, err)
			continue
		}
		return m, nil
	}
	return DefaultManifest(), fmt.Errorf("script: %w", ErrNoManifest)
}

func (l *Loader) linearFrom(src Source, chapter string) ([]Beat, error) {
	data, f, err := src.Document(chapter)
	if err != nil {
		return nil, err
	}
	beats, err := ParseLinear(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: chapter %q: %w", src, chapter, err)
	}
	if len(beats) == 0 {
		return nil, fmt.Errorf("%s: chapter %q: %w", src, chapter, ErrEmptyScript)
	}
	if l.Strict {
		if verrs := ValidateLinear(chapter, beats); len(verrs) > 0 {
			return nil, fmt.Errorf("%s: %w", src, &verrs[0])
		}
	}
	return beats, nil
}

func (l *Loader) graphFrom(src Source, chapter string) (SceneGraph, error) {
	data, f, err := src.Document(chapter)
	if err != nil {
		return nil, err
	}
	g, err := ParseGraph(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: chapter %q: %w", src, chapter, err)
	}
	if len(g) == 0 {
		return nil, fmt.Errorf("%s: chapter %q: %w", src, chapter, ErrEmptyScript)
	}
	if l.Strict {
		if verrs := ValidateGraph(chapter, g); len(verrs) > 0 {
			return nil, fmt.Errorf("%s: %w", src, &verrs[0])
		}
	}
	return g, nil
}
