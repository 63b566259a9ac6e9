package script

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// ManifestFile is the manifest name inside a story source.
const ManifestFile = "story.toml"

// Source supplies raw story documents keyed by chapter id.
type Source interface {
	Document(chapter string) ([]byte, Format, error)
	Manifest() ([]byte, error)
	String() string
}

// FSSource reads <chapter>.json, <chapter>.yaml or <chapter>.yml from an
// fs.FS, in that order.
type FSSource struct {
	FS    fs.FS
	Label string
}

// DirSource returns a Source over a directory on disk.
func DirSource(dir string) FSSource {
	return FSSource{FS: os.DirFS(dir), Label: dir}
}

func (s FSSource) String() string { return s.Label }

// Document returns the first document found for chapter.
func (s FSSource) Document(chapter string) ([]byte, Format, error) {
	if !fs.ValidPath(chapter) || path.Base(chapter) != chapter {
		return nil, 0, fmt.Errorf("%s: invalid chapter id %q: %w", s.Label, chapter, fs.ErrInvalid)
	}
	candidates := []struct {
		ext string
		f   Format
	}{
		{".json", FormatJSON},
		{".yaml", FormatYAML},
		{".yml", FormatYAML},
	}
	for _, c := range candidates {
		data, err := fs.ReadFile(s.FS, chapter+c.ext)
		if err == nil {
			return data, c.f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("%s: reading %s%s: %w", s.Label, chapter, c.ext, err)
		}
	}
	return nil, 0, fmt.Errorf("%s: no document for chapter %q: %w", s.Label, chapter, fs.ErrNotExist)
}

// Manifest returns the raw story.toml.
func (s FSSource) Manifest() ([]byte, error) {
	data, err := fs.ReadFile(s.FS, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Label, err)
	}
	return data, nil
}
