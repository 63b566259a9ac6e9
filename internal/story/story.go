// Package story embeds the bundled story. It is the fallback source when the
// configured story directory is missing a chapter, and the template written
// by `novella init`.
package story

import (
	"embed"
	"io/fs"

	"github.com/papapumpkin/novella/internal/script"
)

//go:embed data
var files embed.FS

// FS returns the bundled story files rooted at the story directory.
func FS() fs.FS {
	sub, err := fs.Sub(files, "data")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory exists
	}
	return sub
}

// Source returns the bundled story as a script.Source.
func Source() script.FSSource {
	return script.FSSource{FS: FS(), Label: "embedded"}
}
