// Package watch reports edits to a story directory so a running session can
// hot-reload its script data.
package watch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/papapumpkin/novella/internal/script"
)

// Debounce is how long a file must stay quiet before its change is reported.
const Debounce = 100 * time.Millisecond

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // chapter document written or created
	ChangeRemoved                    // chapter document deleted
	ChangeManifest                   // story.toml written, created or deleted
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeRemoved:
		return "removed"
	case ChangeManifest:
		return "manifest"
	default:
		return "modified"
	}
}

// Change represents a detected change in the story directory.
type Change struct {
	Kind    ChangeKind
	Chapter string // empty for manifest changes
	File    string
}

// Watcher monitors a story directory for chapter and manifest changes using
// fsnotify.
type Watcher struct {
	Dir     string
	Changes <-chan Change // Read-only external channel

	changes chan Change
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a new watcher for the given story directory.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	return &Watcher{
		Dir:     dir,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching the story directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(Debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !IsStoryFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = time.Now()
			}

		case <-ticker.C:
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= Debounce {
					w.emitChange(file)
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

// IsStoryFile reports whether name is a chapter document or the manifest.
func IsStoryFile(name string) bool {
	base := filepath.Base(name)
	if base == script.ManifestFile {
		return true
	}
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch filepath.Ext(base) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func (w *Watcher) emitChange(file string) {
	base := filepath.Base(file)
	c := Change{Kind: ChangeModified, File: file}
	switch {
	case base == script.ManifestFile:
		c.Kind = ChangeManifest
	default:
		c.Chapter = strings.TrimSuffix(base, filepath.Ext(base))
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			c.Kind = ChangeRemoved
		}
	}

	// Drop when the consumer is behind.
	select {
	case w.changes <- c:
	default:
	}
}
