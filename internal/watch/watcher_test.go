package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher(%q): %v", dir, err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcher_DetectsChapterChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "chapter1.json")
	if err := os.WriteFile(file, []byte(`{"texts": ["a"]}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	w := startWatcher(t, dir)

	if err := os.WriteFile(file, []byte(`{"texts": ["b"]}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case c := <-w.Changes:
		if c.Chapter != "chapter1" {
			t.Errorf("Chapter = %q, want %q", c.Chapter, "chapter1")
		}
		if c.Kind != ChangeModified {
			t.Errorf("Kind = %s, want %s", c.Kind, ChangeModified)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcher_DetectsManifest(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "story.toml"), []byte("title = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case c := <-w.Changes:
		if c.Kind != ChangeManifest || c.Chapter != "" {
			t.Errorf("change = %+v, want a manifest change", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for manifest change")
	}
}

func TestWatcher_DetectsRemoval(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "prologue.yaml")
	if err := os.WriteFile(file, []byte("texts: [a]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	w := startWatcher(t, dir)

	if err := os.Remove(file); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	select {
	case c := <-w.Changes:
		if c.Kind != ChangeRemoved || c.Chapter != "prologue" {
			t.Errorf("change = %+v, want prologue removed", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for removal")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	for _, name := range []string{"notes.txt", ".chapter1.json.swp", "image.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(%q): %v", name, err)
		}
	}

	select {
	case c := <-w.Changes:
		t.Errorf("unexpected change event: %+v", c)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestIsStoryFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"/s/chapter2.json", true},
		{"/s/prologue.yaml", true},
		{"/s/prologue.yml", true},
		{"/s/story.toml", true},
		{"/s/other.toml", false},
		{"/s/.hidden.json", false},
		{"/s/readme.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsStoryFile(tt.name); got != tt.want {
				t.Errorf("IsStoryFile(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
