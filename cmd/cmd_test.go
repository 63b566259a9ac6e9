package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/papapumpkin/novella/internal/playlog"
	"github.com/papapumpkin/novella/internal/script"
)

func TestCommands_Registered(t *testing.T) {
	t.Parallel()

	want := []string{"play", "serve", "validate", "stats", "events", "init"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %q subcommand to be registered on rootCmd", name)
		}
	}
}

func TestPlayCmd_Flags(t *testing.T) {
	t.Parallel()

	for _, flag := range []string{"no-watch", "telemetry", "playlog", "log-file"} {
		if playCmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag %q to be registered on play command", flag)
		}
	}
	for _, flag := range []string{"story", "locale", "strict", "config", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent flag %q on root command", flag)
		}
	}
}

func TestRunPlay_RequiresTTY(t *testing.T) {
	// Not parallel: reads shared viper state.
	err := runPlay(playCmd, nil)
	if err == nil {
		t.Fatal("expected error when not on a TTY")
	}
	if got, want := err.Error(), "novella play requires a TTY (terminal)"; got != want {
		t.Errorf("unexpected error: %q, want %q", got, want)
	}
}

func TestWriteStory(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "story")

	n, err := writeStory(dir, false)
	if err != nil {
		t.Fatalf("writeStory: %v", err)
	}
	if n != 4 {
		t.Errorf("wrote %d files, want 4", n)
	}
	if n, _ := writeStory(dir, false); n != 0 {
		t.Errorf("second write without force wrote %d files, want 0", n)
	}
	if n, _ := writeStory(dir, true); n != 4 {
		t.Errorf("forced write wrote %d files, want 4", n)
	}

	if _, errs := script.ValidateStory(script.DirSource(dir)); len(errs) != 0 {
		t.Errorf("written story does not validate: %v", errs)
	}
}

func TestRunValidate(t *testing.T) {
	// Not parallel: shares validateCmd output.
	dir := t.TempDir()
	if _, err := writeStory(dir, false); err != nil {
		t.Fatalf("writeStory: %v", err)
	}
	var buf bytes.Buffer
	validateCmd.SetErr(&buf)
	defer validateCmd.SetErr(nil)

	if err := runValidate(validateCmd, []string{dir}); err != nil {
		t.Fatalf("runValidate on a clean story: %v\n%s", err, buf.String())
	}
	if !strings.Contains(buf.String(), "3 chapter(s), no errors") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	broken := `{"texts": ["a", {"cmd": "explode"}, {"cmd": "nextChapter", "chapter": "chapter1"}]}`
	if err := os.WriteFile(filepath.Join(dir, "prologue.json"), []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	err := runValidate(validateCmd, []string{dir})
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	if !strings.Contains(buf.String(), "[malformed_beat]") {
		t.Errorf("expected a malformed beat report, got:\n%s", buf.String())
	}
}

func TestRunStats(t *testing.T) {
	// Not parallel: shares statsCmd output.
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "play.db")
	store, err := playlog.Open(ctx, path)
	if err != nil {
		t.Fatalf("playlog.Open: %v", err)
	}
	if err := store.StartSession(ctx, "s1", "tui"); err != nil {
		t.Fatal(err)
	}
	if err := store.RecordVisit(ctx, "s1", "chapter2", "room-front", true); err != nil {
		t.Fatal(err)
	}
	store.Close()

	var buf bytes.Buffer
	statsCmd.SetOut(&buf)
	defer statsCmd.SetOut(nil)

	if err := runStats(statsCmd, []string{path}); err != nil {
		t.Fatalf("runStats: %v", err)
	}
	if !strings.Contains(buf.String(), "room-front") {
		t.Errorf("expected room-front in stats, got:\n%s", buf.String())
	}
}

func TestPrintEvent(t *testing.T) {
	t.Parallel()

	line := `{"ts":"2026-01-02T15:04:05Z","kind":"password","session":"0123456789abcdef","chapter":"chapter2","scene":"display-zoomin","data":{"gate":"first","accepted":false}}`

	var buf bytes.Buffer
	printEvent(&buf, line, "")
	got := buf.String()
	for _, want := range []string{"[15:04:05]", "password", "session=01234567", "scene=display-zoomin", "accepted=false gate=first"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}

	buf.Reset()
	printEvent(&buf, line, "other")
	if buf.Len() != 0 {
		t.Errorf("event of another session printed: %q", buf.String())
	}

	buf.Reset()
	printEvent(&buf, "not json", "")
	if !strings.HasPrefix(buf.String(), "??? ") {
		t.Errorf("garbage line = %q, want ??? prefix", buf.String())
	}
}
