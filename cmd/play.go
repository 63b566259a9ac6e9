package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/novella/internal/config"
	"github.com/papapumpkin/novella/internal/session"
	"github.com/papapumpkin/novella/internal/timeline"
	"github.com/papapumpkin/novella/internal/tui"
	"github.com/papapumpkin/novella/internal/watch"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the story in the terminal",
	Long: `Play the story in a full-screen terminal UI. Chapters are read from the
story directory, falling back to the bundled story for anything missing.
Edits to the story directory are picked up while playing unless --no-watch
is given.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Bool("no-watch", false, "do not reload the story directory on change")
	playCmd.Flags().String("telemetry", "", "append JSONL events to this file")
	playCmd.Flags().String("playlog", "", "record visits in this SQLite database")
	playCmd.Flags().String("log-file", "", "write diagnostics to this file")
	rootCmd.AddCommand(playCmd)
}

// applySinkFlags overrides cfg with any sink flags set on cmd.
func applySinkFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("telemetry"); v != "" {
		cfg.TelemetryPath = v
	}
	if v, _ := cmd.Flags().GetString("playlog"); v != "" {
		cfg.PlaylogPath = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applySinkFlags(cmd, &cfg)
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.Watch = false
	}

	if !isStderrTTY() {
		return fmt.Errorf("novella play requires a TTY (terminal)")
	}

	ctx := context.Background()
	// The terminal belongs to the UI; diagnostics only go to a log file.
	out, err := openSinks(ctx, cfg, io.Discard)
	if err != nil {
		return err
	}
	defer out.close()

	opts := out.sessionOptions(cfg, "tui")
	screen := tui.NewScreen()
	queue := timeline.NewQueue()
	defer queue.Close()

	sess, err := session.New(ctx, opts, screen, queue)
	if err != nil {
		return err
	}

	var changes <-chan watch.Change
	if cfg.Watch && opts.StoryDir != "" {
		w, err := watch.NewWatcher(opts.StoryDir)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			fmt.Fprintf(out.logger, "novella: watch %s: %v\n", opts.StoryDir, err)
		} else {
			defer w.Stop()
			changes = w.Changes
		}
	}

	return tui.Run(tui.NewProgram(sess, screen, queue.Ready(), changes))
}
