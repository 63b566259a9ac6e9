package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/novella/internal/config"
	"github.com/papapumpkin/novella/internal/playlog"
	"github.com/papapumpkin/novella/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats [db]",
	Short: "Summarize the play log",
	Long: `Print session, visit and password attempt counts from a play log
database, followed by the most visited scenes. Without an argument the
configured playlog_path is read.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().Int("top", 10, "number of scenes to list")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	printer := &ui.Printer{Out: cmd.OutOrStdout()}
	top, _ := cmd.Flags().GetInt("top")

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		path = cfg.PlaylogPath
	}
	if path == "" {
		return fmt.Errorf("stats: no database given and playlog_path is not set")
	}

	ctx := context.Background()
	store, err := playlog.Open(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()

	sum, err := store.Summarize(ctx)
	if err != nil {
		return err
	}
	scenes, err := store.TopScenes(ctx, top)
	if err != nil {
		return err
	}
	printer.Stats(sum, scenes)
	return nil
}
