package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/novella/internal/config"
	"github.com/papapumpkin/novella/internal/script"
	"github.com/papapumpkin/novella/internal/story"
	"github.com/papapumpkin/novella/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate a story directory",
	Long: `Check every chapter reachable from the story's manifest: unrecognized
beats and actions, edges to missing scenes, scene roles and gate secrets.
Without a directory argument the configured story directory is checked, or
the bundled story when that directory does not exist.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	printer := &ui.Printer{Out: cmd.ErrOrStderr()}

	var src script.Source
	if len(args) == 1 {
		src = script.DirSource(args[0])
	} else {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dir := storyDir(cfg.StoryDir); dir != "" {
			src = script.DirSource(dir)
		} else {
			src = story.Source()
		}
	}

	chapters, errs := script.ValidateStory(src)
	printer.ValidateResult(fmt.Sprint(src), len(chapters), errs)
	if len(errs) > 0 {
		return fmt.Errorf("validation failed with %d error(s)", len(errs))
	}
	return nil
}
