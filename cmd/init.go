package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/novella/internal/config"
	"github.com/papapumpkin/novella/internal/story"
	"github.com/papapumpkin/novella/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write the bundled story to a directory for editing",
	Long: `Copy the bundled story (story.toml and the chapter documents) into dir,
default "` + config.DefaultStoryDir + `". Existing files are left alone unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite existing files")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	printer := &ui.Printer{Out: cmd.ErrOrStderr()}
	force, _ := cmd.Flags().GetBool("force")
	dir := config.DefaultStoryDir
	if len(args) == 1 {
		dir = args[0]
	}

	written, err := writeStory(dir, force)
	if err != nil {
		return err
	}
	printer.Info(fmt.Sprintf("wrote %d file(s) to %s", written, dir))
	return nil
}

// writeStory copies the bundled story into dir and returns the number of
// files written.
func writeStory(dir string, force bool) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("init: %w", err)
	}
	src := story.FS()
	written := 0
	err := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		dst := filepath.Join(dir, filepath.FromSlash(path))
		if !force {
			if _, err := os.Stat(dst); err == nil {
				return nil
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
		data, err := fs.ReadFile(src, path)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return err
		}
		written++
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("init: %w", err)
	}
	return written, nil
}
