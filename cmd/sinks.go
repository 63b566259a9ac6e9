package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/papapumpkin/novella/internal/config"
	"github.com/papapumpkin/novella/internal/playlog"
	"github.com/papapumpkin/novella/internal/session"
	"github.com/papapumpkin/novella/internal/telemetry"
)

// sinks holds the optional outputs a command opens from config.
type sinks struct {
	logger    io.Writer
	telemetry *telemetry.Emitter
	playlog   *playlog.Store

	logFile *os.File
}

// openSinks opens the log file, telemetry stream and play log named by cfg.
// Without a log file, diagnostics go to fallback.
func openSinks(ctx context.Context, cfg config.Config, fallback io.Writer) (*sinks, error) {
	s := &sinks{logger: fallback}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.logFile, s.logger = f, f
	}
	if cfg.TelemetryPath != "" {
		em, err := telemetry.NewEmitter(cfg.TelemetryPath)
		if err != nil {
			s.close()
			return nil, err
		}
		s.telemetry = em
	}
	if cfg.PlaylogPath != "" {
		store, err := playlog.Open(ctx, cfg.PlaylogPath)
		if err != nil {
			s.close()
			return nil, err
		}
		s.playlog = store
	}
	return s, nil
}

func (s *sinks) close() {
	if s.playlog != nil {
		_ = s.playlog.Close()
	}
	if s.telemetry != nil {
		_ = s.telemetry.Close()
	}
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}

// sessionOptions builds session options for surface from cfg and s.
func (s *sinks) sessionOptions(cfg config.Config, surface string) session.Options {
	return session.Options{
		StoryDir:  storyDir(cfg.StoryDir),
		Strict:    cfg.Strict,
		Locale:    cfg.Locale,
		Surface:   surface,
		Telemetry: s.telemetry,
		Playlog:   s.playlog,
		Logger:    s.logger,
	}
}

// storyDir returns dir when it exists; otherwise empty, which selects the
// bundled story alone.
func storyDir(dir string) string {
	info, err := os.Stat(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "novella: %v\n", err)
		}
		return ""
	}
	if !info.IsDir() {
		return ""
	}
	return dir
}

func isStderrTTY() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
