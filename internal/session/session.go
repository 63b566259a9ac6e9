// Package session assembles a playable Controller from runtime config: the
// story loader with its embedded fallback, the manifest, localized messages,
// and the telemetry and play-log observers.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/papapumpkin/novella/internal/engine"
	"github.com/papapumpkin/novella/internal/i18n"
	"github.com/papapumpkin/novella/internal/playlog"
	"github.com/papapumpkin/novella/internal/script"
	"github.com/papapumpkin/novella/internal/story"
	"github.com/papapumpkin/novella/internal/telemetry"
	"github.com/papapumpkin/novella/internal/timeline"
)

// Options configures a Session.
type Options struct {
	StoryDir string // primary script directory; empty uses the embedded story only
	Strict   bool
	Locale   string
	Surface  string // recorded in the play log, e.g. "tui" or "web"
	ID       string // optional; defaults to the emitter's session, then a fresh uuid

	Telemetry *telemetry.Emitter // optional
	Playlog   *playlog.Store     // optional
	Logger    io.Writer          // optional; nil = os.Stderr
}

// Session is one play-through bound to a display surface.
type Session struct {
	ID         string
	Controller *engine.Controller
	Printer    *i18n.Printer
	Loader     *script.Loader

	opts   Options
	logger io.Writer
}

// NewLoader reads chapters from dir, falling back to the embedded story.
func NewLoader(dir string, strict bool, logger io.Writer) *script.Loader {
	var primary script.Source = story.Source()
	var fallback script.Source
	if dir != "" {
		primary, fallback = script.DirSource(dir), story.Source()
	}
	l := script.NewLoader(primary, fallback)
	l.Strict = strict
	l.Logger = logger
	return l
}

// New builds a session that draws on display and schedules on sched. The
// caller starts play with Controller.Start and calls Close when done.
func New(ctx context.Context, opts Options, display engine.Display, sched timeline.Scheduler) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = os.Stderr
	}

	catalog, err := i18n.Load()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	printer := catalog.Printer(opts.Locale)

	loader := NewLoader(opts.StoryDir, opts.Strict, logger)
	manifest, err := loader.LoadManifest()
	if err != nil {
		if !errors.Is(err, script.ErrNoManifest) {
			return nil, fmt.Errorf("session: %w", err)
		}
		fmt.Fprintf(logger, "session: %v, using defaults\n", err)
	}

	id := opts.ID
	if id == "" {
		id = opts.Telemetry.Session()
	}
	if id == "" {
		id = uuid.NewString()
	}
	s := &Session{
		ID:      id,
		Printer: printer,
		Loader:  loader,
		opts:    opts,
		logger:  logger,
	}

	c, err := engine.New(engine.Options{
		Loader:        loader,
		Manifest:      manifest,
		Display:       display,
		Scheduler:     sched,
		RejectMessage: printer.Text("password.rejected"),
		Logger:        logger,
		OnEvent:       func(e engine.Event) { s.observe(ctx, e) },
	})
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.Controller = c

	if opts.Playlog != nil {
		if err := opts.Playlog.StartSession(ctx, id, opts.Surface); err != nil {
			fmt.Fprintf(logger, "session: %v\n", err)
		}
	}
	return s, nil
}

// Close records the end of the session.
func (s *Session) Close(ctx context.Context) {
	s.emit(telemetry.Event{Kind: telemetry.KindSessionEnd})
	if s.opts.Playlog != nil {
		if err := s.opts.Playlog.EndSession(ctx, s.ID); err != nil {
			fmt.Fprintf(s.logger, "session: %v\n", err)
		}
	}
}

// Reload restarts the session and records it.
func (s *Session) Reload() {
	s.emit(telemetry.Event{Kind: telemetry.KindReload})
	s.Controller.Reload()
}

func (s *Session) emit(evt telemetry.Event) {
	if evt.Session == "" {
		evt.Session = s.ID
	}
	if err := s.opts.Telemetry.Emit(evt); err != nil {
		fmt.Fprintf(s.logger, "session: %v\n", err)
	}
}

func telemetryKind(k engine.EventKind) string {
	switch k {
	case engine.EventStart:
		return telemetry.KindSessionStart
	case engine.EventChapter:
		return telemetry.KindChapter
	case engine.EventScene:
		return telemetry.KindSceneEnter
	case engine.EventPassword:
		return telemetry.KindPassword
	case engine.EventEscape:
		return telemetry.KindEscape
	case engine.EventUnknownScene:
		return telemetry.KindUnknownScene
	case engine.EventDataUnavailable:
		return telemetry.KindDataUnavailable
	case engine.EventMalformedBeat:
		return telemetry.KindMalformedBeat
	}
	return string(k)
}

// observe forwards an engine event to telemetry and the play log.
func (s *Session) observe(ctx context.Context, e engine.Event) {
	evt := telemetry.Event{Kind: telemetryKind(e.Kind), Chapter: e.Chapter, Scene: e.Scene}
	switch e.Kind {
	case engine.EventScene:
		evt.Data = map[string]bool{"first_visit": e.FirstVisit}
	case engine.EventPassword:
		evt.Data = map[string]any{"gate": e.Gate.String(), "accepted": e.Accepted}
	}
	if e.Err != nil {
		evt.Data = map[string]string{"error": e.Err.Error()}
	}
	s.emit(evt)

	if s.opts.Playlog == nil {
		return
	}
	var err error
	switch e.Kind {
	case engine.EventScene:
		err = s.opts.Playlog.RecordVisit(ctx, s.ID, e.Chapter, e.Scene, e.FirstVisit)
	case engine.EventPassword:
		err = s.opts.Playlog.RecordAttempt(ctx, s.ID, e.Gate.String(), e.Accepted)
	}
	if err != nil {
		fmt.Fprintf(s.logger, "session: %v\n", err)
	}
}
