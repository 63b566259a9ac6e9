// Package web is the browser display surface. Each websocket connection
// gets its own session and an actor goroutine that owns its controller.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/papapumpkin/novella/internal/engine"
	"github.com/papapumpkin/novella/internal/script"
	"github.com/papapumpkin/novella/internal/session"
	"github.com/papapumpkin/novella/internal/timeline"
)

//go:embed static/index.html
var indexHTML []byte

const (
	writeWait = 5 * time.Second
	pongWait  = 60 * time.Second
)

// Server serves the page and one session per websocket. Every connection
// gets its own session id; telemetry and the play log are shared.
type Server struct {
	Session session.Options
	Logger  io.Writer // optional; nil = os.Stderr

	upgrader websocket.Upgrader
}

// NewServer creates a Server whose sessions use opts.
func NewServer(opts session.Options) *Server {
	opts.Surface = "web"
	return &Server{
		Session: opts,
		Logger:  opts.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) logger() io.Writer {
	if s.Logger != nil {
		return s.Logger
	}
	return os.Stderr
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexHTML)
	})
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web: %w", err)
	}
	return nil
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Fprintf(s.logger(), "web: upgrade: %v\n", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	queue := timeline.NewQueue()
	defer queue.Close()
	display := &frameDisplay{}
	opts := s.Session
	opts.ID = uuid.NewString()
	sess, err := session.New(ctx, opts, display, queue)
	if err != nil {
		fmt.Fprintf(s.logger(), "web: %v\n", err)
		return
	}
	defer sess.Close(context.Background())

	inbound := make(chan inboundMessage)
	go func() {
		defer cancel()
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			var msg inboundMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			conn.SetReadDeadline(time.Now().Add(pongWait))
			select {
			case inbound <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	a := &actor{sess: sess, ctl: sess.Controller, display: display, conn: conn, logger: s.logger()}
	a.ctl.Start()
	if err := a.flush(); err != nil {
		return
	}

	ping := time.NewTicker(pongWait / 2)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-inbound:
			a.handle(msg)
		case fn := <-queue.Ready():
			fn()
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
			continue
		}
		if err := a.flush(); err != nil {
			return
		}
	}
}

// actor owns one connection's controller. Only the serveWS loop calls it.
type actor struct {
	sess    *session.Session
	ctl     *engine.Controller
	display *frameDisplay
	conn    *websocket.Conn
	logger  io.Writer
}

func (a *actor) handle(msg inboundMessage) {
	switch msg.Type {
	case "advance":
		a.ctl.Advance()
	case "choose":
		var p choosePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			fmt.Fprintf(a.logger, "web: choose: %v\n", err)
			return
		}
		a.ctl.Choose(script.Direction(p.Direction))
	case "search":
		a.ctl.ToggleSearch()
	case "message":
		a.ctl.ToggleMessage()
	case "skip":
		a.ctl.Skip()
	case "curtain":
		a.ctl.Curtain()
	case "reload":
		a.sess.Reload()
	case "password":
		var p passwordPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			fmt.Fprintf(a.logger, "web: password: %v\n", err)
			return
		}
		id := engine.GateFirst
		if p.Gate == engine.GateFinal.String() {
			id = engine.GateFinal
		}
		res := a.ctl.SubmitPassword(id, p.Digits)
		a.display.push(frame{Type: "result", Text: res.Message, Accepted: &res.Accepted})
	default:
		fmt.Fprintf(a.logger, "web: unknown message type %q\n", msg.Type)
	}
}

// flush writes buffered frames followed by a state summary.
func (a *actor) flush() error {
	frames := a.display.take()
	if len(frames) == 0 {
		return nil
	}
	snap := a.ctl.Snapshot()
	frames = append(frames, frame{Type: "state", Scene: snap.Scene, Mode: snap.Mode.String()})
	a.conn.SetWriteDeadline(time.Now().Add(writeWait))
	for _, f := range frames {
		if err := a.conn.WriteJSON(f); err != nil {
			fmt.Fprintf(a.logger, "web: send %s: %v\n", f.Type, err)
			return err
		}
	}
	return nil
}
