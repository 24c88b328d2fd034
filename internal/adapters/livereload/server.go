package livereload

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/browser"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

//go:embed client.js
var clientScript []byte

const (
	shutdownTimeout = 5 * time.Second
	pingInterval    = 30 * time.Second
	writeTimeout    = 10 * time.Second
)

var _ ports.ReloadServer = (*Server)(nil)

// Server is the development HTTP server.
type Server struct {
	logger ports.Logger
	hub    *Hub
	open   func(string) error

	upgrader websocket.Upgrader

	mu    sync.Mutex
	addr  string
	ready chan struct{}
}

// NewServer creates a Server that logs through logger.
func NewServer(logger ports.Logger) *Server {
	s := &Server{
		logger: logger,
		hub:    NewHub(),
		open:   browser.OpenURL,
		ready:  make(chan struct{}),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: sameHost}
	return s
}

// Broadcast pushes event to every connected browser.
func (s *Server) Broadcast(event domain.ReloadEvent) {
	s.hub.Broadcast(event)
}

// Serve listens on opts.Port and serves opts.Root until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, opts ports.ServeOptions) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort("localhost", strconv.Itoa(opts.Port)))
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "port", opts.Port)
	}

	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()
	close(s.ready)

	srv := &http.Server{
		Handler:           s.handler(opts.Root),
		ReadHeaderTimeout: 10 * time.Second,
	}

	startURL := fmt.Sprintf("http://%s/%s", s.addr, opts.StartPath)
	s.logger.Info("serving " + opts.Root + " at " + startURL)
	if opts.Open {
		if err := s.open(startURL); err != nil {
			s.logger.Warn("could not open browser: " + err.Error())
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, domain.ErrServerFailed.Error())
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handler(root string) http.Handler {
	dir := http.Dir(root)
	mux := http.NewServeMux()
	mux.HandleFunc(wsPath, s.serveWS)
	mux.HandleFunc(scriptPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		_, _ = w.Write(clientScript)
	})
	mux.Handle("/", htmlHandler(dir, http.FileServer(dir)))
	return mux
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := s.hub.register()
	defer s.hub.unregister(c.id)

	go func() {
		// Drain control frames; a read error means the browser went away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.hub.unregister(c.id)
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	defer func() { _ = conn.Close() }()

	for {
		select {
		case msg, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sameHost accepts websocket upgrades without an Origin header or from a
// page served by this server.
func sameHost(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}
