// Package httpserver wraps net/http for the toy `jobkit serve` command:
// a fixed default port, an injectable handler, and clean shutdown.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"jobkit/internal/logging"
)

// DefaultPort is used when no port is supplied.
const DefaultPort = 1234

// Server serves HTTP on a single port until its context is cancelled.
type Server struct {
	out     *logging.Logger
	port    int
	handler http.Handler

	addr string
}

// New constructs a Server. A zero or negative port selects DefaultPort; a
// nil handler installs DumpHandler.
func New(out *logging.Logger, port int, handler http.Handler) *Server {
	if port < 0 {
		port = DefaultPort
	}
	if handler == nil {
		handler = DumpHandler()
	}
	return &Server{out: out, port: port, handler: handler}
}

// Addr reports the bound listen address once Run has started.
func (s *Server) Addr() string { return s.addr }

// Run listens and serves until ctx is cancelled, then shuts down
// gracefully. It returns nil on a clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.port, err)
	}
	s.addr = listener.Addr().String()
	s.out.Info(fmt.Sprintf("serving at %s", s.addr))

	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.out.Info("server stopped")
		return nil
	}
}

// DumpHandler answers every request with the request's own metadata as
// pretty-printed JSON; the sample payload for trying the server out.
func DumpHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := map[string]string{}
		for name := range r.Header {
			headers[name] = r.Header.Get(name)
		}
		payload := map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"query":      r.URL.RawQuery,
			"proto":      r.Proto,
			"host":       r.Host,
			"remoteAddr": r.RemoteAddr,
			"headers":    headers,
		}
		content, err := json.MarshalIndent(payload, "", "    ")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(content)
	})
}
