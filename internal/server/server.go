package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/elibrary/internal/interfaces"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 30 * time.Second
	IdleTimeout  = 60 * time.Second
)

type Server struct {
	Port       string
	Host       string
	server     *http.Server
	mux        *http.ServeMux
	middleware []func(http.Handler) http.Handler
	Logger     interfaces.Logger
}

// NewServer creates a new Server instance with the specified host and port.
func NewServer(host, port string, logger interfaces.Logger) *Server {
	mux := http.NewServeMux()
	server := &http.Server{
		Addr:         host + ":" + port,
		Handler:      mux,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	return &Server{
		Host:   host,
		Port:   port,
		server: server,
		mux:    mux,
		Logger: logger,
	}
}

var _ interfaces.Server = (*Server)(nil)

// AddRoute registers handler under a ServeMux pattern such as "GET /api/books/{id}".
// Every route is traced with otelhttp under its pattern. A pattern that conflicts with an
// existing one is reported as an error.
func (s *Server) AddRoute(pattern string, handler http.Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to add route %s: %v", pattern, r)
		}
	}()

	s.mux.Handle(pattern, otelhttp.NewHandler(handler, pattern))
	s.Logger.Info("Route added", "route", pattern)
	return nil
}

// Use appends middleware around every route. The first middleware given is the outermost.
func (s *Server) Use(middleware ...func(http.Handler) http.Handler) {
	s.middleware = append(s.middleware, middleware...)
	s.server.Handler = s.Handler()
}

// Handler returns the mux wrapped in the registered middleware.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	for i := len(s.middleware) - 1; i >= 0; i-- {
		h = s.middleware[i](h)
	}
	return h
}

// ListenAndServe starts the HTTP server and blocks until it stops. A server stopped by
// Shutdown returns nil.
func (s *Server) ListenAndServe() error {
	s.Logger.Info("Starting server", "host", s.Host, "port", s.Port)
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.Logger.Error("Failed to start server", "error", err)
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("Shutting down server", "host", s.Host, "port", s.Port)
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
