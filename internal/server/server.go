// Package server exposes the chart pipeline over HTTP. It accepts
// pipeline options plus inline dataset JSON and returns rendered
// artifacts, sharing the Runner (and its cache) across requests.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jthierer/bubblepack/pkg/buildinfo"
	"github.com/jthierer/bubblepack/pkg/pipeline"
)

// Server wires the pipeline runner into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// Options configures the server.
type Options struct {
	// MaxBodyBytes caps the request body size. Zero means the default
	// of 4 MiB.
	MaxBodyBytes int64

	// Timeout aborts requests that run too long. Zero means the default
	// of 30 seconds.
	Timeout time.Duration
}

const (
	defaultMaxBodyBytes = 4 << 20
	defaultTimeout      = 30 * time.Second
)

// New creates a server around the given runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}

	s := &Server{
		runner: runner,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(opts.Timeout))
	r.Use(maxBody(opts.MaxBodyBytes))

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/render", s.handleRender)
	r.Post("/api/layout", s.handleLayout)

	s.router = r
	return s
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until the context is canceled, then
// shuts it down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr, "version", buildinfo.Version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
