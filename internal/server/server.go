// Package server implements the sigil HTTP API.
//
// Routes:
//
//	GET /healthz                       liveness and build version
//	GET /v1/seals/{identifier}.{fmt}   a rendered seal (svg, png, pdf, json, dot)
//	GET /v1/colorways                  the canonical colorways
//	GET /v1/colorways/{identifier}     the colorway an identifier selects
//	GET /v1/layouts/{count}            grid geometry for a symbol count
//
// Seal routes accept size, colorway, scale and title query parameters with
// the same meaning as the pour command's flags. Errors are JSON bodies
// carrying the pipeline's error code; see pkg/httputil.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sigil/pkg/core/seal"
	sigilerrors "github.com/matzehuels/sigil/pkg/errors"
	"github.com/matzehuels/sigil/pkg/httputil"
	"github.com/matzehuels/sigil/pkg/pipeline"
)

const (
	// DefaultMaxAge is the Cache-Control lifetime of rendered seals.
	DefaultMaxAge = 24 * time.Hour

	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server serves seals over HTTP.
type Server struct {
	runner *pipeline.Runner
	dict   *seal.Dictionary
	logger *log.Logger
	maxAge time.Duration
	router chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithDictionary sets the symbol dictionary used for every seal.
func WithDictionary(d *seal.Dictionary) Option {
	return func(s *Server) { s.dict = d }
}

// WithMaxAge sets the Cache-Control lifetime of seal responses.
// Zero disables client caching.
func WithMaxAge(d time.Duration) Option {
	return func(s *Server) { s.maxAge = d }
}

// New returns a server that renders through runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger.WithPrefix("http"),
		maxAge: DefaultMaxAge,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/seals/{seal}", s.handleSeal)
		r.Get("/colorways", s.handleColorways)
		r.Get("/colorways/{identifier}", s.handleColorwayFor)
		r.Get("/layouts/{count}", s.handleLayout)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, sigilerrors.New(sigilerrors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
