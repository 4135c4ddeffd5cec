// Package server exposes the layout pipeline and album storage over HTTP.
//
// Routes (all under /api/v1):
//
//	POST   /layout               pack an ad-hoc item list
//	GET    /albums               list stored albums
//	POST   /albums               create an album
//	GET    /albums/{id}          fetch an album
//	PUT    /albums/{id}          replace an album
//	DELETE /albums/{id}          delete an album
//	GET    /albums/{id}/layout   pack a stored album (format=svg|png|json)
//
// Responses are JSON except for rendered artifacts, which are served with
// their native content types. Errors carry a machine-readable code from
// pkg/errors.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nakamurapomeo/collage-app/pkg/observability"
	"github.com/nakamurapomeo/collage-app/pkg/pipeline"
	"github.com/nakamurapomeo/collage-app/pkg/store"
)

const shutdownTimeout = 5 * time.Second

// Server is the HTTP API server.
type Server struct {
	addr   string
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
	http   *http.Server
}

// Config contains server construction options.
type Config struct {
	// Addr is the listen address (e.g., ":8080").
	Addr string

	// Store is the album storage backend. Required.
	Store store.Store

	// Runner executes the layout pipeline. Required.
	Runner *pipeline.Runner

	// Logger receives request logs. Defaults to log.Default().
	Logger *log.Logger
}

// New creates a server with its routes configured.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	s := &Server{
		addr:   cfg.Addr,
		store:  cfg.Store,
		runner: cfg.Runner,
		logger: cfg.Logger,
	}
	s.http = &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the chi route tree. Exposed so tests can drive the handlers
// through httptest without binding a socket.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)

		r.Route("/albums", func(r chi.Router) {
			r.Get("/", s.handleListAlbums)
			r.Post("/", s.handleCreateAlbum)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetAlbum)
				r.Put("/", s.handlePutAlbum)
				r.Delete("/", s.handleDeleteAlbum)
				r.Get("/layout", s.handleAlbumLayout)
			})
		})
	})

	return r
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("graceful shutdown failed, closing", "err", err)
		return s.http.Close()
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// logRequests logs each request with method, path, status, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.Host, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start)

		hooks.OnResponse(r.Context(), r.Method, r.Host, r.URL.Path, ww.Status(), duration)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration)
	})
}
