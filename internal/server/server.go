// Package server implements the delvemap HTTP service.
//
// The service exposes the snapshot store and the render pipeline as a small
// JSON API: dungeons are ingested or generated, persisted as snapshots, and
// served back as JSON, statistics, or rendered SVG previews. Preview
// artifacts are published through per-dungeon holders, so concurrent readers
// always observe a complete artifact while a new one is being rendered.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/delvemap/delvemap/pkg/errors"
	"github.com/delvemap/delvemap/pkg/pipeline"
	"github.com/delvemap/delvemap/pkg/store"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// server is asked to stop.
const shutdownTimeout = 5 * time.Second

// Config holds the server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Width and Height are the frame dimensions for preview rendering.
	Width  float64
	Height float64

	// MinimapSize is the minimap edge length in pixels.
	MinimapSize int
}

// Server wires the store and the pipeline into an HTTP handler.
type Server struct {
	cfg      Config
	store    store.Store
	runner   *pipeline.Runner
	logger   *log.Logger
	previews *previewRegistry

	httpServer *http.Server
}

// New creates a server. The store and runner must be non-nil; a nil logger
// defaults to the standard logger.
func New(cfg Config, st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Width <= 0 {
		cfg.Width = pipeline.DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = pipeline.DefaultHeight
	}
	if cfg.MinimapSize <= 0 {
		cfg.MinimapSize = pipeline.DefaultMinimapSize
	}
	return &Server{
		cfg:      cfg,
		store:    st,
		runner:   runner,
		logger:   logger,
		previews: newPreviewRegistry(),
	}
}

// Handler builds the chi router with all routes and middleware registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	// Unknown routes and wrong verbs get the same JSON envelope as every
	// other error.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, apperrors.New(apperrors.ErrCodeUnsupported, "%s is not supported on %s", r.Method, r.URL.Path))
	})

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/dungeons", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleIngest)
		r.Post("/generate", s.handleGenerate)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleReplace)
			r.Delete("/", s.handleDelete)
			r.Get("/stats", s.handleStats)
			r.Get("/preview.svg", s.handlePreview)
			r.Get("/preview.png", s.handlePreviewPNG)
			r.Get("/minimap.svg", s.handleMinimap)
		})
	})

	return r
}

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully. It returns nil on a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("server listening", "addr", s.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down server")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		// Collect the ErrServerClosed from the serve goroutine.
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
