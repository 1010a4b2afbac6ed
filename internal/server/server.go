// Package server implements the yearwheel HTTP API.
//
// The server exposes the render pipeline over HTTP and persists saved
// wheels through a [store.WheelStore]. Rendering endpoints are stateless;
// every parameter arrives in the query string, so responses are safely
// cacheable by key.
//
// # Endpoints
//
//	GET    /healthz                 liveness probe
//	GET    /v1/wheel.{svg,png,json} render a wheel from query parameters
//	POST   /v1/wheels               save a wheel, returns its id
//	GET    /v1/wheels               list saved wheels
//	GET    /v1/wheels/{id}          fetch a saved wheel (JSON)
//	GET    /v1/wheels/{id}.svg      render a saved wheel
//	DELETE /v1/wheels/{id}          delete a saved wheel
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/komapc/yearwheel/pkg/cache"
	"github.com/komapc/yearwheel/pkg/pipeline"
	"github.com/komapc/yearwheel/pkg/store"
)

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address (default ":8080").
	Addr string
	// Store persists saved wheels; nil selects an in-memory store.
	Store store.WheelStore
	// Cache backs the pipeline's layout and artifact caches; nil disables
	// caching.
	Cache cache.Cache
	// Logger defaults to log.Default().
	Logger *log.Logger
	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration
}

// Server serves the yearwheel HTTP API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	store  store.WheelStore
	logger *log.Logger
	router chi.Router
}

// New creates a server with its routes registered.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		cfg:    cfg,
		runner: pipeline.NewRunner(cfg.Cache, nil, cfg.Logger),
		store:  cfg.Store,
		logger: cfg.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the server's HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// routes builds the router with middleware and all endpoints.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/wheel.svg", s.handleRender("svg"))
		r.Get("/wheel.png", s.handleRender("png"))
		r.Get("/wheel.json", s.handleRender("json"))

		r.Route("/wheels", func(r chi.Router) {
			r.Post("/", s.handleSaveWheel)
			r.Get("/", s.handleListWheels)
			r.Get("/{id}", s.handleGetWheel)
			r.Get("/{id}.svg", s.handleRenderSaved)
			r.Delete("/{id}", s.handleDeleteWheel)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// logRequests logs one line per request with the chi request id.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
