// Package server sets up the HTTP servers, routers, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer: it connects handlers, middleware, and routes.
// There are two servers built from the same parts:
//
//	API (mid-tier): exposes the search service, talks to GitHub
//	App:            exposes the search controller, talks to the API
//
// DEPENDENCY INJECTION FLOW:
// main.go creates:
//
//	gateway.RestyClient → service.SearchService → server.NewAPI
//	apiclient.Client    → server.NewApp
//
// Each server only receives the interface it needs from the layer below.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/usersearch/internal/controller"
	"github.com/sakif/usersearch/internal/handler"
	"github.com/sakif/usersearch/internal/metrics"
	"github.com/sakif/usersearch/internal/middleware"
)

// shutdownTimeout is how long in-flight requests get to finish.
const shutdownTimeout = 30 * time.Second

// Config holds server configuration.
type Config struct {
	Port int
}

// Server represents one HTTP server and its router.
type Server struct {
	name   string
	router *chi.Mux
	config Config
	logger *slog.Logger
}

func newServer(name string, cfg Config, logger *slog.Logger) *Server {
	s := &Server{
		name:   name,
		router: chi.NewRouter(),
		config: cfg,
		logger: logger.With(slog.String("server", name)),
	}

	// MIDDLEWARE ORDER MATTERS:
	// 1. RequestID: assigns unique ID to each request (the logger reads it)
	// 2. RealIP: extracts real client IP from proxy headers
	// 3. Recoverer: catches panics and returns 500 instead of crashing
	// 4. Logger: logs and counts each request
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Get("/health", handler.HandleHealth)
	s.router.Handle("/metrics", metrics.Handler())

	return s
}

// NewAPI creates the mid-tier API server.
//
// ROUTES:
// POST /search       → run a user search (JSON body), Link header passed through
// GET  /user-detail  → one user's profile (?userLogin=)
// GET  /health       → liveness
// GET  /metrics      → Prometheus
func NewAPI(cfg Config, searcher handler.Searcher, logger *slog.Logger) *Server {
	s := newServer("api", cfg, logger)

	searchHandler := handler.NewSearchHandler(searcher, s.logger)
	s.router.Post("/search", searchHandler.HandleSearch)
	s.router.Get("/user-detail", searchHandler.HandleUserDetail)

	return s
}

// NewApp creates the user-facing app server.
//
// ROUTES:
// GET /search     → first page of a search (?term=&page=)
// GET /navigate   → another page of the same search (?term=&currentPage=)
// GET /user-info  → one user's details (?userLogin=)
// GET /health     → liveness
// GET /metrics    → Prometheus
func NewApp(cfg Config, backend controller.Backend, pageSize int, logger *slog.Logger) *Server {
	s := newServer("app", cfg, logger)

	appHandler := handler.NewAppHandler(backend, pageSize, s.logger)
	s.router.Get("/search", appHandler.HandleSearch)
	s.router.Get("/navigate", appHandler.HandleNavigate)
	s.router.Get("/user-info", appHandler.HandleUserInfo)

	return s
}

// Handler returns the router, for tests and for embedding in another server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections (on SIGINT/SIGTERM or ctx cancellation)
// 2. Wait for in-flight requests to finish (30s timeout)
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("%s server error: %w", s.name, err)
		}
		return nil

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	case <-ctx.Done():
		s.logger.Info("context canceled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	s.logger.Info("server stopped gracefully")
	return nil
}
