// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — it connects handlers, middleware, and
// routes, and it is the composition root: the entire dependency chain
// (DB → repositories → services → handlers) is assembled in New, in one
// place, rather than scattered across the codebase.
//
// WHY SEPARATE FROM main.go?
// Keeping server setup in its own package makes it:
// - Testable (we can create a test server without running main)
// - Reusable (multiple entry points could use the same server config)
// - Clean (main.go stays minimal — just "start the server")
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
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/rahat/streamvault/internal/auth"
	"github.com/rahat/streamvault/internal/handler"
	"github.com/rahat/streamvault/internal/middleware"
	sqliteRepo "github.com/rahat/streamvault/internal/repository/sqlite"
	"github.com/rahat/streamvault/internal/service"
)

// Credential endpoints get a tighter rate limit than the rest of the API:
// 10 attempts per IP per minute slows down online password guessing without
// bothering legitimate clients.
const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

// Config holds server configuration.
// Using a struct for config (instead of individual parameters) makes it easy
// to add options without changing function signatures, and keeps env-var
// reading in main.go where it belongs.
type Config struct {
	Port        int
	DBPath      string
	JWTSecret   string
	CORSOrigins []string // allowed origins; ["*"] by default, like the frontend expects
}

// Server represents the HTTP server and all its dependencies.
//
// The Server owns the database handle: constructed once in New, closed
// during graceful shutdown. There is no package-level connection state
// anywhere in the repository.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a new Server with the given config.
//
// DEPENDENCY INJECTION & WIRING:
//  1. Open the database (sqlite.New — runs migrations)
//  2. Build the auth primitives (TokenService, PasswordService)
//  3. Build services on the repository interfaces
//  4. Build handlers on the services
//  5. Wire handlers to routes
//
// Each layer only receives what it needs: services get repository
// interfaces (not the concrete sqlite.DB), handlers get services.
//
// IMPORT ALIAS:
// repository/sqlite is imported as sqliteRepo to avoid confusion with the
// sqlite driver package.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close() // Clean up DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	POST   /api/auth/register                     → register + token
//	POST   /api/auth/login                        → login + token
//	GET    /api/auth/me                 (auth)    → current user
//	POST   /api/profiles                (auth)    → create profile
//	GET    /api/profiles                (auth)    → list profiles
//	GET    /api/movies                            → list movies
//	GET    /api/movies/{id}                       → one movie
//	POST   /api/movies                  (auth)    → add movie
//	GET    /api/series                            → list series
//	GET    /api/series/{id}                       → one series
//	POST   /api/series                  (auth)    → add series
//	GET    /api/search                            → keyword search
//	POST   /api/watchlist/{p}/{c}       (auth)    → add to watchlist
//	DELETE /api/watchlist/{p}/{c}       (auth)    → remove from watchlist
//	GET    /api/watchlist/{p}           (auth)    → hydrated watchlist
//	GET    /api/health                            → liveness + store ping
//
// MIDDLEWARE ORDER MATTERS:
// Middleware executes in the order it's added:
// 1. RequestID — assigns unique ID to each request (for tracing)
// 2. RealIP — extracts real client IP from proxy headers (httprate keys on it)
// 3. Recoverer — catches panics and returns 500 instead of crashing
// 4. CORS — must run before routing so preflights get answered
// 5. Logger — logs each request with timing info
func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	// === Global Middleware ===
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)

	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Use(middleware.Logger(s.logger))

	// === Services and handlers ===
	// s.db implements both repository.UserRepository and
	// repository.CatalogRepository; the services receive the interfaces.
	authSvc := service.NewAuthService(s.db, tokens, passwords, s.logger)
	profileSvc := service.NewProfileService(s.db, s.db, s.logger)
	catalogSvc := service.NewCatalogService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authSvc, s.logger)
	profileHandler := handler.NewProfileHandler(profileSvc, s.logger)
	catalogHandler := handler.NewCatalogHandler(catalogSvc, s.logger)
	healthHandler := handler.NewHealthHandler(s.db)

	requireAuth := auth.RequireAuth(tokens)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HandleHealth)

		// Credential endpoints: rate-limited by client IP.
		r.Group(func(r chi.Router) {
			r.Use(httprate.Limit(authRateLimit, authRateWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
			))
			r.Post("/auth/register", authHandler.HandleRegister)
			r.Post("/auth/login", authHandler.HandleLogin)
		})

		// Public catalog reads.
		r.Get("/movies", catalogHandler.HandleListMovies)
		r.Get("/movies/{id}", catalogHandler.HandleGetMovie)
		r.Get("/series", catalogHandler.HandleListSeries)
		r.Get("/series/{id}", catalogHandler.HandleGetSeries)
		r.Get("/search", catalogHandler.HandleSearch)

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/auth/me", authHandler.HandleMe)

			r.Post("/profiles", profileHandler.HandleCreateProfile)
			r.Get("/profiles", profileHandler.HandleListProfiles)

			r.Post("/movies", catalogHandler.HandleAddMovie)
			r.Post("/series", catalogHandler.HandleAddSeries)

			r.Post("/watchlist/{profileID}/{contentID}", profileHandler.HandleAddToWatchlist)
			r.Delete("/watchlist/{profileID}/{contentID}", profileHandler.HandleRemoveFromWatchlist)
			r.Get("/watchlist/{profileID}", profileHandler.HandleGetWatchlist)
		})
	})

	return nil
}

// Router exposes the configured router, mainly for httptest-based tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close releases the server's resources (the database handle). Start calls
// it automatically; tests that only use Router() should defer it themselves.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the database connection (flushes WAL, releases file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
