// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer. It connects handlers, middleware and
// routes, and decides:
//   - which URL patterns map to which handler functions
//   - which middleware runs on which routes
//   - how the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
//
//	config.Config → Server.New():
//	    sqlstore.DB ──→ CheckInService ──→ CheckInHandler
//	               ├─→ LanternService  ──→ LanternHandler
//	               ├─→ RecommendationService → RecommendationHandler
//	               └─→ AuthService     ──→ AuthHandler
//
// This is the "composition root" pattern: every dependency is wired here and
// nowhere else.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/mood-lantern/internal/auth"
	"github.com/sakif/mood-lantern/internal/config"
	"github.com/sakif/mood-lantern/internal/handler"
	"github.com/sakif/mood-lantern/internal/middleware"
	"github.com/sakif/mood-lantern/internal/mood"
	"github.com/sakif/mood-lantern/internal/repository/sqlstore"
	"github.com/sakif/mood-lantern/internal/service"
)

// Server represents the HTTP server and all its dependencies.
//
// The Server owns the database pool. Start closes it after the HTTP server
// has drained, so no in-flight request loses its connection mid-query.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqlstore.DB
}

// Options lets tests replace the sources of randomness and time. The zero
// value uses mood.DefaultRand and time.Now.
type Options struct {
	Rand  mood.Rand
	Clock service.Clock
}

// New opens the database and assembles every layer:
//
//  1. sqlstore.New (creates the SQLite data dir, runs migrations)
//  2. token and password services from the config
//  3. the domain services, each given only the repositories it needs
//  4. handlers, mounted on the router
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*Server, error) {
	db, err := sqlstore.New(ctx, sqlstore.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(opts); err != nil {
		db.Close() // Clean up DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /healthz                  → database ping
//	POST   /api/auth/register        → create account, set cookie
//	POST   /api/auth/login           → check credentials, set cookie
//	POST   /api/auth/logout          → clear cookie
//
//	(everything below requires a token)
//	GET    /api/me                   → profile
//	GET    /api/questions            → one random question per category
//	POST   /api/checkins             → submit today's answers
//	GET    /api/checkins/week        → the last seven days
//	GET    /api/checkins/{date}      → one day with answers
//	GET    /api/recommendations      → ?color=&limit=
//	POST   /api/lanterns             → release a lantern for the week
//	GET    /api/lanterns             → lantern history
//
// MIDDLEWARE ORDER MATTERS:
//  1. RequestID: assigns the ID the access log prints
//  2. RealIP: extracts the client IP from proxy headers
//  3. Recoverer: catches panics and returns 500 instead of crashing
//  4. Logger: one line per request
func (s *Server) setupRoutes(opts Options) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService(s.config.BcryptCost)

	rnd := opts.Rand
	if rnd == nil {
		rnd = mood.DefaultRand()
	}

	// === Services ===
	// s.db implements every repository interface; each service only sees the
	// ones it was handed.
	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	checkInService := service.NewCheckInService(s.db, s.db, s.db, rnd, opts.Clock, s.config.Location, s.logger)
	lanternService := service.NewLanternService(s.db, checkInService, s.db, opts.Clock, s.config.Location, s.logger)
	recommendationService := service.NewRecommendationService(s.db, rnd, s.logger)

	// === Handlers ===
	healthHandler := handler.NewHealthHandler(s.db, s.logger)
	authHandler := handler.NewAuthHandler(authService, tokens.TTL(), s.logger)
	checkInHandler := handler.NewCheckInHandler(checkInService, s.logger)
	lanternHandler := handler.NewLanternHandler(lanternService, s.logger)
	recommendationHandler := handler.NewRecommendationHandler(recommendationService, s.logger)

	s.router.Get("/healthz", healthHandler.HandleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.HandleRegister)
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/logout", authHandler.HandleLogout)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(auth.TokenValidatorFunc(authService.ValidateToken)))

			r.Get("/me", authHandler.HandleMe)
			r.Get("/questions", checkInHandler.HandleQuestions)

			r.Post("/checkins", checkInHandler.HandleSubmit)
			// "week" is registered before {date} for readability; chi matches
			// static segments ahead of parameters regardless of order.
			r.Get("/checkins/week", checkInHandler.HandleWeek)
			r.Get("/checkins/{date}", checkInHandler.HandleDay)

			r.Get("/recommendations", recommendationHandler.HandlePick)

			r.Post("/lanterns", lanternHandler.HandleRelease)
			r.Get("/lanterns", lanternHandler.HandleHistory)
		})
	})

	return nil
}

// Handler exposes the router so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start calls it on shutdown; tests that never
// call Start use it directly.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start starts the HTTP server and blocks until SIGINT/SIGTERM or a
// listener error.
//
// GRACEFUL SHUTDOWN:
//  1. Stop accepting new connections
//  2. Wait up to 30s for in-flight requests
//  3. Close the database pool
func (s *Server) Start() error {
	defer s.Close()

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
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("driver", s.config.DBDriver),
			slog.String("timezone", s.config.Location.String()),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
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
