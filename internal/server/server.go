// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and
// routes. It is the composition root: every dependency chain in the portal
// is assembled in New/setupRoutes and nowhere else.
//
// DEPENDENCY INJECTION FLOW:
//
//	config.Load() → Server.New() creates:
//	  sqlite.DB → AuthService/CalendarService/ChatService → handlers
//	  TokenService + PasswordService → AuthService and the auth middleware
//	  assistant.Client → ChatService
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services, and nothing below the handler layer
// ever sees HTTP.
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

	"github.com/sakif/campus-portal/internal/assistant"
	"github.com/sakif/campus-portal/internal/auth"
	"github.com/sakif/campus-portal/internal/config"
	"github.com/sakif/campus-portal/internal/handler"
	"github.com/sakif/campus-portal/internal/middleware"
	sqliteRepo "github.com/sakif/campus-portal/internal/repository/sqlite"
	"github.com/sakif/campus-portal/internal/service"
)

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the database connection. When the server shuts down, the
// connection must be closed to flush the WAL and release the file lock;
// Start() handles that during graceful shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with the full dependency chain wired up.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.Database.Path)
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
		db.Close() // clean up the DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET  /                    → Home page (HTML)
//	GET  /login               → Login page
//	GET  /signup              → Signup page
//	GET  /events              → Events calendar page
//	GET  /static/*            → Static files (CSS, JS, images)
//	POST /api/auth/signup     → Register + log in (JSON)
//	POST /api/auth/login      → Log in (JSON)
//	GET  /api/auth/me         → Current user           [auth required]
//	GET  /api/events          → List events            [auth optional]
//	POST /api/events          → Create event           [auth required]
//	POST /api/chat            → Ask the assistant      [auth required]
//	GET  /api/chat/history    → Past exchanges         [auth required]
//
// MIDDLEWARE ORDER MATTERS:
// RequestID runs first so every later log line can carry the ID; Recoverer
// runs before our logger so a panicking handler still gets its request
// logged as a 500.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// === Core auth building blocks ===
	tokens, err := auth.NewTokenService(s.config.Auth.JWTSecret, s.config.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService(s.config.Auth.BcryptCost)

	// === Services ===
	// s.db (sqlite.DB) implements all three repository interfaces; each
	// service receives only the interface it needs.
	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	calendarService := service.NewCalendarService(s.db, s.logger)

	replier := assistant.New(
		s.config.Assistant.BaseURL,
		s.config.Assistant.APIKey,
		s.config.Assistant.Model,
	)
	if !replier.Configured() {
		s.logger.Warn("assistant API key not set, chat will answer in offline mode")
	}
	chatService := service.NewChatService(s.db, s.db, replier, s.logger)

	// === Handlers ===
	authHandler := handler.NewAuthHandler(authService, s.logger)
	calendarHandler := handler.NewCalendarHandler(calendarService, s.logger)
	chatHandler := handler.NewChatHandler(chatService, s.logger)

	pagesHandler, err := handler.NewPagesHandler(s.config.Web.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("parsing page templates: %w", err)
	}

	// === Static Files ===
	// GET /static/js/calendar.js → serves {StaticDir}/js/calendar.js
	fileServer := http.FileServer(http.Dir(s.config.Web.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// === Page Routes ===
	s.router.Get("/", pagesHandler.HandleHome)
	s.router.Get("/login", pagesHandler.HandleLogin)
	s.router.Get("/signup", pagesHandler.HandleSignup)
	s.router.Get("/events", pagesHandler.HandleEvents)

	// === API Routes ===
	requireAuth := auth.RequireAuth(tokens)
	optionalAuth := auth.OptionalAuth(tokens)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.HandleSignup)
			r.Post("/login", authHandler.HandleLogin)
			r.With(requireAuth).Get("/me", authHandler.HandleMe)
		})

		r.Route("/events", func(r chi.Router) {
			r.With(optionalAuth).Get("/", calendarHandler.HandleListEvents)
			r.With(requireAuth).Post("/", calendarHandler.HandleCreateEvent)
		})

		r.Route("/chat", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", chatHandler.HandleChat)
			r.Get("/history", chatHandler.HandleHistory)
		})
	})

	return nil
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
//  1. Stop accepting new HTTP connections
//  2. Wait for in-flight requests to finish (30s timeout)
//  3. Close the database connection (flushes WAL, releases file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
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
			slog.Int("port", s.config.Server.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Server.Port)),
			slog.String("database", s.config.Database.Path),
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
