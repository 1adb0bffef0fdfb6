// Package server wires the application together: database, templates,
// services, handlers, middleware, and routes.
//
// This is the composition root — every dependency is assembled here, in one
// place, and each layer only receives what it needs. Handlers never touch the
// database; services never touch HTTP.
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

	"github.com/sakif/gocamp/internal/auth"
	"github.com/sakif/gocamp/internal/handler"
	"github.com/sakif/gocamp/internal/middleware"
	sqliteRepo "github.com/sakif/gocamp/internal/repository/sqlite"
	"github.com/sakif/gocamp/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port          int
	TemplateDir   string
	StaticDir     string
	DBPath        string
	SessionSecret string
}

// Server owns the router and the resources that must be released on
// shutdown (the database connection).
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server: opens the database, parses the templates, and wires
// the full dependency chain.
//
//	sqlite.DB → services → handlers → routes
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	logger.Info("database connected", slog.String("path", cfg.DBPath))

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, handlers, and the route table.
//
// MIDDLEWARE ORDER MATTERS. Globals run on every request, in order:
// request ID → real IP → panic recovery → request log → method override →
// current-user binding. The login gate is per-route, applied with .With() on
// exactly the mutating routes; the ownership gate runs inside those handlers
// after the entity loads.
func (s *Server) setupRoutes() error {
	sessions, err := auth.NewSessionService(s.config.SessionSecret)
	if err != nil {
		return fmt.Errorf("creating session service: %w", err)
	}

	renderer, err := handler.NewRenderer(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.MethodOverride)
	s.router.Use(auth.CurrentUser(sessions, s.db))

	// Static assets. StripPrefix removes "/static/" before the file lookup,
	// so GET /static/css/style.css serves {StaticDir}/css/style.css.
	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	passwords := auth.NewPasswordService()

	campgroundService := service.NewCampgroundService(s.db, s.logger)
	reviewService := service.NewReviewService(s.db, s.db, s.logger)
	authService := service.NewAuthService(s.db, passwords, sessions, s.logger)

	homeHandler := handler.NewHomeHandler(renderer)
	campgroundHandler := handler.NewCampgroundHandler(campgroundService, renderer, s.logger)
	reviewHandler := handler.NewReviewHandler(reviewService, renderer, s.logger)
	userHandler := handler.NewUserHandler(authService, renderer, s.logger)

	s.router.Get("/", homeHandler.HandleHome)

	s.router.Get("/register", userHandler.HandleRegisterForm)
	s.router.Post("/register", userHandler.HandleRegister)
	s.router.Get("/login", userHandler.HandleLoginForm)
	s.router.Post("/login", userHandler.HandleLogin)
	s.router.Get("/logout", userHandler.HandleLogout)

	s.router.Route("/campgrounds", func(r chi.Router) {
		r.Get("/", campgroundHandler.HandleIndex)
		r.Get("/{id}", campgroundHandler.HandleShow)

		r.With(auth.RequireLogin).Get("/new", campgroundHandler.HandleNewForm)
		r.With(auth.RequireLogin).Post("/", campgroundHandler.HandleCreate)
		r.With(auth.RequireLogin).Get("/{id}/edit", campgroundHandler.HandleEditForm)
		r.With(auth.RequireLogin).Put("/{id}", campgroundHandler.HandleUpdate)
		r.With(auth.RequireLogin).Delete("/{id}", campgroundHandler.HandleDelete)

		r.With(auth.RequireLogin).Post("/{id}/reviews", reviewHandler.HandleCreate)
		r.With(auth.RequireLogin).Delete("/{id}/reviews/{reviewID}", reviewHandler.HandleDelete)
	})

	// Anything unmatched becomes a 404 through the terminal error page.
	s.router.NotFound(renderer.NotFound)

	return nil
}

// Start runs the HTTP server until a shutdown signal or server error.
//
// Graceful shutdown: stop accepting connections, give in-flight requests 30
// seconds to finish, then close the database (flushes the WAL and releases
// the file lock).
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
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
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
