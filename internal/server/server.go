// Package server is the composition root: it opens the store, builds the
// services and handlers, and mounts them on a chi router.
//
// DEPENDENCY FLOW:
//
//	config → sqlite.DB → services (+ cascade) → handlers → routes
//
// The Server owns the database connection and closes it on shutdown.
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
	"github.com/go-chi/cors"

	"github.com/sakif/review-board/internal/auth"
	"github.com/sakif/review-board/internal/config"
	"github.com/sakif/review-board/internal/handler"
	"github.com/sakif/review-board/internal/middleware"
	sqliteRepo "github.com/sakif/review-board/internal/repository/sqlite"
	"github.com/sakif/review-board/internal/service"
)

type Server struct {
	router  *chi.Mux
	config  config.Config
	logger  *slog.Logger
	db      *sqliteRepo.DB
	tokens  *auth.TokenService
	metrics *middleware.Metrics
}

// New opens the database at cfg.DBPath and wires every route.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.Secret(), cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		db:      db,
		tokens:  tokens,
		metrics: middleware.NewMetrics(),
	}
	s.routes()

	return s, nil
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database.
func (s *Server) Close() error {
	return s.db.Close()
}

func (s *Server) passwords() *auth.PasswordService {
	if s.config.PasswordMode == config.PasswordBcrypt {
		return auth.NewPasswordService()
	}
	return auth.NewPlainPasswordService()
}

// routes configures middleware and mounts the handlers.
//
// ROUTES:
//
//	GET  /health, GET /metrics          public
//	/users/authenticate|register|logout public
//	everything else under /users, /reviews, /feedbacks, /assignees
//	requires the session cookie.
func (s *Server) routes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Recoverer(s.logger))
	s.router.Use(s.metrics.Instrument)
	s.router.Use(middleware.SecurityHeaders)
	s.router.Use(chimiddleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.Origins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	cascade := service.NewCascade(s.db, s.db, s.db, s.logger)
	users := handler.NewUserHandler(
		service.NewUserService(s.db, cascade, s.tokens, s.passwords(), s.logger),
		s.config.SecureCookies,
		s.logger,
	)
	reviews := handler.NewReviewHandler(service.NewReviewService(s.db, s.db, cascade, s.logger), s.logger)
	feedback := handler.NewFeedbackHandler(service.NewFeedbackService(s.db, s.logger), s.logger)
	assignees := handler.NewAssigneeHandler(service.NewAssigneeService(s.db, s.db, s.db, s.logger), s.logger)
	health := handler.NewHealthHandler(s.db, s.logger)

	s.router.Get("/health", health.HandleHealth)
	s.router.Handle("/metrics", s.metrics.Handler())

	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(s.tokens, auth.PublicPaths...))

		r.Route("/users", users.Routes)
		r.Route("/reviews", reviews.Routes)
		r.Route("/feedbacks", feedback.Routes)
		r.Route("/assignees", assignees.Routes)
	})
}

// Start serves HTTP until SIGINT/SIGTERM, then drains in-flight requests
// and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         s.config.Addr(),
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
			slog.String("addr", srv.Addr),
			slog.String("database", s.config.DBPath),
			slog.String("passwordMode", s.config.PasswordMode),
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
