// Package server sets up the HTTP server, router, and all route
// definitions. It is the composition root: the database pool, services,
// and handlers are all constructed and wired here, in one place.
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

	"github.com/sakif/review-hub/internal/auth"
	"github.com/sakif/review-hub/internal/handler"
	"github.com/sakif/review-hub/internal/middleware"
	sqliteRepo "github.com/sakif/review-hub/internal/repository/sqlite"
	"github.com/sakif/review-hub/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
}

// Server owns the router and the database pool.
//
// The pool is created in New, handed to the repositories, and closed
// exactly once when Start returns — it is an explicitly owned resource,
// not a process-wide singleton.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server and assembles the whole dependency chain:
// pool → repositories → services → handlers → routes.
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
		db.Close() // clean up the pool if wiring fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, builds the service/handler graph, and
// declares every route.
//
// ROUTE MAP:
//
//	POST   /auth/register                                → register
//	POST   /auth/login                                   → login
//	GET    /auth/me                                      → whoami            [auth]
//	GET    /items                                        → list items
//	GET    /items/{itemID}                               → item + rating
//	GET    /items/{itemID}/reviews                       → item's reviews    [auth]
//	POST   /items/{itemID}/reviews                       → create review     [auth]
//	GET    /items/{itemID}/reviews/{reviewID}            → review + comments
//	POST   /items/{itemID}/reviews/{reviewID}/comments   → create comment    [auth]
//	GET    /reviews/me                                   → own reviews       [auth]
//	GET    /comments/me                                  → own comments      [auth]
//	PUT    /users/{userID}/reviews/{reviewID}            → edit review       [auth+owner]
//	DELETE /users/{userID}/reviews/{reviewID}            → delete review     [auth+owner]
//	PUT    /users/{userID}/comments/{commentID}          → edit comment      [auth+owner]
//	DELETE /users/{userID}/comments/{commentID}          → delete comment    [auth+owner]
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	users := s.db.Users()
	items := s.db.Items()
	reviews := s.db.Reviews()
	comments := s.db.Comments()

	authService := service.NewAuthService(users, tokens, passwords, s.logger)
	itemService := service.NewItemService(items, reviews, s.logger)
	reviewService := service.NewReviewService(reviews, comments, items, s.logger)
	commentService := service.NewCommentService(comments, reviews, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	itemHandler := handler.NewItemHandler(itemService, s.logger)
	reviewHandler := handler.NewReviewHandler(reviewService, s.logger)
	commentHandler := handler.NewCommentHandler(commentService, s.logger)

	requireAuth := auth.RequireAuth(tokens)

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.With(requireAuth).Get("/me", authHandler.HandleMe)
	})

	s.router.Route("/items", func(r chi.Router) {
		r.Get("/", itemHandler.HandleList)
		r.Get("/{itemID}", itemHandler.HandleGet)
		r.With(requireAuth).Get("/{itemID}/reviews", reviewHandler.HandleListForItem)
		r.With(requireAuth).Post("/{itemID}/reviews", reviewHandler.HandleCreate)
		r.Get("/{itemID}/reviews/{reviewID}", reviewHandler.HandleGet)
		r.With(requireAuth).Post("/{itemID}/reviews/{reviewID}/comments", commentHandler.HandleCreate)
	})

	s.router.With(requireAuth).Get("/reviews/me", reviewHandler.HandleListMine)
	s.router.With(requireAuth).Get("/comments/me", commentHandler.HandleListMine)

	s.router.Route("/users/{userID}", func(r chi.Router) {
		r.Use(requireAuth)
		r.Put("/reviews/{reviewID}", reviewHandler.HandleUpdate)
		r.Delete("/reviews/{reviewID}", reviewHandler.HandleDelete)
		r.Put("/comments/{commentID}", commentHandler.HandleUpdate)
		r.Delete("/comments/{commentID}", commentHandler.HandleDelete)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds to finish, close the database pool.
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
