// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects the session store, the
// API client, services, handlers, and middleware. Think of it as the control
// centre that decides:
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// WHY SEPARATE FROM main.go?
// Keeping server setup in its own package makes it:
// - Testable (we can create a test server without running main)
// - Reusable (multiple entry points could use the same server config)
// - Clean (main.go stays minimal — just "start the server")
//
// DEPENDENCY INJECTION FLOW:
// main.go creates Config → New() creates:
//
//	sqlite.DB → session.Store → client.Client → services → handlers
//
// This is the "composition root" pattern — all dependencies are wired
// in one place (New/setupRoutes), rather than scattered across the codebase.
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

	"github.com/mohmadimran/books-manager-frontend/internal/auth"
	"github.com/mohmadimran/books-manager-frontend/internal/client"
	"github.com/mohmadimran/books-manager-frontend/internal/handler"
	"github.com/mohmadimran/books-manager-frontend/internal/middleware"
	sqliteRepo "github.com/mohmadimran/books-manager-frontend/internal/repository/sqlite"
	"github.com/mohmadimran/books-manager-frontend/internal/service"
	"github.com/mohmadimran/books-manager-frontend/internal/session"
)

// Config holds server configuration.
// Using a struct for config (instead of individual parameters) makes it easy
// to add new options without changing function signatures, and to load
// everything from env vars in one place (main.go).
type Config struct {
	Port          int
	TemplateDir   string
	StaticDir     string
	SessionDBPath string // path to the SQLite file holding the persisted session
	APIBaseURL    string // base URL of the books API we proxy to
}

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the session database connection (db). When the server
// shuts down we must close it to flush pending writes and release the file
// lock. This is handled in Start() during graceful shutdown.
type Server struct {
	router   *chi.Mux
	config   Config
	logger   *slog.Logger
	db       *sqliteRepo.DB
	sessions *session.Store
}

// New creates a new Server with the given config.
//
// DEPENDENCY INJECTION & WIRING:
// This is where the entire dependency chain is assembled:
//  1. Open the session database (sqlite.New)
//  2. Create the session store and restore any persisted session
//  3. Create the API client, reading its bearer token from the store
//  4. Create the service layer (auth + books) on top of the client
//  5. Create the handlers and wire them to routes
//
// Each layer only receives what it needs:
// - The session store gets the repository interface (not the concrete DB)
// - Services get the client and the store
// - Handlers get the services (never the client or the DB directly)
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	sessions := session.NewStore(db, logger)

	// Restore the persisted session before serving any request, so a user
	// who was logged in before a restart lands straight on the dashboard.
	if err := sessions.Initialize(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("restoring session: %w", err)
	}

	// Observer for auth state changes — handy in logs when debugging
	// login/logout flows.
	sessions.Subscribe(func(s session.Session) {
		logger.Info("auth state changed", slog.Bool("authenticated", s.Authenticated()))
	})

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		db:       db,
		sessions: sessions,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close() // clean up DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET  /                    → redirect to /dashboard or /login
// GET  /static/*            → static files (CSS)
// GET  /login               → login page
// POST /login               → submit credentials
// GET  /signup              → signup page
// POST /signup              → submit registration
// POST /logout              → clear session
// GET  /dashboard           → book collection (requires session)
// POST /books               → create/update a book (requires session)
// POST /books/{id}/status   → inline status change (requires session)
// POST /books/{id}/delete   → delete a book (requires session)
//
// MIDDLEWARE ORDER MATTERS:
// Middleware executes in the order it's added:
// 1. RequestID — assigns a unique ID to each request (for tracing)
// 2. RealIP — extracts the real client IP from proxy headers
// 3. Recoverer — catches panics and returns 500 instead of crashing
// 4. Logger — logs each request with timing info
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// === Static Files ===
	// GET /static/css/style.css → serves {StaticDir}/css/style.css
	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// === API Client & Services ===
	// The client reads its bearer token from the session store on every
	// request, so login/logout take effect without rebuilding anything.
	api, err := client.New(client.Config{
		BaseURL: s.config.APIBaseURL,
		Tokens:  s.sessions,
		Logger:  s.logger,
	})
	if err != nil {
		return fmt.Errorf("creating api client: %w", err)
	}

	authService := service.NewAuthService(api, s.sessions, s.logger)
	bookService := service.NewBookService(api, s.logger)

	// === Handlers ===
	authHandler, err := handler.NewAuthHandler(authService, s.sessions, s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating auth handler: %w", err)
	}
	dashboardHandler, err := handler.NewDashboardHandler(bookService, s.sessions, s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating dashboard handler: %w", err)
	}

	// === Public Routes ===
	s.router.Get("/", authHandler.HandleRoot)
	s.router.Get("/login", authHandler.HandleLoginPage)
	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Get("/signup", authHandler.HandleSignupPage)
	s.router.Post("/signup", authHandler.HandleSignup)
	s.router.Post("/logout", authHandler.HandleLogout)

	// === Protected Routes ===
	// Everything in this group redirects to /login when no session is active.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(s.sessions))

		r.Get("/dashboard", dashboardHandler.HandleDashboard)
		r.Post("/books", dashboardHandler.HandleSaveBook)
		r.Post("/books/{id}/status", dashboardHandler.HandleChangeStatus)
		r.Post("/books/{id}/delete", dashboardHandler.HandleDeleteBook)
	})

	return nil
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the session database (flushes WAL, releases the file lock)
//
// If we skip step 3, the session file might be left in an inconsistent state.
// The `defer s.db.Close()` ensures this happens even if something panics.
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
			slog.String("api", s.config.APIBaseURL),
			slog.String("session_db", s.config.SessionDBPath),
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

		// Give in-flight requests 30 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
