// Package main is the entry point for the books manager frontend server.
//
// MAIN PACKAGE IN GO:
// Every Go program starts execution in the main() function of the "main" package.
// The main package should be kept minimal — its job is to:
// 1. Read configuration (from env vars, flags, or config files)
// 2. Create dependencies (logger, database connections, etc.)
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server, internal/handler, etc.).
// This separation makes the app testable and its components reusable.
//
// WHY cmd/server/?
// The cmd/ directory is a Go convention for executable entry points.
// A project might have multiple executables (e.g., cmd/server, cmd/migrate, cmd/cli).
// Each gets its own directory with its own main.go.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mohmadimran/books-manager-frontend/internal/server"
)

// defaultAPIBaseURL is the hosted books API this frontend talks to.
const defaultAPIBaseURL = "https://book-manager-ev44.onrender.com"

func main() {
	// === 1. SET UP LOGGING ===
	// slog.New creates a structured logger. slog.NewTextHandler outputs
	// human-readable logs to the terminal. LevelDebug enables all log levels;
	// in production you'd use LevelInfo or LevelWarn to reduce noise.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// === 2. LOAD .env ===
	// godotenv.Load reads a local .env file into the process environment.
	// A missing file is fine — in production config comes from real env vars.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using environment variables")
	}

	// === 3. READ CONFIGURATION ===
	// os.Getenv returns "" if the variable isn't set, so we check and
	// provide a default for each value.
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	apiBaseURL := os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
	}

	// === 4. RESOLVE FILE PATHS ===
	// Template and static directories relative to the working directory.
	// When running with `go run` from the project root, "web/templates"
	// and "web/static" resolve directly.
	templateDir, _ := filepath.Abs("web/templates")
	staticDir, _ := filepath.Abs("web/static")

	// === 5. SESSION DATABASE PATH ===
	// The persisted session lives in a small SQLite file so a login
	// survives a restart. SESSION_DB_PATH overrides for deployments.
	sessionDBPath := "data/session.db"
	if envDB := os.Getenv("SESSION_DB_PATH"); envDB != "" {
		sessionDBPath = envDB
	}

	// os.MkdirAll creates all parent directories if needed (like `mkdir -p`).
	dbDir := filepath.Dir(sessionDBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create session database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// === 6. CREATE AND START THE SERVER ===
	cfg := server.Config{
		Port:          port,
		TemplateDir:   templateDir,
		StaticDir:     staticDir,
		SessionDBPath: sessionDBPath,
		APIBaseURL:    apiBaseURL,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
