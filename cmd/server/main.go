// Package main is the entry point for the mood lantern server.
//
// MAIN PACKAGE IN GO:
// main should stay minimal. Its job is to:
//  1. Read configuration (internal/config, from environment variables)
//  2. Create the logger
//  3. Start the application (internal/server)
//
// All actual logic lives in the imported packages, which keeps it testable.
//
// WHY cmd/server/?
// cmd/ holds one directory per executable. This repo has two: cmd/server
// and cmd/seed.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sakif/mood-lantern/internal/config"
	"github.com/sakif/mood-lantern/internal/server"
)

func main() {
	// === 1. READ CONFIGURATION ===
	// Load reports every invalid variable at once. There is no logger yet
	// (its level comes from the config), so errors go straight to stderr.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	// LOG_LEVEL and LOG_FORMAT pick the level and text/JSON output.
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	// === 3. CREATE AND START THE SERVER ===
	// New opens the database and runs migrations before any route exists,
	// so a bad DSN fails here rather than on the first request.
	srv, err := server.New(context.Background(), cfg, logger, server.Options{})
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
