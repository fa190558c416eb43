package app

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
)

// Shutdown listens for SIGINT and SIGTERM signals,
// gracefully shuts down the HTTP server,
// performs cleanup and informs the main goroutine when done.
func (a *App) Shutdown(done chan<- struct{}) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Blocks until an interruption signal is received
	<-ctx.Done()

	slog.Info("shutting down gracefully, press Ctrl+C again to force")

	// Stop watching for termination signals.
	// A second Ctrl+C now goes straight to the OS and kills the process.
	stop()

	a.stop()

	// Notify the main goroutine that the shutdown is complete
	done <- struct{}{}
}

// stop drains in-flight requests for up to the configured timeout
// and closes the Redis connection.
func (a *App) stop() {

	ctx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	if err := a.Close(); err != nil {
		slog.Error("error during cleanup", "error", err)
	}

	slog.Info("server exiting")
}
