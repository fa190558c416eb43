package app

import (
	"errors"
	"log/slog"
	"net/http"
)

// Run runs the app by making the HTTP server listen and serve
func (a *App) Run() error {

	// Create a notification channel to receive a signal
	// from when a shutdown is complete
	done := make(chan struct{})

	// Listen for SIGINT SIGTERM in a separate goroutine
	// Gracefully shut down the server there if needed.
	go a.Shutdown(done)

	slog.Info(
		"server running",
		"addr", "http://"+a.server.Addr,
		"environment", a.config.Environment,
		"fetch_rpm", a.config.FetchRPM,
		"redis", a.rdb != nil,
		"cors_origins", a.mw.AllowedOrigins(),
	)

	// If the HTTP server was shut down, meaning
	// a.server.Shutdown(ctx) method was called,
	// ListenAndServe will return ErrServerClosed.
	err := a.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done // Wait for the graceful shutdown to complete
	slog.Info("graceful shutdown complete")

	return nil
}
