package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vlatan/transcript-gateway/internal/config"
	"github.com/vlatan/transcript-gateway/internal/drivers/rdb"
	"github.com/vlatan/transcript-gateway/internal/handlers/misc"
	"github.com/vlatan/transcript-gateway/internal/handlers/transcripts"
	"github.com/vlatan/transcript-gateway/internal/integrations/yt"
	"github.com/vlatan/transcript-gateway/internal/limiter"
	"github.com/vlatan/transcript-gateway/internal/middlewares"
	"github.com/vlatan/transcript-gateway/internal/ui"
)

type App struct {
	config      *config.Config
	server      *http.Server
	rdb         *rdb.Service
	mw          *middlewares.Service
	transcripts *transcripts.Service
	misc        *misc.Service
}

// New creates the app with the real YouTube client
func New(cfg *config.Config) (*App, error) {

	client, err := yt.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube client; %w", err)
	}

	return newApp(cfg, client)
}

// newApp wires the services around any transcript fetcher
func newApp(cfg *config.Config, fetcher transcripts.Fetcher) (*App, error) {

	if cfg == nil {
		return nil, errors.New("unable to create the app with nil config")
	}

	a := &App{config: cfg}

	// Redis only backs the limiter, skip it if nothing is limited
	var counter limiter.Counter
	if cfg.FetchRPM > 0 && cfg.RedisEnabled() {
		rs, err := rdb.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis service; %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Not fatal, the limiter lets requests through while Redis is down
		if stats := rs.Health(ctx); stats["error"] != nil {
			slog.Warn("redis is not reachable", "error", stats["error"])
		}

		a.rdb = rs
		counter = rs
	}

	ui := ui.New(cfg.Debug())

	a.mw = middlewares.New(cfg, ui)
	a.transcripts = transcripts.New(fetcher, limiter.New(cfg.FetchRPM, counter), ui, cfg.YouTubeTimeout)
	a.misc = misc.New(ui)

	a.server = &http.Server{
		Addr:              cfg.Addr(),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// The whole fetch is cut at YouTubeTimeout, leave room to write the error
		WriteTimeout: cfg.YouTubeTimeout + 10*time.Second,
	}

	return a.RegisterRoutes(), nil
}

// Handler returns the fully wrapped HTTP handler
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Close releases the connections the app holds
func (a *App) Close() error {
	if a.rdb == nil {
		return nil
	}
	return a.rdb.Close()
}
