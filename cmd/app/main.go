package main

import (
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/vlatan/transcript-gateway/internal/app"
	"github.com/vlatan/transcript-gateway/internal/config"
)

func main() {

	// Local runs may keep their settings in .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load .env file; %v", err)
	}

	cfg := config.New()
	slog.SetDefault(newLogger(cfg))

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to create the app; %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}

// newLogger logs JSON in production and readable text with debug lines otherwise
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.Debug() {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
