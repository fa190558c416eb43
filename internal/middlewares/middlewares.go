package middlewares

import (
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/handlers"
	"github.com/klauspost/compress/gzhttp"
	"github.com/vlatan/transcript-gateway/internal/config"
	"github.com/vlatan/transcript-gateway/internal/ui"
)

type Service struct {
	config  *config.Config
	ui      ui.Service
	origins *OriginPolicy
}

func New(config *config.Config, ui ui.Service) *Service {
	return &Service{
		config:  config,
		ui:      ui,
		origins: NewOriginPolicy(config.AllowedOrigins),
	}
}

// AllowedOrigins lists the active cross-origin allow-list
func (s *Service) AllowedOrigins() []string {
	return s.origins.Patterns()
}

// Do not crash the app on panic, serve 500 error to the client
func (s *Service) RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}

			// The server aborts the response on its own
			if err == http.ErrAbortHandler {
				panic(err)
			}

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("panic", err),
			}
			if s.config.Debug() {
				attrs = append(attrs, slog.String("stack", string(debug.Stack())))
			}
			slog.Error("panic while serving request", attrs...)

			s.ui.JSONError(w, r, http.StatusInternalServerError, "Something went wrong")
		}()

		next.ServeHTTP(w, r)
	})
}

// Logging logs one line per request once the response is written
func (s *Service) Logging(next http.Handler) http.Handler {
	return handlers.CustomLoggingHandler(io.Discard, next, logRequest)
}

func logRequest(_ io.Writer, p handlers.LogFormatterParams) {

	// The liveness probe would drown everything else
	level := slog.LevelInfo
	if p.URL.Path == "/health" {
		level = slog.LevelDebug
	}

	slog.Log(
		p.Request.Context(),
		level,
		"request",
		slog.String("method", p.Request.Method),
		slog.String("path", p.URL.Path),
		slog.String("origin", p.Request.Header.Get("Origin")),
		slog.Int("status", p.StatusCode),
		slog.Int("size", p.Size),
		slog.Duration("duration", time.Since(p.TimeStamp)),
	)
}

// CORS adds the cross-origin headers for allowed origins only.
// Requests from other origins are still served, the browser blocks them.
func (s *Service) CORS(next http.Handler) http.Handler {

	corsHandler := handlers.CORS(
		handlers.AllowedOriginValidator(s.origins.Allowed),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.MaxAge(600),
	)(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The allowed origin is echoed back, so caches must key on it
		w.Header().Add("Vary", "Origin")
		corsHandler.ServeHTTP(w, r)
	})
}

// Add security headers to request
func (s *Service) AddHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Nothing here is meant to be framed or indexed
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Robots-Tag", "noindex")

		// HSTS (HTTPS only)
		if !s.config.Debug() {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

// Compress gzips responses for clients that accept it
func (s *Service) Compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

// Chain middlewares that apply to all handlers
func (s *Service) ApplyToAll(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		// Apply middlewares in reverse order
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
