package app

import "net/http"

// RegisterRoutes registers routes and
// assigns custom handler to the HTTP server
func (a *App) RegisterRoutes() *App {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /transcript", a.transcripts.TranscriptHandler)
	mux.HandleFunc("GET /health", a.misc.HealthHandler)

	// Chain middlewares that apply to all requests.
	// The order is important, logging must see the 500 of a recovered panic
	// and CORS must see preflights before the mux does.
	a.server.Handler = a.mw.ApplyToAll(
		a.mw.Logging,
		a.mw.RecoverPanic,
		a.mw.CORS,
		a.mw.AddHeaders,
		a.mw.Compress,
	)(mux)

	return a
}
