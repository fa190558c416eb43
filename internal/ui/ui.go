package ui

import "net/http"

type Service interface {
	// Write JSON to response with the given status code
	WriteJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any)
	// Write JSON error to response
	JSONError(w http.ResponseWriter, r *http.Request, statusCode int, message string)
}

type service struct {
	indent bool
}

// New creates the JSON response service.
// Indented output is meant for local development.
func New(indent bool) Service {
	return &service{indent: indent}
}
