package ui

import (
	"log/slog"
	"net/http"

	"github.com/vlatan/transcript-gateway/internal/models"
)

// Write JSON error to response
func (s *service) JSONError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {

	data := models.JSONErrorData{Error: message}

	jsonData, err := s.marshal(data)
	if err != nil {
		slog.Error(
			"failed to encode JSON error response",
			slog.String("uri", r.RequestURI),
			slog.Any("error", err),
		)
		http.Error(w, http.StatusText(statusCode), statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(jsonData); err != nil {
		slog.Warn(
			"failed to write JSON error to response",
			slog.String("uri", r.RequestURI),
			slog.Any("error", err),
		)
	}
}
