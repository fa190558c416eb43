package ui

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Write JSON to buffer first and then if succesfull to the response writer
func (s *service) WriteJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {

	jsonData, err := s.marshal(data)
	if err != nil {
		slog.Error(
			"failed to encode JSON response",
			slog.String("uri", r.RequestURI),
			slog.Any("error", err),
		)
		s.JSONError(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	// Set the content type before writing the status code
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(jsonData); err != nil {
		// Too late for recovery here, just log the error
		slog.Warn(
			"failed to write JSON to response",
			slog.String("uri", r.RequestURI),
			slog.Any("error", err),
		)
	}
}

func (s *service) marshal(data any) ([]byte, error) {
	if s.indent {
		b, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	}

	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
