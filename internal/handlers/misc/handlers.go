package misc

import (
	"net/http"

	"github.com/vlatan/transcript-gateway/internal/models"
)

// HealthHandler answers the hosting platform's liveness probe.
// It touches nothing but the response writer.
func (s *Service) HealthHandler(w http.ResponseWriter, r *http.Request) {
	s.ui.WriteJSON(w, r, http.StatusOK, models.HealthResponse{Status: "ok"})
}
