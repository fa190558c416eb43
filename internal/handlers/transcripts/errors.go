package transcripts

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vlatan/transcript-gateway/internal/integrations/yt"
)

// ErrorResponse maps a fetch failure to the status code and message served.
// Retrieval failures are the client's 404s, anything else is ours.
func ErrorResponse(err error, lang string) (int, string) {

	var re *yt.RetrievalError

	switch {
	case errors.Is(err, yt.ErrTranscriptsDisabled):
		return http.StatusNotFound, "Transcripts are disabled for this video."
	case errors.Is(err, yt.ErrVideoUnavailable):
		return http.StatusNotFound, "Video is unavailable."
	case errors.Is(err, yt.ErrNoTranscriptFound):
		return http.StatusNotFound, fmt.Sprintf("No transcript found for language '%s'.", lang)
	case errors.As(err, &re):
		return http.StatusNotFound, re.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
