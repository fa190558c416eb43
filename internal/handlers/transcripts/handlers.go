package transcripts

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vlatan/transcript-gateway/internal/limiter"
	"github.com/vlatan/transcript-gateway/internal/models"
)

// TranscriptHandler serves the joined transcript text of a video.
// GET /transcript?video_id=<id>[&lang=<code>]
func (s *Service) TranscriptHandler(w http.ResponseWriter, r *http.Request) {

	query := r.URL.Query()

	videoID := query.Get("video_id")
	if videoID == "" {
		s.ui.JSONError(w, r, http.StatusBadRequest, "Missing 'video_id' query parameter.")
		return
	}

	lang := query.Get("lang")
	if lang == "" {
		lang = fallbackLanguage
	}

	if err := s.limiter.Acquire(r.Context()); err != nil {
		if errors.Is(err, limiter.ErrLimitReached) {
			s.ui.JSONError(w, r, http.StatusTooManyRequests, "Too many requests, please try again later.")
			return
		}
		// Do not let the limiter backend take the gateway down
		slog.Warn("fetch limiter failed", slog.String("video_id", videoID), slog.Any("error", err))
	}

	// One deadline for all upstream round trips,
	// the server's write deadline is set above it.
	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	transcript, err := s.fetcher.Fetch(ctx, videoID, Languages(lang))
	if err != nil {
		status, message := ErrorResponse(err, lang)
		slog.Debug(
			"transcript fetch failed",
			slog.String("video_id", videoID),
			slog.String("lang", lang),
			slog.Int("status", status),
			slog.Any("error", err),
		)
		s.ui.JSONError(w, r, status, message)
		return
	}

	data := models.TranscriptResponse{
		Text: strings.Join(transcript.Texts(), "\n"),
	}

	s.ui.WriteJSON(w, r, http.StatusOK, data)
}

// Languages is the preference order for a requested language.
// The fallback is appended even when it repeats the requested one.
func Languages(lang string) []string {
	return []string{lang, fallbackLanguage}
}
