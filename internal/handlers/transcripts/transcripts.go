package transcripts

import (
	"context"
	"time"

	"github.com/vlatan/transcript-gateway/internal/integrations/yt"
	"github.com/vlatan/transcript-gateway/internal/limiter"
	"github.com/vlatan/transcript-gateway/internal/ui"
)

// Language every request falls back to
const fallbackLanguage = "en"

// Fetcher retrieves a transcript in the first available preferred language
type Fetcher interface {
	Fetch(ctx context.Context, videoID string, languages []string) (*yt.Transcript, error)
}

type Service struct {
	fetcher Fetcher
	limiter limiter.Limiter
	ui      ui.Service
	timeout time.Duration // whole fetch, zero means no deadline
}

func New(fetcher Fetcher, limiter limiter.Limiter, ui ui.Service, timeout time.Duration) *Service {
	return &Service{
		fetcher: fetcher,
		limiter: limiter,
		ui:      ui,
		timeout: timeout,
	}
}
