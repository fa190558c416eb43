package misc

import "github.com/vlatan/transcript-gateway/internal/ui"

type Service struct {
	ui ui.Service
}

func New(ui ui.Service) *Service {
	return &Service{ui: ui}
}
