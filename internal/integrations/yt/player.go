package yt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	playerPath           = "/youtubei/v1/player"
	androidClientVersion = "20.10.38"
	maxPlayerSize        = 3 << 20
)

// Reasons YouTube gives next to a non-OK playability status
const (
	reasonBotCheck      = "Sign in to confirm you"
	reasonAgeRestricted = "This video may be inappropriate for some users."
	reasonUnavailable   = "This video is unavailable"
)

// --- ANDROID client types (/player endpoint) ---

type playerRequest struct {
	Context playerContext `json:"context"`
	VideoID string        `json:"videoId"`
}

type playerContext struct {
	Client playerClient `json:"client"`
}

type playerClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
}

type playerResponse struct {
	PlayabilityStatus *playabilityStatus `json:"playabilityStatus"`
	Captions          *struct {
		Renderer *struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type playabilityStatus struct {
	Status      string `json:"status"`
	Reason      string `json:"reason"`
	ErrorScreen *struct {
		PlayerErrorMessageRenderer *struct {
			Subreason *struct {
				Runs []textRun `json:"runs"`
			} `json:"subreason"`
		} `json:"playerErrorMessageRenderer"`
	} `json:"errorScreen"`
}

type captionTrack struct {
	BaseURL        string `json:"baseUrl"`
	LanguageCode   string `json:"languageCode"`
	Kind           string `json:"kind"` // "asr" = auto-generated
	IsTranslatable bool   `json:"isTranslatable"`
	Name           struct {
		SimpleText string    `json:"simpleText"`
		Runs       []textRun `json:"runs"`
	} `json:"name"`
}

type textRun struct {
	Text string `json:"text"`
}

// fetchPlayerData asks the Innertube player endpoint for the video details
func (c *Client) fetchPlayerData(ctx context.Context, videoID, apiKey string) (*playerResponse, error) {

	body, err := json.Marshal(playerRequest{
		Context: playerContext{
			Client: playerClient{
				ClientName:    "ANDROID",
				ClientVersion: androidClientVersion,
			},
		},
		VideoID: videoID,
	})
	if err != nil {
		return nil, err
	}

	endpoint := c.resolve(playerPath + "?key=" + url.QueryEscape(apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("innertube player: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(videoID, resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPlayerSize))
	if err != nil {
		return nil, fmt.Errorf("read player response: %w", err)
	}

	var player playerResponse
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, retrievalError(videoID, fmt.Errorf("%w: %v", ErrDataUnparsable, err))
	}

	return &player, nil
}

// assertPlayability turns a non-OK playability status into an error
func assertPlayability(videoID string, ps *playabilityStatus) error {

	if ps == nil || ps.Status == "" || ps.Status == "OK" {
		return nil
	}

	switch {
	case ps.Status == "LOGIN_REQUIRED" && strings.HasPrefix(ps.Reason, reasonBotCheck):
		return ErrRequestBlocked
	case ps.Status == "LOGIN_REQUIRED" && ps.Reason == reasonAgeRestricted:
		return ErrAgeRestricted
	case ps.Status == "ERROR" && ps.Reason == reasonUnavailable:
		if strings.HasPrefix(videoID, "http://") || strings.HasPrefix(videoID, "https://") {
			return ErrInvalidVideoID
		}
		return ErrVideoUnavailable
	}

	var subreasons []string
	if es := ps.ErrorScreen; es != nil && es.PlayerErrorMessageRenderer != nil &&
		es.PlayerErrorMessageRenderer.Subreason != nil {
		for _, run := range es.PlayerErrorMessageRenderer.Subreason.Runs {
			if run.Text != "" {
				subreasons = append(subreasons, run.Text)
			}
		}
	}

	reason := ps.Reason
	if reason == "" {
		reason = ps.Status
	}
	if len(subreasons) > 0 {
		reason += " (" + strings.Join(subreasons, " ") + ")"
	}

	return fmt.Errorf("%w: %s", ErrVideoUnplayable, reason)
}
