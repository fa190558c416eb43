package yt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/vlatan/transcript-gateway/internal/config"
)

const defaultBaseURL = "https://www.youtube.com"

// Snippet is a single timed piece of a transcript
type Snippet struct {
	Text     string
	Start    float64
	Duration float64
}

// Transcript is a fetched caption track
type Transcript struct {
	VideoID      string
	Language     string
	LanguageCode string
	IsGenerated  bool
	Snippets     []Snippet
}

// Texts returns the snippet texts in their original order
func (t *Transcript) Texts() []string {
	texts := make([]string, len(t.Snippets))
	for i, s := range t.Snippets {
		texts[i] = s.Text
	}
	return texts
}

// YouTube transcript client
type Client struct {
	http      *http.Client
	baseURL   *url.URL
	userAgent string
	policy    *bluemonday.Policy
}

// New creates the YouTube transcript client.
// It holds a cookie jar, so one instance is meant to live for the whole process.
func New(cfg *config.Config) (*Client, error) {

	if cfg == nil {
		return nil, errors.New("unable to create YouTube client with nil config")
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.YouTubeProxyURL != "" {
		proxyURL, err := url.Parse(cfg.YouTubeProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url; %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Transport: transport,
		Timeout:   cfg.YouTubeTimeout,
		Jar:       jar,
	}

	return newClient(httpClient, defaultBaseURL, cfg.YouTubeUserAgent)
}

func newClient(httpClient *http.Client, baseURL, userAgent string) (*Client, error) {

	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url; %w", err)
	}

	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		httpClient.Jar = jar
	}

	return &Client{
		http:      httpClient,
		baseURL:   u,
		userAgent: userAgent,
		policy:    bluemonday.StrictPolicy(),
	}, nil
}

// Fetch retrieves the transcript of a video in the first available
// language of the given preference list.
// Manually created transcripts are preferred over generated ones.
func (c *Client) Fetch(ctx context.Context, videoID string, languages []string) (*Transcript, error) {

	tracks, err := c.ListTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, err := tracks.Find(languages)
	if err != nil {
		return nil, retrievalError(videoID, err)
	}

	snippets, err := c.fetchTimedText(ctx, videoID, track)
	if err != nil {
		return nil, err
	}

	return &Transcript{
		VideoID:      videoID,
		Language:     track.Language,
		LanguageCode: track.LanguageCode,
		IsGenerated:  track.IsGenerated,
		Snippets:     snippets,
	}, nil
}

// ListTracks lists the caption tracks available for a video
func (c *Client) ListTracks(ctx context.Context, videoID string) (TrackList, error) {

	page, err := c.fetchVideoHTML(ctx, videoID)
	if err != nil {
		return nil, err
	}

	apiKey, err := extractAPIKey(page)
	if err != nil {
		return nil, retrievalError(videoID, err)
	}

	player, err := c.fetchPlayerData(ctx, videoID, apiKey)
	if err != nil {
		return nil, err
	}

	if err := assertPlayability(videoID, player.PlayabilityStatus); err != nil {
		return nil, retrievalError(videoID, err)
	}

	if player.Captions == nil || player.Captions.Renderer == nil ||
		player.Captions.Renderer.CaptionTracks == nil {
		return nil, retrievalError(videoID, ErrTranscriptsDisabled)
	}

	return newTrackList(player.Captions.Renderer.CaptionTracks), nil
}

// Resolve a path or an absolute URL against the base URL
func (c *Client) resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.baseURL.ResolveReference(u).String()
}

// Do a request with the headers YouTube expects from a browser
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept-Language", "en-US")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.http.Do(req)
}
