package yt

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
)

const (
	consentAction  = "https://consent.youtube.com/s"
	recaptchaClass = `class="g-recaptcha"`
	maxPageSize    = 6 << 20
)

var apiKeyRE = regexp.MustCompile(`"INNERTUBE_API_KEY":\s*"([a-zA-Z0-9_-]+)"`)

// fetchVideoHTML loads the watch page of a video.
// If YouTube serves the cookie consent interstitial instead,
// consent is given through a cookie and the page is loaded once more.
func (c *Client) fetchVideoHTML(ctx context.Context, videoID string) ([]byte, error) {

	page, err := c.fetchHTML(ctx, videoID)
	if err != nil {
		return nil, err
	}

	value, isConsent := consentValue(page)
	if !isConsent {
		return page, nil
	}

	if value == "" {
		return nil, retrievalError(videoID, ErrConsentCookie)
	}

	c.http.Jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:  "CONSENT",
		Value: "YES+" + value,
		Path:  "/",
	}})

	page, err = c.fetchHTML(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if _, isConsent := consentValue(page); isConsent {
		return nil, retrievalError(videoID, ErrConsentCookie)
	}

	return page, nil
}

func (c *Client) fetchHTML(ctx context.Context, videoID string) ([]byte, error) {

	endpoint := c.resolve("/watch?v=" + url.QueryEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(videoID, resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	return []byte(html.UnescapeString(string(body))), nil
}

// extractAPIKey finds the Innertube API key embedded in the watch page
func extractAPIKey(page []byte) (string, error) {

	if m := apiKeyRE.FindSubmatch(page); len(m) == 2 {
		return string(m[1]), nil
	}

	if bytes.Contains(page, []byte(recaptchaClass)) {
		return "", ErrRequestBlocked
	}

	return "", ErrDataUnparsable
}

// consentValue reports whether the page is the consent interstitial
// and returns the value of its hidden "v" input, if any.
func consentValue(page []byte) (string, bool) {

	if !bytes.Contains(page, []byte(consentAction)) {
		return "", false
	}

	var (
		inForm bool
		value  string
	)

	z := nethtml.NewTokenizer(bytes.NewReader(page))
	for {
		switch z.Next() {
		case nethtml.ErrorToken:
			// io.EOF or a malformed document, either way we are done
			return value, true

		case nethtml.StartTagToken, nethtml.SelfClosingTagToken:
			t := z.Token()
			switch t.Data {
			case "form":
				inForm = strings.HasPrefix(attr(t, "action"), consentAction)
			case "input":
				if inForm && attr(t, "name") == "v" && value == "" {
					value = attr(t, "value")
				}
			}

		case nethtml.EndTagToken:
			if t := z.Token(); t.Data == "form" {
				inForm = false
			}
		}
	}
}

func attr(t nethtml.Token, key string) string {
	for _, a := range t.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// checkStatus maps unsuccessful YouTube responses to retrieval errors
func checkStatus(videoID string, resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return retrievalError(videoID, ErrRequestBlocked)
	case resp.StatusCode >= 400:
		return retrievalError(videoID, fmt.Errorf("%w: %s", ErrRequestFailed, resp.Status))
	}
	return nil
}
