package yt

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
)

const maxTimedTextSize = 4 << 20

// <transcript><text start="x" dur="y">...</text></transcript>
type timedText struct {
	XMLName xml.Name        `xml:"transcript"`
	Lines   []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Text     string  `xml:",chardata"`
}

// fetchTimedText downloads and parses the caption XML of a track
func (c *Client) fetchTimedText(ctx context.Context, videoID string, track Track) ([]Snippet, error) {

	trackURL := strings.Replace(track.baseURL, "&fmt=srv3", "", 1)
	if strings.Contains(trackURL, "&exp=xpe") {
		return nil, retrievalError(videoID, ErrPoTokenRequired)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(trackURL), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(videoID, resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTimedTextSize))
	if err != nil {
		return nil, fmt.Errorf("read timedtext: %w", err)
	}

	snippets, err := c.parseTimedText(body)
	if err != nil {
		return nil, retrievalError(videoID, fmt.Errorf("%w: %v", ErrDataUnparsable, err))
	}

	return snippets, nil
}

// parseTimedText decodes the caption XML.
// Lines without text are skipped, the rest keep their order.
func (c *Client) parseTimedText(data []byte) ([]Snippet, error) {

	var tt timedText
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = xml.HTMLEntity
	dec.Strict = false
	if err := dec.Decode(&tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	snippets := make([]Snippet, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		if line.Text == "" {
			continue
		}
		snippets = append(snippets, Snippet{
			Text:     c.cleanText(line.Text),
			Start:    line.Start,
			Duration: line.Duration,
		})
	}

	return snippets, nil
}

// cleanText unescapes the caption text and strips any markup in it
func (c *Client) cleanText(text string) string {
	return html.UnescapeString(c.policy.Sanitize(html.UnescapeString(text)))
}
