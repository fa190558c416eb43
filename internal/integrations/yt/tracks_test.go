package yt

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/microcosm-cc/bluemonday"
)

func TestTrackListFind(t *testing.T) {

	tracks := TrackList{
		{Language: "English (auto-generated)", LanguageCode: "en", IsGenerated: true},
		{Language: "English", LanguageCode: "en"},
		{Language: "German (auto-generated)", LanguageCode: "de", IsGenerated: true},
	}

	tests := []struct {
		name         string
		languages    []string
		wantLanguage string
		wantErr      bool
	}{
		{"manual wins", []string{"en"}, "English", false},
		{"generated when no manual", []string{"de", "en"}, "German (auto-generated)", false},
		{"preference order", []string{"fr", "de", "en"}, "German (auto-generated)", false},
		{"repeated language", []string{"en", "en"}, "English", false},
		{"nothing matches", []string{"fr", "es"}, "", true},
		{"no languages", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tracks.Find(tt.languages)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Fatalf("got error = %v, want error = %t", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrNoTranscriptFound) {
					t.Errorf("got error %v, want %v", err, ErrNoTranscriptFound)
				}
				if !strings.Contains(err.Error(), "available en, en, de") {
					t.Errorf("error %q does not list the available languages", err)
				}
				return
			}
			if got.Language != tt.wantLanguage {
				t.Errorf("got %q, want %q", got.Language, tt.wantLanguage)
			}
		})
	}
}

func TestAssertPlayability(t *testing.T) {

	var withSubreason playabilityStatus
	err := json.Unmarshal([]byte(`{"status": "UNPLAYABLE", "reason": "Video unavailable",
		"errorScreen": {"playerErrorMessageRenderer": {"subreason": {"runs": [{"text": "This video is private"}]}}}}`),
		&withSubreason)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		videoID string
		status  *playabilityStatus
		want    error
	}{
		{"missing status", "abc", nil, nil},
		{"ok", "abc", &playabilityStatus{Status: "OK"}, nil},
		{"unavailable", "abc", &playabilityStatus{Status: "ERROR", Reason: reasonUnavailable}, ErrVideoUnavailable},
		{"url instead of id", "https://youtu.be/abc", &playabilityStatus{Status: "ERROR", Reason: reasonUnavailable}, ErrInvalidVideoID},
		{"age restricted", "abc", &playabilityStatus{Status: "LOGIN_REQUIRED", Reason: reasonAgeRestricted}, ErrAgeRestricted},
		{"bot check", "abc", &playabilityStatus{Status: "LOGIN_REQUIRED", Reason: "Sign in to confirm you're not a bot"}, ErrRequestBlocked},
		{"login required", "abc", &playabilityStatus{Status: "LOGIN_REQUIRED", Reason: "Private video"}, ErrVideoUnplayable},
		{"unplayable", "abc", &withSubreason, ErrVideoUnplayable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := assertPlayability(tt.videoID, tt.status)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	err = assertPlayability("abc", &withSubreason)
	if want := "Video unavailable (This video is private)"; err == nil || !strings.HasSuffix(err.Error(), want) {
		t.Errorf("got %v, want suffix %q", err, want)
	}
}

func TestCleanText(t *testing.T) {

	c := &Client{policy: bluemonday.StrictPolicy()}

	tests := []struct {
		name, input, want string
	}{
		{"plain", "Hello world", "Hello world"},
		{"markup", `<font color="#E5E5E5">Hello</font> world`, "Hello world"},
		{"entities", "Tom &amp; Jerry", "Tom & Jerry"},
		{"double escaped", "it&#39;s", "it's"},
		{"markup and entities", "<i>Hello</i> &amp; world", "Hello & world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.cleanText(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
