package yt

import (
	"errors"
	"fmt"
)

// Reasons a transcript could not be retrieved.
// Every one of them reaches the caller wrapped in a *RetrievalError.
var (
	ErrTranscriptsDisabled = errors.New("subtitles are disabled for this video")
	ErrVideoUnavailable    = errors.New("the video is no longer available")
	ErrNoTranscriptFound   = errors.New("no transcripts were found for any of the requested language codes")
	ErrInvalidVideoID      = errors.New("an invalid video id was provided, use the video id and not the url")
	ErrRequestBlocked      = errors.New("YouTube is blocking requests from this IP")
	ErrAgeRestricted       = errors.New("this video is age-restricted and can not be accessed without signing in")
	ErrVideoUnplayable     = errors.New("the video is unplayable")
	ErrPoTokenRequired     = errors.New("the requested transcript requires a PO token")
	ErrRequestFailed       = errors.New("request to YouTube failed")
	ErrDataUnparsable      = errors.New("the data required to fetch the transcript is not parsable")
	ErrConsentCookie       = errors.New("failed to automatically give consent to saving cookies")
)

// RetrievalError reports that YouTube answered,
// but no transcript could be produced for the video.
type RetrievalError struct {
	VideoID string
	Err     error
}

// Implement error interface
func (e *RetrievalError) Error() string {
	return fmt.Sprintf(
		"could not retrieve a transcript for the video %s: %v",
		watchURL(e.VideoID), e.Err,
	)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

func retrievalError(videoID string, err error) error {
	return &RetrievalError{VideoID: videoID, Err: err}
}

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
