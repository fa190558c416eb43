package yt

import (
	"fmt"
	"strings"
)

// Track is a caption track YouTube offers for a video
type Track struct {
	Language     string
	LanguageCode string
	IsGenerated  bool
	baseURL      string
}

// TrackList holds the caption tracks of a video in the order YouTube lists them
type TrackList []Track

func newTrackList(captionTracks []captionTrack) TrackList {
	tracks := make(TrackList, 0, len(captionTracks))
	for _, ct := range captionTracks {
		tracks = append(tracks, Track{
			Language:     trackName(ct),
			LanguageCode: ct.LanguageCode,
			IsGenerated:  ct.Kind == "asr",
			baseURL:      ct.BaseURL,
		})
	}
	return tracks
}

func trackName(ct captionTrack) string {
	if ct.Name.SimpleText != "" {
		return ct.Name.SimpleText
	}
	var sb strings.Builder
	for _, run := range ct.Name.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// Find picks a track for the first language code that has one.
// For each language a manually created track wins over a generated one.
func (tl TrackList) Find(languages []string) (Track, error) {
	for _, lang := range languages {
		for _, generated := range []bool{false, true} {
			for _, t := range tl {
				if t.LanguageCode == lang && t.IsGenerated == generated {
					return t, nil
				}
			}
		}
	}

	return Track{}, fmt.Errorf(
		"%w (requested %s; available %s)",
		ErrNoTranscriptFound,
		strings.Join(languages, ", "),
		strings.Join(tl.LanguageCodes(), ", "),
	)
}

// LanguageCodes returns the language codes of all tracks
func (tl TrackList) LanguageCodes() []string {
	codes := make([]string, len(tl))
	for i, t := range tl {
		codes[i] = t.LanguageCode
	}
	return codes
}
