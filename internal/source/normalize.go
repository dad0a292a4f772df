package source

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Spotify reports release dates at day, month, or year precision.
var spotifyDateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// Normalize converts one raw provider record into the canonical Item.
// It returns a *ParseError when the record's timestamp cannot be parsed;
// callers drop such records and keep going (see NormalizeAll).
//
// Timestamps are taken as reported upstream with no timezone conversion.
func Normalize(rec RawRecord) (Item, error) {
	switch r := rec.(type) {
	case InstagramPost:
		return normalizeInstagramPost(r, KindInstagramPost, "")
	case InstagramTagged:
		return normalizeInstagramPost(r.InstagramPost, KindInstagramTagged, r.OwnerID)
	case YouTubeVideo:
		return normalizeYouTubeVideo(r)
	case SpotifyEpisode:
		return normalizeSpotifyEpisode(r)
	default:
		return Item{}, fmt.Errorf("unknown raw record type %T", rec)
	}
}

// Skip records one raw record dropped during normalization.
type Skip struct {
	Index int
	Err   error
}

// NormalizeAll normalizes a batch of raw records. Records that fail to
// normalize are dropped and reported as skips; a bad record never fails
// the batch.
func NormalizeAll(recs []RawRecord) ([]Item, []Skip) {
	items := make([]Item, 0, len(recs))
	var skips []Skip
	for i, rec := range recs {
		item, err := Normalize(rec)
		if err != nil {
			skips = append(skips, Skip{Index: i, Err: err})
			continue
		}
		items = append(items, item)
	}
	return items, skips
}

func normalizeInstagramPost(r InstagramPost, kind Kind, ownerID string) (Item, error) {
	if r.TakenAt <= 0 {
		return Item{}, &ParseError{Kind: kind, Field: "taken_at_timestamp", Value: strconv.FormatInt(r.TakenAt, 10)}
	}

	item := Item{
		Timestamp: time.Unix(r.TakenAt, 0).UTC(),
		Likes:     clampCount(r.Likes),
		Comments:  clampCount(r.Comments),
		MediaType: MediaImage,
		Caption:   r.Caption,
		Mentions:  ExtractMentions(r.Caption),
		Hashtags:  ExtractHashtags(r.Caption),
		URL:       fmt.Sprintf("https://www.instagram.com/p/%s/", r.Shortcode),
		MediaURL:  strings.TrimSuffix(r.MediaURL, "?utm_source=ig_web_copy_link"),
		OwnerID:   ownerID,
	}

	if r.IsVideo {
		item.MediaType = MediaVideo
		if r.VideoViews != nil {
			views := clampCount(*r.VideoViews)
			item.Views = &views
		}
	}

	return item, nil
}

func normalizeYouTubeVideo(r YouTubeVideo) (Item, error) {
	ts, err := time.Parse(time.RFC3339, r.PublishedAt)
	if err != nil {
		return Item{}, &ParseError{Kind: KindYouTubeVideo, Field: "publishedAt", Value: r.PublishedAt}
	}

	views := parseCount(r.Views)
	return Item{
		Timestamp: ts,
		Likes:     parseCount(r.Likes),
		Comments:  parseCount(r.Comments),
		Views:     &views,
		MediaType: MediaVideo,
		Title:     r.Title,
		Caption:   r.Description,
		Mentions:  ExtractMentions(r.Description),
		Hashtags:  ExtractHashtags(r.Description),
		URL:       fmt.Sprintf("https://www.youtube.com/watch?v=%s", r.ID),
	}, nil
}

func normalizeSpotifyEpisode(r SpotifyEpisode) (Item, error) {
	var ts time.Time
	var err error
	for _, layout := range spotifyDateLayouts {
		ts, err = time.Parse(layout, r.ReleaseDate)
		if err == nil {
			break
		}
	}
	// "0000" parses cleanly but is the catalogue's placeholder for an
	// unknown date; reject it like any unusable timestamp
	if err != nil || ts.Year() < 1 {
		return Item{}, &ParseError{Kind: KindSpotifyEpisode, Field: "release_date", Value: r.ReleaseDate}
	}

	return Item{
		Timestamp: ts,
		MediaType: MediaEpisode,
		Title:     r.Name,
		Caption:   r.Description,
		Mentions:  ExtractMentions(r.Description),
		Hashtags:  ExtractHashtags(r.Description),
		URL:       r.URL,
	}, nil
}

// clampCount keeps counters non-negative; a provider glitch must never
// push a sum below zero.
func clampCount(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

// parseCount converts a YouTube statistics string to a counter. Hidden or
// malformed counters default to 0.
func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
