// Package source defines the canonical record types shared by the
// aggregation pipeline and the provider adapters, and the normalization
// step that converts raw provider records into them.
package source

import "time"

// Platform identifies the upstream network an account lives on.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformSpotify   Platform = "spotify"
)

// MediaType classifies a single item.
type MediaType string

const (
	MediaImage   MediaType = "Image"
	MediaVideo   MediaType = "Video"
	MediaEpisode MediaType = "Episode"
	MediaOther   MediaType = "Other"
)

// Item is the canonical per-post/per-video/per-episode record produced by
// normalization. Numeric counters are never negative; Views stays nil for
// items whose provider reports no view counter so that "no views reported"
// is distinguishable from "zero views".
type Item struct {
	Timestamp time.Time `json:"timestamp"`
	Likes     int64     `json:"likes"`
	Comments  int64     `json:"comments"`
	Views     *int64    `json:"views,omitempty"`
	MediaType MediaType `json:"media_type"`
	Title     string    `json:"title,omitempty"`
	Caption   string    `json:"caption,omitempty"`
	Mentions  []string  `json:"mentions,omitempty"`
	Hashtags  []string  `json:"hashtags,omitempty"`
	URL       string    `json:"url"`
	MediaURL  string    `json:"media_url,omitempty"` // direct media asset URL, Instagram only
	OwnerID   string    `json:"owner_id,omitempty"`  // set for tagged-feed records only
}

// ViewCount returns the item's view count, treating an absent counter as 0.
func (it Item) ViewCount() int64 {
	if it.Views == nil {
		return 0
	}
	return *it.Views
}

// AccountSummary holds the account-level fields reported by a provider.
// Fields that only exist on some platforms stay zero-valued elsewhere.
type AccountSummary struct {
	Platform        Platform `json:"platform"`
	ID              string   `json:"id,omitempty"`
	Username        string   `json:"username"`
	DisplayName     string   `json:"display_name,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	Followers       int64    `json:"followers"`
	FollowersKnown  bool     `json:"followers_known"`
	Following       int64    `json:"following,omitempty"`
	MediaCount      int64    `json:"media_count,omitempty"`
	ProfileImageURL string   `json:"profile_image_url,omitempty"`
	ProfileURL      string   `json:"profile_url"`
	Country         string   `json:"country,omitempty"`
	Private         bool     `json:"private,omitempty"`
	Verified        bool     `json:"verified,omitempty"`

	// Spotify artist fields
	Popularity int      `json:"popularity,omitempty"`
	Genres     []string `json:"genres,omitempty"`

	// Spotify podcast fields
	Publisher  string   `json:"publisher,omitempty"`
	Languages  []string `json:"languages,omitempty"`
	MediaKind  string   `json:"media_kind,omitempty"`
	Copyrights string   `json:"copyrights,omitempty"`
	Explicit   bool     `json:"explicit,omitempty"`
}
