package source

// Kind identifies which provider schema a raw record came from.
type Kind string

const (
	KindInstagramPost   Kind = "instagram_post"
	KindInstagramTagged Kind = "instagram_tagged"
	KindYouTubeVideo    Kind = "youtube_video"
	KindSpotifyEpisode  Kind = "spotify_episode"
)

// RawRecord is one provider record awaiting normalization. The concrete
// types below form a closed set; Normalize rejects anything else.
type RawRecord interface {
	Kind() Kind
}

// InstagramPost mirrors one timeline-media record as reported by the
// Instagram web API.
type InstagramPost struct {
	Shortcode  string
	TakenAt    int64 // unix seconds; zero means the provider omitted it
	Likes      int64
	Comments   int64
	IsVideo    bool
	VideoViews *int64 // nil for image posts
	Caption    string
	MediaURL   string // direct URL of the media asset itself
}

// Kind implements RawRecord.
func (InstagramPost) Kind() Kind { return KindInstagramPost }

// InstagramTagged is a post from the tagged-media feed: the same shape as
// a timeline post plus the ID of the account that authored it.
type InstagramTagged struct {
	InstagramPost
	OwnerID string
}

// Kind implements RawRecord.
func (InstagramTagged) Kind() Kind { return KindInstagramTagged }

// YouTubeVideo mirrors one video from the YouTube Data API. The API
// reports statistics as decimal strings and omits counters the channel
// has hidden.
type YouTubeVideo struct {
	ID          string
	Title       string
	PublishedAt string // RFC 3339
	Description string
	Views       string
	Likes       string
	Comments    string
}

// Kind implements RawRecord.
func (YouTubeVideo) Kind() Kind { return KindYouTubeVideo }

// SpotifyEpisode mirrors one show episode from the Spotify Web API.
type SpotifyEpisode struct {
	Name        string
	Description string
	ReleaseDate string // "2006-01-02", "2006-01", or "2006" depending on precision
	DurationMs  int64
	Explicit    bool
	Languages   []string
	URL         string
}

// Kind implements RawRecord.
func (SpotifyEpisode) Kind() Kind { return KindSpotifyEpisode }

// SpotifyTrack is an artist top track. Tracks are display-only rows and
// never enter the aggregation pipeline.
type SpotifyTrack struct {
	Name        string
	Popularity  int
	Album       string
	ReleaseDate string
}
