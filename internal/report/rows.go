// Package report flattens account summaries and aggregate metrics into
// the display rows consumed by the dashboard. Field order within each row
// is the documented column order; assembly performs no computation of its
// own beyond formatting.
package report

import "time"

// ProfileRow is the single-record Instagram profile metadata table.
type ProfileRow struct {
	Username        string  `json:"User Name"`
	FullName        string  `json:"Full Name"`
	Biography       string  `json:"Biography"`
	Followers       int64   `json:"Followers"`
	Following       int64   `json:"Following"`
	TotalLikes      int64   `json:"Total Likes"`
	AverageLikes    float64 `json:"Average Likes"`
	LikesRate       string  `json:"Likes Rate"`
	TotalComments   int64   `json:"Total Comments"`
	AverageComments float64 `json:"Average Comments"`
	CommentsRate    string  `json:"Comments Rate"`
	TotalViews      int64   `json:"Total Views"`
	AverageViews    float64 `json:"Average Views"`
	ViewsRate       string  `json:"Views Rate"`
	EngagementRate  string  `json:"Engagement Rate"`
	Videos          int     `json:"Videos"`
	Images          int     `json:"Images"`
	Private         bool    `json:"Private"`
	Verified        bool    `json:"Verified"`
	MediaCount      int64   `json:"Media Count"`
	ProfilePic      string  `json:"Profile Pic"`
	ProfileURL      string  `json:"Profile URL"`
}

// ProfileColumns is the documented column order for ProfileRow.
var ProfileColumns = []string{
	"User Name", "Full Name", "Biography", "Followers",
	"Following", "Total Likes", "Average Likes", "Likes Rate", "Total Comments",
	"Average Comments", "Comments Rate", "Total Views", "Average Views", "Views Rate",
	"Engagement Rate", "Videos", "Images", "Private", "Verified",
	"Media Count", "Profile Pic", "Profile URL",
}

// ChannelRow is the single-record YouTube channel metadata table.
type ChannelRow struct {
	Title           string  `json:"Title"`
	Description     string  `json:"Description"`
	Country         string  `json:"Country"`
	SubscriberCount int64   `json:"Subscriber Count"`
	TotalViews      int64   `json:"Total Views"`
	TotalVideos     int     `json:"Total Videos"`
	TotalLikes      int64   `json:"Total Likes"`
	TotalComments   int64   `json:"Total Comments"`
	AverageLikes    float64 `json:"Average Likes per Video"`
	AverageComments float64 `json:"Average Comments per Video"`
	AverageViews    float64 `json:"Average Views per Video"`
	EngagementRate  string  `json:"Engagement Rate (%)"`
	EstimatedReach  float64 `json:"Estimated Reach"`
	ChannelURL      string  `json:"Channel URL"`
}

// ChannelColumns is the documented column order for ChannelRow.
var ChannelColumns = []string{
	"Title", "Description", "Country", "Subscriber Count", "Total Views",
	"Total Videos", "Total Likes", "Total Comments", "Average Likes per Video",
	"Average Comments per Video", "Average Views per Video", "Engagement Rate (%)",
	"Estimated Reach", "Channel URL",
}

// ArtistRow is the single-record Spotify artist metadata table.
type ArtistRow struct {
	ArtistName  string `json:"Artist Name"`
	Followers   int64  `json:"Followers"`
	Popularity  int    `json:"Popularity"`
	Genres      string `json:"Genres"`
	ProfileLink string `json:"Profile Link"`
}

// PodcastRow is the single-record Spotify podcast metadata table.
type PodcastRow struct {
	PodcastName   string `json:"Podcast Name"`
	Publisher     string `json:"Publisher"`
	TotalEpisodes int64  `json:"Total Episodes"`
	Description   string `json:"Description"`
	Languages     string `json:"Languages"`
	MediaType     string `json:"Media Type"`
	Link          string `json:"Link"`
	Copyrights    string `json:"Copyrights"`
	Explicit      bool   `json:"Explicit"`
	ImageURL      string `json:"Image URL"`
}

// PostRow is one Instagram post in the posts-metadata table. Shortened
// URL is the direct media asset, as opposed to the post's permalink.
type PostRow struct {
	Date         time.Time `json:"Date"`
	PostURL      string    `json:"Post URL"`
	Likes        int64     `json:"Likes"`
	Comments     int64     `json:"Comments"`
	Caption      string    `json:"Caption"`
	Mentions     string    `json:"Mentions"`
	Hashtags     string    `json:"Hashtags"`
	PostType     string    `json:"Post Type"`
	VideoViews   *int64    `json:"Video Views"`
	ShortenedURL string    `json:"Shortened URL"`
}

// PostColumns is the documented column order for PostRow.
var PostColumns = []string{
	"Date", "Post URL", "Likes", "Comments", "Caption",
	"Mentions", "Hashtags", "Post Type", "Video Views",
	"Shortened URL",
}

// MentionColumns is the documented column order for MentionRow.
var MentionColumns = []string{
	"User Id", "Date", "Post URL", "Likes",
	"Comments", "Caption", "Mentions", "Hashtags",
	"Post Type", "Video Views", "Shortened URL",
}

// MentionRow is one tagged post in the mentions-metadata table.
type MentionRow struct {
	OwnerID string `json:"User Id"`
	PostRow
}

// VideoRow is one video in the YouTube posts-metadata table. Its
// engagement rate is per video, relative to that video's views.
type VideoRow struct {
	Title          string    `json:"Title"`
	DatePosted     time.Time `json:"Date Posted"`
	Views          int64     `json:"Views"`
	Likes          int64     `json:"Likes"`
	Comments       int64     `json:"Comments"`
	Description    string    `json:"Description"`
	Hashtags       string    `json:"Hashtags"`
	EngagementRate float64   `json:"Engagement Rate"`
	URL            string    `json:"URL"`
}

// EpisodeRow is one episode in the podcast episodes table.
type EpisodeRow struct {
	EpisodeName string `json:"Episode Name"`
	Description string `json:"Description"`
	ReleaseDate string `json:"Release Date"`
	DurationMs  int64  `json:"Duration (ms)"`
	Explicit    bool   `json:"Explicit"`
	Language    string `json:"Language"`
	Link        string `json:"Link"`
}

// TrackRow is one artist top track.
type TrackRow struct {
	TrackName   string `json:"Track Name"`
	Popularity  int    `json:"Popularity"`
	AlbumName   string `json:"Album Name"`
	ReleaseDate string `json:"Release Date"`
}
