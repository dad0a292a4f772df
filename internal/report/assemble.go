package report

import (
	"math"
	"strconv"
	"strings"

	"github.com/timahq/socialdata/internal/metrics"
	"github.com/timahq/socialdata/internal/source"
)

// RateUnavailable is rendered in place of a follower rate when the
// provider did not report a follower count. A plain 0 would be
// indistinguishable from a real zero-follower account.
const RateUnavailable = "N/A"

// Profile merges an Instagram account summary with its aggregate metrics
// into one flat row.
func Profile(acct source.AccountSummary, m metrics.Metrics) ProfileRow {
	return ProfileRow{
		Username:        "@" + acct.Username,
		FullName:        acct.DisplayName,
		Biography:       acct.Bio,
		Followers:       acct.Followers,
		Following:       acct.Following,
		TotalLikes:      m.TotalLikes,
		AverageLikes:    m.AverageLikes,
		LikesRate:       formatRate(m.LikesRate, m.FollowersKnown),
		TotalComments:   m.TotalComments,
		AverageComments: m.AverageComments,
		CommentsRate:    formatRate(m.CommentsRate, m.FollowersKnown),
		TotalViews:      m.TotalViews,
		AverageViews:    m.AverageViews,
		ViewsRate:       formatRate(m.ViewsRate, m.FollowersKnown),
		EngagementRate:  formatRate(m.EngagementRate, m.FollowersKnown),
		Videos:          m.VideoCount,
		Images:          m.ImageCount,
		Private:         acct.Private,
		Verified:        acct.Verified,
		MediaCount:      acct.MediaCount,
		ProfilePic:      acct.ProfileImageURL,
		ProfileURL:      acct.ProfileURL,
	}
}

// Channel merges a YouTube channel summary with its aggregate metrics
// into one flat row. Estimated reach only appears here; the dashboard
// does not project reach for the other platforms.
func Channel(acct source.AccountSummary, m metrics.Metrics) ChannelRow {
	return ChannelRow{
		Title:           acct.DisplayName,
		Description:     acct.Bio,
		Country:         countryOrDefault(acct.Country),
		SubscriberCount: acct.Followers,
		TotalViews:      m.TotalViews,
		TotalVideos:     m.ItemCount,
		TotalLikes:      m.TotalLikes,
		TotalComments:   m.TotalComments,
		AverageLikes:    m.AverageLikes,
		AverageComments: m.AverageComments,
		AverageViews:    m.AverageViews,
		EngagementRate:  formatRate(m.EngagementRate, m.FollowersKnown),
		EstimatedReach:  m.EstimatedReach,
		ChannelURL:      acct.ProfileURL,
	}
}

// Artist flattens a Spotify artist summary.
func Artist(acct source.AccountSummary) ArtistRow {
	return ArtistRow{
		ArtistName:  acct.DisplayName,
		Followers:   acct.Followers,
		Popularity:  acct.Popularity,
		Genres:      strings.Join(acct.Genres, ", "),
		ProfileLink: acct.ProfileURL,
	}
}

// Podcast flattens a Spotify podcast summary.
func Podcast(acct source.AccountSummary) PodcastRow {
	return PodcastRow{
		PodcastName:   acct.DisplayName,
		Publisher:     acct.Publisher,
		TotalEpisodes: acct.MediaCount,
		Description:   acct.Bio,
		Languages:     strings.Join(acct.Languages, ", "),
		MediaType:     acct.MediaKind,
		Link:          acct.ProfileURL,
		Copyrights:    acct.Copyrights,
		Explicit:      acct.Explicit,
		ImageURL:      acct.ProfileImageURL,
	}
}

// Posts maps normalized Instagram items to posts-metadata rows.
func Posts(items []source.Item) []PostRow {
	rows := make([]PostRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, postRow(it))
	}
	return rows
}

// Mentions maps normalized tagged-feed items to mentions-metadata rows.
func Mentions(items []source.Item) []MentionRow {
	rows := make([]MentionRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, MentionRow{OwnerID: it.OwnerID, PostRow: postRow(it)})
	}
	return rows
}

func postRow(it source.Item) PostRow {
	return PostRow{
		Date:         it.Timestamp,
		PostURL:      it.URL,
		Likes:        it.Likes,
		Comments:     it.Comments,
		Caption:      it.Caption,
		Mentions:     strings.Join(it.Mentions, ", "),
		Hashtags:     strings.Join(it.Hashtags, ", "),
		PostType:     string(it.MediaType),
		VideoViews:   it.Views,
		ShortenedURL: it.MediaURL,
	}
}

// Videos maps normalized YouTube items to video rows. The per-video
// engagement rate relates likes and comments to that video's views, as a
// percentage, 0 when the video has no views.
func Videos(items []source.Item) []VideoRow {
	rows := make([]VideoRow, 0, len(items))
	for _, it := range items {
		views := it.ViewCount()
		var engagement float64
		if views > 0 {
			engagement = round2(float64(it.Likes+it.Comments) / float64(views) * 100)
		}
		rows = append(rows, VideoRow{
			Title:          it.Title,
			DatePosted:     it.Timestamp,
			Views:          views,
			Likes:          it.Likes,
			Comments:       it.Comments,
			Description:    it.Caption,
			Hashtags:       strings.Join(it.Hashtags, ", "),
			EngagementRate: engagement,
			URL:            it.URL,
		})
	}
	return rows
}

// Episodes maps raw podcast episodes to episode rows. Episodes carry no
// engagement counters, so the rows come straight from the provider
// records.
func Episodes(episodes []source.SpotifyEpisode) []EpisodeRow {
	rows := make([]EpisodeRow, 0, len(episodes))
	for _, ep := range episodes {
		rows = append(rows, EpisodeRow{
			EpisodeName: ep.Name,
			Description: ep.Description,
			ReleaseDate: ep.ReleaseDate,
			DurationMs:  ep.DurationMs,
			Explicit:    ep.Explicit,
			Language:    strings.Join(ep.Languages, ", "),
			Link:        ep.URL,
		})
	}
	return rows
}

// Tracks maps artist top tracks to track rows.
func Tracks(tracks []source.SpotifyTrack) []TrackRow {
	rows := make([]TrackRow, 0, len(tracks))
	for _, tr := range tracks {
		rows = append(rows, TrackRow{
			TrackName:   tr.Name,
			Popularity:  tr.Popularity,
			AlbumName:   tr.Album,
			ReleaseDate: tr.ReleaseDate,
		})
	}
	return rows
}

func formatRate(v float64, known bool) string {
	if !known {
		return RateUnavailable
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func countryOrDefault(country string) string {
	if country == "" {
		return "Not provided"
	}
	return country
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
