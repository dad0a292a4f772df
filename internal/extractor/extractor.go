// Package extractor orchestrates the aggregation pipeline: it pulls raw
// records from the provider adapters, normalizes them, computes metrics,
// assembles display rows, and caches the finished results.
package extractor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/timahq/socialdata/internal/cache"
	"github.com/timahq/socialdata/internal/metrics"
	"github.com/timahq/socialdata/internal/report"
	"github.com/timahq/socialdata/internal/source"
	"github.com/timahq/socialdata/pkg/config"
	"github.com/timahq/socialdata/pkg/logging"
)

// InstagramProvider is the slice of the Instagram adapter the pipeline
// needs.
type InstagramProvider interface {
	Profile(ctx context.Context, username string) (source.AccountSummary, error)
	Posts(ctx context.Context, userID string) ([]source.RawRecord, error)
	Tagged(ctx context.Context, userID string) ([]source.RawRecord, error)
}

// YouTubeProvider is the slice of the YouTube adapter the pipeline needs.
type YouTubeProvider interface {
	Channel(ctx context.Context, channelID string) (source.AccountSummary, error)
	Videos(ctx context.Context, channelID string) ([]source.RawRecord, error)
}

// SpotifyProvider is the slice of the Spotify adapter the pipeline needs.
type SpotifyProvider interface {
	Artist(ctx context.Context, name string) (source.AccountSummary, error)
	TopTracks(ctx context.Context, artistID string) ([]source.SpotifyTrack, error)
	Podcast(ctx context.Context, name string) (source.AccountSummary, error)
	Episodes(ctx context.Context, showID string) ([]source.SpotifyEpisode, error)
}

// Service runs the aggregation pipeline.
type Service struct {
	instagram InstagramProvider
	youtube   YouTubeProvider
	spotify   SpotifyProvider
	cache     *cache.Cache
	ttl       time.Duration
	workers   int
	reach     float64
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a new extractor service
func New(cfg *config.ExtractConfig, ig InstagramProvider, yt YouTubeProvider, sp SpotifyProvider, c *cache.Cache) *Service {
	return &Service{
		instagram: ig,
		youtube:   yt,
		spotify:   sp,
		cache:     c,
		ttl:       cfg.CacheTTL,
		workers:   cfg.MaxWorkers,
		reach:     cfg.ReachMultiplier,
		logger:    logging.GetLogger().With(zap.String("component", "extractor")),
		now:       time.Now,
	}
}

// aggregate runs the shared metrics step for a normalized item set.
func (s *Service) aggregate(items []source.Item, acct source.AccountSummary) metrics.Metrics {
	opts := []metrics.Option{metrics.WithReachMultiplier(s.reach)}
	if !acct.FollowersKnown {
		opts = append(opts, metrics.UnknownFollowers())
	}
	return metrics.Aggregate(items, acct.Followers, opts...)
}

// normalize converts raw records and logs every skip with its reason.
func (s *Service) normalize(platform source.Platform, records []source.RawRecord) ([]source.Item, int) {
	items, skips := source.NormalizeAll(records)
	for _, sk := range skips {
		s.logger.Warn("skipped malformed record",
			zap.String("platform", string(platform)),
			zap.Int("index", sk.Index),
			zap.Error(sk.Err))
	}
	return items, len(skips)
}

// ProfileResult is the finished Instagram profile aggregation.
type ProfileResult struct {
	Account source.AccountSummary `json:"account"`
	Metrics metrics.Metrics       `json:"metrics"`
	Row     report.ProfileRow     `json:"row"`
	Skipped int                   `json:"skipped"`
}

// PostsResult is the Instagram posts-metadata table.
type PostsResult struct {
	Rows    []report.PostRow `json:"rows"`
	Skipped int              `json:"skipped"`
}

// MentionsResult is the Instagram mentions-metadata table.
type MentionsResult struct {
	Rows    []report.MentionRow `json:"rows"`
	Skipped int                 `json:"skipped"`
}

// ChannelResult is the finished YouTube channel aggregation.
type ChannelResult struct {
	Account source.AccountSummary `json:"account"`
	Metrics metrics.Metrics       `json:"metrics"`
	Row     report.ChannelRow     `json:"row"`
	Skipped int                   `json:"skipped"`
}

// VideosResult is the YouTube video table.
type VideosResult struct {
	Rows    []report.VideoRow `json:"rows"`
	Skipped int               `json:"skipped"`
}

// ActivityResult holds the posting-activity breakdowns for one account:
// recent years, months of one year, weekday-hour cells, and tag clouds.
type ActivityResult struct {
	Years        []metrics.YearBucket        `json:"years"`
	Months       []metrics.MonthBucket       `json:"months"`
	WeekdayHours []metrics.WeekdayHourBucket `json:"weekday_hours"`
	Hashtags     []metrics.TagCount          `json:"hashtags"`
	Mentions     []metrics.TagCount          `json:"mentions"`
}

// ArtistResult is the finished Spotify artist lookup.
type ArtistResult struct {
	Account source.AccountSummary `json:"account"`
	Row     report.ArtistRow      `json:"row"`
	Tracks  []report.TrackRow     `json:"tracks"`
}

// PodcastResult is the finished Spotify podcast lookup.
type PodcastResult struct {
	Account  source.AccountSummary `json:"account"`
	Row      report.PodcastRow     `json:"row"`
	Episodes []report.EpisodeRow   `json:"episodes"`
}
