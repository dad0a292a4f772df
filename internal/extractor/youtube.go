package extractor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/timahq/socialdata/internal/cache"
	"github.com/timahq/socialdata/internal/report"
	"github.com/timahq/socialdata/internal/source"
	"github.com/timahq/socialdata/pkg/telemetry"
)

// YouTubeChannel aggregates a channel's uploads into channel metadata plus
// summary metrics, including the estimated-reach projection.
func (s *Service) YouTubeChannel(ctx context.Context, channelID string) (*ChannelResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "extractor.youtube_channel")
	defer span.End()

	key := cache.HashKey("youtube", "channel", channelID)
	var cached ChannelResult
	if hit, err := s.cache.GetJSON(key, &cached); err == nil && hit {
		return &cached, nil
	}

	acct, err := s.youtube.Channel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	records, err := s.youtube.Videos(ctx, channelID)
	if err != nil {
		return nil, err
	}
	items, skipped := s.normalize(source.PlatformYouTube, records)

	m := s.aggregate(items, acct)
	res := &ChannelResult{
		Account: acct,
		Metrics: m,
		Row:     report.Channel(acct, m),
		Skipped: skipped,
	}

	s.store(key, res)
	s.logger.Info("aggregated youtube channel",
		zap.String("channel_id", channelID),
		zap.Int("items", m.ItemCount),
		zap.Int("skipped", skipped))

	return res, nil
}

// YouTubeVideos builds the per-video table for a channel.
func (s *Service) YouTubeVideos(ctx context.Context, channelID string) (*VideosResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "extractor.youtube_videos")
	defer span.End()

	key := cache.HashKey("youtube", "videos", channelID)
	var cached VideosResult
	if hit, err := s.cache.GetJSON(key, &cached); err == nil && hit {
		return &cached, nil
	}

	records, err := s.youtube.Videos(ctx, channelID)
	if err != nil {
		return nil, err
	}
	items, skipped := s.normalize(source.PlatformYouTube, records)
	if len(items) == 0 {
		return nil, fmt.Errorf("videos for %q: %w", channelID, source.ErrEmptyResult)
	}

	res := &VideosResult{Rows: report.Videos(items), Skipped: skipped}
	s.store(key, res)
	return res, nil
}

// YouTubeActivity builds the posting-activity breakdowns for a channel.
// A year of 0 selects the current year for the month view.
func (s *Service) YouTubeActivity(ctx context.Context, channelID string, year int) (*ActivityResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "extractor.youtube_activity")
	defer span.End()

	key := cache.HashKey("youtube", "activity", channelID, fmt.Sprint(year))
	var cached ActivityResult
	if hit, err := s.cache.GetJSON(key, &cached); err == nil && hit {
		return &cached, nil
	}

	records, err := s.youtube.Videos(ctx, channelID)
	if err != nil {
		return nil, err
	}
	items, _ := s.normalize(source.PlatformYouTube, records)
	if len(items) == 0 {
		return nil, fmt.Errorf("activity for %q: %w", channelID, source.ErrEmptyResult)
	}

	res := s.activity(items, year)
	s.store(key, res)
	return res, nil
}
