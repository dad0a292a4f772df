package extractor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/timahq/socialdata/internal/cache"
	"github.com/timahq/socialdata/internal/metrics"
	"github.com/timahq/socialdata/internal/report"
	"github.com/timahq/socialdata/internal/source"
	"github.com/timahq/socialdata/pkg/telemetry"
)

// InstagramProfile aggregates an account's timeline into profile metadata
// plus summary metrics. An account with zero aggregatable posts still
// yields its metadata; the metrics simply stay zero.
func (s *Service) InstagramProfile(ctx context.Context, username string) (*ProfileResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "extractor.instagram_profile")
	defer span.End()

	key := cache.HashKey("instagram", "profile", username)
	var cached ProfileResult
	if hit, err := s.cache.GetJSON(key, &cached); err == nil && hit {
		return &cached, nil
	}

	acct, err := s.instagram.Profile(ctx, username)
	if err != nil {
		return nil, err
	}
	records, err := s.instagram.Posts(ctx, acct.ID)
	if err != nil {
		return nil, err
	}
	items, skipped := s.normalize(source.PlatformInstagram, records)

	m := s.aggregate(items, acct)
	res := &ProfileResult{
		Account: acct,
		Metrics: m,
		Row:     report.Profile(acct, m),
		Skipped: skipped,
	}

	s.store(key, res)
	s.logger.Info("aggregated instagram profile",
		zap.String("username", username),
		zap.Int("items", m.ItemCount),
		zap.Int("skipped", skipped))

	return res, nil
}

// InstagramPosts builds the posts-metadata table for an account.
func (s *Service) InstagramPosts(ctx context.Context, username string) (*PostsResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "extractor.instagram_posts")
	defer span.End()

	key := cache.HashKey("instagram", "posts", username)
	var cached PostsResult
	if hit, err := s.cache.GetJSON(key, &cached); err == nil && hit {
		return &cached, nil
	}

	acct, err := s.instagram.Profile(ctx, username)
	if err != nil {
		return nil, err
	}
	records, err := s.instagram.Posts(ctx, acct.ID)
	if err != nil {
		return nil, err
	}
	items, skipped := s.normalize(source.PlatformInstagram, records)
	if len(items) == 0 {
		return nil, fmt.Errorf("posts for %q: %w", username, source.ErrEmptyResult)
	}

	res := &PostsResult{Rows: report.Posts(items), Skipped: skipped}
	s.store(key, res)
	return res, nil
}

// InstagramMentions builds the mentions-metadata table from the account's
// tagged feed.
func (s *Service) InstagramMentions(ctx context.Context, username string) (*MentionsResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "extractor.instagram_mentions")
	defer span.End()

	key := cache.HashKey("instagram", "mentions", username)
	var cached MentionsResult
	if hit, err := s.cache.GetJSON(key, &cached); err == nil && hit {
		return &cached, nil
	}

	acct, err := s.instagram.Profile(ctx, username)
	if err != nil {
		return nil, err
	}
	records, err := s.instagram.Tagged(ctx, acct.ID)
	if err != nil {
		return nil, err
	}
	items, skipped := s.normalize(source.PlatformInstagram, records)
	if len(items) == 0 {
		return nil, fmt.Errorf("mentions for %q: %w", username, source.ErrEmptyResult)
	}

	res := &MentionsResult{Rows: report.Mentions(items), Skipped: skipped}
	s.store(key, res)
	return res, nil
}

// InstagramActivity builds the posting-activity breakdowns for an account.
// A year of 0 selects the current year for the month view.
func (s *Service) InstagramActivity(ctx context.Context, username string, year int) (*ActivityResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "extractor.instagram_activity")
	defer span.End()

	key := cache.HashKey("instagram", "activity", username, fmt.Sprint(year))
	var cached ActivityResult
	if hit, err := s.cache.GetJSON(key, &cached); err == nil && hit {
		return &cached, nil
	}

	acct, err := s.instagram.Profile(ctx, username)
	if err != nil {
		return nil, err
	}
	records, err := s.instagram.Posts(ctx, acct.ID)
	if err != nil {
		return nil, err
	}
	items, _ := s.normalize(source.PlatformInstagram, records)
	if len(items) == 0 {
		return nil, fmt.Errorf("activity for %q: %w", username, source.ErrEmptyResult)
	}

	res := s.activity(items, year)
	s.store(key, res)
	return res, nil
}

// activity is the shared bucketing step for activity endpoints.
func (s *Service) activity(items []source.Item, year int) *ActivityResult {
	now := s.now()
	if year <= 0 {
		year = now.Year()
	}
	return &ActivityResult{
		Years:        metrics.BucketByYear(items, now),
		Months:       metrics.BucketByYearMonth(items, year),
		WeekdayHours: metrics.BucketByWeekdayHour(items),
		Hashtags:     metrics.HashtagCloud(items),
		Mentions:     metrics.MentionCloud(items),
	}
}

// store writes a finished result to the cache; failures are logged, never
// surfaced, since the result itself is already in hand.
func (s *Service) store(key string, value interface{}) {
	if err := s.cache.SetJSON(key, value, s.ttl); err != nil {
		s.logger.Warn("failed to cache result", zap.Error(err))
	}
}
