package extractor

import (
	"context"

	"go.uber.org/zap"

	"github.com/timahq/socialdata/internal/cache"
	"github.com/timahq/socialdata/internal/report"
	"github.com/timahq/socialdata/pkg/telemetry"
)

// SpotifyArtist looks up an artist by name and assembles its metadata row
// plus top tracks. Spotify reports no per-item engagement counters, so no
// metrics aggregation happens here.
func (s *Service) SpotifyArtist(ctx context.Context, name string) (*ArtistResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "extractor.spotify_artist")
	defer span.End()

	key := cache.HashKey("spotify", "artist", name)
	var cached ArtistResult
	if hit, err := s.cache.GetJSON(key, &cached); err == nil && hit {
		return &cached, nil
	}

	acct, err := s.spotify.Artist(ctx, name)
	if err != nil {
		return nil, err
	}
	tracks, err := s.spotify.TopTracks(ctx, acct.ID)
	if err != nil {
		return nil, err
	}

	res := &ArtistResult{
		Account: acct,
		Row:     report.Artist(acct),
		Tracks:  report.Tracks(tracks),
	}

	s.store(key, res)
	s.logger.Info("assembled spotify artist",
		zap.String("name", name),
		zap.Int("tracks", len(res.Tracks)))

	return res, nil
}

// SpotifyPodcast looks up a show by name and assembles its metadata row
// plus recent episodes.
func (s *Service) SpotifyPodcast(ctx context.Context, name string) (*PodcastResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "extractor.spotify_podcast")
	defer span.End()

	key := cache.HashKey("spotify", "podcast", name)
	var cached PodcastResult
	if hit, err := s.cache.GetJSON(key, &cached); err == nil && hit {
		return &cached, nil
	}

	acct, err := s.spotify.Podcast(ctx, name)
	if err != nil {
		return nil, err
	}
	episodes, err := s.spotify.Episodes(ctx, acct.ID)
	if err != nil {
		return nil, err
	}

	res := &PodcastResult{
		Account:  acct,
		Row:      report.Podcast(acct),
		Episodes: report.Episodes(episodes),
	}

	s.store(key, res)
	s.logger.Info("assembled spotify podcast",
		zap.String("name", name),
		zap.Int("episodes", len(res.Episodes)))

	return res, nil
}
