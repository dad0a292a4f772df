// Package youtube adapts the YouTube Data API v3 to the canonical record
// types: channel metadata plus the channel's uploads playlist expanded
// into raw video records.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/timahq/socialdata/internal/source"
	"github.com/timahq/socialdata/pkg/config"
	"github.com/timahq/socialdata/pkg/logging"
	"github.com/timahq/socialdata/pkg/telemetry"
)

const (
	playlistPageSize = 50
	videoBatchSize   = 50 // videos.list accepts at most 50 IDs per call
)

// Client talks to the YouTube Data API v3.
type Client struct {
	http      *http.Client
	baseURL   string
	apiKey    string
	maxVideos int
	logger    *zap.Logger
}

// New creates a new YouTube client
func New(cfg *config.YouTubeConfig) *Client {
	logger := logging.GetLogger().With(zap.String("component", "youtube-client"))

	return &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		baseURL:   cfg.URL,
		apiKey:    cfg.APIKey,
		maxVideos: cfg.MaxVideos,
		logger:    logger,
	}
}

type channelItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		CustomURL   string `json:"customUrl"`
		Country     string `json:"country"`
		Thumbnails  struct {
			High struct {
				URL string `json:"url"`
			} `json:"high"`
		} `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		SubscriberCount       string `json:"subscriberCount"`
		HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
		VideoCount            string `json:"videoCount"`
	} `json:"statistics"`
	ContentDetails struct {
		RelatedPlaylists struct {
			Uploads string `json:"uploads"`
		} `json:"relatedPlaylists"`
	} `json:"contentDetails"`
}

type channelListResponse struct {
	Items []channelItem `json:"items"`
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			PublishedAt string `json:"publishedAt"`
			Description string `json:"description"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// Channel fetches channel-level metadata by channel ID.
func (c *Client) Channel(ctx context.Context, channelID string) (source.AccountSummary, error) {
	ctx, span := telemetry.StartSpan(ctx, "youtube.channel")
	defer span.End()

	ch, err := c.channel(ctx, channelID)
	if err != nil {
		return source.AccountSummary{}, err
	}

	var subscribers int64
	followersKnown := !ch.Statistics.HiddenSubscriberCount
	if followersKnown {
		subscribers, _ = strconv.ParseInt(ch.Statistics.SubscriberCount, 10, 64)
	}
	mediaCount, _ := strconv.ParseInt(ch.Statistics.VideoCount, 10, 64)

	username := ch.Snippet.CustomURL
	if username == "" {
		username = ch.ID
	}

	return source.AccountSummary{
		Platform:        source.PlatformYouTube,
		ID:              ch.ID,
		Username:        strings.TrimPrefix(username, "@"),
		DisplayName:     ch.Snippet.Title,
		Bio:             ch.Snippet.Description,
		Followers:       subscribers,
		FollowersKnown:  followersKnown,
		MediaCount:      mediaCount,
		ProfileImageURL: ch.Snippet.Thumbnails.High.URL,
		ProfileURL:      "https://www.youtube.com/channel/" + ch.ID,
		Country:         ch.Snippet.Country,
	}, nil
}

// Videos fetches the channel's uploads, newest first, up to the
// configured cap.
func (c *Client) Videos(ctx context.Context, channelID string) ([]source.RawRecord, error) {
	ctx, span := telemetry.StartSpan(ctx, "youtube.videos")
	defer span.End()

	ch, err := c.channel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	uploads := ch.ContentDetails.RelatedPlaylists.Uploads
	if uploads == "" {
		return nil, nil
	}

	ids, err := c.uploadIDs(ctx, uploads)
	if err != nil {
		return nil, err
	}

	records := make([]source.RawRecord, 0, len(ids))
	for start := 0; start < len(ids); start += videoBatchSize {
		end := start + videoBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		endpoint := fmt.Sprintf("%s/youtube/v3/videos?part=snippet,statistics&id=%s&key=%s",
			c.baseURL, strings.Join(ids[start:end], ","), url.QueryEscape(c.apiKey))

		var resp videoListResponse
		if err := c.get(ctx, "videos", endpoint, &resp); err != nil {
			return nil, err
		}
		for _, v := range resp.Items {
			records = append(records, source.YouTubeVideo{
				ID:          v.ID,
				Title:       v.Snippet.Title,
				PublishedAt: v.Snippet.PublishedAt,
				Description: v.Snippet.Description,
				Views:       v.Statistics.ViewCount,
				Likes:       v.Statistics.LikeCount,
				Comments:    v.Statistics.CommentCount,
			})
		}
	}

	c.logger.Debug("fetched videos",
		zap.String("channel_id", channelID),
		zap.Int("count", len(records)))

	return records, nil
}

func (c *Client) channel(ctx context.Context, channelID string) (*channelItem, error) {
	endpoint := fmt.Sprintf("%s/youtube/v3/channels?part=snippet,statistics,contentDetails&id=%s&key=%s",
		c.baseURL, url.QueryEscape(channelID), url.QueryEscape(c.apiKey))

	var resp channelListResponse
	if err := c.get(ctx, "channel", endpoint, &resp); err != nil {
		return nil, err
	}
	// the API answers 200 with an empty items list for unknown IDs
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("channel %q: %w", channelID, source.ErrNotFound)
	}
	return &resp.Items[0], nil
}

func (c *Client) uploadIDs(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string
	pageToken := ""

	for len(ids) < c.maxVideos {
		endpoint := fmt.Sprintf("%s/youtube/v3/playlistItems?part=contentDetails&playlistId=%s&maxResults=%d&key=%s",
			c.baseURL, url.QueryEscape(playlistID), playlistPageSize, url.QueryEscape(c.apiKey))
		if pageToken != "" {
			endpoint += "&pageToken=" + url.QueryEscape(pageToken)
		}

		var resp playlistItemsResponse
		if err := c.get(ctx, "playlist_items", endpoint, &resp); err != nil {
			return nil, err
		}
		for _, it := range resp.Items {
			ids = append(ids, it.ContentDetails.VideoID)
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	if len(ids) > c.maxVideos {
		ids = ids[:c.maxVideos]
	}
	return ids, nil
}

func (c *Client) get(ctx context.Context, op, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &source.UpstreamError{Platform: source.PlatformYouTube, Op: op, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &source.UpstreamError{Platform: source.PlatformYouTube, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, source.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &source.UpstreamError{
			Platform: source.PlatformYouTube,
			Op:       op,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected response: %s", string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &source.UpstreamError{Platform: source.PlatformYouTube, Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
