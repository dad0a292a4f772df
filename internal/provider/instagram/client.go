// Package instagram adapts the Instagram web API to the canonical record
// types. It speaks the mobile endpoints (web_profile_info, user feed,
// usertags feed) and returns raw records for normalization.
package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/timahq/socialdata/internal/source"
	"github.com/timahq/socialdata/pkg/config"
	"github.com/timahq/socialdata/pkg/logging"
	"github.com/timahq/socialdata/pkg/telemetry"
)

const feedPageSize = 33

// Client talks to the Instagram web API.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	sessionID string
	maxPosts  int
	maxTagged int
	logger    *zap.Logger
}

// New creates a new Instagram client
func New(cfg *config.InstagramConfig) *Client {
	logger := logging.GetLogger().With(zap.String("component", "instagram-client"))

	return &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		baseURL:   cfg.URL,
		userAgent: cfg.UserAgent,
		sessionID: cfg.SessionID,
		maxPosts:  cfg.MaxPosts,
		maxTagged: cfg.MaxTagged,
		logger:    logger,
	}
}

type profileResponse struct {
	Data struct {
		User *struct {
			ID             string `json:"id"`
			Username       string `json:"username"`
			FullName       string `json:"full_name"`
			Biography      string `json:"biography"`
			IsPrivate      bool   `json:"is_private"`
			IsVerified     bool   `json:"is_verified"`
			ProfilePicURL  string `json:"profile_pic_url_hd"`
			EdgeFollowedBy struct {
				Count int64 `json:"count"`
			} `json:"edge_followed_by"`
			EdgeFollow struct {
				Count int64 `json:"count"`
			} `json:"edge_follow"`
			EdgeOwnerToTimelineMedia struct {
				Count int64 `json:"count"`
			} `json:"edge_owner_to_timeline_media"`
		} `json:"user"`
	} `json:"data"`
}

type feedItem struct {
	Code         string `json:"code"`
	TakenAt      int64  `json:"taken_at"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
	MediaType    int    `json:"media_type"` // 1 image, 2 video, 8 carousel
	PlayCount    *int64 `json:"play_count"`
	ViewCount    *int64 `json:"view_count"`
	Caption      *struct {
		Text string `json:"text"`
	} `json:"caption"`
	ImageVersions struct {
		Candidates []struct {
			URL string `json:"url"`
		} `json:"candidates"`
	} `json:"image_versions2"`
	VideoVersions []struct {
		URL string `json:"url"`
	} `json:"video_versions"`
	User struct {
		PK json.Number `json:"pk"`
	} `json:"user"`
}

type feedResponse struct {
	Items         []feedItem `json:"items"`
	MoreAvailable bool       `json:"more_available"`
	NextMaxID     string     `json:"next_max_id"`
}

// Profile fetches account-level metadata for a username.
func (c *Client) Profile(ctx context.Context, username string) (source.AccountSummary, error) {
	ctx, span := telemetry.StartSpan(ctx, "instagram.profile")
	defer span.End()

	endpoint := fmt.Sprintf("%s/api/v1/users/web_profile_info/?username=%s",
		c.baseURL, url.QueryEscape(username))

	var resp profileResponse
	if err := c.get(ctx, "profile", endpoint, &resp); err != nil {
		return source.AccountSummary{}, err
	}
	user := resp.Data.User
	if user == nil {
		return source.AccountSummary{}, fmt.Errorf("profile %q: %w", username, source.ErrNotFound)
	}

	c.logger.Debug("fetched profile",
		zap.String("username", user.Username),
		zap.Int64("followers", user.EdgeFollowedBy.Count))

	return source.AccountSummary{
		Platform:        source.PlatformInstagram,
		ID:              user.ID,
		Username:        user.Username,
		DisplayName:     user.FullName,
		Bio:             user.Biography,
		Followers:       user.EdgeFollowedBy.Count,
		FollowersKnown:  true,
		Following:       user.EdgeFollow.Count,
		MediaCount:      user.EdgeOwnerToTimelineMedia.Count,
		ProfileImageURL: user.ProfilePicURL,
		ProfileURL:      "https://www.instagram.com/" + user.Username + "/",
		Private:         user.IsPrivate,
		Verified:        user.IsVerified,
	}, nil
}

// Posts fetches the account's own timeline, newest first, up to the
// configured cap.
func (c *Client) Posts(ctx context.Context, userID string) ([]source.RawRecord, error) {
	ctx, span := telemetry.StartSpan(ctx, "instagram.posts")
	defer span.End()

	items, err := c.pagedFeed(ctx, "posts",
		fmt.Sprintf("%s/api/v1/feed/user/%s/", c.baseURL, url.PathEscape(userID)), c.maxPosts)
	if err != nil {
		return nil, err
	}

	records := make([]source.RawRecord, 0, len(items))
	for _, it := range items {
		records = append(records, toPost(it))
	}
	return records, nil
}

// Tagged fetches posts by other accounts that tag this one, up to the
// configured cap.
func (c *Client) Tagged(ctx context.Context, userID string) ([]source.RawRecord, error) {
	ctx, span := telemetry.StartSpan(ctx, "instagram.tagged")
	defer span.End()

	items, err := c.pagedFeed(ctx, "tagged",
		fmt.Sprintf("%s/api/v1/usertags/%s/feed/", c.baseURL, url.PathEscape(userID)), c.maxTagged)
	if err != nil {
		return nil, err
	}

	records := make([]source.RawRecord, 0, len(items))
	for _, it := range items {
		records = append(records, source.InstagramTagged{
			InstagramPost: toPost(it),
			OwnerID:       it.User.PK.String(),
		})
	}
	return records, nil
}

func toPost(it feedItem) source.InstagramPost {
	post := source.InstagramPost{
		Shortcode: it.Code,
		TakenAt:   it.TakenAt,
		Likes:     it.LikeCount,
		Comments:  it.CommentCount,
		IsVideo:   it.MediaType == 2,
	}
	if it.Caption != nil {
		post.Caption = it.Caption.Text
	}
	if post.IsVideo {
		// the API reports either counter depending on media age
		if it.PlayCount != nil {
			post.VideoViews = it.PlayCount
		} else {
			post.VideoViews = it.ViewCount
		}
	}
	// highest-resolution rendition comes first in both lists
	if post.IsVideo && len(it.VideoVersions) > 0 {
		post.MediaURL = it.VideoVersions[0].URL
	} else if len(it.ImageVersions.Candidates) > 0 {
		post.MediaURL = it.ImageVersions.Candidates[0].URL
	}
	return post
}

func (c *Client) pagedFeed(ctx context.Context, op, endpoint string, limit int) ([]feedItem, error) {
	var items []feedItem
	maxID := ""

	for len(items) < limit {
		pageURL := fmt.Sprintf("%s?count=%d", endpoint, feedPageSize)
		if maxID != "" {
			pageURL += "&max_id=" + url.QueryEscape(maxID)
		}

		var page feedResponse
		if err := c.get(ctx, op, pageURL, &page); err != nil {
			return nil, err
		}
		items = append(items, page.Items...)

		// an empty page with more_available set would otherwise spin on
		// the same cursor forever
		if len(page.Items) == 0 || !page.MoreAvailable || page.NextMaxID == "" {
			break
		}
		maxID = page.NextMaxID
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, op, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &source.UpstreamError{Platform: source.PlatformInstagram, Op: op, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "sessionid", Value: c.sessionID})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &source.UpstreamError{Platform: source.PlatformInstagram, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, source.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &source.UpstreamError{
			Platform: source.PlatformInstagram,
			Op:       op,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected response: %s", string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &source.UpstreamError{Platform: source.PlatformInstagram, Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
