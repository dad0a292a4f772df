// Package spotify adapts the Spotify Web API to the canonical record
// types: artist and podcast metadata looked up by name, plus top tracks
// and show episodes. Authentication uses the client-credentials flow with
// an in-process token cache.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/timahq/socialdata/internal/source"
	"github.com/timahq/socialdata/pkg/config"
	"github.com/timahq/socialdata/pkg/logging"
	"github.com/timahq/socialdata/pkg/telemetry"
)

const episodePageSize = 50

// Client talks to the Spotify Web API.
type Client struct {
	http         *http.Client
	baseURL      string
	accountsURL  string
	clientID     string
	clientSecret string
	maxEpisodes  int
	logger       *zap.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// New creates a new Spotify client
func New(cfg *config.SpotifyConfig) *Client {
	logger := logging.GetLogger().With(zap.String("component", "spotify-client"))

	return &Client{
		http:         &http.Client{Timeout: 30 * time.Second},
		baseURL:      cfg.URL,
		accountsURL:  cfg.AccountsURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		maxEpisodes:  cfg.MaxEpisodes,
		logger:       logger,
	}
}

type artistObject struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Followers struct {
		Total int64 `json:"total"`
	} `json:"followers"`
	Popularity   int      `json:"popularity"`
	Genres       []string `json:"genres"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

type showObject struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Publisher     string   `json:"publisher"`
	Description   string   `json:"description"`
	TotalEpisodes int64    `json:"total_episodes"`
	Languages     []string `json:"languages"`
	MediaType     string   `json:"media_type"`
	Explicit      bool     `json:"explicit"`
	Copyrights    []struct {
		Text string `json:"text"`
	} `json:"copyrights"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

type searchResponse struct {
	Artists struct {
		Items []artistObject `json:"items"`
	} `json:"artists"`
	Shows struct {
		Items []showObject `json:"items"`
	} `json:"shows"`
}

type topTracksResponse struct {
	Tracks []struct {
		Name       string `json:"name"`
		Popularity int    `json:"popularity"`
		Album      struct {
			Name        string `json:"name"`
			ReleaseDate string `json:"release_date"`
		} `json:"album"`
	} `json:"tracks"`
}

type episodesResponse struct {
	Items []struct {
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		ReleaseDate  string   `json:"release_date"`
		DurationMs   int64    `json:"duration_ms"`
		Explicit     bool     `json:"explicit"`
		Languages    []string `json:"languages"`
		ExternalURLs struct {
			Spotify string `json:"spotify"`
		} `json:"external_urls"`
	} `json:"items"`
	Next string `json:"next"`
}

// Artist looks up an artist by name and returns its metadata. The first
// search hit wins, matching how the catalogue ranks exact names first.
func (c *Client) Artist(ctx context.Context, name string) (source.AccountSummary, error) {
	ctx, span := telemetry.StartSpan(ctx, "spotify.artist")
	defer span.End()

	endpoint := fmt.Sprintf("%s/v1/search?q=%s&type=artist&limit=1",
		c.baseURL, url.QueryEscape(name))

	var resp searchResponse
	if err := c.get(ctx, "artist_search", endpoint, &resp); err != nil {
		return source.AccountSummary{}, err
	}
	if len(resp.Artists.Items) == 0 {
		return source.AccountSummary{}, fmt.Errorf("artist %q: %w", name, source.ErrNotFound)
	}
	artist := resp.Artists.Items[0]

	summary := source.AccountSummary{
		Platform:       source.PlatformSpotify,
		ID:             artist.ID,
		Username:       artist.Name,
		DisplayName:    artist.Name,
		Followers:      artist.Followers.Total,
		FollowersKnown: true,
		ProfileURL:     artist.ExternalURLs.Spotify,
		Popularity:     artist.Popularity,
		Genres:         artist.Genres,
	}
	if len(artist.Images) > 0 {
		summary.ProfileImageURL = artist.Images[0].URL
	}
	return summary, nil
}

// TopTracks fetches the artist's current top tracks.
func (c *Client) TopTracks(ctx context.Context, artistID string) ([]source.SpotifyTrack, error) {
	ctx, span := telemetry.StartSpan(ctx, "spotify.top_tracks")
	defer span.End()

	endpoint := fmt.Sprintf("%s/v1/artists/%s/top-tracks?market=US",
		c.baseURL, url.PathEscape(artistID))

	var resp topTracksResponse
	if err := c.get(ctx, "top_tracks", endpoint, &resp); err != nil {
		return nil, err
	}

	tracks := make([]source.SpotifyTrack, 0, len(resp.Tracks))
	for _, t := range resp.Tracks {
		tracks = append(tracks, source.SpotifyTrack{
			Name:        t.Name,
			Popularity:  t.Popularity,
			Album:       t.Album.Name,
			ReleaseDate: t.Album.ReleaseDate,
		})
	}
	return tracks, nil
}

// Podcast looks up a show by name and returns its metadata.
func (c *Client) Podcast(ctx context.Context, name string) (source.AccountSummary, error) {
	ctx, span := telemetry.StartSpan(ctx, "spotify.podcast")
	defer span.End()

	endpoint := fmt.Sprintf("%s/v1/search?q=%s&type=show&market=US&limit=1",
		c.baseURL, url.QueryEscape(name))

	var resp searchResponse
	if err := c.get(ctx, "podcast_search", endpoint, &resp); err != nil {
		return source.AccountSummary{}, err
	}
	if len(resp.Shows.Items) == 0 {
		return source.AccountSummary{}, fmt.Errorf("podcast %q: %w", name, source.ErrNotFound)
	}
	show := resp.Shows.Items[0]

	copyrights := make([]string, 0, len(show.Copyrights))
	for _, cr := range show.Copyrights {
		copyrights = append(copyrights, cr.Text)
	}

	summary := source.AccountSummary{
		Platform:    source.PlatformSpotify,
		ID:          show.ID,
		Username:    show.Name,
		DisplayName: show.Name,
		Bio:         show.Description,
		MediaCount:  show.TotalEpisodes,
		ProfileURL:  show.ExternalURLs.Spotify,
		Publisher:   show.Publisher,
		Languages:   show.Languages,
		MediaKind:   show.MediaType,
		Copyrights:  strings.Join(copyrights, "; "),
		Explicit:    show.Explicit,
	}
	if len(show.Images) > 0 {
		summary.ProfileImageURL = show.Images[0].URL
	}
	return summary, nil
}

// Episodes fetches the show's episodes, newest first, up to the
// configured cap.
func (c *Client) Episodes(ctx context.Context, showID string) ([]source.SpotifyEpisode, error) {
	ctx, span := telemetry.StartSpan(ctx, "spotify.episodes")
	defer span.End()

	var episodes []source.SpotifyEpisode
	endpoint := fmt.Sprintf("%s/v1/shows/%s/episodes?market=US&limit=%d",
		c.baseURL, url.PathEscape(showID), episodePageSize)

	for endpoint != "" && len(episodes) < c.maxEpisodes {
		var resp episodesResponse
		if err := c.get(ctx, "episodes", endpoint, &resp); err != nil {
			return nil, err
		}
		for _, ep := range resp.Items {
			episodes = append(episodes, source.SpotifyEpisode{
				Name:        ep.Name,
				Description: ep.Description,
				ReleaseDate: ep.ReleaseDate,
				DurationMs:  ep.DurationMs,
				Explicit:    ep.Explicit,
				Languages:   ep.Languages,
				URL:         ep.ExternalURLs.Spotify,
			})
		}
		endpoint = resp.Next
	}

	if len(episodes) > c.maxEpisodes {
		episodes = episodes[:c.maxEpisodes]
	}
	return episodes, nil
}

// accessToken returns a valid bearer token, refreshing through the
// client-credentials flow when the cached one is expired or absent.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.accountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &source.UpstreamError{Platform: source.PlatformSpotify, Op: "token", Err: err}
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &source.UpstreamError{Platform: source.PlatformSpotify, Op: "token", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &source.UpstreamError{
			Platform: source.PlatformSpotify,
			Op:       "token",
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected response: %s", string(body)),
		}
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", &source.UpstreamError{Platform: source.PlatformSpotify, Op: "token", Err: fmt.Errorf("failed to decode token: %w", err)}
	}

	c.token = token.AccessToken
	// refresh a minute early so in-flight requests never race expiry
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)

	c.logger.Debug("refreshed access token", zap.Time("expires", c.tokenExpiry))

	return c.token, nil
}

func (c *Client) get(ctx context.Context, op, endpoint string, out interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &source.UpstreamError{Platform: source.PlatformSpotify, Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return &source.UpstreamError{Platform: source.PlatformSpotify, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, source.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &source.UpstreamError{
			Platform: source.PlatformSpotify,
			Op:       op,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected response: %s", string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &source.UpstreamError{Platform: source.PlatformSpotify, Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
