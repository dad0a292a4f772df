package api

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// Method parameter shapes. Every method takes a single params object.

type usernameParams struct {
	Username string `json:"username"`
}

type channelParams struct {
	ChannelID string `json:"channel_id"`
}

type nameParams struct {
	Name string `json:"name"`
}

type activityParams struct {
	Username  string `json:"username,omitempty"`
	ChannelID string `json:"channel_id,omitempty"`
	Year      int    `json:"year,omitempty"`
}

type bulkParams struct {
	Usernames []string `json:"usernames"`
}

func (r *Router) instagramProfile(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p usernameParams
	if err := json.Unmarshal(params, &p); err != nil || p.Username == "" {
		return nil, NewError(ErrInvalidParams, "username is required")
	}
	return r.extractor.InstagramProfile(c.Request.Context(), p.Username)
}

func (r *Router) instagramPosts(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p usernameParams
	if err := json.Unmarshal(params, &p); err != nil || p.Username == "" {
		return nil, NewError(ErrInvalidParams, "username is required")
	}
	return r.extractor.InstagramPosts(c.Request.Context(), p.Username)
}

func (r *Router) instagramMentions(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p usernameParams
	if err := json.Unmarshal(params, &p); err != nil || p.Username == "" {
		return nil, NewError(ErrInvalidParams, "username is required")
	}
	return r.extractor.InstagramMentions(c.Request.Context(), p.Username)
}

func (r *Router) instagramActivity(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p activityParams
	if err := json.Unmarshal(params, &p); err != nil || p.Username == "" {
		return nil, NewError(ErrInvalidParams, "username is required")
	}
	return r.extractor.InstagramActivity(c.Request.Context(), p.Username, p.Year)
}

func (r *Router) youtubeChannel(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p channelParams
	if err := json.Unmarshal(params, &p); err != nil || p.ChannelID == "" {
		return nil, NewError(ErrInvalidParams, "channel_id is required")
	}
	return r.extractor.YouTubeChannel(c.Request.Context(), p.ChannelID)
}

func (r *Router) youtubeVideos(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p channelParams
	if err := json.Unmarshal(params, &p); err != nil || p.ChannelID == "" {
		return nil, NewError(ErrInvalidParams, "channel_id is required")
	}
	return r.extractor.YouTubeVideos(c.Request.Context(), p.ChannelID)
}

func (r *Router) youtubeActivity(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p activityParams
	if err := json.Unmarshal(params, &p); err != nil || p.ChannelID == "" {
		return nil, NewError(ErrInvalidParams, "channel_id is required")
	}
	return r.extractor.YouTubeActivity(c.Request.Context(), p.ChannelID, p.Year)
}

func (r *Router) spotifyArtist(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p nameParams
	if err := json.Unmarshal(params, &p); err != nil || p.Name == "" {
		return nil, NewError(ErrInvalidParams, "name is required")
	}
	return r.extractor.SpotifyArtist(c.Request.Context(), p.Name)
}

func (r *Router) spotifyPodcast(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p nameParams
	if err := json.Unmarshal(params, &p); err != nil || p.Name == "" {
		return nil, NewError(ErrInvalidParams, "name is required")
	}
	return r.extractor.SpotifyPodcast(c.Request.Context(), p.Name)
}

const maxBulkAccounts = 100

// bulkResult is the wire shape of one bulk entry; errors flatten to their
// message so the whole batch stays JSON-serializable.
type bulkResult struct {
	Username string      `json:"username"`
	Result   interface{} `json:"result,omitempty"`
	Error    string      `json:"error,omitempty"`
}

func (r *Router) bulkProfiles(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p bulkParams
	if err := json.Unmarshal(params, &p); err != nil || len(p.Usernames) == 0 {
		return nil, NewError(ErrInvalidParams, "usernames is required")
	}
	if len(p.Usernames) > maxBulkAccounts {
		return nil, NewError(ErrInvalidParams, "too many usernames")
	}

	results := r.extractor.BulkProfiles(c.Request.Context(), p.Usernames)

	out := make([]bulkResult, 0, len(results))
	for _, res := range results {
		entry := bulkResult{Username: res.Username}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		} else {
			entry.Result = res.Result
		}
		out = append(out, entry)
	}
	return out, nil
}
