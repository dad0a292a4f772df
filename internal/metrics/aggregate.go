// Package metrics computes derived statistics over normalized items:
// totals, averages, follower rates, engagement, estimated reach, calendar
// bucketing, and tag clouds. Everything here is a pure function of its
// inputs and is recomputed per query.
package metrics

import (
	"math"

	"github.com/timahq/socialdata/internal/source"
)

// DefaultReachMultiplier scales engagement into the estimated-reach
// heuristic. The value is inherited from the analytics team's original
// dashboard and has no documented derivation; override it with
// WithReachMultiplier rather than editing it.
const DefaultReachMultiplier = 1.5

// Metrics holds the summary statistics for one account's item set.
// Ratio fields are rounded to 2 decimal places for display; the rounding
// never feeds back into other fields (EstimatedReach is derived from the
// unrounded engagement rate).
//
// Rates follow the dashboard's convention: total divided by followers,
// rendered with a trailing "%" by the presentation layer.
type Metrics struct {
	ItemCount    int `json:"item_count"`
	ImageCount   int `json:"image_count"`
	VideoCount   int `json:"video_count"`
	EpisodeCount int `json:"episode_count"`

	TotalLikes    int64 `json:"total_likes"`
	TotalComments int64 `json:"total_comments"`
	TotalViews    int64 `json:"total_views"`

	AverageLikes    float64 `json:"average_likes"`
	AverageComments float64 `json:"average_comments"`
	AverageViews    float64 `json:"average_views"`

	LikesRate      float64 `json:"likes_rate"`
	CommentsRate   float64 `json:"comments_rate"`
	ViewsRate      float64 `json:"views_rate"`
	EngagementRate float64 `json:"engagement_rate"`
	EstimatedReach float64 `json:"estimated_reach"`

	Followers int64 `json:"followers"`
	// FollowersKnown distinguishes "rates are zero because the account
	// has no followers" from "rates are zero because the provider did
	// not report a follower count".
	FollowersKnown bool `json:"followers_known"`
}

// Option adjusts aggregation behavior.
type Option func(*options)

type options struct {
	reachMultiplier float64
	followersKnown  bool
}

// WithReachMultiplier overrides DefaultReachMultiplier.
func WithReachMultiplier(m float64) Option {
	return func(o *options) {
		if m > 0 {
			o.reachMultiplier = m
		}
	}
}

// UnknownFollowers marks the follower count as unavailable. Rates stay
// zero and FollowersKnown is false so callers can render "N/A" instead
// of a misleading 0.
func UnknownFollowers() Option {
	return func(o *options) {
		o.followersKnown = false
	}
}

// Aggregate folds a normalized item sequence plus the account's follower
// count into summary statistics. Item order does not affect the result.
// Zero items and zero followers are valid inputs; every ratio is guarded
// against division by zero and defaults to 0.
func Aggregate(items []source.Item, followers int64, opts ...Option) Metrics {
	o := options{
		reachMultiplier: DefaultReachMultiplier,
		followersKnown:  true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := Metrics{
		ItemCount:      len(items),
		Followers:      followers,
		FollowersKnown: o.followersKnown,
	}

	for _, it := range items {
		m.TotalLikes += it.Likes
		m.TotalComments += it.Comments
		m.TotalViews += it.ViewCount()

		switch it.MediaType {
		case source.MediaImage:
			m.ImageCount++
		case source.MediaVideo:
			m.VideoCount++
		case source.MediaEpisode:
			m.EpisodeCount++
		}
	}

	if m.ItemCount > 0 {
		n := float64(m.ItemCount)
		m.AverageLikes = round2(float64(m.TotalLikes) / n)
		m.AverageComments = round2(float64(m.TotalComments) / n)
		m.AverageViews = round2(float64(m.TotalViews) / n)
	}

	if o.followersKnown && followers > 0 {
		f := float64(followers)
		engagement := float64(m.TotalLikes+m.TotalComments) / f

		m.LikesRate = round2(float64(m.TotalLikes) / f)
		m.CommentsRate = round2(float64(m.TotalComments) / f)
		m.ViewsRate = round2(float64(m.TotalViews) / f)
		m.EngagementRate = round2(engagement)
		m.EstimatedReach = round2(engagement * f * o.reachMultiplier)
	}

	return m
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
