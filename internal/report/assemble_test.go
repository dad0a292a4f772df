package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/timahq/socialdata/internal/metrics"
	"github.com/timahq/socialdata/internal/source"
)

func int64ptr(n int64) *int64 { return &n }

func TestProfile(t *testing.T) {
	acct := source.AccountSummary{
		Platform:       source.PlatformInstagram,
		Username:       "acme",
		DisplayName:    "Acme Corp",
		Bio:            "hello",
		Followers:      1000,
		FollowersKnown: true,
		Following:      12,
		MediaCount:     42,
		Verified:       true,
		ProfileURL:     "https://www.instagram.com/acme/",
	}
	m := metrics.Metrics{
		ItemCount: 10, VideoCount: 5, ImageCount: 5,
		TotalLikes: 100, TotalComments: 20, TotalViews: 500,
		AverageLikes: 10, AverageComments: 2, AverageViews: 50,
		LikesRate: 0.1, CommentsRate: 0.02, ViewsRate: 0.5,
		EngagementRate: 0.12, Followers: 1000, FollowersKnown: true,
	}

	row := Profile(acct, m)

	if row.Username != "@acme" {
		t.Errorf("Username = %q, want @acme", row.Username)
	}
	if row.EngagementRate != "0.12%" {
		t.Errorf("EngagementRate = %q, want 0.12%%", row.EngagementRate)
	}
	if row.LikesRate != "0.1%" {
		t.Errorf("LikesRate = %q, want 0.1%%", row.LikesRate)
	}
	if row.Videos != 5 || row.Images != 5 {
		t.Errorf("media split = (%d, %d), want (5, 5)", row.Videos, row.Images)
	}
	if !row.Verified || row.MediaCount != 42 {
		t.Errorf("account fields not carried over: %+v", row)
	}
}

func TestProfileUnknownFollowers(t *testing.T) {
	acct := source.AccountSummary{Username: "ghost"}
	m := metrics.Metrics{TotalLikes: 50, AverageLikes: 5}

	row := Profile(acct, m)

	for name, got := range map[string]string{
		"LikesRate":      row.LikesRate,
		"CommentsRate":   row.CommentsRate,
		"ViewsRate":      row.ViewsRate,
		"EngagementRate": row.EngagementRate,
	} {
		if got != RateUnavailable {
			t.Errorf("%s = %q, want %q", name, got, RateUnavailable)
		}
	}
	// metadata still populated when counters are unusable
	if row.Username != "@ghost" || row.TotalLikes != 50 {
		t.Errorf("metadata dropped: %+v", row)
	}
}

func TestProfileColumnOrder(t *testing.T) {
	raw, err := json.Marshal(Profile(source.AccountSummary{}, metrics.Metrics{}))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if len(decoded) != len(ProfileColumns) {
		t.Fatalf("row has %d fields, ProfileColumns lists %d", len(decoded), len(ProfileColumns))
	}
	for _, col := range ProfileColumns {
		if _, ok := decoded[col]; !ok {
			t.Errorf("column %q missing from row", col)
		}
	}
}

func TestChannel(t *testing.T) {
	acct := source.AccountSummary{
		Platform:       source.PlatformYouTube,
		DisplayName:    "Acme Channel",
		Followers:      1000,
		FollowersKnown: true,
		ProfileURL:     "https://www.youtube.com/channel/UC123",
	}
	m := metrics.Metrics{
		ItemCount: 10, TotalViews: 500, TotalLikes: 100, TotalComments: 20,
		AverageLikes: 10, AverageComments: 2, AverageViews: 50,
		EngagementRate: 0.12, EstimatedReach: 180, FollowersKnown: true,
	}

	row := Channel(acct, m)

	if row.Country != "Not provided" {
		t.Errorf("Country = %q, want fallback", row.Country)
	}
	if row.EstimatedReach != 180 {
		t.Errorf("EstimatedReach = %v, want 180", row.EstimatedReach)
	}
	if row.EngagementRate != "0.12%" {
		t.Errorf("EngagementRate = %q, want 0.12%%", row.EngagementRate)
	}
	if row.TotalVideos != 10 {
		t.Errorf("TotalVideos = %d, want 10", row.TotalVideos)
	}
}

func TestPostsAndMentions(t *testing.T) {
	ts := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	items := []source.Item{
		{
			Timestamp: ts, Likes: 10, Comments: 2, Views: int64ptr(30),
			MediaType: source.MediaVideo, Caption: "demo #go @alice",
			Hashtags: []string{"#go"}, Mentions: []string{"@alice"},
			URL:      "https://www.instagram.com/p/abc/",
			MediaURL: "https://scontent.cdninstagram.com/v/abc.mp4",
			OwnerID:  "991",
		},
		{
			Timestamp: ts, Likes: 5, MediaType: source.MediaImage,
			URL: "https://www.instagram.com/p/def/",
		},
	}

	posts := Posts(items)
	if len(posts) != 2 {
		t.Fatalf("Posts() returned %d rows, want 2", len(posts))
	}
	if posts[0].PostType != "video" || posts[0].VideoViews == nil || *posts[0].VideoViews != 30 {
		t.Errorf("video row = %+v, want type=video views=30", posts[0])
	}
	if posts[1].VideoViews != nil {
		t.Errorf("image row VideoViews = %v, want nil", *posts[1].VideoViews)
	}
	if posts[0].Hashtags != "#go" || posts[0].Mentions != "@alice" {
		t.Errorf("tag columns = (%q, %q)", posts[0].Hashtags, posts[0].Mentions)
	}
	// the media asset URL is a separate column from the permalink
	if posts[0].ShortenedURL != "https://scontent.cdninstagram.com/v/abc.mp4" {
		t.Errorf("ShortenedURL = %q", posts[0].ShortenedURL)
	}

	mentions := Mentions(items[:1])
	if mentions[0].OwnerID != "991" {
		t.Errorf("OwnerID = %q, want 991", mentions[0].OwnerID)
	}
	if mentions[0].PostURL != posts[0].PostURL || mentions[0].ShortenedURL != posts[0].ShortenedURL {
		t.Errorf("mention row did not inherit post columns")
	}
}

func TestPostAndMentionColumnOrder(t *testing.T) {
	tests := []struct {
		name    string
		row     interface{}
		columns []string
	}{
		{name: "posts", row: PostRow{}, columns: PostColumns},
		{name: "mentions", row: MentionRow{}, columns: MentionColumns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.row)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			var decoded map[string]json.RawMessage
			if err := json.Unmarshal(raw, &decoded); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if len(decoded) != len(tt.columns) {
				t.Fatalf("row has %d fields, columns list %d", len(decoded), len(tt.columns))
			}
			for _, col := range tt.columns {
				if _, ok := decoded[col]; !ok {
					t.Errorf("column %q missing from row", col)
				}
			}
		})
	}
}

func TestVideosPerVideoEngagement(t *testing.T) {
	ts := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	items := []source.Item{
		{Timestamp: ts, Title: "a", Likes: 10, Comments: 5, Views: int64ptr(1000), MediaType: source.MediaVideo},
		{Timestamp: ts, Title: "b", Likes: 10, Comments: 5, Views: int64ptr(0), MediaType: source.MediaVideo},
	}

	rows := Videos(items)

	// (10+5)/1000*100 = 1.5
	if rows[0].EngagementRate != 1.5 {
		t.Errorf("EngagementRate = %v, want 1.5", rows[0].EngagementRate)
	}
	if rows[1].EngagementRate != 0 {
		t.Errorf("zero-view EngagementRate = %v, want 0", rows[1].EngagementRate)
	}
}

func TestEpisodesAndTracks(t *testing.T) {
	eps := Episodes([]source.SpotifyEpisode{{
		Name: "Pilot", ReleaseDate: "2024-06-01", DurationMs: 1800000,
		Explicit: true, Languages: []string{"en", "de"},
		URL: "https://open.spotify.com/episode/xyz",
	}})
	if len(eps) != 1 || eps[0].Language != "en, de" || !eps[0].Explicit {
		t.Errorf("Episodes() = %+v", eps)
	}

	trs := Tracks([]source.SpotifyTrack{{Name: "Song", Popularity: 80, Album: "LP", ReleaseDate: "2020-01-01"}})
	if len(trs) != 1 || trs[0].Popularity != 80 {
		t.Errorf("Tracks() = %+v", trs)
	}
}
