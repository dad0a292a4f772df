package instagram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/timahq/socialdata/internal/source"
	"github.com/timahq/socialdata/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(&config.InstagramConfig{
		URL:       srv.URL,
		UserAgent: "test-agent",
		MaxPosts:  100,
		MaxTagged: 100,
	})
}

func TestProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/users/web_profile_info/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte(`{"data":{"user":{
			"id":"991","username":"acme","full_name":"Acme Corp","biography":"hello",
			"is_private":false,"is_verified":true,"profile_pic_url_hd":"https://cdn/pic.jpg",
			"edge_followed_by":{"count":1000},
			"edge_follow":{"count":12},
			"edge_owner_to_timeline_media":{"count":42}
		}}}`))
	})

	acct, err := client.Profile(context.Background(), "acme")
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}

	if acct.ID != "991" || acct.Username != "acme" {
		t.Errorf("identity = (%q, %q)", acct.ID, acct.Username)
	}
	if acct.Followers != 1000 || !acct.FollowersKnown {
		t.Errorf("followers = (%d, %v), want (1000, true)", acct.Followers, acct.FollowersKnown)
	}
	if acct.ProfileURL != "https://www.instagram.com/acme/" {
		t.Errorf("ProfileURL = %q", acct.ProfileURL)
	}
	if !acct.Verified || acct.Private {
		t.Errorf("flags = (verified=%v, private=%v)", acct.Verified, acct.Private)
	}
}

func TestProfileNotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "404 response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
		},
		{
			name: "null user",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data":{"user":null}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.Profile(context.Background(), "ghost")
			if !errors.Is(err, source.ErrNotFound) {
				t.Errorf("Profile() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestPostsPagination(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/feed/user/991/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		calls++
		switch r.URL.Query().Get("max_id") {
		case "":
			w.Write([]byte(`{"items":[
				{"code":"abc","taken_at":1717236000,"like_count":10,"comment_count":2,
				 "media_type":2,"play_count":30,"caption":{"text":"demo #go"},
				 "video_versions":[{"url":"https://cdn/abc-hd.mp4"},{"url":"https://cdn/abc-sd.mp4"}],
				 "image_versions2":{"candidates":[{"url":"https://cdn/abc-cover.jpg"}]}}
			],"more_available":true,"next_max_id":"cursor1"}`))
		case "cursor1":
			w.Write([]byte(`{"items":[
				{"code":"def","taken_at":1717150000,"like_count":5,"comment_count":1,"media_type":1,
				 "image_versions2":{"candidates":[{"url":"https://cdn/def.jpg"}]}}
			],"more_available":false}`))
		default:
			t.Errorf("unexpected max_id %q", r.URL.Query().Get("max_id"))
		}
	})

	records, err := client.Posts(context.Background(), "991")
	if err != nil {
		t.Fatalf("Posts() error: %v", err)
	}
	if calls != 2 {
		t.Errorf("made %d requests, want 2", calls)
	}
	if len(records) != 2 {
		t.Fatalf("Posts() returned %d records, want 2", len(records))
	}

	video, ok := records[0].(source.InstagramPost)
	if !ok {
		t.Fatalf("record type = %T, want InstagramPost", records[0])
	}
	if !video.IsVideo || video.VideoViews == nil || *video.VideoViews != 30 {
		t.Errorf("video record = %+v", video)
	}
	if video.Caption != "demo #go" {
		t.Errorf("Caption = %q", video.Caption)
	}
	// videos carry the top rendition, not the cover image
	if video.MediaURL != "https://cdn/abc-hd.mp4" {
		t.Errorf("video MediaURL = %q", video.MediaURL)
	}

	image := records[1].(source.InstagramPost)
	if image.IsVideo || image.VideoViews != nil {
		t.Errorf("image record = %+v", image)
	}
	if image.MediaURL != "https://cdn/def.jpg" {
		t.Errorf("image MediaURL = %q", image.MediaURL)
	}
}

func TestPostsStopsOnEmptyPage(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		// a cursor that claims more data but never delivers any
		w.Write([]byte(`{"items":[],"more_available":true,"next_max_id":"stuck"}`))
	})

	records, err := client.Posts(context.Background(), "991")
	if err != nil {
		t.Fatalf("Posts() error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Posts() returned %d records, want 0", len(records))
	}
	if calls != 1 {
		t.Errorf("made %d requests, want 1", calls)
	}
}

func TestTaggedCarriesOwner(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/usertags/991/feed/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"items":[
			{"code":"xyz","taken_at":1717236000,"like_count":3,"media_type":1,
			 "user":{"pk":4242}}
		],"more_available":false}`))
	})

	records, err := client.Tagged(context.Background(), "991")
	if err != nil {
		t.Fatalf("Tagged() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Tagged() returned %d records, want 1", len(records))
	}

	tagged, ok := records[0].(source.InstagramTagged)
	if !ok {
		t.Fatalf("record type = %T, want InstagramTagged", records[0])
	}
	if tagged.OwnerID != "4242" {
		t.Errorf("OwnerID = %q, want 4242", tagged.OwnerID)
	}
}
