package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/timahq/socialdata/internal/source"
	"github.com/timahq/socialdata/pkg/config"
)

// newTestClient serves both the accounts host and the API host from one
// test server.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int) {
	t.Helper()
	tokenCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token" {
			tokenCalls++
			user, pass, ok := r.BasicAuth()
			if !ok || user != "client-id" || pass != "client-secret" {
				t.Errorf("basic auth = (%q, %q, %v)", user, pass, ok)
			}
			w.Write([]byte(`{"access_token":"tok123","expires_in":3600}`))
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("Authorization = %q", got)
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return New(&config.SpotifyConfig{
		URL:          srv.URL,
		AccountsURL:  srv.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		MaxEpisodes:  100,
	}), &tokenCalls
}

func TestArtist(t *testing.T) {
	client, tokenCalls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("type"); got != "artist" {
			t.Errorf("type = %q, want artist", got)
		}
		w.Write([]byte(`{"artists":{"items":[{
			"id":"art1","name":"Acme Band","popularity":80,
			"followers":{"total":5000},"genres":["rock","indie"],
			"external_urls":{"spotify":"https://open.spotify.com/artist/art1"}
		}]}}`))
	})

	acct, err := client.Artist(context.Background(), "Acme Band")
	if err != nil {
		t.Fatalf("Artist() error: %v", err)
	}

	if acct.DisplayName != "Acme Band" || acct.Popularity != 80 {
		t.Errorf("artist = %+v", acct)
	}
	if acct.Followers != 5000 || !acct.FollowersKnown {
		t.Errorf("followers = (%d, %v)", acct.Followers, acct.FollowersKnown)
	}
	if len(acct.Genres) != 2 {
		t.Errorf("Genres = %v", acct.Genres)
	}

	// second call reuses the cached token
	if _, err := client.Artist(context.Background(), "Acme Band"); err != nil {
		t.Fatalf("second Artist() error: %v", err)
	}
	if *tokenCalls != 1 {
		t.Errorf("token endpoint called %d times, want 1", *tokenCalls)
	}
}

func TestArtistNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"artists":{"items":[]}}`))
	})

	_, err := client.Artist(context.Background(), "nobody")
	if !errors.Is(err, source.ErrNotFound) {
		t.Errorf("Artist() error = %v, want ErrNotFound", err)
	}
}

func TestPodcast(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"shows":{"items":[{
			"id":"show1","name":"Tech Talk","publisher":"Acme Media",
			"description":"weekly","total_episodes":120,
			"languages":["en"],"media_type":"audio","explicit":true,
			"copyrights":[{"text":"(C) Acme"}],
			"external_urls":{"spotify":"https://open.spotify.com/show/show1"}
		}]}}`))
	})

	acct, err := client.Podcast(context.Background(), "Tech Talk")
	if err != nil {
		t.Fatalf("Podcast() error: %v", err)
	}

	if acct.Publisher != "Acme Media" || acct.MediaCount != 120 {
		t.Errorf("podcast = %+v", acct)
	}
	if acct.Copyrights != "(C) Acme" || !acct.Explicit {
		t.Errorf("rights = (%q, %v)", acct.Copyrights, acct.Explicit)
	}
	// no follower counter exists for shows
	if acct.FollowersKnown {
		t.Error("FollowersKnown = true, want false")
	}
}

func TestEpisodesPagination(t *testing.T) {
	var srvURL string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/shows/show1/episodes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("offset") == "" {
			w.Write([]byte(`{"items":[
				{"name":"Pilot","release_date":"2024-06-01","duration_ms":1800000,
				 "languages":["en"],"external_urls":{"spotify":"https://open.spotify.com/episode/e1"}}
			],"next":"` + srvURL + `/v1/shows/show1/episodes?offset=50"}`))
			return
		}
		w.Write([]byte(`{"items":[
			{"name":"Episode 2","release_date":"2024-06","duration_ms":1700000}
		],"next":null}`))
	})
	srvURL = client.baseURL

	episodes, err := client.Episodes(context.Background(), "show1")
	if err != nil {
		t.Fatalf("Episodes() error: %v", err)
	}
	if len(episodes) != 2 {
		t.Fatalf("Episodes() returned %d, want 2", len(episodes))
	}
	if episodes[0].Name != "Pilot" || episodes[0].DurationMs != 1800000 {
		t.Errorf("first episode = %+v", episodes[0])
	}
	// month-precision release dates pass through untouched
	if episodes[1].ReleaseDate != "2024-06" {
		t.Errorf("ReleaseDate = %q, want 2024-06", episodes[1].ReleaseDate)
	}
}
