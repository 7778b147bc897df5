package osuapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestServer(t *testing.T, tokenCalls *atomic.Int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if tokenCalls != nil {
			tokenCalls.Add(1)
		}
		if got := r.FormValue("grant_type"); got != "client_credentials" {
			t.Errorf("grant_type = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok123",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/api/v2/", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetBeatmapset(t *testing.T) {
	srv := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/beatmapsets/654321" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode(Beatmapset{
			ID:     654321,
			Title:  "Song",
			Artist: "Artist",
			Beatmaps: []Beatmap{
				{ID: 1, BeatmapsetID: 654321, Version: "Easy", AR: 4, CS: 3},
				{ID: 2, BeatmapsetID: 654321, Version: "Hard", AR: 9, CS: 4},
			},
		})
	})

	c := NewClient(99, "secret", WithBaseURL(srv.URL))
	set, err := c.GetBeatmapset(context.Background(), 654321)
	if err != nil {
		t.Fatal(err)
	}
	if set.Title != "Song" || len(set.Beatmaps) != 2 {
		t.Errorf("set = %+v", set)
	}

	model := set.Set()
	if model.ID != 654321 || model.Title != "Song" {
		t.Errorf("model set = %+v", model)
	}
	hard := model.Maps["Hard"]
	if hard == nil || hard.Difficulty.ApproachRate != 9 || hard.Metadata.BeatmapID != 2 {
		t.Errorf("hard = %+v", hard)
	}
}

func TestUserBestScoresQuery(t *testing.T) {
	srv := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/users/124493/scores/best" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("mode") != "osu" || q.Get("limit") != "100" || q.Get("offset") != "100" {
			t.Errorf("query = %v", q)
		}
		json.NewEncoder(w).Encode([]Score{{ID: 1, PP: 431.5, Rank: "SH"}})
	})

	c := NewClient(99, "secret", WithBaseURL(srv.URL))
	scores, err := c.UserBestScores(context.Background(), 124493, ScoresOptions{
		Mode: "osu", Limit: 100, Offset: 100,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].PP != 431.5 {
		t.Errorf("scores = %+v", scores)
	}
}

func TestTokenIsCached(t *testing.T) {
	var tokenCalls atomic.Int32
	srv := newTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Score{})
	})

	c := NewClient(99, "secret", WithBaseURL(srv.URL))
	for i := 0; i < 3; i++ {
		if _, err := c.UserBestScores(context.Background(), 1, ScoresOptions{}); err != nil {
			t.Fatal(err)
		}
	}
	if got := tokenCalls.Load(); got != 1 {
		t.Errorf("token fetched %d times, want 1", got)
	}
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	srv := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})

	c := NewClient(99, "secret", WithBaseURL(srv.URL))
	if _, err := c.GetBeatmapset(context.Background(), 1); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestLimiterBoundsConcurrency(t *testing.T) {
	l := NewLimiter(100, time.Minute, 2)
	ctx := context.Background()

	if err := l.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if err := l.Wait(ctx); err != nil {
		t.Fatal(err)
	}

	ctx2, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx2); err == nil {
		t.Error("third concurrent Wait should block until cancellation")
	}

	l.Done()
	if err := l.Wait(ctx); err != nil {
		t.Errorf("Wait after Done: %v", err)
	}
	l.Done()
	l.Done()
}

func TestLimiterRate(t *testing.T) {
	l := NewLimiter(2, time.Hour, 10)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatal(err)
		}
		l.Done()
	}

	ctx2, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx2); err == nil {
		t.Error("third request within the window should wait out the cancellation")
	}
}
