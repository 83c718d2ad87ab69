package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/moodtune-labs/moodtune/backend/internal/core/ports"
)

const searchBody = `{
	"tracks": {
		"items": [
			{
				"id": "t1",
				"name": "Night Drive",
				"uri": "spotify:track:t1",
				"preview_url": "https://p.test/t1.mp3",
				"artists": [{"name": "Artist A"}, {"name": "Artist B"}],
				"album": {"name": "Album A", "images": [{"url": "https://img.test/1.jpg"}]}
			},
			{
				"id": "t2",
				"name": "Daylight",
				"uri": "spotify:track:t2",
				"preview_url": "",
				"artists": [{"name": "Artist C"}],
				"album": {"name": "Album B", "images": []}
			}
		]
	}
}`

func TestClient_SearchByGenre(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := newClientWithBase(srv.Client(), srv.URL)
	tracks, err := c.SearchByGenre(context.Background(), "disco", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if gotQuery != `genre:"disco"` {
		t.Errorf("query = %q, want genre filter", gotQuery)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	first := tracks[0]
	if first.ID != "t1" || first.Title != "Night Drive" {
		t.Errorf("unexpected first track: %+v", first)
	}
	if first.Artist != "Artist A, Artist B" {
		t.Errorf("artist = %q, want joined names", first.Artist)
	}
	if first.CoverURL != "https://img.test/1.jpg" {
		t.Errorf("cover = %q", first.CoverURL)
	}
	if first.PreviewURL != "https://p.test/t1.mp3" {
		t.Errorf("preview = %q", first.PreviewURL)
	}
	if tracks[1].CoverURL != "" {
		t.Errorf("second track cover = %q, want empty", tracks[1].CoverURL)
	}
}

func TestClient_SearchByGenreEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tracks":{"items":[]}}`))
	}))
	defer srv.Close()

	c := newClientWithBase(srv.Client(), srv.URL)
	_, err := c.SearchByGenre(context.Background(), "obscure", 5)
	if !errors.Is(err, ports.ErrNoTracks) {
		t.Fatalf("err = %v, want ErrNoTracks", err)
	}
}

func TestClient_SearchRetriesOnThrottle(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := newClientWithBase(srv.Client(), srv.URL)
	c.maxRetries = 3
	c.baseBackoff = time.Millisecond

	tracks, err := c.SearchByGenre(context.Background(), "disco", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("got %d calls, want 2", calls)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
}

func TestClient_SearchGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newClientWithBase(srv.Client(), srv.URL)
	c.maxRetries = 2
	c.baseBackoff = time.Millisecond

	if _, err := c.SearchByGenre(context.Background(), "disco", 5); err == nil {
		t.Fatal("expected failure after retries exhausted")
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("got %d calls, want 2", calls)
	}
}

func TestClient_SearchCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newClientWithBase(srv.Client(), srv.URL)
	if _, err := c.SearchByGenre(ctx, "disco", 5); err == nil {
		t.Fatal("expected canceled context to fail the search")
	}
}
