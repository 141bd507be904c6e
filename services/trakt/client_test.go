package trakt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTrendingHeadersAndShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies/trending" {
			t.Errorf("expected path /movies/trending, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "60" {
			t.Errorf("expected limit=60, got %s", r.URL.Query().Get("limit"))
		}
		if r.Header.Get("trakt-api-version") != "2" {
			t.Errorf("expected trakt-api-version header")
		}
		if r.Header.Get("trakt-api-key") != "test-client-id" {
			t.Errorf("expected trakt-api-key header")
		}

		json.NewEncoder(w).Encode([]TrendingItem{
			{Watchers: 12, Movie: &Media{Title: "Heat", Year: 1995, IDs: IDs{IMDB: "tt0113277", Slug: "heat-1995"}}},
		})
	}))
	defer server.Close()

	client := NewClient()
	client.SetBaseURL(server.URL)

	items, err := client.Trending(context.Background(), "test-client-id", KindMovies, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Movie == nil || items[0].Movie.IDs.IMDB != "tt0113277" {
		t.Errorf("unexpected item: %+v", items[0])
	}
}

func TestPopularFlatShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shows/popular" {
			t.Errorf("expected path /shows/popular, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]Media{
			{Title: "Dark", Year: 2017, IDs: IDs{IMDB: "tt5753856", Slug: "dark"}},
		})
	}))
	defer server.Close()

	client := NewClient()
	client.SetBaseURL(server.URL)

	items, err := client.Popular(context.Background(), "id", KindShows, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].IDs.IMDB != "tt5753856" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestUserHistoryPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/users/some%20user/history/movies" {
			t.Errorf("unexpected path %s", r.URL.EscapedPath())
		}
		if r.URL.Query().Get("limit") != "200" {
			t.Errorf("expected limit=200, got %s", r.URL.Query().Get("limit"))
		}
		json.NewEncoder(w).Encode([]HistoryEntry{
			{Type: "movie", Movie: &Media{Title: "Ran", IDs: IDs{IMDB: "tt0089881"}}},
		})
	}))
	defer server.Close()

	client := NewClient()
	client.SetBaseURL(server.URL)

	entries, err := client.UserHistory(context.Background(), "id", "some user", KindMovies, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Movie.IDs.IMDB != "tt0089881" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestNonSuccessStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient()
	client.SetBaseURL(server.URL)

	_, err := client.Anticipated(context.Background(), "bad-id", KindMovies, 60)
	if err == nil {
		t.Fatal("expected error")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", statusErr.StatusCode)
	}
}

func TestInvalidJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient()
	client.SetBaseURL(server.URL)

	_, err := client.PlayedWeekly(context.Background(), "id", KindShows, 60)
	if err == nil {
		t.Fatal("expected decode error")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Errorf("decode failure should not be a StatusError: %v", err)
	}
}
