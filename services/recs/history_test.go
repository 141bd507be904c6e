package recs

import (
	"context"
	"net/http"
	"testing"

	"recstream/services/trakt"
)

func TestFetchWatchedExtractsIDs(t *testing.T) {
	fixture := newTraktFixture()
	fixture.respond("/users/alice/history/movies", []trakt.HistoryEntry{
		{Type: "movie", Movie: &trakt.Media{Title: "Heat", IDs: trakt.IDs{IMDB: "tt0113277"}}},
		{Type: "movie", Movie: &trakt.Media{Title: "No ID"}},
		{Type: "movie"},
		{Type: "movie", Movie: &trakt.Media{Title: "Ran", IDs: trakt.IDs{IMDB: "tt0089881"}}},
	})

	svc, _ := newTestService(t, fixture)
	watched, err := svc.FetchWatched(context.Background(), trakt.KindMovies, "alice", "cid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(watched) != 2 || watched[0] != "tt0113277" || watched[1] != "tt0089881" {
		t.Errorf("unexpected watched set: %v", watched)
	}
}

func TestFetchWatchedShowsUseShowKey(t *testing.T) {
	fixture := newTraktFixture()
	fixture.respond("/users/bob/history/shows", []trakt.HistoryEntry{
		{Type: "episode", Show: &trakt.Media{Title: "Dark", IDs: trakt.IDs{IMDB: "tt5753856"}}},
		{Type: "episode", Movie: &trakt.Media{Title: "Wrong Key", IDs: trakt.IDs{IMDB: "tt0000001"}}},
	})

	svc, _ := newTestService(t, fixture)
	watched, err := svc.FetchWatched(context.Background(), trakt.KindShows, "bob", "cid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(watched) != 1 || watched[0] != "tt5753856" {
		t.Errorf("unexpected watched set: %v", watched)
	}
}

func TestFetchWatchedPropagatesUpstreamFailure(t *testing.T) {
	fixture := newTraktFixture()
	fixture.fail("/users/alice/history/movies", http.StatusUnauthorized)

	svc, _ := newTestService(t, fixture)
	if _, err := svc.FetchWatched(context.Background(), trakt.KindMovies, "alice", "cid"); err == nil {
		t.Error("expected error from failed history fetch")
	}
}

func TestFetchWatchedCachedWithinTTL(t *testing.T) {
	fixture := newTraktFixture()
	fixture.respond("/users/alice/history/movies", []trakt.HistoryEntry{
		{Type: "movie", Movie: &trakt.Media{IDs: trakt.IDs{IMDB: "tt0113277"}}},
	})

	svc, _ := newTestService(t, fixture)

	if _, err := svc.FetchWatched(context.Background(), trakt.KindMovies, "alice", "cid"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.FetchWatched(context.Background(), trakt.KindMovies, "alice", "cid"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fixture.calls.Load(); got != 1 {
		t.Errorf("expected a single upstream call, got %d", got)
	}
}

func TestFetchWatchedCacheKeyedByUser(t *testing.T) {
	fixture := newTraktFixture()
	fixture.respond("/users/alice/history/movies", []trakt.HistoryEntry{
		{Type: "movie", Movie: &trakt.Media{IDs: trakt.IDs{IMDB: "tt0000001"}}},
	})
	fixture.respond("/users/carol/history/movies", []trakt.HistoryEntry{
		{Type: "movie", Movie: &trakt.Media{IDs: trakt.IDs{IMDB: "tt0000002"}}},
	})

	svc, _ := newTestService(t, fixture)

	alice, _ := svc.FetchWatched(context.Background(), trakt.KindMovies, "alice", "cid")
	carol, _ := svc.FetchWatched(context.Background(), trakt.KindMovies, "carol", "cid")
	if len(alice) != 1 || len(carol) != 1 || alice[0] == carol[0] {
		t.Errorf("expected distinct per-user sets, got %v and %v", alice, carol)
	}
}
