package recs

import (
	"context"
	"log"

	"github.com/sourcegraph/conc"

	"recstream/models"
	"recstream/services/trakt"
)

// Each pool source is capped at this many results before dedup.
const poolSourceLimit = 60

// BuildPool assembles the candidate pool for kind from the four Trakt
// list endpoints. The endpoints are queried concurrently and each
// outcome is settled independently: a failed source contributes zero
// items instead of aborting the pool. The result is cached for two
// hours under pool:{kind}, so the pool is only empty when every source
// failed.
func (s *Service) BuildPool(ctx context.Context, kind, clientID string) []models.CandidateItem {
	cacheKey := "pool:" + kind
	if cached, ok := s.pools.Get(cacheKey); ok {
		return cached
	}

	// Fixed source-priority order: trending, popular, anticipated,
	// weekly-played. Dedup below keeps the first occurrence.
	var chunks [4][]models.CandidateItem

	var wg conc.WaitGroup
	wg.Go(func() {
		items, err := s.trakt.Trending(ctx, clientID, kind, poolSourceLimit)
		if err != nil {
			log.Printf("[recs] trending %s: %v", kind, err)
			return
		}
		chunks[0] = normalizeTrending(kind, items)
	})
	flat := func(slot int, name string, fetch func(context.Context, string, string, int) ([]trakt.Media, error)) {
		wg.Go(func() {
			items, err := fetch(ctx, clientID, kind, poolSourceLimit)
			if err != nil {
				log.Printf("[recs] %s %s: %v", name, kind, err)
				return
			}
			chunks[slot] = normalizeMedia(items)
		})
	}
	flat(1, "popular", s.trakt.Popular)
	flat(2, "anticipated", s.trakt.Anticipated)
	flat(3, "played/weekly", s.trakt.PlayedWeekly)
	wg.Wait()

	seen := make(map[string]struct{})
	var pool []models.CandidateItem
	for _, chunk := range chunks {
		for _, item := range chunk {
			if _, dup := seen[item.IMDB]; dup {
				continue
			}
			seen[item.IMDB] = struct{}{}
			pool = append(pool, item)
		}
	}

	s.pools.Put(cacheKey, pool, poolTTL)
	return pool
}

// normalizeTrending unwraps the kind-specific nesting of the trending
// payload and drops items without an IMDB ID.
func normalizeTrending(kind string, items []trakt.TrendingItem) []models.CandidateItem {
	out := make([]models.CandidateItem, 0, len(items))
	for _, it := range items {
		media := it.Movie
		if kind == trakt.KindShows {
			media = it.Show
		}
		if media == nil || media.IDs.IMDB == "" {
			continue
		}
		out = append(out, models.CandidateItem{
			Title: media.Title,
			Year:  media.Year,
			IMDB:  media.IDs.IMDB,
			Slug:  media.IDs.Slug,
		})
	}
	return out
}

// normalizeMedia converts a flat media list, dropping items without an
// IMDB ID.
func normalizeMedia(items []trakt.Media) []models.CandidateItem {
	out := make([]models.CandidateItem, 0, len(items))
	for _, media := range items {
		if media.IDs.IMDB == "" {
			continue
		}
		out = append(out, models.CandidateItem{
			Title: media.Title,
			Year:  media.Year,
			IMDB:  media.IDs.IMDB,
			Slug:  media.IDs.Slug,
		})
	}
	return out
}
