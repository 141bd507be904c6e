// Package recs implements the personalized recommendation pipeline:
// candidate-pool assembly from Trakt lists, Gemini ranking against the
// user's watch history, and the merge/fallback logic producing the
// final catalog.
package recs

import (
	"context"
	"log"
	"time"

	"github.com/sourcegraph/conc/pool"

	"recstream/config"
	"recstream/internal/cache"
	"recstream/models"
	"recstream/services/trakt"
)

// The two catalogs this addon serves.
const (
	CatalogMovies = "ai_recs_movies"
	CatalogSeries = "ai_recs_series"
)

const (
	poolTTL    = 2 * time.Hour
	watchedTTL = 15 * time.Minute

	// Pools are keyed per kind, watched sets per (kind, user).
	poolCacheSize    = 8
	watchedCacheSize = 512
)

// Service sequences the recommendation pipeline for catalog requests.
type Service struct {
	trakt   *trakt.Client
	gemini  *geminiClient
	pools   *cache.Cache[[]models.CandidateItem]
	watched *cache.Cache[[]string]
}

// NewService creates the pipeline with its process-lifetime caches.
func NewService() *Service {
	return &Service{
		trakt:   trakt.NewClient(),
		gemini:  newGeminiClient(nil),
		pools:   cache.New[[]models.CandidateItem](poolCacheSize),
		watched: cache.New[[]string](watchedCacheSize),
	}
}

// MediaType returns the Stremio type for a Trakt list kind.
func MediaType(kind string) string {
	if kind == trakt.KindMovies {
		return "movie"
	}
	return "series"
}

// kindLabel names the kind for the ranking prompt.
func kindLabel(kind string) string {
	if kind == trakt.KindMovies {
		return "movies"
	}
	return "series"
}

// catalogKind maps a (mediaType, catalogID) pair to a Trakt list kind.
func catalogKind(mediaType, catalogID string) (string, bool) {
	switch {
	case mediaType == "movie" && catalogID == CatalogMovies:
		return trakt.KindMovies, true
	case mediaType == "series" && catalogID == CatalogSeries:
		return trakt.KindShows, true
	}
	return "", false
}

// GetCatalog runs the pipeline for one catalog request. Unsupported
// catalogs and incomplete configuration return an empty catalog
// immediately; any failure past that point is logged and converted to
// an empty catalog here, so no error ever crosses this boundary.
func (s *Service) GetCatalog(ctx context.Context, mediaType, catalogID string, settings config.Settings) []models.CatalogMeta {
	kind, ok := catalogKind(mediaType, catalogID)
	if !ok {
		return nil
	}
	if !settings.Complete() {
		log.Printf("[recs] incomplete configuration for %s/%s, serving empty catalog", mediaType, catalogID)
		return nil
	}

	// Once the pipeline starts it runs to completion; an abandoned
	// HTTP request must not cancel in-flight builds, or a half-built
	// pool could be cached for two hours.
	ctx = context.WithoutCancel(ctx)

	var (
		candidates []models.CandidateItem
		watched    []string
	)
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		candidates = s.BuildPool(ctx, kind, settings.TraktClientID)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		watched, err = s.FetchWatched(ctx, kind, settings.TraktUser, settings.TraktClientID)
		return err
	})
	if err := p.Wait(); err != nil {
		log.Printf("[recs] catalog %s/%s: %v", mediaType, catalogID, err)
		return nil
	}

	ranked, err := s.gemini.rank(ctx, settings.GeminiKey, kindLabel(kind), watched, candidates, settings.Locale)
	if err != nil {
		// Ranking failures degrade to the unranked pool slice.
		log.Printf("[recs] ranking %s unavailable, serving unranked pool: %v", kind, err)
		ranked = nil
	}

	if len(ranked) == 0 {
		return FallbackMetas(kind, candidates, watched)
	}
	return FinalizeMetas(kind, ranked, candidates, watched)
}
