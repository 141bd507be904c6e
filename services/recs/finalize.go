package recs

import (
	"sort"

	"recstream/models"
)

// The catalog never exceeds this many entries.
const maxResults = 30

// FinalizeMetas merges the ranked sequence with the candidate pool into
// the final catalog. Entries are visited in descending score order
// (stable, so ties keep their input order) and skipped when the IMDB ID
// is empty, already watched, absent from the pool, already emitted, or
// when the candidate's franchise slug was emitted by a higher-ranked
// entry.
func FinalizeMetas(kind string, ranked []models.RankedEntry, pool []models.CandidateItem, watched []string) []models.CatalogMeta {
	byIMDB := make(map[string]models.CandidateItem, len(pool))
	for _, item := range pool {
		if _, ok := byIMDB[item.IMDB]; !ok {
			byIMDB[item.IMDB] = item
		}
	}
	skip := watchedSet(watched)

	ordered := make([]models.RankedEntry, len(ranked))
	copy(ordered, ranked)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	mediaType := MediaType(kind)
	seenID := make(map[string]struct{})
	seenSlug := make(map[string]struct{})
	var metas []models.CatalogMeta
	for _, entry := range ordered {
		if entry.IMDB == "" {
			continue
		}
		if _, w := skip[entry.IMDB]; w {
			continue
		}
		if _, dup := seenID[entry.IMDB]; dup {
			continue
		}
		base, ok := byIMDB[entry.IMDB]
		if !ok {
			continue
		}
		if base.Slug != "" {
			if _, dup := seenSlug[base.Slug]; dup {
				continue
			}
			seenSlug[base.Slug] = struct{}{}
		}
		seenID[entry.IMDB] = struct{}{}

		metas = append(metas, metaFor(mediaType, base))
		if len(metas) >= maxResults {
			break
		}
	}
	return metas
}

// FallbackMetas is the unranked degrade path: the first maxResults
// unwatched pool items in original pool order, with no franchise
// suppression.
func FallbackMetas(kind string, pool []models.CandidateItem, watched []string) []models.CatalogMeta {
	skip := watchedSet(watched)
	mediaType := MediaType(kind)

	var metas []models.CatalogMeta
	for _, item := range pool {
		if _, w := skip[item.IMDB]; w {
			continue
		}
		metas = append(metas, metaFor(mediaType, item))
		if len(metas) >= maxResults {
			break
		}
	}
	return metas
}

func metaFor(mediaType string, item models.CandidateItem) models.CatalogMeta {
	name := item.Title
	if name == "" {
		name = item.IMDB
	}
	return models.CatalogMeta{
		ID:          item.IMDB,
		Type:        mediaType,
		Name:        name,
		PosterShape: "regular",
	}
}

func watchedSet(watched []string) map[string]struct{} {
	set := make(map[string]struct{}, len(watched))
	for _, id := range watched {
		set[id] = struct{}{}
	}
	return set
}
