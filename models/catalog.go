package models

// CandidateItem is a recommendable title drawn from one of the Trakt
// list endpoints. Items without an IMDB ID are dropped during
// normalization, so IMDB is always non-empty inside a pool.
type CandidateItem struct {
	Title string `json:"title,omitempty"`
	Year  int    `json:"year,omitempty"`
	IMDB  string `json:"imdb"`
	Slug  string `json:"slug,omitempty"`
}

// RankedEntry is a single scored pick returned by the ranking service.
// Entries with an empty IMDB ID are discarded when building the catalog.
type RankedEntry struct {
	IMDB   string  `json:"imdb"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
}

// CatalogMeta is the meta preview object Stremio expects in catalog
// responses.
type CatalogMeta struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // "movie" or "series"
	Name        string `json:"name"`
	PosterShape string `json:"posterShape"`
}

// CatalogResponse wraps the metas list. Catalog endpoints always answer
// 200 with this shape, even when degraded to an empty list.
type CatalogResponse struct {
	Metas []CatalogMeta `json:"metas"`
}
