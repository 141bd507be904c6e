package handlers

import (
	"encoding/json"
	"net/http"

	"recstream/config"
	"recstream/models"
	"recstream/services/recs"
)

const addonVersion = "1.1.0"

// ManifestHandler serves the addon manifest.
type ManifestHandler struct{}

func NewManifestHandler() *ManifestHandler {
	return &ManifestHandler{}
}

// Manifest returns the addon descriptor Stremio clients consume.
func Manifest() models.Manifest {
	return models.Manifest{
		ID:          "org.recstream.ai.recs",
		Version:     addonVersion,
		Name:        "AI Recs (Gemini)",
		Description: "Personalized movie & series picks via Gemini, using your Trakt history.",
		Logo:        "https://stremio.com/asset-src/img/icon.png",
		Resources:   []string{"catalog"},
		Types:       []string{"movie", "series"},
		Catalogs: []models.ManifestCatalog{
			{Type: "movie", ID: recs.CatalogMovies, Name: "For You: Movies"},
			{Type: "series", ID: recs.CatalogSeries, Name: "For You: Series"},
		},
		IDPrefixes: []string{"tt"},
		BehaviorHints: &models.BehaviorHints{
			Configurable:          true,
			ConfigurationRequired: true,
		},
		Config: []models.ConfigField{
			{Key: "geminiKey", Type: "text", Title: "Gemini API Key", Secret: true},
			{Key: "traktClientId", Type: "text", Title: "Trakt Client ID"},
			{Key: "traktUser", Type: "text", Title: "Trakt Username"},
			{Key: "locale", Type: "text", Title: "Preferred country (e.g. IN, US)", Default: config.DefaultLocale},
		},
	}
}

func (h *ManifestHandler) GetManifest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(Manifest())
}
