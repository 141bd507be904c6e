package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the addon endpoints. Each resource is reachable
// both bare and behind the per-install configuration path segment
// Stremio prepends after configuration.
func RegisterRoutes(r *mux.Router, manifest *ManifestHandler, catalog *CatalogHandler) {
	r.HandleFunc("/manifest.json", manifest.GetManifest).Methods(http.MethodGet)
	r.HandleFunc("/catalog/{type}/{id}", catalog.GetCatalog).Methods(http.MethodGet)
	r.HandleFunc("/{config}/manifest.json", manifest.GetManifest).Methods(http.MethodGet)
	r.HandleFunc("/{config}/catalog/{type}/{id}", catalog.GetCatalog).Methods(http.MethodGet)
}
