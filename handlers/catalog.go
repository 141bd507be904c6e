package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"recstream/config"
	"recstream/models"
	"recstream/services/recs"
)

// catalogService runs the recommendation pipeline for one request.
// It never returns an error; degrades are expressed as empty metas.
type catalogService interface {
	GetCatalog(ctx context.Context, mediaType, catalogID string, settings config.Settings) []models.CatalogMeta
}

var _ catalogService = (*recs.Service)(nil)

// CatalogHandler exposes the pipeline as a Stremio catalog resource.
type CatalogHandler struct {
	Service    catalogService
	CfgManager *config.Manager
}

func NewCatalogHandler(s catalogService, cfgManager *config.Manager) *CatalogHandler {
	return &CatalogHandler{Service: s, CfgManager: cfgManager}
}

// GetCatalog answers catalog requests. The response is always 200 with
// a metas list; internal failures surface only as an empty list.
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mediaType := vars["type"]
	catalogID := strings.TrimSuffix(vars["id"], ".json")

	req, err := config.ParseRequest(vars["config"])
	if err != nil {
		// Unparsable install config is treated as absent; env
		// overrides may still complete the settings.
		log.Printf("[catalog] ignoring bad config segment: %v", err)
		req = config.Request{}
	}

	metas := h.Service.GetCatalog(r.Context(), mediaType, catalogID, h.CfgManager.Resolve(req))
	if metas == nil {
		metas = []models.CatalogMeta{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(models.CatalogResponse{Metas: metas})
}
