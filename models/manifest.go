package models

// Manifest describes the addon to Stremio clients.
type Manifest struct {
	ID            string            `json:"id"`
	Version       string            `json:"version"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Logo          string            `json:"logo,omitempty"`
	Resources     []string          `json:"resources"`
	Types         []string          `json:"types"`
	Catalogs      []ManifestCatalog `json:"catalogs"`
	IDPrefixes    []string          `json:"idPrefixes,omitempty"`
	BehaviorHints *BehaviorHints    `json:"behaviorHints,omitempty"`
	Config        []ConfigField     `json:"config,omitempty"`
}

// ManifestCatalog declares one catalog the addon serves.
type ManifestCatalog struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BehaviorHints tells Stremio the addon must be configured before use.
type BehaviorHints struct {
	Configurable          bool `json:"configurable"`
	ConfigurationRequired bool `json:"configurationRequired"`
}

// ConfigField declares one user-facing configuration input.
type ConfigField struct {
	Key     string `json:"key"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Default string `json:"default,omitempty"`
	Secret  bool   `json:"secret,omitempty"`
}
