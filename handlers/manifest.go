package handlers

import (
	"strings"

	"mediaflow-iptv/catalog"
)

type ManifestExtra struct {
	Name       string `json:"name"`
	IsRequired bool   `json:"isRequired"`
}

type ManifestCatalog struct {
	Type  string          `json:"type"`
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Extra []ManifestExtra `json:"extra"`
}

type Manifest struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Version       string            `json:"version"`
	Description   string            `json:"description"`
	Resources     []string          `json:"resources"`
	Types         []string          `json:"types"`
	Catalogs      []ManifestCatalog `json:"catalogs"`
	IDPrefixes    []string          `json:"idPrefixes"`
	BehaviorHints map[string]bool   `json:"behaviorHints"`
	Logo          string            `json:"logo"`
	Icon          string            `json:"icon"`
	Background    string            `json:"background"`
}

// NewManifest describes the addon: one tv catalog per genre, each
// searchable, all ids under the mediaflow- prefix.
func NewManifest() Manifest {
	catalogs := make([]ManifestCatalog, 0, len(catalog.Genres))
	for _, genre := range catalog.Genres {
		catalogs = append(catalogs, ManifestCatalog{
			Type:  "tv",
			ID:    catalog.IDPrefix + genre,
			Name:  "MediaFlow - " + capitalize(genre),
			Extra: []ManifestExtra{{Name: "search", IsRequired: false}},
		})
	}

	return Manifest{
		ID:          "org.mediaflow.iptv",
		Name:        "MediaFlow IPTV",
		Version:     "1.0.0",
		Description: "Watch IPTV channels from MediaFlow service",
		Resources:   []string{"catalog", "meta", "stream"},
		Types:       []string{"tv"},
		Catalogs:    catalogs,
		IDPrefixes:  []string{catalog.IDPrefix},
		BehaviorHints: map[string]bool{
			"configurable":          false,
			"configurationRequired": false,
		},
		Logo:       "https://dl.strem.io/addon-logo.png",
		Icon:       "https://dl.strem.io/addon-logo.png",
		Background: "https://dl.strem.io/addon-background.jpg",
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
