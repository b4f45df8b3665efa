package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"mediaflow-iptv/catalog"
	"mediaflow-iptv/logger"
	"mediaflow-iptv/store"
)

// Refresher triggers a catalog rebuild. Implemented by the updater.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// StremioHandler serves the addon endpoints consumed by the media client.
// Lookups go through the cache only; unknown ids and foreign types yield
// empty, success-shaped payloads.
type StremioHandler struct {
	cache     *catalog.Cache
	refresher Refresher
	logger    logger.Logger
}

func NewStremioHandler(cache *catalog.Cache, refresher Refresher, l logger.Logger) *StremioHandler {
	return &StremioHandler{
		cache:     cache,
		refresher: refresher,
		logger:    l,
	}
}

func (h *StremioHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, NewManifest())
}

// ManifestWithConfig persists the proxy coordinates embedded in the
// install URL and triggers a rebuild before answering with the manifest,
// so installing the addon link is enough to configure the service.
func (h *StremioHandler) ManifestWithConfig(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cfg := store.ProxyConfig{
		MediaFlowURL: vars["url"],
		MediaFlowPsw: vars["psw"],
	}

	if err := store.SaveProxyConfig(cfg); err != nil {
		h.logger.Errorf("Error saving proxy config: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := h.refresher.Refresh(r.Context()); err != nil {
		h.logger.Warnf("Catalog refresh after install failed: %v", err)
	}

	writeJSON(w, h.logger, NewManifest())
}

func (h *StremioHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	metas := []catalog.ClientMeta{}
	if vars["type"] == "tv" && strings.HasPrefix(id, catalog.IDPrefix) {
		genre := strings.TrimPrefix(id, catalog.IDPrefix)

		var (
			result []catalog.ClientMeta
			err    error
		)
		if search := r.URL.Query().Get("search"); search != "" {
			result, err = h.cache.Search(search)
		} else {
			result, err = h.cache.ByGenre(genre)
		}
		if err != nil {
			h.logger.Errorf("Error serving catalog %s: %v", id, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if result != nil {
			metas = result
		}
		h.logger.Debugf("Serving catalog %s with %d channels", id, len(metas))
	}

	writeJSON(w, h.logger, map[string]any{"metas": metas})
}

func (h *StremioHandler) Meta(w http.ResponseWriter, r *http.Request) {
	meta, found, err := h.lookup(r)
	if err != nil {
		h.logger.Errorf("Error serving meta: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if !found {
		writeJSON(w, h.logger, map[string]any{"meta": map[string]any{}})
		return
	}
	writeJSON(w, h.logger, map[string]any{"meta": meta})
}

func (h *StremioHandler) Stream(w http.ResponseWriter, r *http.Request) {
	meta, found, err := h.lookup(r)
	if err != nil {
		h.logger.Errorf("Error serving stream: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	streams := []catalog.StreamInfo{}
	if found {
		h.logger.Debugf("Serving stream id: %s", meta.ID)
		streams = append(streams, meta.Stream)
	}
	writeJSON(w, h.logger, map[string]any{"streams": streams})
}

func (h *StremioHandler) lookup(r *http.Request) (catalog.ClientMeta, bool, error) {
	vars := mux.Vars(r)
	id := vars["id"]
	if vars["type"] != "tv" || !strings.HasPrefix(id, catalog.IDPrefix) {
		return catalog.ClientMeta{}, false, nil
	}
	return h.cache.ByID(id)
}

func writeJSON(w http.ResponseWriter, l logger.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		l.Errorf("Error encoding response: %v", err)
	}
}
