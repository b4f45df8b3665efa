package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"mediaflow-iptv/catalog"
	"mediaflow-iptv/logger"
)

// NewRouter mounts the addon and configuration endpoints.
func NewRouter(cache *catalog.Cache, refresher Refresher, l logger.Logger) *mux.Router {
	stremio := NewStremioHandler(cache, refresher, l)
	cfg := NewConfigHandler(refresher, l)

	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.HandleFunc("/manifest.json", stremio.Manifest).Methods(http.MethodGet)
	r.HandleFunc("/mfp/{url}/psw/{psw}/manifest.json", stremio.ManifestWithConfig).Methods(http.MethodGet)
	r.HandleFunc("/catalog/{type}/{id}.json", stremio.Catalog).Methods(http.MethodGet)
	r.HandleFunc("/meta/{type}/{id}.json", stremio.Meta).Methods(http.MethodGet)
	r.HandleFunc("/stream/{type}/{id}.json", stremio.Stream).Methods(http.MethodGet)

	r.HandleFunc("/", cfg.Index).Methods(http.MethodGet)
	r.HandleFunc("/save-config", cfg.SaveConfig).Methods(http.MethodPost)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}
